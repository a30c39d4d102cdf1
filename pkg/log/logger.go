package log

// Logger receives capture events from the device. Implementations must
// return quickly: Log runs on the goroutine delivering bus notifications.
type Logger interface {
	Log(event Event)
}

// NoopLogger drops every event. The device uses it when no logger is set.
type NoopLogger struct{}

// Log does nothing.
func (NoopLogger) Log(Event) {}

var _ Logger = NoopLogger{}
