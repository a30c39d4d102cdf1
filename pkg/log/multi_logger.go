package log

// MultiLogger fans each event out to several loggers in order.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger returns a MultiLogger over the non-nil loggers.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

// Log passes event to every logger.
func (m *MultiLogger) Log(event Event) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

// FilteredLogger forwards only the events its filter matches.
type FilteredLogger struct {
	next   Logger
	filter Filter
}

// NewFilteredLogger wraps next so that it only sees events matching filter.
func NewFilteredLogger(next Logger, filter Filter) *FilteredLogger {
	return &FilteredLogger{next: next, filter: filter}
}

// Log forwards event if it matches.
func (f *FilteredLogger) Log(event Event) {
	if f.filter.Match(event) {
		f.next.Log(event)
	}
}

var (
	_ Logger = (*MultiLogger)(nil)
	_ Logger = (*FilteredLogger)(nil)
)
