package bus

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrUnknownObject is returned when injecting into an unconfigured object.
var ErrUnknownObject = errors.New("unknown communication object")

// ObjectConfig is the group address configuration of one communication object.
type ObjectConfig struct {
	Address uint16
	Active  bool
}

// Telegram is a value sent by the device on a communication object.
type Telegram struct {
	Index   uint8
	Address uint16
	Data    []byte
}

// Loopback is an in-memory bus device.
// It is safe for concurrent use; notifications are delivered on the caller's
// goroutine of Inject.
type Loopback struct {
	mu      sync.Mutex
	values  map[uint8][]byte
	objects map[uint8]ObjectConfig
	sent    []Telegram

	onNotify func(index uint8)
	onSend   func(t Telegram)

	logger *slog.Logger
}

// NewLoopback creates an empty loopback bus. logger may be nil.
func NewLoopback(logger *slog.Logger) *Loopback {
	return &Loopback{
		values:  make(map[uint8][]byte),
		objects: make(map[uint8]ObjectConfig),
		logger:  logger,
	}
}

// ConfigureObject sets the group address and activity of object index.
func (b *Loopback) ConfigureObject(index uint8, addr uint16, active bool) {
	b.mu.Lock()
	b.objects[index] = ObjectConfig{Address: addr, Active: active}
	b.mu.Unlock()
	b.debugLog("object configured", "index", index, "address", addr, "active", active)
}

// Object returns the configuration of object index.
func (b *Loopback) Object(index uint8) (ObjectConfig, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cfg, ok := b.objects[index]
	return cfg, ok
}

// ReadObject copies the value of object index into buf. Bytes past the
// stored value are left untouched.
func (b *Loopback) ReadObject(index uint8, buf []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	copy(buf, b.values[index])
}

// WriteObject stores data as the value of object index and records it as
// a sent telegram.
func (b *Loopback) WriteObject(index uint8, data []byte) error {
	b.mu.Lock()
	cfg := b.objects[index]
	t := Telegram{Index: index, Address: cfg.Address, Data: append([]byte(nil), data...)}
	b.values[index] = t.Data
	b.sent = append(b.sent, t)
	onSend := b.onSend
	b.mu.Unlock()

	if onSend != nil {
		onSend(t)
	}
	return nil
}

// Inject sets the value of object index as if a telegram arrived from the
// bus and delivers the notification. Inactive objects receive nothing.
func (b *Loopback) Inject(index uint8, data []byte) error {
	b.mu.Lock()
	cfg, ok := b.objects[index]
	if !ok {
		b.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrUnknownObject, index)
	}
	if !cfg.Active {
		b.mu.Unlock()
		b.debugLog("telegram for inactive object ignored", "index", index)
		return nil
	}
	b.values[index] = append([]byte(nil), data...)
	notify := b.onNotify
	b.mu.Unlock()

	if notify != nil {
		notify(index)
	}
	return nil
}

// OnNotify sets the callback receiving object notifications.
func (b *Loopback) OnNotify(fn func(index uint8)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onNotify = fn
}

// OnSend sets a callback invoked for every telegram the device sends.
func (b *Loopback) OnSend(fn func(t Telegram)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onSend = fn
}

// Sent returns the telegrams sent so far.
func (b *Loopback) Sent() []Telegram {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Telegram, len(b.sent))
	copy(out, b.sent)
	return out
}

// Reset clears object configuration, values and sent telegrams.
// Callbacks are kept.
func (b *Loopback) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values = make(map[uint8][]byte)
	b.objects = make(map[uint8]ObjectConfig)
	b.sent = nil
}

func (b *Loopback) debugLog(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Debug(msg, args...)
	}
}
