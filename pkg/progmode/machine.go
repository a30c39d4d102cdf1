package progmode

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// ForcedRebootWindow is the maximum gap between toggles counted towards a
// forced reboot.
const ForcedRebootWindow = 300 * time.Millisecond

// ForcedRebootToggles is the number of rapid toggles that force a reboot.
const ForcedRebootToggles = 3

// State is the programming-mode state.
type State uint8

const (
	// Idle indicates normal operation.
	Idle State = iota

	// Programming indicates the device accepts memory access.
	Programming
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Programming:
		return "PROGRAMMING"
	default:
		return "UNKNOWN"
	}
}

// Indicator shows the programming state to the operator, usually an LED.
type Indicator interface {
	SetIndicator(on bool)
}

// IndicatorFunc adapts a function to the Indicator interface.
type IndicatorFunc func(on bool)

// SetIndicator calls f(on).
func (f IndicatorFunc) SetIndicator(on bool) { f(on) }

// Restarter restarts the device.
type Restarter interface {
	RequestRestart()
}

// RestartFunc adapts a function to the Restarter interface.
type RestartFunc func()

// RequestRestart calls f().
func (f RestartFunc) RequestRestart() { f() }

// RestartReason explains why the machine requested a restart.
type RestartReason uint8

const (
	// ReasonForcedReboot is the rapid-toggle gesture.
	ReasonForcedReboot RestartReason = iota + 1

	// ReasonRebootRequired is a toggle after the store was modified.
	ReasonRebootRequired
)

// String returns a human-readable reason name.
func (r RestartReason) String() string {
	switch r {
	case ReasonForcedReboot:
		return "FORCED_REBOOT"
	case ReasonRebootRequired:
		return "REBOOT_REQUIRED"
	default:
		return "UNKNOWN"
	}
}

// Config configures a Machine. All fields are optional.
type Config struct {
	Indicator Indicator
	Restarter Restarter

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Logger is the optional logger for debug output.
	Logger *slog.Logger
}

// Machine tracks the programming mode.
//
// Apart from PressButton, Machine is not safe for concurrent use; it runs on
// the goroutine that handles bus notifications.
type Machine struct {
	state          State
	rebootRequired bool

	lastToggle  time.Time
	toggleCount int

	pending atomic.Bool

	indicator Indicator
	restarter Restarter
	now       func() time.Time
	logger    *slog.Logger

	onStateChange func(oldState, newState State)
	onRestart     func(reason RestartReason)
}

// New creates a machine in the Idle state and switches the indicator off.
func New(cfg Config) *Machine {
	m := &Machine{
		state:     Idle,
		indicator: cfg.Indicator,
		restarter: cfg.Restarter,
		now:       cfg.Now,
		logger:    cfg.Logger,
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.setIndicator(false)
	return m
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// IsProgramming returns true if the device is in programming mode.
func (m *Machine) IsProgramming() bool {
	return m.state == Programming
}

// SetState sets the programming mode and updates the indicator.
func (m *Machine) SetState(programming bool) {
	oldState := m.state
	if programming {
		m.state = Programming
	} else {
		m.state = Idle
	}
	m.setIndicator(programming)
	m.debugLog("programming mode set", "state", m.state.String())

	if m.onStateChange != nil && oldState != m.state {
		m.onStateChange(oldState, m.state)
	}
}

// Toggle flips the programming mode. The third rapid toggle requests a
// restart instead of flipping. Otherwise, after the flip, a restart is
// requested if a reboot is required.
func (m *Machine) Toggle() {
	now := m.now()
	if !m.lastToggle.IsZero() && now.Sub(m.lastToggle) < ForcedRebootWindow {
		m.toggleCount++
		if m.toggleCount == ForcedRebootToggles {
			m.debugLog("forced reboot request detected")
			m.lastToggle = now
			m.toggleCount = 0
			m.requestRestart(ReasonForcedReboot)
			return
		}
	} else {
		m.toggleCount = 1
	}
	m.lastToggle = now

	m.SetState(m.state != Programming)

	if m.rebootRequired {
		m.debugLog("reboot required flag set, restarting")
		m.requestRestart(ReasonRebootRequired)
	}
}

// MarkRebootRequired records that the store was modified.
func (m *Machine) MarkRebootRequired() {
	m.rebootRequired = true
}

// RebootRequired returns true if the store was modified since startup.
func (m *Machine) RebootRequired() bool {
	return m.rebootRequired
}

// PressButton records a button press. Safe to call from any goroutine.
func (m *Machine) PressButton() {
	m.pending.Store(true)
}

// Poll performs a pending toggle. It returns true if a toggle ran.
func (m *Machine) Poll() bool {
	if !m.pending.Swap(false) {
		return false
	}
	m.Toggle()
	return true
}

// OnStateChange sets a callback for state changes.
func (m *Machine) OnStateChange(fn func(oldState, newState State)) {
	m.onStateChange = fn
}

// OnRestart sets a callback invoked before a restart is requested.
func (m *Machine) OnRestart(fn func(reason RestartReason)) {
	m.onRestart = fn
}

func (m *Machine) requestRestart(reason RestartReason) {
	if m.onRestart != nil {
		m.onRestart(reason)
	}
	if m.restarter != nil {
		m.restarter.RequestRestart()
	}
}

func (m *Machine) setIndicator(on bool) {
	if m.indicator != nil {
		m.indicator.SetIndicator(on)
	}
}

func (m *Machine) debugLog(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Debug(msg, args...)
	}
}
