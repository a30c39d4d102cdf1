package device

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/konnekting/konnekting-go/pkg/layout"
	"github.com/konnekting/konnekting-go/pkg/log"
	"github.com/konnekting/konnekting-go/pkg/memory"
	"github.com/konnekting/konnekting-go/pkg/progmode"
	"github.com/konnekting/konnekting-go/pkg/protocol"
	"github.com/konnekting/konnekting-go/pkg/wire"
)

// Configuration errors.
var (
	ErrNoLayout = errors.New("device: layout required")
	ErrNoStore  = errors.New("device: store required")
	ErrNoBus    = errors.New("device: bus required")
)

// Identity identifies the device type. It is fixed per build.
type Identity struct {
	Manufacturer uint16
	Device       uint8
	Revision     uint8
}

// String returns the identity as manufacturer:device:revision in hex.
func (id Identity) String() string {
	return fmt.Sprintf("%04X:%02X:%02X", id.Manufacturer, id.Device, id.Revision)
}

// Bus is the bus device a Device runs on.
type Bus interface {
	protocol.Bus

	// ConfigureObject sets the group address and activity of object index.
	ConfigureObject(index uint8, addr uint16, active bool)
}

// Config configures a Device.
type Config struct {
	// Identity of the device. Required.
	Identity Identity

	// Layout describes the store. Required.
	Layout *layout.Layout

	// Store is the persistent parameter store. Required.
	Store memory.Store

	// Bus is the bus device. Required.
	Bus Bus

	// Indicator shows the programming mode (LED). Optional.
	Indicator progmode.Indicator

	// Restarter restarts the device. Optional; without it restart
	// requests are only logged.
	Restarter progmode.Restarter

	// Application receives notifications of application objects. Optional.
	Application ApplicationHandler

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Logger is the optional logger for debug output.
	Logger *slog.Logger

	// ProtocolLogger receives protocol capture events. Optional.
	ProtocolLogger log.Logger
}

// Device is the state of a KONNEKTING device: identity, flags, bus address,
// object table, programming mode and the protocol engine acting on them.
//
// Apart from PressButton, Device is not safe for concurrent use. All
// notifications must be delivered on one goroutine.
type Device struct {
	identity Identity
	layout   *layout.Layout
	store    memory.Store
	bus      Bus
	app      ApplicationHandler

	restarter progmode.Restarter
	mode      *progmode.Machine
	engine    *protocol.Engine

	sessionID   string
	initialized bool
	flags       byte
	address     uint16
	objects     []layout.ObjectEntry

	logger         *slog.Logger
	protocolLogger log.Logger
}

// New creates a device. The device starts with factory settings until Init
// loads the store.
func New(cfg Config) (*Device, error) {
	if cfg.Layout == nil {
		return nil, ErrNoLayout
	}
	if cfg.Store == nil {
		return nil, ErrNoStore
	}
	if cfg.Bus == nil {
		return nil, ErrNoBus
	}

	d := &Device{
		identity:       cfg.Identity,
		layout:         cfg.Layout,
		store:          cfg.Store,
		bus:            cfg.Bus,
		app:            cfg.Application,
		restarter:      cfg.Restarter,
		sessionID:      uuid.New().String(),
		flags:          layout.FactoryDeviceFlags,
		address:        wire.FactoryAddress,
		logger:         cfg.Logger,
		protocolLogger: cfg.ProtocolLogger,
	}
	if d.protocolLogger == nil {
		d.protocolLogger = log.NoopLogger{}
	}

	d.mode = progmode.New(progmode.Config{
		Indicator: cfg.Indicator,
		Restarter: progmode.RestartFunc(d.restart),
		Now:       cfg.Now,
		Logger:    cfg.Logger,
	})
	d.mode.OnStateChange(func(oldState, newState progmode.State) {
		d.logState(log.StateEntityProgrammingMode, oldState.String(), newState.String(), "")
	})
	d.mode.OnRestart(func(reason progmode.RestartReason) {
		d.logState(log.StateEntityDevice, "RUNNING", "RESTARTING", reason.String())
	})

	d.engine = protocol.New(protocol.Config{
		Bus:    cfg.Bus,
		Target: d,
		Store:  cfg.Store,
		Mode:   d.mode,
		Restarter: progmode.RestartFunc(func() {
			d.logState(log.StateEntityDevice, "RUNNING", "RESTARTING", "restart message")
			d.restart()
		}),
		Logger:         cfg.Logger,
		ProtocolLogger: d.protocolLogger,
		SessionID:      d.sessionID,
	})

	return d, nil
}

// Init loads flags, bus address and the object table from the store and
// configures the bus objects. A factory device keeps the factory address and
// leaves the application objects unconfigured. Init may be called again after
// the store was replaced to reload the cached state.
func (d *Device) Init() {
	d.flags = layout.DeviceFlags(d.store)
	d.address = wire.FactoryAddress
	d.objects = d.objects[:0]

	d.bus.ConfigureObject(protocol.ProvisioningObjectIndex, wire.ProvisioningGroupAddress, true)

	if d.IsFactorySetting() {
		d.debugLog("factory settings", "address", wire.FormatPhysical(d.address))
	} else {
		d.address = layout.Address(d.store)
		for i := 0; i < d.layout.ObjectCount(); i++ {
			e := d.layout.ObjectEntry(d.store, i)
			d.objects = append(d.objects, e)
			d.bus.ConfigureObject(uint8(i), e.Address, e.Active())
			d.debugLog("object loaded",
				"index", i,
				"group", wire.FormatGroup(e.Address),
				"settings", e.Settings,
				"active", e.Active())
		}
		d.debugLog("provisioned", "address", wire.FormatPhysical(d.address), "flags", d.flags)
	}

	d.initialized = true
	d.logState(log.StateEntityDevice, "", "RUNNING", "init")
}

// Identity returns the device identity.
func (d *Device) Identity() Identity {
	return d.identity
}

// SessionID returns the capture session id of this device instance.
func (d *Device) SessionID() string {
	return d.sessionID
}

// IsActive reports whether Init has run.
func (d *Device) IsActive() bool {
	return d.initialized
}

// IsFactorySetting reports whether the device is unprovisioned.
func (d *Device) IsFactorySetting() bool {
	return d.flags == layout.FactoryDeviceFlags
}

// IsProgramming reports whether the device is in programming mode.
func (d *Device) IsProgramming() bool {
	return d.mode.IsProgramming()
}

// IsReadyForApplication reports whether application logic may run: the
// device is provisioned and not in programming mode.
func (d *Device) IsReadyForApplication() bool {
	return !d.IsProgramming() && !d.IsFactorySetting()
}

// RebootRequired reports whether the store was modified since startup.
func (d *Device) RebootRequired() bool {
	return d.mode.RebootRequired()
}

// Address returns the bus address loaded at startup.
func (d *Device) Address() uint16 {
	return d.address
}

// Flags returns the device flags loaded at startup.
func (d *Device) Flags() byte {
	return d.flags
}

// DeviceInfo returns the content of the device info property page.
func (d *Device) DeviceInfo() wire.DeviceInfo {
	return wire.DeviceInfo{
		Manufacturer: d.identity.Manufacturer,
		Device:       d.identity.Device,
		Revision:     d.identity.Revision,
		Flags:        d.flags,
		SystemType:   wire.SystemTypeDefault,
	}
}

// Object returns the table entry of application object i as loaded at
// startup. It returns false for a factory device or an index out of range.
func (d *Device) Object(i int) (layout.ObjectEntry, bool) {
	if i < 0 || i >= len(d.objects) {
		return layout.ObjectEntry{}, false
	}
	return d.objects[i], true
}

// Layout returns the store layout.
func (d *Device) Layout() *layout.Layout {
	return d.layout
}

// Engine returns the protocol engine.
func (d *Device) Engine() *protocol.Engine {
	return d.engine
}

// ProgrammingMode returns the programming-mode state machine.
func (d *Device) ProgrammingMode() *progmode.Machine {
	return d.mode
}

// SetProgrammingMode sets the programming mode.
func (d *Device) SetProgrammingMode(on bool) {
	d.mode.SetState(on)
}

// ToggleProgrammingMode toggles the programming mode, as the button does.
func (d *Device) ToggleProgrammingMode() {
	d.mode.Toggle()
}

// PressButton records a programming button press. It is safe to call from
// any goroutine; the toggle runs on the next Poll.
func (d *Device) PressButton() {
	d.mode.PressButton()
}

// Poll performs a pending button toggle. Call it from the goroutine that
// delivers notifications.
func (d *Device) Poll() bool {
	return d.mode.Poll()
}

// restart commits the store and hands over to the platform.
func (d *Device) restart() {
	if err := d.store.Commit(); err != nil && d.logger != nil {
		d.logger.Warn("commit before restart failed", "error", err)
	}
	if d.restarter == nil {
		d.debugLog("restart requested, no restarter configured")
		return
	}
	d.restarter.RequestRestart()
}

func (d *Device) logState(entity log.StateEntity, oldState, newState, reason string) {
	d.protocolLogger.Log(log.Event{
		Timestamp:     time.Now(),
		SessionID:     d.sessionID,
		Layer:         log.LayerDevice,
		Category:      log.CategoryState,
		DeviceAddress: d.address,
		StateChange: &log.StateChangeEvent{
			Entity:   entity,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}

func (d *Device) debugLog(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}

// Compile-time interface satisfaction check.
var _ protocol.Target = (*Device)(nil)
