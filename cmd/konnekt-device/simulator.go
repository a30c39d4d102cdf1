package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/konnekting/konnekting-go/pkg/bus"
	"github.com/konnekting/konnekting-go/pkg/config"
	"github.com/konnekting/konnekting-go/pkg/device"
	"github.com/konnekting/konnekting-go/pkg/layout"
	"github.com/konnekting/konnekting-go/pkg/log"
	"github.com/konnekting/konnekting-go/pkg/memory"
	"github.com/konnekting/konnekting-go/pkg/progmode"
	"github.com/konnekting/konnekting-go/pkg/protocol"
	"github.com/konnekting/konnekting-go/pkg/wire"
)

// buttonPollInterval is how often a pending button press is picked up.
const buttonPollInterval = 20 * time.Millisecond

// errSimulatorStopped is returned for work posted after Run has returned.
var errSimulatorStopped = errors.New("simulator stopped")

// simulator owns the simulated device. All device access runs on the goroutine
// executing Run; other goroutines post work through Do.
type simulator struct {
	desc           *config.Device
	layout         *layout.Layout
	types          []layout.ParamType
	store          memory.Store
	bus            *bus.Loopback
	logger         *slog.Logger
	protocolLogger log.Logger

	dev            *device.Device
	restartPending bool
	boots          int

	actions chan func()
	stopped chan struct{}
}

func newSimulator(desc *config.Device, store memory.Store, logger *slog.Logger, protocolLogger log.Logger) (*simulator, error) {
	lay, err := desc.Layout()
	if err != nil {
		return nil, err
	}
	lay.SetLogger(logger)
	types, err := desc.ParamTypes()
	if err != nil {
		return nil, err
	}

	r := &simulator{
		desc:           desc,
		layout:         lay,
		types:          types,
		store:          store,
		bus:            bus.NewLoopback(logger),
		logger:         logger,
		protocolLogger: protocolLogger,
		actions:        make(chan func()),
		stopped:        make(chan struct{}),
	}
	if err := r.boot(); err != nil {
		return nil, err
	}
	return r, nil
}

// boot creates a fresh device from the store, as a power cycle would.
func (r *simulator) boot() error {
	r.bus.Reset()
	dev, err := device.New(device.Config{
		Identity: r.desc.Identity(),
		Layout:   r.layout,
		Store:    r.store,
		Bus:      r.bus,
		Indicator: progmode.IndicatorFunc(func(on bool) {
			r.logger.Info("programming LED", "on", on)
		}),
		Restarter:      progmode.RestartFunc(func() { r.restartPending = true }),
		Application:    device.ApplicationFunc(r.handleApplication),
		Logger:         r.logger,
		ProtocolLogger: r.protocolLogger,
	})
	if err != nil {
		return fmt.Errorf("create device: %w", err)
	}
	dev.Init()
	r.bus.OnNotify(dev.OnObjectIndex)

	r.dev = dev
	r.restartPending = false
	r.boots++
	r.logger.Info("device started",
		"identity", dev.Identity().String(),
		"address", wire.FormatPhysical(dev.Address()),
		"factory", dev.IsFactorySetting(),
		"session", dev.SessionID())
	return nil
}

func (r *simulator) handleApplication(index uint8) {
	buf := make([]byte, 14)
	r.bus.ReadObject(index, buf)
	r.logger.Info("application object", "index", index, "value", fmt.Sprintf("% X", buf))
}

// Run executes posted work and button polls until ctx is done. Work posted
// after Run returns fails with errSimulatorStopped.
func (r *simulator) Run(ctx context.Context) {
	defer close(r.stopped)
	ticker := time.NewTicker(buttonPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := r.store.Commit(); err != nil {
				r.logger.Warn("commit on shutdown failed", "error", err)
			}
			return
		case fn := <-r.actions:
			fn()
		case <-ticker.C:
			r.dev.Poll()
		}
		r.afterStep()
	}
}

// afterStep reboots the device if a restart was requested.
func (r *simulator) afterStep() {
	if !r.restartPending {
		return
	}
	r.logger.Info("restarting device")
	if err := r.boot(); err != nil {
		r.logger.Error("restart failed", "error", err)
	}
}

// Do runs fn on the simulator goroutine and waits for it.
func (r *simulator) Do(fn func(d *device.Device)) error {
	return r.post(func() { fn(r.dev) })
}

// Inject delivers f to the provisioning object.
func (r *simulator) Inject(f wire.Frame) error {
	var err error
	if postErr := r.post(func() {
		err = r.bus.Inject(protocol.ProvisioningObjectIndex, f[:])
	}); postErr != nil {
		return postErr
	}
	return err
}

// PressButton records a button press; it is safe from any goroutine.
func (r *simulator) PressButton() error {
	return r.Do(func(d *device.Device) { d.PressButton() })
}

// post hands fn to the Run goroutine and waits until it has run.
func (r *simulator) post(fn func()) error {
	done := make(chan struct{})
	select {
	case r.actions <- func() { fn(); close(done) }:
	case <-r.stopped:
		return errSimulatorStopped
	}
	<-done
	return nil
}

// OnSend registers fn for every telegram the device sends.
func (r *simulator) OnSend(fn func(t bus.Telegram)) {
	r.bus.OnSend(fn)
}

// Sent returns the telegrams sent since the last boot.
func (r *simulator) Sent() []bus.Telegram {
	return r.bus.Sent()
}

// ParamTypes returns the configured parameter types.
func (r *simulator) ParamTypes() []layout.ParamType {
	return r.types
}
