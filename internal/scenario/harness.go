package scenario

import (
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
)

// epoch is the start of the simulated clock.
var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// harness owns one simulated device for the duration of a scenario. The
// clock only moves on wait steps so toggle timing is deterministic.
type harness struct {
	desc   *config.Device
	types  []layout.ParamType
	layout *layout.Layout
	store  *memory.MemoryStore
	bus    *bus.Loopback

	clock          time.Time
	dev            *device.Device
	restartPending bool
	restarts       int
	appDelivered   []uint8

	logger         *slog.Logger
	protocolLogger log.Logger
}

func newHarness(desc *config.Device, logger *slog.Logger, protocolLogger log.Logger) (*harness, error) {
	types, err := desc.ParamTypes()
	if err != nil {
		return nil, err
	}
	lay, err := desc.Layout()
	if err != nil {
		return nil, err
	}
	lay.SetLogger(logger)

	h := &harness{
		desc:           desc,
		types:          types,
		layout:         lay,
		store:          memory.NewMemoryStore(desc.Store.Size),
		bus:            bus.NewLoopback(logger),
		clock:          epoch,
		logger:         logger,
		protocolLogger: protocolLogger,
	}
	if err := h.boot(); err != nil {
		return nil, err
	}
	return h, nil
}

// boot replaces the device with a fresh one reading the same store.
func (h *harness) boot() error {
	h.bus.Reset()
	dev, err := device.New(device.Config{
		Identity:       h.desc.Identity(),
		Layout:         h.layout,
		Store:          h.store,
		Bus:            h.bus,
		Restarter:      progmode.RestartFunc(func() { h.restartPending = true }),
		Application:    device.ApplicationFunc(func(index uint8) { h.appDelivered = append(h.appDelivered, index) }),
		Now:            func() time.Time { return h.clock },
		Logger:         h.logger,
		ProtocolLogger: h.protocolLogger,
	})
	if err != nil {
		return fmt.Errorf("create device: %w", err)
	}
	dev.Init()
	h.bus.OnNotify(dev.OnObjectIndex)
	h.dev = dev
	h.restartPending = false
	return nil
}

// settle reboots the device if the last action requested a restart. It
// reports whether a restart happened.
func (h *harness) settle() (bool, error) {
	if !h.restartPending {
		return false, nil
	}
	h.restarts++
	return true, h.boot()
}
