package protocol

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/konnekting/konnekting-go/pkg/log"
	"github.com/konnekting/konnekting-go/pkg/memory"
	"github.com/konnekting/konnekting-go/pkg/progmode"
	"github.com/konnekting/konnekting-go/pkg/wire"
)

// Config configures an Engine.
type Config struct {
	// Bus gives access to the provisioning object. Required.
	Bus Bus

	// Target is the device answering requests. Required.
	Target Target

	// Store is the persistent parameter store. Required.
	Store memory.Store

	// Mode is the programming-mode state machine. Required.
	Mode *progmode.Machine

	// Restarter handles Restart requests. Optional.
	Restarter progmode.Restarter

	// Logger is the optional logger for debug output.
	Logger *slog.Logger

	// ProtocolLogger receives frame and error capture events. Optional.
	ProtocolLogger log.Logger

	// SessionID is stamped on every capture event.
	SessionID string
}

// handler processes one decoded message.
type handler func(msg wire.Message) error

// Engine dispatches provisioning frames.
//
// Engine is not safe for concurrent use; it runs on the goroutine that
// delivers bus notifications.
type Engine struct {
	bus       Bus
	target    Target
	store     memory.Store
	mode      *progmode.Machine
	restarter progmode.Restarter

	logger         *slog.Logger
	protocolLogger log.Logger
	sessionID      string

	handlers map[wire.MessageType]handler
}

// New creates an engine.
func New(cfg Config) *Engine {
	e := &Engine{
		bus:            cfg.Bus,
		target:         cfg.Target,
		store:          cfg.Store,
		mode:           cfg.Mode,
		restarter:      cfg.Restarter,
		logger:         cfg.Logger,
		protocolLogger: cfg.ProtocolLogger,
		sessionID:      cfg.SessionID,
	}
	e.handlers = map[wire.MessageType]handler{
		wire.MsgAck:                  e.handleAck,
		wire.MsgPropertyPageRead:     e.handlePropertyPageRead,
		wire.MsgRestart:              e.handleRestart,
		wire.MsgProgrammingModeWrite: e.handleProgrammingModeWrite,
		wire.MsgProgrammingModeRead:  e.handleProgrammingModeRead,
		wire.MsgMemoryWrite:          e.handleMemoryWrite,
		wire.MsgMemoryRead:           e.handleMemoryRead,
	}
	return e
}

// HandleInbound processes a notification for communication object index.
// It returns false if index is not the provisioning object; the caller
// routes such notifications elsewhere. A provisioning notification is
// always consumed, whether or not the frame was accepted.
func (e *Engine) HandleInbound(index uint8) bool {
	if index != ProvisioningObjectIndex {
		return false
	}

	var f wire.Frame
	e.bus.ReadObject(index, f[:])
	if err := e.HandleFrame(f); err != nil {
		e.debugLog("frame dropped", "frame", f.String(), "error", err)
	}
	return true
}

// HandleFrame processes one provisioning frame. The returned error names the
// reason the frame was dropped; nothing is sent to the bus in that case.
func (e *Engine) HandleFrame(f wire.Frame) error {
	e.logFrame(log.DirectionIn, f)

	msg, err := wire.DecodeFrame(f)
	if err != nil {
		return e.drop(f, err)
	}

	h, ok := e.handlers[msg.Type()]
	if !ok {
		return e.drop(f, fmt.Errorf("%w: 0x%02X", ErrUnhandledType, byte(msg.Type())))
	}
	if err := h(msg); err != nil {
		return e.drop(f, err)
	}
	return nil
}

func (e *Engine) handleAck(wire.Message) error {
	return nil
}

func (e *Engine) handlePropertyPageRead(msg wire.Message) error {
	m := msg.(*wire.PropertyPageRead)
	if err := e.checkAddress(m.Address); err != nil {
		return err
	}
	if m.Page != wire.PageDeviceInfo {
		return fmt.Errorf("%w: %d", ErrUnsupportedPage, m.Page)
	}
	return e.send(&wire.PropertyPageResponse{Info: e.target.DeviceInfo()})
}

func (e *Engine) handleRestart(msg wire.Message) error {
	m := msg.(*wire.Restart)
	if err := e.checkAddress(m.Address); err != nil {
		return err
	}
	e.debugLog("restart requested by tool")
	if e.restarter != nil {
		e.restarter.RequestRestart()
	}
	return nil
}

func (e *Engine) handleProgrammingModeWrite(msg wire.Message) error {
	m := msg.(*wire.ProgrammingModeWrite)
	if err := e.checkAddress(m.Address); err != nil {
		return err
	}
	e.mode.SetState(m.Enabled)
	if err := e.store.Commit(); err != nil {
		return fmt.Errorf("commit store: %w", err)
	}
	return e.sendAck()
}

func (e *Engine) handleProgrammingModeRead(wire.Message) error {
	if !e.mode.IsProgramming() {
		return ErrNotProgramming
	}
	return e.send(&wire.ProgrammingModeResponse{Address: e.target.Address()})
}

func (e *Engine) handleMemoryWrite(msg wire.Message) error {
	if !e.mode.IsProgramming() {
		return ErrNotProgramming
	}
	m := msg.(*wire.MemoryWrite)
	memory.UpdateBytes(e.store, m.Start, m.Bytes())
	e.mode.MarkRebootRequired()
	e.debugLog("memory written", "start", m.Start, "count", m.Count)
	return e.sendAck()
}

func (e *Engine) handleMemoryRead(msg wire.Message) error {
	if !e.mode.IsProgramming() {
		return ErrNotProgramming
	}
	m := msg.(*wire.MemoryRead)
	resp := &wire.MemoryResponse{Count: m.Count, Address: e.target.Address()}
	memory.ReadBytes(e.store, m.Start, resp.Data[:m.Count])
	return e.send(resp)
}

func (e *Engine) checkAddress(addr uint16) error {
	if own := e.target.Address(); addr != own {
		return fmt.Errorf("%w: %s (own %s)", ErrAddressMismatch, wire.FormatPhysical(addr), wire.FormatPhysical(own))
	}
	return nil
}

func (e *Engine) sendAck() error {
	return e.send(&wire.Ack{AckType: wire.AckOK, ErrorCode: wire.ErrCodeOK})
}

func (e *Engine) send(msg wire.Message) error {
	f := msg.Encode()
	e.logFrame(log.DirectionOut, f)
	if err := e.bus.WriteObject(ProvisioningObjectIndex, f[:]); err != nil {
		return fmt.Errorf("send %s: %w", msg.Type(), err)
	}
	return nil
}

// drop captures err as the reason f was not answered.
func (e *Engine) drop(f wire.Frame, err error) error {
	e.logError(f.Type().String(), err)
	return err
}

func (e *Engine) logFrame(dir log.Direction, f wire.Frame) {
	if e.protocolLogger == nil {
		return
	}
	e.protocolLogger.Log(log.Event{
		Timestamp:     time.Now(),
		SessionID:     e.sessionID,
		Direction:     dir,
		Layer:         log.LayerBus,
		Category:      log.CategoryMessage,
		DeviceAddress: e.target.Address(),
		Frame: &log.FrameEvent{
			Data:        f.Bytes(),
			MessageType: f.Type(),
		},
	})
}

func (e *Engine) logError(context string, err error) {
	if e.protocolLogger == nil {
		return
	}
	e.protocolLogger.Log(log.Event{
		Timestamp:     time.Now(),
		SessionID:     e.sessionID,
		Direction:     log.DirectionIn,
		Layer:         log.LayerProtocol,
		Category:      log.CategoryError,
		DeviceAddress: e.target.Address(),
		Error: &log.ErrorEventData{
			Layer:   log.LayerProtocol,
			Message: err.Error(),
			Context: context,
		},
	})
}

func (e *Engine) debugLog(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}
