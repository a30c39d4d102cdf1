package scenario

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/konnekting/konnekting-go/pkg/layout"
	"github.com/konnekting/konnekting-go/pkg/memory"
	"github.com/konnekting/konnekting-go/pkg/protocol"
	"github.com/konnekting/konnekting-go/pkg/wire"
)

// Action names.
const (
	ActionSend   = "send"
	ActionInject = "inject"
	ActionButton = "button"
	ActionWait   = "wait"
	ActionState  = "state"
	ActionParam  = "param"
	ActionObject = "object"
	ActionMemory = "memory"
)

// Output keys.
const (
	KeyReply          = "reply"
	KeyReplies        = "replies"
	KeyRestarted      = "restarted"
	KeyDelivered      = "delivered"
	KeyProgramming    = "programming"
	KeyAddress        = "address"
	KeyFactory        = "factory"
	KeyReady          = "ready"
	KeyRebootRequired = "reboot_required"
	KeyFlags          = "flags"
	KeyRestarts       = "restarts"
	KeyValue          = "value"
	KeyActive         = "active"
	KeyData           = "data"
)

var errMissingParam = errors.New("missing parameter")

type actionHandler func(h *harness, step *Step) (map[string]any, error)

func defaultHandlers() map[string]actionHandler {
	return map[string]actionHandler{
		ActionSend:   handleSend,
		ActionInject: handleInject,
		ActionButton: handleButton,
		ActionWait:   handleWait,
		ActionState:  handleState,
		ActionParam:  handleParam,
		ActionObject: handleObject,
		ActionMemory: handleMemory,
	}
}

// handleSend delivers a frame to the provisioning object and reports the
// first frame the device sent back.
func handleSend(h *harness, step *Step) (map[string]any, error) {
	raw, err := stringParam(step.Params, "frame")
	if err != nil {
		return nil, err
	}
	f, err := parseFrame(raw)
	if err != nil {
		return nil, err
	}

	before := len(h.bus.Sent())
	if err := h.bus.Inject(protocol.ProvisioningObjectIndex, f[:]); err != nil {
		return nil, err
	}
	sent := h.bus.Sent()[before:]

	out := map[string]any{
		KeyReplies: len(sent),
		KeyReply:   "",
	}
	if len(sent) > 0 {
		if reply, err := wire.FrameFromBytes(sent[0].Data); err == nil {
			out[KeyReply] = reply.String()
		}
	}
	return out, nil
}

// handleInject delivers a telegram to an application object.
func handleInject(h *harness, step *Step) (map[string]any, error) {
	index, err := intParam(step.Params, "index")
	if err != nil {
		return nil, err
	}
	value := "00"
	if v, ok := step.Params["value"]; ok {
		value = fmt.Sprint(v)
	}
	data, err := parseHexBytes(value)
	if err != nil {
		return nil, err
	}

	before := len(h.appDelivered)
	if err := h.bus.Inject(uint8(index), data); err != nil {
		return nil, err
	}
	return map[string]any{KeyDelivered: len(h.appDelivered) > before}, nil
}

// handleButton presses the programming button once and polls it.
func handleButton(h *harness, _ *Step) (map[string]any, error) {
	h.dev.PressButton()
	h.dev.Poll()
	return map[string]any{KeyProgramming: h.dev.IsProgramming()}, nil
}

// handleWait advances the simulated clock.
func handleWait(h *harness, step *Step) (map[string]any, error) {
	raw, err := stringParam(step.Params, "duration")
	if err != nil {
		return nil, err
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	h.clock = h.clock.Add(d)
	return nil, nil
}

// handleState reports the device context.
func handleState(h *harness, _ *Step) (map[string]any, error) {
	return map[string]any{
		KeyProgramming:    h.dev.IsProgramming(),
		KeyAddress:        wire.FormatPhysical(h.dev.Address()),
		KeyFactory:        h.dev.IsFactorySetting(),
		KeyReady:          h.dev.IsReadyForApplication(),
		KeyRebootRequired: h.dev.RebootRequired(),
		KeyFlags:          int(h.dev.Flags()),
		KeyRestarts:       h.restarts,
	}, nil
}

// handleParam reads a parameter through the typed getter for its type.
func handleParam(h *harness, step *Step) (map[string]any, error) {
	i, err := intParam(step.Params, "index")
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(h.types) {
		return nil, fmt.Errorf("parameter %d out of range (0..%d)", i, len(h.types)-1)
	}

	var v any
	switch h.types[i] {
	case layout.ParamUint8:
		v = int64(h.dev.ParamUint8(i))
	case layout.ParamInt8:
		v = int64(h.dev.ParamInt8(i))
	case layout.ParamUint16:
		v = int64(h.dev.ParamUint16(i))
	case layout.ParamInt16:
		v = int64(h.dev.ParamInt16(i))
	case layout.ParamUint32:
		v = int64(h.dev.ParamUint32(i))
	case layout.ParamInt32:
		v = int64(h.dev.ParamInt32(i))
	default:
		v = h.dev.ParamText(i)
	}
	return map[string]any{KeyValue: v}, nil
}

// handleObject reports a communication object as the bus sees it.
func handleObject(h *harness, step *Step) (map[string]any, error) {
	index, err := intParam(step.Params, "index")
	if err != nil {
		return nil, err
	}
	cfg, ok := h.bus.Object(uint8(index))
	if !ok {
		return map[string]any{KeyActive: false, KeyAddress: ""}, nil
	}
	return map[string]any{
		KeyActive:  cfg.Active,
		KeyAddress: wire.FormatGroup(cfg.Address),
	}, nil
}

// handleMemory dumps store bytes.
func handleMemory(h *harness, step *Step) (map[string]any, error) {
	start, err := intParam(step.Params, "start")
	if err != nil {
		return nil, err
	}
	count, err := intParam(step.Params, "count")
	if err != nil {
		return nil, err
	}
	if start < 0 || count <= 0 || start+count > h.store.Size() {
		return nil, fmt.Errorf("memory range %d+%d outside store", start, count)
	}
	out := make([]byte, count)
	memory.ReadBytes(h.store, uint16(start), out)
	return map[string]any{KeyData: formatHex(out)}, nil
}

func stringParam(params map[string]any, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", errMissingParam, key)
	}
	return fmt.Sprint(v), nil
}

// intParam accepts YAML integers and strings with a base prefix ("0x10").
func intParam(params map[string]any, key string) (int, error) {
	v, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", errMissingParam, key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		return int(n), nil
	case string:
		i, err := strconv.ParseInt(n, 0, 32)
		if err != nil {
			return 0, fmt.Errorf("parameter %s: %w", key, err)
		}
		return int(i), nil
	default:
		return 0, fmt.Errorf("parameter %s: unsupported type %T", key, v)
	}
}

// parseFrame parses hex and pads it with 0xFF to a full frame.
func parseFrame(s string) (wire.Frame, error) {
	b, err := parseHexBytes(s)
	if err != nil {
		return wire.Frame{}, err
	}
	if len(b) > wire.FrameSize {
		return wire.Frame{}, fmt.Errorf("%w: got %d bytes", wire.ErrFrameLength, len(b))
	}
	var f wire.Frame
	for i := range f {
		f[i] = 0xFF
	}
	copy(f[:], b)
	return f, nil
}

func parseHexBytes(s string) ([]byte, error) {
	clean := strings.NewReplacer(" ", "", ":", "", "-", "").Replace(s)
	b, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", s, err)
	}
	return b, nil
}

func formatHex(b []byte) string {
	return strings.ToUpper(strings.TrimSpace(fmt.Sprintf("% x", b)))
}
