package wire

import "fmt"

// Decode parses a raw frame. It fails if b is not exactly FrameSize bytes
// or the version byte differs from ProtocolVersion. Unsupported message
// types decode to *Unknown.
func Decode(b []byte) (Message, error) {
	f, err := FrameFromBytes(b)
	if err != nil {
		return nil, err
	}
	return DecodeFrame(f)
}

// DecodeFrame parses a frame. See Decode.
func DecodeFrame(f Frame) (Message, error) {
	if f.Version() != ProtocolVersion {
		return nil, fmt.Errorf("%w: got 0x%02X, want 0x%02X", ErrVersionMismatch, f.Version(), ProtocolVersion)
	}

	switch f.Type() {
	case MsgAck:
		return &Ack{AckType: AckType(f[2]), ErrorCode: ErrorCode(f[3])}, nil

	case MsgPropertyPageRead:
		return &PropertyPageRead{Address: f.uint16At(2), Page: f[4]}, nil

	case MsgPropertyPageResponse:
		return &PropertyPageResponse{Info: DeviceInfo{
			Manufacturer: f.uint16At(2),
			Device:       f[4],
			Revision:     f[5],
			Flags:        f[6],
			SystemType:   f[7],
		}}, nil

	case MsgRestart:
		return &Restart{Address: f.uint16At(2)}, nil

	case MsgProgrammingModeWrite:
		return &ProgrammingModeWrite{Address: f.uint16At(2), Enabled: f[4] == 0x01}, nil

	case MsgProgrammingModeRead:
		return &ProgrammingModeRead{}, nil

	case MsgProgrammingModeResponse:
		return &ProgrammingModeResponse{Address: f.uint16At(2)}, nil

	case MsgMemoryWrite:
		if f[2] > MaxMemoryData {
			return nil, fmt.Errorf("%w: %d", ErrCountTooLarge, f[2])
		}
		m := &MemoryWrite{Count: f[2], Start: f.uint16At(3)}
		copy(m.Data[:], f[5:5+int(m.Count)])
		return m, nil

	case MsgMemoryRead:
		if f[2] > MaxMemoryData {
			return nil, fmt.Errorf("%w: %d", ErrCountTooLarge, f[2])
		}
		return &MemoryRead{Count: f[2], Start: f.uint16At(3)}, nil

	case MsgMemoryResponse:
		if f[2] > MaxMemoryData {
			return nil, fmt.Errorf("%w: %d", ErrCountTooLarge, f[2])
		}
		m := &MemoryResponse{Count: f[2], Address: f.uint16At(3)}
		copy(m.Data[:], f[5:5+int(m.Count)])
		return m, nil

	default:
		m := &Unknown{MsgType: f.Type()}
		copy(m.Payload[:], f[2:])
		return m, nil
	}
}

// NewMemoryWrite builds a memory write for data, which must hold at most
// MaxMemoryData bytes.
func NewMemoryWrite(start uint16, data []byte) (*MemoryWrite, error) {
	if len(data) > MaxMemoryData {
		return nil, fmt.Errorf("%w: %d", ErrCountTooLarge, len(data))
	}
	m := &MemoryWrite{Count: uint8(len(data)), Start: start}
	copy(m.Data[:], data)
	return m, nil
}
