package wire

import (
	"encoding/hex"
	"fmt"
)

// Frame is one 14-byte protocol frame.
type Frame [FrameSize]byte

// NewFrame returns a frame with the protocol version and message type set
// and the payload filled with Fill.
func NewFrame(t MessageType) Frame {
	var f Frame
	f[0] = ProtocolVersion
	f[1] = byte(t)
	f.fill(2)
	return f
}

// FrameFromBytes copies b into a frame. It fails unless b holds exactly
// FrameSize bytes.
func FrameFromBytes(b []byte) (Frame, error) {
	var f Frame
	if len(b) != FrameSize {
		return f, fmt.Errorf("%w: got %d bytes", ErrFrameLength, len(b))
	}
	copy(f[:], b)
	return f, nil
}

// ParseHex parses a frame written as hex, ignoring spaces, colons and dashes.
func ParseHex(s string) (Frame, error) {
	clean := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', ':', '-', '\t':
			continue
		}
		clean = append(clean, s[i])
	}
	b, err := hex.DecodeString(string(clean))
	if err != nil {
		return Frame{}, fmt.Errorf("invalid hex frame: %w", err)
	}
	return FrameFromBytes(b)
}

// Version returns the protocol version byte.
func (f Frame) Version() byte {
	return f[0]
}

// Type returns the message type byte.
func (f Frame) Type() MessageType {
	return MessageType(f[1])
}

// Bytes returns the frame as a slice.
func (f Frame) Bytes() []byte {
	b := make([]byte, FrameSize)
	copy(b, f[:])
	return b
}

// String returns the frame as spaced hex.
func (f Frame) String() string {
	const digits = "0123456789ABCDEF"
	out := make([]byte, 0, FrameSize*3-1)
	for i, b := range f {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, digits[b>>4], digits[b&0x0F])
	}
	return string(out)
}

func (f *Frame) fill(from int) {
	for i := from; i < FrameSize; i++ {
		f[i] = Fill
	}
}

func (f *Frame) putUint16(at int, v uint16) {
	f[at] = byte(v >> 8)
	f[at+1] = byte(v)
}

func (f Frame) uint16At(at int) uint16 {
	return uint16(f[at])<<8 | uint16(f[at+1])
}
