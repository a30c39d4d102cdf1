package wire

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFramePadding(t *testing.T) {
	f := NewFrame(MsgProgrammingModeRead)

	assert.Equal(t, ProtocolVersion, f.Version())
	assert.Equal(t, MsgProgrammingModeRead, f.Type())
	for i := 2; i < FrameSize; i++ {
		if f[i] != Fill {
			t.Errorf("f[%d] = 0x%02X, want 0xFF", i, f[i])
		}
	}
}

func TestEncodeLayouts(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want Frame
	}{
		{
			name: "ack",
			msg:  &Ack{AckType: AckOK, ErrorCode: ErrCodeOK},
			want: Frame{0x01, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		},
		{
			name: "property page read",
			msg:  &PropertyPageRead{Address: 0x1234, Page: 0x00},
			want: Frame{0x01, 0x01, 0x12, 0x34, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		},
		{
			name: "device info",
			msg: &PropertyPageResponse{Info: DeviceInfo{
				Manufacturer: 0xDEAD, Device: 0x01, Revision: 0x02, Flags: 0xFF, SystemType: SystemTypeDefault,
			}},
			want: Frame{0x01, 0x02, 0xDE, 0xAD, 0x01, 0x02, 0xFF, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		},
		{
			name: "restart",
			msg:  &Restart{Address: 0x11FE},
			want: Frame{0x01, 0x09, 0x11, 0xFE, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		},
		{
			name: "programming mode write on",
			msg:  &ProgrammingModeWrite{Address: 0x1234, Enabled: true},
			want: Frame{0x01, 0x0A, 0x12, 0x34, 0x01, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		},
		{
			name: "programming mode response",
			msg:  &ProgrammingModeResponse{Address: 0x1234},
			want: Frame{0x01, 0x0C, 0x12, 0x34, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		},
		{
			name: "memory read",
			msg:  &MemoryRead{Count: 3, Start: 0x0010},
			want: Frame{0x01, 0x1F, 0x03, 0x00, 0x10, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		},
		{
			name: "memory response",
			msg:  &MemoryResponse{Count: 3, Address: 0x1234, Data: [MaxMemoryData]byte{0x01, 0x02, 0x03}},
			want: Frame{0x01, 0x20, 0x03, 0x12, 0x34, 0x01, 0x02, 0x03, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.msg.Encode()
			if got != tt.want {
				t.Errorf("Encode() = %s, want %s", got, tt.want)
			}
			decoded, err := DecodeFrame(got)
			require.NoError(t, err)
			assert.Equal(t, tt.msg.Type(), decoded.Type())
		})
	}
}

func TestDecodeMemoryWrite(t *testing.T) {
	raw := []byte{0x01, 0x1E, 0x04, 0x00, 0x20, 0xAA, 0xBB, 0xCC, 0xDD, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

	msg, err := Decode(raw)
	require.NoError(t, err)

	mw, ok := msg.(*MemoryWrite)
	require.True(t, ok, "Decode() returned %T, want *MemoryWrite", msg)
	assert.Equal(t, uint8(4), mw.Count)
	assert.Equal(t, uint16(0x0020), mw.Start)
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0xDD}, mw.Bytes())
}

func TestDecodeProgrammingModeWrite(t *testing.T) {
	for _, tc := range []struct {
		payload byte
		want    bool
	}{
		{0x00, false},
		{0x01, true},
		{0x02, false},
	} {
		f := NewFrame(MsgProgrammingModeWrite)
		f[2], f[3], f[4] = 0x12, 0x34, tc.payload

		msg, err := DecodeFrame(f)
		require.NoError(t, err)
		pm := msg.(*ProgrammingModeWrite)
		assert.Equal(t, uint16(0x1234), pm.Address)
		if pm.Enabled != tc.want {
			t.Errorf("payload 0x%02X: Enabled = %v, want %v", tc.payload, pm.Enabled, tc.want)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Run("short", func(t *testing.T) {
		_, err := Decode([]byte{0x01, 0x00})
		assert.ErrorIs(t, err, ErrFrameLength)
	})

	t.Run("version", func(t *testing.T) {
		f := (&Restart{Address: 1}).Encode()
		f[0] = 0x02
		_, err := DecodeFrame(f)
		assert.ErrorIs(t, err, ErrVersionMismatch)
	})

	t.Run("count", func(t *testing.T) {
		for _, typ := range []MessageType{MsgMemoryWrite, MsgMemoryRead, MsgMemoryResponse} {
			f := NewFrame(typ)
			f[2] = MaxMemoryData + 1
			_, err := DecodeFrame(f)
			if !errors.Is(err, ErrCountTooLarge) {
				t.Errorf("%v: error = %v, want ErrCountTooLarge", typ, err)
			}
		}
	})
}

func TestDecodeUnknownKeepsPayload(t *testing.T) {
	f := NewFrame(MessageType(0x42))
	f[2] = 0x07

	msg, err := DecodeFrame(f)
	require.NoError(t, err)

	u, ok := msg.(*Unknown)
	require.True(t, ok)
	assert.Equal(t, MessageType(0x42), u.Type())
	assert.Equal(t, "UNKNOWN", u.Type().String())
	assert.Equal(t, f, u.Encode())
}

func TestNewMemoryWrite(t *testing.T) {
	m, err := NewMemoryWrite(0x0100, []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, Frame{0x01, 0x1E, 0x03, 0x01, 0x00, 0x01, 0x02, 0x03, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, m.Encode())

	_, err = NewMemoryWrite(0, make([]byte, MaxMemoryData+1))
	assert.ErrorIs(t, err, ErrCountTooLarge)
}

func TestParseHex(t *testing.T) {
	f, err := ParseHex("01 0B FF:FF-FF FFFFFFFFFFFFFFFF FF")
	require.NoError(t, err)
	assert.Equal(t, NewFrame(MsgProgrammingModeRead), f)
	assert.Equal(t, "01 0B FF FF FF FF FF FF FF FF FF FF FF FF", f.String())

	_, err = ParseHex("01 0B")
	assert.ErrorIs(t, err, ErrFrameLength)

	_, err = ParseHex("zz")
	assert.Error(t, err)
}
