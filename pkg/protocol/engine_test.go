package protocol

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/konnekting/konnekting-go/pkg/log"
	"github.com/konnekting/konnekting-go/pkg/memory"
	"github.com/konnekting/konnekting-go/pkg/progmode"
	"github.com/konnekting/konnekting-go/pkg/protocol/mocks"
	"github.com/konnekting/konnekting-go/pkg/wire"
)

// Compile-time checks that the generated mocks satisfy the interfaces.
var (
	_ Bus                = (*mocks.MockBus)(nil)
	_ progmode.Restarter = (*mocks.MockRestarter)(nil)
)

const testAddress uint16 = 0x1234

type testTarget struct {
	addr uint16
	info wire.DeviceInfo
}

func (t *testTarget) Address() uint16             { return t.addr }
func (t *testTarget) DeviceInfo() wire.DeviceInfo { return t.info }

// fakeBus holds the provisioning object value and records sent frames.
type fakeBus struct {
	value []byte
	sent  []wire.Frame
	err   error
}

func (b *fakeBus) ReadObject(_ uint8, buf []byte) {
	copy(buf, b.value)
}

func (b *fakeBus) WriteObject(_ uint8, data []byte) error {
	if b.err != nil {
		return b.err
	}
	f, _ := wire.FrameFromBytes(data)
	b.sent = append(b.sent, f)
	return nil
}

func (b *fakeBus) deliver(e *Engine, f wire.Frame) bool {
	b.value = f.Bytes()
	return e.HandleInbound(ProvisioningObjectIndex)
}

type captureLogger struct {
	events []log.Event
}

func (c *captureLogger) Log(e log.Event) { c.events = append(c.events, e) }

type fixture struct {
	engine  *Engine
	bus     *fakeBus
	store   *memory.MemoryStore
	mode    *progmode.Machine
	capture *captureLogger
}

func newFixture(t *testing.T, restarter progmode.Restarter) *fixture {
	t.Helper()
	fx := &fixture{
		bus:     &fakeBus{},
		store:   memory.NewMemoryStore(256),
		mode:    progmode.New(progmode.Config{}),
		capture: &captureLogger{},
	}
	fx.engine = New(Config{
		Bus: fx.bus,
		Target: &testTarget{
			addr: testAddress,
			info: wire.DeviceInfo{Manufacturer: 0xDEAD, Device: 0x42, Revision: 0x07, Flags: 0xFF},
		},
		Store:          fx.store,
		Mode:           fx.mode,
		Restarter:      restarter,
		ProtocolLogger: fx.capture,
		SessionID:      "test",
	})
	return fx
}

func frame(t *testing.T, s string) wire.Frame {
	t.Helper()
	f, err := wire.ParseHex(s)
	require.NoError(t, err)
	return f
}

func memoryWrite(t *testing.T, start uint16, data []byte) *wire.MemoryWrite {
	t.Helper()
	m, err := wire.NewMemoryWrite(start, data)
	require.NoError(t, err)
	return m
}

func TestHandleInboundOtherIndex(t *testing.T) {
	bus := mocks.NewMockBus(t)
	e := New(Config{
		Bus:    bus,
		Target: &testTarget{addr: testAddress},
		Store:  memory.NewMemoryStore(16),
		Mode:   progmode.New(progmode.Config{}),
	})

	for _, idx := range []uint8{0, 1, 100, 254} {
		if e.HandleInbound(idx) {
			t.Errorf("HandleInbound(%d) = true, want false", idx)
		}
	}
}

func TestHandleInboundReadsProvisioningObject(t *testing.T) {
	bus := mocks.NewMockBus(t)
	bus.EXPECT().ReadObject(ProvisioningObjectIndex, mock.Anything).
		Run(func(_ uint8, buf []byte) {
			f := (&wire.ProgrammingModeRead{}).Encode()
			copy(buf, f[:])
		}).Once()
	// Not in programming mode, so no WriteObject is expected.

	e := New(Config{
		Bus:    bus,
		Target: &testTarget{addr: testAddress},
		Store:  memory.NewMemoryStore(16),
		Mode:   progmode.New(progmode.Config{}),
	})

	assert.True(t, e.HandleInbound(ProvisioningObjectIndex))
}

func TestVersionMismatchDropped(t *testing.T) {
	msgs := []wire.Message{
		&wire.PropertyPageRead{Address: testAddress},
		&wire.Restart{Address: testAddress},
		&wire.ProgrammingModeWrite{Address: testAddress, Enabled: true},
		&wire.ProgrammingModeRead{},
		memoryWrite(t, 0x10, []byte{1, 2, 3}),
		&wire.MemoryRead{Count: 3, Start: 0x10},
	}

	for _, msg := range msgs {
		t.Run(msg.Type().String(), func(t *testing.T) {
			restarter := mocks.NewMockRestarter(t)
			fx := newFixture(t, restarter)
			fx.mode.SetState(true)
			before := fx.store.Bytes()

			f := msg.Encode()
			f[0] = wire.ProtocolVersion + 1

			for i := 0; i < 2; i++ {
				err := fx.engine.HandleFrame(f)
				assert.ErrorIs(t, err, wire.ErrVersionMismatch)
			}

			assert.Empty(t, fx.bus.sent)
			assert.Equal(t, before, fx.store.Bytes())
			assert.True(t, fx.mode.IsProgramming())
			assert.False(t, fx.mode.RebootRequired())
		})
	}
}

func TestMemoryAccessRequiresProgrammingMode(t *testing.T) {
	fx := newFixture(t, nil)
	before := fx.store.Bytes()

	err := fx.engine.HandleFrame(memoryWrite(t, 0x20, []byte{0xAA, 0xBB}).Encode())
	assert.ErrorIs(t, err, ErrNotProgramming)

	err = fx.engine.HandleFrame((&wire.MemoryRead{Count: 2, Start: 0x20}).Encode())
	assert.ErrorIs(t, err, ErrNotProgramming)

	assert.Empty(t, fx.bus.sent)
	assert.Equal(t, before, fx.store.Bytes())
	assert.Zero(t, fx.store.Writes())
	assert.False(t, fx.mode.RebootRequired())
}

func TestMemoryWriteReadRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		start uint16
		data  []byte
	}{
		{"single byte", 0x00, []byte{0x01}},
		{"three bytes", 0x40, []byte{0x10, 0x20, 0x30}},
		{"full frame", 0x80, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t, nil)
			fx.mode.SetState(true)

			require.True(t, fx.bus.deliver(fx.engine, memoryWrite(t, tt.start, tt.data).Encode()))
			require.Len(t, fx.bus.sent, 1)
			assert.Equal(t, frame(t, "01 00 00 00 FF FF FF FF FF FF FF FF FF FF"), fx.bus.sent[0])
			assert.True(t, fx.mode.RebootRequired())

			read := &wire.MemoryRead{Count: uint8(len(tt.data)), Start: tt.start}
			require.True(t, fx.bus.deliver(fx.engine, read.Encode()))
			require.Len(t, fx.bus.sent, 2)

			msg, err := wire.DecodeFrame(fx.bus.sent[1])
			require.NoError(t, err)
			resp, ok := msg.(*wire.MemoryResponse)
			require.True(t, ok, "response type = %T", msg)
			if !bytes.Equal(resp.Bytes(), tt.data) {
				t.Errorf("read back % X, want % X", resp.Bytes(), tt.data)
			}
		})
	}
}

func TestMemoryReadResponseLayout(t *testing.T) {
	fx := newFixture(t, nil)
	fx.mode.SetState(true)
	memory.WriteBytes(fx.store, 0x30, []byte{0x01, 0x02, 0x03})

	require.NoError(t, fx.engine.HandleFrame((&wire.MemoryRead{Count: 3, Start: 0x30}).Encode()))

	require.Len(t, fx.bus.sent, 1)
	want := frame(t, "01 20 03 12 34 01 02 03 FF FF FF FF FF FF")
	if fx.bus.sent[0] != want {
		t.Errorf("response = %s, want %s", fx.bus.sent[0], want)
	}
}

func TestMemoryWriteCountTooLarge(t *testing.T) {
	fx := newFixture(t, nil)
	fx.mode.SetState(true)

	f := frame(t, "01 1E 0A 00 10 01 02 03 04 05 06 07 08 09")
	err := fx.engine.HandleFrame(f)

	assert.ErrorIs(t, err, wire.ErrCountTooLarge)
	assert.Empty(t, fx.bus.sent)
	assert.Zero(t, fx.store.Writes())
}

func TestPropertyPageReadDeviceInfo(t *testing.T) {
	fx := newFixture(t, nil)

	require.NoError(t, fx.engine.HandleFrame(frame(t, "01 01 12 34 00 FF FF FF FF FF FF FF FF FF")))

	require.Len(t, fx.bus.sent, 1)
	want := frame(t, "01 02 DE AD 42 07 FF 00 FF FF FF FF FF FF")
	if fx.bus.sent[0] != want {
		t.Errorf("response = %s, want %s", fx.bus.sent[0], want)
	}
}

func TestPropertyPageReadDropped(t *testing.T) {
	tests := []struct {
		name    string
		frame   string
		wantErr error
	}{
		{"other device", "01 01 12 35 00 FF FF FF FF FF FF FF FF FF", ErrAddressMismatch},
		{"other page", "01 01 12 34 01 FF FF FF FF FF FF FF FF FF", ErrUnsupportedPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t, nil)
			err := fx.engine.HandleFrame(frame(t, tt.frame))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, fx.bus.sent)
		})
	}
}

func TestRestart(t *testing.T) {
	t.Run("address match", func(t *testing.T) {
		restarter := mocks.NewMockRestarter(t)
		restarter.EXPECT().RequestRestart().Return().Once()
		fx := newFixture(t, restarter)

		require.NoError(t, fx.engine.HandleFrame((&wire.Restart{Address: testAddress}).Encode()))
		assert.Empty(t, fx.bus.sent)
	})

	t.Run("address mismatch", func(t *testing.T) {
		restarter := mocks.NewMockRestarter(t)
		fx := newFixture(t, restarter)

		err := fx.engine.HandleFrame((&wire.Restart{Address: 0x1100}).Encode())
		assert.ErrorIs(t, err, ErrAddressMismatch)
	})
}

func TestProgrammingModeWrite(t *testing.T) {
	commits := 0
	store := memory.NewMemoryStore(64)
	bus := &fakeBus{}
	mode := progmode.New(progmode.Config{})
	e := New(Config{
		Bus:    bus,
		Target: &testTarget{addr: testAddress},
		Store: &memory.FuncStore{
			ReadFunc:  store.Read,
			WriteFunc: store.Write,
			CommitFunc: func() error {
				commits++
				return nil
			},
		},
		Mode: mode,
	})

	require.NoError(t, e.HandleFrame(frame(t, "01 0A 12 34 01 FF FF FF FF FF FF FF FF FF")))
	assert.True(t, mode.IsProgramming())
	assert.Equal(t, 1, commits)
	require.Len(t, bus.sent, 1)
	assert.Equal(t, wire.MsgAck, bus.sent[0].Type())

	require.NoError(t, e.HandleFrame(frame(t, "01 0A 12 34 00 FF FF FF FF FF FF FF FF FF")))
	assert.False(t, mode.IsProgramming())
	assert.Equal(t, 2, commits)
	assert.Len(t, bus.sent, 2)

	err := e.HandleFrame(frame(t, "01 0A 11 FE 01 FF FF FF FF FF FF FF FF FF"))
	assert.ErrorIs(t, err, ErrAddressMismatch)
	assert.False(t, mode.IsProgramming())
	assert.Equal(t, 2, commits)
	assert.Len(t, bus.sent, 2)
}

func TestProgrammingModeWriteCommitFailure(t *testing.T) {
	store := memory.NewMemoryStore(16)
	bus := &fakeBus{}
	e := New(Config{
		Bus:    bus,
		Target: &testTarget{addr: testAddress},
		Store: &memory.FuncStore{
			ReadFunc:   store.Read,
			WriteFunc:  store.Write,
			CommitFunc: func() error { return errors.New("flash busy") },
		},
		Mode: progmode.New(progmode.Config{}),
	})

	err := e.HandleFrame((&wire.ProgrammingModeWrite{Address: testAddress, Enabled: true}).Encode())
	assert.Error(t, err)
	assert.Empty(t, bus.sent)
}

func TestProgrammingModeRead(t *testing.T) {
	fx := newFixture(t, nil)

	err := fx.engine.HandleFrame((&wire.ProgrammingModeRead{}).Encode())
	assert.ErrorIs(t, err, ErrNotProgramming)
	assert.Empty(t, fx.bus.sent)

	fx.mode.SetState(true)
	require.NoError(t, fx.engine.HandleFrame((&wire.ProgrammingModeRead{}).Encode()))
	require.Len(t, fx.bus.sent, 1)
	assert.Equal(t, frame(t, "01 0C 12 34 FF FF FF FF FF FF FF FF FF FF"), fx.bus.sent[0])
}

func TestAckAndUnknownIgnored(t *testing.T) {
	fx := newFixture(t, nil)
	fx.mode.SetState(true)

	assert.NoError(t, fx.engine.HandleFrame((&wire.Ack{}).Encode()))

	err := fx.engine.HandleFrame(frame(t, "01 7F 00 00 00 00 00 00 00 00 00 00 00 00"))
	assert.ErrorIs(t, err, ErrUnhandledType)

	// A response type arriving at the device is not handled either.
	err = fx.engine.HandleFrame((&wire.ProgrammingModeResponse{Address: 0x1100}).Encode())
	assert.ErrorIs(t, err, ErrUnhandledType)

	assert.Empty(t, fx.bus.sent)
}

func TestSendFailure(t *testing.T) {
	fx := newFixture(t, nil)
	fx.bus.err = errors.New("bus off")

	err := fx.engine.HandleFrame(frame(t, "01 01 12 34 00 FF FF FF FF FF FF FF FF FF"))
	assert.ErrorContains(t, err, "bus off")
}

func TestProtocolCapture(t *testing.T) {
	fx := newFixture(t, nil)

	require.NoError(t, fx.engine.HandleFrame(frame(t, "01 01 12 34 00 FF FF FF FF FF FF FF FF FF")))
	_ = fx.engine.HandleFrame((&wire.MemoryRead{Count: 1}).Encode())

	require.Len(t, fx.capture.events, 4)

	in := fx.capture.events[0]
	assert.Equal(t, log.DirectionIn, in.Direction)
	require.NotNil(t, in.Frame)
	assert.Equal(t, wire.MsgPropertyPageRead, in.Frame.MessageType)
	assert.Equal(t, "test", in.SessionID)
	assert.Equal(t, testAddress, in.DeviceAddress)

	out := fx.capture.events[1]
	assert.Equal(t, log.DirectionOut, out.Direction)
	require.NotNil(t, out.Frame)
	assert.Equal(t, wire.MsgPropertyPageResponse, out.Frame.MessageType)

	drop := fx.capture.events[3]
	assert.Equal(t, log.CategoryError, drop.Category)
	require.NotNil(t, drop.Error)
	assert.Equal(t, "MEMORY_READ", drop.Error.Context)
	assert.Contains(t, drop.Error.Message, ErrNotProgramming.Error())
}
