package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopbackInjectNotifies(t *testing.T) {
	b := NewLoopback(nil)
	b.ConfigureObject(3, 0x0801, true)

	var got []uint8
	b.OnNotify(func(index uint8) { got = append(got, index) })

	require.NoError(t, b.Inject(3, []byte{0x01}))
	assert.Equal(t, []uint8{3}, got)

	buf := []byte{0xFF, 0xFF}
	b.ReadObject(3, buf)
	assert.Equal(t, []byte{0x01, 0xFF}, buf)
}

func TestLoopbackInjectUnknownAndInactive(t *testing.T) {
	b := NewLoopback(nil)
	notified := false
	b.OnNotify(func(uint8) { notified = true })

	err := b.Inject(9, []byte{1})
	assert.ErrorIs(t, err, ErrUnknownObject)

	b.ConfigureObject(9, 0x0001, false)
	require.NoError(t, b.Inject(9, []byte{1}))
	assert.False(t, notified)
}

func TestLoopbackWriteRecordsTelegram(t *testing.T) {
	b := NewLoopback(nil)
	b.ConfigureObject(255, 0x7FFF, true)

	var seen []Telegram
	b.OnSend(func(tg Telegram) { seen = append(seen, tg) })

	data := []byte{0x01, 0x00}
	require.NoError(t, b.WriteObject(255, data))
	data[0] = 0xAA // sent telegrams own their data

	sent := b.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, uint16(0x7FFF), sent[0].Address)
	assert.Equal(t, []byte{0x01, 0x00}, sent[0].Data)
	assert.Len(t, seen, 1)

	b.Reset()
	assert.Empty(t, b.Sent())
	_, ok := b.Object(255)
	assert.False(t, ok)
}
