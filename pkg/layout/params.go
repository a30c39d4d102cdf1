package layout

import (
	"encoding/binary"

	"github.com/konnekting/konnekting-go/pkg/memory"
)

// raw reads parameter i if its configured size equals want. On mismatch it
// logs a warning and returns false.
func (l *Layout) raw(s memory.Store, i int, want uint8, typ ParamType, buf []byte) bool {
	if got := l.ParamSize(i); got != want {
		l.warn("parameter size mismatch, returning zero value",
			"index", i, "requested", typ.String(), "size", got)
		return false
	}
	l.ParamValue(s, i, buf[:want])
	return true
}

// Uint8 returns parameter i as uint8.
func (l *Layout) Uint8(s memory.Store, i int) uint8 {
	var buf [SizeUint8]byte
	if !l.raw(s, i, SizeUint8, ParamUint8, buf[:]) {
		return 0
	}
	return buf[0]
}

// Int8 returns parameter i as int8.
func (l *Layout) Int8(s memory.Store, i int) int8 {
	var buf [SizeInt8]byte
	if !l.raw(s, i, SizeInt8, ParamInt8, buf[:]) {
		return 0
	}
	return int8(buf[0])
}

// Uint16 returns parameter i as big-endian uint16.
func (l *Layout) Uint16(s memory.Store, i int) uint16 {
	var buf [SizeUint16]byte
	if !l.raw(s, i, SizeUint16, ParamUint16, buf[:]) {
		return 0
	}
	return binary.BigEndian.Uint16(buf[:])
}

// Int16 returns parameter i as big-endian int16.
func (l *Layout) Int16(s memory.Store, i int) int16 {
	var buf [SizeInt16]byte
	if !l.raw(s, i, SizeInt16, ParamInt16, buf[:]) {
		return 0
	}
	return int16(binary.BigEndian.Uint16(buf[:]))
}

// Uint32 returns parameter i as big-endian uint32.
func (l *Layout) Uint32(s memory.Store, i int) uint32 {
	var buf [SizeUint32]byte
	if !l.raw(s, i, SizeUint32, ParamUint32, buf[:]) {
		return 0
	}
	return binary.BigEndian.Uint32(buf[:])
}

// Int32 returns parameter i as big-endian int32.
func (l *Layout) Int32(s memory.Store, i int) int32 {
	var buf [SizeInt32]byte
	if !l.raw(s, i, SizeInt32, ParamInt32, buf[:]) {
		return 0
	}
	return int32(binary.BigEndian.Uint32(buf[:]))
}

// Text returns parameter i as text, truncated at the first NUL byte.
func (l *Layout) Text(s memory.Store, i int) string {
	var buf [SizeString11]byte
	if !l.raw(s, i, SizeString11, ParamString11, buf[:]) {
		return ""
	}
	for n, b := range buf {
		if b == 0x00 {
			return string(buf[:n])
		}
	}
	return string(buf[:])
}
