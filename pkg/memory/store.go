package memory

import "errors"

// Erased is the value of a byte that has never been written.
const Erased byte = 0xFF

// DefaultSize is the default store size in bytes.
const DefaultSize = 8192

// ErrInvalidSize is returned when a store is opened with an unusable size.
var ErrInvalidSize = errors.New("invalid store size")

// Store is a byte-addressable persistent memory.
//
// Implementations are not required to be safe for concurrent use; the
// device core owns the store exclusively.
type Store interface {
	// Read returns the byte at addr.
	Read(addr uint16) byte

	// Write stores b at addr unconditionally.
	Write(addr uint16, b byte)

	// Update stores b at addr only if the stored value differs.
	Update(addr uint16, b byte)

	// Commit makes all pending writes durable.
	Commit() error
}

// ReadBytes fills out with consecutive bytes starting at addr.
func ReadBytes(s Store, addr uint16, out []byte) {
	for i := range out {
		out[i] = s.Read(addr + uint16(i))
	}
}

// WriteBytes writes data to consecutive addresses starting at addr.
func WriteBytes(s Store, addr uint16, data []byte) {
	for i, b := range data {
		s.Write(addr+uint16(i), b)
	}
}

// UpdateBytes updates consecutive addresses starting at addr, skipping bytes
// that already hold the requested value.
func UpdateBytes(s Store, addr uint16, data []byte) {
	for i, b := range data {
		s.Update(addr+uint16(i), b)
	}
}
