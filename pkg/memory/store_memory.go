package memory

// MemoryStore is a RAM-backed Store with a fixed size.
type MemoryStore struct {
	data []byte

	// Writes counts physical byte writes; Update skips unchanged bytes.
	writes int
}

// NewMemoryStore creates an erased in-memory store of the given size.
func NewMemoryStore(size int) *MemoryStore {
	if size <= 0 || size > 0x10000 {
		size = DefaultSize
	}
	data := make([]byte, size)
	for i := range data {
		data[i] = Erased
	}
	return &MemoryStore{data: data}
}

// Size returns the store size in bytes.
func (s *MemoryStore) Size() int {
	return len(s.data)
}

// Read returns the byte at addr, or Erased if addr is out of range.
func (s *MemoryStore) Read(addr uint16) byte {
	if int(addr) >= len(s.data) {
		return Erased
	}
	return s.data[addr]
}

// Write stores b at addr. Out-of-range writes are ignored.
func (s *MemoryStore) Write(addr uint16, b byte) {
	if int(addr) >= len(s.data) {
		return
	}
	s.data[addr] = b
	s.writes++
}

// Update stores b at addr if it differs from the current value.
func (s *MemoryStore) Update(addr uint16, b byte) {
	if s.Read(addr) == b {
		return
	}
	s.Write(addr, b)
}

// Commit is a no-op for RAM-backed stores.
func (s *MemoryStore) Commit() error {
	return nil
}

// Writes returns the number of physical byte writes performed.
func (s *MemoryStore) Writes() int {
	return s.writes
}

// Bytes returns a copy of the store image.
func (s *MemoryStore) Bytes() []byte {
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}

// Compile-time interface satisfaction check.
var _ Store = (*MemoryStore)(nil)
