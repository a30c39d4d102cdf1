package memory

// FuncStore adapts caller-supplied functions to the Store interface.
// Read and Write are required. A nil Update falls back to read, compare and
// write; a nil Commit is a no-op.
type FuncStore struct {
	ReadFunc   func(addr uint16) byte
	WriteFunc  func(addr uint16, b byte)
	UpdateFunc func(addr uint16, b byte)
	CommitFunc func() error
}

// Read calls ReadFunc, or returns Erased if it is nil.
func (s *FuncStore) Read(addr uint16) byte {
	if s.ReadFunc == nil {
		return Erased
	}
	return s.ReadFunc(addr)
}

// Write calls WriteFunc.
func (s *FuncStore) Write(addr uint16, b byte) {
	if s.WriteFunc != nil {
		s.WriteFunc(addr, b)
	}
}

// Update calls UpdateFunc, falling back to a compare-and-write.
func (s *FuncStore) Update(addr uint16, b byte) {
	if s.UpdateFunc != nil {
		s.UpdateFunc(addr, b)
		return
	}
	if s.Read(addr) != b {
		s.Write(addr, b)
	}
}

// Commit calls CommitFunc.
func (s *FuncStore) Commit() error {
	if s.CommitFunc == nil {
		return nil
	}
	return s.CommitFunc()
}

// Compile-time interface satisfaction check.
var _ Store = (*FuncStore)(nil)
