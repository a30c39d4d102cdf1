package memory

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore is a write-back Store persisted as a raw image file.
//
// Writes modify a RAM image and mark it dirty. Commit writes the image to a
// temporary file in the same directory and renames it over the target, so a
// power loss during Commit leaves the previous image intact.
type FileStore struct {
	path  string
	image *MemoryStore
	dirty bool
}

// OpenFileStore opens the image at path. A missing file yields an erased
// image of the given size; an existing image is padded with Erased or
// truncated to size.
func OpenFileStore(path string, size int) (*FileStore, error) {
	if size <= 0 || size > 0x10000 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	image := NewMemoryStore(size)
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Fresh device: erased image.
	case err != nil:
		return nil, fmt.Errorf("read store image: %w", err)
	default:
		copy(image.data, data)
	}

	return &FileStore{path: path, image: image}, nil
}

// Path returns the image file path.
func (s *FileStore) Path() string {
	return s.path
}

// Read returns the byte at addr.
func (s *FileStore) Read(addr uint16) byte {
	return s.image.Read(addr)
}

// Write stores b at addr in the RAM image.
func (s *FileStore) Write(addr uint16, b byte) {
	if int(addr) >= s.image.Size() {
		return
	}
	s.image.Write(addr, b)
	s.dirty = true
}

// Update stores b at addr if it differs from the current value.
func (s *FileStore) Update(addr uint16, b byte) {
	if s.image.Read(addr) == b {
		return
	}
	s.Write(addr, b)
}

// Dirty reports whether the RAM image has uncommitted writes.
func (s *FileStore) Dirty() bool {
	return s.dirty
}

// Commit flushes the RAM image to disk if it has uncommitted writes.
func (s *FileStore) Commit() error {
	if !s.dirty {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(s.image.data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return err
	}

	s.dirty = false
	return nil
}

// Compile-time interface satisfaction check.
var _ Store = (*FileStore)(nil)
