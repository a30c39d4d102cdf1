package layout

import "github.com/konnekting/konnekting-go/pkg/memory"

// ObjectEntry is one record of the communication-object table.
type ObjectEntry struct {
	Address  uint16
	Settings byte
}

// Active reports whether the object is enabled.
func (e ObjectEntry) Active() bool {
	return e.Settings&ObjectActiveMask == ObjectActiveMask
}

// ObjectEntry reads the table entry of object i.
func (l *Layout) ObjectEntry(s memory.Store, i int) ObjectEntry {
	off := l.ObjectEntryOffset(i)
	hi := s.Read(off)
	lo := s.Read(off + 1)
	return ObjectEntry{
		Address:  uint16(hi)<<8 | uint16(lo),
		Settings: s.Read(off + 2),
	}
}

// SetObjectEntry writes the table entry of object i.
func (l *Layout) SetObjectEntry(s memory.Store, i int, e ObjectEntry) {
	off := l.ObjectEntryOffset(i)
	s.Update(off, byte(e.Address>>8))
	s.Update(off+1, byte(e.Address))
	s.Update(off+2, e.Settings)
}

// DeviceFlags reads the device flags byte.
func DeviceFlags(s memory.Store) byte {
	return s.Read(DeviceFlagsOffset)
}

// Address reads the stored bus address.
func Address(s memory.Store) uint16 {
	return uint16(s.Read(AddressHiOffset))<<8 | uint16(s.Read(AddressLoOffset))
}
