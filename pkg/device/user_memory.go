package device

import (
	"errors"
	"fmt"

	"github.com/konnekting/konnekting-go/pkg/memory"
)

// ErrReservedArea is returned for application access below the free store
// offset, where flags, address, object table and parameters live.
var ErrReservedArea = errors.New("device: address inside configuration area")

// FreeStoreOffset returns the first store address available to the
// application.
func (d *Device) FreeStoreOffset() uint16 {
	return d.layout.FreeStoreOffset()
}

// WriteUserMemory writes data to the application area of the store starting
// at offset. Bytes already holding the value are not rewritten. The write is
// persisted on the next Commit and marks a reboot as required.
func (d *Device) WriteUserMemory(offset uint16, data []byte) error {
	if err := d.checkUserArea(offset); err != nil {
		return err
	}
	memory.UpdateBytes(d.store, offset, data)
	d.mode.MarkRebootRequired()
	return nil
}

// ReadUserMemory reads len(out) bytes of the application area starting at
// offset.
func (d *Device) ReadUserMemory(offset uint16, out []byte) error {
	if err := d.checkUserArea(offset); err != nil {
		return err
	}
	memory.ReadBytes(d.store, offset, out)
	return nil
}

// Commit persists pending store writes.
func (d *Device) Commit() error {
	return d.store.Commit()
}

func (d *Device) checkUserArea(offset uint16) error {
	if free := d.FreeStoreOffset(); offset < free {
		return fmt.Errorf("%w: 0x%04X < 0x%04X", ErrReservedArea, offset, free)
	}
	return nil
}
