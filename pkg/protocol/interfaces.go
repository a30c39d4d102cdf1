package protocol

import "github.com/konnekting/konnekting-go/pkg/wire"

// ProvisioningObjectIndex is the communication object reserved for
// provisioning traffic.
const ProvisioningObjectIndex uint8 = 255

// Bus is the part of the bus device the engine needs: access to
// communication object values.
type Bus interface {
	// ReadObject copies the current value of object index into buf.
	ReadObject(index uint8, buf []byte)

	// WriteObject sets the value of object index and sends it on the bus.
	WriteObject(index uint8, data []byte) error
}

// Target is the device the engine acts on.
type Target interface {
	// Address returns the device's bus address as loaded at startup.
	Address() uint16

	// DeviceInfo returns the content of the device info page.
	DeviceInfo() wire.DeviceInfo
}
