package wire

// Message is a decoded frame.
type Message interface {
	// Type returns the message type.
	Type() MessageType

	// Encode returns the message as a frame.
	Encode() Frame
}

// Ack acknowledges a request.
type Ack struct {
	AckType   AckType
	ErrorCode ErrorCode
}

// PropertyPageRead asks the addressed device for a property page.
type PropertyPageRead struct {
	Address uint16
	Page    byte
}

// DeviceInfo is the content of the device info property page.
type DeviceInfo struct {
	Manufacturer uint16
	Device       uint8
	Revision     uint8
	Flags        uint8
	SystemType   uint8
}

// PropertyPageResponse carries the device info page.
type PropertyPageResponse struct {
	Info DeviceInfo
}

// Restart asks the addressed device to restart.
type Restart struct {
	Address uint16
}

// ProgrammingModeWrite switches programming mode on the addressed device.
type ProgrammingModeWrite struct {
	Address uint16
	Enabled bool
}

// ProgrammingModeRead asks devices in programming mode for their address.
type ProgrammingModeRead struct{}

// ProgrammingModeResponse reports the address of a device in programming mode.
type ProgrammingModeResponse struct {
	Address uint16
}

// MemoryWrite writes Count bytes of Data to the store starting at Start.
type MemoryWrite struct {
	Count uint8
	Start uint16
	Data  [MaxMemoryData]byte
}

// Bytes returns the Count bytes to write.
func (m *MemoryWrite) Bytes() []byte {
	return m.Data[:m.Count]
}

// MemoryRead asks for Count bytes of the store starting at Start.
type MemoryRead struct {
	Count uint8
	Start uint16
}

// MemoryResponse returns Count store bytes. Address is the bus address of the
// answering device.
type MemoryResponse struct {
	Count   uint8
	Address uint16
	Data    [MaxMemoryData]byte
}

// Bytes returns the Count bytes read.
func (m *MemoryResponse) Bytes() []byte {
	return m.Data[:m.Count]
}

// Unknown is a frame with an unsupported message type.
type Unknown struct {
	MsgType MessageType
	Payload [FrameSize - 2]byte
}

// Type implementations.
func (*Ack) Type() MessageType                     { return MsgAck }
func (*PropertyPageRead) Type() MessageType        { return MsgPropertyPageRead }
func (*PropertyPageResponse) Type() MessageType    { return MsgPropertyPageResponse }
func (*Restart) Type() MessageType                 { return MsgRestart }
func (*ProgrammingModeWrite) Type() MessageType    { return MsgProgrammingModeWrite }
func (*ProgrammingModeRead) Type() MessageType     { return MsgProgrammingModeRead }
func (*ProgrammingModeResponse) Type() MessageType { return MsgProgrammingModeResponse }
func (*MemoryWrite) Type() MessageType             { return MsgMemoryWrite }
func (*MemoryRead) Type() MessageType              { return MsgMemoryRead }
func (*MemoryResponse) Type() MessageType          { return MsgMemoryResponse }
func (m *Unknown) Type() MessageType               { return m.MsgType }

// Encode builds an ACK frame:
//
//	[VER][ACK][ACK_TYPE][ERROR_CODE][FF...]
func (m *Ack) Encode() Frame {
	f := NewFrame(MsgAck)
	f[2] = byte(m.AckType)
	f[3] = byte(m.ErrorCode)
	return f
}

// Encode builds a property page read frame:
//
//	[VER][TYPE][ADDR_H][ADDR_L][PAGE][FF...]
func (m *PropertyPageRead) Encode() Frame {
	f := NewFrame(MsgPropertyPageRead)
	f.putUint16(2, m.Address)
	f[4] = m.Page
	return f
}

// Encode builds a device info response frame:
//
//	[VER][TYPE][MANU_H][MANU_L][DEVICE][REVISION][FLAGS][SYSTEM_TYPE][FF...]
func (m *PropertyPageResponse) Encode() Frame {
	f := NewFrame(MsgPropertyPageResponse)
	f.putUint16(2, m.Info.Manufacturer)
	f[4] = m.Info.Device
	f[5] = m.Info.Revision
	f[6] = m.Info.Flags
	f[7] = m.Info.SystemType
	return f
}

// Encode builds a restart frame:
//
//	[VER][TYPE][ADDR_H][ADDR_L][FF...]
func (m *Restart) Encode() Frame {
	f := NewFrame(MsgRestart)
	f.putUint16(2, m.Address)
	return f
}

// Encode builds a programming mode write frame:
//
//	[VER][TYPE][ADDR_H][ADDR_L][ENABLED][FF...]
func (m *ProgrammingModeWrite) Encode() Frame {
	f := NewFrame(MsgProgrammingModeWrite)
	f.putUint16(2, m.Address)
	f[4] = 0x00
	if m.Enabled {
		f[4] = 0x01
	}
	return f
}

// Encode builds a programming mode read frame.
func (m *ProgrammingModeRead) Encode() Frame {
	return NewFrame(MsgProgrammingModeRead)
}

// Encode builds a programming mode response frame:
//
//	[VER][TYPE][ADDR_H][ADDR_L][FF...]
func (m *ProgrammingModeResponse) Encode() Frame {
	f := NewFrame(MsgProgrammingModeResponse)
	f.putUint16(2, m.Address)
	return f
}

// Encode builds a memory write frame:
//
//	[VER][TYPE][COUNT][START_H][START_L][DATA(count)][FF...]
func (m *MemoryWrite) Encode() Frame {
	f := NewFrame(MsgMemoryWrite)
	f[2] = m.Count
	f.putUint16(3, m.Start)
	copy(f[5:], m.Data[:min(int(m.Count), MaxMemoryData)])
	return f
}

// Encode builds a memory read frame:
//
//	[VER][TYPE][COUNT][START_H][START_L][FF...]
func (m *MemoryRead) Encode() Frame {
	f := NewFrame(MsgMemoryRead)
	f[2] = m.Count
	f.putUint16(3, m.Start)
	return f
}

// Encode builds a memory response frame:
//
//	[VER][TYPE][COUNT][ADDR_H][ADDR_L][DATA(count)][FF...]
func (m *MemoryResponse) Encode() Frame {
	f := NewFrame(MsgMemoryResponse)
	f[2] = m.Count
	f.putUint16(3, m.Address)
	copy(f[5:], m.Data[:min(int(m.Count), MaxMemoryData)])
	return f
}

// Encode rebuilds the original frame.
func (m *Unknown) Encode() Frame {
	var f Frame
	f[0] = ProtocolVersion
	f[1] = byte(m.MsgType)
	copy(f[2:], m.Payload[:])
	return f
}

// Compile-time interface satisfaction checks.
var (
	_ Message = (*Ack)(nil)
	_ Message = (*PropertyPageRead)(nil)
	_ Message = (*PropertyPageResponse)(nil)
	_ Message = (*Restart)(nil)
	_ Message = (*ProgrammingModeWrite)(nil)
	_ Message = (*ProgrammingModeRead)(nil)
	_ Message = (*ProgrammingModeResponse)(nil)
	_ Message = (*MemoryWrite)(nil)
	_ Message = (*MemoryRead)(nil)
	_ Message = (*MemoryResponse)(nil)
	_ Message = (*Unknown)(nil)
)
