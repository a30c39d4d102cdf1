package device

// Typed parameter access. Mismatched sizes and indexes out of range return
// the zero value; the layout logs a warning.

// ParamCount returns the number of configured parameters.
func (d *Device) ParamCount() int { return d.layout.ParamCount() }

// ParamSize returns the size of parameter i in bytes, or 0 if out of range.
func (d *Device) ParamSize(i int) uint8 { return d.layout.ParamSize(i) }

// ParamValue copies the raw bytes of parameter i into out.
func (d *Device) ParamValue(i int, out []byte) { d.layout.ParamValue(d.store, i, out) }

// ParamUint8 returns parameter i as an unsigned byte.
func (d *Device) ParamUint8(i int) uint8 { return d.layout.Uint8(d.store, i) }

// ParamInt8 returns parameter i as a signed byte.
func (d *Device) ParamInt8(i int) int8 { return d.layout.Int8(d.store, i) }

// ParamUint16 returns the big-endian parameter i as uint16.
func (d *Device) ParamUint16(i int) uint16 { return d.layout.Uint16(d.store, i) }

// ParamInt16 returns the big-endian parameter i as int16.
func (d *Device) ParamInt16(i int) int16 { return d.layout.Int16(d.store, i) }

// ParamUint32 returns the big-endian parameter i as uint32.
func (d *Device) ParamUint32(i int) uint32 { return d.layout.Uint32(d.store, i) }

// ParamInt32 returns the big-endian parameter i as int32.
func (d *Device) ParamInt32(i int) int32 { return d.layout.Int32(d.store, i) }

// ParamText returns the 11-byte text parameter i, cut at the first NUL byte.
func (d *Device) ParamText(i int) string { return d.layout.Text(d.store, i) }
