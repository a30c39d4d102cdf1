package wire

import "fmt"

// Describe returns a one-line summary of a frame.
func Describe(f Frame) string {
	msg, err := DecodeFrame(f)
	if err != nil {
		return "invalid: " + err.Error()
	}

	switch m := msg.(type) {
	case *Ack:
		return fmt.Sprintf("%s type=%s code=0x%02X", m.Type(), m.AckType, byte(m.ErrorCode))
	case *PropertyPageRead:
		return fmt.Sprintf("%s addr=%s page=%d", m.Type(), FormatPhysical(m.Address), m.Page)
	case *PropertyPageResponse:
		return fmt.Sprintf("%s manufacturer=0x%04X device=0x%02X revision=0x%02X flags=0x%02X",
			m.Type(), m.Info.Manufacturer, m.Info.Device, m.Info.Revision, m.Info.Flags)
	case *Restart:
		return fmt.Sprintf("%s addr=%s", m.Type(), FormatPhysical(m.Address))
	case *ProgrammingModeWrite:
		return fmt.Sprintf("%s addr=%s enabled=%v", m.Type(), FormatPhysical(m.Address), m.Enabled)
	case *ProgrammingModeRead:
		return m.Type().String()
	case *ProgrammingModeResponse:
		return fmt.Sprintf("%s addr=%s", m.Type(), FormatPhysical(m.Address))
	case *MemoryWrite:
		return fmt.Sprintf("%s start=0x%04X data=[% X]", m.Type(), m.Start, m.Bytes())
	case *MemoryRead:
		return fmt.Sprintf("%s start=0x%04X count=%d", m.Type(), m.Start, m.Count)
	case *MemoryResponse:
		return fmt.Sprintf("%s addr=%s data=[% X]", m.Type(), FormatPhysical(m.Address), m.Bytes())
	default:
		return fmt.Sprintf("%s (0x%02X)", msg.Type(), byte(msg.Type()))
	}
}
