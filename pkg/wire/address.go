package wire

import (
	"fmt"
	"strconv"
	"strings"
)

// FactoryAddress is the bus address of an unprovisioned device (1.1.254).
const FactoryAddress uint16 = 0x11FE

// ProvisioningGroupAddress is the group address of the provisioning
// object (15/7/255).
const ProvisioningGroupAddress uint16 = 0x7FFF

// PhysicalAddress builds a device address from area, line and member.
func PhysicalAddress(area, line, member uint8) uint16 {
	return uint16(area&0x0F)<<12 | uint16(line&0x0F)<<8 | uint16(member)
}

// GroupAddress builds a three-level group address.
func GroupAddress(main, middle, sub uint8) uint16 {
	return uint16(main&0x1F)<<11 | uint16(middle&0x07)<<8 | uint16(sub)
}

// FormatPhysical formats a device address as area.line.member.
func FormatPhysical(addr uint16) string {
	return fmt.Sprintf("%d.%d.%d", addr>>12, (addr>>8)&0x0F, addr&0xFF)
}

// FormatGroup formats a group address as main/middle/sub.
func FormatGroup(addr uint16) string {
	return fmt.Sprintf("%d/%d/%d", addr>>11, (addr>>8)&0x07, addr&0xFF)
}

// ParsePhysical parses area.line.member or a plain number (decimal or 0x hex).
func ParsePhysical(s string) (uint16, error) {
	parts := strings.Split(s, ".")
	switch len(parts) {
	case 1:
		v, err := strconv.ParseUint(s, 0, 16)
		if err != nil {
			return 0, fmt.Errorf("invalid address %q: %w", s, err)
		}
		return uint16(v), nil
	case 3:
		var vals [3]uint64
		limits := [3]uint64{15, 15, 255}
		for i, p := range parts {
			v, err := strconv.ParseUint(p, 10, 8)
			if err != nil || v > limits[i] {
				return 0, fmt.Errorf("invalid address %q", s)
			}
			vals[i] = v
		}
		return PhysicalAddress(uint8(vals[0]), uint8(vals[1]), uint8(vals[2])), nil
	default:
		return 0, fmt.Errorf("invalid address %q", s)
	}
}
