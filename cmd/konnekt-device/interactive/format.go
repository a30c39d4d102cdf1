package interactive

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/konnekting/konnekting-go/pkg/device"
	"github.com/konnekting/konnekting-go/pkg/layout"
)

// FormatParam formats parameter i of type t.
func FormatParam(d *device.Device, i int, t layout.ParamType) string {
	switch t {
	case layout.ParamUint8:
		return fmt.Sprint(d.ParamUint8(i))
	case layout.ParamInt8:
		return fmt.Sprint(d.ParamInt8(i))
	case layout.ParamUint16:
		return fmt.Sprint(d.ParamUint16(i))
	case layout.ParamInt16:
		return fmt.Sprint(d.ParamInt16(i))
	case layout.ParamUint32:
		return fmt.Sprint(d.ParamUint32(i))
	case layout.ParamInt32:
		return fmt.Sprint(d.ParamInt32(i))
	case layout.ParamString11:
		return fmt.Sprintf("%q", d.ParamText(i))
	default:
		return "?"
	}
}

func parseHexBytes(s string) ([]byte, error) {
	s = strings.NewReplacer(" ", "", ":", "", "-", "").Replace(s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}
	return b, nil
}
