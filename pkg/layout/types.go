package layout

import "fmt"

// ParamType is the declared type of a configuration parameter.
type ParamType uint8

const (
	ParamUint8 ParamType = iota + 1
	ParamInt8
	ParamUint16
	ParamInt16
	ParamUint32
	ParamInt32
	ParamString11
)

// Parameter sizes in bytes.
const (
	SizeUint8    = 1
	SizeInt8     = 1
	SizeUint16   = 2
	SizeInt16    = 2
	SizeUint32   = 4
	SizeInt32    = 4
	SizeString11 = 11
)

// Size returns the number of store bytes the type occupies, or 0 for an
// unknown type.
func (t ParamType) Size() uint8 {
	switch t {
	case ParamUint8:
		return SizeUint8
	case ParamInt8:
		return SizeInt8
	case ParamUint16:
		return SizeUint16
	case ParamInt16:
		return SizeInt16
	case ParamUint32:
		return SizeUint32
	case ParamInt32:
		return SizeInt32
	case ParamString11:
		return SizeString11
	default:
		return 0
	}
}

// String returns the type name.
func (t ParamType) String() string {
	switch t {
	case ParamUint8:
		return "uint8"
	case ParamInt8:
		return "int8"
	case ParamUint16:
		return "uint16"
	case ParamInt16:
		return "int16"
	case ParamUint32:
		return "uint32"
	case ParamInt32:
		return "int32"
	case ParamString11:
		return "string11"
	default:
		return "unknown"
	}
}

// ParseParamType parses a type name as written in device description files.
func ParseParamType(s string) (ParamType, error) {
	switch s {
	case "uint8", "u8":
		return ParamUint8, nil
	case "int8", "i8":
		return ParamInt8, nil
	case "uint16", "u16":
		return ParamUint16, nil
	case "int16", "i16":
		return ParamInt16, nil
	case "uint32", "u32":
		return ParamUint32, nil
	case "int32", "i32":
		return ParamInt32, nil
	case "string11", "string":
		return ParamString11, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownParamType, s)
	}
}

// Sizes converts a list of parameter types into a size table.
func Sizes(types []ParamType) []uint8 {
	sizes := make([]uint8, len(types))
	for i, t := range types {
		sizes[i] = t.Size()
	}
	return sizes
}
