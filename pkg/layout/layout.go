package layout

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/konnekting/konnekting-go/pkg/memory"
)

// System record offsets.
const (
	DeviceFlagsOffset  uint16 = 0
	AddressHiOffset    uint16 = 1
	AddressLoOffset    uint16 = 2
	ObjectTableOffset  uint16 = 3
	ObjectEntrySize           = 3
	ObjectActiveMask   byte   = 0x80
	MaxObjects                = 255
	FactoryDeviceFlags byte   = 0xFF
)

// Layout errors.
var (
	ErrTooManyObjects   = errors.New("too many communication objects")
	ErrUnknownParamType = errors.New("unknown parameter type")
	ErrBadParamSize     = errors.New("invalid parameter size")
	ErrStoreOverflow    = errors.New("layout exceeds store address space")
)

// Layout maps the configuration of one device build onto store offsets.
// Object count and parameter sizes are fixed at construction.
type Layout struct {
	objects int
	sizes   []uint8
	logger  *slog.Logger
}

// New creates a layout for objects communication objects and the given
// parameter size table. The table is copied.
func New(objects int, sizes []uint8) (*Layout, error) {
	if objects < 0 || objects > MaxObjects {
		return nil, fmt.Errorf("%w: %d", ErrTooManyObjects, objects)
	}

	end := int(ObjectTableOffset) + objects*ObjectEntrySize
	for i, sz := range sizes {
		switch sz {
		case SizeUint8, SizeUint16, SizeUint32, SizeString11:
		default:
			return nil, fmt.Errorf("%w: parameter %d has size %d", ErrBadParamSize, i, sz)
		}
		end += int(sz)
	}
	if end > 0x10000 {
		return nil, ErrStoreOverflow
	}

	l := &Layout{
		objects: objects,
		sizes:   make([]uint8, len(sizes)),
	}
	copy(l.sizes, sizes)
	return l, nil
}

// NewFromTypes creates a layout from a list of parameter types.
func NewFromTypes(objects int, types []ParamType) (*Layout, error) {
	for i, t := range types {
		if t.Size() == 0 {
			return nil, fmt.Errorf("%w: parameter %d", ErrUnknownParamType, i)
		}
	}
	return New(objects, Sizes(types))
}

// SetLogger sets the logger used for parameter access warnings.
func (l *Layout) SetLogger(logger *slog.Logger) {
	l.logger = logger
}

// ObjectCount returns the number of communication objects.
func (l *Layout) ObjectCount() int {
	return l.objects
}

// ParamCount returns the number of configured parameters.
func (l *Layout) ParamCount() int {
	return len(l.sizes)
}

// ParamSize returns the size of parameter i in bytes, or 0 if i is out of range.
func (l *Layout) ParamSize(i int) uint8 {
	if i < 0 || i >= len(l.sizes) {
		return 0
	}
	return l.sizes[i]
}

// CalcSkipBytes returns the sum of the sizes of parameters 0..i-1.
func (l *Layout) CalcSkipBytes(i int) uint16 {
	var skip uint16
	for j := 0; j < i && j < len(l.sizes); j++ {
		skip += uint16(l.sizes[j])
	}
	return skip
}

// ObjectEntryOffset returns the store offset of object i's table entry.
func (l *Layout) ObjectEntryOffset(i int) uint16 {
	return ObjectTableOffset + uint16(i*ObjectEntrySize)
}

// ParamTableOffset returns the store offset of the first parameter.
func (l *Layout) ParamTableOffset() uint16 {
	return l.ObjectEntryOffset(l.objects)
}

// ParamOffset returns the store offset of parameter i.
func (l *Layout) ParamOffset(i int) uint16 {
	return l.ParamTableOffset() + l.CalcSkipBytes(i)
}

// FreeStoreOffset returns the first store offset past the last parameter.
// Bytes from here on belong to the application.
func (l *Layout) FreeStoreOffset() uint16 {
	return l.ParamOffset(len(l.sizes))
}

// ParamValue copies the raw bytes of parameter i into out. It does nothing
// if i is out of range. out must hold at least ParamSize(i) bytes.
func (l *Layout) ParamValue(s memory.Store, i int, out []byte) {
	if i < 0 || i >= len(l.sizes) {
		return
	}
	n := int(l.sizes[i])
	if len(out) < n {
		n = len(out)
	}
	memory.ReadBytes(s, l.ParamOffset(i), out[:n])
}

func (l *Layout) warn(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Warn(msg, args...)
	}
}
