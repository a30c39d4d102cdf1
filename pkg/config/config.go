package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/konnekting/konnekting-go/pkg/device"
	"github.com/konnekting/konnekting-go/pkg/layout"
	"github.com/konnekting/konnekting-go/pkg/memory"
)

// Format is the encoding of a description file.
type Format uint8

const (
	FormatYAML Format = iota
	FormatTOML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// Errors returned by Load and Validate.
var (
	ErrUnknownFormat = errors.New("unknown config file format")
	ErrInvalid       = errors.New("invalid device description")
)

// Device is a device description.
type Device struct {
	Manufacturer uint16   `yaml:"manufacturer" toml:"manufacturer"`
	DeviceID     uint8    `yaml:"device" toml:"device"`
	Revision     uint8    `yaml:"revision" toml:"revision"`
	Objects      int      `yaml:"objects" toml:"objects"`
	Params       []string `yaml:"params" toml:"params"`
	Store        Store    `yaml:"store" toml:"store"`
	ProtocolLog  string   `yaml:"protocol_log" toml:"protocol_log"`
}

// Store describes the store image of a simulated device.
type Store struct {
	// Path of the image file. Empty keeps the store in memory.
	Path string `yaml:"path" toml:"path"`

	// Size in bytes. Defaults to memory.DefaultSize.
	Size int `yaml:"size" toml:"size"`
}

// Default returns a small description usable without a file.
func Default() *Device {
	return &Device{
		Manufacturer: 0xDEAD,
		DeviceID:     0x01,
		Revision:     0x00,
		Objects:      4,
		Params:       []string{"uint8", "uint8", "uint16", "int32", "string11"},
		Store:        Store{Size: memory.DefaultSize},
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Load reads and validates the description at path. Relative store and log
// paths are resolved against the directory of path.
func Load(path string) (*Device, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	d, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("config parse failed (%s): %w", path, err)
	}

	dir := filepath.Dir(path)
	if d.Store.Path != "" && !filepath.IsAbs(d.Store.Path) {
		d.Store.Path = filepath.Join(dir, d.Store.Path)
	}
	if d.ProtocolLog != "" && !filepath.IsAbs(d.ProtocolLog) {
		d.ProtocolLog = filepath.Join(dir, d.ProtocolLog)
	}
	return d, nil
}

// Parse decodes and validates a description.
func Parse(data []byte, format Format) (*Device, error) {
	var d Device
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, err
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &d); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}

	if d.Store.Size == 0 {
		d.Store.Size = memory.DefaultSize
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks object count, parameter types and that the layout fits
// into the store.
func (d *Device) Validate() error {
	if d.Objects < 0 || d.Objects > layout.MaxObjects {
		return fmt.Errorf("%w: objects must be 0..%d, got %d", ErrInvalid, layout.MaxObjects, d.Objects)
	}
	if d.Store.Size <= 0 || d.Store.Size > 0x10000 {
		return fmt.Errorf("%w: store size must be 1..65536, got %d", ErrInvalid, d.Store.Size)
	}
	lay, err := d.Layout()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if free := int(lay.FreeStoreOffset()); free > d.Store.Size {
		return fmt.Errorf("%w: layout needs %d bytes, store has %d", ErrInvalid, free, d.Store.Size)
	}
	return nil
}

// ParamTypes parses the parameter type names.
func (d *Device) ParamTypes() ([]layout.ParamType, error) {
	types := make([]layout.ParamType, len(d.Params))
	for i, name := range d.Params {
		t, err := layout.ParseParamType(strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			return nil, fmt.Errorf("param[%d]: %w", i, err)
		}
		types[i] = t
	}
	return types, nil
}

// Layout builds the store layout of the described device.
func (d *Device) Layout() (*layout.Layout, error) {
	types, err := d.ParamTypes()
	if err != nil {
		return nil, err
	}
	return layout.NewFromTypes(d.Objects, types)
}

// Identity returns the device identity.
func (d *Device) Identity() device.Identity {
	return device.Identity{
		Manufacturer: d.Manufacturer,
		Device:       d.DeviceID,
		Revision:     d.Revision,
	}
}

// OpenStore opens the configured store: a file image when a path is set,
// otherwise an in-memory store.
func (d *Device) OpenStore() (memory.Store, error) {
	if d.Store.Path == "" {
		return memory.NewMemoryStore(d.Store.Size), nil
	}
	return memory.OpenFileStore(d.Store.Path, d.Store.Size)
}
