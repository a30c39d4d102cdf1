package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konnekting/konnekting-go/pkg/device"
	"github.com/konnekting/konnekting-go/pkg/layout"
	"github.com/konnekting/konnekting-go/pkg/memory"
)

const yamlConfig = `
manufacturer: 0xDEAD
device: 0x42
revision: 7
objects: 2
params: [uint8, i16, string]
store:
  path: dev.eep
  size: 512
protocol_log: logs/dev.klog
`

const tomlConfig = `
manufacturer = 0xDEAD
device = 0x42
revision = 7
objects = 2
params = ["uint8", "i16", "string"]
protocol_log = "/var/log/dev.klog"

[store]
size = 512
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "device.yaml", yamlConfig)

	d, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, device.Identity{Manufacturer: 0xDEAD, Device: 0x42, Revision: 7}, d.Identity())
	assert.Equal(t, 2, d.Objects)
	assert.Equal(t, 512, d.Store.Size)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "dev.eep"), d.Store.Path)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "logs", "dev.klog"), d.ProtocolLog)

	types, err := d.ParamTypes()
	require.NoError(t, err)
	assert.Equal(t, []layout.ParamType{layout.ParamUint8, layout.ParamInt16, layout.ParamString11}, types)
}

func TestLoadTOML(t *testing.T) {
	d, err := Load(writeFile(t, "device.toml", tomlConfig))
	require.NoError(t, err)

	assert.Equal(t, uint16(0xDEAD), d.Manufacturer)
	assert.Equal(t, uint8(0x42), d.DeviceID)
	assert.Empty(t, d.Store.Path)
	assert.Equal(t, "/var/log/dev.klog", d.ProtocolLog)

	lay, err := d.Layout()
	require.NoError(t, err)
	assert.Equal(t, uint16(3+2*3+1+2+11), lay.FreeStoreOffset())

	store, err := d.OpenStore()
	require.NoError(t, err)
	_, ok := store.(*memory.MemoryStore)
	assert.True(t, ok, "store type = %T", store)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{"unknown extension", "device.json", "{}", ErrUnknownFormat},
		{"unknown param", "device.yaml", "objects: 1\nparams: [float]\n", ErrInvalid},
		{"too many objects", "device.yaml", "objects: 256\n", ErrInvalid},
		{"store too small", "device.toml", "objects = 10\n[store]\nsize = 16\n", ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultValid(t *testing.T) {
	d := Default()
	require.NoError(t, d.Validate())
	assert.Equal(t, memory.DefaultSize, d.Store.Size)
}

func TestFormatString(t *testing.T) {
	if got := FormatTOML.String(); got != "toml" {
		t.Errorf("String() = %q, want %q", got, "toml")
	}
}
