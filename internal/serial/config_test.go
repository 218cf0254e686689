package serial

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveConfigRoundTripsThroughTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ports.toml")

	green, err := ParseColor("green")
	require.NoError(t, err)
	hex, err := ParseColor("#1A2B3C")
	require.NoError(t, err)

	want := map[PortName]PortConfig{
		"uart0": {Path: "/dev/ttyUSB0", BaudRate: 115200, LineEnding: LF, Color: green},
		"uart1": {Path: "/dev/ttyACM0", BaudRate: 57600, LineEnding: CRLF, Color: hex},
	}

	require.NoError(t, SaveConfig(path, want))

	got, err := LoadPortConfigs(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadPortConfigsRejectsWholeFileOnOnePortError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ports.toml")

	const doc = `
[good]
path = "/dev/ttyUSB0"
baud_rate = 9600

[bad]
baud_rate = 9600
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := LoadPortConfigs(path)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "bad", cfgErr.Port)
}

func TestLoadPortConfigsRejectsMissingFile(t *testing.T) {
	_, err := LoadPortConfigs(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Empty(t, cfgErr.Port, "file-level errors carry no port name")
}

func TestEnsureConfigFileWritesDefaultOnceAndLeavesExistingFileAlone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config", "ports.toml")

	created, err := EnsureConfigFile(path)
	require.NoError(t, err)
	assert.True(t, created)

	original, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, defaultConfigTOML, string(original))

	require.NoError(t, os.WriteFile(path, []byte("# edited by hand\n"), 0o644))

	created, err = EnsureConfigFile(path)
	require.NoError(t, err)
	assert.False(t, created, "must not overwrite an existing file")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# edited by hand\n", string(after))
}
