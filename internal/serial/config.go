package serial

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultConfigPath is where the hub looks for its port map (spec §6).
const DefaultConfigPath = "config/ports.toml"

// defaultConfigTOML is written out the first time the program runs and no
// config file exists yet. It documents the schema without configuring any
// real port, so the program starts with zero ports (spec §6).
const defaultConfigTOML = `# seriscope port configuration.
# Each table below names one port. Uncomment and edit to add a port.
#
# [uart0]
# path        = "/dev/ttyUSB0"   # required
# baud_rate   = 115200            # default 115200
# line_ending = "lf"              # "lf" | "cr" | "crlf", default "lf"
# color       = "green"           # named color or "#RRGGBB", default "reset"
`

// LoadPortConfigs reads a TOML document whose top-level tables are keyed by
// port name (spec §4.2). A schema error for any single port rejects the
// whole file.
func LoadPortConfigs(path string) (map[PortName]PortConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("reading %s: %w", path, err)}
	}

	var raw map[string]rawPortConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("parsing %s: %w", path, err)}
	}

	out := make(map[PortName]PortConfig, len(raw))
	for name, r := range raw {
		cfg, err := r.toPortConfig()
		if err != nil {
			return nil, &ConfigError{Port: name, Err: err}
		}
		out[name] = cfg
	}
	return out, nil
}

// EnsureConfigFile creates a commented default config at path if nothing
// exists there yet. Returns true if it created the file.
func EnsureConfigFile(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, err
		}
	}
	if err := os.WriteFile(path, []byte(defaultConfigTOML), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// SaveConfig writes the given port map back out as TOML, round-tripping
// through the same rawPortConfig shape LoadPortConfigs reads (supplemented
// feature; see SPEC_FULL.md).
func SaveConfig(path string, configs map[PortName]PortConfig) error {
	v := viper.New()
	v.SetConfigType("toml")

	for name, cfg := range configs {
		raw := cfg.toRaw()
		v.Set(name+".path", raw.Path)
		v.Set(name+".baud_rate", raw.BaudRate)
		v.Set(name+".line_ending", raw.LineEnding)
		v.Set(name+".color", raw.Color)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return v.WriteConfigAs(path)
}
