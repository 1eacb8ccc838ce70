// Package config loads the core's persistent settings from an optional
// YAML file, the way the teacher's CLI layers flags over a simpler
// default set: config-file-then-flag-override, with the flag always
// winning when the user actually passes one.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// KeyMapping maps a host key name (e.g. "ArrowLeft") to the Spectrum
// keyboard matrix position it should press.
type KeyMapping struct {
	Row uint8 `yaml:"row"`
	Col uint8 `yaml:"col"`
}

// Config holds every setting a flag can override. Load starts from
// Default(), so fields a config file leaves out keep their default
// values; a field the file sets explicitly, even to zero, is used as
// given.
type Config struct {
	BorderColour     uint8                 `yaml:"border_colour"`
	DebugBreakpoint  uint16                `yaml:"debug_breakpoint"`
	MonitorAddr      string                `yaml:"monitor_addr"`
	KeyMap           map[string]KeyMapping `yaml:"key_map"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		BorderColour: 7, // white, the ROM's own startup border
		MonitorAddr:  "",
		KeyMap:       map[string]KeyMapping{},
	}
}

// Load reads and parses a YAML config file. A missing file is not an
// error: Default() is returned unchanged, since the config file is
// optional persistent settings layered under flags, not a requirement.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg back out as YAML, for a host UI that lets the user
// edit key bindings or border colour and persist the result.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// OverrideBorderColour applies a flag value over the config file's
// setting only when the flag was explicitly set (ok == true), matching
// the config-file-then-flag-override idiom used throughout this stack.
func (c *Config) OverrideBorderColour(value uint8, ok bool) {
	if ok {
		c.BorderColour = value
	}
}
