// internal/config/config.go
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sparques/irkey/keymap"
)

type Config struct {
	Receiver ReceiverConfig `yaml:"receiver"`
	Keymap   KeymapConfig   `yaml:"keymap"`

	// directory of the loaded file; relative keymap files resolve against it
	dir string
}

// ---- RECEIVER ----

type ReceiverConfig struct {
	Pin    string `yaml:"pin"`     // periph.io pin name, e.g. GPIO17
	PollMs int    `yaml:"poll_ms"` // Decode poll period
	Raw    bool   `yaml:"raw"`     // log raw codes instead of keys
}

// ---- KEYMAP ----

// KeymapConfig layers a preset, a key file and inline keys, in that order,
// into one table.
type KeymapConfig struct {
	Preset string         `yaml:"preset"`
	File   string         `yaml:"file"`
	Keys   []keymap.Entry `yaml:"keys"`
}

// Load reads and decodes a config file. It does not validate.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return &cfg, nil
}

// Table builds the key table described by the keymap section.
// It MUST be called only after Validate().
func (c *Config) Table() (*keymap.Table, error) {
	var bindings []keymap.Binding

	if c.Keymap.Preset != "" {
		t, err := keymap.Preset(c.Keymap.Preset)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, t.Bindings()...)
	}

	if c.Keymap.File != "" {
		path := c.Keymap.File
		if !filepath.IsAbs(path) && c.dir != "" {
			path = filepath.Join(c.dir, path)
		}
		b, err := keymap.Load(path)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b...)
	}

	b, err := keymap.Bindings(c.Keymap.Keys)
	if err != nil {
		return nil, err
	}
	bindings = append(bindings, b...)

	return keymap.New(bindings...)
}
