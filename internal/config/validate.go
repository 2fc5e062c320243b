// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/sparques/irkey/keymap"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	// ------------------------------------------------------------
	// RECEIVER
	// ------------------------------------------------------------

	if cfg.Receiver.Pin == "" {
		return fmt.Errorf("receiver.pin is required")
	}
	if cfg.Receiver.PollMs < 0 {
		return fmt.Errorf("receiver.poll_ms must not be negative (got %d)", cfg.Receiver.PollMs)
	}

	// ------------------------------------------------------------
	// KEYMAP
	// ------------------------------------------------------------

	km := cfg.Keymap

	// raw mode logs codes as they come; a table is optional there
	if km.Preset == "" && km.File == "" && len(km.Keys) == 0 && !cfg.Receiver.Raw {
		return fmt.Errorf("keymap: one of preset, file or keys is required")
	}

	if km.Preset != "" {
		if _, err := keymap.Preset(km.Preset); err != nil {
			return fmt.Errorf("keymap.preset: %w", err)
		}
	}

	if _, err := keymap.Bindings(km.Keys); err != nil {
		return fmt.Errorf("keymap.%w", err)
	}

	return nil
}
