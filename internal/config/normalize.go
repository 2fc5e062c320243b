// internal/config/normalize.go
package config

// DefaultPollMs is the Decode poll period used when poll_ms is unset.
const DefaultPollMs = 10

// Normalize applies post-validation defaults.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Receiver.PollMs == 0 {
		cfg.Receiver.PollMs = DefaultPollMs
	}
}
