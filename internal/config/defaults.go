package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/memocart.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Player: Player{
			Quality: QualityLow,
			Mode:    ModeRandom,
		},
		Tuning: Tuning{
			TickRate: 60,
			Messages: "keyboard",
		},
		Storage: Storage{
			DBPath: "~/.memocart/memocart.db",
		},
		Server: Server{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
