// Package config provides YAML-based configuration loading and validation
// for memocart: the player profile, developer tuning, storage and the SSH
// server.
package config

import "time"

// Config is the whole memocart configuration file.
type Config struct {
	Player  Player  `yaml:"player"`
	Tuning  Tuning  `yaml:"tuning"`
	Storage Storage `yaml:"storage"`
	Server  Server  `yaml:"server"`
}

// Game modes.
const (
	ModeRandom = "random" // a fresh seed every run
	ModeDaily  = "daily"  // everyone plays the map of the day
)

// Qualities accepted in the player profile.
const (
	QualityLow    = "low"
	QualityMedium = "medium"
	QualityHigh   = "high"
)

// Player is the persisted player profile.
type Player struct {
	Quality  string `yaml:"quality"`
	Mode     string `yaml:"mode"`
	Username string `yaml:"username"`
	// Seed pins the map. Never persisted: it is per session.
	Seed string `yaml:"-"`
}

// Tuning holds frontend and developer settings.
type Tuning struct {
	TickRate int    `yaml:"tick_rate"` // frames per second of the terminal loop
	Messages string `yaml:"messages"`  // "keyboard" or "touch" hints
	Debug    Debug  `yaml:"debug"`
}

// Debug mirrors game.Debug.
type Debug struct {
	FreeControls bool `yaml:"free_controls"`
	NoSpeed      bool `yaml:"no_speed"`
	NoCache      bool `yaml:"no_cache"` // regenerate every segment, for tuning the generator
}

// Storage locates the SQLite database.
type Storage struct {
	DBPath string `yaml:"db_path"`
}

// Server configures `memocart serve`.
type Server struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}
