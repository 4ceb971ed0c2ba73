// Package config holds the environment-driven runtime configuration.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/arenaforge/arena-api/internal/errors"
)

// Storage backends for the event log and session archive.
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

// Config is parsed from environment variables at startup.
type Config struct {
	// Process
	Port        string `env:"PORT" envDefault:"50051"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// Storage
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`
	RedisAddr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	SQLitePath     string `env:"SQLITE_PATH" envDefault:"arena.db"`

	// Session timing
	SessionDuration     time.Duration `env:"SESSION_DURATION" envDefault:"10m"`
	EndingGrace         time.Duration `env:"ENDING_GRACE" envDefault:"60s"`
	PlayerTurnTimeout   time.Duration `env:"PLAYER_TURN_TIMEOUT" envDefault:"20s"`
	DMTimeout           time.Duration `env:"DM_TIMEOUT" envDefault:"5s"`
	InterTurnDelay      time.Duration `env:"INTER_TURN_DELAY" envDefault:"500ms"`
	ExplorationInterval time.Duration `env:"EXPLORATION_INTERVAL" envDefault:"3s"`

	// PlayerAIScript is an optional path to a Lua decide() script that
	// replaces the built-in demo player decider for agentless tokens.
	PlayerAIScript string `env:"PLAYER_AI_SCRIPT"`

	// Event catch-up
	CatchupLimit  int `env:"CATCHUP_LIMIT" envDefault:"500"`
	BootstrapTail int `env:"BOOTSTRAP_TAIL" envDefault:"120"`

	// Demo
	DemoDelayScale float64 `env:"DEMO_DELAY_SCALE" envDefault:"0.35"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	switch c.StorageBackend {
	case StorageMemory, StorageRedis, StorageSQLite:
	default:
		vb.Fieldf("STORAGE_BACKEND", "must be one of %s, %s, %s",
			StorageMemory, StorageRedis, StorageSQLite)
	}
	if c.StorageBackend == StorageRedis && c.RedisAddr == "" {
		vb.RequiredField("REDIS_ADDR")
	}
	if c.StorageBackend == StorageSQLite && c.SQLitePath == "" {
		vb.RequiredField("SQLITE_PATH")
	}
	if c.SessionDuration <= 0 {
		vb.Field("SESSION_DURATION", "must be positive")
	}
	if c.PlayerTurnTimeout <= 0 {
		vb.Field("PLAYER_TURN_TIMEOUT", "must be positive")
	}
	if c.DMTimeout <= 0 {
		vb.Field("DM_TIMEOUT", "must be positive")
	}
	if c.ExplorationInterval <= 0 {
		vb.Field("EXPLORATION_INTERVAL", "must be positive")
	}
	if c.CatchupLimit <= 0 {
		vb.Field("CATCHUP_LIMIT", "must be positive")
	}
	if c.BootstrapTail <= 0 {
		vb.Field("BOOTSTRAP_TAIL", "must be positive")
	}
	if c.BootstrapTail > c.CatchupLimit {
		vb.Field("BOOTSTRAP_TAIL", "must not exceed CATCHUP_LIMIT")
	}
	if c.DemoDelayScale < 0 {
		vb.Field("DEMO_DELAY_SCALE", "must not be negative")
	}

	return vb.Build()
}
