package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arenaforge/arena-api/internal/config"
	"github.com/arenaforge/arena-api/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "50051", cfg.Port)
	assert.Equal(t, config.StorageMemory, cfg.StorageBackend)
	assert.Equal(t, 10*time.Minute, cfg.SessionDuration)
	assert.Equal(t, 3*time.Second, cfg.ExplorationInterval)
	assert.Equal(t, 500, cfg.CatchupLimit)
	assert.Equal(t, 120, cfg.BootstrapTail)
	assert.Empty(t, cfg.PlayerAIScript)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/arena-test.db")
	t.Setenv("INTER_TURN_DELAY", "50ms")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, config.StorageSQLite, cfg.StorageBackend)
	assert.Equal(t, "/tmp/arena-test.db", cfg.SQLitePath)
	assert.Equal(t, 50*time.Millisecond, cfg.InterTurnDelay)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "cassandra")

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "STORAGE_BACKEND")
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := func() *config.Config {
		return &config.Config{
			Port:                "50051",
			StorageBackend:      config.StorageMemory,
			SessionDuration:     10 * time.Minute,
			PlayerTurnTimeout:   20 * time.Second,
			DMTimeout:           5 * time.Second,
			ExplorationInterval: 3 * time.Second,
			CatchupLimit:        500,
			BootstrapTail:       120,
		}
	}

	require.NoError(t, base().Validate())

	tests := []struct {
		name   string
		mutate func(*config.Config)
		field  string
	}{
		{
			name:   "redis backend without address",
			mutate: func(c *config.Config) { c.StorageBackend = config.StorageRedis },
			field:  "REDIS_ADDR",
		},
		{
			name:   "zero session duration",
			mutate: func(c *config.Config) { c.SessionDuration = 0 },
			field:  "SESSION_DURATION",
		},
		{
			name:   "zero exploration interval",
			mutate: func(c *config.Config) { c.ExplorationInterval = 0 },
			field:  "EXPLORATION_INTERVAL",
		},
		{
			name:   "bootstrap tail above catchup limit",
			mutate: func(c *config.Config) { c.BootstrapTail = 501 },
			field:  "BOOTSTRAP_TAIL",
		},
		{
			name:   "negative demo delay scale",
			mutate: func(c *config.Config) { c.DemoDelayScale = -1 },
			field:  "DEMO_DELAY_SCALE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
