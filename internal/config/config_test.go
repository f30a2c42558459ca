package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "memory", cfg.Storage)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.TestingAPI)
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("STORAGE", "postgres")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("ENABLE_TESTING_API", "true")
	t.Setenv("JWT_SECRET", "another-secret")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.Storage)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.TestingAPI)
	assert.Equal(t, "another-secret", cfg.JWTSecret)
}

func TestNewConfig_InvalidTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "sometime")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestNewConfig_UnknownStorage(t *testing.T) {
	t.Setenv("STORAGE", "cassandra")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestNewConfig_InvalidTestingFlag(t *testing.T) {
	t.Setenv("ENABLE_TESTING_API", "maybe")

	_, err := NewConfig()
	assert.Error(t, err)
}
