package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "http://localhost:5173", cfg.Server.CORSOrigin)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.NotEmpty(t, cfg.Data.Path)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Flags(t *testing.T) {
	cfg, err := Load([]string{
		"-env", "production",
		"-port", "9090",
		"-token-ttl", "30m",
		"-data-path", t.TempDir(),
	})
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_EnvVars(t *testing.T) {
	t.Setenv("ENV", "staging")
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("TOKEN_SECRET", "abc123")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.App.Environment)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "abc123", cfg.Auth.TokenSecret)
}

func TestLoad_FlagBeatsEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "3000")

	cfg, err := Load([]string{"-port", "4000"})
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Server.Port)
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	_, err := Load([]string{"-env", "testing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid environment")
}

func TestLoad_InvalidTokenTTL(t *testing.T) {
	_, err := Load([]string{"-token-ttl", "soon"})
	require.Error(t, err)
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "verbose"},
		Data:   DataConfig{Path: "/tmp/x"},
		Auth:   AuthConfig{TokenTTL: time.Hour},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
