package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432")
	t.Setenv("DATABASE_NAME", "guildbot")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("COMMAND_PREFIX", "")
	t.Setenv("OTEL_EXPORTER_TYPE", "")
	t.Setenv("NATS_SERVERS", "")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, "!", cfg.CommandPrefix)
	assert.Equal(t, ":8080", cfg.KeepaliveAddr)
	assert.Equal(t, "development", cfg.Environment)
	assert.Empty(t, cfg.NATSServers)
	assert.False(t, cfg.OTelEnabled)
	assert.Equal(t, "postgres://localhost:5432/guildbot?sslmode=disable", cfg.GetDatabaseURL())
}

func TestLoad_RequiresToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432")
	t.Setenv("ENVIRONMENT", "production")

	_, err := load()
	assert.EqualError(t, err, "DISCORD_TOKEN is required")
}

func TestLoad_RejectsUnknownExporter(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432")
	t.Setenv("OTEL_EXPORTER_TYPE", "zipkin")

	_, err := load()
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("COMMAND_PREFIX", "?")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_TYPE", "none")
	t.Setenv("OTEL_EXPORT_INTERVAL_MS", "1500")

	cfg, err := load()
	require.NoError(t, err)
	assert.Equal(t, "?", cfg.CommandPrefix)
	assert.True(t, cfg.OTelEnabled)
	assert.Equal(t, 1500, cfg.OTelExportIntervalMillis)
}

func TestSetTestConfig(t *testing.T) {
	t.Cleanup(ResetConfig)

	custom := NewTestConfig()
	custom.CommandPrefix = "$"
	SetTestConfig(custom)

	assert.Same(t, custom, Get())
}
