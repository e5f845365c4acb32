package observability

import (
	"context"
	"testing"
	"time"

	"guildbot/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsProvider_DisabledIsNoop(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.OTelEnabled = false

	mp := NewMetricsProvider(cfg)
	require.NoError(t, mp.Initialize(context.Background()))
	assert.False(t, mp.isEnabled())

	assert.NotPanics(t, func() {
		mp.RecordCommand("balance")
		mp.RecordXPAwarded(20, true)
		mp.UpdateActiveGames(GameHangman, 1)
		mp.MeasureDatabaseQuery("xp", "Save")()
	})
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestMetricsProvider_NoneExporterIsNoop(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.OTelEnabled = true
	cfg.OTelExporterType = "none"

	mp := NewMetricsProvider(cfg)
	require.NoError(t, mp.Initialize(context.Background()))
	assert.False(t, mp.isEnabled())
	assert.NotPanics(t, func() { mp.RecordNATSMessagePublished("level_up") })
}

func TestMetricsProvider_ConsoleExporter(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.OTelEnabled = true
	cfg.OTelExporterType = "console"
	cfg.OTelExportIntervalMillis = 60_000

	mp := NewMetricsProvider(cfg)
	require.NoError(t, mp.Initialize(context.Background()))
	assert.True(t, mp.isEnabled())

	mp.RecordCommand("work")
	mp.RecordCommandError("work")
	mp.RecordBalanceTransaction("work")
	mp.RecordDatabaseQuery("account", "LockForUpdate", 3*time.Millisecond)
	mp.UpdateVoiceSessions(1)
	mp.RecordTrackPlayed()

	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestMetricsProvider_NilSafe(t *testing.T) {
	var mp *MetricsProvider
	assert.NotPanics(t, func() { mp.RecordCommand("help") })
}

func TestMetricsProvider_UnknownExporter(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.OTelEnabled = true
	cfg.OTelExporterType = "carrier-pigeon"

	err := NewMetricsProvider(cfg).Initialize(context.Background())
	assert.ErrorContains(t, err, "unknown exporter type")
}
