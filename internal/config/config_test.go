package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFallsBackToDefaultsWithoutEnv(t *testing.T) {
	t.Setenv("VOLTRACE_LISTEN_ADDR", "")
	t.Setenv("VOLTRACE_METRICS_ADDR", "")
	t.Setenv("VOLTRACE_LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, defaultListenAddr, cfg.ListenAddr)
	require.Equal(t, defaultLogLevel, cfg.LogLevel)
}

func TestLoadHonorsEnvOverride(t *testing.T) {
	t.Setenv("VOLTRACE_LISTEN_ADDR", ":9999")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.ListenAddr)
}
