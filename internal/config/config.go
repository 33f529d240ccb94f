// Package config loads the server's environment-derived settings: network
// bind address, the energy-pack content file path, and log verbosity.
// Grounded in the teacher's game/config.Manager for the load-validate-cache
// shape, adapted from a JSON grid-layout loader to a flat env-var reader
// since the server has no per-match configuration files of its own.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds every setting the server reads once at boot.
type Config struct {
	ListenAddr     string
	ContentDir     string
	EnergyPackFile string
	LogLevel       string
	MetricsAddr    string
}

const (
	defaultListenAddr  = ":8080"
	defaultMetricsAddr = ":9090"
	defaultLogLevel    = "info"
	defaultContentDir  = "content"
)

// Load reads a .env file if present (missing is not an error, mirroring
// godotenv's own convention), then resolves every setting from the
// environment with sane defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: loading .env: %w", err)
	}

	cfg := &Config{
		ListenAddr:     getenv("VOLTRACE_LISTEN_ADDR", defaultListenAddr),
		ContentDir:     getenv("VOLTRACE_CONTENT_DIR", defaultContentDir),
		EnergyPackFile: getenv("VOLTRACE_ENERGY_PACK_FILE", defaultContentDir+"/energy_packs.txt"),
		LogLevel:       getenv("VOLTRACE_LOG_LEVEL", defaultLogLevel),
		MetricsAddr:    getenv("VOLTRACE_METRICS_ADDR", defaultMetricsAddr),
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
