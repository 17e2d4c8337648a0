package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultMediaDir       = "webroot/media"
	defaultPort           = "8080"
	defaultSettleSeconds  = 2
	defaultArchiveWorkers = 1
)

// LoadEnv reads the .env file (when present) and the environment into
// an AppConfig. Every setting has a default; only malformed values are
// fatal.
func LoadEnv() AppConfig {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment", "err", err)
	}

	cfg := AppConfig{
		MediaDir:       defaultMediaDir,
		Port:           defaultPort,
		SettleTimeout:  defaultSettleSeconds * time.Second,
		ArchiveBucket:  os.Getenv("ARCHIVE_BUCKET"),
		ArchiveWorkers: defaultArchiveWorkers,
	}

	if dir := os.Getenv("MEDIA_DIR"); dir != "" {
		cfg.MediaDir = dir
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Port = port
	}
	if settle := os.Getenv("SETTLE_TIMEOUT_SEC"); settle != "" {
		seconds, err := strconv.Atoi(settle)
		if err != nil || seconds < 1 {
			slog.Error("SETTLE_TIMEOUT_SEC is not a valid positive integer", "value", settle)
			os.Exit(1)
		}
		cfg.SettleTimeout = time.Duration(seconds) * time.Second
	}
	if workers := os.Getenv("ARCHIVE_WORKERS"); workers != "" {
		n, err := strconv.Atoi(workers)
		if err != nil || n < 1 {
			slog.Error("ARCHIVE_WORKERS is not a valid positive integer", "value", workers)
			os.Exit(1)
		}
		cfg.ArchiveWorkers = n
	}

	return cfg
}
