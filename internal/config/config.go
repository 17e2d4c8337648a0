package config

import (
	"time"

	"github.com/jgough/video-vault/internal/adapter"
)

// AppConfig carries the process-wide settings. Loaded once at boot,
// never mutated afterwards.
type AppConfig struct {
	MediaDir       string
	Port           string
	SettleTimeout  time.Duration
	ArchiveBucket  string // empty disables the archive pipeline
	ArchiveWorkers int
}

// ArchiveEnabled reports whether the S3/Redis archive pipeline should
// be wired up.
func (c AppConfig) ArchiveEnabled() bool {
	return c.ArchiveBucket != ""
}

// AppClients holds the external clients of the archive pipeline.
type AppClients struct {
	RedisClient *adapter.RedisClientImpl
	S3Client    *adapter.S3ClientImpl
}

// NewAppClients connects the archive pipeline's Redis and MinIO
// clients. Call only when the archive pipeline is enabled.
func NewAppClients() *AppClients {
	return &AppClients{
		RedisClient: adapter.NewRedisClientImpl(),
		S3Client:    adapter.NewMinioClient(),
	}
}
