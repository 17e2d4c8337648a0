// Package main is the entry point for the video vault service: a
// browser-facing catalogue of MP4 files backed by a single media
// directory, with an optional Redis/S3 archive pipeline, a directory
// watcher, and Prometheus metrics.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jgough/video-vault/internal/config"
	"github.com/jgough/video-vault/internal/domain"
	"github.com/jgough/video-vault/internal/handlers"
	"github.com/jgough/video-vault/internal/middleware"
	"github.com/jgough/video-vault/internal/service"
	"github.com/jgough/video-vault/internal/store"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupArchiver wires the Redis queue and S3 client into an archive
// pipeline, ensures the bucket exists, and starts the workers. Exits
// the program when the bucket cannot be ensured.
func setupArchiver(ctx context.Context, cfg config.AppConfig, mediaStore *store.MediaStore) (*service.Archiver, *config.AppClients) {
	clients := config.NewAppClients()
	if err := clients.S3Client.EnsureBucket(ctx, cfg.ArchiveBucket); err != nil {
		slog.Error("Failed to ensure archive bucket", "bucket", cfg.ArchiveBucket, "err", err)
		os.Exit(1)
	}
	archiver := service.NewArchiver(clients.RedisClient, clients.S3Client, mediaStore, cfg.ArchiveBucket, cfg.ArchiveWorkers)
	archiver.ProcessStale(ctx)
	go archiver.Run(ctx)
	return archiver, clients
}

// setupHTTPServer builds the router and the main HTTP server, and
// starts the Prometheus metrics server on :2112.
func setupHTTPServer(cfg config.AppConfig, mediaStore *store.MediaStore, uploads *service.UploadService, catalogue *service.CatalogueService, recent handlers.RecentLister) *http.Server {
	v1Handler := &handlers.V1Handler{
		Uploads:   uploads,
		Catalogue: catalogue,
		Recent:    recent,
	}
	pageHandler := handlers.NewPageHandler(catalogue)
	mediaHandler := &handlers.MediaHandler{Store: mediaStore}

	router := handlers.NewRouter(v1Handler, pageHandler, mediaHandler)
	wrapped := middleware.RequestLogger(middleware.BodyLimit(domain.MaxFileSizeBytes, router))

	go func() {
		slog.Info("Starting Prometheus metrics server on :2112/metrics")
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(":2112", nil); err != nil {
			slog.Error("Prometheus metrics server error", "err", err)
		}
	}()

	return config.NewHTTPServer(cfg, wrapped)
}

// gracefulShutdown stops the HTTP server, the watcher, and the archive
// pipeline's clients.
func gracefulShutdown(server *http.Server, watcher *service.MediaWatcher, clients *config.AppClients) {
	slog.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "err", err)
	} else {
		slog.Info("Server exited gracefully")
	}

	if watcher != nil {
		if err := watcher.Close(); err != nil {
			slog.Error("Failed to close media watcher", "err", err)
		}
	}

	if clients != nil {
		if err := clients.RedisClient.Close(); err != nil {
			slog.Error("Failed to close Redis client", "err", err)
		} else {
			slog.Info("Redis client closed")
		}
	}
}

func main() {
	cfg := config.LoadEnv()

	mediaStore := store.NewMediaStore(cfg.MediaDir)
	if err := mediaStore.EnsureDirectory(); err != nil {
		slog.Error("Failed to prepare media directory", "dir", cfg.MediaDir, "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		archiver *service.Archiver
		clients  *config.AppClients
		recent   handlers.RecentLister
	)
	if cfg.ArchiveEnabled() {
		archiver, clients = setupArchiver(ctx, cfg, mediaStore)
		recent = clients.RedisClient
	} else {
		slog.Info("Archive pipeline disabled (ARCHIVE_BUCKET not set)")
	}

	// The watcher feeds settled files to the archiver and keeps the
	// catalogue gauge fresh; uploads register with it so externally
	// placed files can be told apart.
	var archiveNotifier service.ArchiveNotifier
	if archiver != nil {
		archiveNotifier = archiver
	}
	watcher, err := service.NewMediaWatcher(mediaStore, archiveNotifier, cfg.SettleTimeout)
	if err != nil {
		slog.Error("Failed to start media watcher", "err", err)
		os.Exit(1)
	}
	watcher.Start()

	uploads := service.NewUploadService(mediaStore, watcher)
	catalogue := service.NewCatalogueService(mediaStore)

	server := setupHTTPServer(cfg, mediaStore, uploads, catalogue, recent)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Starting server", "port", cfg.Port, "mediaDir", cfg.MediaDir)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "err", err)
		}
	}()

	<-quit
	cancel()
	gracefulShutdown(server, watcher, clients)
}
