package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/jgough/video-vault/internal/adapter"
	"github.com/jgough/video-vault/internal/metrics"
	"github.com/jgough/video-vault/internal/service/utils"
	"github.com/jgough/video-vault/internal/store"
	redis "github.com/redis/go-redis/v9"
)

// Archiver mirrors settled media files into an S3 bucket. Names flow
// through a Redis queue so archiving survives restarts, and workers
// drain the queue concurrently. The pipeline is best effort: a failed
// copy is re-queued and never affects the upload request that produced
// the file.
type Archiver struct {
	queue   adapter.ArchiveQueue
	s3      *adapter.S3ClientImpl
	store   *store.MediaStore
	bucket  string
	workers int
}

func NewArchiver(queue adapter.ArchiveQueue, s3 *adapter.S3ClientImpl, s *store.MediaStore, bucket string, workers int) *Archiver {
	if workers < 1 {
		workers = 1
	}
	return &Archiver{
		queue:   queue,
		s3:      s3,
		store:   s,
		bucket:  bucket,
		workers: workers,
	}
}

// NotifyStored enqueues a settled file for archiving. Queue failures
// are logged and dropped; the media directory remains authoritative.
func (a *Archiver) NotifyStored(name string) {
	if err := a.queue.Enqueue(context.Background(), name); err != nil {
		slog.Error("Failed to enqueue file for archive", "file", name, "err", err)
	}
}

// ProcessStale drains files a previous run left in the in-progress
// queue. Run once at boot before the workers start.
func (a *Archiver) ProcessStale(ctx context.Context) {
	for {
		name, err := a.queue.DequeueStale(ctx)
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				slog.Error("Failed to drain stale archive queue", "err", err)
			}
			return
		}
		slog.Info("Re-archiving stale file", "file", name)
		if err := a.archiveOne(ctx, name); err != nil {
			slog.Error("Failed to archive stale file", "file", name, "err", err)
		}
	}
}

// Run starts the worker pool and blocks until ctx is cancelled and all
// workers have drained their current file.
func (a *Archiver) Run(ctx context.Context) {
	var wg sync.WaitGroup
	slog.Info("Starting archive workers", "numWorkers", a.workers, "bucket", a.bucket)
	for i := 1; i <= a.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			a.workerLoop(ctx, workerID)
		}(i)
	}
	wg.Wait()
}

func (a *Archiver) workerLoop(ctx context.Context, workerID int) {
	for {
		if ctx.Err() != nil {
			slog.Info("Archive worker stopping", "workerID", workerID)
			return
		}
		name, err := a.queue.DequeueInProgress(ctx)
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue // blocking pop timed out, poll ctx again
			}
			if ctx.Err() != nil {
				return
			}
			slog.Error("Error dequeuing file for archive", "workerID", workerID, "err", err)
			continue
		}
		slog.Debug("Dequeued file for archive", "workerID", workerID, "file", name)
		if err := a.archiveOne(ctx, name); err != nil {
			slog.Error("Error archiving file", "workerID", workerID, "file", name, "err", err)
			metrics.FilesArchivedErrors.Inc()
			// Left in the in-progress queue; picked up by
			// ProcessStale on the next run.
		}
	}
}

func (a *Archiver) archiveOne(ctx context.Context, name string) error {
	entry, err := a.store.Stat(name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Removed before the worker got to it; nothing to copy.
			slog.Info("Skipping archive of removed file", "file", name)
			return a.queue.MarkCompleted(ctx, name)
		}
		return err
	}

	path, err := a.store.EntryPath(name)
	if err != nil {
		return err
	}
	hash, err := utils.ComputeFileHash(path)
	if err != nil {
		return err
	}

	if err := a.s3.ArchiveObject(ctx, a.bucket, name, path, hash); err != nil {
		return err
	}
	if err := a.queue.MarkCompleted(ctx, name); err != nil {
		return err
	}
	slog.Info("Archived file", "file", name, "size", entry.SizeBytes, "bucket", a.bucket)
	metrics.FilesArchived.Inc()
	return nil
}
