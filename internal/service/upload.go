// Package service implements the upload workflow, the catalogue query,
// the media directory watcher, and the archive pipeline.
package service

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jgough/video-vault/internal/domain"
	"github.com/jgough/video-vault/internal/metrics"
	"github.com/jgough/video-vault/internal/store"
)

// IncomingFile is one file of an upload batch: a declared name and
// length plus a way to open its stream. It exists only for the
// duration of one request.
type IncomingFile struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// ArchiveNotifier receives the name of every file that lands in the
// media directory so it can be copied to cold storage.
type ArchiveNotifier interface {
	NotifyStored(name string)
}

// UploadService validates and persists upload batches. The batch
// policy is all-or-nothing on validation: no file is written until the
// whole batch has passed. Writes themselves are not transactional;
// files written before an I/O failure stay on disk.
type UploadService struct {
	store   *store.MediaStore
	archive ArchiveNotifier
}

// NewUploadService creates an UploadService. archive may be nil when
// no archive pipeline is configured.
func NewUploadService(s *store.MediaStore, archive ArchiveNotifier) *UploadService {
	return &UploadService{store: s, archive: archive}
}

// ProcessBatch runs one upload batch through validation and, only if
// every file passes, writes each stream to the media directory in
// arrival order. Name collisions overwrite, last writer wins.
func (u *UploadService) ProcessBatch(files []IncomingFile) (domain.UploadResult, error) {
	if len(files) == 0 {
		metrics.UploadBatches.WithLabelValues("validation_error").Inc()
		metrics.UploadValidationErrors.WithLabelValues("empty_batch").Inc()
		return domain.UploadResult{}, &ValidationError{Reason: "no files were provided in the upload"}
	}

	for _, f := range files {
		if err := validateFile(f); err != nil {
			slog.Info("Upload batch rejected", "file", f.Name, "size", f.Size, "err", err)
			metrics.UploadBatches.WithLabelValues("validation_error").Inc()
			return domain.UploadResult{}, err
		}
	}

	result := domain.UploadResult{UploadedFiles: make([]string, 0, len(files))}
	for _, f := range files {
		if err := u.persist(f); err != nil {
			// Earlier writes in the batch stay on disk.
			metrics.UploadBatches.WithLabelValues("storage_error").Inc()
			return result, err
		}
		result.UploadedFiles = append(result.UploadedFiles, f.Name)
		result.FilesUploaded++
		slog.Info("Stored upload", "file", f.Name, "size", f.Size)
		metrics.FilesUploaded.Inc()
		metrics.BytesUploaded.Observe(float64(f.Size))
		if u.archive != nil {
			u.archive.NotifyStored(f.Name)
		}
	}

	result.Success = true
	result.Message = fmt.Sprintf("Successfully uploaded %d file(s).", result.FilesUploaded)
	metrics.UploadBatches.WithLabelValues("success").Inc()
	return result, nil
}

func validateFile(f IncomingFile) error {
	if !domain.IsNameAllowed(f.Name) {
		metrics.UploadValidationErrors.WithLabelValues("unsafe_name").Inc()
		return &ValidationError{File: f.Name, Reason: "name is not a plain file name"}
	}
	if !domain.IsExtensionAllowed(f.Name) {
		metrics.UploadValidationErrors.WithLabelValues("extension").Inc()
		return &ValidationError{File: f.Name, Reason: fmt.Sprintf("only %s files are accepted", domain.AllowedExtension)}
	}
	if f.Size > domain.MaxFileSizeBytes {
		metrics.UploadValidationErrors.WithLabelValues("too_large").Inc()
		return &TooLargeError{File: f.Name, Size: f.Size}
	}
	if !domain.IsSizeAllowed(f.Size) {
		metrics.UploadValidationErrors.WithLabelValues("empty_file").Inc()
		return &ValidationError{File: f.Name, Reason: "file is empty"}
	}
	return nil
}

func (u *UploadService) persist(f IncomingFile) error {
	src, err := f.Open()
	if err != nil {
		slog.Error("Failed to open upload stream", "file", f.Name, "size", f.Size, "err", err)
		return fmt.Errorf("open upload stream %q: %w", f.Name, err)
	}
	defer src.Close()

	if _, err := u.store.WriteEntry(f.Name, src); err != nil {
		return err
	}
	return nil
}
