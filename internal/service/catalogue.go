package service

import (
	"log/slog"

	"github.com/jgough/video-vault/internal/domain"
	"github.com/jgough/video-vault/internal/metrics"
	"github.com/jgough/video-vault/internal/store"
)

// CatalogueService answers the sorted listing of the media directory.
// The directory scan is the query; nothing is cached.
type CatalogueService struct {
	store *store.MediaStore
}

func NewCatalogueService(s *store.MediaStore) *CatalogueService {
	return &CatalogueService{store: s}
}

// List returns the current catalogue entries sorted by name. The
// extension filter is applied at scan time, so a non-conforming file
// dropped into the directory never shows up here.
func (c *CatalogueService) List() ([]domain.MediaEntry, error) {
	entries, err := c.store.ListEntries()
	if err != nil {
		return nil, err
	}
	metrics.CatalogueEntries.Set(float64(len(entries)))
	return entries, nil
}

// Remove deletes one entry from the media directory.
func (c *CatalogueService) Remove(name string) error {
	if err := c.store.Remove(name); err != nil {
		return err
	}
	slog.Info("Removed entry", "file", name)
	metrics.FilesRemoved.Inc()
	return nil
}
