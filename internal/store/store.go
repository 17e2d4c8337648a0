// Package store is the filesystem accessor for the media directory.
// The directory itself is the catalogue: there is no index or sidecar
// metadata to keep consistent.
package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/jgough/video-vault/internal/domain"
)

// ErrStorageUnavailable marks directory or write failures that callers
// should surface as a server-side storage error.
var ErrStorageUnavailable = errors.New("media storage unavailable")

// ErrUnsafeName marks entry names that would escape the media
// directory when joined into a path.
var ErrUnsafeName = errors.New("unsafe entry name")

// ErrNotFound marks lookups of entries not present in the directory.
var ErrNotFound = errors.New("entry not found")

// MediaStore reads and writes entries in a single flat directory.
type MediaStore struct {
	dir string
}

func NewMediaStore(dir string) *MediaStore {
	return &MediaStore{dir: dir}
}

// Dir returns the media directory path.
func (s *MediaStore) Dir() string {
	return s.dir
}

// EnsureDirectory creates the media directory if missing. An existing
// directory is success; any other failure is ErrStorageUnavailable.
func (s *MediaStore) EnsureDirectory() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		slog.Error("Failed to create media directory", "dir", s.dir, "err", err)
		return fmt.Errorf("%w: create %s: %v", ErrStorageUnavailable, s.dir, err)
	}
	return nil
}

// ListEntries enumerates the immediate children of the media directory
// whose name passes the extension policy, sorted by name ascending.
// A missing or empty directory yields an empty slice, not an error.
func (s *MediaStore) ListEntries() ([]domain.MediaEntry, error) {
	dirents, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		slog.Error("Failed to read media directory", "dir", s.dir, "err", err)
		return nil, fmt.Errorf("%w: read %s: %v", ErrStorageUnavailable, s.dir, err)
	}

	entries := make([]domain.MediaEntry, 0, len(dirents))
	for _, d := range dirents {
		if d.IsDir() || !domain.IsExtensionAllowed(d.Name()) {
			continue
		}
		info, err := d.Info()
		if err != nil {
			// Entry vanished between ReadDir and stat.
			slog.Warn("Skipping unreadable entry", "name", d.Name(), "err", err)
			continue
		}
		entries = append(entries, domain.MediaEntry{
			Name:      d.Name(),
			SizeBytes: info.Size(),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// EntryPath resolves name inside the media directory, refusing names
// that would escape it.
func (s *MediaStore) EntryPath(name string) (string, error) {
	if !domain.IsNameAllowed(name) {
		return "", fmt.Errorf("%w: %q", ErrUnsafeName, name)
	}
	return filepath.Join(s.dir, name), nil
}

// WriteEntry creates or truncates {dir}/{name} and copies the stream
// into it. An existing entry of the same name is overwritten, last
// writer wins. Returns the byte count written.
func (s *MediaStore) WriteEntry(name string, r io.Reader) (int64, error) {
	path, err := s.EntryPath(name)
	if err != nil {
		return 0, err
	}
	f, err := os.Create(path)
	if err != nil {
		slog.Error("Failed to create entry", "name", name, "err", err)
		return 0, fmt.Errorf("%w: create %s: %v", ErrStorageUnavailable, name, err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// Partial bytes stay on disk; the batch reports the failure.
		slog.Error("Failed to write entry", "name", name, "written", n, "err", err)
		return n, fmt.Errorf("%w: write %s: %v", ErrStorageUnavailable, name, err)
	}
	return n, nil
}

// Remove deletes the named entry. Missing entries map to ErrNotFound.
func (s *MediaStore) Remove(name string) error {
	path, err := s.EntryPath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		slog.Error("Failed to remove entry", "name", name, "err", err)
		return fmt.Errorf("%w: remove %s: %v", ErrStorageUnavailable, name, err)
	}
	return nil
}

// Stat returns the entry for name, or ErrNotFound.
func (s *MediaStore) Stat(name string) (domain.MediaEntry, error) {
	path, err := s.EntryPath(name)
	if err != nil {
		return domain.MediaEntry{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.MediaEntry{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return domain.MediaEntry{}, fmt.Errorf("%w: stat %s: %v", ErrStorageUnavailable, name, err)
	}
	if info.IsDir() {
		return domain.MediaEntry{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return domain.MediaEntry{Name: name, SizeBytes: info.Size()}, nil
}
