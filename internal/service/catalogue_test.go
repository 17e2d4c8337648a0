package service_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/jgough/video-vault/internal/service"
	"github.com/jgough/video-vault/internal/store"
)

func TestCatalogueRoundTrip(t *testing.T) {
	s := store.NewMediaStore(t.TempDir())
	u := service.NewUploadService(s, nil)
	c := service.NewCatalogueService(s)

	content := strings.Repeat("v", 12345)
	if _, err := u.ProcessBatch([]service.IncomingFile{{
		Name: "x.mp4",
		Size: int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}}); err != nil {
		t.Fatal(err)
	}

	entries, err := c.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].SizeBytes != 12345 {
		t.Errorf("SizeBytes = %d, want exactly the uploaded length 12345", entries[0].SizeBytes)
	}
}

func TestCatalogueRemove(t *testing.T) {
	s := store.NewMediaStore(t.TempDir())
	c := service.NewCatalogueService(s)
	if _, err := s.WriteEntry("gone.mp4", strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}

	if err := c.Remove("gone.mp4"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := c.Remove("gone.mp4"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Remove missing: got %v, want ErrNotFound", err)
	}

	entries, err := c.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries after remove = %+v, want none", entries)
	}
}
