package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jgough/video-vault/internal/store"
)

func TestEnsureDirectoryIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "media")
	s := store.NewMediaStore(dir)

	if err := s.EnsureDirectory(); err != nil {
		t.Fatalf("first EnsureDirectory: %v", err)
	}
	if err := s.EnsureDirectory(); err != nil {
		t.Fatalf("second EnsureDirectory: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("media directory not created: %v", err)
	}
}

func TestEnsureDirectoryPathCollision(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "media")
	if err := os.WriteFile(blocker, []byte("not a directory"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := store.NewMediaStore(blocker)
	err := s.EnsureDirectory()
	if !errors.Is(err, store.ErrStorageUnavailable) {
		t.Fatalf("EnsureDirectory over a file: got %v, want ErrStorageUnavailable", err)
	}
}

func TestListEntriesSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"b.mp4":     "bb",
		"a.mp4":     "a",
		"notes.txt": "ignored",
		"C.MP4":     "ccc",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.mp4"), 0o755); err != nil {
		t.Fatal(err)
	}

	entries, err := store.NewMediaStore(dir).ListEntries()
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}

	wantNames := []string{"C.MP4", "a.mp4", "b.mp4"} // ordinal sort, uppercase first
	if len(entries) != len(wantNames) {
		t.Fatalf("got %d entries, want %d: %+v", len(entries), len(wantNames), entries)
	}
	for i, want := range wantNames {
		if entries[i].Name != want {
			t.Errorf("entry[%d].Name = %q, want %q", i, entries[i].Name, want)
		}
	}
	if entries[1].SizeBytes != 1 || entries[2].SizeBytes != 2 {
		t.Errorf("unexpected sizes: %+v", entries)
	}
}

func TestListEntriesMissingDirectory(t *testing.T) {
	s := store.NewMediaStore(filepath.Join(t.TempDir(), "never-created"))
	entries, err := s.ListEntries()
	if err != nil {
		t.Fatalf("ListEntries on missing dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("got %d entries, want 0", len(entries))
	}
}

func TestWriteEntryOverwrites(t *testing.T) {
	dir := t.TempDir()
	s := store.NewMediaStore(dir)

	if _, err := s.WriteEntry("x.mp4", strings.NewReader("old content here")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	n, err := s.WriteEntry("x.mp4", strings.NewReader("new"))
	if err != nil {
		t.Fatalf("second write: %v", err)
	}
	if n != 3 {
		t.Errorf("bytes written = %d, want 3", n)
	}

	entries, err := s.ListEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].SizeBytes != 3 {
		t.Fatalf("after overwrite: %+v, want one 3-byte entry", entries)
	}
}

func TestWriteEntryRejectsUnsafeNames(t *testing.T) {
	s := store.NewMediaStore(t.TempDir())
	for _, name := range []string{"../escape.mp4", "a/b.mp4", `a\b.mp4`, "", ".."} {
		if _, err := s.WriteEntry(name, strings.NewReader("x")); !errors.Is(err, store.ErrUnsafeName) {
			t.Errorf("WriteEntry(%q): got %v, want ErrUnsafeName", name, err)
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("stream torn down")
}

func TestWriteEntryStreamFailureLeavesPartialFile(t *testing.T) {
	dir := t.TempDir()
	s := store.NewMediaStore(dir)

	_, err := s.WriteEntry("torn.mp4", failingReader{})
	if !errors.Is(err, store.ErrStorageUnavailable) {
		t.Fatalf("got %v, want ErrStorageUnavailable", err)
	}
	// No rollback: whatever was flushed stays on disk.
	if _, err := os.Stat(filepath.Join(dir, "torn.mp4")); err != nil {
		t.Fatalf("partial file should remain: %v", err)
	}
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	s := store.NewMediaStore(dir)
	if _, err := s.WriteEntry("gone.mp4", strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}

	if err := s.Remove("gone.mp4"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := s.Remove("gone.mp4"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second Remove: got %v, want ErrNotFound", err)
	}
}

func TestStat(t *testing.T) {
	dir := t.TempDir()
	s := store.NewMediaStore(dir)
	if _, err := s.WriteEntry("here.mp4", strings.NewReader("12345")); err != nil {
		t.Fatal(err)
	}

	e, err := s.Stat("here.mp4")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if e.SizeBytes != 5 {
		t.Errorf("SizeBytes = %d, want 5", e.SizeBytes)
	}
	if _, err := s.Stat("missing.mp4"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Stat missing: got %v, want ErrNotFound", err)
	}
}
