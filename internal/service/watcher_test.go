package service_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/jgough/video-vault/internal/service"
	"github.com/jgough/video-vault/internal/store"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestWatcherFeedsExternalFileToArchive(t *testing.T) {
	s := store.NewMediaStore(t.TempDir())
	notifier := &recordingNotifier{}

	w, err := service.NewMediaWatcher(s, notifier, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewMediaWatcher: %v", err)
	}
	w.Start()
	defer w.Close()

	// A file placed in the directory outside the upload path.
	if err := os.WriteFile(filepath.Join(s.Dir(), "ext.mp4"), []byte("bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !waitFor(t, 3*time.Second, func() bool {
		return slices.Contains(notifier.snapshot(), "ext.mp4")
	}) {
		t.Fatalf("external file never reached the archive notifier: %v", notifier.snapshot())
	}
}

func TestWatcherIgnoresNonMediaFiles(t *testing.T) {
	s := store.NewMediaStore(t.TempDir())
	notifier := &recordingNotifier{}

	w, err := service.NewMediaWatcher(s, notifier, 50*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	w.Start()
	defer w.Close()

	if err := os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), []byte("plain"), 0o644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(300 * time.Millisecond)
	if got := notifier.snapshot(); len(got) != 0 {
		t.Fatalf("non-media file reached the notifier: %v", got)
	}
}

func TestWatcherForwardsUploadsImmediately(t *testing.T) {
	s := store.NewMediaStore(t.TempDir())
	notifier := &recordingNotifier{}

	w, err := service.NewMediaWatcher(s, notifier, 50*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	w.Start()
	defer w.Close()

	// The upload workflow reports through the watcher; the archive
	// notification must not wait for the settle timer.
	w.NotifyStored("up.mp4")
	if got := notifier.snapshot(); len(got) != 1 || got[0] != "up.mp4" {
		t.Fatalf("notifier = %v, want [up.mp4]", got)
	}
}
