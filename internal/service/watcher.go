package service

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jgough/video-vault/internal/domain"
	"github.com/jgough/video-vault/internal/metrics"
	"github.com/jgough/video-vault/internal/store"
)

// MediaWatcher observes the media directory for settling files. The
// directory is the sole source of truth, so files can appear without
// going through the upload workflow; the watcher notices them once
// their writes stop, keeps the catalogue gauge fresh, and feeds every
// settled file to the archive pipeline.
//
// Write events are debounced with a per-file timer: a file counts as
// settled only after settleTimeout passes without further writes.
type MediaWatcher struct {
	fsWatcher     *fsnotify.Watcher
	store         *store.MediaStore
	archive       ArchiveNotifier
	settleTimeout time.Duration
	done          chan struct{}

	mu       sync.Mutex
	timers   map[string]*time.Timer
	expected map[string]struct{}
}

// NewMediaWatcher creates a watcher over the store's directory.
// archive may be nil when no archive pipeline is configured.
func NewMediaWatcher(s *store.MediaStore, archive ArchiveNotifier, settleTimeout time.Duration) (*MediaWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(s.Dir()); err != nil {
		fsWatcher.Close()
		return nil, err
	}
	return &MediaWatcher{
		fsWatcher:     fsWatcher,
		store:         s,
		archive:       archive,
		settleTimeout: settleTimeout,
		done:          make(chan struct{}),
		timers:        make(map[string]*time.Timer),
		expected:      make(map[string]struct{}),
	}, nil
}

// NotifyStored marks a file as written by the upload workflow, so its
// settle event is not misread as an external placement, and forwards
// it to the archive pipeline right away.
func (w *MediaWatcher) NotifyStored(name string) {
	w.mu.Lock()
	w.expected[name] = struct{}{}
	w.mu.Unlock()
	if w.archive != nil {
		w.archive.NotifyStored(name)
	}
}

// Start runs the event loop until Close is called.
func (w *MediaWatcher) Start() {
	go w.handleEvents()
	slog.Info("Watching media directory", "dir", w.store.Dir(), "settleTimeout", w.settleTimeout.String())
}

// Close stops the event loop and releases the fsnotify watcher.
func (w *MediaWatcher) Close() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *MediaWatcher) handleEvents() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			slog.Debug("event", "action", event.Op, "path", event.Name)
			name := filepath.Base(event.Name)
			switch {
			case event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Write):
				if domain.IsExtensionAllowed(name) {
					w.startOrResetTimer(name)
				}
			case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
				w.cancelTimer(name)
				w.refreshGauge()
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			slog.Error("watcher error", "err", err)
		case <-w.done:
			slog.Info("Shutting down media watcher")
			return
		}
	}
}

// startOrResetTimer arms the settle timer for name, replacing any
// previous one so a stream of writes ends in a single settle event.
func (w *MediaWatcher) startOrResetTimer(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, exists := w.timers[name]; exists {
		timer.Stop()
	}
	w.timers[name] = time.AfterFunc(w.settleTimeout, func() {
		w.mu.Lock()
		delete(w.timers, name)
		w.mu.Unlock()
		w.settled(name)
	})
}

func (w *MediaWatcher) cancelTimer(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, exists := w.timers[name]; exists {
		timer.Stop()
		delete(w.timers, name)
	}
}

func (w *MediaWatcher) settled(name string) {
	entry, err := w.store.Stat(name)
	if err != nil {
		// Removed again before settling.
		slog.Debug("Settled file vanished", "file", name, "err", err)
		return
	}

	w.mu.Lock()
	_, fromUpload := w.expected[name]
	delete(w.expected, name)
	w.mu.Unlock()

	if fromUpload {
		slog.Debug("Uploaded file settled", "file", name, "size", entry.SizeBytes)
	} else {
		slog.Info("External file settled in media directory", "file", name, "size", entry.SizeBytes)
		metrics.ExternalFilesDetected.Inc()
		if w.archive != nil {
			w.archive.NotifyStored(name)
		}
	}
	w.refreshGauge()
}

func (w *MediaWatcher) refreshGauge() {
	entries, err := w.store.ListEntries()
	if err != nil {
		return
	}
	metrics.CatalogueEntries.Set(float64(len(entries)))
}
