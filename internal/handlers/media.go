package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jgough/video-vault/internal/store"
)

// MediaHandler serves raw bytes from the media directory. It serves
// any file physically present, extension unchecked: the catalogue
// filter applies at listing time only, so a non-MP4 file placed in the
// directory is invisible in the catalogue yet fetchable by name.
type MediaHandler struct {
	Store *store.MediaStore
}

// Serve answers GET /media/{name}. http.ServeFile supplies range
// requests, which the browser's video element relies on for seeking.
func (h *MediaHandler) Serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/media/")
	path, err := h.Store.EntryPath(name)
	if err != nil {
		http.Error(w, "Invalid media name", http.StatusBadRequest)
		return
	}
	if _, err := h.Store.Stat(name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Failed to read media", http.StatusInternalServerError)
		return
	}
	http.ServeFile(w, r, path)
}
