package handlers

import "net/http"

// NewRouter wires the page, API, and media routes. Exact patterns win
// over the /api/video/ and /media/ prefixes, so the upload and
// catalogue routes are matched before the per-entry handler.
func NewRouter(v1 *V1Handler, pages *PageHandler, media *MediaHandler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", HealthCheck)
	mux.HandleFunc("/api/video/upload", v1.Upload)
	mux.HandleFunc("/api/video/catalogue", v1.CatalogueList)
	mux.HandleFunc("/api/video/recent", v1.RecentActivity)
	mux.HandleFunc("/api/video/", v1.Entry)
	mux.HandleFunc("/media/", media.Serve)
	mux.HandleFunc("/", pages.Index)
	return mux
}
