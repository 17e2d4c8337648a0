package handlers

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/jgough/video-vault/internal/domain"
	"github.com/jgough/video-vault/internal/service"
)

// PageHandler renders the server-side catalogue page that hosts the
// browser client.
type PageHandler struct {
	catalogue *service.CatalogueService
	indexTmpl *template.Template
}

func NewPageHandler(catalogue *service.CatalogueService) *PageHandler {
	return &PageHandler{
		catalogue: catalogue,
		indexTmpl: template.Must(template.New("index").Parse(indexHTML)),
	}
}

// Index answers GET / with the catalogue embedded in the page.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entries, err := h.catalogue.List()
	if err != nil {
		slog.Error("Failed to list catalogue for index page", "err", err)
		http.Error(w, "Failed to list videos", http.StatusInternalServerError)
		return
	}

	data := struct {
		Entries []domain.MediaEntry
	}{Entries: entries}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.indexTmpl.Execute(w, data); err != nil {
		slog.Error("Template execution error", "err", err)
	}
}
