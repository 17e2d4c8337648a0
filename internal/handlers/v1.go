package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/jgough/video-vault/internal/service"
	"github.com/jgough/video-vault/internal/store"
)

// uploadFormLimit caps the memory used for multipart form parsing;
// larger parts spill to temp files.
const uploadFormLimit = 32 << 20

// UploadResponse is the JSON body of POST /api/video/upload.
type UploadResponse struct {
	Success       bool     `json:"success"`
	Message       string   `json:"message"`
	FilesUploaded int      `json:"filesUploaded,omitempty"`
	UploadedFiles []string `json:"uploadedFiles,omitempty"`
}

// CatalogueItem is one element of the GET /api/video/catalogue array.
type CatalogueItem struct {
	FileName      string `json:"fileName"`
	FileSizeBytes int64  `json:"fileSizeBytes"`
}

// RecentLister exposes the archive pipeline's recent-activity list.
type RecentLister interface {
	RecentCompleted(ctx context.Context, n int64) ([]string, error)
}

// V1Handler serves the video API routes.
type V1Handler struct {
	Uploads   *service.UploadService
	Catalogue *service.CatalogueService
	Recent    RecentLister // nil when the archive pipeline is off
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Upload accepts a multipart batch and runs it through the upload
// workflow. The whole batch is rejected on the first invalid file.
func (h *V1Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(uploadFormLimit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			slog.Info("Upload rejected, request body over limit", "limit", maxErr.Limit)
			writeJSON(w, http.StatusRequestEntityTooLarge, UploadResponse{
				Message: "The upload exceeds the 200 MiB request limit.",
			})
			return
		}
		slog.Info("Upload rejected, not a valid multipart form", "err", err)
		writeJSON(w, http.StatusBadRequest, UploadResponse{
			Message: "The request is not a valid file upload.",
		})
		return
	}
	defer r.MultipartForm.RemoveAll()

	batch := collectBatch(r.MultipartForm)
	result, err := h.Uploads.ProcessBatch(batch)
	if err != nil {
		h.writeUploadError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		Success:       true,
		Message:       result.Message,
		FilesUploaded: result.FilesUploaded,
		UploadedFiles: result.UploadedFiles,
	})
}

// collectBatch flattens the form's file parts into the workflow's
// batch shape, preserving arrival order within the files field.
func collectBatch(form *multipart.Form) []service.IncomingFile {
	headers := form.File["files"]
	if len(headers) == 0 {
		for _, fhs := range form.File {
			headers = append(headers, fhs...)
		}
	}
	batch := make([]service.IncomingFile, 0, len(headers))
	for _, fh := range headers {
		batch = append(batch, service.IncomingFile{
			Name: fh.Filename,
			Size: fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return batch
}

func (h *V1Handler) writeUploadError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	var terr *service.TooLargeError
	switch {
	case errors.As(err, &terr):
		writeJSON(w, http.StatusRequestEntityTooLarge, UploadResponse{
			Message: "File \"" + terr.File + "\" exceeds the 200 MiB size limit.",
		})
	case errors.As(err, &verr):
		msg := verr.Reason
		if verr.File != "" {
			msg = "File \"" + verr.File + "\" was rejected: " + verr.Reason + "."
		}
		writeJSON(w, http.StatusBadRequest, UploadResponse{Message: msg})
	default:
		slog.Error("Upload failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, UploadResponse{
			Message: "The server could not store the upload. Please try again later.",
		})
	}
}

// CatalogueList answers the JSON catalogue of media entries.
func (h *V1Handler) CatalogueList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	entries, err := h.Catalogue.List()
	if err != nil {
		slog.Error("Failed to list catalogue", "err", err)
		http.Error(w, "Failed to list videos", http.StatusInternalServerError)
		return
	}
	items := make([]CatalogueItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, CatalogueItem{FileName: e.Name, FileSizeBytes: e.SizeBytes})
	}
	writeJSON(w, http.StatusOK, items)
}

// RecentActivity answers the most recently archived names. 404 when
// the archive pipeline is not configured.
func (h *V1Handler) RecentActivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.Recent == nil {
		http.NotFound(w, r)
		return
	}
	names, err := h.Recent.RecentCompleted(r.Context(), 20)
	if err != nil {
		slog.Error("Failed to list recent activity", "err", err)
		http.Error(w, "Failed to list recent activity", http.StatusInternalServerError)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

// Entry handles DELETE /api/video/{name}.
func (h *V1Handler) Entry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/api/video/")
	err := h.Catalogue.Remove(name)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "Video not found", http.StatusNotFound)
	case errors.Is(err, store.ErrUnsafeName):
		http.Error(w, "Invalid video name", http.StatusBadRequest)
	default:
		slog.Error("Failed to remove entry", "file", name, "err", err)
		http.Error(w, "Failed to remove video", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "err", err)
	}
}
