package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	UploadBatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_upload_batches_total",
			Help: "Total number of upload batches processed",
		},
		[]string{"outcome"},
	)
	FilesUploaded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "video_files_uploaded_total",
			Help: "Total number of video files written to the media directory",
		},
	)
	UploadValidationErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_upload_validation_errors_total",
			Help: "Total number of upload batches rejected by validation",
		},
		[]string{"reason"},
	)
	BytesUploaded = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "video_upload_bytes",
			Help:    "Size distribution of uploaded video files",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
		},
	)
	CatalogueEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "video_catalogue_entries",
			Help: "Current number of entries in the media directory",
		},
	)
	ExternalFilesDetected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "video_external_files_detected_total",
			Help: "Total number of media files that settled in the directory outside the upload path",
		},
	)
	FilesArchived = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "video_files_archived_total",
			Help: "Total number of media files copied to the archive bucket",
		},
	)
	FilesArchivedErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "video_files_archived_errors_total",
			Help: "Total number of archive copy failures",
		},
	)
	FilesRemoved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "video_files_removed_total",
			Help: "Total number of media files removed through the API",
		},
	)
)

func init() {
	prometheus.MustRegister(UploadBatches)
	prometheus.MustRegister(FilesUploaded)
	prometheus.MustRegister(UploadValidationErrors)
	prometheus.MustRegister(BytesUploaded)
	prometheus.MustRegister(CatalogueEntries)
	prometheus.MustRegister(ExternalFilesDetected)
	prometheus.MustRegister(FilesArchived)
	prometheus.MustRegister(FilesArchivedErrors)
	prometheus.MustRegister(FilesRemoved)
}
