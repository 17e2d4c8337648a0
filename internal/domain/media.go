// Package domain holds the media catalogue types and the validation
// policy shared between the server and the embedded browser client.
package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// AllowedExtension is the only file extension accepted for upload.
	AllowedExtension = ".mp4"
	// MaxFileSizeBytes caps a single uploaded file at 200 MiB.
	MaxFileSizeBytes = int64(209715200)
)

// MediaEntry describes one file in the media directory.
type MediaEntry struct {
	Name      string
	SizeBytes int64
}

// SizeDisplay renders the entry size for the catalogue page.
func (e MediaEntry) SizeDisplay() string {
	return FormatSize(e.SizeBytes)
}

// URL is the static path the browser streams the entry from.
func (e MediaEntry) URL() string {
	return "/media/" + e.Name
}

// UploadResult summarises one upload batch. It is returned to the
// client once per request and never persisted.
type UploadResult struct {
	Success       bool
	Message       string
	FilesUploaded int
	UploadedFiles []string
}

// IsExtensionAllowed reports whether the suffix after the final dot in
// name matches AllowedExtension, ignoring case. A name without a dot is
// never allowed. The embedded client mirrors this check verbatim.
func IsExtensionAllowed(name string) bool {
	ext := filepath.Ext(name)
	if ext == "" {
		return false
	}
	return strings.EqualFold(ext, AllowedExtension)
}

// IsSizeAllowed reports whether size is positive and within
// MaxFileSizeBytes. Zero-byte files are always rejected.
func IsSizeAllowed(size int64) bool {
	return size > 0 && size <= MaxFileSizeBytes
}

// IsNameAllowed rejects names that could escape the media directory
// when joined into a path: empty names, dot segments, and anything
// carrying a path separator.
func IsNameAllowed(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name
}

const (
	kib = int64(1) << 10
	mib = int64(1) << 20
	gib = int64(1) << 30
)

// FormatSize renders a byte count in one of four bands: plain bytes,
// KB, MB or GB. The inclusive lower bound of each band picks the larger
// unit, and fractional bands carry two digits.
func FormatSize(size int64) string {
	switch {
	case size >= gib:
		return fmt.Sprintf("%.2f GB", float64(size)/float64(gib))
	case size >= mib:
		return fmt.Sprintf("%.2f MB", float64(size)/float64(mib))
	case size >= kib:
		return fmt.Sprintf("%.2f KB", float64(size)/float64(kib))
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}
