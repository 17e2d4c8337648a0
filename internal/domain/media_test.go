package domain_test

import (
	"testing"

	"github.com/jgough/video-vault/internal/domain"
)

func TestIsExtensionAllowed(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"lowercase", "clip.mp4", true},
		{"uppercase", "CLIP.MP4", true},
		{"mixed case", "clip.Mp4", true},
		{"wrong extension", "clip.mkv", false},
		{"no dot", "clipmp4", false},
		{"trailing dot", "clip.", false},
		{"empty", "", false},
		{"extension only", ".mp4", true},
		{"double extension", "clip.mp4.avi", false},
		{"inner mp4", "clip.avi.mp4", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domain.IsExtensionAllowed(tt.in); got != tt.want {
				t.Errorf("IsExtensionAllowed(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsSizeAllowed(t *testing.T) {
	tests := []struct {
		name string
		size int64
		want bool
	}{
		{"zero", 0, false},
		{"negative", -1, false},
		{"one byte", 1, true},
		{"typical", 5 * 1024 * 1024, true},
		{"exactly max", 209715200, true},
		{"one over max", 209715201, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domain.IsSizeAllowed(tt.size); got != tt.want {
				t.Errorf("IsSizeAllowed(%d) = %v, want %v", tt.size, got, tt.want)
			}
		})
	}
}

func TestIsNameAllowed(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"plain name", "clip.mp4", true},
		{"spaces", "my holiday clip.mp4", true},
		{"empty", "", false},
		{"dot", ".", false},
		{"dotdot", "..", false},
		{"forward slash", "a/b.mp4", false},
		{"backslash", `a\b.mp4`, false},
		{"traversal", "../escape.mp4", false},
		{"absolute", "/etc/passwd", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domain.IsNameAllowed(tt.in); got != tt.want {
				t.Errorf("IsNameAllowed(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 bytes"},
		{500, "500 bytes"},
		{1023, "1023 bytes"},
		{1024, "1.00 KB"},
		{2048, "2.00 KB"},
		{1048575, "1024.00 KB"},
		{1048576, "1.00 MB"},
		{5242880, "5.00 MB"},
		{1073741824, "1.00 GB"},
		{2147483648, "2.00 GB"},
	}
	for _, tt := range tests {
		if got := domain.FormatSize(tt.size); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestMediaEntryDerivedFields(t *testing.T) {
	e := domain.MediaEntry{Name: "clip.mp4", SizeBytes: 2048}
	if got := e.URL(); got != "/media/clip.mp4" {
		t.Errorf("URL() = %q, want %q", got, "/media/clip.mp4")
	}
	if got := e.SizeDisplay(); got != "2.00 KB" {
		t.Errorf("SizeDisplay() = %q, want %q", got, "2.00 KB")
	}
}
