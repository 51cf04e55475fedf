package common

import "testing"

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		name string
		file string
		want string
	}{
		{"pdf", "report.pdf", "application/pdf"},
		{"multiple dots use last segment", "report.final.pdf", "application/pdf"},
		{"markdown", "notes.md", "text/markdown"},
		{"uppercase extension", "SLIDES.PPTX", "application/vnd.openxmlformats-officedocument.presentationml.presentation"},
		{"no extension", "README", "application/octet-stream"},
		{"trailing dot", "weird.", "application/octet-stream"},
		{"unknown extension", "blob.xyzzy", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContentTypeFor(tt.file); got != tt.want {
				t.Errorf("ContentTypeFor(%q) = %q, want %q", tt.file, got, tt.want)
			}
		})
	}
}
