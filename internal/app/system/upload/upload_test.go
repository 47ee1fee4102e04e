package upload

import (
	"context"
	"strings"
	"testing"

	"github.com/dalemusser/waffle/pantry/storage"
)

func TestAllowedExt(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"photo.jpg", true},
		{"photo.JPEG", true},
		{"banner.png", true},
		{"slide.webp", true},
		{"fees.pdf", true},
		{"page.html", false},
		{"logo.svg", false},
		{"script.js", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := AllowedExt(tt.filename); got != tt.want {
			t.Errorf("AllowedExt(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestUniquePathKeepsExtension(t *testing.T) {
	path := UniquePath("gallery", "Photo.JPG")
	if !strings.HasPrefix(path, "gallery/") {
		t.Errorf("path = %q, want gallery/ prefix", path)
	}
	if !strings.HasSuffix(path, ".jpg") {
		t.Errorf("path = %q, want lowercased .jpg suffix", path)
	}
}

func TestSaveRejectsDisallowedType(t *testing.T) {
	store, err := storage.NewLocal(storage.LocalConfig{
		BasePath: t.TempDir(),
		BaseURL:  "/files",
	})
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	_, err = Save(context.Background(), store, "news", "payload.html", strings.NewReader("<script>"), "text/html")
	if err != ErrDisallowedType {
		t.Errorf("Save error = %v, want ErrDisallowedType", err)
	}
}

func TestSaveStoresAllowedType(t *testing.T) {
	store, err := storage.NewLocal(storage.LocalConfig{
		BasePath: t.TempDir(),
		BaseURL:  "/files",
	})
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	path, err := Save(context.Background(), store, "fees", "structure.pdf", strings.NewReader("%PDF-1.4"), "application/pdf")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(path, "fees/") || !strings.HasSuffix(path, ".pdf") {
		t.Errorf("path = %q", path)
	}
}
