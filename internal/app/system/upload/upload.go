// internal/app/system/upload/upload.go

// Package upload stores multipart file uploads through the configured
// storage backend under unique, date-partitioned paths.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
)

// MaxUploadSize is the multipart memory limit used by upload forms (10MB).
const MaxUploadSize = 10 << 20

// ErrDisallowedType is returned for uploads whose extension is not accepted.
var ErrDisallowedType = errors.New("upload: file type not allowed")

// allowedExts lists the extensions the admin screens accept: images and
// PDF documents. Uploads are served from the site origin, so anything a
// browser treats as active content (html, svg, scripts) is rejected.
var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".pdf":  true,
}

// AllowedExt reports whether the filename has an accepted extension.
func AllowedExt(filename string) bool {
	return allowedExts[strings.ToLower(filepath.Ext(filename))]
}

// UniquePath generates a storage path of the form
// folder/YYYY/MM/xxxxxxxx.ext, keeping the original extension.
func UniquePath(folder, filename string) string {
	now := time.Now().UTC()
	ext := strings.ToLower(filepath.Ext(filename))
	name := fmt.Sprintf("%s%s", uuid.New().String()[:8], ext)
	return fmt.Sprintf("%s/%04d/%02d/%s", folder, now.Year(), now.Month(), name)
}

// Save stores the file under a unique path in the given folder and
// returns the storage path.
func Save(ctx context.Context, store storage.Store, folder, filename string, file io.Reader, contentType string) (string, error) {
	if !AllowedExt(filename) {
		return "", ErrDisallowedType
	}
	path := UniquePath(folder, filename)

	opts := &storage.PutOptions{
		ContentType: contentType,
	}
	if err := store.Put(ctx, path, file, opts); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	return path, nil
}

// FromForm extracts the named file from a parsed multipart form and
// stores it, returning the public URL. It returns ("", nil) when the
// field has no file, so callers can treat the upload as optional.
// The request's multipart form must already be parsed.
func FromForm(ctx context.Context, store storage.Store, r *http.Request, field, folder string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil || header == nil || header.Size == 0 {
		return "", nil
	}
	defer file.Close()

	path, err := Save(ctx, store, folder, header.Filename, file, header.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}
	return store.URL(path), nil
}
