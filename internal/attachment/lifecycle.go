package attachment

import (
	"context"
	"errors"
	"strings"

	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/entity"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/port/storage"
	"go.uber.org/zap"
)

// ErrNoImageAtIndex is returned by DeleteAt when the index does not address
// an existing image.
var ErrNoImageAtIndex = errors.New("no image at index")

// UploadedFile is what the upload receiver hands to create/update handlers.
// Only StoredPath is consumed here.
type UploadedFile struct {
	OriginalName string
	StoredPath   string
	MimeType     string
}

// Lifecycle owns the image side effects around listing mutations: path
// normalization, the capped merge, and best-effort file deletion. File
// deletion never fails the surrounding record mutation.
type Lifecycle struct {
	store  storage.FileStore
	logger *zap.Logger
}

func NewLifecycle(store storage.FileStore, logger *zap.Logger) *Lifecycle {
	return &Lifecycle{store: store, logger: logger}
}

// NormalizePath converts a stored path into its URL form: forward slashes and
// a single leading slash.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	return "/" + strings.TrimLeft(p, "/")
}

// NormalizeUploaded maps uploaded-file descriptors to normalized paths.
// Empty input yields an empty sequence, not an error.
func (l *Lifecycle) NormalizeUploaded(files []UploadedFile) []string {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, NormalizePath(f.StoredPath))
	}
	return paths
}

// Merge combines an existing images sequence with newly uploaded paths.
//
// With replace set, incoming becomes the full list and every existing path is
// returned as displaced (the caller deletes those files). Otherwise incoming
// is appended after existing and the combined list is truncated to the cap;
// truncated uploads are returned as dropped. Dropped uploads keep their
// backing files. Callers must not delete them.
func Merge(existing, incoming []string, replace bool) (result, displaced, dropped []string) {
	if replace {
		result = incoming
		displaced = existing
	} else {
		result = append(append([]string{}, existing...), incoming...)
	}
	if len(result) > entity.MaxListingImages {
		dropped = result[entity.MaxListingImages:]
		result = result[:entity.MaxListingImages]
	}
	return result, displaced, dropped
}

// DeleteAt removes the image at index, returning the removed path and the
// shortened sequence with relative order preserved.
func DeleteAt(images []string, index int) (string, []string, error) {
	if index < 0 || index >= len(images) {
		return "", nil, ErrNoImageAtIndex
	}
	removed := images[index]
	rest := make([]string, 0, len(images)-1)
	rest = append(rest, images[:index]...)
	rest = append(rest, images[index+1:]...)
	return removed, rest, nil
}

// DeleteFiles removes each backing file, best-effort. A missing or otherwise
// undeletable file is logged and skipped.
func (l *Lifecycle) DeleteFiles(ctx context.Context, paths []string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := l.store.Remove(ctx, p); err != nil {
			l.logger.Warn("Failed to delete image file", zap.String("path", p), zap.Error(err))
		}
	}
}

// Compensate deletes files that were uploaded for a record write that then
// failed, so no orphaned files accumulate. Unconditional and best-effort; its
// own failures are swallowed by DeleteFiles.
func (l *Lifecycle) Compensate(ctx context.Context, uploaded []string) {
	if len(uploaded) == 0 {
		return
	}
	l.logger.Warn("Record write failed after upload, removing just-uploaded files",
		zap.Int("count", len(uploaded)))
	l.DeleteFiles(ctx, uploaded)
}
