package storage

import "context"

// FileStore is the backing store for listing image files. Save places the
// file under dir (a per-kind prefix such as "uploads/hotels") and returns the
// stored path; the returned path is what ends up in a listing's images
// sequence after normalization. Remove takes such a stored path back.
type FileStore interface {
	Save(ctx context.Context, dir, originalName string, data []byte) (string, error)
	Remove(ctx context.Context, path string) error
}
