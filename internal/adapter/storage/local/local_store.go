package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store keeps image files on local disk under a public base directory.
// Stored paths are relative to that directory ("uploads/hotels/<uuid>.jpg"),
// which is also how they are served.
type Store struct {
	baseDir string
	logger  *zap.Logger
}

func NewStore(baseDir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage base dir %s: %w", baseDir, err)
	}
	return &Store{baseDir: baseDir, logger: logger}, nil
}

func (s *Store) Save(ctx context.Context, dir, originalName string, data []byte) (string, error) {
	target := filepath.Join(s.baseDir, filepath.FromSlash(dir))
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir %s: %w", target, err)
	}

	name := uuid.New().String() + filepath.Ext(originalName)
	full := filepath.Join(target, name)
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", full, err)
	}

	s.logger.Debug("Stored uploaded file",
		zap.String("path", full),
		zap.String("original_name", originalName),
		zap.Int("size_bytes", len(data)),
	)
	return dir + "/" + name, nil
}

func (s *Store) Remove(ctx context.Context, path string) error {
	rel := strings.TrimPrefix(path, "/")
	full := filepath.Join(s.baseDir, filepath.FromSlash(rel))
	if err := os.Remove(full); err != nil {
		return fmt.Errorf("failed to remove file %s: %w", full, err)
	}
	return nil
}
