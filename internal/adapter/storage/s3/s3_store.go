package s3

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Store keeps image files in a MinIO bucket. Object keys mirror the local
// layout ("uploads/hotels/<uuid>.jpg") so stored paths look the same to the
// rest of the application regardless of the configured driver.
type Store struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

func NewStore(endpoint, accessKey, secretKey, bucket string, useSSL bool, logger *zap.Logger) (*Store, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	ctx := context.Background()
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		exists, existsErr := client.BucketExists(ctx, bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: %w", bucket, err)
		}
	}

	logger.Info("MinIO storage initialized", zap.String("endpoint", endpoint), zap.String("bucket", bucket))
	return &Store{client: client, bucket: bucket, logger: logger}, nil
}

func (s *Store) Save(ctx context.Context, dir, originalName string, data []byte) (string, error) {
	key := dir + "/" + uuid.New().String() + filepath.Ext(originalName)

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", key, s.bucket, err)
	}

	s.logger.Debug("Uploaded object",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("size_bytes", len(data)),
	)
	return key, nil
}

func (s *Store) Remove(ctx context.Context, path string) error {
	key := strings.TrimPrefix(path, "/")
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s from bucket %s: %w", key, s.bucket, err)
	}
	return nil
}
