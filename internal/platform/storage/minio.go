package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/marcostaira/travel-expense/internal/apperrors"
	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/platform/config"
)

// maxFileSize caps receipt uploads at 10 MB.
const maxFileSize = 10 << 20

// allowedMimeTypes are the receipt formats the API accepts.
var allowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// MinioStorage stores receipt files in a MinIO (or S3-compatible) bucket.
type MinioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinioStorage connects to the object store and ensures the bucket exists.
func NewMinioStorage(ctx context.Context, cfg *config.Config) (*MinioStorage, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinioStorage{client: client, bucket: cfg.MinioBucket}, nil
}

var _ portssvc.FileStorage = (*MinioStorage)(nil)

// Upload validates and stores a file under tenantID/folder/<uuid><ext>.
func (s *MinioStorage) Upload(ctx context.Context, data []byte, fileName, mimeType, folder, tenantID string) (*portssvc.UploadResult, error) {
	if len(data) == 0 {
		return nil, apperrors.NewValidationError("Arquivo vazio")
	}
	if len(data) > maxFileSize {
		return nil, apperrors.NewValidationError("Arquivo excede o tamanho máximo de 10MB")
	}
	if !allowedMimeTypes[strings.ToLower(mimeType)] {
		return nil, apperrors.NewValidationError("Tipo de arquivo não suportado")
	}

	key := fmt.Sprintf("%s/%s/%s%s", tenantID, folder, uuid.NewString(), filepath.Ext(fileName))

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store object: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, key)
	return &portssvc.UploadResult{URL: url, StorageKey: key}, nil
}

// Delete removes a stored object.
func (s *MinioStorage) Delete(ctx context.Context, storageKey string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, storageKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object: %w", err)
	}
	return nil
}
