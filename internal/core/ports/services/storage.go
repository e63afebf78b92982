package services

import "context"

// UploadResult is what the object store returns for a stored file.
type UploadResult struct {
	URL        string
	StorageKey string
}

// FileStorage is the object-storage collaborator used for receipt files.
// Delete failures during cascading removals are logged and not propagated.
type FileStorage interface {
	Upload(ctx context.Context, data []byte, fileName, mimeType, folder, tenantID string) (*UploadResult, error)
	Delete(ctx context.Context, storageKey string) error
}
