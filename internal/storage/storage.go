package storage

import "context"

// ObjectStorage captures the single S3-compatible operation the exporter
// needs: pushing a finished workbook.
type ObjectStorage interface {
	UploadObject(ctx context.Context, key string, data []byte) error
}
