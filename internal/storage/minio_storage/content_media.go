package minio_storage

import (
	"context"

	"github.com/minio/minio-go/v7"
)

// ContentMedia removes stored media objects when their owning content item
// is deleted. Uploads go through a separate ingestion path; the ordering
// engine only ever cleans up.
type ContentMedia struct {
	storage *MinioStorage
	bucket  string
}

func NewContentMedia(storage *MinioStorage, bucket string) (*ContentMedia, error) {
	if err := storage.ensureBucket(context.Background(), bucket); err != nil {
		return nil, err
	}
	return &ContentMedia{storage: storage, bucket: bucket}, nil
}

func (s *ContentMedia) DeleteObject(ctx context.Context, objectKey string) error {
	return s.storage.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{})
}
