package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
)

// GCSStorage implements BlobStore using Google Cloud Storage.
type GCSStorage struct {
	client *gcs.Client
	bucket string
}

// NewGCSStorage creates a GCS-backed BlobStore.
// It uses Application Default Credentials.
func NewGCSStorage(ctx context.Context, bucket string) (*GCSStorage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs storage requires a bucket")
	}
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCSStorage{client: client, bucket: bucket}, nil
}

func (s *GCSStorage) put(ctx context.Context, collection, id string, data []byte) error {
	key, err := Ref(collection, id)
	if err != nil {
		return err
	}
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("gcs write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs close %s: %w", key, err)
	}
	return nil
}

func (s *GCSStorage) get(ctx context.Context, collection, id string) ([]byte, error) {
	key, err := Ref(collection, id)
	if err != nil {
		return nil, err
	}
	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil, fmt.Errorf("gcs read %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("gcs read %s: %w", key, err)
	}
	defer r.Close()
	return io.ReadAll(r)
}

func (s *GCSStorage) PutCatalog(ctx context.Context, catalogID string, data []byte) error {
	return s.put(ctx, collectionCatalogs, catalogID, data)
}

func (s *GCSStorage) GetCatalog(ctx context.Context, catalogID string) ([]byte, error) {
	return s.get(ctx, collectionCatalogs, catalogID)
}

func (s *GCSStorage) PutAssessment(ctx context.Context, assessmentID string, data []byte) error {
	return s.put(ctx, collectionAssessments, assessmentID, data)
}

func (s *GCSStorage) GetAssessment(ctx context.Context, assessmentID string) ([]byte, error) {
	return s.get(ctx, collectionAssessments, assessmentID)
}
