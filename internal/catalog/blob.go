package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/habiscope/habiscope/pkg/planet"
)

// Blob collections.
const (
	collectionCatalogs    = "catalogs"
	collectionAssessments = "assessments"
)

// BlobStore abstracts blob storage for archived catalogs and assessment
// documents. Get returns an error wrapping ErrNotFound for missing blobs.
type BlobStore interface {
	PutCatalog(ctx context.Context, catalogID string, data []byte) error
	GetCatalog(ctx context.Context, catalogID string) ([]byte, error)
	PutAssessment(ctx context.Context, assessmentID string, data []byte) error
	GetAssessment(ctx context.Context, assessmentID string) ([]byte, error)
}

// Ref returns the storage key of a blob, relative to the store root.
// IDs that could leave the collection are rejected with planet.ErrInvalidID.
func Ref(collection, id string) (string, error) {
	if err := planet.ValidateID(id); err != nil {
		return "", fmt.Errorf("blob key: %w", err)
	}
	return path.Join(collection, id+".json"), nil
}

// CatalogRef is the storage key of an archived catalog.
func CatalogRef(catalogID string) (string, error) { return Ref(collectionCatalogs, catalogID) }

// AssessmentRef is the storage key of an assessment document.
func AssessmentRef(assessmentID string) (string, error) {
	return Ref(collectionAssessments, assessmentID)
}

// LocalStorage implements BlobStore using the local filesystem.
// Useful for development, the CLI and testing.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at the given directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

func (s *LocalStorage) path(ref string) string {
	return filepath.Join(s.BaseDir, filepath.FromSlash(ref))
}

func (s *LocalStorage) put(collection, id string, data []byte) error {
	ref, err := Ref(collection, id)
	if err != nil {
		return err
	}
	p := s.path(ref)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", ref, err)
	}
	return nil
}

func (s *LocalStorage) get(collection, id string) ([]byte, error) {
	ref, err := Ref(collection, id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(ref))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("blob %s: %w", ref, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ref, err)
	}
	return data, nil
}

// PutCatalog stores a catalog blob.
func (s *LocalStorage) PutCatalog(ctx context.Context, catalogID string, data []byte) error {
	return s.put(collectionCatalogs, catalogID, data)
}

// GetCatalog retrieves a catalog blob.
func (s *LocalStorage) GetCatalog(ctx context.Context, catalogID string) ([]byte, error) {
	return s.get(collectionCatalogs, catalogID)
}

// PutAssessment stores an assessment document.
func (s *LocalStorage) PutAssessment(ctx context.Context, assessmentID string, data []byte) error {
	return s.put(collectionAssessments, assessmentID, data)
}

// GetAssessment retrieves an assessment document.
func (s *LocalStorage) GetAssessment(ctx context.Context, assessmentID string) ([]byte, error) {
	return s.get(collectionAssessments, assessmentID)
}

// BlobConfig selects and configures a BlobStore backend.
type BlobConfig struct {
	Backend   string // "local", "s3" or "gcs"
	LocalPath string
	S3        S3Config
	Bucket    string // GCS bucket
}

// NewBlobStore creates the BlobStore named by cfg.Backend.
func NewBlobStore(ctx context.Context, cfg BlobConfig) (BlobStore, error) {
	switch cfg.Backend {
	case "", "local":
		if cfg.LocalPath == "" {
			return nil, fmt.Errorf("local storage requires a path")
		}
		return NewLocalStorage(cfg.LocalPath), nil
	case "s3":
		return NewS3Storage(ctx, cfg.S3)
	case "gcs":
		return NewGCSStorage(ctx, cfg.Bucket)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}
