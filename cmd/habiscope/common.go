package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/habiscope/habiscope/internal/assessment"
	"github.com/habiscope/habiscope/internal/catalog"
	"github.com/habiscope/habiscope/internal/platform"
	"github.com/habiscope/habiscope/pkg/config"
	"github.com/habiscope/habiscope/pkg/scoring"
)

// loadConfig loads the config at path, or discovers one from the working
// directory. Failures fall back to defaults with a warning.
func loadConfig(path string) *config.Config {
	if path == "" {
		if cwd, err := os.Getwd(); err == nil {
			path = config.FindConfigFile(cwd)
		}
	}
	if path == "" {
		return config.DefaultConfig()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// blobConfig maps the storage section of cfg to a catalog.BlobConfig.
func blobConfig(cfg *config.Config) catalog.BlobConfig {
	return catalog.BlobConfig{
		Backend:   cfg.Storage.Backend,
		LocalPath: cfg.Storage.LocalPath,
		Bucket:    cfg.Storage.Bucket,
		S3: catalog.S3Config{
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
		},
	}
}

// openService opens the corpus database (dbPath overrides the configured
// SQLite path) and builds an assessment service over it.
func openService(ctx context.Context, cfg *config.Config, dbPath string) (*assessment.Service, *sql.DB, error) {
	driver := cfg.Database.Driver
	url := cfg.Database.URL
	if dbPath != "" {
		driver, url = platform.DriverSQLite, dbPath
	}

	db, err := platform.Open(ctx, driver, url)
	if err != nil {
		return nil, nil, fmt.Errorf("opening corpus: %w", err)
	}

	blobs, err := catalog.NewBlobStore(ctx, blobConfig(cfg))
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("opening blob store: %w", err)
	}

	store := catalog.NewStore(db, driver)
	return assessment.NewService(store, blobs, scoring.Defaults(), cfg.Scoring.Workers), db, nil
}
