// Package config handles loading and managing Habiscope configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for Habiscope.
type Config struct {
	Scoring  ScoringConfig  `yaml:"scoring"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Server   ServerConfig   `yaml:"server"`
}

// ScoringConfig controls scoring behavior.
type ScoringConfig struct {
	Mode     string  `yaml:"mode"`      // default survivability mode
	MinScore float64 `yaml:"min_score"` // default recommendation threshold
	Workers  int     `yaml:"workers"`   // parallel scorers, 0 = GOMAXPROCS
}

// DatabaseConfig selects the corpus database.
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // "postgres" or "sqlite"
	URL    string `yaml:"url"`
}

// StorageConfig selects the blob store for archived catalogs and assessments.
type StorageConfig struct {
	Backend   string `yaml:"backend"` // "local", "s3" or "gcs"
	LocalPath string `yaml:"local_path"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// ServerConfig controls the HTTP service.
type ServerConfig struct {
	Port      string `yaml:"port"`
	APIKey    string `yaml:"api_key"`
	CacheSize int    `yaml:"cache_size"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			Mode:     "human",
			MinScore: 50,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			URL:    DBPath(),
		},
		Storage: StorageConfig{
			Backend:   "local",
			LocalPath: BlobDir(),
			Region:    "us-east-1",
		},
		Server: ServerConfig{
			Port:      "8080",
			CacheSize: 1024,
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the closed enumerations in the config.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q (want postgres or sqlite)", c.Database.Driver)
	}
	switch c.Storage.Backend {
	case "local", "s3", "gcs":
	default:
		return fmt.Errorf("unsupported storage backend %q (want local, s3 or gcs)", c.Storage.Backend)
	}
	if (c.Storage.Backend == "s3" || c.Storage.Backend == "gcs") && c.Storage.Bucket == "" {
		return fmt.Errorf("storage backend %s requires a bucket", c.Storage.Backend)
	}
	if c.Scoring.Workers < 0 {
		return fmt.Errorf("scoring.workers must be >= 0, got %d", c.Scoring.Workers)
	}
	return nil
}

// FindConfigFile looks for .habiscope/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".habiscope", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// CacheDir returns the per-user Habiscope cache directory,
// ~/.cache/habiscope.
func CacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to temp dir if HOME isn't available
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", "habiscope")
}

// DBPath returns the default SQLite corpus path.
func DBPath() string {
	return filepath.Join(CacheDir(), "corpus.db")
}

// BlobDir returns the default local blob storage directory.
func BlobDir() string {
	return filepath.Join(CacheDir(), "blobs")
}
