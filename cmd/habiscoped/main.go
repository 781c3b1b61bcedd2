// Command habiscoped is the Habiscope platform service.
// It serves the scoring and corpus API plus a health check.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/habiscope/habiscope/internal/api"
	"github.com/habiscope/habiscope/internal/assessment"
	"github.com/habiscope/habiscope/internal/catalog"
	"github.com/habiscope/habiscope/internal/platform"
	"github.com/habiscope/habiscope/pkg/config"
	"github.com/habiscope/habiscope/pkg/scoring"
)

// loadConfig reads the YAML config (HABISCOPE_CONFIG, or discovered from the
// working directory) and applies environment overrides on top.
func loadConfig() (*config.Config, error) {
	path := os.Getenv("HABISCOPE_CONFIG")
	if path == "" {
		if cwd, err := os.Getwd(); err == nil {
			path = config.FindConfigFile(cwd)
		}
	}

	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.Server.Port = envOrDefault("PORT", cfg.Server.Port)
	cfg.Server.APIKey = envOrDefault("API_KEY", cfg.Server.APIKey)
	if v := os.Getenv("CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.CacheSize = n
		} else {
			log.Printf("ignoring invalid CACHE_SIZE %q", v)
		}
	}
	cfg.Database.Driver = envOrDefault("DATABASE_DRIVER", cfg.Database.Driver)
	cfg.Database.URL = envOrDefault("DATABASE_URL", cfg.Database.URL)
	cfg.Storage.Backend = envOrDefault("STORAGE_BACKEND", cfg.Storage.Backend)
	cfg.Storage.Bucket = envOrDefault("STORAGE_BUCKET", cfg.Storage.Bucket)
	cfg.Storage.LocalPath = envOrDefault("STORAGE_PATH", cfg.Storage.LocalPath)
	cfg.Storage.Region = envOrDefault("AWS_REGION", cfg.Storage.Region)
	cfg.Storage.Endpoint = envOrDefault("S3_ENDPOINT", cfg.Storage.Endpoint)
	cfg.Storage.AccessKey = envOrDefault("S3_ACCESS_KEY", cfg.Storage.AccessKey)
	cfg.Storage.SecretKey = envOrDefault("S3_SECRET_KEY", cfg.Storage.SecretKey)

	return cfg, cfg.Validate()
}

func main() {
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := platform.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	blobs, err := catalog.NewBlobStore(ctx, catalog.BlobConfig{
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
	})
	if err != nil {
		log.Fatalf("init storage: %v", err)
	}

	// Initialize services
	store := catalog.NewStore(db, cfg.Database.Driver)
	svc := assessment.NewService(store, blobs, scoring.Defaults(), cfg.Scoring.Workers)

	handler, err := api.NewHandler(svc, api.Options{
		APIKey:          cfg.Server.APIKey,
		CacheSize:       cfg.Server.CacheSize,
		DefaultMinScore: cfg.Scoring.MinScore,
		DefaultMode:     scoring.ParseMode(cfg.Scoring.Mode),
	})
	if err != nil {
		log.Fatalf("init api: %v", err)
	}
	if cfg.Server.APIKey == "" {
		log.Println("warning: API_KEY not set, write endpoints are unauthenticated")
	}

	// Set up HTTP routes
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.HandleFunc("GET /healthz", healthHandler(db))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           api.CORS(handler.Methods())(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("starting habiscoped on :%s (db=%s, storage=%s)", cfg.Server.Port, cfg.Database.Driver, cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
