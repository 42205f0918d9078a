package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Optional downstream graph service
	GraphstoreURL    string
	GraphstoreAPIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Tabular conversion defaults
	SegColumn  string
	LnColumn   string
	CleanCells bool

	// In-memory state
	JobTTL    time.Duration
	CorpusTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("CORPUSTREE_API_KEY"),

		GraphstoreURL:    os.Getenv("GRAPHSTORE_URL"),
		GraphstoreAPIKey: os.Getenv("GRAPHSTORE_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 2),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 50),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 26214400), // 25MB

		SegColumn:  envOr("SEG_COLUMN", "seg"),
		LnColumn:   envOr("LN_COLUMN", "ln"),
		CleanCells: envBool("CLEAN_CELLS", true),

		JobTTL:    envDuration("JOB_TTL", 1*time.Hour),
		CorpusTTL: envDuration("CORPUS_TTL", 0), // 0 = keep forever
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 50
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 26214400
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("CORPUSTREE_API_KEY is required")
	}
	if c.GraphstoreURL != "" && c.GraphstoreAPIKey == "" {
		return fmt.Errorf("GRAPHSTORE_API_KEY is required when GRAPHSTORE_URL is set")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
