package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Module under inspection
	ModulePath string

	// Auth
	APIKey string

	// Content classification
	ClassifierPrefixSize  int
	PrintableThresholdPct int

	// Inline rendering
	InlineCeilingBytes int64

	// Preview cache
	PreviewCacheSize int

	// Dispatch loop
	DispatchQueueSize int

	// Export backend: "dir" or "s3"
	ExportBackend string
	ExportDir     string

	// S3 export settings
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Prefix    string
	S3UseSSL    bool

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		ModulePath: os.Getenv("MODULE_PATH"),

		APIKey: os.Getenv("RESBROWSE_API_KEY"),

		ClassifierPrefixSize:  envInt("CLASSIFIER_PREFIX_SIZE", 4096),
		PrintableThresholdPct: envInt("PRINTABLE_THRESHOLD_PCT", 85),

		InlineCeilingBytes: envInt64("INLINE_CEILING_BYTES", 1048576), // 1MB

		PreviewCacheSize: envInt("PREVIEW_CACHE_SIZE", 128),

		DispatchQueueSize: envInt("DISPATCH_QUEUE_SIZE", 64),

		ExportBackend: envOr("EXPORT_BACKEND", "dir"),
		ExportDir:     envOr("EXPORT_DIR", "exports"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    os.Getenv("S3_REGION"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Prefix:    envOr("S3_PREFIX", "resbrowse"),
		S3UseSSL:    envBool("S3_USE_SSL", true),

		ReadTimeout:  envDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout: envDuration("WRITE_TIMEOUT", 120*time.Second),
	}

	if cfg.ClassifierPrefixSize <= 0 {
		cfg.ClassifierPrefixSize = 4096
	}
	if cfg.PrintableThresholdPct <= 0 || cfg.PrintableThresholdPct > 100 {
		cfg.PrintableThresholdPct = 85
	}
	if cfg.InlineCeilingBytes <= 0 {
		cfg.InlineCeilingBytes = 1048576
	}
	if cfg.PreviewCacheSize <= 0 {
		cfg.PreviewCacheSize = 128
	}
	if cfg.DispatchQueueSize <= 0 {
		cfg.DispatchQueueSize = 64
	}

	return cfg
}

func (c Config) Validate() error {
	if c.ModulePath == "" {
		return fmt.Errorf("MODULE_PATH is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("RESBROWSE_API_KEY is required")
	}
	switch c.ExportBackend {
	case "dir":
	case "s3":
		if c.S3Endpoint == "" || c.S3Bucket == "" {
			return fmt.Errorf("s3 export requires S3_ENDPOINT and S3_BUCKET")
		}
	default:
		return fmt.Errorf("unknown export backend %q", c.ExportBackend)
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
