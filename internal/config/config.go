package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppEnv string
	Port   string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	PrivateToken string // shared secret required for uploads

	// Uploads
	MaxFileSize int64 // bytes accepted per upload body

	// Storage ("local" disk directory or any S3-compatible service)
	StorageBackend string
	DataDir        string
	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	S3Endpoint     string // Optional: for S3-compatible services (MinIO, R2, etc.)

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppEnv: envRequired("APP_ENV"), // Required: 'development' or 'production'
		Port:   envString("PORT", "8080"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/skybox.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		PrivateToken: envRequired("PRIVATE_TOKEN"),

		// Uploads
		MaxFileSize: envInt64("MAX_FILE_SIZE", 10<<20), // 10 MiB

		// Storage
		StorageBackend: envString("STORAGE_BACKEND", "local"),
		DataDir:        envString("DATA_DIR", "./data/blobs"),
		S3Region:       envString("S3_REGION", ""),
		S3Bucket:       envString("S3_BUCKET", ""),
		S3AccessKey:    envString("S3_ACCESS_KEY", ""),
		S3SecretKey:    envString("S3_SECRET_KEY", ""),
		S3Endpoint:     envString("S3_ENDPOINT", ""), // Optional: for non-AWS providers

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),
	}

	if cfg.StorageBackend == "s3" {
		validateS3(cfg)
	}

	return cfg
}

// validateS3 ensures the S3 backend has everything it needs before the
// process starts taking uploads.
func validateS3(cfg *Config) {
	if cfg.S3Region == "" || cfg.S3Bucket == "" {
		slog.Error("s3 storage backend requires S3_REGION and S3_BUCKET",
			"hint", "set STORAGE_BACKEND=local for disk storage")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt64(key string, def int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		slog.Warn("config invalid integer, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
