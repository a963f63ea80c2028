package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// UploadPolicy bounds what a single request may attach. It is injected into
// the handlers rather than read from process-wide state so tests can tighten
// or relax the limits per case.
type UploadPolicy struct {
	MaxFileBytes      int64
	MaxFiles          int
	AllowedExtensions map[string]bool
	AllowedMIMETypes  map[string]bool
}

type MongoConfig struct {
	URI      string
	Database string
}

// S3Config covers any S3-compatible endpoint (AWS, Cloudflare R2, MinIO).
type S3Config struct {
	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

type GCSConfig struct {
	Bucket          string
	CredentialsFile string
}

// AssetConfig selects the asset-store backend. "disk" is the default and
// needs only a directory; "s3" and "gcs" use their respective sections.
type AssetConfig struct {
	Backend string
	Dir     string
	S3      S3Config
	GCS     GCSConfig
}

type AuthConfig struct {
	JWTSecret     string
	AccessTTL     time.Duration
	AdminEmail    string
	AdminPassword string
}

type AppConfig struct {
	Port           string
	AllowedOrigins []string
	Mongo          MongoConfig
	Assets         AssetConfig
	Auth           AuthConfig
	Uploads        UploadPolicy
}

// Load reads configuration from environment variables. A .env file is loaded
// by main before this runs; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),
		Mongo: MongoConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("DATABASE_NAME", "catalog"),
		},
		Assets: AssetConfig{
			Backend: getEnv("ASSET_BACKEND", "disk"),
			Dir:     getEnv("ASSET_DIR", "uploads"),
			S3: S3Config{
				Bucket:    getEnv("S3_BUCKET", ""),
				AccessKey: getEnv("S3_ACCESS_KEY_ID", ""),
				SecretKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
				Endpoint:  getEnv("S3_ENDPOINT", ""),
			},
			GCS: GCSConfig{
				Bucket:          getEnv("GCS_BUCKET", ""),
				CredentialsFile: getEnv("CREDENTIALS_FILE_LOCATION", ""),
			},
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			AccessTTL:     time.Duration(getEnvInt("ACCESS_TOKEN_TTL_MINUTES", 15)) * time.Minute,
			AdminEmail:    getEnv("ADMIN_EMAIL", ""),
			AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		},
		Uploads: UploadPolicy{
			MaxFileBytes:      int64(getEnvInt("MAX_UPLOAD_SIZE_MB", 2)) << 20,
			MaxFiles:          getEnvInt("MAX_UPLOAD_FILES", 15),
			AllowedExtensions: toSet(splitList(getEnv("ALLOWED_FILE_EXTENSIONS", ".jpeg,.jpg,.png,.gif"))),
			AllowedMIMETypes:  toSet(splitList(getEnv("ALLOWED_FILE_MIME_TYPES", "image/jpeg,image/png,image/gif"))),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(strings.ToLower(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
