package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"catalogapi/config"
)

// Store is the asset store: durable bytes keyed by a generated name.
// Implementations stream; they never buffer whole files in memory.
type Store interface {
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}

// NewAssetName generates the object name for an upload: a time component plus
// a random suffix, with no file extension. Uniqueness is probabilistic; the
// write-once access pattern tolerates the negligible collision risk.
func NewAssetName() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), uuid.NewString())
}

// New builds the asset store selected by the config.
func New(ctx context.Context, cfg config.AssetConfig) (Store, error) {
	switch cfg.Backend {
	case "", "disk":
		return NewDiskStore(cfg.Dir)
	case "s3":
		return NewS3Store(cfg.S3)
	case "gcs":
		return NewGCSStore(ctx, cfg.GCS)
	default:
		return nil, fmt.Errorf("unknown asset backend %q", cfg.Backend)
	}
}
