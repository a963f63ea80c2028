package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"catalogapi/config"
)

// GCSStore backs assets with a Google Cloud Storage bucket.
type GCSStore struct {
	client *gcs.Client
	bucket string
}

func NewGCSStore(ctx context.Context, cfg config.GCSConfig) (*GCSStore, error) {
	if cfg.Bucket == "" || cfg.CredentialsFile == "" {
		return nil, fmt.Errorf("missing GCS settings (GCS_BUCKET, CREDENTIALS_FILE_LOCATION)")
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	client, err := gcs.NewClient(ctx,
		option.WithAuthCredentialsFile(option.ServiceAccount, filepath.Join(wd, cfg.CredentialsFile)))
	if err != nil {
		return nil, err
	}
	return &GCSStore{client: client, bucket: cfg.Bucket}, nil
}

func (g *GCSStore) Put(ctx context.Context, name string, r io.Reader, _ int64, contentType string) error {
	w := g.client.Bucket(g.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func (g *GCSStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return g.client.Bucket(g.bucket).Object(name).NewReader(ctx)
}

func (g *GCSStore) Delete(ctx context.Context, name string) error {
	return g.client.Bucket(g.bucket).Object(name).Delete(ctx)
}
