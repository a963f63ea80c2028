package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskStore keeps assets as flat files under a single directory.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create asset dir: %w", err)
	}
	return &DiskStore{root: root}, nil
}

func (d *DiskStore) path(name string) string {
	// Base strips any path components a crafted name could smuggle in.
	return filepath.Join(d.root, filepath.Base(name))
}

func (d *DiskStore) Put(_ context.Context, name string, r io.Reader, _ int64, _ string) error {
	f, err := os.Create(d.path(name))
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (d *DiskStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(d.path(name))
}

func (d *DiskStore) Delete(_ context.Context, name string) error {
	return os.Remove(d.path(name))
}
