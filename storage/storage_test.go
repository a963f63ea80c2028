package storage

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngBytes starts with the PNG signature so content sniffing sees image/png.
func pngBytes(n int) []byte {
	sig := []byte("\x89PNG\r\n\x1a\n")
	return append(sig, bytes.Repeat([]byte{0x42}, n)...)
}

func gifBytes() []byte {
	return append([]byte("GIF89a"), bytes.Repeat([]byte{0x01}, 32)...)
}

// fileHeader builds a real multipart.FileHeader the way gin hands one to the
// handlers.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	require.Len(t, form.File["file"], 1)
	return form.File["file"][0]
}

// stubStore is an in-memory Store with switchable failures.
type stubStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	deleted   []string
	failPut   bool
	failAfter int // fail puts once this many succeeded; <0 disables
	failDel   bool
}

func newStubStore() *stubStore {
	return &stubStore{objects: map[string][]byte{}, failAfter: -1}
}

func (s *stubStore) Put(_ context.Context, name string, r io.Reader, _ int64, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failPut || (s.failAfter >= 0 && len(s.objects) >= s.failAfter) {
		return assert.AnError
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[name] = data
	return nil
}

func (s *stubStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[name]
	if !ok {
		return nil, assert.AnError
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *stubStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDel {
		return assert.AnError
	}
	delete(s.objects, name)
	s.deleted = append(s.deleted, name)
	return nil
}

func (s *stubStore) deletedNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

func TestNewAssetName(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		name := NewAssetName()
		assert.False(t, seen[name], "generated names must not repeat")
		seen[name] = true

		assert.Empty(t, filepath.Ext(name), "asset names carry no extension")
		assert.NotContains(t, name, "/")
	}
}

func TestDiskStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	name := NewAssetName()
	content := pngBytes(64)
	require.NoError(t, store.Put(ctx, name, bytes.NewReader(content), int64(len(content)), "image/png"))

	rc, err := store.Open(ctx, name)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, content, got)

	require.NoError(t, store.Delete(ctx, name))
	_, err = store.Open(ctx, name)
	assert.Error(t, err)
}

func TestDiskStoreStripsPathComponents(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "../escape", strings.NewReader("x"), 1, "image/png"))

	// The file must land inside the root, not beside it.
	rc, err := store.Open(ctx, "escape")
	require.NoError(t, err)
	rc.Close()
}
