package storage

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogapi/apperrors"
)

func TestReaperDeletesAsynchronously(t *testing.T) {
	store := newStubStore()
	require.NoError(t, store.Put(context.Background(), "doomed", strings.NewReader("x"), 1, "image/png"))

	reaper := NewReaper(store, nil)
	reaper.Discard("doomed")
	reaper.Close()

	_, err := store.Open(context.Background(), "doomed")
	assert.Error(t, err)
	assert.Equal(t, []string{"doomed"}, store.deletedNames())
}

func TestReaperFailureGoesToSinkOnly(t *testing.T) {
	store := newStubStore()
	store.failDel = true

	var mu sync.Mutex
	var captured []error
	reaper := NewReaper(store, func(err error) {
		mu.Lock()
		captured = append(captured, err)
		mu.Unlock()
	})

	// Discard never reports failure to the caller.
	reaper.Discard("missing")
	reaper.Close()

	require.Len(t, captured, 1)
	var de *apperrors.AssetDeleteError
	require.ErrorAs(t, captured[0], &de)
	assert.Equal(t, "missing", de.Name)
}

func TestReaperSkipsEmptyNames(t *testing.T) {
	store := newStubStore()

	var calls int
	reaper := NewReaper(store, func(error) { calls++ })
	reaper.Discard("", "", "")
	reaper.Close()

	assert.Zero(t, calls)
	assert.Empty(t, store.deletedNames())
}

func TestReaperHandlesManyDiscards(t *testing.T) {
	store := newStubStore()
	ctx := context.Background()

	names := make([]string, 0, 500)
	for range 500 {
		name := NewAssetName()
		require.NoError(t, store.Put(ctx, name, strings.NewReader("x"), 1, "image/png"))
		names = append(names, name)
	}

	// More names than the queue buffers; the overflow path must not drop any.
	reaper := NewReaper(store, nil)
	reaper.Discard(names...)
	reaper.Close()

	assert.Len(t, store.deletedNames(), 500)
}
