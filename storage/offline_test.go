package storage_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"study-tracker/database"
	"study-tracker/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUnavailable = errors.New("backend unavailable")

// flakyProvider wraps a real store and fails every call while offline is set
type flakyProvider struct {
	storage.Provider
	offline bool
}

func (f *flakyProvider) Get(ctx context.Context, path string) (*storage.Document, error) {
	if f.offline {
		return nil, errUnavailable
	}
	return f.Provider.Get(ctx, path)
}

func (f *flakyProvider) Set(ctx context.Context, path string, data map[string]any, opts ...storage.SetOption) error {
	if f.offline {
		return errUnavailable
	}
	return f.Provider.Set(ctx, path, data, opts...)
}

func (f *flakyProvider) List(ctx context.Context, collection string, q storage.Query) ([]storage.Document, error) {
	if f.offline {
		return nil, errUnavailable
	}
	return f.Provider.List(ctx, collection, q)
}

func openStore(t *testing.T, name string) *database.Store {
	t.Helper()
	store, err := database.Open(filepath.Join(t.TempDir(), name))
	require.NoError(t, err)
	return store
}

func TestOffline(t *testing.T) {
	ctx := context.Background()
	remoteStore := openStore(t, "remote.db")
	localStore := openStore(t, "local.db")
	remote := &flakyProvider{Provider: remoteStore}

	cache := storage.NewOffline(remote, localStore, nil)
	defer cache.Close()

	require.NoError(t, cache.Set(ctx, "users/u1/materials/m1", map[string]any{"title": "Physiology"}))
	require.NoError(t, remoteStore.Set(ctx, "users/u1/materials/m2", map[string]any{"title": "Biochem"}))

	t.Run("Online reads are mirrored", func(t *testing.T) {
		docs, err := cache.List(ctx, "users/u1/materials", storage.Query{})
		require.NoError(t, err)
		assert.Len(t, docs, 2)

		_, err = localStore.Get(ctx, "users/u1/materials/m2")
		assert.NoError(t, err)
	})

	t.Run("Documents deleted remotely are dropped from the mirror", func(t *testing.T) {
		require.NoError(t, remoteStore.Delete(ctx, "users/u1/materials/m2"))

		_, err := cache.List(ctx, "users/u1/materials", storage.Query{})
		require.NoError(t, err)

		_, err = localStore.Get(ctx, "users/u1/materials/m2")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Offline reads fall back to the mirror", func(t *testing.T) {
		remote.offline = true
		defer func() { remote.offline = false }()

		doc, err := cache.Get(ctx, "users/u1/materials/m1")
		require.NoError(t, err)
		assert.Equal(t, "Physiology", doc.Data["title"])

		docs, err := cache.List(ctx, "users/u1/materials", storage.Query{})
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})

	t.Run("Offline writes fail and are not mirrored", func(t *testing.T) {
		remote.offline = true
		defer func() { remote.offline = false }()

		err := cache.Set(ctx, "users/u1/materials/m3", map[string]any{"title": "Path"})
		assert.ErrorIs(t, err, errUnavailable)

		_, err = localStore.Get(ctx, "users/u1/materials/m3")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Uncached offline reads return the remote error", func(t *testing.T) {
		remote.offline = true
		defer func() { remote.offline = false }()

		_, err := cache.Get(ctx, "users/u1/materials/unknown")
		assert.ErrorIs(t, err, errUnavailable)
	})

	t.Run("Batches are mirrored after commit", func(t *testing.T) {
		b := cache.Batch()
		b.Set("users/u1/materials/m4", map[string]any{"title": "Micro"})
		b.Delete("users/u1/materials/m1")
		require.NoError(t, b.Commit(ctx))

		_, err := localStore.Get(ctx, "users/u1/materials/m4")
		assert.NoError(t, err)
		_, err = localStore.Get(ctx, "users/u1/materials/m1")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestOffline_LargeCollection(t *testing.T) {
	ctx := context.Background()
	remoteStore := openStore(t, "remote.db")
	localStore := openStore(t, "local.db")
	remote := &flakyProvider{Provider: remoteStore}

	cache := storage.NewOffline(remote, localStore, nil)
	defer cache.Close()

	const total = 600
	collection := "users/u1/knowledgeBase"
	paths := make([]string, 0, total)
	for i := 0; i < total; i++ {
		paths = append(paths, storage.Join(collection, fmt.Sprint(i)))
	}
	for _, group := range storage.Chunk(paths, storage.MaxBatchWrites) {
		b := remoteStore.Batch()
		for _, p := range group {
			b.Set(p, map[string]any{"title": p})
		}
		require.NoError(t, b.Commit(ctx))
	}

	docs, err := cache.List(ctx, collection, storage.Query{})
	require.NoError(t, err)
	require.Len(t, docs, total)

	mirrored, err := localStore.List(ctx, collection, storage.Query{})
	require.NoError(t, err)
	assert.Len(t, mirrored, total)

	remote.offline = true
	docs, err = cache.List(ctx, collection, storage.Query{})
	require.NoError(t, err)
	assert.Len(t, docs, total)
	remote.offline = false

	// Remove 550 remotely; the stale pass must drop them from the mirror too
	for _, group := range storage.Chunk(paths[50:], storage.MaxBatchWrites) {
		b := remoteStore.Batch()
		for _, p := range group {
			b.Delete(p)
		}
		require.NoError(t, b.Commit(ctx))
	}

	docs, err = cache.List(ctx, collection, storage.Query{})
	require.NoError(t, err)
	assert.Len(t, docs, 50)

	mirrored, err = localStore.List(ctx, collection, storage.Query{})
	require.NoError(t, err)
	assert.Len(t, mirrored, 50)
}

func TestEnablePersistence(t *testing.T) {
	remote := openStore(t, "remote.db")
	defer remote.Close()

	failing := storage.EnablePersistence(remote, func() (storage.Provider, error) {
		return nil, errors.New("disk full")
	}, nil)
	assert.Same(t, storage.Provider(remote), failing)

	local := openStore(t, "local.db")
	enabled := storage.EnablePersistence(remote, func() (storage.Provider, error) {
		return local, nil
	}, nil)
	_, ok := enabled.(*storage.Offline)
	assert.True(t, ok)
	local.Close()
}
