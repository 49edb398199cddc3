package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starfield-labs/isofetch/internal/core/domain"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := NewCache(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestNewCache_CreatesDatabase(t *testing.T) {
	tmpDir := t.TempDir()

	cache, err := NewCache(tmpDir)

	require.NoError(t, err)
	defer cache.Close()
	assert.Equal(t, filepath.Join(tmpDir, "cache.db"), cache.Path())
}

func TestCache_PutAndGet(t *testing.T) {
	cache := newTestCache(t)
	res := &domain.RawResult{
		Body:        []byte("# table data"),
		Compression: domain.CompressionGzip,
	}

	require.NoError(t, cache.Put("abc123", res))

	got, err := cache.Get("abc123")
	require.NoError(t, err)
	assert.Equal(t, res.Body, got.Body)
	assert.Equal(t, domain.CompressionGzip, got.Compression)
}

func TestCache_GetMissing(t *testing.T) {
	cache := newTestCache(t)

	_, err := cache.Get("missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCache_Contains(t *testing.T) {
	cache := newTestCache(t)

	ok, err := cache.Contains("abc123")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Put("abc123", &domain.RawResult{Body: []byte("x")}))

	ok, err = cache.Contains("abc123")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCache_PutReplaces(t *testing.T) {
	cache := newTestCache(t)

	require.NoError(t, cache.Put("k", &domain.RawResult{Body: []byte("old")}))
	require.NoError(t, cache.Put("k", &domain.RawResult{Body: []byte("new")}))

	got, err := cache.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got.Body)
}

func TestCache_Delete(t *testing.T) {
	cache := newTestCache(t)
	require.NoError(t, cache.Put("k", &domain.RawResult{Body: []byte("x")}))

	require.NoError(t, cache.Delete("k"))
	require.NoError(t, cache.Delete("k")) // idempotent

	ok, err := cache.Contains("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_Keys(t *testing.T) {
	cache := newTestCache(t)
	require.NoError(t, cache.Put("b", &domain.RawResult{Body: []byte("x")}))
	require.NoError(t, cache.Put("a", &domain.RawResult{Body: []byte("y")}))

	keys, err := cache.Keys()

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestCache_SurvivesReopen(t *testing.T) {
	tmpDir := t.TempDir()
	cache, err := NewCache(tmpDir)
	require.NoError(t, err)
	require.NoError(t, cache.Put("k", &domain.RawResult{Body: []byte("x")}))
	require.NoError(t, cache.Close())

	reopened, err := NewCache(tmpDir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), got.Body)
}
