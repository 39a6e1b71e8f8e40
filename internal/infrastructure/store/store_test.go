package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================
// Memory Store Tests
// ============================================

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()

	value, ok, err := s.Get(context.Background(), "missing")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestMemoryStore_SetThenGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", `[{"id":1,"amount":2}]`))
	require.NoError(t, s.Set(ctx, "k", `[]`))

	value, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, value)
}

// ============================================
// File Store Tests
// ============================================

func TestFileStore_GetMissing(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, ok, err := s.Get(context.Background(), "@cartstore:cart")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_SetThenGet(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "@cartstore:cart", `[{"id":1,"amount":1}]`))

	value, ok, err := s.Get(ctx, "@cartstore:cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1,"amount":1}]`, value)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "key", "value"))

	second, err := NewFileStore(dir)
	require.NoError(t, err)
	value, ok, err := second.Get(ctx, "key")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", value)
}

func TestFileStore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), "a", "1"))
	require.NoError(t, s.Set(context.Background(), "a", "2"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "storage")

	_, err := NewFileStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileStore_KeysDoNotCollide(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "a:b", "first"))
	require.NoError(t, s.Set(ctx, "a/b", "second"))

	v1, _, err := s.Get(ctx, "a:b")
	require.NoError(t, err)
	v2, _, err := s.Get(ctx, "a/b")
	require.NoError(t, err)
	assert.Equal(t, "first", v1)
	assert.Equal(t, "second", v2)
}
