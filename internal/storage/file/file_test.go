package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souhail747/luxe/internal/storage"
	apperrors "github.com/souhail747/luxe/pkg/errors"
)

var _ storage.Storage = (*Storage)(nil)

func TestStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "profile")
	s, err := New(dir)
	require.NoError(t, err)

	_, err = s.Get(ctx, storage.WishlistKey)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, s.Set(ctx, storage.WishlistKey, []byte(`{"items":[{"id":"2"}]}`)))
	require.NoError(t, s.Set(ctx, storage.WishlistKey, []byte(`{"items":[]}`)))

	got, err := s.Get(ctx, storage.WishlistKey)
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "wishlist-storage.json", entries[0].Name())

	require.NoError(t, s.Remove(ctx, storage.WishlistKey))
	require.NoError(t, s.Remove(ctx, storage.WishlistKey))
	_, err = s.Get(ctx, storage.WishlistKey)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStorage_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, storage.ThemeKey, []byte(`{"isDark":true}`)))

	reopened, err := New(dir)
	require.NoError(t, err)
	got, err := reopened.Get(ctx, storage.ThemeKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"isDark":true}`, string(got))
}

func TestStorage_InvalidKeys(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../x", "a/b", `a\b`} {
		assert.Error(t, s.Set(ctx, key, nil), key)
		_, err := s.Get(ctx, key)
		assert.Error(t, err, key)
	}
}

func TestStorage_Ping(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	assert.NoError(t, s.Ping(context.Background()))

	require.NoError(t, os.RemoveAll(dir))
	assert.Error(t, s.Ping(context.Background()))
}
