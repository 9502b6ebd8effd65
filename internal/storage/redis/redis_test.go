package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souhail747/luxe/internal/storage"
	apperrors "github.com/souhail747/luxe/pkg/errors"
)

var _ storage.Storage = (*Storage)(nil)

func setupTestRedis(t *testing.T, ttl time.Duration) (*Storage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client, "default", ttl), mr
}

func TestStorage_SetPrefixesKey(t *testing.T) {
	s, mr := setupTestRedis(t, 0)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, storage.CartKey, []byte(`{"items":[]}`)))

	raw, err := mr.Get("default:cart-storage")
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, raw)
	assert.Zero(t, mr.TTL("default:cart-storage"))

	got, err := s.Get(ctx, storage.CartKey)
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, string(got))
}

func TestStorage_TTLRefreshedOnWrite(t *testing.T) {
	s, mr := setupTestRedis(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, storage.WishlistKey, []byte(`{}`)))
	assert.Equal(t, time.Hour, mr.TTL("default:wishlist-storage"))

	mr.FastForward(2 * time.Hour)
	_, err := s.Get(ctx, storage.WishlistKey)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStorage_Remove(t *testing.T) {
	s, mr := setupTestRedis(t, 0)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, storage.ThemeKey, []byte(`{"isDark":false}`)))
	require.NoError(t, s.Remove(ctx, storage.ThemeKey))
	assert.False(t, mr.Exists("default:theme-storage"))

	_, err := s.Get(ctx, storage.ThemeKey)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStorage_ProfilesAreIsolated(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	ctx := context.Background()

	a := New(client, "alice", 0)
	b := New(client, "bob", 0)
	require.NoError(t, a.Set(ctx, storage.CartKey, []byte("a")))

	_, err := b.Get(ctx, storage.CartKey)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStorage_ConnectionError(t *testing.T) {
	s, mr := setupTestRedis(t, 0)
	mr.Close()

	_, err := s.Get(context.Background(), storage.CartKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	assert.Error(t, s.Ping(context.Background()))
}

func TestStorage_InvalidKey(t *testing.T) {
	s, _ := setupTestRedis(t, 0)
	assert.Error(t, s.Set(context.Background(), "a:b", nil))
}
