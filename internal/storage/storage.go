package storage

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/souhail747/luxe/pkg/errors"
)

// Fixed keys of the persisted session blobs.
const (
	CartKey     = "cart-storage"
	WishlistKey = "wishlist-storage"
	ThemeKey    = "theme-storage"
	SessionKey  = "auth-session"
)

// Storage is the durable client-side key/value area for one profile.
// Get returns an error matching apperrors.ErrNotFound when key is absent.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// NotFound is the error backends return for an absent key.
func NotFound(key string) error {
	return apperrors.NotFound("storage key", key)
}

// ValidateKey rejects keys that are empty or could escape a namespace.
func ValidateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\:`) || strings.Contains(key, "..") {
		return fmt.Errorf("invalid storage key %q", key)
	}
	return nil
}
