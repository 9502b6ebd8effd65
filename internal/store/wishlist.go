package store

import (
	"context"
	"sync"

	"github.com/souhail747/luxe/internal/domain"
)

// WishlistStore owns the wishlist of one session.
type WishlistStore struct {
	mu       sync.RWMutex
	wishlist domain.Wishlist
	rev      uint64
	obs      observers[domain.Wishlist]
}

// NewWishlistStore starts from initial, typically rehydrated state.
func NewWishlistStore(initial domain.Wishlist) *WishlistStore {
	initial = initial.Clone()
	initial.Normalize()
	return &WishlistStore{wishlist: initial}
}

// Subscribe registers fn for every applied mutation.
func (s *WishlistStore) Subscribe(fn Listener[domain.Wishlist]) func() {
	return s.obs.subscribe(fn)
}

// mutate applies fn under the write lock. fn returns the action it
// performed, or "" when nothing changed.
func (s *WishlistStore) mutate(ctx context.Context, subject string, fn func(w *domain.Wishlist) Action) Action {
	s.mu.Lock()
	action := fn(&s.wishlist)
	if action == "" {
		s.mu.Unlock()
		return ""
	}
	s.rev++
	change := Change[domain.Wishlist]{Revision: s.rev, Action: action, Subject: subject, State: s.wishlist.Clone()}
	s.mu.Unlock()

	mutationsTotal.WithLabelValues(string(action)).Inc()
	s.obs.notify(ctx, change)
	return action
}

// AddItem saves item unless its id is already present.
func (s *WishlistStore) AddItem(ctx context.Context, item domain.WishlistItem) {
	s.mutate(ctx, item.ID, func(w *domain.Wishlist) Action {
		if !w.Add(item) {
			return ""
		}
		return ActionWishlistItemAdded
	})
}

// RemoveItem drops the entry for id. Unknown ids are ignored.
func (s *WishlistStore) RemoveItem(ctx context.Context, id string) {
	s.mutate(ctx, id, func(w *domain.Wishlist) Action {
		if _, ok := w.Remove(id); !ok {
			return ""
		}
		return ActionWishlistItemRemoved
	})
}

// Toggle removes item when saved and saves it otherwise. It returns the
// resulting membership.
func (s *WishlistStore) Toggle(ctx context.Context, item domain.WishlistItem) bool {
	action := s.mutate(ctx, item.ID, func(w *domain.Wishlist) Action {
		if _, ok := w.Remove(item.ID); ok {
			return ActionWishlistItemRemoved
		}
		w.Add(item)
		return ActionWishlistItemAdded
	})
	return action == ActionWishlistItemAdded
}

// MoveToCart adds the saved entry for id to cart as a variant-less line and
// removes it from the wishlist. It reports false when id is not saved.
func (s *WishlistStore) MoveToCart(ctx context.Context, id string, cart *CartStore) bool {
	var moved domain.WishlistItem
	action := s.mutate(ctx, id, func(w *domain.Wishlist) Action {
		item, ok := w.Remove(id)
		if !ok {
			return ""
		}
		moved = item
		return ActionWishlistItemRemoved
	})
	if action == "" {
		return false
	}
	cart.AddItem(ctx, moved.ToCartInput())
	return true
}

// IsInWishlist reports whether id is saved.
func (s *WishlistStore) IsInWishlist(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wishlist.Contains(id)
}

// ClearWishlist empties the wishlist.
func (s *WishlistStore) ClearWishlist(ctx context.Context) {
	s.mutate(ctx, "", func(w *domain.Wishlist) Action {
		w.Clear()
		return ActionWishlistCleared
	})
}

// Items returns a copy of the entries in insertion order.
func (s *WishlistStore) Items() []domain.WishlistItem {
	return s.Snapshot().Items
}

// Snapshot returns a copy of the whole wishlist.
func (s *WishlistStore) Snapshot() domain.Wishlist {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wishlist.Clone()
}

// Len is the number of saved entries.
func (s *WishlistStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.wishlist.Items)
}
