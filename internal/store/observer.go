package store

import (
	"context"
	"sync"
)

// Action names a store mutation. The values double as analytics event types.
type Action string

const (
	ActionCartItemAdded       Action = "cart.item_added"
	ActionCartItemRemoved     Action = "cart.item_removed"
	ActionCartQuantityUpdated Action = "cart.quantity_updated"
	ActionCartCleared         Action = "cart.cleared"

	ActionWishlistItemAdded   Action = "wishlist.item_added"
	ActionWishlistItemRemoved Action = "wishlist.item_removed"
	ActionWishlistCleared     Action = "wishlist.cleared"

	ActionThemeChanged Action = "theme.changed"
)

// Change describes one applied mutation. State is a private copy of the
// store's state right after the mutation; Revision increases by one per
// mutation so listeners can discard stale deliveries.
type Change[T any] struct {
	Revision uint64
	Action   Action
	Subject  string
	State    T
}

// Listener is called after the store lock is released.
type Listener[T any] func(ctx context.Context, c Change[T])

// Observable is implemented by every store.
type Observable[T any] interface {
	Subscribe(fn Listener[T]) (unsubscribe func())
}

type subscription[T any] struct {
	id int
	fn Listener[T]
}

// observers is an ordered listener list safe for concurrent use.
type observers[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription[T]
}

func (o *observers[T]) subscribe(fn Listener[T]) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	id := o.nextID
	o.nextID++
	o.subs = append(o.subs, subscription[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			for i, s := range o.subs {
				if s.id == id {
					o.subs = append(o.subs[:i:i], o.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (o *observers[T]) notify(ctx context.Context, c Change[T]) {
	o.mu.Lock()
	subs := append([]subscription[T](nil), o.subs...)
	o.mu.Unlock()

	for _, s := range subs {
		s.fn(ctx, c)
	}
}
