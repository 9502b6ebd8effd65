package store

import (
	"context"
	"sync"

	"github.com/souhail747/luxe/internal/domain"
)

// CartStore owns the cart of one session. Every method is safe for
// concurrent use and every mutation is atomic.
type CartStore struct {
	mu   sync.RWMutex
	cart domain.Cart
	rev  uint64
	obs  observers[domain.Cart]
}

// NewCartStore starts from initial, typically rehydrated state.
func NewCartStore(initial domain.Cart) *CartStore {
	initial = initial.Clone()
	initial.Normalize()
	return &CartStore{cart: initial}
}

// Subscribe registers fn for every applied mutation.
func (s *CartStore) Subscribe(fn Listener[domain.Cart]) func() {
	return s.obs.subscribe(fn)
}

// mutate applies fn under the write lock and, when fn reports a change,
// notifies listeners after unlocking.
func (s *CartStore) mutate(ctx context.Context, action Action, subject string, fn func(c *domain.Cart) bool) {
	s.mu.Lock()
	if !fn(&s.cart) {
		s.mu.Unlock()
		return
	}
	s.rev++
	change := Change[domain.Cart]{Revision: s.rev, Action: action, Subject: subject, State: s.cart.Clone()}
	s.mu.Unlock()

	mutationsTotal.WithLabelValues(string(action)).Inc()
	s.obs.notify(ctx, change)
}

// AddItem adds one unit of item, merging with the line of the same id,
// size and color.
func (s *CartStore) AddItem(ctx context.Context, item domain.CartItemInput) {
	s.AddItemQuantity(ctx, item, 1)
}

// AddItemQuantity adds n units in a single mutation. n < 1 is a no-op.
func (s *CartStore) AddItemQuantity(ctx context.Context, item domain.CartItemInput, n int) {
	if n < 1 {
		return
	}
	s.mutate(ctx, ActionCartItemAdded, item.ID, func(c *domain.Cart) bool {
		c.Add(item, n)
		return true
	})
}

// RemoveItem removes every line of product id, whatever its size or color.
// Unknown ids are ignored.
func (s *CartStore) RemoveItem(ctx context.Context, id string) {
	s.mutate(ctx, ActionCartItemRemoved, id, func(c *domain.Cart) bool {
		return c.Remove(id)
	})
}

// UpdateQuantity sets the quantity of every line of product id. Values
// below one remove the lines. Unknown ids are ignored.
func (s *CartStore) UpdateQuantity(ctx context.Context, id string, quantity int) {
	action := ActionCartQuantityUpdated
	if quantity <= 0 {
		action = ActionCartItemRemoved
	}
	s.mutate(ctx, action, id, func(c *domain.Cart) bool {
		return c.SetQuantity(id, quantity)
	})
}

// ClearCart empties the cart.
func (s *CartStore) ClearCart(ctx context.Context) {
	s.mutate(ctx, ActionCartCleared, "", func(c *domain.Cart) bool {
		c.Clear()
		return true
	})
}

// Items returns a copy of the lines in insertion order.
func (s *CartStore) Items() []domain.CartItem {
	return s.Snapshot().Items
}

// Snapshot returns a copy of the whole cart.
func (s *CartStore) Snapshot() domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Clone()
}

// TotalItems is the sum of quantities.
func (s *CartStore) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.TotalItems()
}

// TotalPrice is the sum of price times quantity.
func (s *CartStore) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.TotalPrice()
}
