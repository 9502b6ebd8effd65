package domain

// WishlistItem is a saved product. At most one entry per ID.
type WishlistItem struct {
	ID    string  `json:"id" validate:"required"`
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
	Image string  `json:"image"`
}

// Wishlist is the full wishlist state and its persisted snapshot.
type Wishlist struct {
	Items []WishlistItem `json:"items"`
}

// Clone returns a deep copy.
func (w Wishlist) Clone() Wishlist {
	items := make([]WishlistItem, len(w.Items))
	copy(items, w.Items)
	return Wishlist{Items: items}
}

// Index returns the position of id or -1.
func (w Wishlist) Index(id string) int {
	for i, item := range w.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports membership.
func (w Wishlist) Contains(id string) bool {
	return w.Index(id) >= 0
}

// Add appends item unless its id is already present; the first write wins.
func (w *Wishlist) Add(item WishlistItem) bool {
	if w.Contains(item.ID) {
		return false
	}
	w.Items = append(w.Items, item)
	return true
}

// Remove deletes the entry for id and returns it.
func (w *Wishlist) Remove(id string) (WishlistItem, bool) {
	i := w.Index(id)
	if i < 0 {
		return WishlistItem{}, false
	}
	item := w.Items[i]
	w.Items = append(w.Items[:i], w.Items[i+1:]...)
	return item, true
}

// Clear empties the wishlist.
func (w *Wishlist) Clear() {
	w.Items = nil
}

// Normalize drops entries without an id and later duplicates.
func (w *Wishlist) Normalize() {
	seen := make(map[string]struct{}, len(w.Items))
	kept := w.Items[:0]
	for _, item := range w.Items {
		if item.ID == "" {
			continue
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		kept = append(kept, item)
	}
	w.Items = kept
}

// ToCartInput converts a saved entry to a variant-less cart input.
func (item WishlistItem) ToCartInput() CartItemInput {
	return CartItemInput{ID: item.ID, Name: item.Name, Price: item.Price, Image: item.Image}
}
