package domain

// CartItemInput is what a shopper submits when adding to the cart. Size and
// Color are empty when the product has no such variant.
type CartItemInput struct {
	ID    string  `json:"id" validate:"required"`
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
	Image string  `json:"image"`
	Size  string  `json:"size,omitempty"`
	Color string  `json:"color,omitempty"`
}

// CartItem is one cart line. Lines are keyed by (ID, Size, Color).
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
	Size     string  `json:"size,omitempty"`
	Color    string  `json:"color,omitempty"`
}

func (c CartItem) sameLine(in CartItemInput) bool {
	return c.ID == in.ID && c.Size == in.Size && c.Color == in.Color
}

// Cart is the full cart state and its persisted snapshot.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Clone returns a deep copy.
func (c Cart) Clone() Cart {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}

// Add puts n units of in into the cart, incrementing an existing line with
// the same (ID, Size, Color) or appending a new one. n < 1 is a no-op.
func (c *Cart) Add(in CartItemInput, n int) {
	if n < 1 {
		return
	}
	for i := range c.Items {
		if c.Items[i].sameLine(in) {
			c.Items[i].Quantity += n
			return
		}
	}
	c.Items = append(c.Items, CartItem{
		ID:       in.ID,
		Name:     in.Name,
		Price:    in.Price,
		Image:    in.Image,
		Quantity: n,
		Size:     in.Size,
		Color:    in.Color,
	})
}

// Remove drops every line with the given product id, whatever its variant.
// It reports whether anything was removed.
func (c *Cart) Remove(id string) bool {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	removed := len(kept) != len(c.Items)
	clear(c.Items[len(kept):])
	c.Items = kept
	return removed
}

// SetQuantity sets the quantity of every line with the given product id.
// Negative quantities clamp to zero and zero-quantity lines are removed.
// It reports whether any line matched.
func (c *Cart) SetQuantity(id string, quantity int) bool {
	quantity = max(0, quantity)
	matched := false
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Quantity = quantity
			matched = true
		}
	}
	if matched && quantity == 0 {
		c.Remove(id)
	}
	return matched
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// TotalItems is the sum of all quantities.
func (c Cart) TotalItems() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// TotalPrice is the sum of price*quantity over all lines, before shipping
// and tax.
func (c Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Normalize drops lines that could not have been produced by the cart
// operations (empty id, quantity below one). Applied to rehydrated state.
func (c *Cart) Normalize() {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ID != "" && item.Quantity >= 1 {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}
