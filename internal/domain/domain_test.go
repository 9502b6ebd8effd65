package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tote() CartItemInput {
	return CartItemInput{ID: "1", Name: "Artisan Leather Tote", Price: 295, Image: "tote.jpg"}
}

func TestCart_AddSameLineIncrements(t *testing.T) {
	var c Cart
	c.Add(tote(), 1)
	c.Add(tote(), 1)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, 2, c.TotalItems())
	assert.InDelta(t, 590, c.TotalPrice(), 1e-9)
}

func TestCart_AddDistinctVariants(t *testing.T) {
	var c Cart
	coat := CartItemInput{ID: "3", Name: "Overcoat", Price: 895}
	for _, v := range []struct{ size, color string }{{"M", "Camel"}, {"L", "Camel"}, {"M", "Navy"}, {"", ""}} {
		in := coat
		in.Size, in.Color = v.size, v.color
		c.Add(in, 1)
	}

	assert.Len(t, c.Items, 4)
	assert.Equal(t, 4, c.TotalItems())
}

func TestCart_AddQuantity(t *testing.T) {
	var c Cart
	c.Add(tote(), 3)
	c.Add(tote(), 0)
	c.Add(tote(), -2)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
}

func TestCart_RemoveMatchesIDOnly(t *testing.T) {
	var c Cart
	c.Add(CartItemInput{ID: "3", Size: "M"}, 1)
	c.Add(CartItemInput{ID: "3", Size: "L"}, 1)
	c.Add(tote(), 1)

	assert.True(t, c.Remove("3"))
	require.Len(t, c.Items, 1)
	assert.Equal(t, "1", c.Items[0].ID)

	assert.False(t, c.Remove("3"))
	assert.Len(t, c.Items, 1)
}

func TestCart_SetQuantity(t *testing.T) {
	var c Cart
	c.Add(CartItemInput{ID: "3", Size: "M"}, 1)
	c.Add(CartItemInput{ID: "3", Size: "L"}, 2)

	assert.True(t, c.SetQuantity("3", 5))
	assert.Equal(t, 10, c.TotalItems())

	assert.False(t, c.SetQuantity("missing", 2))
	assert.Equal(t, 10, c.TotalItems())

	assert.True(t, c.SetQuantity("3", -4))
	assert.Empty(t, c.Items)
}

func TestCart_EmptyTotals(t *testing.T) {
	var c Cart
	assert.Equal(t, 0, c.TotalItems())
	assert.Zero(t, c.TotalPrice())
}

func TestCart_CloneIsIndependent(t *testing.T) {
	var c Cart
	c.Add(tote(), 1)
	cp := c.Clone()
	cp.Items[0].Quantity = 9
	assert.Equal(t, 1, c.Items[0].Quantity)
}

func TestCart_Normalize(t *testing.T) {
	c := Cart{Items: []CartItem{{ID: "1", Quantity: 1}, {ID: "", Quantity: 2}, {ID: "2", Quantity: 0}}}
	c.Normalize()
	require.Len(t, c.Items, 1)
	assert.Equal(t, "1", c.Items[0].ID)
}

func TestCart_JSONOmitsEmptyVariant(t *testing.T) {
	var c Cart
	c.Add(tote(), 1)
	raw, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[{"id":"1","name":"Artisan Leather Tote","price":295,"image":"tote.jpg","quantity":1}]}`, string(raw))
}

func TestWishlist_FirstWriteWins(t *testing.T) {
	var w Wishlist
	assert.True(t, w.Add(WishlistItem{ID: "2", Name: "Watch", Price: 485}))
	assert.False(t, w.Add(WishlistItem{ID: "2", Name: "Other", Price: 1}))

	require.Len(t, w.Items, 1)
	assert.Equal(t, "Watch", w.Items[0].Name)
	assert.True(t, w.Contains("2"))

	item, ok := w.Remove("2")
	assert.True(t, ok)
	assert.Equal(t, "Watch", item.Name)
	assert.False(t, w.Contains("2"))

	_, ok = w.Remove("2")
	assert.False(t, ok)
}

func TestWishlist_Normalize(t *testing.T) {
	w := Wishlist{Items: []WishlistItem{{ID: "1", Name: "a"}, {ID: "1", Name: "b"}, {ID: ""}, {ID: "2"}}}
	w.Normalize()
	require.Len(t, w.Items, 2)
	assert.Equal(t, "a", w.Items[0].Name)
	assert.Equal(t, "2", w.Items[1].ID)
}

func TestProduct_DiscountPercent(t *testing.T) {
	orig := 350.0
	p := Product{Price: 295, OriginalPrice: &orig}
	assert.Equal(t, 16, p.DiscountPercent())

	coat := 1100.0
	assert.Equal(t, 19, Product{Price: 895, OriginalPrice: &coat}.DiscountPercent())
	assert.Equal(t, 0, Product{Price: 10}.DiscountPercent())
}

func TestProduct_CloneIsIndependent(t *testing.T) {
	orig := 350.0
	p := Product{ID: "1", Images: []string{"a"}, OriginalPrice: &orig, Colors: []Color{{Name: "Tan"}}}
	cp := p.Clone()
	cp.Images[0] = "b"
	*cp.OriginalPrice = 1
	cp.Colors[0].Name = "x"

	assert.Equal(t, "a", p.Images[0])
	assert.Equal(t, 350.0, *p.OriginalPrice)
	assert.Equal(t, "Tan", p.Colors[0].Name)
}

func TestProduct_Variants(t *testing.T) {
	p := Product{Sizes: []string{"S", "M"}, Colors: []Color{{Name: "Camel", Hex: "#C19A6B"}}, Images: []string{"first", "second"}}
	assert.True(t, p.HasSize("M"))
	assert.False(t, p.HasSize("XL"))
	assert.True(t, p.HasColor("Camel"))
	assert.False(t, p.HasColor("#C19A6B"))
	assert.Equal(t, "first", p.Image())
	assert.Equal(t, "", Product{}.Image())
}

func TestSortKey_Valid(t *testing.T) {
	assert.True(t, SortRating.Valid())
	assert.False(t, SortKey("alphabetical").Valid())
}

func TestUser_UnmarshalID(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"id":42,"name":"Ada","email":"ada@example.com"}`), &u))
	assert.Equal(t, "42", u.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"u-7","email":"x@y.z"}`), &u))
	assert.Equal(t, "u-7", u.ID)
	assert.Equal(t, "", u.Name)

	require.NoError(t, json.Unmarshal([]byte(`{"email":"x@y.z"}`), &u))
	assert.Equal(t, "", u.ID)

	assert.Error(t, json.Unmarshal([]byte(`{"id":{"nested":true}}`), &u))
}

func TestSession_Valid(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := Session{Token: "t", ExpiresAt: now.Add(time.Hour)}
	assert.True(t, s.Valid(now))
	assert.False(t, s.Valid(now.Add(2*time.Hour)))
	assert.False(t, Session{ExpiresAt: now.Add(time.Hour)}.Valid(now))
}
