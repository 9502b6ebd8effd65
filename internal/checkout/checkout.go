package checkout

import (
	"github.com/shopspring/decimal"
)

// Business rules of the cart page.
var (
	FreeShippingOver = decimal.NewFromInt(100)
	FlatShipping     = decimal.RequireFromString("9.99")
	TaxRate          = decimal.RequireFromString("0.08")
)

var oneCent = decimal.New(1, -2)

// Totals are the derived checkout amounts. They are exact; round only for
// display.
type Totals struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Compute applies the rules to a cart subtotal: free shipping strictly
// above FreeShippingOver, flat shipping otherwise, tax on the subtotal only.
func Compute(subtotal decimal.Decimal) Totals {
	shipping := FlatShipping
	if subtotal.GreaterThan(FreeShippingOver) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(TaxRate)

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}

// Cart is the part of the cart store checkout reads.
type Cart interface {
	TotalPrice() float64
	TotalItems() int
}

// ForCart computes totals for the current contents of cart.
func ForCart(cart Cart) Totals {
	return Compute(decimal.NewFromFloat(cart.TotalPrice()))
}

// FreeShipping reports whether shipping was waived.
func (t Totals) FreeShipping() bool {
	return t.Shipping.IsZero()
}

// Summary is the display form, rounded to cents.
type Summary struct {
	ItemCount    int     `json:"item_count"`
	Subtotal     float64 `json:"subtotal"`
	Shipping     float64 `json:"shipping"`
	Tax          float64 `json:"tax"`
	Total        float64 `json:"total"`
	FreeShipping bool    `json:"free_shipping"`
	// AmountToFreeShipping is how much more must be spent before shipping
	// is waived. It is at least one cent while shipping is charged.
	AmountToFreeShipping float64 `json:"amount_to_free_shipping"`
}

// Summarize rounds t for display.
func (t Totals) Summarize(itemCount int) Summary {
	toFree := decimal.Zero
	if !t.FreeShipping() {
		toFree = decimal.Max(FreeShippingOver.Sub(t.Subtotal), oneCent)
	}
	return Summary{
		ItemCount:            itemCount,
		Subtotal:             cents(t.Subtotal),
		Shipping:             cents(t.Shipping),
		Tax:                  cents(t.Tax),
		Total:                cents(t.Total),
		FreeShipping:         t.FreeShipping(),
		AmountToFreeShipping: cents(toFree),
	}
}

// SummaryForCart is ForCart followed by Summarize.
func SummaryForCart(cart Cart) Summary {
	return ForCart(cart).Summarize(cart.TotalItems())
}

func cents(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
