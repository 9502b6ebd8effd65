package domain

import "math"

// Color is a named swatch.
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Product is a read-only catalog entry.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Images        []string `json:"images"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"reviewCount"`
	InStock       bool     `json:"inStock"`
	StockCount    int      `json:"stockCount"`
	SKU           string   `json:"sku"`
	Sizes         []string `json:"sizes,omitempty"`
	Colors        []Color  `json:"colors,omitempty"`
	Featured      bool     `json:"featured,omitempty"`
	IsNew         bool     `json:"isNew,omitempty"`
	IsBestSeller  bool     `json:"isBestSeller,omitempty"`
}

// Clone returns a copy that shares no slices or pointers with p.
func (p Product) Clone() Product {
	out := p
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		out.OriginalPrice = &v
	}
	out.Images = append([]string(nil), p.Images...)
	out.Tags = append([]string(nil), p.Tags...)
	out.Sizes = append([]string(nil), p.Sizes...)
	out.Colors = append([]Color(nil), p.Colors...)
	return out
}

// DiscountPercent is the rounded markdown from OriginalPrice, or 0.
func (p Product) DiscountPercent() int {
	if p.OriginalPrice == nil || *p.OriginalPrice <= 0 {
		return 0
	}
	return int(math.Round((*p.OriginalPrice - p.Price) / *p.OriginalPrice * 100))
}

// Image returns the first image or "".
func (p Product) Image() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// HasSize reports whether size is one of the offered sizes.
func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// HasColor reports whether color names one of the offered swatches.
func (p Product) HasColor(color string) bool {
	for _, c := range p.Colors {
		if c.Name == color {
			return true
		}
	}
	return false
}

// WishlistItem projects p onto a wishlist entry.
func (p Product) WishlistItem() WishlistItem {
	return WishlistItem{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.Image()}
}

// Category groups products for browsing.
type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Image        string `json:"image"`
	ProductCount int    `json:"productCount"`
}
