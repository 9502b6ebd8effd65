package domain

// SortKey orders a product listing.
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortRating    SortKey = "rating"
)

// Valid reports whether k is a known key. Unknown keys sort as featured.
func (k SortKey) Valid() bool {
	switch k {
	case SortFeatured, SortNewest, SortPriceAsc, SortPriceDesc, SortRating:
		return true
	}
	return false
}

// Default price bounds of the shop filter.
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 1000
)

// Selection is the shopper's current filter and sort choice.
type Selection struct {
	Search     string   `json:"search"`
	Categories []string `json:"categories"`
	MinPrice   float64  `json:"min_price"`
	MaxPrice   float64  `json:"max_price"`
	SortBy     SortKey  `json:"sort"`
}

// DefaultSelection matches the shop page before any interaction.
func DefaultSelection() Selection {
	return Selection{
		MinPrice: DefaultMinPrice,
		MaxPrice: DefaultMaxPrice,
		SortBy:   SortFeatured,
	}
}
