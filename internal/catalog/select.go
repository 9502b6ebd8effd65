package catalog

import (
	"slices"
	"strings"

	"github.com/souhail747/luxe/internal/domain"
)

// Select filters and orders products for a listing. products is not
// modified and the result shares no memory with it. The result is never
// nil.
//
// Filters apply in order: case-insensitive substring search over name and
// description, category membership (no categories means all), then the
// inclusive price range. Featured and newest are stable partitions; the
// price and rating orders are stable sorts. Unknown sort keys act as
// featured.
func Select(products []domain.Product, sel domain.Selection) []domain.Product {
	search := strings.ToLower(sel.Search)

	var categories map[string]struct{}
	if len(sel.Categories) > 0 {
		categories = make(map[string]struct{}, len(sel.Categories))
		for _, c := range sel.Categories {
			categories[c] = struct{}{}
		}
	}

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if categories != nil {
			if _, ok := categories[p.Category]; !ok {
				continue
			}
		}
		if p.Price < sel.MinPrice || p.Price > sel.MaxPrice {
			continue
		}
		out = append(out, p.Clone())
	}

	switch sel.SortBy {
	case domain.SortNewest:
		out = partition(out, func(p domain.Product) bool { return p.IsNew })
	case domain.SortPriceAsc:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return compareFloat(a.Price, b.Price) })
	case domain.SortPriceDesc:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return compareFloat(b.Price, a.Price) })
	case domain.SortRating:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return compareFloat(b.Rating, a.Rating) })
	default:
		out = partition(out, func(p domain.Product) bool { return p.Featured })
	}
	return out
}

// partition moves products matching first ahead of the rest, keeping the
// relative order inside each group.
func partition(products []domain.Product, first func(domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	var rest []domain.Product
	for _, p := range products {
		if first(p) {
			out = append(out, p)
		} else {
			rest = append(rest, p)
		}
	}
	return append(out, rest...)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
