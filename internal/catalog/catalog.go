package catalog

import (
	"context"

	"github.com/souhail747/luxe/internal/domain"
	apperrors "github.com/souhail747/luxe/pkg/errors"
)

// Related and featured strip sizes used by the storefront pages.
const (
	FeaturedLimit = 4
	RelatedLimit  = 4
)

// Data is a full catalog as read from a Source.
type Data struct {
	Products   []domain.Product  `json:"products"`
	Categories []domain.Category `json:"categories"`
}

// Source supplies the catalog once at process start.
type Source interface {
	Load(ctx context.Context) (Data, error)
}

// Catalog is the immutable product and category set of the process. Every
// accessor returns copies.
type Catalog struct {
	products   []domain.Product
	categories []domain.Category
	index      map[string]int
}

// New copies data into a Catalog. Products with a duplicate id keep the
// first occurrence for lookups.
func New(data Data) *Catalog {
	c := &Catalog{
		products:   make([]domain.Product, len(data.Products)),
		categories: append([]domain.Category(nil), data.Categories...),
		index:      make(map[string]int, len(data.Products)),
	}
	for i, p := range data.Products {
		c.products[i] = p.Clone()
		if _, dup := c.index[p.ID]; !dup {
			c.index[p.ID] = i
		}
	}
	return c
}

// Load reads src and builds a Catalog.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	data, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return New(data), nil
}

// Len is the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// Products returns every product in catalog order.
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	for i, p := range c.products {
		out[i] = p.Clone()
	}
	return out
}

// Categories returns every category in catalog order.
func (c *Catalog) Categories() []domain.Category {
	return append(make([]domain.Category, 0, len(c.categories)), c.categories...)
}

// Select runs Select over the whole catalog.
func (c *Catalog) Select(sel domain.Selection) []domain.Product {
	return Select(c.products, sel)
}

// Find returns the product with id.
func (c *Catalog) Find(id string) (domain.Product, error) {
	i, ok := c.index[id]
	if !ok {
		return domain.Product{}, apperrors.NotFound("product", id)
	}
	return c.products[i].Clone(), nil
}

// Featured returns up to limit featured products in catalog order.
func (c *Catalog) Featured(limit int) []domain.Product {
	return c.collect(limit, func(p domain.Product) bool { return p.Featured })
}

// Related returns up to limit other products of the same category as id.
func (c *Catalog) Related(id string, limit int) ([]domain.Product, error) {
	p, err := c.Find(id)
	if err != nil {
		return nil, err
	}
	return c.collect(limit, func(o domain.Product) bool {
		return o.Category == p.Category && o.ID != p.ID
	}), nil
}

func (c *Catalog) collect(limit int, keep func(domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0, max(limit, 0))
	for _, p := range c.products {
		if len(out) >= limit {
			break
		}
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// AddToCartInput builds the cart input for product id with the chosen
// variant. A size (or color) must be chosen when the product offers sizes
// (or colors), and it must be one of the offered values.
func (c *Catalog) AddToCartInput(id, size, color string) (domain.CartItemInput, error) {
	p, err := c.Find(id)
	if err != nil {
		return domain.CartItemInput{}, err
	}

	if len(p.Sizes) > 0 {
		if size == "" {
			return domain.CartItemInput{}, apperrors.InvalidInput("Please select a size")
		}
		if !p.HasSize(size) {
			return domain.CartItemInput{}, apperrors.InvalidInput("Size " + size + " is not available")
		}
	} else {
		size = ""
	}

	if len(p.Colors) > 0 {
		if color == "" {
			return domain.CartItemInput{}, apperrors.InvalidInput("Please select a color")
		}
		if !p.HasColor(color) {
			return domain.CartItemInput{}, apperrors.InvalidInput("Color " + color + " is not available")
		}
	} else {
		color = ""
	}

	return domain.CartItemInput{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Image: p.Image(),
		Size:  size,
		Color: color,
	}, nil
}
