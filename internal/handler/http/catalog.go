package http

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/souhail747/luxe/internal/catalog"
	"github.com/souhail747/luxe/internal/domain"
	"github.com/souhail747/luxe/internal/store"
	apperrors "github.com/souhail747/luxe/pkg/errors"
	"github.com/souhail747/luxe/pkg/httputil"
	"github.com/souhail747/luxe/pkg/pagination"
)

// CatalogHandler serves the read-only product catalog.
type CatalogHandler struct {
	catalog  *catalog.Catalog
	wishlist *store.WishlistStore
	logger   *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(c *catalog.Catalog, wishlist *store.WishlistStore, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: c, wishlist: wishlist, logger: logger}
}

// ProductDetail is the body of GET /api/v1/products/{id}.
type ProductDetail struct {
	Product         domain.Product   `json:"product"`
	Related         []domain.Product `json:"related"`
	DiscountPercent int              `json:"discount_percent"`
	Wishlisted      bool             `json:"wishlisted"`
}

// ListProducts handles GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	sel, err := selectionFromQuery(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	products := h.catalog.Select(sel)
	httputil.WriteData(w, http.StatusOK, pagination.Slice(products, pagination.FromRequest(r)))
}

// Featured handles GET /api/v1/products/featured
func (h *CatalogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.catalog.Featured(catalog.FeaturedLimit))
}

// Categories handles GET /api/v1/categories
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.catalog.Categories())
}

// GetProduct handles GET /api/v1/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.catalog.Find(id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	related, err := h.catalog.Related(id, catalog.RelatedLimit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, ProductDetail{
		Product:         p,
		Related:         related,
		DiscountPercent: p.DiscountPercent(),
		Wishlisted:      h.wishlist.IsInWishlist(id),
	})
}

// selectionFromQuery starts from the shop defaults and applies search,
// category (repeatable or comma separated), min_price, max_price and sort.
func selectionFromQuery(r *http.Request) (domain.Selection, error) {
	sel := domain.DefaultSelection()
	q := r.URL.Query()

	sel.Search = q.Get("search")
	for _, v := range q["category"] {
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				sel.Categories = append(sel.Categories, c)
			}
		}
	}

	if v := q.Get("min_price"); v != "" {
		f, err := parsePrice(v)
		if err != nil {
			return sel, apperrors.InvalidInput("min_price must be a number")
		}
		sel.MinPrice = f
	}
	if v := q.Get("max_price"); v != "" {
		f, err := parsePrice(v)
		if err != nil {
			return sel, apperrors.InvalidInput("max_price must be a number")
		}
		sel.MaxPrice = f
	}

	if v := q.Get("sort"); v != "" {
		sel.SortBy = domain.SortKey(v)
	}
	return sel, nil
}

// parsePrice rejects NaN and infinities, which would disable the bound.
func parsePrice(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("price %q is not finite", v)
	}
	return f, nil
}
