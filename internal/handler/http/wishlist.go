package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/souhail747/luxe/internal/catalog"
	"github.com/souhail747/luxe/internal/domain"
	"github.com/souhail747/luxe/internal/store"
	apperrors "github.com/souhail747/luxe/pkg/errors"
	"github.com/souhail747/luxe/pkg/httputil"
	"github.com/souhail747/luxe/pkg/validator"
)

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	wishlist *store.WishlistStore
	cart     *store.CartStore
	catalog  *catalog.Catalog
	logger   *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(wishlist *store.WishlistStore, cart *store.CartStore, c *catalog.Catalog, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist, cart: cart, catalog: c, logger: logger}
}

// AddWishlistItemRequest is the JSON request body for saving a product.
type AddWishlistItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// WishlistView is the wishlist as the UI renders it.
type WishlistView struct {
	Items []domain.WishlistItem `json:"items"`
	Count int                   `json:"count"`
}

// ToggleResult reports membership after a toggle.
type ToggleResult struct {
	ID         string `json:"id"`
	Wishlisted bool   `json:"wishlisted"`
}

func (h *WishlistHandler) view() WishlistView {
	items := h.wishlist.Items()
	if items == nil {
		items = []domain.WishlistItem{}
	}
	return WishlistView{Items: items, Count: len(items)}
}

// GetWishlist handles GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.view())
}

// AddItem handles POST /api/v1/wishlist/items. Saving a product twice is a no-op.
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddWishlistItemRequest
	if err := decode(w, r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	p, err := h.catalog.Find(req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.wishlist.AddItem(r.Context(), p.WishlistItem())
	httputil.WriteData(w, http.StatusOK, h.view())
}

// RemoveItem handles DELETE /api/v1/wishlist/items/{id}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.wishlist.RemoveItem(r.Context(), chi.URLParam(r, "id"))
	httputil.WriteData(w, http.StatusOK, h.view())
}

// Toggle handles POST /api/v1/wishlist/items/{id}/toggle
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.catalog.Find(id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	saved := h.wishlist.Toggle(r.Context(), p.WishlistItem())
	httputil.WriteData(w, http.StatusOK, ToggleResult{ID: id, Wishlisted: saved})
}

// MoveToCart handles POST /api/v1/wishlist/items/{id}/move-to-cart
func (h *WishlistHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if !h.wishlist.MoveToCart(r.Context(), id, h.cart) {
		httputil.WriteError(w, r, apperrors.NotFound("wishlist item", id), h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, h.view())
}

// ClearWishlist handles DELETE /api/v1/wishlist
func (h *WishlistHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	h.wishlist.ClearWishlist(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
