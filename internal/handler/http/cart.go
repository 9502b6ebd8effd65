package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/souhail747/luxe/internal/catalog"
	"github.com/souhail747/luxe/internal/checkout"
	"github.com/souhail747/luxe/internal/domain"
	"github.com/souhail747/luxe/internal/store"
	"github.com/souhail747/luxe/pkg/httputil"
	"github.com/souhail747/luxe/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	cart    *store.CartStore
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(cart *store.CartStore, c *catalog.Catalog, logger *slog.Logger) *CartHandler {
	return &CartHandler{cart: cart, catalog: c, logger: logger}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity" validate:"omitempty,gte=1,lte=99"`
}

// UpdateQuantityRequest is the JSON request body for setting a quantity.
// Zero or less removes the product's lines.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// CartView is the cart as the UI renders it.
type CartView struct {
	Items      []domain.CartItem `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice float64           `json:"total_price"`
}

func (h *CartHandler) view() CartView {
	c := h.cart.Snapshot()
	if c.Items == nil {
		c.Items = []domain.CartItem{}
	}
	return CartView{Items: c.Items, TotalItems: c.TotalItems(), TotalPrice: c.TotalPrice()}
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.view())
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := decode(w, r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	input, err := h.catalog.AddToCartInput(req.ProductID, req.Size, req.Color)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.cart.AddItemQuantity(r.Context(), input, req.Quantity)
	httputil.WriteData(w, http.StatusOK, h.view())
}

// UpdateQuantity handles PUT /api/v1/cart/items/{id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := decode(w, r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	h.cart.UpdateQuantity(r.Context(), chi.URLParam(r, "id"), *req.Quantity)
	httputil.WriteData(w, http.StatusOK, h.view())
}

// RemoveItem handles DELETE /api/v1/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.cart.RemoveItem(r.Context(), chi.URLParam(r, "id"))
	httputil.WriteData(w, http.StatusOK, h.view())
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.ClearCart(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Summary handles GET /api/v1/cart/summary
func (h *CartHandler) Summary(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, checkout.SummaryForCart(h.cart.Snapshot()))
}
