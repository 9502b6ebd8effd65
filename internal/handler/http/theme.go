package http

import (
	"log/slog"
	"net/http"

	"github.com/souhail747/luxe/internal/store"
	"github.com/souhail747/luxe/pkg/httputil"
	"github.com/souhail747/luxe/pkg/validator"
)

// ThemeHandler handles HTTP requests for the theme preference.
type ThemeHandler struct {
	theme  *store.ThemeStore
	logger *slog.Logger
}

// NewThemeHandler creates a new theme HTTP handler.
func NewThemeHandler(theme *store.ThemeStore, logger *slog.Logger) *ThemeHandler {
	return &ThemeHandler{theme: theme, logger: logger}
}

// SetThemeRequest is the JSON request body for PUT /api/v1/theme.
type SetThemeRequest struct {
	IsDark *bool `json:"isDark" validate:"required"`
}

// GetTheme handles GET /api/v1/theme
func (h *ThemeHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, store.Theme{IsDark: h.theme.IsDark()})
}

// SetTheme handles PUT /api/v1/theme
func (h *ThemeHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req SetThemeRequest
	if err := decode(w, r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	h.theme.SetTheme(r.Context(), *req.IsDark)
	httputil.WriteData(w, http.StatusOK, store.Theme{IsDark: *req.IsDark})
}

// Toggle handles POST /api/v1/theme/toggle
func (h *ThemeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	dark := h.theme.ToggleTheme(r.Context())
	httputil.WriteData(w, http.StatusOK, store.Theme{IsDark: dark})
}
