package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souhail747/luxe/internal/domain"
	"github.com/souhail747/luxe/pkg/pagination"
)

func productIDs(products []domain.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func TestListProducts_DefaultsFeaturedFirst(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodeData[pagination.Result[domain.Product]](t, rec)
	assert.Equal(t, 9, page.TotalCount)
	assert.Equal(t, []string{"1", "2", "3", "6", "4", "5", "7", "8", "9"}, productIDs(page.Data))
}

func TestListProducts_CategoryAndSort(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/products?category=electronics&sort=price-asc", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodeData[pagination.Result[domain.Product]](t, rec)
	assert.Equal(t, []string{"7", "4"}, productIDs(page.Data))
}

func TestListProducts_SearchAndPriceRange(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/products?search=SKINCARE&max_price=500", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodeData[pagination.Result[domain.Product]](t, rec)
	assert.Equal(t, []string{"8"}, productIDs(page.Data))
}

func TestListProducts_MultipleCategories(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/products?category=home&category=beauty,fashion&sort=rating", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodeData[pagination.Result[domain.Product]](t, rec)
	assert.Equal(t, []string{"6", "3", "8", "9", "5"}, productIDs(page.Data))
}

func TestListProducts_Pagination(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/products?page=2&per_page=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodeData[pagination.Result[domain.Product]](t, rec)
	assert.Equal(t, []string{"3", "6"}, productIDs(page.Data))
	assert.Equal(t, 5, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestListProducts_BadPrice(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"not a number", "min_price=cheap", "min_price must be a number"},
		{"nan min", "min_price=NaN", "min_price must be a number"},
		{"infinite max", "max_price=Inf", "max_price must be a number"},
		{"negative infinity", "max_price=-Infinity", "max_price must be a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			rec := env.do(t, http.MethodGet, "/api/v1/products?"+tt.query, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, decodeError(t, rec).Error.Message)
		})
	}
}

func TestFeatured(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/products/featured", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"1", "2", "3", "6"}, productIDs(decodeData[[]domain.Product](t, rec)))
}

func TestCategories(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cats := decodeData[[]domain.Category](t, rec)
	require.Len(t, cats, 6)
	assert.Equal(t, "fashion", cats[0].ID)
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)
	env.wishlist.AddItem(context.Background(), domain.WishlistItem{ID: "3", Name: "Cashmere Blend Overcoat", Price: 895})

	rec := env.do(t, http.MethodGet, "/api/v1/products/3", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	detail := decodeData[ProductDetail](t, rec)
	assert.Equal(t, "3", detail.Product.ID)
	assert.Equal(t, []string{"5"}, productIDs(detail.Related))
	assert.Equal(t, 19, detail.DiscountPercent)
	assert.True(t, detail.Wishlisted)
}

func TestGetProduct_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/products/404", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Error.Code)
}
