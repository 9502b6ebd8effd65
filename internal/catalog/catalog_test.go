package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souhail747/luxe/internal/domain"
	apperrors "github.com/souhail747/luxe/pkg/errors"
)

func staticCatalogT(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load(context.Background(), StaticSource{})
	require.NoError(t, err)
	return c
}

func TestStaticSource_Load(t *testing.T) {
	c := staticCatalogT(t)
	assert.Equal(t, 9, c.Len())
	assert.Len(t, c.Categories(), 6)

	for _, p := range c.Products() {
		assert.NotEmpty(t, p.Images, p.ID)
		assert.NotEmpty(t, p.SKU, p.ID)
	}
}

func TestCatalog_Find(t *testing.T) {
	c := staticCatalogT(t)

	p, err := c.Find("3")
	require.NoError(t, err)
	assert.Equal(t, "Cashmere Blend Overcoat", p.Name)
	assert.Equal(t, 19, p.DiscountPercent())

	_, err = c.Find("404")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCatalog_FindReturnsCopy(t *testing.T) {
	c := staticCatalogT(t)
	p, err := c.Find("1")
	require.NoError(t, err)
	p.Colors[0].Name = "changed"

	again, err := c.Find("1")
	require.NoError(t, err)
	assert.Equal(t, "Cognac", again.Colors[0].Name)
}

func TestCatalog_Featured(t *testing.T) {
	c := staticCatalogT(t)
	assert.Equal(t, []string{"1", "2", "3", "6"}, ids(c.Featured(FeaturedLimit)))
	assert.Equal(t, []string{"1", "2"}, ids(c.Featured(2)))
	assert.Empty(t, c.Featured(0))
	assert.Empty(t, c.Featured(-1))
}

func TestCatalog_Related(t *testing.T) {
	c := staticCatalogT(t)

	related, err := c.Related("1", RelatedLimit)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(related))

	related, err = c.Related("8", RelatedLimit)
	require.NoError(t, err)
	assert.Equal(t, []string{"9"}, ids(related))

	related, err = c.Related("6", RelatedLimit)
	require.NoError(t, err)
	assert.Empty(t, related)

	_, err = c.Related("404", RelatedLimit)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCatalog_NewKeepsFirstDuplicate(t *testing.T) {
	c := New(Data{Products: []domain.Product{{ID: "x", Name: "first"}, {ID: "x", Name: "second"}}})
	p, err := c.Find("x")
	require.NoError(t, err)
	assert.Equal(t, "first", p.Name)
	assert.Equal(t, 2, c.Len())
}

func TestCatalog_AddToCartInput(t *testing.T) {
	c := staticCatalogT(t)

	tests := []struct {
		name        string
		id          string
		size, color string
		wantErr     string
		want        domain.CartItemInput
	}{
		{name: "size required", id: "3", color: "Camel", wantErr: "Please select a size"},
		{name: "color required", id: "3", size: "M", wantErr: "Please select a color"},
		{name: "unknown size", id: "3", size: "XXL", color: "Camel", wantErr: "Size XXL is not available"},
		{name: "unknown color", id: "1", color: "Purple", wantErr: "Color Purple is not available"},
		{
			name: "full variant", id: "3", size: "M", color: "Camel",
			want: domain.CartItemInput{
				ID: "3", Name: "Cashmere Blend Overcoat", Price: 895,
				Image: "https://images.unsplash.com/photo-1539533018447-63fcce2678e3?w=800",
				Size:  "M", Color: "Camel",
			},
		},
		{
			name: "no variants offered drops choices", id: "6", size: "M", color: "Red",
			want: domain.CartItemInput{
				ID: "6", Name: "Artisan Scented Candle Set", Price: 89,
				Image: "https://images.unsplash.com/photo-1602874801007-bd458bb1b8b6?w=800",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.AddToCartInput(tt.id, tt.size, tt.color)
			if tt.wantErr != "" {
				var appErr *apperrors.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantErr, appErr.Message)
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := c.AddToCartInput("404", "", "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCatalog_SelectUsesWholeCatalog(t *testing.T) {
	c := staticCatalogT(t)
	sel := domain.DefaultSelection()
	sel.Categories = []string{"electronics"}
	assert.Equal(t, []string{"4", "7"}, ids(c.Select(sel)))
}
