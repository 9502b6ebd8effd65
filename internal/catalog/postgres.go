package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/souhail747/luxe/internal/domain"
	"github.com/souhail747/luxe/pkg/database"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations returns the schema migrations for PostgresSource.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// PostgresSource reads the catalog from the products and categories tables.
type PostgresSource struct {
	db database.DBTX
}

// NewPostgresSource creates a source over db.
func NewPostgresSource(db database.DBTX) *PostgresSource {
	return &PostgresSource{db: db}
}

const selectCategories = `
	SELECT id, name, image, product_count
	FROM categories
	ORDER BY position, id`

const selectProducts = `
	SELECT id, name, description, price, original_price, images, category,
	       tags, rating, review_count, in_stock, stock_count, sku, sizes,
	       colors, featured, is_new, is_best_seller
	FROM products
	ORDER BY position, id`

// Load reads every category and product in position order.
func (s *PostgresSource) Load(ctx context.Context) (Data, error) {
	categories, err := s.loadCategories(ctx)
	if err != nil {
		return Data{}, err
	}
	products, err := s.loadProducts(ctx)
	if err != nil {
		return Data{}, err
	}
	return Data{Products: products, Categories: categories}, nil
}

func (s *PostgresSource) loadCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.Query(ctx, selectCategories)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Image, &c.ProductCount); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}
	return categories, nil
}

func (s *PostgresSource) loadProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.Query(ctx, selectProducts)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var (
			p                                       domain.Product
			imagesJSON, tagsJSON, sizesJSON, colors []byte
		)
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.OriginalPrice,
			&imagesJSON,
			&p.Category,
			&tagsJSON,
			&p.Rating,
			&p.ReviewCount,
			&p.InStock,
			&p.StockCount,
			&p.SKU,
			&sizesJSON,
			&colors,
			&p.Featured,
			&p.IsNew,
			&p.IsBestSeller,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}

		for _, col := range []struct {
			name string
			raw  []byte
			dst  any
		}{
			{"images", imagesJSON, &p.Images},
			{"tags", tagsJSON, &p.Tags},
			{"sizes", sizesJSON, &p.Sizes},
			{"colors", colors, &p.Colors},
		} {
			if col.raw == nil {
				continue
			}
			if err := json.Unmarshal(col.raw, col.dst); err != nil {
				return nil, fmt.Errorf("unmarshal %s of product %s: %w", col.name, p.ID, err)
			}
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	return products, nil
}

const upsertCategory = `
	INSERT INTO categories (id, position, name, image, product_count)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO NOTHING`

const upsertProduct = `
	INSERT INTO products (
		id, position, name, description, price, original_price, images,
		category, tags, rating, review_count, in_stock, stock_count, sku,
		sizes, colors, featured, is_new, is_best_seller
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	ON CONFLICT (id) DO NOTHING`

// Seed inserts data in one transaction, leaving rows that already exist
// untouched.
func (s *PostgresSource) Seed(ctx context.Context, data Data) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i, c := range data.Categories {
		if _, err := tx.Exec(ctx, upsertCategory, c.ID, i, c.Name, c.Image, c.ProductCount); err != nil {
			return fmt.Errorf("seed category %s: %w", c.ID, err)
		}
	}

	for i, p := range data.Products {
		images, tags, sizes, colors, err := productJSON(p)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, upsertProduct,
			p.ID, i, p.Name, p.Description, p.Price, p.OriginalPrice, images,
			p.Category, tags, p.Rating, p.ReviewCount, p.InStock, p.StockCount, p.SKU,
			sizes, colors, p.Featured, p.IsNew, p.IsBestSeller,
		); err != nil {
			return fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

// productJSON encodes the JSONB columns. Absent sizes and colors stay NULL.
func productJSON(p domain.Product) (images, tags, sizes, colors []byte, err error) {
	if images, err = json.Marshal(nonNil(p.Images)); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal images: %w", err)
	}
	if tags, err = json.Marshal(nonNil(p.Tags)); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal tags: %w", err)
	}
	if len(p.Sizes) > 0 {
		if sizes, err = json.Marshal(p.Sizes); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("marshal sizes: %w", err)
		}
	}
	if len(p.Colors) > 0 {
		if colors, err = json.Marshal(p.Colors); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("marshal colors: %w", err)
		}
	}
	return images, tags, sizes, colors, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
