package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo provides catalog reads backed by Postgres.
type Repo struct {
	Pool *pgxpool.Pool
}

// ErrNoRows is re-exported so callers need not import pgx directly.
var ErrNoRows = pgx.ErrNoRows

// GetProductByID loads a product row.
func (r *Repo) GetProductByID(ctx context.Context, id int64) (Product, error) {
	const q = `
		SELECT id, name, price, regular_price, type, in_stock, purchasable
		FROM products
		WHERE id = $1`
	var p Product
	err := r.Pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Name, &p.Price, &p.RegularPrice, &p.Type, &p.InStock, &p.Purchasable)
	if err != nil {
		return Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

// ListImagesByProduct returns image URLs ordered with the featured image first.
func (r *Repo) ListImagesByProduct(ctx context.Context, productID int64) ([]string, error) {
	const q = `
		SELECT url
		FROM product_images
		WHERE product_id = $1
		ORDER BY featured DESC, position ASC`
	rows, err := r.Pool.Query(ctx, q, productID)
	if err != nil {
		return nil, fmt.Errorf("list images for product %d: %w", productID, err)
	}
	defer rows.Close()
	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}

// ListVariationsByProduct returns every variation row of a product, with its
// attribute bindings decoded from the jsonb column.
func (r *Repo) ListVariationsByProduct(ctx context.Context, productID int64) ([]VariationRecord, error) {
	const q = `
		SELECT id, product_id, price, in_stock, purchasable, attributes
		FROM product_variations
		WHERE product_id = $1
		ORDER BY id`
	rows, err := r.Pool.Query(ctx, q, productID)
	if err != nil {
		return nil, fmt.Errorf("list variations for product %d: %w", productID, err)
	}
	defer rows.Close()
	var out []VariationRecord
	for rows.Next() {
		rec, err := scanVariation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GetVariationByID loads a single variation row.
func (r *Repo) GetVariationByID(ctx context.Context, id int64) (VariationRecord, error) {
	const q = `
		SELECT id, product_id, price, in_stock, purchasable, attributes
		FROM product_variations
		WHERE id = $1`
	rec, err := scanVariation(r.Pool.QueryRow(ctx, q, id))
	if err != nil {
		return VariationRecord{}, fmt.Errorf("get variation %d: %w", id, err)
	}
	return rec, nil
}

// ListAttributesByProduct returns the declared attributes of a product.
func (r *Repo) ListAttributesByProduct(ctx context.Context, productID int64) ([]AttributeRecord, error) {
	const q = `
		SELECT slug, label, options, used_for_variation
		FROM product_attributes
		WHERE product_id = $1
		ORDER BY position`
	rows, err := r.Pool.Query(ctx, q, productID)
	if err != nil {
		return nil, fmt.Errorf("list attributes for product %d: %w", productID, err)
	}
	defer rows.Close()
	var out []AttributeRecord
	for rows.Next() {
		var rec AttributeRecord
		if err := rows.Scan(&rec.Slug, &rec.Label, &rec.Options, &rec.UsedForVariation); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVariation(row rowScanner) (VariationRecord, error) {
	var (
		rec   VariationRecord
		attrs []byte
	)
	if err := row.Scan(&rec.ID, &rec.ProductID, &rec.Price, &rec.InStock, &rec.Purchasable, &attrs); err != nil {
		return VariationRecord{}, err
	}
	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &rec.Attributes); err != nil {
			return VariationRecord{}, fmt.Errorf("decode variation %d attributes: %w", rec.ID, err)
		}
	}
	return rec, nil
}
