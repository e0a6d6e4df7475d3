package repository

import (
	"context"
	"database/sql"

	"github.com/mkarhu/sauna-booking/internal/model"
)

// ProductRepo provides CRUD operations for the front-desk catalog.
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepo returns a ProductRepo bound to the given database.
func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

func scanProduct(row interface{ Scan(...any) error }, p *model.Product) error {
	var img sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &img, &p.CreatedAt); err != nil {
		return err
	}
	if img.Valid {
		v := img.String
		p.ImageURL = &v
	}
	return nil
}

// GetByID returns a single product; sql.ErrNoRows when absent.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	const q = `SELECT id, name, description, price, stock, image_url, created_at
	           FROM products WHERE id = ?`
	var p model.Product
	if err := scanProduct(r.db.QueryRowContext(ctx, q, id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns products ordered by id.  limit <= 0 disables pagination.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]model.Product, error) {
	q := `SELECT id, name, description, price, stock, image_url, created_at
	      FROM products ORDER BY id ASC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ? OFFSET ?`
		args = append(args, limit, offset)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Product, 0)
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Count returns the total number of products.
func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

// Create inserts a product and returns the stored row.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	const q = `INSERT INTO products (name, description, price, stock, image_url) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.Name, p.Description, p.Price, p.Stock, p.ImageURL)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update applies a typed patch with a fixed parameterized statement.
func (r *ProductRepo) Update(ctx context.Context, id uint64, p model.ProductPatch) error {
	const q = `UPDATE products SET
	       name        = COALESCE(?, name),
	       description = COALESCE(?, description),
	       price       = COALESCE(?, price),
	       stock       = COALESCE(?, stock),
	       image_url   = COALESCE(?, image_url)
	       WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, p.Name, p.Description, p.Price, p.Stock, p.ImageURL, id)
	return err
}

// Delete removes a product row and reports whether a row was deleted.
func (r *ProductRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
