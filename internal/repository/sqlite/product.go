package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmeier/smartfridge/internal/apperror"
	"github.com/jmeier/smartfridge/internal/model"
	"github.com/jmeier/smartfridge/internal/repository"
)

// ProductRepo implements repository.ProductRepository on the shared pool.
type ProductRepo struct {
	db *DB
}

func NewProductRepo(db *DB) *ProductRepo {
	return &ProductRepo{db: db}
}

var _ repository.ProductRepository = (*ProductRepo)(nil)

// Create inserts a new product and fills in the generated ID and timestamps.
func (r *ProductRepo) Create(ctx context.Context, product *model.Product) error {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	res, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO products (user_id, name, category, image_url, unit, barcode, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		product.UserID,
		product.Name,
		product.Category,
		product.ImageURL,
		product.Unit,
		product.Barcode,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return apperror.Unavailable("inserting product", err)
	}

	product.ID, err = res.LastInsertId()
	if err != nil {
		return apperror.Unavailable("reading product insert id", err)
	}
	return nil
}

// GetByID retrieves a single product by its ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, name, category, image_url, unit, barcode, created_at, updated_at
		 FROM products WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.UserID, &p.Name, &p.Category, &p.ImageURL, &p.Unit, &p.Barcode,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("product", id)
		}
		return nil, apperror.Unavailable(fmt.Sprintf("getting product %d", id), err)
	}

	return &p, nil
}

// ListByUser returns a user's product catalog in insertion order.
func (r *ProductRepo) ListByUser(ctx context.Context, userID int64, opts repository.ListOptions) ([]model.Product, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT id, user_id, name, category, image_url, unit, barcode, created_at, updated_at
		 FROM products
		 WHERE user_id = ?
		 ORDER BY id ASC
		 LIMIT ? OFFSET ?`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, apperror.Unavailable("listing products", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0, limit)
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Category, &p.ImageURL, &p.Unit,
			&p.Barcode, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, apperror.Unavailable("scanning product row", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Unavailable("iterating products", err)
	}

	return products, nil
}

// CountByUser returns how many products a user owns.
func (r *ProductRepo) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE user_id = ?`, userID,
	).Scan(&count)
	if err != nil {
		return 0, apperror.Unavailable("counting products", err)
	}
	return count, nil
}

// Update replaces a product's mutable fields (everything except id and
// owner). Zero rows affected means the product does not exist.
func (r *ProductRepo) Update(ctx context.Context, product *model.Product) error {
	product.UpdatedAt = time.Now()

	res, err := r.db.conn.ExecContext(ctx,
		`UPDATE products
		 SET name = ?, category = ?, image_url = ?, unit = ?, barcode = ?, updated_at = ?
		 WHERE id = ?`,
		product.Name,
		product.Category,
		product.ImageURL,
		product.Unit,
		product.Barcode,
		product.UpdatedAt,
		product.ID,
	)
	if err != nil {
		return apperror.Unavailable(fmt.Sprintf("updating product %d", product.ID), err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.Unavailable("checking rows affected", err)
	}
	if affected == 0 {
		return apperror.NotFound("product", product.ID)
	}
	return nil
}

// Delete removes a product and every stock entry that references it, in
// one transaction. Same belt-and-suspenders approach as FridgeRepo.Delete:
// the FK cascade would cover the entries, the explicit sweep makes sure.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return apperror.Unavailable("beginning delete transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM stock_entries WHERE product_id = ?`, id,
	); err != nil {
		return apperror.Unavailable("sweeping stock entries", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return apperror.Unavailable("deleting product", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.Unavailable("checking rows affected", err)
	}
	if affected == 0 {
		return apperror.NotFound("product", id)
	}

	if err := tx.Commit(); err != nil {
		return apperror.Unavailable("committing product delete", err)
	}
	return nil
}
