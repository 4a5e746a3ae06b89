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

// StockRepo implements repository.StockRepository on the shared pool.
type StockRepo struct {
	db *DB
}

func NewStockRepo(db *DB) *StockRepo {
	return &StockRepo{db: db}
}

var _ repository.StockRepository = (*StockRepo)(nil)

// Create inserts a new stock entry. Repeated storage of the same
// product+fridge pair deliberately yields multiple rows — merging
// quantities is a pending product decision, so the repository never does
// it on its own.
func (r *StockRepo) Create(ctx context.Context, entry *model.StockEntry) error {
	entry.CreatedAt = time.Now()

	res, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO stock_entries (product_id, fridge_id, quantity, expires_on, stocked_on, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ProductID,
		entry.FridgeID,
		entry.Quantity,
		entry.ExpiresOn,
		entry.StockedOn,
		entry.CreatedAt,
	)
	if err != nil {
		return apperror.Unavailable("inserting stock entry", err)
	}

	entry.ID, err = res.LastInsertId()
	if err != nil {
		return apperror.Unavailable("reading stock entry insert id", err)
	}
	return nil
}

// GetByID retrieves a single stock entry.
func (r *StockRepo) GetByID(ctx context.Context, id int64) (*model.StockEntry, error) {
	var e model.StockEntry

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, product_id, fridge_id, quantity, expires_on, stocked_on, created_at
		 FROM stock_entries WHERE id = ?`,
		id,
	).Scan(&e.ID, &e.ProductID, &e.FridgeID, &e.Quantity, &e.ExpiresOn, &e.StockedOn, &e.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("stock entry", id)
		}
		return nil, apperror.Unavailable(fmt.Sprintf("getting stock entry %d", id), err)
	}

	return &e, nil
}

// Update replaces the mutable fields of an entry: quantity and both dates.
// Product and fridge references are immutable — moving stock between
// fridges is a remove + store, not an update.
func (r *StockRepo) Update(ctx context.Context, entry *model.StockEntry) error {
	res, err := r.db.conn.ExecContext(ctx,
		`UPDATE stock_entries
		 SET quantity = ?, expires_on = ?, stocked_on = ?
		 WHERE id = ?`,
		entry.Quantity,
		entry.ExpiresOn,
		entry.StockedOn,
		entry.ID,
	)
	if err != nil {
		return apperror.Unavailable(fmt.Sprintf("updating stock entry %d", entry.ID), err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.Unavailable("checking rows affected", err)
	}
	if affected == 0 {
		return apperror.NotFound("stock entry", entry.ID)
	}
	return nil
}

// DeleteByID removes a single entry, used when an update drives the
// quantity to zero or below.
func (r *StockRepo) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.db.conn.ExecContext(ctx,
		`DELETE FROM stock_entries WHERE id = ?`, id)
	if err != nil {
		return apperror.Unavailable(fmt.Sprintf("deleting stock entry %d", id), err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.Unavailable("checking rows affected", err)
	}
	if affected == 0 {
		return apperror.NotFound("stock entry", id)
	}
	return nil
}

// DeleteByProductAndFridge removes every entry matching the pair and
// returns the count. Repeated stores stack up as separate rows, so
// removing a product from a fridge has to match in bulk.
func (r *StockRepo) DeleteByProductAndFridge(ctx context.Context, productID, fridgeID int64) (int64, error) {
	res, err := r.db.conn.ExecContext(ctx,
		`DELETE FROM stock_entries WHERE product_id = ? AND fridge_id = ?`,
		productID, fridgeID,
	)
	if err != nil {
		return 0, apperror.Unavailable("deleting stock entries", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, apperror.Unavailable("checking rows affected", err)
	}
	return affected, nil
}

// ContentsOfFridge joins the fridge's stock entries with product metadata,
// one denormalized row per entry, in insertion order. An empty fridge
// yields an empty slice, not an error — and not nil, so the handler
// serialises it as [] rather than null.
func (r *StockRepo) ContentsOfFridge(ctx context.Context, fridgeID int64) ([]model.FridgeItem, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT s.id, p.id, p.name, p.category, p.unit, p.image_url,
		        s.quantity, s.expires_on, s.stocked_on
		 FROM stock_entries s
		 JOIN products p ON s.product_id = p.id
		 WHERE s.fridge_id = ?
		 ORDER BY s.id ASC`,
		fridgeID,
	)
	if err != nil {
		return nil, apperror.Unavailable("querying fridge contents", err)
	}
	defer rows.Close()

	items := make([]model.FridgeItem, 0, 16)
	for rows.Next() {
		var it model.FridgeItem
		if err := rows.Scan(&it.EntryID, &it.ProductID, &it.Name, &it.Category, &it.Unit,
			&it.ImageURL, &it.Quantity, &it.ExpiresOn, &it.StockedOn); err != nil {
			return nil, apperror.Unavailable("scanning contents row", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Unavailable("iterating contents", err)
	}

	return items, nil
}
