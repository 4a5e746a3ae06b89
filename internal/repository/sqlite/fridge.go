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

// FridgeRepo implements repository.FridgeRepository on the shared pool.
type FridgeRepo struct {
	db *DB
}

func NewFridgeRepo(db *DB) *FridgeRepo {
	return &FridgeRepo{db: db}
}

var _ repository.FridgeRepository = (*FridgeRepo)(nil)

// Create inserts a new fridge and fills in the generated ID and timestamps.
func (r *FridgeRepo) Create(ctx context.Context, fridge *model.Fridge) error {
	now := time.Now()
	fridge.CreatedAt = now
	fridge.UpdatedAt = now

	res, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO fridges (user_id, title, created_at, updated_at)
		 VALUES (?, ?, ?, ?)`,
		fridge.UserID,
		fridge.Title,
		fridge.CreatedAt,
		fridge.UpdatedAt,
	)
	if err != nil {
		return apperror.Unavailable("inserting fridge", err)
	}

	fridge.ID, err = res.LastInsertId()
	if err != nil {
		return apperror.Unavailable("reading fridge insert id", err)
	}
	return nil
}

// GetByID retrieves a single fridge by its ID.
func (r *FridgeRepo) GetByID(ctx context.Context, id int64) (*model.Fridge, error) {
	var f model.Fridge

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, title, created_at, updated_at
		 FROM fridges WHERE id = ?`,
		id,
	).Scan(&f.ID, &f.UserID, &f.Title, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("fridge", id)
		}
		return nil, apperror.Unavailable(fmt.Sprintf("getting fridge %d", id), err)
	}

	return &f, nil
}

// ListByUser returns a user's fridges in insertion order (id ascending).
// The dashboard's "recent" preview leans on this order — it is insertion
// order by surrogate id, not a timestamp sort.
func (r *FridgeRepo) ListByUser(ctx context.Context, userID int64, opts repository.ListOptions) ([]model.Fridge, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT id, user_id, title, created_at, updated_at
		 FROM fridges
		 WHERE user_id = ?
		 ORDER BY id ASC
		 LIMIT ? OFFSET ?`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, apperror.Unavailable("listing fridges", err)
	}
	defer rows.Close()

	fridges := make([]model.Fridge, 0, limit)
	for rows.Next() {
		var f model.Fridge
		if err := rows.Scan(&f.ID, &f.UserID, &f.Title, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, apperror.Unavailable("scanning fridge row", err)
		}
		fridges = append(fridges, f)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Unavailable("iterating fridges", err)
	}

	return fridges, nil
}

// CountByUser returns how many fridges a user owns.
func (r *FridgeRepo) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM fridges WHERE user_id = ?`, userID,
	).Scan(&count)
	if err != nil {
		return 0, apperror.Unavailable("counting fridges", err)
	}
	return count, nil
}

// Rename updates a fridge's title. Zero rows affected means the fridge
// does not exist — a distinct, recoverable outcome, not a storage fault.
func (r *FridgeRepo) Rename(ctx context.Context, id int64, title string) error {
	res, err := r.db.conn.ExecContext(ctx,
		`UPDATE fridges SET title = ?, updated_at = ? WHERE id = ?`,
		title, time.Now(), id,
	)
	if err != nil {
		return apperror.Unavailable("renaming fridge", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.Unavailable("checking rows affected", err)
	}
	if affected == 0 {
		return apperror.NotFound("fridge", id)
	}
	return nil
}

// Delete removes a fridge and all of its stock entries in one transaction.
// The ON DELETE CASCADE clause would handle the entries on its own when
// foreign keys are enabled, but the explicit sweep makes the behaviour
// independent of pragma state.
func (r *FridgeRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return apperror.Unavailable("beginning delete transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM stock_entries WHERE fridge_id = ?`, id,
	); err != nil {
		return apperror.Unavailable("sweeping stock entries", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM fridges WHERE id = ?`, id)
	if err != nil {
		return apperror.Unavailable("deleting fridge", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.Unavailable("checking rows affected", err)
	}
	if affected == 0 {
		// Rolls back via the deferred Rollback — the sweep must not stick
		// if the parent never existed.
		return apperror.NotFound("fridge", id)
	}

	if err := tx.Commit(); err != nil {
		return apperror.Unavailable("committing fridge delete", err)
	}
	return nil
}
