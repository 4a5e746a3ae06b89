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

// UserRepo implements repository.UserRepository on the shared pool.
type UserRepo struct {
	db *DB
}

func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

var _ repository.UserRepository = (*UserRepo)(nil)

// Create inserts a new user and fills in the generated ID and timestamps.
//
// The UNIQUE constraint on email is our duplicate check — we let the
// database enforce it and translate the violation into a Conflict, rather
// than doing a racy SELECT-then-INSERT.
func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("email", fmt.Sprintf("email %s already exists", user.Email))
		}
		return apperror.Unavailable("inserting user", err)
	}

	user.ID, err = res.LastInsertId()
	if err != nil {
		return apperror.Unavailable("reading user insert id", err)
	}
	return nil
}

// GetByID retrieves a user by their surrogate ID.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at, updated_at
		 FROM users WHERE id = ?`,
		id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, apperror.Unavailable(fmt.Sprintf("getting user %d", id), err)
	}

	return &u, nil
}

// GetByEmail retrieves a user by email — the login lookup.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at, updated_at
		 FROM users WHERE email = ?`,
		email,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFoundNamed("user", email)
		}
		return nil, apperror.Unavailable("getting user by email", err)
	}

	return &u, nil
}

// UpdateByUsername replaces a user's email and password hash. Account
// updates and deletes address the user by username, not id.
func (r *UserRepo) UpdateByUsername(ctx context.Context, username, email, passwordHash string) error {
	res, err := r.db.conn.ExecContext(ctx,
		`UPDATE users SET email = ?, password_hash = ?, updated_at = ? WHERE username = ?`,
		email, passwordHash, time.Now(), username,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("email", fmt.Sprintf("email %s already exists", email))
		}
		return apperror.Unavailable("updating user", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.Unavailable("checking rows affected", err)
	}
	if affected == 0 {
		return apperror.NotFoundNamed("user", username)
	}
	return nil
}

// DeleteByUsername removes a user and everything they own. The sweep order
// is children-first: stock entries reachable through the user's fridges or
// products, then fridges and products, then the user row — all inside one
// transaction so a failure leaves no orphans and no half-deleted account.
func (r *UserRepo) DeleteByUsername(ctx context.Context, username string) error {
	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return apperror.Unavailable("beginning delete transaction", err)
	}
	// Rollback after Commit is a no-op, so the defer is safe on every path.
	defer tx.Rollback()

	var userID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM users WHERE username = ?`, username,
	).Scan(&userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperror.NotFoundNamed("user", username)
		}
		return apperror.Unavailable("looking up user for delete", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM stock_entries
		 WHERE fridge_id IN (SELECT id FROM fridges WHERE user_id = ?)
		    OR product_id IN (SELECT id FROM products WHERE user_id = ?)`,
		userID, userID,
	)
	if err != nil {
		return apperror.Unavailable("sweeping stock entries", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM fridges WHERE user_id = ?`, userID); err != nil {
		return apperror.Unavailable("sweeping fridges", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM products WHERE user_id = ?`, userID); err != nil {
		return apperror.Unavailable("sweeping products", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID); err != nil {
		return apperror.Unavailable("deleting user", err)
	}

	if err := tx.Commit(); err != nil {
		return apperror.Unavailable("committing user delete", err)
	}
	return nil
}
