// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which means you need a C compiler installed and
// cross-compilation becomes painful. modernc.org/sqlite is a pure Go
// translation of the SQLite C code — no C compiler needed, works everywhere
// Go works. For a single-binary household app that matters more than raw
// throughput.
//
// The schema is four tables: users, fridges, products, stock_entries.
// Fridges and products hang off users; stock_entries hang off both a
// product and a fridge. All foreign keys cascade on delete, AND the
// multi-row delete paths (fridge delete, product delete, account delete)
// also sweep dependent rows explicitly inside a transaction, so the
// behaviour does not hinge on the foreign_keys pragma being on.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Side-effect import: the driver registers itself with database/sql
	// under the name "sqlite" at init time.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides repository methods.
//
// sql.DB is already a pool, not a single connection — every query borrows
// a connection and returns it on all exit paths.
type DB struct {
	conn *sql.DB
}

// New creates a new SQLite database connection and runs migrations.
//
// dbPath examples:
//   - "data/smartfridge.db"  → file-based database (persistent)
//   - ":memory:"             → in-memory database (great for tests, lost on close)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Ping forces an immediate connection. Without it, a bad path or a
	// permissions problem would only surface on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// SQLite allows one writer at a time; a second pooled connection would
	// only produce SQLITE_BUSY under write load. Capping the pool at one
	// connection also makes ":memory:" behave — every pooled connection
	// would otherwise open its own private in-memory database.
	conn.SetMaxOpenConns(1)

	// WAL mode allows concurrent reads while a write is in progress —
	// the default rollback journal locks the whole file during writes.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite. The ON DELETE CASCADE
	// clauses below are inert without this pragma.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool. Wherever you call New(),
// immediately defer Close() — it flushes the WAL and releases the file lock.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS makes this safe
// to run on every startup; for anything beyond additive changes you would
// reach for golang-migrate instead.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			username      TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS fridges (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title      TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_fridges_user_id ON fridges(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating fridges table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name       TEXT NOT NULL,
			category   TEXT NOT NULL DEFAULT '',
			image_url  TEXT NOT NULL DEFAULT '',
			unit       TEXT NOT NULL,
			barcode    TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_products_user_id ON products(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating products table: %w", err)
	}

	// stock_entries has no user_id column — ownership is derived through
	// the fridge or the product, never stored twice.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS stock_entries (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			fridge_id  INTEGER NOT NULL REFERENCES fridges(id) ON DELETE CASCADE,
			quantity   REAL NOT NULL,
			expires_on TEXT NOT NULL DEFAULT '',
			stocked_on TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_stock_entries_fridge_id ON stock_entries(fridge_id);
		CREATE INDEX IF NOT EXISTS idx_stock_entries_product_id ON stock_entries(product_id);
	`)
	if err != nil {
		return fmt.Errorf("creating stock_entries table: %w", err)
	}

	return nil
}

// Seed inserts demo data if the tables are empty: one user, two fridges,
// three products, three stock entries. Opt-in via SEED_DEMO=1 — tests and
// production databases start clean.
//
// The demo password is bcrypt-hashed by the caller (we don't import the
// auth package here; the repository stores whatever hash it is given).
func (db *DB) Seed(ctx context.Context, demoPasswordHash string) error {
	var users int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&users); err != nil {
		return fmt.Errorf("sqlite: counting users for seed: %w", err)
	}
	if users > 0 {
		return nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`,
		"Max Mustermann", "max@example.com", demoPasswordHash,
	)
	if err != nil {
		return fmt.Errorf("sqlite: seeding user: %w", err)
	}
	userID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: seed user id: %w", err)
	}

	fridgeIDs := make([]int64, 0, 2)
	for _, title := range []string{"Kitchen Fridge", "Garage Fridge"} {
		res, err = tx.ExecContext(ctx,
			`INSERT INTO fridges (user_id, title) VALUES (?, ?)`, userID, title)
		if err != nil {
			return fmt.Errorf("sqlite: seeding fridge %q: %w", title, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("sqlite: seed fridge id: %w", err)
		}
		fridgeIDs = append(fridgeIDs, id)
	}

	products := []struct {
		name, category, imageURL, unit string
	}{
		{"Milk", "Dairy", "https://example.com/milk.jpg", "L"},
		{"Cheese", "Dairy", "https://example.com/cheese.jpg", "kg"},
		{"Apples", "Fruit", "https://example.com/apples.jpg", "pcs"},
	}
	productIDs := make([]int64, 0, len(products))
	for _, p := range products {
		res, err = tx.ExecContext(ctx,
			`INSERT INTO products (user_id, name, category, image_url, unit) VALUES (?, ?, ?, ?, ?)`,
			userID, p.name, p.category, p.imageURL, p.unit)
		if err != nil {
			return fmt.Errorf("sqlite: seeding product %q: %w", p.name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("sqlite: seed product id: %w", err)
		}
		productIDs = append(productIDs, id)
	}

	entries := []struct {
		product, fridge      int
		quantity             float64
		expiresOn, stockedOn string
	}{
		{0, 0, 1.0, "2025-06-05", "2025-05-20"},
		{1, 0, 0.5, "2025-06-10", "2025-05-21"},
		{2, 0, 5, "2025-05-27", "2025-05-21"},
	}
	for _, e := range entries {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO stock_entries (product_id, fridge_id, quantity, expires_on, stocked_on)
			 VALUES (?, ?, ?, ?, ?)`,
			productIDs[e.product], fridgeIDs[e.fridge], e.quantity, e.expiresOn, e.stockedOn)
		if err != nil {
			return fmt.Errorf("sqlite: seeding stock entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing seed: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
// modernc.org/sqlite surfaces these as driver errors whose message carries
// the SQLite diagnostic, e.g. "constraint failed: UNIQUE constraint failed:
// users.email (2067)". String matching is crude but stable — the diagnostic
// text is part of SQLite's documented error format.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
