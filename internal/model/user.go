// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// User represents a registered account. A user owns fridges and products;
// stock entries belong to them only transitively, through a fridge or product.
//
// WHY int64 IDs?
// All four tables use SQLite's INTEGER PRIMARY KEY AUTOINCREMENT, so the
// database hands out the surrogate key on insert. int64 matches what
// sql.Result.LastInsertId() returns — no conversion needed.
//
// PasswordHash holds a bcrypt hash, never the plaintext password. The
// `json:"-"` tag keeps it out of every API response — a struct that is
// safe to marshal anywhere is much harder to leak by accident.
type User struct {
	ID           int64     `json:"user_id"   db:"id"`
	Username     string    `json:"username"  db:"username"`
	Email        string    `json:"email"     db:"email"`
	PasswordHash string    `json:"-"         db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
