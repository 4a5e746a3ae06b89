package model

import "time"

// Fridge is a named storage container owned by exactly one user.
// Deleting a fridge removes its stock entries (see sqlite.FridgeRepo.Delete).
type Fridge struct {
	ID        int64     `json:"fridge_id" db:"id"`
	UserID    int64     `json:"user_id"   db:"user_id"`
	Title     string    `json:"title"     db:"title"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
