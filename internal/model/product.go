package model

import "time"

// Product is a catalog item owned by a user — NOT by a fridge. The same
// product can sit in several fridges at once; the quantities live in
// stock entries, not here.
//
// Unit is the unit of measure the quantity is expressed in ("L", "kg",
// "pcs", ...). The core never converts between units, it just carries the
// string alongside the number.
type Product struct {
	ID        int64     `json:"product_id" db:"id"`
	UserID    int64     `json:"user_id"    db:"user_id"`
	Name      string    `json:"name"       db:"name"`
	Category  string    `json:"category"   db:"category"`  // optional, e.g. "Dairy"
	ImageURL  string    `json:"image_url"  db:"image_url"` // optional
	Unit      string    `json:"unit"       db:"unit"`
	Barcode   string    `json:"barcode"    db:"barcode"` // optional
	CreatedAt time.Time `json:"createdAt"  db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt"  db:"updated_at"`
}
