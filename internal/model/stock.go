package model

import "time"

// StockEntry records a quantity of one product held in one fridge.
//
// DATES AS STRINGS:
// ExpiresOn and StockedOn are calendar dates ("2025-06-05"), not instants.
// We keep them as ISO-8601 date strings end to end — parsing them into
// time.Time would drag a time zone into a value that has none. The service
// layer validates the YYYY-MM-DD format on the way in; empty means unset.
//
// There is deliberately no user_id column here: ownership is derived
// through the fridge or the product, never stored twice.
type StockEntry struct {
	ID        int64     `json:"entry_id"   db:"id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	FridgeID  int64     `json:"fridge_id"  db:"fridge_id"`
	Quantity  float64   `json:"quantity"   db:"quantity"`
	ExpiresOn string    `json:"expires_on" db:"expires_on"`
	StockedOn string    `json:"stocked_on" db:"stocked_on"`
	CreatedAt time.Time `json:"createdAt"  db:"created_at"`
}

// FridgeItem is one denormalized row of a fridge's contents: a stock entry
// joined with the descriptive fields of its product. This is what the
// contents endpoint returns — the frontend renders it directly without a
// second lookup per row.
type FridgeItem struct {
	EntryID   int64   `json:"entry_id"`
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Unit      string  `json:"unit"`
	ImageURL  string  `json:"image_url"`
	Quantity  float64 `json:"quantity"`
	ExpiresOn string  `json:"expires_on"`
	StockedOn string  `json:"stocked_on"`
}

// DashboardSummary is the aggregate view behind the dashboard page:
// totals plus a short preview of each list.
type DashboardSummary struct {
	FridgeCount    int       `json:"fridge_count"`
	ProductCount   int       `json:"product_count"`
	RecentFridges  []Fridge  `json:"recent_fridges"`
	RecentProducts []Product `json:"recent_products"`
}
