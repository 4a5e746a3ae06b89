package repository

import (
	"context"

	"github.com/jmeier/smartfridge/internal/model"
)

type ListOptions struct {
	Limit  int
	Offset int
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateByUsername(ctx context.Context, username, email, passwordHash string) error
	// DeleteByUsername removes the user together with their fridges,
	// products, and all dependent stock entries, in one transaction.
	DeleteByUsername(ctx context.Context, username string) error
}

type FridgeRepository interface {
	Create(ctx context.Context, fridge *model.Fridge) error
	GetByID(ctx context.Context, id int64) (*model.Fridge, error)
	ListByUser(ctx context.Context, userID int64, opts ListOptions) ([]model.Fridge, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	Rename(ctx context.Context, id int64, title string) error
	// Delete removes the fridge and its stock entries in one transaction.
	Delete(ctx context.Context, id int64) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	ListByUser(ctx context.Context, userID int64, opts ListOptions) ([]model.Product, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	Update(ctx context.Context, product *model.Product) error
	// Delete removes the product and its stock entries in one transaction.
	Delete(ctx context.Context, id int64) error
}

type StockRepository interface {
	Create(ctx context.Context, entry *model.StockEntry) error
	GetByID(ctx context.Context, id int64) (*model.StockEntry, error)
	Update(ctx context.Context, entry *model.StockEntry) error
	DeleteByID(ctx context.Context, id int64) error
	// DeleteByProductAndFridge removes every entry for the pair and returns
	// how many rows went away. Zero matches is reported, not an error —
	// the service decides what that means.
	DeleteByProductAndFridge(ctx context.Context, productID, fridgeID int64) (int64, error)
	// ContentsOfFridge joins each entry in the fridge with its product's
	// descriptive fields, in insertion order.
	ContentsOfFridge(ctx context.Context, fridgeID int64) ([]model.FridgeItem, error)
}
