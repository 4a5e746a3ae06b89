package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/jmeier/smartfridge/internal/apperror"
	"github.com/jmeier/smartfridge/internal/model"
	"github.com/jmeier/smartfridge/internal/repository"
)

func TestProductCreateAndGetByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepo(db)
	ctx := context.Background()

	user := createTestUser(t, db, "max@example.com")

	p := &model.Product{
		UserID:   user.ID,
		Name:     "Milk",
		Category: "Dairy",
		ImageURL: "https://example.com/milk.jpg",
		Unit:     "L",
		Barcode:  "4006381333931",
	}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("Create() did not set the generated ID")
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.Name != "Milk" || got.Unit != "L" {
		t.Errorf("GetByID() = %q/%q, want Milk/L", got.Name, got.Unit)
	}
	if got.Category != "Dairy" || got.Barcode != "4006381333931" {
		t.Errorf("optional fields not round-tripped: %+v", got)
	}
}

func TestProductOptionalFieldsDefaultEmpty(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "max@example.com")
	p := createTestProduct(t, db, user.ID, "Salt", "g")

	got, err := NewProductRepo(db).GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.Category != "" || got.ImageURL != "" || got.Barcode != "" {
		t.Errorf("optional fields = %q/%q/%q, want all empty", got.Category, got.ImageURL, got.Barcode)
	}
}

func TestProductGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := NewProductRepo(db).GetByID(context.Background(), 999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID(999) error = %v, want ErrNotFound", err)
	}
}

func TestProductListByUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepo(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")

	createTestProduct(t, db, owner.ID, "Milk", "L")
	createTestProduct(t, db, owner.ID, "Cheese", "kg")
	createTestProduct(t, db, other.ID, "Apples", "pcs")

	products, err := repo.ListByUser(ctx, owner.ID, repository.ListOptions{})
	if err != nil {
		t.Fatalf("ListByUser() error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("len = %d, want 2", len(products))
	}
	if products[0].Name != "Milk" || products[1].Name != "Cheese" {
		t.Errorf("order = %q, %q; want insertion order Milk, Cheese", products[0].Name, products[1].Name)
	}
}

func TestProductCountByUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "max@example.com")
	createTestProduct(t, db, user.ID, "Milk", "L")
	createTestProduct(t, db, user.ID, "Cheese", "kg")
	createTestProduct(t, db, user.ID, "Apples", "pcs")

	count, err := NewProductRepo(db).CountByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("CountByUser() error: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestProductUpdate(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepo(db)
	ctx := context.Background()

	user := createTestUser(t, db, "max@example.com")
	p := createTestProduct(t, db, user.ID, "Milk", "L")

	p.Name = "Oat Milk"
	p.Category = "Dairy Alternatives"
	p.Unit = "L"
	p.Barcode = "1234567890"
	if err := repo.Update(ctx, p); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.Name != "Oat Milk" || got.Category != "Dairy Alternatives" || got.Barcode != "1234567890" {
		t.Errorf("after update: %+v", got)
	}
	if got.UserID != user.ID {
		t.Errorf("owner changed on update: %d, want %d", got.UserID, user.ID)
	}
}

func TestProductUpdateNotFound(t *testing.T) {
	db := newTestDB(t)

	err := NewProductRepo(db).Update(context.Background(), &model.Product{
		ID:   999,
		Name: "Ghost",
		Unit: "pcs",
	})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update(999) error = %v, want ErrNotFound", err)
	}
}

func TestProductDeleteSweepsStockEntries(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "max@example.com")
	fridge := createTestFridge(t, db, user.ID, "Kitchen Fridge")
	milk := createTestProduct(t, db, user.ID, "Milk", "L")
	cheese := createTestProduct(t, db, user.ID, "Cheese", "kg")

	createTestEntry(t, db, milk.ID, fridge.ID, 1.0, "2025-06-05", "")
	createTestEntry(t, db, cheese.ID, fridge.ID, 0.5, "", "")

	if err := NewProductRepo(db).Delete(ctx, milk.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	// The fridge survives, and its contents now show only the cheese.
	items, err := NewStockRepo(db).ContentsOfFridge(ctx, fridge.ID)
	if err != nil {
		t.Fatalf("ContentsOfFridge() error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Cheese" {
		t.Errorf("contents after product delete = %+v, want only Cheese", items)
	}
	if _, err := NewFridgeRepo(db).GetByID(ctx, fridge.ID); err != nil {
		t.Errorf("fridge should survive product delete: %v", err)
	}
}

func TestProductDeleteNotFound(t *testing.T) {
	db := newTestDB(t)

	err := NewProductRepo(db).Delete(context.Background(), 999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete(999) error = %v, want ErrNotFound", err)
	}
}
