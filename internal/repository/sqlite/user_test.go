package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/jmeier/smartfridge/internal/apperror"
	"github.com/jmeier/smartfridge/internal/model"
)

func TestUserCreateAndGetByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	u := &model.User{
		Username:     "max",
		Email:        "max@example.com",
		PasswordHash: "$2a$04$somehash",
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("Create() did not set the generated ID")
	}
	if u.CreatedAt.IsZero() || u.UpdatedAt.IsZero() {
		t.Error("Create() did not set timestamps")
	}

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.Username != "max" || got.Email != "max@example.com" {
		t.Errorf("GetByID() = %q/%q, want max/max@example.com", got.Username, got.Email)
	}
	if got.PasswordHash != "$2a$04$somehash" {
		t.Errorf("GetByID() hash = %q, want the stored hash", got.PasswordHash)
	}
}

func TestUserGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := NewUserRepo(db).GetByID(context.Background(), 999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID(999) error = %v, want ErrNotFound", err)
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	createTestUser(t, db, "dup@example.com")

	err := repo.Create(ctx, &model.User{
		Username:     "someone-else",
		Email:        "dup@example.com",
		PasswordHash: "$2a$04$other",
	})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("Create() with duplicate email error = %v, want ErrConflict", err)
	}

	// The rejected insert must leave exactly one row behind.
	if got := countRows(t, db, "users"); got != 1 {
		t.Errorf("users after rejected duplicate = %d, want 1", got)
	}
}

func TestUserDuplicateUsernameAllowed(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	// Uniqueness applies to email only; two "Max"s with distinct addresses
	// are fine.
	for _, email := range []string{"max1@example.com", "max2@example.com"} {
		err := repo.Create(ctx, &model.User{
			Username:     "Max",
			Email:        email,
			PasswordHash: "$2a$04$hash",
		})
		if err != nil {
			t.Fatalf("Create(%s) error: %v", email, err)
		}
	}

	if got := countRows(t, db, "users"); got != 2 {
		t.Errorf("users = %d, want 2", got)
	}
}

func TestUserGetByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	created := createTestUser(t, db, "login@example.com")

	got, err := repo.GetByEmail(ctx, "login@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("GetByEmail() id = %d, want %d", got.ID, created.ID)
	}

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByEmail(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestUserUpdateByUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	u := createTestUser(t, db, "old@example.com")

	err := repo.UpdateByUsername(ctx, u.Username, "new@example.com", "$2a$04$newhash")
	if err != nil {
		t.Fatalf("UpdateByUsername() error: %v", err)
	}

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() after update error: %v", err)
	}
	if got.Email != "new@example.com" {
		t.Errorf("email after update = %q, want new@example.com", got.Email)
	}
	if got.PasswordHash != "$2a$04$newhash" {
		t.Errorf("hash after update = %q, want the new hash", got.PasswordHash)
	}
}

func TestUserUpdateByUsernameNotFound(t *testing.T) {
	db := newTestDB(t)

	err := NewUserRepo(db).UpdateByUsername(context.Background(), "ghost", "g@example.com", "$2a$04$h")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("UpdateByUsername(ghost) error = %v, want ErrNotFound", err)
	}
}

func TestUserDeleteByUsernameCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// Owner with a fridge, a product, and stock connecting them.
	owner := createTestUser(t, db, "owner@example.com")
	fridge := createTestFridge(t, db, owner.ID, "Kitchen Fridge")
	product := createTestProduct(t, db, owner.ID, "Milk", "L")
	createTestEntry(t, db, product.ID, fridge.ID, 1.0, "2025-06-05", "")

	// A second user whose data must survive the sweep untouched.
	other := createTestUser(t, db, "other@example.com")
	otherFridge := createTestFridge(t, db, other.ID, "Garage Fridge")
	otherProduct := createTestProduct(t, db, other.ID, "Cheese", "kg")
	createTestEntry(t, db, otherProduct.ID, otherFridge.ID, 0.5, "", "")

	if err := NewUserRepo(db).DeleteByUsername(ctx, owner.Username); err != nil {
		t.Fatalf("DeleteByUsername() error: %v", err)
	}

	if _, err := NewUserRepo(db).GetByID(ctx, owner.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("deleted user still readable, error = %v", err)
	}
	if got := countRows(t, db, "fridges"); got != 1 {
		t.Errorf("fridges after cascade = %d, want 1 (the other user's)", got)
	}
	if got := countRows(t, db, "products"); got != 1 {
		t.Errorf("products after cascade = %d, want 1 (the other user's)", got)
	}
	if got := countRows(t, db, "stock_entries"); got != 1 {
		t.Errorf("stock entries after cascade = %d, want 1 (the other user's)", got)
	}
}

func TestUserDeleteByUsernameNotFound(t *testing.T) {
	db := newTestDB(t)

	err := NewUserRepo(db).DeleteByUsername(context.Background(), "ghost")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("DeleteByUsername(ghost) error = %v, want ErrNotFound", err)
	}
}
