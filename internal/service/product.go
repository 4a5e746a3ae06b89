package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmeier/smartfridge/internal/apperror"
	"github.com/jmeier/smartfridge/internal/model"
	"github.com/jmeier/smartfridge/internal/repository"
)

const MaxProductNameLength = 200

// ProductService handles the per-user product catalog. Products describe
// what something is (name, unit, category); how much of it sits where is
// stock, handled by StockService.
type ProductService struct {
	products repository.ProductRepository
	logger   *slog.Logger
}

func NewProductService(products repository.ProductRepository, logger *slog.Logger) *ProductService {
	return &ProductService{products: products, logger: logger}
}

// ProductInput carries the mutable fields of a product. Name and Unit are
// required; the rest default to empty strings.
type ProductInput struct {
	Name     string
	Category string
	ImageURL string
	Unit     string
	Barcode  string
}

func (in *ProductInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Unit = strings.TrimSpace(in.Unit)
	in.Category = strings.TrimSpace(in.Category)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.Barcode = strings.TrimSpace(in.Barcode)

	if in.Name == "" {
		return apperror.ValidationFailed("name", "product name is required")
	}
	if len(in.Name) > MaxProductNameLength {
		return apperror.ValidationFailed("name",
			fmt.Sprintf("product name must be %d characters or less", MaxProductNameLength))
	}
	if in.Unit == "" {
		return apperror.ValidationFailed("unit", "unit of measure is required")
	}
	return nil
}

// Create validates and saves a new catalog product for the given owner.
func (s *ProductService) Create(ctx context.Context, userID int64, in ProductInput) (*model.Product, error) {
	if userID <= 0 {
		return nil, apperror.ValidationFailed("user_id", "owner id is required")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	product := &model.Product{
		UserID:   userID,
		Name:     in.Name,
		Category: in.Category,
		ImageURL: in.ImageURL,
		Unit:     in.Unit,
		Barcode:  in.Barcode,
	}

	if err := s.products.Create(ctx, product); err != nil {
		s.logger.Error("failed to create product",
			slog.Int64("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("product created",
		slog.Int64("productID", product.ID),
		slog.Int64("userID", userID),
		slog.String("name", product.Name),
	)

	return product, nil
}

// GetByID retrieves a product by id.
func (s *ProductService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if id <= 0 {
		return nil, apperror.ValidationFailed("id", "product id is required")
	}
	return s.products.GetByID(ctx, id)
}

// ListByUser returns the user's catalog, insertion order.
func (s *ProductService) ListByUser(ctx context.Context, userID int64) ([]model.Product, error) {
	if userID <= 0 {
		return nil, apperror.ValidationFailed("user_id", "owner id is required")
	}
	return s.products.ListByUser(ctx, userID, repository.ListOptions{})
}

// Update is a full replace of the mutable fields — clients send the
// complete product on every PUT, so missing optional fields clear rather
// than keep their previous value.
func (s *ProductService) Update(ctx context.Context, id int64, in ProductInput) (*model.Product, error) {
	if id <= 0 {
		return nil, apperror.ValidationFailed("id", "product id is required")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Category = in.Category
	product.ImageURL = in.ImageURL
	product.Unit = in.Unit
	product.Barcode = in.Barcode

	if err := s.products.Update(ctx, product); err != nil {
		s.logger.Error("failed to update product",
			slog.Int64("productID", id),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("product updated", slog.Int64("productID", id))
	return product, nil
}

// Delete removes a product from the catalog and, in the same transaction,
// every stock entry that references it in any fridge.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperror.ValidationFailed("id", "product id is required")
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("product deleted", slog.Int64("productID", id))
	return nil
}
