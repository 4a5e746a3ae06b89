package service

import (
	"context"
	"log/slog"

	"github.com/jmeier/smartfridge/internal/apperror"
	"github.com/jmeier/smartfridge/internal/model"
	"github.com/jmeier/smartfridge/internal/repository"
)

// previewSize is how many fridges/products the dashboard preview panels
// show.
const previewSize = 3

// DashboardService assembles the summary view: totals plus short previews.
// It composes the fridge and product repositories read-only — it owns no
// table of its own.
type DashboardService struct {
	fridges  repository.FridgeRepository
	products repository.ProductRepository
	logger   *slog.Logger
}

func NewDashboardService(
	fridges repository.FridgeRepository,
	products repository.ProductRepository,
	logger *slog.Logger,
) *DashboardService {
	return &DashboardService{
		fridges:  fridges,
		products: products,
		logger:   logger,
	}
}

// Summary returns fridge/product counts and the first few of each.
//
// "First few" is insertion order (id ascending), not a recency sort —
// the tables carry created_at, but the frontend renders the first three
// by id, so the order stays until someone asks for true recency.
func (s *DashboardService) Summary(ctx context.Context, userID int64) (*model.DashboardSummary, error) {
	if userID <= 0 {
		return nil, apperror.ValidationFailed("user_id", "user id is required")
	}

	fridgeCount, err := s.fridges.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	productCount, err := s.products.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	recentFridges, err := s.fridges.ListByUser(ctx, userID, repository.ListOptions{Limit: previewSize})
	if err != nil {
		return nil, err
	}
	recentProducts, err := s.products.ListByUser(ctx, userID, repository.ListOptions{Limit: previewSize})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("dashboard summary built",
		slog.Int64("userID", userID),
		slog.Int("fridges", fridgeCount),
		slog.Int("products", productCount),
	)

	return &model.DashboardSummary{
		FridgeCount:    fridgeCount,
		ProductCount:   productCount,
		RecentFridges:  recentFridges,
		RecentProducts: recentProducts,
	}, nil
}
