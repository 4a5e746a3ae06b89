package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmeier/smartfridge/internal/apperror"
	"github.com/jmeier/smartfridge/internal/model"
	"github.com/jmeier/smartfridge/internal/repository"
)

// dateLayout is the only accepted shape for expiry and stocked-on dates.
const dateLayout = "2006-01-02"

// StockService handles quantities of products inside fridges. It is the
// only service that spans two parent entities, so the cross-checks live
// here: both parents must exist and must belong to the same user before an
// entry can tie them together.
type StockService struct {
	stock    repository.StockRepository
	fridges  repository.FridgeRepository
	products repository.ProductRepository
	logger   *slog.Logger
}

func NewStockService(
	stock repository.StockRepository,
	fridges repository.FridgeRepository,
	products repository.ProductRepository,
	logger *slog.Logger,
) *StockService {
	return &StockService{
		stock:    stock,
		fridges:  fridges,
		products: products,
		logger:   logger,
	}
}

// validDate accepts the empty string (unset) or a YYYY-MM-DD calendar date.
func validDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// Store puts a quantity of a product into a fridge.
//
// Every call inserts a new entry — storing the same product into the same
// fridge twice yields two rows. Whether repeated stores should merge into
// one row is an open product decision; until it is made, the additive
// behaviour stands.
func (s *StockService) Store(ctx context.Context, productID, fridgeID int64, quantity float64, expiresOn, stockedOn string) (*model.StockEntry, error) {
	if productID <= 0 {
		return nil, apperror.ValidationFailed("product_id", "product id is required")
	}
	if fridgeID <= 0 {
		return nil, apperror.ValidationFailed("fridge_id", "fridge id is required")
	}
	if quantity <= 0 {
		return nil, apperror.ValidationFailed("quantity", "quantity must be greater than zero")
	}
	if !validDate(expiresOn) {
		return nil, apperror.ValidationFailed("expires_on", "expiry date must be YYYY-MM-DD")
	}
	if !validDate(stockedOn) {
		return nil, apperror.ValidationFailed("stocked_on", "stocked-on date must be YYYY-MM-DD")
	}

	// Both references must resolve; a dangling id is the caller's NotFound,
	// not a constraint explosion deep in the insert.
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	fridge, err := s.fridges.GetByID(ctx, fridgeID)
	if err != nil {
		return nil, err
	}

	// A stock entry has no owner column of its own — its ownership is
	// derived through either parent, which only stays coherent if both
	// parents share one.
	if product.UserID != fridge.UserID {
		return nil, apperror.ValidationFailed("product_id",
			"product and fridge belong to different users")
	}

	entry := &model.StockEntry{
		ProductID: productID,
		FridgeID:  fridgeID,
		Quantity:  quantity,
		ExpiresOn: expiresOn,
		StockedOn: stockedOn,
	}

	if err := s.stock.Create(ctx, entry); err != nil {
		s.logger.Error("failed to store product",
			slog.Int64("productID", productID),
			slog.Int64("fridgeID", fridgeID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("product stored",
		slog.Int64("entryID", entry.ID),
		slog.Int64("productID", productID),
		slog.Int64("fridgeID", fridgeID),
		slog.Float64("quantity", quantity),
	)

	return entry, nil
}

// Update replaces an entry's quantity and dates. A quantity of zero or
// below means the stock is gone, so the entry is removed instead of being
// kept around as a zero row.
func (s *StockService) Update(ctx context.Context, entryID int64, quantity float64, expiresOn, stockedOn string) error {
	if entryID <= 0 {
		return apperror.ValidationFailed("id", "entry id is required")
	}
	if !validDate(expiresOn) {
		return apperror.ValidationFailed("expires_on", "expiry date must be YYYY-MM-DD")
	}
	if !validDate(stockedOn) {
		return apperror.ValidationFailed("stocked_on", "stocked-on date must be YYYY-MM-DD")
	}

	if quantity <= 0 {
		if err := s.stock.DeleteByID(ctx, entryID); err != nil {
			return err
		}
		s.logger.Info("stock entry consumed", slog.Int64("entryID", entryID))
		return nil
	}

	entry := &model.StockEntry{
		ID:        entryID,
		Quantity:  quantity,
		ExpiresOn: expiresOn,
		StockedOn: stockedOn,
	}

	if err := s.stock.Update(ctx, entry); err != nil {
		return err
	}

	s.logger.Info("stock entry updated",
		slog.Int64("entryID", entryID),
		slog.Float64("quantity", quantity),
	)
	return nil
}

// Remove deletes all stock entries for the product+fridge pair. Because
// repeated stores accumulate separate rows, this is a bulk match: one call
// clears every row for the pair. Zero matching rows is NotFound.
func (s *StockService) Remove(ctx context.Context, productID, fridgeID int64) error {
	if productID <= 0 {
		return apperror.ValidationFailed("product_id", "product id is required")
	}
	if fridgeID <= 0 {
		return apperror.ValidationFailed("fridge_id", "fridge id is required")
	}

	removed, err := s.stock.DeleteByProductAndFridge(ctx, productID, fridgeID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return apperror.NotFound("stock entry for product", productID)
	}

	s.logger.Info("product removed from fridge",
		slog.Int64("productID", productID),
		slog.Int64("fridgeID", fridgeID),
		slog.Int64("entriesRemoved", removed),
	)
	return nil
}

// FridgeContents returns the denormalized view of everything in a fridge.
// The fridge must exist — an empty fridge returns an empty slice, but an
// unknown fridge id is NotFound, so the caller can tell the two apart.
func (s *StockService) FridgeContents(ctx context.Context, fridgeID int64) ([]model.FridgeItem, error) {
	if fridgeID <= 0 {
		return nil, apperror.ValidationFailed("fridge_id", "fridge id is required")
	}

	if _, err := s.fridges.GetByID(ctx, fridgeID); err != nil {
		return nil, err
	}

	return s.stock.ContentsOfFridge(ctx, fridgeID)
}
