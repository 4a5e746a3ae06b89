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

const MaxTitleLength = 100

// FridgeService handles the lifecycle of storage containers.
type FridgeService struct {
	fridges repository.FridgeRepository
	logger  *slog.Logger
}

func NewFridgeService(fridges repository.FridgeRepository, logger *slog.Logger) *FridgeService {
	return &FridgeService{fridges: fridges, logger: logger}
}

// Create validates and saves a new fridge for the given owner.
func (s *FridgeService) Create(ctx context.Context, userID int64, title string) (*model.Fridge, error) {
	if userID <= 0 {
		return nil, apperror.ValidationFailed("user_id", "owner id is required")
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "fridge title is required")
	}
	if len(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("fridge title must be %d characters or less", MaxTitleLength))
	}

	fridge := &model.Fridge{
		UserID: userID,
		Title:  title,
	}

	if err := s.fridges.Create(ctx, fridge); err != nil {
		s.logger.Error("failed to create fridge",
			slog.Int64("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("fridge created",
		slog.Int64("fridgeID", fridge.ID),
		slog.Int64("userID", userID),
		slog.String("title", fridge.Title),
	)

	return fridge, nil
}

// GetByID retrieves a fridge by id.
func (s *FridgeService) GetByID(ctx context.Context, id int64) (*model.Fridge, error) {
	if id <= 0 {
		return nil, apperror.ValidationFailed("id", "fridge id is required")
	}
	return s.fridges.GetByID(ctx, id)
}

// ListByUser returns all fridges owned by the user, insertion order.
func (s *FridgeService) ListByUser(ctx context.Context, userID int64) ([]model.Fridge, error) {
	if userID <= 0 {
		return nil, apperror.ValidationFailed("user_id", "owner id is required")
	}
	return s.fridges.ListByUser(ctx, userID, repository.ListOptions{})
}

// Rename changes a fridge's title.
func (s *FridgeService) Rename(ctx context.Context, id int64, title string) error {
	if id <= 0 {
		return apperror.ValidationFailed("id", "fridge id is required")
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return apperror.ValidationFailed("title", "fridge title is required")
	}
	if len(title) > MaxTitleLength {
		return apperror.ValidationFailed("title",
			fmt.Sprintf("fridge title must be %d characters or less", MaxTitleLength))
	}

	if err := s.fridges.Rename(ctx, id, title); err != nil {
		return err
	}

	s.logger.Info("fridge renamed", slog.Int64("fridgeID", id), slog.String("title", title))
	return nil
}

// Delete removes a fridge and all stock entries inside it. The cascade is
// the repository's single transaction — either the fridge and its entries
// all go, or nothing does.
func (s *FridgeService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperror.ValidationFailed("id", "fridge id is required")
	}

	if err := s.fridges.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("fridge deleted", slog.Int64("fridgeID", id))
	return nil
}
