package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/clubpuntos/loyalty-backend/internal/models"
	"github.com/clubpuntos/loyalty-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// defaultPrizeImage is used when the admin provides no image name.
const defaultPrizeImage = "empty.png"

// PrizeService handles catalog administration. Stock here is only set
// through admin edits; redemption-driven stock movement belongs to the
// stock service.
type PrizeService struct {
	prizeRepo repositories.PrizeRepository
}

// NewPrizeService creates a new PrizeService
func NewPrizeService(prizeRepo repositories.PrizeRepository) *PrizeService {
	return &PrizeService{prizeRepo: prizeRepo}
}

// Create adds a new prize to the catalog
func (s *PrizeService) Create(ctx context.Context, prize *models.Prize) error {
	if err := validatePrize(prize); err != nil {
		return err
	}
	if prize.Image == "" {
		prize.Image = defaultPrizeImage
	}
	if prize.Status == "" {
		prize.Status = models.PrizeStatusAvailable
	}
	return s.prizeRepo.Create(ctx, prize)
}

// GetByID retrieves a prize by ID
func (s *PrizeService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Prize, error) {
	prize, err := s.prizeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPrizeNotFound
		}
		return nil, err
	}
	return prize, nil
}

// GetAll retrieves the full catalog
func (s *PrizeService) GetAll(ctx context.Context) ([]*models.Prize, error) {
	return s.prizeRepo.FindAll(ctx)
}

// GetAvailable retrieves redeemable prizes, cheapest first
func (s *PrizeService) GetAvailable(ctx context.Context) ([]*models.Prize, error) {
	return s.prizeRepo.FindAvailable(ctx)
}

// Update edits an existing prize
func (s *PrizeService) Update(ctx context.Context, prize *models.Prize) error {
	if err := validatePrize(prize); err != nil {
		return err
	}
	err := s.prizeRepo.Update(ctx, prize)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrPrizeNotFound
	}
	return err
}

// Delete removes a prize from the catalog
func (s *PrizeService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.prizeRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrPrizeNotFound
	}
	return err
}

func validatePrize(prize *models.Prize) error {
	if prize.Name == "" {
		return fmt.Errorf("%w: prize name is required", ErrValidation)
	}
	if prize.Description == "" {
		return fmt.Errorf("%w: prize description is required", ErrValidation)
	}
	if prize.PointsRequired <= 0 {
		return fmt.Errorf("%w: pointsRequired must be greater than zero", ErrValidation)
	}
	if prize.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrValidation)
	}
	if prize.Status != "" && prize.Status != models.PrizeStatusAvailable && prize.Status != models.PrizeStatusUnavailable {
		return fmt.Errorf("%w: unknown prize status %q", ErrValidation, prize.Status)
	}
	return nil
}
