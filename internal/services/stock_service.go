package services

import (
	"context"
	"errors"

	"github.com/clubpuntos/loyalty-backend/internal/models"
	"github.com/clubpuntos/loyalty-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// StockService is the sole writer of Prize.Stock and of the status flip
// when a redemption drains the last unit.
type StockService struct {
	prizeRepo repositories.PrizeRepository
}

// NewStockService creates a new StockService
func NewStockService(prizeRepo repositories.PrizeRepository) *StockService {
	return &StockService{prizeRepo: prizeRepo}
}

// Decrement takes one unit of stock with a compare-and-swap on the stock
// field: the update matches only while stock still equals the value read
// here, so of two concurrent redemptions of the last unit exactly one
// succeeds. The loser gets OutOfStockError with RaceDetected set and must
// roll back any balance debit it already applied.
func (s *StockService) Decrement(ctx context.Context, prizeID primitive.ObjectID) error {
	prize, err := s.prizeRepo.FindByID(ctx, prizeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPrizeNotFound
		}
		return err
	}

	if prize.Stock <= 0 {
		return &OutOfStockError{PrizeName: prize.Name}
	}

	newStock := prize.Stock - 1
	newStatus := prize.Status
	if newStock == 0 {
		newStatus = models.PrizeStatusUnavailable
	}

	matched, err := s.prizeRepo.CompareAndSetStock(ctx, prizeID, prize.Stock, newStock, newStatus)
	if err != nil {
		return err
	}
	if !matched {
		return &OutOfStockError{PrizeName: prize.Name, RaceDetected: true}
	}

	return nil
}

// Increment returns one unit of stock, flipping the prize back to
// available when it was drained. Not idempotent: two calls restore two
// units, so callers must invoke it at most once per cancellation.
func (s *StockService) Increment(ctx context.Context, prizeID primitive.ObjectID) error {
	before, err := s.prizeRepo.AddStock(ctx, prizeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPrizeNotFound
		}
		return err
	}

	if before.Stock == 0 {
		if err := s.prizeRepo.SetStatus(ctx, prizeID, models.PrizeStatusAvailable); err != nil {
			slog.Error("failed to restore prize availability after stock return",
				"prizeID", prizeID.Hex(), "error", err)
		}
	}

	return nil
}
