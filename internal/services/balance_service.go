package services

import (
	"context"
	"errors"

	"github.com/clubpuntos/loyalty-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// BalanceService is the sole writer of User.Points. It never touches the
// transaction ledger; callers pair every balance mutation with a ledger
// entry of their own.
type BalanceService struct {
	userRepo repositories.UserRepository
}

// NewBalanceService creates a new BalanceService
func NewBalanceService(userRepo repositories.UserRepository) *BalanceService {
	return &BalanceService{userRepo: userRepo}
}

// Decrement atomically subtracts amount from the user's balance and
// re-reads the result. A negative result means a concurrent debit raced
// past the caller's pre-check; the debit is compensated with an atomic
// increment and InsufficientPointsError is returned. This is a
// pessimistic post-check, not preventive locking: between the subtract
// and the compensation the balance is transiently visible as negative to
// concurrent readers, which is why reads clamp at zero.
func (s *BalanceService) Decrement(ctx context.Context, userID primitive.ObjectID, amount int) (int, error) {
	balance, err := s.userRepo.AddPoints(ctx, userID, -amount)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	if balance < 0 {
		if _, rbErr := s.userRepo.AddPoints(ctx, userID, amount); rbErr != nil {
			slog.Error("failed to restore balance after negative debit",
				"userID", userID.Hex(), "amount", amount, "error", rbErr)
		}
		return 0, &InsufficientPointsError{Required: amount, Available: balance + amount}
	}

	return balance, nil
}

// Increment atomically adds amount to the user's balance. It serves both
// point awards and refund paths.
func (s *BalanceService) Increment(ctx context.Context, userID primitive.ObjectID, amount int) (int, error) {
	balance, err := s.userRepo.AddPoints(ctx, userID, amount)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return balance, nil
}
