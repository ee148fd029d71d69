package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/clubpuntos/loyalty-backend/internal/models"
	"github.com/clubpuntos/loyalty-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionService is the append-only ledger: it validates and creates
// entries, answers filtered queries, and owns the single mutable field
// of an entry, the prize-redemption status.
type TransactionService struct {
	transactionRepo repositories.TransactionRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo repositories.TransactionRepository) *TransactionService {
	return &TransactionService{transactionRepo: transactionRepo}
}

// validate enforces the conditional-field contract of a ledger entry.
func validate(t *models.Transaction) error {
	switch t.Type {
	case models.TransactionTypePurchase:
		if t.PrizeType != "" || t.PrizeID != nil || t.Status != "" {
			return fmt.Errorf("%w: purchase transaction must not carry redemption fields", ErrValidation)
		}
	case models.TransactionTypeRedeem:
		switch t.PrizeType {
		case models.PrizeTypePrize:
			if t.PrizeID == nil {
				return fmt.Errorf("%w: prize redemption requires a prizeID", ErrValidation)
			}
			if t.Status != models.StatusPending && t.Status != models.StatusCompleted && t.Status != models.StatusCancelled {
				return fmt.Errorf("%w: prize redemption requires a status", ErrValidation)
			}
		case models.PrizeTypeCashback:
			if t.CashbackAmount == 0 {
				return fmt.Errorf("%w: cashback redemption requires a cashbackAmount", ErrValidation)
			}
			if t.Status != "" {
				return fmt.Errorf("%w: cashback redemption settles immediately and carries no status", ErrValidation)
			}
		default:
			return fmt.Errorf("%w: unknown prizeType %q", ErrValidation, t.PrizeType)
		}
	default:
		return fmt.Errorf("%w: unknown transaction type %q", ErrValidation, t.Type)
	}
	return nil
}

// Create validates the entry and appends it to the ledger.
func (s *TransactionService) Create(ctx context.Context, transaction *models.Transaction) error {
	if err := validate(transaction); err != nil {
		return err
	}
	return s.transactionRepo.Create(ctx, transaction)
}

// GetByID returns a single ledger entry.
func (s *TransactionService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}

// GetAll returns every ledger entry, newest first.
func (s *TransactionService) GetAll(ctx context.Context) ([]*models.Transaction, error) {
	return s.transactionRepo.FindAll(ctx)
}

// GetByUser returns a user's full transaction history.
func (s *TransactionService) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Transaction, error) {
	return s.transactionRepo.FindByUser(ctx, userID)
}

// GetPrizeRedemptions returns every prize redemption.
func (s *TransactionService) GetPrizeRedemptions(ctx context.Context) ([]*models.Transaction, error) {
	return s.transactionRepo.FindPrizeRedemptions(ctx)
}

// GetPrizeRedemptionsByUser returns a user's prize redemptions.
func (s *TransactionService) GetPrizeRedemptionsByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Transaction, error) {
	return s.transactionRepo.FindPrizeRedemptionsByUser(ctx, userID)
}

// GetPending returns all prize redemptions awaiting pickup.
func (s *TransactionService) GetPending(ctx context.Context) ([]*models.Transaction, error) {
	return s.transactionRepo.FindPending(ctx)
}

// GetPendingByUser returns a user's prize redemptions awaiting pickup.
func (s *TransactionService) GetPendingByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Transaction, error) {
	return s.transactionRepo.FindPendingByUser(ctx, userID)
}

// CountPendingByUser counts a user's pending prize redemptions.
func (s *TransactionService) CountPendingByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.transactionRepo.CountPendingByUser(ctx, userID)
}

// Complete transitions pending→completed. The conditional update makes
// the transition exclusive against a racing cancel: false means the
// entry was no longer pending.
func (s *TransactionService) Complete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return s.transactionRepo.UpdateStatusIfPending(ctx, id, models.StatusCompleted)
}

// Cancel transitions pending→cancelled, with the same exclusivity.
func (s *TransactionService) Cancel(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return s.transactionRepo.UpdateStatusIfPending(ctx, id, models.StatusCancelled)
}
