package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/clubpuntos/loyalty-backend/internal/models"
	"github.com/clubpuntos/loyalty-backend/internal/repositories"
	"github.com/clubpuntos/loyalty-backend/internal/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// AcquireResult is the outcome of a successful prize redemption.
type AcquireResult struct {
	TransactionID   primitive.ObjectID `json:"transactionId"`
	PrizeName       string             `json:"prizeName"`
	PointsDeducted  int                `json:"pointsDeducted"`
	RemainingPoints int                `json:"remainingPoints"`
}

// AwardResult is the outcome of a point award for a purchase.
type AwardResult struct {
	TransactionID primitive.ObjectID `json:"transactionId"`
	NewBalance    int                `json:"newBalance"`
	PointsAdded   int                `json:"pointsAdded"`
}

// CashbackResult is the outcome of a cashback discount.
type CashbackResult struct {
	TransactionID  primitive.ObjectID `json:"transactionId"`
	NewBalance     int                `json:"newBalance"`
	PointsDeducted int                `json:"pointsDeducted"`
	CashbackAmount int                `json:"cashbackAmount"`
}

// RedemptionService orchestrates balance, stock and ledger into one
// compensating-transaction sequence and owns the pending → completed /
// cancelled state machine. There are no cross-collection transactions:
// each step is a single-document atomic update, and a failed later step
// undoes the earlier ones. The original error always reaches the caller;
// compensation failures are logged, never substituted.
type RedemptionService struct {
	balance   *BalanceService
	stock     *StockService
	ledger    *TransactionService
	userRepo  repositories.UserRepository
	prizeRepo repositories.PrizeRepository
}

// NewRedemptionService creates a new RedemptionService
func NewRedemptionService(
	balance *BalanceService,
	stock *StockService,
	ledger *TransactionService,
	userRepo repositories.UserRepository,
	prizeRepo repositories.PrizeRepository,
) *RedemptionService {
	return &RedemptionService{
		balance:   balance,
		stock:     stock,
		ledger:    ledger,
		userRepo:  userRepo,
		prizeRepo: prizeRepo,
	}
}

// Acquire redeems a catalog prize for a user. The ordering is fixed:
// debit balance, then take stock, then append the pending ledger entry.
// Balance goes first so a stock failure only has a single cheap undo,
// and the ledger entry goes last so no committed record can exist
// without its points and stock already taken.
func (s *RedemptionService) Acquire(ctx context.Context, userID, prizeID primitive.ObjectID) (*AcquireResult, error) {
	prize, err := s.prizeRepo.FindByID(ctx, prizeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPrizeNotFound
		}
		return nil, err
	}
	if prize.Status != models.PrizeStatusAvailable {
		return nil, ErrPrizeUnavailable
	}
	if prize.Stock <= 0 {
		return nil, &OutOfStockError{PrizeName: prize.Name}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	// Advisory pre-check only; the atomic decrement below is the
	// authoritative one. Rejecting obvious losers here keeps them from
	// churning the balance with debit-then-rollback cycles.
	if user.Points < prize.PointsRequired {
		return nil, &InsufficientPointsError{Required: prize.PointsRequired, Available: user.Points}
	}

	remaining, err := s.balance.Decrement(ctx, userID, prize.PointsRequired)
	if err != nil {
		return nil, err
	}

	if err := s.stock.Decrement(ctx, prizeID); err != nil {
		s.refundPoints(ctx, userID, prize.PointsRequired)
		var oos *OutOfStockError
		if errors.As(err, &oos) {
			oos.Refunded = true
		}
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:    userID,
		Type:      models.TransactionTypeRedeem,
		Concept:   fmt.Sprintf("Canje de premio: %s", prize.Name),
		Points:    -prize.PointsRequired,
		PrizeID:   &prizeID,
		PrizeType: models.PrizeTypePrize,
		Status:    models.StatusPending,
	}
	if err := s.ledger.Create(ctx, transaction); err != nil {
		slog.Error("failed to create redemption transaction, compensating",
			"userID", userID.Hex(), "prizeID", prizeID.Hex(), "error", err)
		s.refundPoints(ctx, userID, prize.PointsRequired)
		s.refundStock(ctx, prizeID)
		return nil, ErrTransactionCreate
	}

	return &AcquireResult{
		TransactionID:   transaction.ID,
		PrizeName:       prize.Name,
		PointsDeducted:  prize.PointsRequired,
		RemainingPoints: remaining,
	}, nil
}

// Complete marks a pending prize redemption as fulfilled. Points and
// stock were committed at acquire time, so this moves neither.
func (s *RedemptionService) Complete(ctx context.Context, transactionID primitive.ObjectID) (*models.Transaction, error) {
	transaction, err := s.loadPending(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	// Defensive: the prize must still exist. Stock is not re-validated,
	// it was committed when the redemption was acquired.
	if _, err := s.prizeRepo.FindByID(ctx, *transaction.PrizeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPrizeNotFound
		}
		return nil, err
	}

	matched, err := s.ledger.Complete(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, s.alreadyProcessed(ctx, transactionID)
	}

	transaction.Status = models.StatusCompleted
	return transaction, nil
}

// Cancel voids a pending prize redemption and returns its points and
// stock unit. The conditional status update settles the cancel-vs-
// complete race first; refunds happen only on the winning path, which
// bounds them to at most once per transaction. Refund failures are
// logged and do not fail the cancel: the cancellation itself already
// committed, and a manual reconciliation path is assumed.
func (s *RedemptionService) Cancel(ctx context.Context, transactionID primitive.ObjectID) (*models.Transaction, error) {
	transaction, err := s.loadPending(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	matched, err := s.ledger.Cancel(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, s.alreadyProcessed(ctx, transactionID)
	}

	if _, err := s.balance.Increment(ctx, transaction.UserID, -transaction.Points); err != nil {
		slog.Error("failed to refund points after cancellation",
			"transactionID", transactionID.Hex(), "userID", transaction.UserID.Hex(), "error", err)
	}
	if transaction.PrizeID != nil {
		if err := s.stock.Increment(ctx, *transaction.PrizeID); err != nil {
			slog.Error("failed to return stock after cancellation",
				"transactionID", transactionID.Hex(), "prizeID", transaction.PrizeID.Hex(), "error", err)
		}
	}

	transaction.Status = models.StatusCancelled
	return transaction, nil
}

// AwardPoints credits a user for a purchase and records it. A single
// resource moves, so no compensation is needed.
func (s *RedemptionService) AwardPoints(ctx context.Context, userID primitive.ObjectID, amountPesos int, concept string) (*AwardResult, error) {
	if err := validation.ValidateAmount(amountPesos); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	concept, err := validation.ValidateConcept(concept)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	points := CalculatePoints(amountPesos)
	newBalance, err := s.balance.Increment(ctx, userID, points)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:  userID,
		Type:    models.TransactionTypePurchase,
		Concept: concept,
		Points:  points,
	}
	if err := s.ledger.Create(ctx, transaction); err != nil {
		slog.Error("failed to record point award", "userID", userID.Hex(), "points", points, "error", err)
		return nil, ErrTransactionCreate
	}

	return &AwardResult{
		TransactionID: transaction.ID,
		NewBalance:    newBalance,
		PointsAdded:   points,
	}, nil
}

// ApplyCashback debits points in exchange for an immediate peso
// discount. Cashback settles at once: no stock moves and the ledger
// entry carries no status.
func (s *RedemptionService) ApplyCashback(ctx context.Context, userID primitive.ObjectID, points int, concept string) (*CashbackResult, error) {
	if points <= 0 {
		return nil, fmt.Errorf("%w: points must be greater than zero", ErrValidation)
	}
	concept, err := validation.ValidateConcept(concept)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Points < points {
		return nil, &InsufficientPointsError{Required: points, Available: user.Points}
	}

	newBalance, err := s.balance.Decrement(ctx, userID, points)
	if err != nil {
		return nil, err
	}

	cashback := CalculateDiscount(points)
	transaction := &models.Transaction{
		UserID:         userID,
		Type:           models.TransactionTypeRedeem,
		Concept:        concept,
		Points:         -points,
		PrizeType:      models.PrizeTypeCashback,
		CashbackAmount: cashback,
	}
	if err := s.ledger.Create(ctx, transaction); err != nil {
		slog.Error("failed to record cashback, refunding points",
			"userID", userID.Hex(), "points", points, "error", err)
		s.refundPoints(ctx, userID, points)
		return nil, ErrTransactionCreate
	}

	return &CashbackResult{
		TransactionID:  transaction.ID,
		NewBalance:     newBalance,
		PointsDeducted: points,
		CashbackAmount: cashback,
	}, nil
}

// loadPending fetches a transaction and checks the state-machine
// preconditions shared by Complete and Cancel.
func (s *RedemptionService) loadPending(ctx context.Context, transactionID primitive.ObjectID) (*models.Transaction, error) {
	transaction, err := s.ledger.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !transaction.IsPrizeRedemption() {
		return nil, ErrInvalidTransaction
	}
	if transaction.Status != models.StatusPending {
		return nil, &AlreadyProcessedError{Status: transaction.Status}
	}
	return transaction, nil
}

// alreadyProcessed re-reads the transaction to report which terminal
// state won the race for its status.
func (s *RedemptionService) alreadyProcessed(ctx context.Context, transactionID primitive.ObjectID) error {
	transaction, err := s.ledger.GetByID(ctx, transactionID)
	if err != nil {
		return err
	}
	return &AlreadyProcessedError{Status: transaction.Status}
}

// refundPoints is the compensation for an applied balance debit. Its own
// failure is logged but never masks the error being surfaced.
func (s *RedemptionService) refundPoints(ctx context.Context, userID primitive.ObjectID, amount int) {
	if _, err := s.balance.Increment(ctx, userID, amount); err != nil {
		slog.Error("compensation failed: points not refunded",
			"userID", userID.Hex(), "amount", amount, "error", err)
	}
}

// refundStock is the compensation for an applied stock decrement.
func (s *RedemptionService) refundStock(ctx context.Context, prizeID primitive.ObjectID) {
	if err := s.stock.Increment(ctx, prizeID); err != nil {
		slog.Error("compensation failed: stock not returned",
			"prizeID", prizeID.Hex(), "error", err)
	}
}
