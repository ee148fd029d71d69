package repositories

import (
	"context"
	"errors"

	"github.com/clubpuntos/loyalty-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned by repositories when a document does not exist.
var ErrNotFound = errors.New("document not found")

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]*models.User, error)
	UpdateProfile(ctx context.Context, email string, name string, dni *int64) (*models.User, error)
	Count(ctx context.Context) (int64, error)
	// AddPoints atomically applies a signed delta to the user's balance
	// in one $inc update and returns the resulting balance. The delta and
	// the returned read are a single storage-level operation; no other
	// writer can observe an intermediate state.
	AddPoints(ctx context.Context, id primitive.ObjectID, delta int) (int, error)
}

// PrizeRepository defines the interface for prize catalog operations.
type PrizeRepository interface {
	Create(ctx context.Context, prize *models.Prize) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Prize, error)
	FindAll(ctx context.Context) ([]*models.Prize, error)
	FindAvailable(ctx context.Context) ([]*models.Prize, error)
	Update(ctx context.Context, prize *models.Prize) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// CompareAndSetStock updates stock and status only if the current
	// stock still equals expected. Returns false when the conditional
	// update matched no document (a concurrent writer won the race).
	CompareAndSetStock(ctx context.Context, id primitive.ObjectID, expected, stock int, status string) (bool, error)
	// AddStock atomically increments stock by one and returns the prize
	// as it was before the increment.
	AddStock(ctx context.Context, id primitive.ObjectID) (*models.Prize, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

// TransactionRepository defines the interface for the append-only ledger.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error)
	FindAll(ctx context.Context) ([]*models.Transaction, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Transaction, error)
	FindPrizeRedemptions(ctx context.Context) ([]*models.Transaction, error)
	FindPrizeRedemptionsByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Transaction, error)
	FindPending(ctx context.Context) ([]*models.Transaction, error)
	FindPendingByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Transaction, error)
	CountPendingByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	// UpdateStatusIfPending transitions the transaction's status with a
	// conditional update that matches only while the status is still
	// pending. Returns false when another terminal transition already won.
	UpdateStatusIfPending(ctx context.Context, id primitive.ObjectID, status string) (bool, error)
}
