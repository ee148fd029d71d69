package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/clubpuntos/loyalty-backend/internal/models"
	"github.com/clubpuntos/loyalty-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure TransactionRepository implements the interface
var _ repositories.TransactionRepository = (*TransactionRepository)(nil)

// TransactionRepository handles MongoDB operations for the transaction ledger
type TransactionRepository struct {
	collection *mongo.Collection
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{
		collection: db.Collection("transactions"),
	}
}

// pendingPrizeFilter matches prize redemptions awaiting pickup.
func pendingPrizeFilter() bson.M {
	return bson.M{
		"type":      models.TransactionTypeRedeem,
		"prizeType": models.PrizeTypePrize,
		"status":    models.StatusPending,
	}
}

// Create inserts a new ledger entry
func (r *TransactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	transaction.ID = primitive.NewObjectID()
	now := time.Now()
	if transaction.Date.IsZero() {
		transaction.Date = now
	}
	transaction.CreatedAt = now
	transaction.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, transaction)
	return err
}

// FindByID finds a transaction by ID
func (r *TransactionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	var transaction models.Transaction
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&transaction)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

// FindAll retrieves all transactions, newest first
func (r *TransactionRepository) FindAll(ctx context.Context) ([]*models.Transaction, error) {
	return r.find(ctx, bson.M{})
}

// FindByUser retrieves all transactions for a user
func (r *TransactionRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Transaction, error) {
	return r.find(ctx, bson.M{"userID": userID})
}

// FindPrizeRedemptions retrieves every prize redemption
func (r *TransactionRepository) FindPrizeRedemptions(ctx context.Context) ([]*models.Transaction, error) {
	return r.find(ctx, bson.M{
		"type":      models.TransactionTypeRedeem,
		"prizeType": models.PrizeTypePrize,
	})
}

// FindPrizeRedemptionsByUser retrieves a user's prize redemptions
func (r *TransactionRepository) FindPrizeRedemptionsByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Transaction, error) {
	return r.find(ctx, bson.M{
		"userID":    userID,
		"type":      models.TransactionTypeRedeem,
		"prizeType": models.PrizeTypePrize,
	})
}

// FindPending retrieves pending prize redemptions across all users
func (r *TransactionRepository) FindPending(ctx context.Context) ([]*models.Transaction, error) {
	return r.find(ctx, pendingPrizeFilter())
}

// FindPendingByUser retrieves a user's pending prize redemptions
func (r *TransactionRepository) FindPendingByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Transaction, error) {
	filter := pendingPrizeFilter()
	filter["userID"] = userID
	return r.find(ctx, filter)
}

// CountPendingByUser counts a user's pending prize redemptions
func (r *TransactionRepository) CountPendingByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	filter := pendingPrizeFilter()
	filter["userID"] = userID
	return r.collection.CountDocuments(ctx, filter)
}

func (r *TransactionRepository) find(ctx context.Context, filter bson.M) ([]*models.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	transactions := []*models.Transaction{}
	if err = cursor.All(ctx, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// UpdateStatusIfPending transitions a prize redemption out of pending
// with a conditional update. Matching on the current status makes the
// terminal transition exclusive: of two racing complete/cancel calls,
// exactly one matches the document.
func (r *TransactionRepository) UpdateStatusIfPending(ctx context.Context, id primitive.ObjectID, status string) (bool, error) {
	filter := bson.M{"_id": id, "status": models.StatusPending}
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// EnsureIndexes creates the ledger's query indexes: per-user history and
// the pending-queue lookup.
func (r *TransactionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userID", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "prizeType", Value: 1}, {Key: "status", Value: 1}}},
	})
	return err
}
