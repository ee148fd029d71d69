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

// Compile-time check to ensure PrizeRepository implements the interface
var _ repositories.PrizeRepository = (*PrizeRepository)(nil)

// PrizeRepository handles MongoDB operations for Prize
type PrizeRepository struct {
	collection *mongo.Collection
}

// NewPrizeRepository creates a new PrizeRepository
func NewPrizeRepository(db *mongo.Database) *PrizeRepository {
	return &PrizeRepository{
		collection: db.Collection("prizes"),
	}
}

// Create inserts a new prize
func (r *PrizeRepository) Create(ctx context.Context, prize *models.Prize) error {
	prize.ID = primitive.NewObjectID()
	prize.CreatedAt = time.Now()
	prize.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, prize)
	return err
}

// FindByID finds a prize by ID
func (r *PrizeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Prize, error) {
	var prize models.Prize
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&prize)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &prize, nil
}

// FindAll retrieves all prizes, newest first
func (r *PrizeRepository) FindAll(ctx context.Context) ([]*models.Prize, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

// FindAvailable retrieves available prizes, cheapest first
func (r *PrizeRepository) FindAvailable(ctx context.Context) ([]*models.Prize, error) {
	opts := options.Find().SetSort(bson.D{{Key: "pointsRequired", Value: 1}})
	return r.find(ctx, bson.M{"status": models.PrizeStatusAvailable}, opts)
}

func (r *PrizeRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Prize, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	prizes := []*models.Prize{}
	if err = cursor.All(ctx, &prizes); err != nil {
		return nil, err
	}
	return prizes, nil
}

// Update updates the catalog fields of an existing prize
func (r *PrizeRepository) Update(ctx context.Context, prize *models.Prize) error {
	prize.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":           prize.Name,
		"description":    prize.Description,
		"pointsRequired": prize.PointsRequired,
		"image":          prize.Image,
		"status":         prize.Status,
		"stock":          prize.Stock,
		"updatedAt":      prize.UpdatedAt,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": prize.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes a prize by ID
func (r *PrizeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// CompareAndSetStock performs the conditional stock update: the document
// is matched by id AND the previously observed stock value, so a
// concurrent decrement invalidates the match and the caller sees false.
func (r *PrizeRepository) CompareAndSetStock(ctx context.Context, id primitive.ObjectID, expected, stock int, status string) (bool, error) {
	filter := bson.M{"_id": id, "stock": expected}
	update := bson.M{"$set": bson.M{
		"stock":     stock,
		"status":    status,
		"updatedAt": time.Now(),
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// AddStock atomically increments stock by one and returns the document as
// it was before the increment, so the caller can decide on a status flip.
func (r *PrizeRepository) AddStock(ctx context.Context, id primitive.ObjectID) (*models.Prize, error) {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$inc": bson.M{"stock": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var prize models.Prize
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&prize)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &prize, nil
}

// SetStatus sets the availability status of a prize
func (r *PrizeRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
