package services

import (
	"context"
	"testing"

	"github.com/clubpuntos/loyalty-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStockDecrement(t *testing.T) {
	prizes := newFakePrizeRepo()
	service := NewStockService(prizes)
	prize := prizes.add("Taza", 100, 3, models.PrizeStatusAvailable)

	require.NoError(t, service.Decrement(context.Background(), prize.ID))

	updated := prizes.get(prize.ID)
	assert.Equal(t, 2, updated.Stock)
	assert.Equal(t, models.PrizeStatusAvailable, updated.Status)
}

func TestStockDecrementLastUnitFlipsStatus(t *testing.T) {
	prizes := newFakePrizeRepo()
	service := NewStockService(prizes)
	prize := prizes.add("Taza", 100, 1, models.PrizeStatusAvailable)

	require.NoError(t, service.Decrement(context.Background(), prize.ID))

	updated := prizes.get(prize.ID)
	assert.Equal(t, 0, updated.Stock)
	assert.Equal(t, models.PrizeStatusUnavailable, updated.Status)
}

func TestStockDecrementEmpty(t *testing.T) {
	prizes := newFakePrizeRepo()
	service := NewStockService(prizes)
	prize := prizes.add("Taza", 100, 0, models.PrizeStatusAvailable)

	err := service.Decrement(context.Background(), prize.ID)

	var oos *OutOfStockError
	require.ErrorAs(t, err, &oos)
	assert.Equal(t, "Taza", oos.PrizeName)
	assert.False(t, oos.RaceDetected)
}

func TestStockDecrementLostRace(t *testing.T) {
	prizes := newFakePrizeRepo()
	service := NewStockService(prizes)
	prize := prizes.add("Taza", 100, 2, models.PrizeStatusAvailable)
	prizes.forceCASErr = true

	err := service.Decrement(context.Background(), prize.ID)

	var oos *OutOfStockError
	require.ErrorAs(t, err, &oos)
	assert.True(t, oos.RaceDetected)
	assert.Equal(t, 2, prizes.get(prize.ID).Stock)
}

func TestStockDecrementUnknownPrize(t *testing.T) {
	service := NewStockService(newFakePrizeRepo())

	err := service.Decrement(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrPrizeNotFound)
}

func TestStockIncrement(t *testing.T) {
	prizes := newFakePrizeRepo()
	service := NewStockService(prizes)
	prize := prizes.add("Taza", 100, 2, models.PrizeStatusAvailable)

	require.NoError(t, service.Increment(context.Background(), prize.ID))
	assert.Equal(t, 3, prizes.get(prize.ID).Stock)
}

func TestStockIncrementFromZeroRestoresAvailability(t *testing.T) {
	prizes := newFakePrizeRepo()
	service := NewStockService(prizes)
	prize := prizes.add("Taza", 100, 0, models.PrizeStatusUnavailable)

	require.NoError(t, service.Increment(context.Background(), prize.ID))

	updated := prizes.get(prize.ID)
	assert.Equal(t, 1, updated.Stock)
	assert.Equal(t, models.PrizeStatusAvailable, updated.Status)
}
