package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBalanceDecrement(t *testing.T) {
	users := newFakeUserRepo()
	service := NewBalanceService(users)
	user := users.add(250)

	balance, err := service.Decrement(context.Background(), user.ID, 200)
	require.NoError(t, err)
	assert.Equal(t, 50, balance)
	assert.Equal(t, 50, users.points(user.ID))
}

func TestBalanceDecrementRollsBackNegative(t *testing.T) {
	users := newFakeUserRepo()
	service := NewBalanceService(users)
	user := users.add(50)

	_, err := service.Decrement(context.Background(), user.ID, 200)

	var insufficient *InsufficientPointsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 200, insufficient.Required)
	assert.Equal(t, 50, insufficient.Available)

	// The debit was compensated.
	assert.Equal(t, 50, users.points(user.ID))
}

func TestBalanceDecrementUnknownUser(t *testing.T) {
	service := NewBalanceService(newFakeUserRepo())

	_, err := service.Decrement(context.Background(), primitive.NewObjectID(), 10)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestBalanceIncrement(t *testing.T) {
	users := newFakeUserRepo()
	service := NewBalanceService(users)
	user := users.add(5)

	balance, err := service.Increment(context.Background(), user.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 12, balance)
}
