package services

import (
	"context"
	"errors"

	"github.com/clubpuntos/loyalty-backend/internal/models"
	"github.com/clubpuntos/loyalty-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService handles user-related business logic. Reads clamp the
// balance at zero so the transient negative window of an in-flight debit
// is never presented as a spendable amount.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func clampPoints(user *models.User) *models.User {
	if user != nil && user.Points < 0 {
		user.Points = 0
	}
	return user
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return clampPoints(user), nil
}

// GetByEmail retrieves a user by email
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return clampPoints(user), nil
}

// GetAll retrieves all users
func (s *UserService) GetAll(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		clampPoints(u)
	}
	return users, nil
}

// UpdateProfile updates a user's name and/or DNI by email
func (s *UserService) UpdateProfile(ctx context.Context, email string, name string, dni *int64) (*models.User, error) {
	user, err := s.userRepo.UpdateProfile(ctx, email, name, dni)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return clampPoints(user), nil
}

// Count gets the total number of users
func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.userRepo.Count(ctx)
}
