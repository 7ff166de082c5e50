package services

import (
	"context"
	"errors"

	"github.com/scholarsource/scholarsource-backend/internal/apperrors"
	"github.com/scholarsource/scholarsource-backend/internal/models"
	"github.com/scholarsource/scholarsource-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure UserServiceImpl implements UserService
var _ UserService = (*UserServiceImpl)(nil)

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService implementation
func NewUserService(userRepo repositories.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{userRepo: userRepo}
}

// GetUserByEmail returns the user with the given email
func (s *UserServiceImpl) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

// GetAllUsers returns a page of users
func (s *UserServiceImpl) GetAllUsers(ctx context.Context, page, limit int) ([]*models.User, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.userRepo.FindAll(ctx, page, limit)
}

// UpdateRole changes a user's role. Admin only at the route level.
func (s *UserServiceImpl) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error {
	switch role {
	case models.RoleStudent, models.RoleModerator, models.RoleAdmin:
	default:
		return apperrors.Validation("unknown role: " + role)
	}
	err := s.userRepo.UpdateRole(ctx, id, role)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.NotFound("user not found")
	}
	return err
}

// DeleteUser removes a user account
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	err := s.userRepo.Delete(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.NotFound("user not found")
	}
	return err
}

// GetUserCount returns the number of registered users
func (s *UserServiceImpl) GetUserCount(ctx context.Context) (int64, error) {
	return s.userRepo.Count(ctx)
}
