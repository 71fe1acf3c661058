package social

import (
	"context"
	"fmt"

	"snapbid/internal/auctionerrors"
	"snapbid/internal/repository"
	"snapbid/utils"

	model "snapbid/internal/models"
)

// UserService defines the business logic for user profiles
type UserService struct {
	users repository.UserStore
}

// NewUserService creates a new UserService instance
func NewUserService(users repository.UserStore) *UserService {
	return &UserService{users: users}
}

// Register records a new user profile
func (s *UserService) Register(ctx context.Context, username, email, phone string) (model.User, error) {
	if username == "" || email == "" {
		return model.User{}, fmt.Errorf("service: %w - missing username or email", auctionerrors.ErrInvalidInput)
	}
	user := model.User{
		UserID:      utils.GenerateID(),
		Username:    username,
		Email:       email,
		PhoneNumber: phone,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return model.User{}, fmt.Errorf("service: failed to create user: %w", err)
	}
	return user, nil
}

// Profile returns a user profile by ID
func (s *UserService) Profile(ctx context.Context, userID string) (model.User, error) {
	if userID == "" {
		return model.User{}, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidInput)
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("service: failed to load user %s: %w", userID, err)
	}
	return user, nil
}

// UpdateProfile updates the mutable fields of a user's own profile
func (s *UserService) UpdateProfile(ctx context.Context, userID, username, phone, picture string) (model.User, error) {
	if userID == "" {
		return model.User{}, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidInput)
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("service: failed to load user %s: %w", userID, err)
	}
	if username != "" {
		user.Username = username
	}
	if phone != "" {
		user.PhoneNumber = phone
	}
	if picture != "" {
		user.ProfilePicture = picture
	}
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return model.User{}, fmt.Errorf("service: failed to update user %s: %w", userID, err)
	}
	return user, nil
}
