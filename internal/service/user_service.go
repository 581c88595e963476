package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// UserService handles account profile logic. Credential checks live in
// the auth handlers.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfileInput captures a profile edit.
type UpdateProfileInput struct {
	UserID      uint
	DisplayName string
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxDisplayNameLen = 80

	if name := strings.TrimSpace(in.DisplayName); name != "" {
		if len(name) > maxDisplayNameLen {
			return nil, models.NewValidationError("Display name too long (max 80 characters)")
		}
		user.DisplayName = name
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SetStaff grants or revokes staff access for an account.
func (s *UserService) SetStaff(ctx context.Context, targetID uint, isStaff bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	user.IsStaff = isStaff
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
