package service

import (
	"context"
	"strings"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_UpdateProfile(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, DisplayName: "Old Name"}, nil
	}
	var updated *models.User
	users.updateFn = func(_ context.Context, u *models.User) error {
		updated = u
		return nil
	}
	svc := NewUserService(users)

	user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, DisplayName: " New Name "})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "New Name", user.DisplayName)
}

func TestUserService_UpdateProfile_TooLong(t *testing.T) {
	t.Parallel()

	svc := NewUserService(noopUserRepo())
	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:      1,
		DisplayName: strings.Repeat("x", 81),
	})
	assertValidationError(t, err)
}

func TestUserService_UpdateProfile_EmptyKeepsExisting(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, DisplayName: "Keeper"}, nil
	}
	svc := NewUserService(users)

	user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Keeper", user.DisplayName)
}

func TestUserService_SetStaff(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id}, nil
	}
	var updated *models.User
	users.updateFn = func(_ context.Context, u *models.User) error {
		updated = u
		return nil
	}
	svc := NewUserService(users)

	user, err := svc.SetStaff(context.Background(), 3, true)
	require.NoError(t, err)
	assert.True(t, user.IsStaff)
	require.NotNil(t, updated)
	assert.True(t, updated.IsStaff)
}
