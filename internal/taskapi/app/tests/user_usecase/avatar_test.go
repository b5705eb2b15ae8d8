package userusecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskhive/internal/taskapi/domain/entities"
	"taskhive/internal/taskapi/domain/validation"
)

var errCorruptImage = errors.New("image: unknown format")

func TestSetAvatar(t *testing.T) {
	userID := "user-123"
	rawImage := []byte("raw-image-bytes")
	normalized := []byte("png-250x250")

	t.Run("success - normalized image stored", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		imageSvc := new(mockImageService)

		imageSvc.On("NormalizeAvatar", mock.Anything, rawImage).Return(normalized, nil).Once()
		userRepo.On("UpdateAvatar", mock.Anything, userID, normalized).Return(nil).Once()

		uc := newUserUseCase(userRepo, new(mockTaskRepository), new(mockSessionUseCase),
			new(mockPasswordService), imageSvc, new(mockNotifier))

		err := uc.SetAvatar(context.Background(), userID, rawImage)

		require.NoError(t, err)
		userRepo.AssertExpectations(t)
		imageSvc.AssertExpectations(t)
	})

	t.Run("error - corrupt image becomes a validation failure", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		imageSvc := new(mockImageService)

		imageSvc.On("NormalizeAvatar", mock.Anything, rawImage).Return(nil, errCorruptImage).Once()

		uc := newUserUseCase(userRepo, new(mockTaskRepository), new(mockSessionUseCase),
			new(mockPasswordService), imageSvc, new(mockNotifier))

		err := uc.SetAvatar(context.Background(), userID, rawImage)

		var violations validation.Violations
		require.ErrorAs(t, err, &violations)
		require.Len(t, violations, 1)
		assert.Equal(t, "avatar", violations[0].Field)
		userRepo.AssertNotCalled(t, "UpdateAvatar")
	})
}

func TestDeleteAvatar(t *testing.T) {
	userID := "user-123"

	userRepo := new(mockUserRepository)
	userRepo.On("UpdateAvatar", mock.Anything, userID, []byte(nil)).Return(nil).Once()

	uc := newUserUseCase(userRepo, new(mockTaskRepository), new(mockSessionUseCase),
		new(mockPasswordService), new(mockImageService), new(mockNotifier))

	err := uc.DeleteAvatar(context.Background(), userID)

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestGetAvatar(t *testing.T) {
	userID := "user-123"
	avatar := []byte("png-250x250")

	t.Run("success - avatar returned", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		userRepo.On("GetAvatar", mock.Anything, userID).Return(avatar, nil).Once()

		uc := newUserUseCase(userRepo, new(mockTaskRepository), new(mockSessionUseCase),
			new(mockPasswordService), new(mockImageService), new(mockNotifier))

		got, err := uc.GetAvatar(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, avatar, got)
	})

	t.Run("error - avatar not set", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		userRepo.On("GetAvatar", mock.Anything, userID).Return(nil, entities.ErrAvatarNotFound).Once()

		uc := newUserUseCase(userRepo, new(mockTaskRepository), new(mockSessionUseCase),
			new(mockPasswordService), new(mockImageService), new(mockNotifier))

		_, err := uc.GetAvatar(context.Background(), userID)

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrAvatarNotFound)
	})
}
