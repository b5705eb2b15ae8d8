package userusecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskhive/internal/taskapi/domain/entities"
	"taskhive/internal/taskapi/domain/services"
)

func TestLogin(t *testing.T) {
	testEmail := "greg@x.com"
	testPassword := "strongPwD39$"
	hashedPassword := "$2a$10$hashed"
	token := "session-token"

	testUser := &entities.User{
		ID:           "user-123",
		Name:         "Greg",
		Email:        testEmail,
		PasswordHash: hashedPassword,
	}

	t.Run("success - user logged in", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		sessions := new(mockSessionUseCase)
		passwordSvc := new(mockPasswordService)

		userRepo.On("FindByEmail", mock.Anything, testEmail).Return(testUser, nil).Once()
		passwordSvc.On("Verify", mock.Anything, testPassword, hashedPassword).Return(true, nil).Once()
		sessions.On("Issue", mock.Anything, testUser).Return(token, nil).Once()

		uc := newUserUseCase(userRepo, new(mockTaskRepository), sessions, passwordSvc, new(mockImageService), new(mockNotifier))

		user, gotToken, err := uc.Login(context.Background(), testEmail, testPassword)

		require.NoError(t, err)
		assert.Equal(t, testUser, user)
		assert.Equal(t, token, gotToken)
		userRepo.AssertExpectations(t)
		passwordSvc.AssertExpectations(t)
		sessions.AssertExpectations(t)
	})

	t.Run("error - unknown email gives generic failure", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		userRepo.On("FindByEmail", mock.Anything, testEmail).Return(nil, entities.ErrUserNotFound).Once()

		uc := newUserUseCase(userRepo, new(mockTaskRepository), new(mockSessionUseCase),
			new(mockPasswordService), new(mockImageService), new(mockNotifier))

		_, _, err := uc.Login(context.Background(), testEmail, testPassword)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("error - wrong password gives the same generic failure", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		userRepo.On("FindByEmail", mock.Anything, testEmail).Return(testUser, nil).Once()
		passwordSvc.On("Verify", mock.Anything, "wrong-password", hashedPassword).Return(false, nil).Once()

		uc := newUserUseCase(userRepo, new(mockTaskRepository), new(mockSessionUseCase),
			passwordSvc, new(mockImageService), new(mockNotifier))

		_, _, err := uc.Login(context.Background(), testEmail, "wrong-password")

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("error - malformed email does not touch storage", func(t *testing.T) {
		userRepo := new(mockUserRepository)

		uc := newUserUseCase(userRepo, new(mockTaskRepository), new(mockSessionUseCase),
			new(mockPasswordService), new(mockImageService), new(mockNotifier))

		_, _, err := uc.Login(context.Background(), "not-an-email", testPassword)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
		userRepo.AssertNotCalled(t, "FindByEmail")
	})

	t.Run("error - storage failure surfaces as-is", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		userRepo.On("FindByEmail", mock.Anything, testEmail).Return(nil, errDatabase).Once()

		uc := newUserUseCase(userRepo, new(mockTaskRepository), new(mockSessionUseCase),
			new(mockPasswordService), new(mockImageService), new(mockNotifier))

		_, _, err := uc.Login(context.Background(), testEmail, testPassword)

		require.Error(t, err)
		assert.ErrorIs(t, err, errDatabase)
		assert.NotErrorIs(t, err, services.ErrInvalidCredentials)
	})
}
