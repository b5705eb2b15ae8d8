package userhandlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"taskhive/internal/taskapi/domain/entities"
	"taskhive/internal/taskapi/ports/api"
)

type mockUserUseCase struct {
	mock.Mock
}

func (m *mockUserUseCase) Register(ctx context.Context, name, email, password string, age *int) (*entities.User, string, error) {
	args := m.Called(ctx, name, email, password, age)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*entities.User), args.String(1), args.Error(2)
}

func (m *mockUserUseCase) Login(ctx context.Context, email, password string) (*entities.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*entities.User), args.String(1), args.Error(2)
}

func (m *mockUserUseCase) UpdateProfile(ctx context.Context, user *entities.User, fields map[string]any) (*entities.User, error) {
	args := m.Called(ctx, user, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserUseCase) DeleteAccount(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserUseCase) SetAvatar(ctx context.Context, userID string, image []byte) error {
	args := m.Called(ctx, userID, image)
	return args.Error(0)
}

func (m *mockUserUseCase) DeleteAvatar(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockUserUseCase) GetAvatar(ctx context.Context, userID string) ([]byte, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type mockSessionUseCase struct {
	mock.Mock
}

func (m *mockSessionUseCase) Issue(ctx context.Context, user *entities.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *mockSessionUseCase) Verify(ctx context.Context, token string) (*entities.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockSessionUseCase) Revoke(ctx context.Context, user *entities.User, token string) error {
	args := m.Called(ctx, user, token)
	return args.Error(0)
}

func (m *mockSessionUseCase) RevokeAll(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

var (
	_ api.UserUseCase    = (*mockUserUseCase)(nil)
	_ api.SessionUseCase = (*mockSessionUseCase)(nil)
)
