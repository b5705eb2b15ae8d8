package taskhandlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"taskhive/internal/taskapi/domain/entities"
	"taskhive/internal/taskapi/ports/api"
	"taskhive/internal/taskapi/ports/repositories"
)

type mockTaskUseCase struct {
	mock.Mock
}

func (m *mockTaskUseCase) Create(ctx context.Context, ownerID, description string, completed *bool) (*entities.Task, error) {
	args := m.Called(ctx, ownerID, description, completed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Task), args.Error(1)
}

func (m *mockTaskUseCase) List(ctx context.Context, ownerID string, filter repositories.TaskFilter) ([]*entities.Task, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Task), args.Error(1)
}

func (m *mockTaskUseCase) Get(ctx context.Context, ownerID, taskID string) (*entities.Task, error) {
	args := m.Called(ctx, ownerID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Task), args.Error(1)
}

func (m *mockTaskUseCase) Update(ctx context.Context, ownerID, taskID string, fields map[string]any) (*entities.Task, error) {
	args := m.Called(ctx, ownerID, taskID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Task), args.Error(1)
}

func (m *mockTaskUseCase) Delete(ctx context.Context, ownerID, taskID string) (*entities.Task, error) {
	args := m.Called(ctx, ownerID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Task), args.Error(1)
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
	_ api.TaskUseCase    = (*mockTaskUseCase)(nil)
	_ api.SessionUseCase = (*mockSessionUseCase)(nil)
)
