package taskusecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskhive/internal/taskapi/app"
	"taskhive/internal/taskapi/domain/entities"
)

func TestGet(t *testing.T) {
	ownerID := "user-123"
	taskID := "task-1"
	storedTask := &entities.Task{ID: taskID, OwnerID: ownerID, Description: "buy milk"}

	t.Run("success - own task returned", func(t *testing.T) {
		taskRepo := new(mockTaskRepository)
		taskRepo.On("GetByID", mock.Anything, taskID, ownerID).Return(storedTask, nil).Once()

		uc := app.NewTaskUseCase(taskRepo)

		task, err := uc.Get(context.Background(), ownerID, taskID)

		require.NoError(t, err)
		assert.Equal(t, storedTask, task)
	})

	t.Run("error - foreign task indistinguishable from missing", func(t *testing.T) {
		taskRepo := new(mockTaskRepository)
		taskRepo.On("GetByID", mock.Anything, taskID, "other-user").Return(nil, entities.ErrTaskNotFound).Once()

		uc := app.NewTaskUseCase(taskRepo)

		_, err := uc.Get(context.Background(), "other-user", taskID)

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrTaskNotFound)
	})
}

func TestDelete(t *testing.T) {
	ownerID := "user-123"
	taskID := "task-1"
	storedTask := &entities.Task{ID: taskID, OwnerID: ownerID, Description: "buy milk"}

	t.Run("success - deleted task returned", func(t *testing.T) {
		taskRepo := new(mockTaskRepository)
		taskRepo.On("Delete", mock.Anything, taskID, ownerID).Return(storedTask, nil).Once()

		uc := app.NewTaskUseCase(taskRepo)

		task, err := uc.Delete(context.Background(), ownerID, taskID)

		require.NoError(t, err)
		assert.Equal(t, storedTask, task)
		taskRepo.AssertExpectations(t)
	})

	t.Run("error - foreign task not deleted", func(t *testing.T) {
		taskRepo := new(mockTaskRepository)
		taskRepo.On("Delete", mock.Anything, taskID, "other-user").Return(nil, entities.ErrTaskNotFound).Once()

		uc := app.NewTaskUseCase(taskRepo)

		_, err := uc.Delete(context.Background(), "other-user", taskID)

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrTaskNotFound)
	})

	t.Run("error - storage failure", func(t *testing.T) {
		taskRepo := new(mockTaskRepository)
		taskRepo.On("Delete", mock.Anything, taskID, ownerID).Return(nil, errDatabase).Once()

		uc := app.NewTaskUseCase(taskRepo)

		_, err := uc.Delete(context.Background(), ownerID, taskID)

		require.Error(t, err)
		assert.ErrorIs(t, err, errDatabase)
	})
}
