package app

import (
	"context"
	"fmt"

	"taskhive/internal/taskapi/domain/entities"
	"taskhive/internal/taskapi/domain/validation"
	"taskhive/internal/taskapi/ports/api"
	"taskhive/internal/taskapi/ports/repositories"
	"taskhive/pkg/logger"

	"go.uber.org/zap"
)

const (
	errCtxCreatingTask = "creating task"
	errCtxListingTasks = "listing tasks"
	errCtxGettingTask  = "getting task"
	errCtxUpdatingTask = "updating task"
	errCtxDeletingTask = "deleting task"
)

// Допустимые поля частичного обновления задачи.
var taskUpdatableFields = map[string]struct{}{
	"description": {},
	"completed":   {},
}

// Допустимые поля сортировки списка задач.
var taskSortFields = map[string]struct{}{
	"description": {},
	"completed":   {},
	"createdAt":   {},
	"updatedAt":   {},
}

// TaskUseCaseImpl реализует интерфейс api.TaskUseCase.
type TaskUseCaseImpl struct {
	taskRepo repositories.TaskRepository
}

// NewTaskUseCase создает новый экземпляр сервиса задач.
func NewTaskUseCase(taskRepo repositories.TaskRepository) api.TaskUseCase {
	return &TaskUseCaseImpl{taskRepo: taskRepo}
}

// Create создает новую задачу владельца.
func (t *TaskUseCaseImpl) Create(ctx context.Context, ownerID, description string, completed *bool) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", "Create"), zap.String("ownerID", ownerID))

	clean, v := validation.TaskDescription(description)
	if v != nil {
		return nil, validation.Violations{*v}
	}

	done := false
	if completed != nil {
		done = *completed
	}

	task, err := t.taskRepo.Create(ctx, entities.NewTask(ownerID, clean, done))
	if err != nil {
		log.Error(ctx, "failed to create task", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingTask, err)
	}

	log.Info(ctx, "task created", zap.String("taskID", task.ID))
	return task, nil
}

// List возвращает задачи владельца с учетом фильтра, сортировки и
// пагинации. Неизвестное поле сортировки и отрицательные limit/skip
// отклоняются до обращения к хранилищу.
func (t *TaskUseCaseImpl) List(ctx context.Context, ownerID string, filter repositories.TaskFilter) ([]*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", "List"), zap.String("ownerID", ownerID))

	var violations validation.Violations
	if filter.SortField != "" {
		if _, ok := taskSortFields[filter.SortField]; !ok {
			violations = append(violations, validation.Violation{Field: "sortBy", Message: "unknown sort field"})
		}
	}
	if filter.Limit != nil && *filter.Limit < 0 {
		violations = append(violations, validation.Violation{Field: "limit", Message: "limit must be non-negative"})
	}
	if filter.Skip != nil && *filter.Skip < 0 {
		violations = append(violations, validation.Violation{Field: "skip", Message: "skip must be non-negative"})
	}
	if len(violations) > 0 {
		return nil, violations
	}

	tasks, err := t.taskRepo.List(ctx, ownerID, filter)
	if err != nil {
		log.Error(ctx, "failed to list tasks", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingTasks, err)
	}

	log.Debug(ctx, "tasks listed", zap.Int("count", len(tasks)))
	return tasks, nil
}

// Get возвращает задачу владельца. Чужая задача неотличима от
// несуществующей: оба случая дают entities.ErrTaskNotFound.
func (t *TaskUseCaseImpl) Get(ctx context.Context, ownerID, taskID string) (*entities.Task, error) {
	task, err := t.taskRepo.GetByID(ctx, taskID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxGettingTask, err)
	}
	return task, nil
}

// Update применяет частичное обновление задачи. Неизвестный ключ
// отклоняет весь запрос: ни одно поле не применяется частично.
func (t *TaskUseCaseImpl) Update(ctx context.Context, ownerID, taskID string, fields map[string]any) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", "Update"), zap.String("ownerID", ownerID), zap.String("taskID", taskID))

	var violations validation.Violations
	for key := range fields {
		if _, ok := taskUpdatableFields[key]; !ok {
			violations = append(violations, validation.Violation{Field: key, Message: "field is not updatable"})
		}
	}
	if len(violations) > 0 {
		return nil, violations
	}

	task, err := t.taskRepo.GetByID(ctx, taskID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingTask, err)
	}

	updated := *task

	if raw, ok := fields["description"]; ok {
		description, sv := stringField("description", raw)
		if sv != nil {
			violations = append(violations, *sv)
		} else if clean, v := validation.TaskDescription(description); v != nil {
			violations = append(violations, *v)
		} else {
			updated.Description = clean
		}
	}

	if raw, ok := fields["completed"]; ok {
		completed, bok := raw.(bool)
		if !bok {
			violations = append(violations, validation.Violation{Field: "completed", Message: "must be a boolean"})
		} else {
			updated.Completed = completed
		}
	}

	if len(violations) > 0 {
		return nil, violations
	}

	saved, err := t.taskRepo.Update(ctx, &updated)
	if err != nil {
		log.Error(ctx, "failed to update task", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingTask, err)
	}

	log.Info(ctx, "task updated")
	return saved, nil
}

// Delete удаляет задачу владельца и возвращает ее последнее состояние.
func (t *TaskUseCaseImpl) Delete(ctx context.Context, ownerID, taskID string) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", "Delete"), zap.String("ownerID", ownerID), zap.String("taskID", taskID))

	task, err := t.taskRepo.Delete(ctx, taskID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxDeletingTask, err)
	}

	log.Info(ctx, "task deleted")
	return task, nil
}
