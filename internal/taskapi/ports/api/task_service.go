package api

import (
	"context"

	"taskhive/internal/taskapi/domain/entities"
	"taskhive/internal/taskapi/ports/repositories"
)

// TaskUseCase определяет интерфейс работы с задачами.
// Все операции выполняются от имени аутентифицированного владельца.
type TaskUseCase interface {
	Create(ctx context.Context, ownerID, description string, completed *bool) (*entities.Task, error)

	List(ctx context.Context, ownerID string, filter repositories.TaskFilter) ([]*entities.Task, error)

	Get(ctx context.Context, ownerID, taskID string) (*entities.Task, error)

	// Update применяет частичное обновление задачи.
	// Допустимые ключи: description, completed; любой другой ключ или
	// пустое описание отклоняет весь запрос без частичного применения.
	Update(ctx context.Context, ownerID, taskID string, fields map[string]any) (*entities.Task, error)

	Delete(ctx context.Context, ownerID, taskID string) (*entities.Task, error)
}
