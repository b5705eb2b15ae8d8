package repositories

import (
	"context"

	"taskhive/internal/taskapi/domain/entities"
)

// TaskFilter описывает параметры выборки задач владельца.
// SortField содержит доменное имя поля (description, completed, createdAt,
// updatedAt), пустое значение - порядок создания. Limit и Skip отсутствуют,
// если соответствующий параметр не задан.
type TaskFilter struct {
	Completed *bool
	SortField string
	SortDesc  bool
	Limit     *int
	Skip      *int
}

// TaskRepository определяет интерфейс хранилища задач.
// Все операции принимают идентификатор владельца и фильтруют по нему:
// чужая задача неотличима от несуществующей.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) (*entities.Task, error)

	GetByID(ctx context.Context, taskID, ownerID string) (*entities.Task, error)

	List(ctx context.Context, ownerID string, filter TaskFilter) ([]*entities.Task, error)

	Update(ctx context.Context, task *entities.Task) (*entities.Task, error)

	// Delete удаляет задачу и возвращает удаленную запись.
	Delete(ctx context.Context, taskID, ownerID string) (*entities.Task, error)

	// DeleteAllForOwner удаляет все задачи владельца; возвращает число удаленных.
	DeleteAllForOwner(ctx context.Context, ownerID string) (int64, error)
}
