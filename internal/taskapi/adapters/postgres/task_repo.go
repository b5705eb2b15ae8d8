package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"taskhive/internal/taskapi/domain/entities"
	"taskhive/internal/taskapi/ports/repositories"
	"taskhive/pkg/logger"
)

// Соответствие доменных имен полей сортировки колонкам таблицы tasks.
// Значения фильтра подставляются в текст запроса только через эту
// таблицу, пользовательский ввод в SQL не попадает.
var taskSortColumns = map[string]string{
	"description": "description",
	"completed":   "completed",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

// TaskRepository реализует интерфейс repositories.TaskRepository для работы с Postgres.
type TaskRepository struct {
	pool PgxPoolInterface
}

// NewTaskRepository создает новый экземпляр репозитория задач.
func NewTaskRepository(pool PgxPoolInterface) repositories.TaskRepository {
	return &TaskRepository{pool: pool}
}

// Create создает новую задачу.
func (r *TaskRepository) Create(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("repository", "task"), zap.String("method", "Create"))

	query := `
        INSERT INTO tasks (owner_id, description, completed)
        VALUES ($1, $2, $3)
        RETURNING id, owner_id, description, completed, created_at, updated_at
    `

	var created entities.Task
	err := r.pool.QueryRow(ctx, query,
		task.OwnerID,
		task.Description,
		task.Completed,
	).Scan(
		&created.ID,
		&created.OwnerID,
		&created.Description,
		&created.Completed,
		&created.CreatedAt,
		&created.UpdatedAt,
	)

	if err != nil {
		log.Error(ctx, "error creating task", zap.Error(err))
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	log.Debug(ctx, "task created", zap.String("id", created.ID))
	return &created, nil
}

// GetByID находит задачу владельца. Чужая задача неотличима от
// несуществующей: обе дают entities.ErrTaskNotFound.
func (r *TaskRepository) GetByID(ctx context.Context, taskID, ownerID string) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("repository", "task"), zap.String("method", "GetByID"))

	query := `
        SELECT id, owner_id, description, completed, created_at, updated_at
        FROM tasks
        WHERE id = $1 AND owner_id = $2
    `

	var task entities.Task
	err := r.pool.QueryRow(ctx, query, taskID, ownerID).Scan(
		&task.ID,
		&task.OwnerID,
		&task.Description,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "task not found", zap.String("id", taskID))
			return nil, entities.ErrTaskNotFound
		}
		log.Error(ctx, "error finding task by id", zap.Error(err))
		return nil, fmt.Errorf("error querying task by id: %w", err)
	}

	return &task, nil
}

// List возвращает задачи владельца с учетом фильтра, сортировки и
// пагинации. Вторичный порядок created_at, id фиксирует выдачу при
// равных значениях поля сортировки.
func (r *TaskRepository) List(ctx context.Context, ownerID string, filter repositories.TaskFilter) ([]*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("repository", "task"), zap.String("method", "List"))

	var sb strings.Builder
	sb.WriteString(`
        SELECT id, owner_id, description, completed, created_at, updated_at
        FROM tasks
        WHERE owner_id = $1
    `)
	args := []any{ownerID}

	if filter.Completed != nil {
		args = append(args, *filter.Completed)
		fmt.Fprintf(&sb, " AND completed = $%d", len(args))
	}

	if column, ok := taskSortColumns[filter.SortField]; ok {
		direction := "ASC"
		if filter.SortDesc {
			direction = "DESC"
		}
		fmt.Fprintf(&sb, " ORDER BY %s %s, created_at ASC, id ASC", column, direction)
	} else {
		sb.WriteString(" ORDER BY created_at ASC, id ASC")
	}

	if filter.Limit != nil {
		args = append(args, *filter.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if filter.Skip != nil {
		args = append(args, *filter.Skip)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		log.Error(ctx, "error listing tasks", zap.Error(err))
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*entities.Task, 0)
	for rows.Next() {
		var task entities.Task
		if err := rows.Scan(
			&task.ID,
			&task.OwnerID,
			&task.Description,
			&task.Completed,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			log.Error(ctx, "error scanning task row", zap.Error(err))
			return nil, fmt.Errorf("error scanning task row: %w", err)
		}
		tasks = append(tasks, &task)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating task rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

// Update сохраняет измененную задачу.
func (r *TaskRepository) Update(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("repository", "task"), zap.String("method", "Update"))

	query := `
        UPDATE tasks
        SET description = $3, completed = $4, updated_at = NOW()
        WHERE id = $1 AND owner_id = $2
        RETURNING id, owner_id, description, completed, created_at, updated_at
    `

	var updated entities.Task
	err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.OwnerID,
		task.Description,
		task.Completed,
	).Scan(
		&updated.ID,
		&updated.OwnerID,
		&updated.Description,
		&updated.Completed,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "task not found", zap.String("id", task.ID))
			return nil, entities.ErrTaskNotFound
		}
		log.Error(ctx, "error updating task", zap.Error(err))
		return nil, fmt.Errorf("error updating task: %w", err)
	}

	return &updated, nil
}

// Delete удаляет задачу владельца и возвращает удаленную запись.
func (r *TaskRepository) Delete(ctx context.Context, taskID, ownerID string) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("repository", "task"), zap.String("method", "Delete"))

	query := `
        DELETE FROM tasks
        WHERE id = $1 AND owner_id = $2
        RETURNING id, owner_id, description, completed, created_at, updated_at
    `

	var deleted entities.Task
	err := r.pool.QueryRow(ctx, query, taskID, ownerID).Scan(
		&deleted.ID,
		&deleted.OwnerID,
		&deleted.Description,
		&deleted.Completed,
		&deleted.CreatedAt,
		&deleted.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "task not found", zap.String("id", taskID))
			return nil, entities.ErrTaskNotFound
		}
		log.Error(ctx, "error deleting task", zap.Error(err))
		return nil, fmt.Errorf("error deleting task: %w", err)
	}

	log.Debug(ctx, "task deleted", zap.String("id", taskID))
	return &deleted, nil
}

// DeleteAllForOwner удаляет все задачи владельца; возвращает число удаленных.
func (r *TaskRepository) DeleteAllForOwner(ctx context.Context, ownerID string) (int64, error) {
	log := logger.Log(ctx).With(zap.String("repository", "task"), zap.String("method", "DeleteAllForOwner"))

	query := `DELETE FROM tasks WHERE owner_id = $1`

	tag, err := r.pool.Exec(ctx, query, ownerID)
	if err != nil {
		log.Error(ctx, "error deleting owner tasks", zap.Error(err))
		return 0, fmt.Errorf("error deleting owner tasks: %w", err)
	}

	log.Debug(ctx, "owner tasks deleted", zap.Int64("rows_affected", tag.RowsAffected()))
	return tag.RowsAffected(), nil
}
