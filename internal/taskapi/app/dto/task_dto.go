package dto

import (
	"time"

	"taskhive/internal/taskapi/domain/entities"
)

// CreateTaskRequest содержит данные для создания задачи.
type CreateTaskRequest struct {
	Description string `json:"description"`
	Completed   *bool  `json:"completed,omitempty"`
}

// TaskResponse содержит данные задачи.
type TaskResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTaskResponse преобразует доменную сущность в ответ API.
func NewTaskResponse(task *entities.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		OwnerID:     task.OwnerID,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// NewTaskListResponse преобразует список задач в ответы API.
func NewTaskListResponse(tasks []*entities.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, NewTaskResponse(task))
	}
	return responses
}
