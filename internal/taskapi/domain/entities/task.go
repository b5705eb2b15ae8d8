package entities

import (
	"errors"
	"time"
)

// ErrTaskNotFound возвращается и для чужих задач: несуществующая и
// принадлежащая другому пользователю задача неразличимы снаружи.
var ErrTaskNotFound = errors.New("task not found")

// Task представляет собой задачу пользователя.
type Task struct {
	ID          string
	OwnerID     string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTask создает новую задачу для указанного владельца.
func NewTask(ownerID, description string, completed bool) *Task {
	now := time.Now()
	return &Task{
		OwnerID:     ownerID,
		Description: description,
		Completed:   completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
