package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"taskhive/internal/taskapi/ports/repositories"
)

// RepositoryFactory создает все необходимые репозитории для работы с PostgreSQL.
type RepositoryFactory struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	taskRepo    repositories.TaskRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool *pgxpool.Pool) *RepositoryFactory {
	return &RepositoryFactory{
		userRepo:    NewUserRepository(pool),
		sessionRepo: NewSessionRepository(pool),
		taskRepo:    NewTaskRepository(pool),
	}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// SessionRepository возвращает репозиторий сессий.
func (f *RepositoryFactory) SessionRepository() repositories.SessionRepository {
	return f.sessionRepo
}

// TaskRepository возвращает репозиторий задач.
func (f *RepositoryFactory) TaskRepository() repositories.TaskRepository {
	return f.taskRepo
}
