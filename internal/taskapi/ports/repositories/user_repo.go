// Package repositories определяет интерфейсы хранилищ сервиса.
package repositories

import (
	"context"

	"taskhive/internal/taskapi/domain/entities"
)

// UserRepository определяет интерфейс для операций сохранения данных пользователя.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	Update(ctx context.Context, user *entities.User) (*entities.User, error)

	Delete(ctx context.Context, id string) error

	// UpdateAvatar сохраняет нормализованное изображение; nil очищает аватар.
	UpdateAvatar(ctx context.Context, id string, avatar []byte) error

	GetAvatar(ctx context.Context, id string) ([]byte, error)
}
