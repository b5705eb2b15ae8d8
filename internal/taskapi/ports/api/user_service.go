package api

import (
	"context"

	"taskhive/internal/taskapi/domain/entities"
)

// UserUseCase определяет интерфейс управления учетными записями.
type UserUseCase interface {
	// Register создает пользователя и выдает первый токен сессии.
	Register(ctx context.Context, name, email, password string, age *int) (*entities.User, string, error)

	// Login проверяет учетные данные и выдает токен сессии.
	// Неверный email и неверный пароль неразличимы для вызывающего.
	Login(ctx context.Context, email, password string) (*entities.User, string, error)

	// UpdateProfile применяет частичное обновление профиля.
	// Допустимые ключи: name, email, password, age; любой другой ключ
	// отклоняет весь запрос без частичного применения.
	UpdateProfile(ctx context.Context, user *entities.User, fields map[string]any) (*entities.User, error)

	// DeleteAccount удаляет пользователя вместе с его задачами.
	DeleteAccount(ctx context.Context, user *entities.User) error

	SetAvatar(ctx context.Context, userID string, image []byte) error

	DeleteAvatar(ctx context.Context, userID string) error

	GetAvatar(ctx context.Context, userID string) ([]byte, error)
}
