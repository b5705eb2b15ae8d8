// Package api определяет интерфейсы сценариев использования.
package api

import (
	"context"

	"taskhive/internal/taskapi/domain/entities"
)

// SessionUseCase определяет интерфейс управления сессиями пользователя.
type SessionUseCase interface {
	// Issue выдает новый токен и сохраняет сессию пользователя.
	Issue(ctx context.Context, user *entities.User) (string, error)

	// Verify проверяет подпись токена, существование пользователя и то,
	// что токен не был отозван. Возвращает владельца токена.
	Verify(ctx context.Context, token string) (*entities.User, error)

	// Revoke отзывает ровно одну сессию пользователя.
	Revoke(ctx context.Context, user *entities.User, token string) error

	// RevokeAll отзывает все сессии пользователя.
	RevokeAll(ctx context.Context, user *entities.User) error
}
