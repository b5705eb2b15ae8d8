package repositories

import (
	"context"

	"taskhive/internal/taskapi/domain/services"
)

// SessionRepository определяет интерфейс для операций по управлению сессиями.
// Каждая строка - один выданный токен; отзыв удаляет строку, поэтому
// список строк пользователя и есть список его действующих сессий.
type SessionRepository interface {
	Store(ctx context.Context, session *services.Session) error

	// Exists проверяет, что токен все еще действует для данного пользователя.
	Exists(ctx context.Context, userID, token string) (bool, error)

	// Revoke удаляет ровно одну сессию (logout текущего устройства).
	Revoke(ctx context.Context, userID, token string) error

	// RevokeAll удаляет все сессии пользователя (logout всех устройств).
	RevokeAll(ctx context.Context, userID string) error
}
