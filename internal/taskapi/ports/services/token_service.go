// Package services определяет интерфейсы внешних сервисов-коллабораторов.
package services

import (
	"context"
)

// TokenService определяет интерфейс для подписи и проверки токенов сессий.
type TokenService interface {
	// GenerateSessionToken подписывает токен с идентификатором пользователя.
	GenerateSessionToken(ctx context.Context, userID string) (string, error)

	// ValidateSessionToken проверяет подпись и возвращает идентификатор пользователя.
	ValidateSessionToken(ctx context.Context, token string) (string, error)
}
