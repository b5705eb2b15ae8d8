// Package services содержит доменные типы и ошибки сервисного слоя.
package services

import (
	"errors"
	"time"
)

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials    = errors.New("unable to log in")
	ErrEmailAlreadyExists    = errors.New("user with this email already exists")
	ErrInvalidSession        = errors.New("invalid or revoked session token")
	ErrTokenGenerationFailed = errors.New("failed to generate session token")
)

// Session представляет одну активную сессию пользователя (одно устройство).
// Токен действует до явного отзыва, срок жизни не ограничен.
type Session struct {
	ID        string
	UserID    string
	Token     string
	CreatedAt time.Time
}
