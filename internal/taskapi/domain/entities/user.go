// Package entities определяет доменные сущности сервиса.
package entities

import (
	"errors"
	"time"
)

// Определяем ошибки домена пользователя как константы.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrAvatarNotFound = errors.New("avatar not found")
)

// User представляет основную сущность домена пользователя.
// Пароль хранится только в виде bcrypt-хэша.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Age          *int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
