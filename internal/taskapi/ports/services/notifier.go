package services

import "context"

// Notifier определяет интерфейс почтовых уведомлений жизненного цикла аккаунта.
// Отправка выполняется best-effort: ошибки логируются и не влияют на запрос.
type Notifier interface {
	SendWelcome(ctx context.Context, email, name string) error

	SendCancellation(ctx context.Context, email, name string) error
}
