package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"taskhive/internal/taskapi/domain/services"
	"taskhive/internal/taskapi/ports/repositories"
	"taskhive/pkg/logger"
)

// SessionRepository реализует интерфейс repositories.SessionRepository для работы с Postgres.
type SessionRepository struct {
	pool PgxPoolInterface
}

// NewSessionRepository создает новый экземпляр репозитория сессий.
func NewSessionRepository(pool PgxPoolInterface) repositories.SessionRepository {
	return &SessionRepository{pool: pool}
}

// Store сохраняет выданную сессию.
func (r *SessionRepository) Store(ctx context.Context, session *services.Session) error {
	log := logger.Log(ctx).With(zap.String("repository", "session"), zap.String("method", "Store"))

	query := `
        INSERT INTO sessions (user_id, token)
        VALUES ($1, $2)
    `

	if _, err := r.pool.Exec(ctx, query, session.UserID, session.Token); err != nil {
		log.Error(ctx, "error storing session", zap.Error(err))
		return fmt.Errorf("error storing session: %w", err)
	}

	log.Debug(ctx, "session stored", zap.String("userID", session.UserID))
	return nil
}

// Exists проверяет, что токен все еще действует для данного пользователя.
func (r *SessionRepository) Exists(ctx context.Context, userID, token string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "session"), zap.String("method", "Exists"))

	query := `
        SELECT EXISTS (
            SELECT 1 FROM sessions WHERE user_id = $1 AND token = $2
        )
    `

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, token).Scan(&exists); err != nil {
		log.Error(ctx, "error checking session", zap.Error(err))
		return false, fmt.Errorf("error checking session: %w", err)
	}

	return exists, nil
}

// Revoke удаляет ровно одну сессию пользователя. Отсутствующая строка не
// считается ошибкой: повторный logout того же токена безвреден.
func (r *SessionRepository) Revoke(ctx context.Context, userID, token string) error {
	log := logger.Log(ctx).With(zap.String("repository", "session"), zap.String("method", "Revoke"))

	query := `DELETE FROM sessions WHERE user_id = $1 AND token = $2`

	tag, err := r.pool.Exec(ctx, query, userID, token)
	if err != nil {
		log.Error(ctx, "error revoking session", zap.Error(err))
		return fmt.Errorf("error revoking session: %w", err)
	}

	log.Debug(ctx, "session revoked", zap.String("userID", userID), zap.Int64("rows_affected", tag.RowsAffected()))
	return nil
}

// RevokeAll удаляет все сессии пользователя.
func (r *SessionRepository) RevokeAll(ctx context.Context, userID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "session"), zap.String("method", "RevokeAll"))

	query := `DELETE FROM sessions WHERE user_id = $1`

	tag, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		log.Error(ctx, "error revoking all sessions", zap.Error(err))
		return fmt.Errorf("error revoking all sessions: %w", err)
	}

	log.Debug(ctx, "all sessions revoked", zap.String("userID", userID), zap.Int64("rows_affected", tag.RowsAffected()))
	return nil
}
