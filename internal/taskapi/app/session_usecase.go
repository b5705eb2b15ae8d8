// Package app реализует бизнес-логику сервиса управления задачами.
package app

import (
	"context"
	"errors"
	"fmt"

	"taskhive/internal/taskapi/domain/entities"
	"taskhive/internal/taskapi/domain/services"
	"taskhive/internal/taskapi/ports/api"
	"taskhive/internal/taskapi/ports/repositories"
	svc "taskhive/internal/taskapi/ports/services"
	"taskhive/pkg/logger"

	"go.uber.org/zap"
)

const (
	methodIssue     = "Issue"
	methodVerify    = "Verify"
	methodRevoke    = "Revoke"
	methodRevokeAll = "RevokeAll"

	msgIssuingSession      = "issuing session token"
	msgSessionIssued       = "session token issued"
	msgVerifyingSession    = "verifying session token"
	msgSessionVerified     = "session token verified"
	msgInvalidSignature    = "session token signature rejected"
	msgUnknownTokenOwner   = "session token references unknown user"
	msgSessionRevokedUse   = "attempt to use revoked session token"
	msgRevokingSession     = "revoking session"
	msgSessionRevoked      = "session revoked"
	msgRevokingAllSessions = "revoking all user sessions"
	msgAllSessionsRevoked  = "all user sessions revoked"

	msgErrGenerateToken = "failed to generate session token"
	msgErrStoreSession  = "failed to store session"
	msgErrCheckSession  = "failed to check session"
	msgErrFindUser      = "failed to find user for session"
	msgErrRevokeSession = "failed to revoke session"

	errCtxGeneratingToken = "generating session token"
	errCtxStoringSession  = "storing session"
	errCtxValidatingToken = "validating session token"
	errCtxResolvingUser   = "resolving token owner"
	errCtxCheckingSession = "checking session"
	errCtxTokenRevoked    = "session revoked"
	errCtxRevokingSession = "revoking session"
)

// SessionUseCaseImpl реализует интерфейс api.SessionUseCase.
// Каждая выдача и каждый отзыв немедленно сохраняются в хранилище:
// отдельного кеша сессий нет.
type SessionUseCaseImpl struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	tokenSvc    svc.TokenService
}

// NewSessionUseCase создает новый экземпляр сервиса сессий.
func NewSessionUseCase(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	tokenSvc svc.TokenService,
) api.SessionUseCase {
	return &SessionUseCaseImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokenSvc:    tokenSvc,
	}
}

// Issue выдает подписанный токен и сохраняет сессию пользователя.
func (s *SessionUseCaseImpl) Issue(ctx context.Context, user *entities.User) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodIssue), zap.String("userID", user.ID))
	log.Debug(ctx, msgIssuingSession)

	token, err := s.tokenSvc.GenerateSessionToken(ctx, user.ID)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxGeneratingToken, services.ErrTokenGenerationFailed)
	}

	if err := s.sessionRepo.Store(ctx, &services.Session{
		UserID: user.ID,
		Token:  token,
	}); err != nil {
		log.Error(ctx, msgErrStoreSession, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxStoringSession, err)
	}

	log.Info(ctx, msgSessionIssued)
	return token, nil
}

// Verify проверяет подпись токена, существование пользователя и отсутствие
// отзыва. Последняя проверка делает logout действующим на конкретном
// устройстве: подпись остается валидной, но сессии в хранилище уже нет.
func (s *SessionUseCaseImpl) Verify(ctx context.Context, token string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodVerify))
	log.Debug(ctx, msgVerifyingSession)

	userID, err := s.tokenSvc.ValidateSessionToken(ctx, token)
	if err != nil {
		log.Debug(ctx, msgInvalidSignature, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrInvalidSession)
	}

	log = log.With(zap.String("userID", userID))

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgUnknownTokenOwner)
			return nil, fmt.Errorf("%s: %w", errCtxResolvingUser, services.ErrInvalidSession)
		}
		log.Error(ctx, msgErrFindUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxResolvingUser, err)
	}

	active, err := s.sessionRepo.Exists(ctx, userID, token)
	if err != nil {
		log.Error(ctx, msgErrCheckSession, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingSession, err)
	}
	if !active {
		log.Debug(ctx, msgSessionRevokedUse)
		return nil, fmt.Errorf("%s: %w", errCtxTokenRevoked, services.ErrInvalidSession)
	}

	log.Debug(ctx, msgSessionVerified)
	return user, nil
}

// Revoke отзывает ровно одну сессию пользователя.
func (s *SessionUseCaseImpl) Revoke(ctx context.Context, user *entities.User, token string) error {
	log := logger.Log(ctx).With(zap.String("method", methodRevoke), zap.String("userID", user.ID))
	log.Debug(ctx, msgRevokingSession)

	if err := s.sessionRepo.Revoke(ctx, user.ID, token); err != nil {
		log.Error(ctx, msgErrRevokeSession, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxRevokingSession, err)
	}

	log.Info(ctx, msgSessionRevoked)
	return nil
}

// RevokeAll отзывает все сессии пользователя.
func (s *SessionUseCaseImpl) RevokeAll(ctx context.Context, user *entities.User) error {
	log := logger.Log(ctx).With(zap.String("method", methodRevokeAll), zap.String("userID", user.ID))
	log.Debug(ctx, msgRevokingAllSessions)

	if err := s.sessionRepo.RevokeAll(ctx, user.ID); err != nil {
		log.Error(ctx, msgErrRevokeSession, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxRevokingSession, err)
	}

	log.Info(ctx, msgAllSessionsRevoked)
	return nil
}
