// Package services реализует внешние сервисы-коллабораторы: подпись
// токенов, хэширование паролей, обработку изображений и почту.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskhive/internal/taskapi/domain/services"
	svc "taskhive/internal/taskapi/ports/services"
	"taskhive/pkg/logger"
)

const (
	methodGenerateSessionToken = "GenerateSessionToken"
	methodValidateSessionToken = "ValidateSessionToken"
	msgGeneratingToken         = "generating session token"
	msgValidatingToken         = "validating session token"
	msgTokenGenerated          = "token generated successfully"
	msgTokenValidated          = "token validated successfully"
	msgInvalidToken            = "invalid token format"
	//nolint:gosec
	errSigningToken       = "error signing token"
	errCtxGeneratingToken = "generating token"
	errCtxParsingToken    = "parsing token"
	errCtxValidatingToken = "validating token"
)

// ErrInvalidAlgorithm представляет статическую ошибку неверного алгоритма подписи.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// ServiceJWT реализует интерфейс TokenService.
// Токены не имеют срока действия: сессия живет, пока ее строка есть в
// хранилище, поэтому единственный способ завершить ее - отзыв.
type ServiceJWT struct {
	config services.JWTConfig
}

// NewJWT создает новый экземпляр сервиса JWT.
func NewJWT(secretKey string) svc.TokenService {
	return &ServiceJWT{
		config: services.JWTConfig{
			SecretKey: []byte(secretKey),
		},
	}
}

// GenerateSessionToken подписывает токен с идентификатором пользователя.
func (s *ServiceJWT) GenerateSessionToken(ctx context.Context, userID string) (string, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGenerateSessionToken),
		zap.String("userID", userID),
	)
	log.Debug(ctx, msgGeneratingToken)

	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, "empty secret key provided")
		return "", fmt.Errorf("%s: %w: empty secret key", errCtxGeneratingToken, services.ErrGeneratingJWTToken)
	}

	// jti отличает токены одного пользователя, выданные в одну секунду:
	// колонка token в sessions уникальна, повторная вставка того же
	// значения сломала бы вход со второго устройства.
	claims := jwt.RegisteredClaims{
		ID:       uuid.NewString(),
		Subject:  userID,
		IssuedAt: jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxGeneratingToken, services.ErrGeneratingJWTToken)
	}

	log.Debug(ctx, msgTokenGenerated)
	return signed, nil
}

// ValidateSessionToken проверяет подпись и возвращает идентификатор пользователя.
func (s *ServiceJWT) ValidateSessionToken(ctx context.Context, tokenString string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateSessionToken))
	log.Debug(ctx, msgValidatingToken)

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, t.Header["alg"])
		}
		return s.config.SecretKey, nil
	})
	if err != nil {
		log.Debug(ctx, msgInvalidToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxParsingToken, services.ErrInvalidJWTToken)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		log.Debug(ctx, msgInvalidToken)
		return "", fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	log.Debug(ctx, msgTokenValidated, zap.String("userID", claims.Subject))
	return claims.Subject, nil
}
