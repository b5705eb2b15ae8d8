// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"taskhive/internal/taskapi/app/dto"
	"taskhive/internal/taskapi/domain/entities"
	"taskhive/internal/taskapi/ports/api"
	"taskhive/pkg/logger"
)

// Константы для аутентификации.
const (
	MsgPleaseAuthenticate = "Please authenticate"

	localsUserKey  = "currentUser"
	localsTokenKey = "currentToken"

	bearerPrefix = "Bearer "
)

// NewAuthMiddleware создает промежуточное ПО проверки токена сессии.
// Токен валиден, только если его сессия все еще есть в хранилище:
// подпись сама по себе доступа не дает.
func NewAuthMiddleware(sessions api.SessionUseCase) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))

		authHeader := ctx.Get("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			log.Debug(requestCtx, "missing or malformed authorization header")
			return ctx.Status(fiber.StatusUnauthorized).JSON(dto.Fail(MsgPleaseAuthenticate))
		}

		token := strings.TrimPrefix(authHeader, bearerPrefix)

		user, err := sessions.Verify(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, "session verification failed", zap.Error(err))
			return ctx.Status(fiber.StatusUnauthorized).JSON(dto.Fail(MsgPleaseAuthenticate))
		}

		ctx.Locals(localsUserKey, user)
		ctx.Locals(localsTokenKey, token)

		return ctx.Next()
	}
}

// CurrentUser возвращает аутентифицированного пользователя запроса.
// Вызывается только из обработчиков за NewAuthMiddleware.
func CurrentUser(ctx fiber.Ctx) *entities.User {
	user, _ := ctx.Locals(localsUserKey).(*entities.User)
	return user
}

// CurrentToken возвращает токен текущего запроса.
func CurrentToken(ctx fiber.Ctx) string {
	token, _ := ctx.Locals(localsTokenKey).(string)
	return token
}
