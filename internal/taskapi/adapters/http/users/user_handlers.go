// Package users содержит HTTP обработчики учетных записей.
package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"taskhive/internal/taskapi/adapters/http/middleware"
	"taskhive/internal/taskapi/app/dto"
	"taskhive/internal/taskapi/config"
	"taskhive/internal/taskapi/domain/services"
	"taskhive/internal/taskapi/domain/validation"
	"taskhive/internal/taskapi/ports/api"
	"taskhive/pkg/logger"
)

// Константы для логирования и сообщений ответов.
const (
	LogHandlerRegister      = "user handler: register"
	LogHandlerLogin         = "user handler: login"
	LogHandlerLogout        = "user handler: logout"
	LogHandlerLogoutAll     = "user handler: logout all"
	LogHandlerGetProfile    = "user handler: get profile"
	LogHandlerUpdateProfile = "user handler: update profile"
	LogHandlerDeleteProfile = "user handler: delete profile"
	LogHandlerUploadAvatar  = "user handler: upload avatar"
	LogHandlerDeleteAvatar  = "user handler: delete avatar"
	LogHandlerFetchAvatar   = "user handler: fetch avatar"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"

	MsgProfileCreated       = "Profile created"
	MsgProfileNotValid      = "Profile not valid"
	MsgFailedCreateProfile  = "Failed to create profile"
	MsgLoggedIn             = "Logged in"
	MsgFailedLogin          = "Failed to log in"
	MsgLoggedOut            = "Logged out on this device"
	MsgFailedLogout         = "Failed to log out on this device"
	MsgLoggedOutAll         = "Logged out on all devices"
	MsgFailedLogoutAll      = "Failed to log out on all devices"
	MsgFetchedProfile       = "Fetched profile"
	MsgInvalidUpdate        = "Invalid update"
	MsgUpdatedProfile       = "Updated profile"
	MsgFailedUpdateProfile  = "Failed to update profile"
	MsgDeletedProfile       = "Deleted profile"
	MsgFailedDeleteProfile  = "Failed to delete profile"
	MsgUploadedAvatar       = "Uploaded avatar"
	MsgAvatarNotValid       = "Avatar not valid"
	MsgFailedUploadAvatar   = "Failed to upload avatar"
	MsgDeletedAvatar        = "Deleted avatar"
	MsgFailedDeleteAvatar   = "Failed to delete avatar"
	MsgFailedFetchAvatar    = "Failed to fetch avatar"

	avatarFormField = "avatar"
)

// Разрешенные ключи частичного обновления профиля.
var allowedProfileUpdates = map[string]struct{}{
	"name":     {},
	"email":    {},
	"password": {},
	"age":      {},
}

// Разрешенные расширения файла аватара.
var allowedAvatarExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// Handler содержит HTTP обработчики учетных записей.
type Handler struct {
	userUC    api.UserUseCase
	sessions  api.SessionUseCase
	avatarCfg config.AvatarConfig
}

// NewHandler создает новый экземпляр обработчика учетных записей.
func NewHandler(userUC api.UserUseCase, sessions api.SessionUseCase, avatarCfg config.AvatarConfig) *Handler {
	return &Handler{
		userUC:    userUC,
		sessions:  sessions,
		avatarCfg: avatarCfg,
	}
}

func sendJSON(ctx fiber.Ctx, statusCode int, body dto.Envelope) error {
	if err := ctx.Status(statusCode).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusBadRequest, dto.Fail(MsgProfileNotValid))
	}

	user, token, err := h.userUC.Register(requestCtx, req.Name, req.Email, req.Password, req.Age)
	if err != nil {
		var violations validation.Violations
		if errors.As(err, &violations) {
			return sendJSON(ctx, http.StatusBadRequest, dto.FailWith(MsgProfileNotValid, violations))
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusInternalServerError, dto.Fail(MsgFailedCreateProfile))
	}

	return sendJSON(ctx, http.StatusCreated, dto.OK(MsgProfileCreated, dto.NewAuthResponse(user, token)))
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusBadRequest, dto.Fail(MsgFailedLogin))
	}

	user, token, err := h.userUC.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		}
		// Любая причина отказа дает один и тот же ответ.
		return sendJSON(ctx, http.StatusBadRequest, dto.Fail(MsgFailedLogin))
	}

	return sendJSON(ctx, http.StatusOK, dto.OK(MsgLoggedIn, dto.NewAuthResponse(user, token)))
}

// Logout отзывает сессию текущего устройства.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogout)

	user := middleware.CurrentUser(ctx)
	token := middleware.CurrentToken(ctx)

	if err := h.sessions.Revoke(requestCtx, user, token); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusInternalServerError, dto.Fail(MsgFailedLogout))
	}

	return sendJSON(ctx, http.StatusOK, dto.OK(MsgLoggedOut, nil))
}

// LogoutAll отзывает все сессии пользователя.
func (h *Handler) LogoutAll(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogoutAll)

	user := middleware.CurrentUser(ctx)

	if err := h.sessions.RevokeAll(requestCtx, user); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusInternalServerError, dto.Fail(MsgFailedLogoutAll))
	}

	return sendJSON(ctx, http.StatusOK, dto.OK(MsgLoggedOutAll, nil))
}

// GetProfile возвращает профиль текущего пользователя.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetProfile)

	user := middleware.CurrentUser(ctx)

	return sendJSON(ctx, http.StatusOK, dto.OK(MsgFetchedProfile, dto.NewUserResponse(user)))
}

// UpdateProfile применяет частичное обновление профиля текущего пользователя.
// Тело разбирается в карту, а не в типизированную структуру: неизвестный
// ключ должен отклонить запрос, типизированное связывание его молча съест.
func (h *Handler) UpdateProfile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdateProfile)

	var fields map[string]any
	if err := json.Unmarshal(ctx.Body(), &fields); err != nil || fields == nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusBadRequest, dto.Fail(MsgInvalidUpdate))
	}

	for key := range fields {
		if _, ok := allowedProfileUpdates[key]; !ok {
			// Тело запроса обратно не отдается: среди полей может быть
			// пароль открытым текстом.
			return sendJSON(ctx, http.StatusBadRequest, dto.Fail(MsgInvalidUpdate))
		}
	}

	user := middleware.CurrentUser(ctx)

	updated, err := h.userUC.UpdateProfile(requestCtx, user, fields)
	if err != nil {
		var violations validation.Violations
		if errors.As(err, &violations) {
			return sendJSON(ctx, http.StatusBadRequest, dto.FailWith(MsgProfileNotValid, violations))
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusInternalServerError, dto.Fail(MsgFailedUpdateProfile))
	}

	return sendJSON(ctx, http.StatusOK, dto.OK(MsgUpdatedProfile, dto.NewUserResponse(updated)))
}

// DeleteProfile удаляет текущего пользователя вместе с его задачами.
func (h *Handler) DeleteProfile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDeleteProfile)

	user := middleware.CurrentUser(ctx)

	if err := h.userUC.DeleteAccount(requestCtx, user); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusInternalServerError, dto.Fail(MsgFailedDeleteProfile))
	}

	return sendJSON(ctx, http.StatusOK, dto.OK(MsgDeletedProfile, dto.NewUserResponse(user)))
}

// UploadAvatar принимает файл аватара и сохраняет нормализованную копию.
func (h *Handler) UploadAvatar(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUploadAvatar)

	fileHeader, err := ctx.FormFile(avatarFormField)
	if err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusBadRequest, dto.Fail(MsgAvatarNotValid))
	}

	if fileHeader.Size > h.avatarCfg.MaxSizeBytes {
		return sendJSON(ctx, http.StatusBadRequest, dto.Fail(MsgAvatarNotValid))
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, ok := allowedAvatarExtensions[ext]; !ok {
		return sendJSON(ctx, http.StatusBadRequest, dto.Fail(MsgAvatarNotValid))
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusInternalServerError, dto.Fail(MsgFailedUploadAvatar))
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Debug(requestCtx, "failed to close uploaded file", zap.Error(closeErr))
		}
	}()

	image, err := io.ReadAll(io.LimitReader(file, h.avatarCfg.MaxSizeBytes+1))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusInternalServerError, dto.Fail(MsgFailedUploadAvatar))
	}
	if int64(len(image)) > h.avatarCfg.MaxSizeBytes {
		return sendJSON(ctx, http.StatusBadRequest, dto.Fail(MsgAvatarNotValid))
	}

	user := middleware.CurrentUser(ctx)

	if err := h.userUC.SetAvatar(requestCtx, user.ID, image); err != nil {
		var violations validation.Violations
		if errors.As(err, &violations) {
			return sendJSON(ctx, http.StatusBadRequest, dto.FailWith(MsgAvatarNotValid, violations))
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusInternalServerError, dto.Fail(MsgFailedUploadAvatar))
	}

	return sendJSON(ctx, http.StatusOK, dto.OK(MsgUploadedAvatar, nil))
}

// DeleteAvatar очищает аватар текущего пользователя.
func (h *Handler) DeleteAvatar(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDeleteAvatar)

	user := middleware.CurrentUser(ctx)

	if err := h.userUC.DeleteAvatar(requestCtx, user.ID); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusInternalServerError, dto.Fail(MsgFailedDeleteAvatar))
	}

	return sendJSON(ctx, http.StatusOK, dto.OK(MsgDeletedAvatar, nil))
}

// FetchAvatar отдает PNG-байты аватара; маршрут публичный.
func (h *Handler) FetchAvatar(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerFetchAvatar)

	avatar, err := h.userUC.GetAvatar(requestCtx, ctx.Params("id"))
	if err != nil {
		log.Debug(requestCtx, MsgFailedFetchAvatar, zap.Error(err))
		return sendJSON(ctx, http.StatusBadRequest, dto.Fail(MsgFailedFetchAvatar))
	}

	ctx.Set(fiber.HeaderContentType, "image/png")
	if err := ctx.Status(http.StatusOK).Send(avatar); err != nil {
		return fmt.Errorf("error sending avatar: %w", err)
	}
	return nil
}
