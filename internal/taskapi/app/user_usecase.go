package app

import (
	"context"
	"errors"
	"fmt"
	"math"

	"taskhive/internal/taskapi/domain/entities"
	"taskhive/internal/taskapi/domain/services"
	"taskhive/internal/taskapi/domain/validation"
	"taskhive/internal/taskapi/ports/api"
	"taskhive/internal/taskapi/ports/repositories"
	svc "taskhive/internal/taskapi/ports/services"
	"taskhive/pkg/logger"

	"go.uber.org/zap"
)

const (
	methodRegister      = "Register"
	methodLogin         = "Login"
	methodUpdateProfile = "UpdateProfile"
	methodDeleteAccount = "DeleteAccount"
	methodSetAvatar     = "SetAvatar"
	methodDeleteAvatar  = "DeleteAvatar"
	methodGetAvatar     = "GetAvatar"

	msgStartRegistration  = "starting user registration"
	msgInvalidProfile     = "profile failed validation"
	msgEmailExists        = "user with this email already exists"
	msgUserRegistered     = "user registered successfully"
	msgLoginAttempt       = "login attempt"
	msgLoginNonExistent   = "login attempt with non-existent email"
	msgInvalidPassword    = "invalid password provided"
	msgUserLoggedIn       = "user logged in successfully"
	msgUpdatingProfile    = "updating user profile"
	msgProfileUpdated     = "user profile updated"
	msgDeletingAccount    = "deleting user account"
	msgTasksCascaded      = "owned tasks removed during account deletion"
	msgAccountDeleted     = "user account deleted"
	msgStoringAvatar      = "storing user avatar"
	msgAvatarStored       = "user avatar stored"
	msgAvatarCleared      = "user avatar cleared"
	msgWelcomeEmailFailed = "failed to send welcome email"
	msgGoodbyeEmailFailed = "failed to send cancellation email"

	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrFindingUser       = "error finding user by email"
	msgErrVerifyingPassword = "error verifying password"
	msgErrUpdateUser        = "failed to update user"
	msgErrDeleteTasks       = "failed to delete owned tasks"
	msgErrDeleteUser        = "failed to delete user"
	msgErrNormalizeAvatar   = "failed to normalize avatar image"
	msgErrStoreAvatar       = "failed to store avatar"

	errCtxCheckingUser       = "checking existing user"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxIssuingSession     = "issuing session"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
	errCtxUpdatingUser       = "updating user"
	errCtxCascadingTasks     = "cascading task deletion"
	errCtxDeletingUser       = "deleting user"
	errCtxStoringAvatar      = "storing avatar"
	errCtxFetchingAvatar     = "fetching avatar"
)

// Допустимые поля частичного обновления профиля.
var profileUpdatableFields = map[string]struct{}{
	"name":     {},
	"email":    {},
	"password": {},
	"age":      {},
}

// UserUseCaseImpl реализует интерфейс api.UserUseCase.
type UserUseCaseImpl struct {
	userRepo    repositories.UserRepository
	taskRepo    repositories.TaskRepository
	sessions    api.SessionUseCase
	passwordSvc svc.PasswordService
	imageSvc    svc.ImageService
	notifier    svc.Notifier
}

// NewUserUseCase создает новый экземпляр сервиса учетных записей.
func NewUserUseCase(
	userRepo repositories.UserRepository,
	taskRepo repositories.TaskRepository,
	sessions api.SessionUseCase,
	passwordSvc svc.PasswordService,
	imageSvc svc.ImageService,
	notifier svc.Notifier,
) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo:    userRepo,
		taskRepo:    taskRepo,
		sessions:    sessions,
		passwordSvc: passwordSvc,
		imageSvc:    imageSvc,
		notifier:    notifier,
	}
}

// Register создает нового пользователя и выдает первый токен сессии.
// Конфликт уникальности email намеренно неотличим от прочих ошибок
// валидации: обе стороны получают один и тот же ответ 400.
func (u *UserUseCaseImpl) Register(ctx context.Context, name, email, password string, age *int) (*entities.User, string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("email", email))
	log.Debug(ctx, msgStartRegistration)

	var violations validation.Violations

	cleanName, v := validation.Name(name)
	if v != nil {
		violations = append(violations, *v)
	}
	cleanEmail, v := validation.Email(email)
	if v != nil {
		violations = append(violations, *v)
	}
	cleanPassword, v := validation.Password(password)
	if v != nil {
		violations = append(violations, *v)
	}
	if age != nil {
		if v := validation.Age(*age); v != nil {
			violations = append(violations, *v)
		}
	}
	if len(violations) > 0 {
		log.Debug(ctx, msgInvalidProfile, zap.Error(violations))
		return nil, "", violations
	}

	existing, err := u.userRepo.FindByEmail(ctx, cleanEmail)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return nil, "", fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existing != nil {
		log.Debug(ctx, msgEmailExists)
		return nil, "", emailTakenViolation()
	}

	hashedPassword, err := u.passwordSvc.Hash(ctx, cleanPassword)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, "", fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	newUser := &entities.User{
		Name:         cleanName,
		Email:        cleanEmail,
		PasswordHash: hashedPassword,
		Age:          age,
	}

	createdUser, err := u.userRepo.Create(ctx, newUser)
	if err != nil {
		if errors.Is(err, services.ErrEmailAlreadyExists) {
			// Гонка между проверкой и вставкой: уникальный индекс решает.
			log.Debug(ctx, msgEmailExists)
			return nil, "", emailTakenViolation()
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, "", fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", createdUser.ID))

	token, err := u.sessions.Issue(ctx, createdUser)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", errCtxIssuingSession, err)
	}

	if err := u.notifier.SendWelcome(ctx, createdUser.Email, createdUser.Name); err != nil {
		log.Warn(ctx, msgWelcomeEmailFailed, zap.Error(err))
	}

	return createdUser, token, nil
}

// Login аутентифицирует пользователя по email и паролю.
// Несуществующий email и неверный пароль дают одинаковый результат.
func (u *UserUseCaseImpl) Login(ctx context.Context, email, password string) (*entities.User, string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", email))
	log.Debug(ctx, msgLoginAttempt)

	cleanEmail, v := validation.Email(email)
	if v != nil {
		log.Debug(ctx, msgLoginNonExistent)
		return nil, "", fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	user, err := u.userRepo.FindByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, "", fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, "", fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := u.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, "", fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPassword, zap.String("userID", user.ID))
		return nil, "", fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	token, err := u.sessions.Issue(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", errCtxIssuingSession, err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	return user, token, nil
}

// UpdateProfile применяет частичное обновление профиля. Неизвестный ключ
// отклоняет весь запрос: ни одно поле не применяется частично.
func (u *UserUseCaseImpl) UpdateProfile(ctx context.Context, user *entities.User, fields map[string]any) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateProfile), zap.String("userID", user.ID))
	log.Debug(ctx, msgUpdatingProfile)

	var violations validation.Violations
	for key := range fields {
		if _, ok := profileUpdatableFields[key]; !ok {
			violations = append(violations, validation.Violation{Field: key, Message: "field is not updatable"})
		}
	}
	if len(violations) > 0 {
		log.Debug(ctx, msgInvalidProfile, zap.Error(violations))
		return nil, violations
	}

	updated := *user

	if raw, ok := fields["name"]; ok {
		name, sv := stringField("name", raw)
		if sv != nil {
			violations = append(violations, *sv)
		} else if clean, v := validation.Name(name); v != nil {
			violations = append(violations, *v)
		} else {
			updated.Name = clean
		}
	}

	if raw, ok := fields["email"]; ok {
		email, sv := stringField("email", raw)
		switch {
		case sv != nil:
			violations = append(violations, *sv)
		default:
			clean, v := validation.Email(email)
			if v != nil {
				violations = append(violations, *v)
			} else if clean != user.Email {
				existing, err := u.userRepo.FindByEmail(ctx, clean)
				if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
					log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
					return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
				}
				if existing != nil {
					violations = append(violations, validation.Violation{Field: "email", Message: "email is already registered"})
				} else {
					updated.Email = clean
				}
			}
		}
	}

	if raw, ok := fields["password"]; ok {
		password, sv := stringField("password", raw)
		if sv != nil {
			violations = append(violations, *sv)
		} else if clean, v := validation.Password(password); v != nil {
			violations = append(violations, *v)
		} else {
			hashed, err := u.passwordSvc.Hash(ctx, clean)
			if err != nil {
				log.Error(ctx, msgErrHashPassword, zap.Error(err))
				return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
			}
			updated.PasswordHash = hashed
		}
	}

	if raw, ok := fields["age"]; ok {
		age, sv := ageField(raw)
		if sv != nil {
			violations = append(violations, *sv)
		} else {
			updated.Age = age
		}
	}

	if len(violations) > 0 {
		log.Debug(ctx, msgInvalidProfile, zap.Error(violations))
		return nil, violations
	}

	saved, err := u.userRepo.Update(ctx, &updated)
	if err != nil {
		log.Error(ctx, msgErrUpdateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}

	log.Info(ctx, msgProfileUpdated)
	return saved, nil
}

// DeleteAccount удаляет пользователя вместе с его задачами.
// Каскад и удаление пользователя - два отдельных запроса без общей
// транзакции; задачи удаляются первыми, поэтому сбой между шагами не
// оставляет осиротевших задач.
func (u *UserUseCaseImpl) DeleteAccount(ctx context.Context, user *entities.User) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteAccount), zap.String("userID", user.ID))
	log.Debug(ctx, msgDeletingAccount)

	removed, err := u.taskRepo.DeleteAllForOwner(ctx, user.ID)
	if err != nil {
		log.Error(ctx, msgErrDeleteTasks, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxCascadingTasks, err)
	}
	log.Info(ctx, msgTasksCascaded, zap.Int64("removed_count", removed))

	if err := u.userRepo.Delete(ctx, user.ID); err != nil {
		log.Error(ctx, msgErrDeleteUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingUser, err)
	}

	if err := u.notifier.SendCancellation(ctx, user.Email, user.Name); err != nil {
		log.Warn(ctx, msgGoodbyeEmailFailed, zap.Error(err))
	}

	log.Info(ctx, msgAccountDeleted)
	return nil
}

// SetAvatar нормализует изображение и сохраняет его в профиле.
func (u *UserUseCaseImpl) SetAvatar(ctx context.Context, userID string, image []byte) error {
	log := logger.Log(ctx).With(zap.String("method", methodSetAvatar), zap.String("userID", userID))
	log.Debug(ctx, msgStoringAvatar)

	normalized, err := u.imageSvc.NormalizeAvatar(ctx, image)
	if err != nil {
		log.Debug(ctx, msgErrNormalizeAvatar, zap.Error(err))
		return validation.Violations{{Field: "avatar", Message: "unsupported or corrupt image"}}
	}

	if err := u.userRepo.UpdateAvatar(ctx, userID, normalized); err != nil {
		log.Error(ctx, msgErrStoreAvatar, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxStoringAvatar, err)
	}

	log.Info(ctx, msgAvatarStored)
	return nil
}

// DeleteAvatar очищает аватар пользователя.
func (u *UserUseCaseImpl) DeleteAvatar(ctx context.Context, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteAvatar), zap.String("userID", userID))

	if err := u.userRepo.UpdateAvatar(ctx, userID, nil); err != nil {
		log.Error(ctx, msgErrStoreAvatar, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxStoringAvatar, err)
	}

	log.Info(ctx, msgAvatarCleared)
	return nil
}

// GetAvatar возвращает PNG-байты аватара; доступен без аутентификации.
func (u *UserUseCaseImpl) GetAvatar(ctx context.Context, userID string) ([]byte, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetAvatar), zap.String("userID", userID))

	avatar, err := u.userRepo.GetAvatar(ctx, userID)
	if err != nil {
		log.Debug(ctx, errCtxFetchingAvatar, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingAvatar, err)
	}
	return avatar, nil
}

func emailTakenViolation() validation.Violations {
	return validation.Violations{{Field: "email", Message: "email is already registered"}}
}

// stringField извлекает строковое значение из JSON-поля.
func stringField(field string, raw any) (string, *validation.Violation) {
	s, ok := raw.(string)
	if !ok {
		return "", &validation.Violation{Field: field, Message: "must be a string"}
	}
	return s, nil
}

// ageField извлекает возраст из JSON-поля: число должно быть целым
// и неотрицательным. JSON-декодер отдает числа как float64.
func ageField(raw any) (*int, *validation.Violation) {
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return nil, &validation.Violation{Field: "age", Message: "age must be a non-negative integer"}
		}
		age := int(v)
		if violation := validation.Age(age); violation != nil {
			return nil, violation
		}
		return &age, nil
	case int:
		if violation := validation.Age(v); violation != nil {
			return nil, violation
		}
		age := v
		return &age, nil
	default:
		return nil, &validation.Violation{Field: "age", Message: "age must be a non-negative integer"}
	}
}
