package services

import (
	"fmt"

	"taskhive/internal/taskapi/config"
	"taskhive/internal/taskapi/ports/services"
)

// ServiceFactory создает все внешние сервисы по конфигурации.
type ServiceFactory struct {
	passwordService services.PasswordService
	tokenService    services.TokenService
	imageService    services.ImageService
	notifier        services.Notifier
}

// NewServiceFactory создает новую фабрику сервисов.
func NewServiceFactory(cfg *config.Config) (*ServiceFactory, error) {
	notifier := NewNoopNotifier()
	if cfg.SMTP.Enabled() {
		mailNotifier, err := NewMail(&cfg.SMTP)
		if err != nil {
			return nil, fmt.Errorf("creating mail notifier: %w", err)
		}
		notifier = mailNotifier
	}

	return &ServiceFactory{
		passwordService: NewBcrypt(cfg.JWT.BCryptCost),
		tokenService:    NewJWT(cfg.JWT.SecretKey),
		imageService:    NewImaging(cfg.Avatar.SidePixels),
		notifier:        notifier,
	}, nil
}

// PasswordService возвращает сервис для работы с паролями.
func (f *ServiceFactory) PasswordService() services.PasswordService {
	return f.passwordService
}

// TokenService возвращает сервис для работы с токенами.
func (f *ServiceFactory) TokenService() services.TokenService {
	return f.tokenService
}

// ImageService возвращает сервис обработки изображений.
func (f *ServiceFactory) ImageService() services.ImageService {
	return f.imageService
}

// Notifier возвращает сервис почтовых уведомлений.
func (f *ServiceFactory) Notifier() services.Notifier {
	return f.notifier
}
