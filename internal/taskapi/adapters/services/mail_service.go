package services

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"taskhive/internal/taskapi/config"
	svc "taskhive/internal/taskapi/ports/services"
	"taskhive/pkg/logger"
)

const (
	welcomeSubject      = "Welcome to the app"
	cancellationSubject = "Sorry to see you go"

	welcomeBodyFmt      = "Welcome to the app, %s. Let me know how you get along with the app."
	cancellationBodyFmt = "Goodbye, %s. I hope to see you back sometime soon."

	errCtxBuildingMessage = "building mail message"
	errCtxSendingMessage  = "sending mail message"
)

// ServiceMail реализует интерфейс Notifier поверх SMTP.
type ServiceMail struct {
	client *mail.Client
	from   string
}

// NewMail создает новый почтовый сервис по настройкам SMTP.
func NewMail(cfg *config.SMTPConfig) (svc.Notifier, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating smtp client: %w", err)
	}

	return &ServiceMail{client: client, from: cfg.From}, nil
}

// SendWelcome отправляет приветственное письмо новому пользователю.
func (s *ServiceMail) SendWelcome(ctx context.Context, email, name string) error {
	return s.send(ctx, email, welcomeSubject, fmt.Sprintf(welcomeBodyFmt, name))
}

// SendCancellation отправляет прощальное письмо при удалении аккаунта.
func (s *ServiceMail) SendCancellation(ctx context.Context, email, name string) error {
	return s.send(ctx, email, cancellationSubject, fmt.Sprintf(cancellationBodyFmt, name))
}

func (s *ServiceMail) send(ctx context.Context, email, subject, body string) error {
	log := logger.Log(ctx).With(zap.String("method", "send"), zap.String("subject", subject))

	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("%s: %w", errCtxBuildingMessage, err)
	}
	if err := msg.To(email); err != nil {
		return fmt.Errorf("%s: %w", errCtxBuildingMessage, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%s: %w", errCtxSendingMessage, err)
	}

	log.Debug(ctx, "mail sent")
	return nil
}

// NoopNotifier используется, когда SMTP не настроен.
type NoopNotifier struct{}

// NewNoopNotifier создает заглушку почтовых уведомлений.
func NewNoopNotifier() svc.Notifier {
	return &NoopNotifier{}
}

// SendWelcome ничего не отправляет.
func (n *NoopNotifier) SendWelcome(_ context.Context, _, _ string) error { return nil }

// SendCancellation ничего не отправляет.
func (n *NoopNotifier) SendCancellation(_ context.Context, _, _ string) error { return nil }
