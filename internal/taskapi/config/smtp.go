package config

// SMTPConfig содержит настройки отправки почтовых уведомлений.
// Пустой host отключает отправку: сервис использует noop-заглушку.
type SMTPConfig struct {
	Host     string `yaml:"host" env:"TASKAPI_SMTP_HOST" env-default:""`
	Port     int    `yaml:"port" env:"TASKAPI_SMTP_PORT" env-default:"587"`
	Username string `yaml:"username" env:"TASKAPI_SMTP_USERNAME" env-default:""`
	Password string `yaml:"password" env:"TASKAPI_SMTP_PASSWORD" env-default:""`
	From     string `yaml:"from" env:"TASKAPI_SMTP_FROM" env-default:"no-reply@taskhive.local"`
}

// Enabled сообщает, настроена ли отправка почты.
func (s *SMTPConfig) Enabled() bool {
	return s.Host != ""
}
