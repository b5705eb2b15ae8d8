package config

// JWTConfig содержит настройки подписи токенов сессий.
// Токены не имеют срока действия: единственный способ инвалидации -
// явный отзыв через logout.
type JWTConfig struct {
	SecretKey  string `yaml:"secret_key" env:"TASKAPI_JWT_SECRET_KEY" env-default:"super-secret-key-change-me-in-production"`
	BCryptCost int    `yaml:"bcrypt_cost" env:"TASKAPI_BCRYPT_COST" env-default:"10"`
}
