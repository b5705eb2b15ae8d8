package config

// AvatarConfig содержит ограничения загрузки аватаров.
type AvatarConfig struct {
	MaxSizeBytes int64 `yaml:"max_size_bytes" env:"TASKAPI_AVATAR_MAX_SIZE_BYTES" env-default:"1048576"`
	SidePixels   int   `yaml:"side_pixels" env:"TASKAPI_AVATAR_SIDE_PIXELS" env-default:"250"`
}
