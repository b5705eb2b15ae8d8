package services

import "context"

// ImageService определяет интерфейс нормализации загружаемых изображений.
type ImageService interface {
	// NormalizeAvatar приводит изображение к квадратному PNG фиксированного размера.
	NormalizeAvatar(ctx context.Context, data []byte) ([]byte, error)
}
