package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	svc "taskhive/internal/taskapi/ports/services"
	"taskhive/pkg/logger"
)

const (
	errCtxDecodingImage = "decoding image"
	errCtxEncodingImage = "encoding image"
)

// ServiceImaging реализует интерфейс ImageService.
// Любое поддерживаемое изображение приводится к квадратному PNG
// заданной стороны: обрезка по центру, фильтр Ланцоша.
type ServiceImaging struct {
	sidePixels int
}

// NewImaging создает новый экземпляр сервиса обработки изображений.
func NewImaging(sidePixels int) svc.ImageService {
	return &ServiceImaging{sidePixels: sidePixels}
}

// NormalizeAvatar приводит изображение к квадратному PNG фиксированного размера.
func (s *ServiceImaging) NormalizeAvatar(ctx context.Context, data []byte) ([]byte, error) {
	log := logger.Log(ctx).With(zap.String("method", "NormalizeAvatar"))

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		log.Debug(ctx, "failed to decode image", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxDecodingImage, err)
	}

	normalized := imaging.Fill(img, s.sidePixels, s.sidePixels, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, normalized, imaging.PNG); err != nil {
		log.Error(ctx, "failed to encode image", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxEncodingImage, err)
	}

	return buf.Bytes(), nil
}
