package imagingservice_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapters "taskhive/internal/taskapi/adapters/services"
)

func testImage(t *testing.T, width, height int, encode func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, encode(&buf, img))
	return buf.Bytes()
}

func encodePNG(buf *bytes.Buffer, img image.Image) error {
	return png.Encode(buf, img)
}

func encodeJPEG(buf *bytes.Buffer, img image.Image) error {
	return jpeg.Encode(buf, img, nil)
}

func TestNormalizeAvatar(t *testing.T) {
	ctx := context.Background()
	svc := adapters.NewImaging(250)

	t.Run("success - wide png normalized to square", func(t *testing.T) {
		source := testImage(t, 600, 300, encodePNG)

		normalized, err := svc.NormalizeAvatar(ctx, source)

		require.NoError(t, err)

		decoded, err := png.Decode(bytes.NewReader(normalized))
		require.NoError(t, err)
		bounds := decoded.Bounds()
		assert.Equal(t, 250, bounds.Dx())
		assert.Equal(t, 250, bounds.Dy())
	})

	t.Run("success - jpeg converted to png", func(t *testing.T) {
		source := testImage(t, 100, 400, encodeJPEG)

		normalized, err := svc.NormalizeAvatar(ctx, source)

		require.NoError(t, err)

		decoded, format, err := image.Decode(bytes.NewReader(normalized))
		require.NoError(t, err)
		assert.Equal(t, "png", format)
		assert.Equal(t, 250, decoded.Bounds().Dx())
		assert.Equal(t, 250, decoded.Bounds().Dy())
	})

	t.Run("error - garbage bytes rejected", func(t *testing.T) {
		_, err := svc.NormalizeAvatar(ctx, []byte("definitely not an image"))

		require.Error(t, err)
	})

	t.Run("error - empty input rejected", func(t *testing.T) {
		_, err := svc.NormalizeAvatar(ctx, nil)

		require.Error(t, err)
	})
}
