package imgutil

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

// jpegQuality is fixed; the providers only need a rough thumbnail.
const jpegQuality = 75

// SampleSize returns the power-of-two factor an image of the given
// dimensions is divided by so that it fits the submission bounds. The
// factor doubles while half the source still covers both bounds, so the
// result is the smallest power of two for which one more doubling would
// drop below maxWidth or maxHeight.
func SampleSize(width, height, maxWidth, maxHeight int) int {
	sample := 1
	if height > maxHeight || width > maxWidth {
		halfWidth := width / 2
		halfHeight := height / 2
		for halfHeight/sample >= maxHeight && halfWidth/sample >= maxWidth {
			sample *= 2
		}
	}
	return sample
}

// Resize downscales an encoded image (JPEG, PNG or GIF) by the computed
// power-of-two factor and re-encodes it as JPEG. Bounds are decoded first
// so an oversized source is never interpolated at full resolution.
func Resize(data []byte, maxWidth, maxHeight int) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image bounds: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if sample := SampleSize(cfg.Width, cfg.Height, maxWidth, maxHeight); sample > 1 {
		img = resize.Resize(uint(cfg.Width/sample), uint(cfg.Height/sample), img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
