// Package raster decodes raster icon files and scales them to a requested
// pixel size. It backs the engine's Rasterizer collaborator.
package raster

import (
	"bytes"
	"image"
	_ "image/png"

	"github.com/nfnt/resize"
)

// Codec is a stateless decode/scale implementation. Decoding covers the
// raster formats icon themes actually ship (PNG); scaling uses Lanczos
// resampling.
type Codec struct{}

func New() Codec { return Codec{} }

// Decode turns raw icon file bytes into an in-memory bitmap.
func (Codec) Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// Scale renders img at size x size pixels. Icon sources are square, so the
// target is square too; a non-positive size returns the source unchanged.
func (Codec) Scale(img image.Image, size int) image.Image {
	if size <= 0 {
		return img
	}
	return resize.Resize(uint(size), uint(size), img, resize.Lanczos3)
}
