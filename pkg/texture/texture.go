// Package texture provides read-only access to decoded panorama pixels
// and the interpolated sampling used during face rendering.
package texture

import (
	"image"
	"image/color"
	"image/draw"
)

// Image is an immutable grid of RGBA pixels. Pixels are stored row-major,
// four bytes per pixel, matching the layout of image.RGBA.
type Image struct {
	Width  int
	Height int
	Pix    []uint8
}

// FromImage copies a decoded image into a texture Image, converting
// whatever pixel format the decoder produced into 8-bit RGBA.
func FromImage(img image.Image) *Image {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return &Image{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pix:    rgba.Pix,
	}
}

// NewImage creates an all-transparent texture of the given dimensions.
// Intended for tests and programmatic sources.
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, 4*width*height),
	}
}

// SetRGBA writes the pixel at (x, y). Only used when building sources
// programmatically; rendered output never writes back into a texture.
func (t *Image) SetRGBA(x, y int, c color.RGBA) {
	i := 4 * (y*t.Width + x)
	t.Pix[i+0] = c.R
	t.Pix[i+1] = c.G
	t.Pix[i+2] = c.B
	t.Pix[i+3] = c.A
}

// RGBAAt returns the pixel at (x, y). Callers must keep x in [0, Width)
// and y in [0, Height); the sampler's wrap and clamp guarantee that.
func (t *Image) RGBAAt(x, y int) color.RGBA {
	i := 4 * (y*t.Width + x)
	return color.RGBA{R: t.Pix[i+0], G: t.Pix[i+1], B: t.Pix[i+2], A: t.Pix[i+3]}
}

// Empty reports whether the texture has no pixels to sample.
func (t *Image) Empty() bool {
	return t == nil || t.Width < 1 || t.Height < 1
}
