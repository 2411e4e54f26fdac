package texture

import (
	"fmt"
	"image/color"
	"math"
)

// Mode selects the interpolation used when sampling the panorama.
type Mode uint8

const (
	// ModeNearest selects the closest pixel (no interpolation).
	ModeNearest Mode = iota

	// ModeLinear blends the four neighboring pixels with bilinear weights.
	ModeLinear
)

// String returns the flag spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNearest:
		return "nearest"
	case ModeLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// ParseMode converts a flag or config value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "nearest":
		return ModeNearest, nil
	case "linear", "bilinear":
		return ModeLinear, nil
	default:
		return ModeNearest, fmt.Errorf("texture: unknown interpolation %q (want nearest or linear)", s)
	}
}

// SampleFunc samples a texture at normalized coordinates (u, v).
type SampleFunc func(img *Image, u, v float64) color.RGBA

// Sampler returns the sampling function for a mode, so the per-pixel
// loop can bind the mode once instead of branching per sample.
func Sampler(mode Mode) SampleFunc {
	if mode == ModeLinear {
		return SampleLinear
	}
	return SampleNearest
}

// Sample samples img at (u, v) with the given mode. u is periodic and
// wraps across the panorama seam; v is clamped at the poles.
func Sample(img *Image, u, v float64, mode Mode) color.RGBA {
	return Sampler(mode)(img, u, v)
}

// SampleNearest returns the pixel containing (u, v).
func SampleNearest(img *Image, u, v float64) color.RGBA {
	x := wrapX(int(math.Floor(u*float64(img.Width))), img.Width)
	y := clampY(int(math.Floor(v*float64(img.Height))), img.Height)
	return img.RGBAAt(x, y)
}

// SampleLinear blends the four pixels surrounding (u, v) with bilinear
// weights. Columns wrap so the seam samples blend across the u=0/1
// boundary; rows clamp so the poles never read out of bounds. Channels
// are interpolated independently, linear in the stored encoding.
func SampleLinear(img *Image, u, v float64) color.RGBA {
	fx := u*float64(img.Width) - 0.5
	fy := v*float64(img.Height) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x0w := wrapX(x0, img.Width)
	x1w := wrapX(x0+1, img.Width)
	y0c := clampY(y0, img.Height)
	y1c := clampY(y0+1, img.Height)

	c00 := img.RGBAAt(x0w, y0c)
	c10 := img.RGBAAt(x1w, y0c)
	c01 := img.RGBAAt(x0w, y1c)
	c11 := img.RGBAAt(x1w, y1c)

	return color.RGBA{
		R: lerp2D(c00.R, c10.R, c01.R, c11.R, tx, ty),
		G: lerp2D(c00.G, c10.G, c01.G, c11.G, tx, ty),
		B: lerp2D(c00.B, c10.B, c01.B, c11.B, tx, ty),
		A: lerp2D(c00.A, c10.A, c01.A, c11.A, tx, ty),
	}
}

// lerp2D performs bilinear interpolation between 4 channel values.
func lerp2D(v00, v10, v01, v11 uint8, tx, ty float64) uint8 {
	top := float64(v00) + (float64(v10)-float64(v00))*tx
	bottom := float64(v01) + (float64(v11)-float64(v01))*tx
	return uint8(top + (bottom-top)*ty + 0.5)
}

// wrapX wraps a column index modulo the panorama width, handling the
// negative indices produced just left of the seam.
func wrapX(x, width int) int {
	x %= width
	if x < 0 {
		x += width
	}
	return x
}

// clampY clamps a row index to the valid range.
func clampY(y, height int) int {
	if y < 0 {
		return 0
	}
	if y >= height {
		return height - 1
	}
	return y
}
