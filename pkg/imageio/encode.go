package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

// ErrUnsupportedFormat is returned for output formats the encoder does
// not know.
var ErrUnsupportedFormat = errors.New("imageio: unsupported output format")

// Lossy encoders run at quality 90; skybox faces show compression
// artifacts badly once mapped onto geometry.
const (
	jpegQuality = 90
	webpQuality = 90
)

// Format selects the encoding of the output faces.
type Format uint8

const (
	FormatPNG Format = iota
	FormatJPG
	FormatWebP
)

// String returns the format name, which doubles as the file extension.
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPG:
		return "jpg"
	case FormatWebP:
		return "webp"
	default:
		return "unknown"
	}
}

// ParseFormat converts a flag or config value into a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPG, nil
	case "webp":
		return FormatWebP, nil
	default:
		return FormatPNG, fmt.Errorf("%w: %q (want png, jpg or webp)", ErrUnsupportedFormat, s)
	}
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("imageio: encode png: %w", err)
		}
	case FormatJPG:
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return fmt.Errorf("imageio: encode jpg: %w", err)
		}
	case FormatWebP:
		opts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, webpQuality)
		if err != nil {
			return fmt.Errorf("imageio: webp encoder options: %w", err)
		}
		if err := webp.Encode(w, img, opts); err != nil {
			return fmt.Errorf("imageio: encode webp: %w", err)
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedFormat, format)
	}
	return nil
}
