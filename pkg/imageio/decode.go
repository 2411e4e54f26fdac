// Package imageio handles the file I/O around the conversion core:
// panorama decoding, cube-face encoding, and output placement.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	// Register the decoders panoramas commonly ship in. PNG and JPEG
	// come in via the encoders in encode.go.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/avern/go-cubemap/pkg/texture"
)

// ErrNotPanorama is returned by CheckAspect when the input is not a 2:1
// equirectangular image. Callers may treat it as a warning; the
// projection stays well-defined for any aspect.
var ErrNotPanorama = errors.New("imageio: input is not a 2:1 equirectangular image")

// Load reads and decodes the panorama at path into a sampling texture.
func Load(path string) (*texture.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: open input: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode decodes a panorama from r, auto-detecting the format.
func Decode(r io.Reader) (*texture.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode input: %w", err)
	}
	return texture.FromImage(img), nil
}

// CheckAspect reports ErrNotPanorama when the source is not exactly
// twice as wide as it is tall.
func CheckAspect(src *texture.Image) error {
	if src.Width != 2*src.Height {
		return fmt.Errorf("%w (%dx%d)", ErrNotPanorama, src.Width, src.Height)
	}
	return nil
}
