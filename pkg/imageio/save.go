package imageio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/avern/go-cubemap/pkg/renderer"
)

// SaveFaces encodes each rendered face into dir as <face>.<format>,
// creating the directory if it does not exist.
func SaveFaces(dir string, faces []renderer.FaceImage, format Format) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("imageio: create output directory: %w", err)
	}

	for _, fi := range faces {
		path := filepath.Join(dir, fmt.Sprintf("%s.%s", fi.Face, format))
		if err := saveFace(path, fi, format); err != nil {
			return err
		}
	}
	return nil
}

func saveFace(path string, fi renderer.FaceImage, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", path, err)
	}

	if err := Encode(f, fi.Image, format); err != nil {
		f.Close()
		return fmt.Errorf("imageio: save %s face: %w", fi.Face, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("imageio: close %s: %w", path, err)
	}
	return nil
}
