package imageio

import (
	"archive/tar"
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/avern/go-cubemap/pkg/renderer"
)

// WriteBundle writes the six encoded faces into a single gzipped tar
// archive at path, one entry per face named <face>.<format>. Useful for
// shipping a skybox as one artifact.
func WriteBundle(path string, faces []renderer.FaceImage, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create bundle: %w", err)
	}

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	now := time.Now()

	for _, fi := range faces {
		var buf bytes.Buffer
		if err := Encode(&buf, fi.Image, format); err != nil {
			f.Close()
			return fmt.Errorf("imageio: bundle %s face: %w", fi.Face, err)
		}

		hdr := &tar.Header{
			Name:    fmt.Sprintf("%s.%s", fi.Face, format),
			Mode:    0644,
			Size:    int64(buf.Len()),
			ModTime: now,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			f.Close()
			return fmt.Errorf("imageio: bundle header: %w", err)
		}
		if _, err := tw.Write(buf.Bytes()); err != nil {
			f.Close()
			return fmt.Errorf("imageio: bundle write: %w", err)
		}
	}

	if err := tw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("imageio: finish tar: %w", err)
	}
	if err := gz.Close(); err != nil {
		f.Close()
		return fmt.Errorf("imageio: finish gzip: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("imageio: close bundle: %w", err)
	}
	return nil
}
