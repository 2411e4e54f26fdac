// Package renderer converts an equirectangular panorama into the six
// faces of a cubemap, distributing scanlines across a worker pool.
package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/avern/go-cubemap/pkg/cubemap"
	"github.com/avern/go-cubemap/pkg/texture"
)

// Error kinds reported before any pixel work starts. Configuration
// problems and bad inputs stay distinguishable for callers.
var (
	// ErrInvalidSize is returned when the requested face size is not positive.
	ErrInvalidSize = errors.New("renderer: face size must be positive")

	// ErrEmptySource is returned when the source panorama has no pixels.
	ErrEmptySource = errors.New("renderer: source image is empty")
)

// Options configures a conversion run.
type Options struct {
	Size       int          // edge length of each face in pixels
	Mode       texture.Mode // sampling interpolation
	ZUp        bool         // rotate directions for z-up renderers
	NumWorkers int          // 0 or negative selects the CPU count

	// OnFaceDone, when set, is invoked from the collection goroutine
	// after each face is fully populated. done counts completed faces.
	OnFaceDone func(face cubemap.Face, done int)

	// Logger receives per-run debug output. nil disables logging.
	Logger *zap.Logger
}

// FaceImage pairs a fully rendered face buffer with its identifier.
type FaceImage struct {
	Face  cubemap.Face
	Image *image.RGBA
}

// Renderer converts one source panorama. A Renderer is cheap; create
// one per conversion.
type Renderer struct {
	src    *texture.Image
	opts   Options
	sample texture.SampleFunc
	logger *zap.Logger
}

// NewRenderer creates a renderer for the given source and options.
func NewRenderer(src *texture.Image, opts Options) *Renderer {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Renderer{
		src:    src,
		opts:   opts,
		sample: texture.Sampler(opts.Mode),
		logger: logger,
	}
}

// Render produces the six cube faces in the fixed face order. Buffers
// are preallocated and every pixel is written exactly once; no partial
// faces are exposed on error. Cancellation is honored between scanline
// units, never inside one.
func (r *Renderer) Render(ctx context.Context) ([]FaceImage, error) {
	if r.opts.Size < 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidSize, r.opts.Size)
	}
	if r.src.Empty() {
		return nil, ErrEmptySource
	}

	size := r.opts.Size
	faces := make([]FaceImage, len(cubemap.Faces))
	for i, face := range cubemap.Faces {
		faces[i] = FaceImage{
			Face:  face,
			Image: image.NewRGBA(image.Rect(0, 0, size, size)),
		}
	}

	r.logger.Debug("starting conversion",
		zap.Int("size", size),
		zap.Stringer("interpolation", r.opts.Mode),
		zap.Bool("zup", r.opts.ZUp),
		zap.Int("source_width", r.src.Width),
		zap.Int("source_height", r.src.Height),
	)

	pool := newWorkerPool(r, r.opts.NumWorkers)
	pool.start(ctx)

	go func() {
		for _, fi := range faces {
			for y := 0; y < size; y++ {
				pool.submit(scanTask{face: fi.Face, img: fi.Image, y: y})
			}
		}
		pool.closeTasks()
	}()

	// Collect one result per scanline; remaining counts drive the
	// per-face completion callback.
	remaining := make(map[cubemap.Face]int, len(faces))
	for _, fi := range faces {
		remaining[fi.Face] = size
	}

	var firstErr error
	facesDone := 0
	for i := 0; i < len(faces)*size; i++ {
		res := pool.result()
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		remaining[res.face]--
		if remaining[res.face] == 0 {
			facesDone++
			r.logger.Debug("face complete", zap.Stringer("face", res.face))
			if r.opts.OnFaceDone != nil {
				r.opts.OnFaceDone(res.face, facesDone)
			}
		}
	}
	pool.wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return faces, nil
}

// renderScanline fills row y of one face buffer. Rows of distinct tasks
// never overlap, so workers write without locks.
func (r *Renderer) renderScanline(face cubemap.Face, img *image.RGBA, y int) {
	size := r.opts.Size
	for x := 0; x < size; x++ {
		dir := face.Direction(x, y, size)
		if r.opts.ZUp {
			dir = cubemap.RotateZUp(dir)
		}
		u, v := cubemap.Project(dir)
		img.SetRGBA(x, y, r.sample(r.src, u, v))
	}
}
