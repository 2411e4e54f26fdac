package renderer

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/avern/go-cubemap/pkg/cubemap"
	"github.com/avern/go-cubemap/pkg/texture"
)

// testPanorama builds a 4x2 source where every pixel has a distinct color.
func testPanorama() *texture.Image {
	img := texture.NewImage(4, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(50 * x), G: uint8(200 * y), B: uint8(10*x + y), A: 255})
		}
	}
	return img
}

func TestRenderRejectsInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1, -512} {
		r := NewRenderer(testPanorama(), Options{Size: size})
		faces, err := r.Render(context.Background())

		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("Size %d: expected ErrInvalidSize, got %v", size, err)
		}
		if faces != nil {
			t.Errorf("Size %d: expected no faces on error, got %d", size, len(faces))
		}
	}
}

func TestRenderRejectsEmptySource(t *testing.T) {
	for _, src := range []*texture.Image{nil, texture.NewImage(0, 2), texture.NewImage(4, 0)} {
		r := NewRenderer(src, Options{Size: 4})
		if _, err := r.Render(context.Background()); !errors.Is(err, ErrEmptySource) {
			t.Errorf("Expected ErrEmptySource, got %v", err)
		}
	}
}

func TestRenderCoverage(t *testing.T) {
	// Face buffers start fully transparent; an opaque source must leave
	// every pixel of every face written with full alpha.
	src := testPanorama()
	r := NewRenderer(src, Options{Size: 8, Mode: texture.ModeLinear})

	faces, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(faces) != 6 {
		t.Fatalf("Expected 6 faces, got %d", len(faces))
	}

	for i, fi := range faces {
		if fi.Face != cubemap.Faces[i] {
			t.Errorf("Face %d out of order: expected %v, got %v", i, cubemap.Faces[i], fi.Face)
		}
		bounds := fi.Image.Bounds()
		if bounds.Dx() != 8 || bounds.Dy() != 8 {
			t.Errorf("Face %v: expected 8x8 buffer, got %dx%d", fi.Face, bounds.Dx(), bounds.Dy())
		}
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				if fi.Image.RGBAAt(x, y).A != 255 {
					t.Fatalf("Face %v pixel (%d,%d) was never written", fi.Face, x, y)
				}
			}
		}
	}
}

// TestRenderRegression4x2 pins the full output grid for a 4x2 source at
// size 2 with nearest sampling. Expected source pixels follow from the
// face basis table and the projection formula.
func TestRenderRegression4x2(t *testing.T) {
	src := testPanorama()
	r := NewRenderer(src, Options{Size: 2, Mode: texture.ModeNearest})

	faces, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// expected[face] lists source (col, row) per face pixel, scanning
	// left-to-right, top-to-bottom.
	expected := map[cubemap.Face][4][2]int{
		cubemap.FacePosX: {{3, 0}, {2, 0}, {3, 1}, {2, 1}},
		cubemap.FaceNegX: {{1, 0}, {0, 0}, {1, 1}, {0, 1}},
		cubemap.FacePosY: {{1, 0}, {2, 0}, {0, 0}, {3, 0}},
		cubemap.FaceNegY: {{0, 1}, {3, 1}, {1, 1}, {2, 1}},
		cubemap.FacePosZ: {{0, 0}, {3, 0}, {0, 1}, {3, 1}},
		cubemap.FaceNegZ: {{2, 0}, {1, 0}, {2, 1}, {1, 1}},
	}

	for _, fi := range faces {
		want := expected[fi.Face]
		for i, srcPix := range want {
			x, y := i%2, i/2
			wantColor := src.RGBAAt(srcPix[0], srcPix[1])
			gotColor := fi.Image.RGBAAt(x, y)
			if gotColor != wantColor {
				t.Errorf("Face %v pixel (%d,%d): expected source (%d,%d) = %v, got %v",
					fi.Face, x, y, srcPix[0], srcPix[1], wantColor, gotColor)
			}
		}
	}
}

func TestRenderIdempotent(t *testing.T) {
	src := testPanorama()
	opts := Options{Size: 16, Mode: texture.ModeLinear, ZUp: true, NumWorkers: 3}

	first, err := NewRenderer(src, opts).Render(context.Background())
	if err != nil {
		t.Fatalf("First render failed: %v", err)
	}
	second, err := NewRenderer(src, opts).Render(context.Background())
	if err != nil {
		t.Fatalf("Second render failed: %v", err)
	}

	for i := range first {
		if !bytes.Equal(first[i].Image.Pix, second[i].Image.Pix) {
			t.Errorf("Face %v differs between identical runs", first[i].Face)
		}
	}
}

func TestRenderZUpPermutesColors(t *testing.T) {
	// The z-up rotation only permutes which source region lands on which
	// face position; the multiset of sampled colors is unchanged.
	src := testPanorama()

	plain, err := NewRenderer(src, Options{Size: 2, Mode: texture.ModeNearest}).Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	rotated, err := NewRenderer(src, Options{Size: 2, Mode: texture.ModeNearest, ZUp: true}).Render(context.Background())
	if err != nil {
		t.Fatalf("Rotated render failed: %v", err)
	}

	count := func(faces []FaceImage) map[color.RGBA]int {
		counts := make(map[color.RGBA]int)
		for _, fi := range faces {
			for y := 0; y < 2; y++ {
				for x := 0; x < 2; x++ {
					counts[fi.Image.RGBAAt(x, y)]++
				}
			}
		}
		return counts
	}

	plainCounts, rotatedCounts := count(plain), count(rotated)
	if len(plainCounts) != len(rotatedCounts) {
		t.Fatalf("Color multisets differ: %v vs %v", plainCounts, rotatedCounts)
	}
	for c, n := range plainCounts {
		if rotatedCounts[c] != n {
			t.Errorf("Color %v: %d occurrences plain, %d rotated", c, n, rotatedCounts[c])
		}
	}
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRenderer(testPanorama(), Options{Size: 64})
	if _, err := r.Render(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestRenderFaceDoneCallback(t *testing.T) {
	var order []cubemap.Face
	var counts []int

	opts := Options{
		Size: 4,
		OnFaceDone: func(face cubemap.Face, done int) {
			order = append(order, face)
			counts = append(counts, done)
		},
	}
	if _, err := NewRenderer(testPanorama(), opts).Render(context.Background()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if len(order) != 6 {
		t.Fatalf("Expected 6 completion callbacks, got %d", len(order))
	}
	seen := make(map[cubemap.Face]bool)
	for i, face := range order {
		if seen[face] {
			t.Errorf("Face %v completed twice", face)
		}
		seen[face] = true
		if counts[i] != i+1 {
			t.Errorf("Callback %d: expected done=%d, got %d", i, i+1, counts[i])
		}
	}
}
