package main

import (
	"errors"
	"testing"

	"github.com/avern/go-cubemap/pkg/config"
	"github.com/avern/go-cubemap/pkg/imageio"
	"github.com/avern/go-cubemap/pkg/renderer"
	"github.com/avern/go-cubemap/pkg/texture"
)

func TestBuildOptionsValid(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Size = 256
	cfg.Render.Interpolation = "nearest"
	cfg.Render.Rotate = true
	cfg.Render.Workers = 2
	cfg.Output.Format = "webp"

	opts, format, err := buildOptions(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if opts.Size != 256 {
		t.Errorf("expected size 256, got %d", opts.Size)
	}
	if opts.Mode != texture.ModeNearest {
		t.Errorf("expected nearest mode, got %v", opts.Mode)
	}
	if !opts.ZUp {
		t.Error("expected z-up rotation to be enabled")
	}
	if opts.NumWorkers != 2 {
		t.Errorf("expected 2 workers, got %d", opts.NumWorkers)
	}
	if format != imageio.FormatWebP {
		t.Errorf("expected webp format, got %v", format)
	}
}

func TestBuildOptionsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*config.Config)
		sentinel error // nil means any error is acceptable
	}{
		{"unknown interpolation", func(cfg *config.Config) { cfg.Render.Interpolation = "cubic" }, nil},
		{"unknown format", func(cfg *config.Config) { cfg.Output.Format = "gif" }, imageio.ErrUnsupportedFormat},
		{"zero size", func(cfg *config.Config) { cfg.Render.Size = 0 }, renderer.ErrInvalidSize},
		{"negative size", func(cfg *config.Config) { cfg.Render.Size = -4 }, renderer.ErrInvalidSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)

			if _, _, err := buildOptions(cfg); err == nil {
				t.Error("expected error, got none")
			} else if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("expected %v, got %v", tt.sentinel, err)
			}
		})
	}
}
