// Command go-cubemap converts an equirectangular panorama into the six
// square faces of a skybox cubemap.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/avern/go-cubemap/pkg/config"
	"github.com/avern/go-cubemap/pkg/imageio"
	"github.com/avern/go-cubemap/pkg/logger"
	"github.com/avern/go-cubemap/pkg/renderer"
	"github.com/avern/go-cubemap/pkg/texture"
)

func usage() {
	fmt.Println("Equirectangular to cubemap converter")
	fmt.Println("Usage: go-cubemap [options] <input> <outdir>")
	fmt.Println()
	fmt.Println("  <input>   path to the equirectangular panorama (png, jpg, webp, bmp, tiff)")
	fmt.Println("  <outdir>  directory for the six face images, created if absent")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Faces are written as right/left/top/bottom/front/back.<format>.")
}

// buildOptions validates the configuration and turns it into renderer
// options plus the chosen output format.
func buildOptions(cfg *config.Config) (renderer.Options, imageio.Format, error) {
	mode, err := texture.ParseMode(cfg.Render.Interpolation)
	if err != nil {
		return renderer.Options{}, 0, err
	}
	format, err := imageio.ParseFormat(cfg.Output.Format)
	if err != nil {
		return renderer.Options{}, 0, err
	}
	if cfg.Render.Size < 1 {
		return renderer.Options{}, 0, fmt.Errorf("%w (got %d)", renderer.ErrInvalidSize, cfg.Render.Size)
	}

	opts := renderer.Options{
		Size:       cfg.Render.Size,
		Mode:       mode,
		ZUp:        cfg.Render.Rotate,
		NumWorkers: cfg.Render.Workers,
	}
	return opts, format, nil
}

func main() {
	flag.Usage = usage
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	args := config.Args()
	if len(args) != 2 {
		usage()
		os.Exit(2)
	}
	input, outDir := args[0], args[1]

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	opts, format, err := buildOptions(cfg)
	if err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		os.Exit(1)
	}
	opts.Logger = logger.Log

	src, err := imageio.Load(input)
	if err != nil {
		logger.Error("failed to load panorama", zap.String("path", input), zap.Error(err))
		os.Exit(1)
	}
	if err := imageio.CheckAspect(src); err != nil {
		logger.Warn("unusual input aspect, output may be distorted", zap.Error(err))
	}

	start := time.Now()
	faces, err := renderer.NewRenderer(src, opts).Render(context.Background())
	if err != nil {
		logger.Error("conversion failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("convert", zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	if err := imageio.SaveFaces(outDir, faces, format); err != nil {
		logger.Error("failed to save faces", zap.Error(err))
		os.Exit(1)
	}
	if cfg.Output.Bundle {
		bundlePath := filepath.Join(outDir, "skybox.tar.gz")
		if err := imageio.WriteBundle(bundlePath, faces, format); err != nil {
			logger.Error("failed to write bundle", zap.Error(err))
			os.Exit(1)
		}
	}
	logger.Info("save", zap.Duration("elapsed", time.Since(start)))

	logger.Info("generated images saved", zap.String("dir", outDir))
}
