package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagSize    = flag.Int("size", 0, "Size (px) of the output faces, width = height")
	flagInterp  = flag.String("interpolation", "", "Interpolation used when sampling the source image (nearest|linear)")
	flagFormat  = flag.String("format", "", "Image format of the output faces (png|jpg|webp)")
	flagRotate  = flag.Bool("rotate", false, "Rotate to a z-up skybox for use in z-up renderers")
	flagWorkers = flag.Int("workers", 0, "Number of render workers (0 = one per CPU)")
	flagBundle  = flag.Bool("bundle", false, "Also write the faces as a single skybox.tar.gz")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the positional arguments left after flag parsing:
// the input panorama path and the output directory.
func Args() []string {
	return flag.Args()
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagSize > 0 {
		cfg.Render.Size = *flagSize
	}
	if *flagInterp != "" {
		cfg.Render.Interpolation = *flagInterp
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
	if *flagRotate {
		cfg.Render.Rotate = true
	}
	if *flagWorkers > 0 {
		cfg.Render.Workers = *flagWorkers
	}
	if *flagBundle {
		cfg.Output.Bundle = true
	}
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
}
