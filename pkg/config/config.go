// Package config handles converter configuration: built-in defaults,
// an optional YAML file, and CLI flag overrides.
package config

// Config holds all converter settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig holds the core conversion settings.
type RenderConfig struct {
	Size          int    `yaml:"size"`          // face edge length in pixels
	Interpolation string `yaml:"interpolation"` // nearest | linear
	Rotate        bool   `yaml:"rotate"`        // produce a z-up skybox
	Workers       int    `yaml:"workers"`       // 0 = one per CPU
}

// OutputConfig holds output placement settings.
type OutputConfig struct {
	Format string `yaml:"format"` // png | jpg | webp
	Bundle bool   `yaml:"bundle"` // also write skybox.tar.gz
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Size:          512,
			Interpolation: "linear",
			Rotate:        false,
			Workers:       0,
		},
		Output: OutputConfig{
			Format: "png",
			Bundle: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
