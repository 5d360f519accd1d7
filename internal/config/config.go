// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// SceneConfig holds the splat pipeline's tunable defaults (SPEC_FULL.md §A).
type SceneConfig struct {
	// Sigma is the soft-edge falloff exponent (§3, §6). The viewer passes it
	// to the render driver every frame; a scene's own Sigma field is not
	// consulted for rendering.
	Sigma float32 `yaml:"sigma"`

	// OpacityFloor is a floor for the sigmoid activation (SPEC_FULL.md
	// §C.1). The viewer does not read it: the demo scenes activate their
	// opacities with a floor of 0.
	OpacityFloor float32 `yaml:"opacity_floor"`

	// SortThrottleMS is a minimum interval between depth-sort dispatches,
	// in milliseconds (§4.D "Throttle"). The viewer does not read it: the
	// render driver throttles with the fixed splat.SortThrottleMS.
	SortThrottleMS int `yaml:"sort_throttle_ms"`

	// AnalyzerStride is a sampling stride (every Nth triangle) for the
	// diagnostic analyzer (§4.G). The viewer does not run the analyzer and
	// does not read this field.
	AnalyzerStride int `yaml:"analyzer_stride"`

	// UseDirectColors, when true, makes the viewer load the demo scene with
	// direct per-vertex RGB colors instead of SH coefficients, so no SH is
	// evaluated (SPEC_FULL.md §C.3).
	UseDirectColors bool `yaml:"use_direct_colors"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Scene: SceneConfig{
			Sigma:           1.0,
			OpacityFloor:    0.99,
			SortThrottleMS:  100,
			AnalyzerStride:  1,
			UseDirectColors: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
