// Package config handles renderer configuration loading and saving.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/renderer"
)

// Config holds all command-line renderer settings.
type Config struct {
	Scene   SceneConfig   `yaml:"scene"`
	Render  RenderConfig  `yaml:"render"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// SceneConfig selects the scene and the frame layout.
type SceneConfig struct {
	Name     string `yaml:"name"`      // Preset name or path to a YAML scene file
	Dir      string `yaml:"dir"`       // Directory searched when listing scene files
	Width    int    `yaml:"width"`     // 0 keeps the scene camera's width
	Height   int    `yaml:"height"`    // 0 derives it from the aspect ratio
	Workers  int    `yaml:"workers"`   // 0 uses every CPU
	TileSize int    `yaml:"tile_size"` // Edge of the square work items
	Mode     string `yaml:"mode"`      // Debug visualization, empty for shaded
}

// RenderConfig overrides the scene's own render options. Unset fields keep
// whatever the scene specifies.
type RenderConfig struct {
	SamplesPerPixel *int     `yaml:"samples_per_pixel,omitempty"`
	MaxBounces      *int     `yaml:"max_bounces,omitempty"`
	LightSamples    *int     `yaml:"light_samples,omitempty"`
	Jitter          *bool    `yaml:"jitter,omitempty"`
	Seed            *uint64  `yaml:"seed,omitempty"`
	KMin            *float64 `yaml:"k_min,omitempty"`
}

// OutputConfig controls where and how the image is written.
type OutputConfig struct {
	Dir    string  `yaml:"dir"`    // Root for timestamped renders
	Path   string  `yaml:"path"`   // Explicit file path, overrides Dir
	Format string  `yaml:"format"` // png, bmp or tiff
	Gamma  float64 `yaml:"gamma"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`    // debug, info, warn, error
	LogFile string `yaml:"log_file"` // Optional rotating log file
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Scene: SceneConfig{
			Name:     "default",
			Dir:      "scenes",
			TileSize: 64,
		},
		Output: OutputConfig{
			Dir:    "output",
			Format: "png",
			Gamma:  renderer.DefaultGamma,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var err error
	if c.Scene.Name == "" {
		err = multierr.Append(err, fmt.Errorf("scene name is empty"))
	}
	if c.Scene.Width < 0 || c.Scene.Height < 0 {
		err = multierr.Append(err, fmt.Errorf("negative image size %dx%d", c.Scene.Width, c.Scene.Height))
	}
	if c.Scene.Workers < 0 {
		err = multierr.Append(err, fmt.Errorf("negative worker count %d", c.Scene.Workers))
	}
	if c.Scene.TileSize < 0 {
		err = multierr.Append(err, fmt.Errorf("negative tile size %d", c.Scene.TileSize))
	}
	if _, modeErr := renderer.ParseMode(c.Scene.Mode); modeErr != nil {
		err = multierr.Append(err, modeErr)
	}
	if c.Render.SamplesPerPixel != nil && *c.Render.SamplesPerPixel < 1 {
		err = multierr.Append(err, fmt.Errorf("samples_per_pixel must be at least 1, got %d", *c.Render.SamplesPerPixel))
	}
	if c.Render.MaxBounces != nil && (*c.Render.MaxBounces < 0 || *c.Render.MaxBounces > core.MaxBounceLimit) {
		err = multierr.Append(err, fmt.Errorf("max_bounces %d is outside [0, %d]", *c.Render.MaxBounces, core.MaxBounceLimit))
	}
	switch c.Output.Format {
	case "png", "bmp", "tiff":
	default:
		err = multierr.Append(err, fmt.Errorf("unsupported output format %q", c.Output.Format))
	}
	if c.Output.Gamma <= 0 {
		err = multierr.Append(err, fmt.Errorf("gamma must be positive, got %g", c.Output.Gamma))
	}
	if _, lvlErr := zapcore.ParseLevel(c.Logging.Level); lvlErr != nil {
		err = multierr.Append(err, lvlErr)
	}
	return err
}

// Apply overlays the configured overrides on a scene's render options
func (r RenderConfig) Apply(options core.RenderOptions) core.RenderOptions {
	if r.SamplesPerPixel != nil {
		options.SamplesPerPixel = *r.SamplesPerPixel
	}
	if r.MaxBounces != nil {
		options.MaxBounces = *r.MaxBounces
	}
	if r.LightSamples != nil {
		options.LightSamples = *r.LightSamples
	}
	if r.Jitter != nil {
		options.Jitter = *r.Jitter
	}
	if r.Seed != nil {
		options.Seed = *r.Seed
	}
	if r.KMin != nil {
		options.KMin = *r.KMin
	}
	return options
}

// RendererConfig converts the scene section into a renderer.Config
func (c *Config) RendererConfig() renderer.Config {
	return renderer.Config{
		Width:      c.Scene.Width,
		Height:     c.Scene.Height,
		TileSize:   c.Scene.TileSize,
		NumWorkers: c.Scene.Workers,
		Mode:       renderer.Mode(c.Scene.Mode),
	}
}

// OutputPath returns the file the render is written to: the explicit path
// when set, otherwise <dir>/<scene>/render_<timestamp>.<format>.
func (c *Config) OutputPath(sceneName string, now time.Time) string {
	if c.Output.Path != "" {
		return c.Output.Path
	}
	name := sceneName
	if name == "" {
		name = "scene"
	}
	// Scene files are referenced by path; only the base name goes in the tree
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	filename := fmt.Sprintf("render_%s.%s", now.Format("20060102_150405"), c.Output.Format)
	return filepath.Join(c.Output.Dir, name, filename)
}
