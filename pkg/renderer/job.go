package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

// Config controls how a frame is produced, independent of the scene
type Config struct {
	Width      int  // Image width; 0 keeps the scene camera's width
	Height     int  // Image height; 0 derives it from the camera aspect ratio
	TileSize   int  // Edge of the square work items (64 when 0)
	NumWorkers int  // Parallel workers (CPU count when 0)
	Mode       Mode // Debug visualization, shaded when empty
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   64,
		NumWorkers: 0,
		Mode:       ModeShaded,
	}
}

// RenderJob renders one scene with fixed options. The scene, index and
// options are read-only once the job exists, so RenderPixel and RenderFrame
// may run concurrently.
type RenderJob struct {
	scene   *scene.Scene
	index   core.Tracer
	options core.RenderOptions
	config  Config
	camera  *geometry.Camera
	width   int
	height  int
	logger  *zap.Logger

	mu          sync.Mutex
	diagnostics *core.Diagnostics // Accumulated over every RenderPixel and RenderFrame call
}

// NewRenderJob validates options and config and prepares a job. index is
// normally scene.BuildAccelerationIndex(s, seed); a nil logger discards output.
func NewRenderJob(s *scene.Scene, index core.Tracer, options core.RenderOptions, config Config, logger *zap.Logger) (*RenderJob, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var err error
	if s == nil {
		err = multierr.Append(err, fmt.Errorf("render job without a scene"))
	}
	if index == nil {
		err = multierr.Append(err, fmt.Errorf("render job without an acceleration index"))
	}
	err = multierr.Append(err, options.Validate())
	if config.Width < 0 || config.Height < 0 {
		err = multierr.Append(err, fmt.Errorf("negative image size %dx%d", config.Width, config.Height))
	}
	if config.TileSize < 0 || config.NumWorkers < 0 {
		err = multierr.Append(err, fmt.Errorf("negative tile size %d or worker count %d", config.TileSize, config.NumWorkers))
	}
	mode, modeErr := ParseMode(string(config.Mode))
	err = multierr.Append(err, modeErr)
	if err != nil {
		return nil, err
	}

	config.Mode = mode
	if config.TileSize == 0 {
		config.TileSize = 64
	}
	if config.NumWorkers == 0 {
		config.NumWorkers = runtime.NumCPU()
	}

	camera, err := resolveCamera(s, config)
	if err != nil {
		return nil, err
	}

	job := &RenderJob{
		scene:       s,
		index:       index,
		options:     options,
		config:      config,
		camera:      camera,
		width:       camera.Width(),
		height:      camera.Height(),
		logger:      logger.With(zap.String("scene", s.Name)),
		diagnostics: core.NewDiagnostics(),
	}
	job.logger.Debug("render job ready",
		zap.Int("width", job.width),
		zap.Int("height", job.height),
		zap.Int("samples_per_pixel", options.SamplesPerPixel),
		zap.Int("max_bounces", options.MaxBounces),
		zap.String("mode", string(mode)),
		zap.Int("objects", len(s.Objects)),
		zap.Int("lights", len(s.Lights)))
	return job, nil
}

// resolveCamera applies the image size of config to the scene camera
func resolveCamera(s *scene.Scene, config Config) (*geometry.Camera, error) {
	if config.Width == 0 && config.Height == 0 && s.Camera != nil {
		return s.Camera, nil
	}
	cameraConfig := s.CameraConfig
	if config.Width > 0 {
		cameraConfig.Width = config.Width
	}
	if config.Height > 0 {
		cameraConfig.AspectRatio = float64(cameraConfig.Width) / float64(config.Height)
	}
	if err := cameraConfig.Validate(); err != nil {
		return nil, err
	}
	return geometry.NewCamera(cameraConfig), nil
}

// Width returns the image width in pixels
func (j *RenderJob) Width() int { return j.width }

// Height returns the image height in pixels
func (j *RenderJob) Height() int { return j.height }

// Options returns the render options of the job
func (j *RenderJob) Options() core.RenderOptions { return j.options }

// RenderPixel computes the averaged colour of pixel (x, y), y = 0 being the
// top row. The result is identical to the same pixel of RenderFrame.
func (j *RenderJob) RenderPixel(x, y int) core.Vec3 {
	if x < 0 || y < 0 || x >= j.width || y >= j.height {
		return core.Vec3{}
	}
	t := newPathTracer(j)
	colour, _ := t.renderPixel(x, y)
	j.absorb(t.diagnostics)
	return colour
}

// Inspect returns the first hit of the unjittered ray through the centre of
// pixel (x, y), the ray a shaded render would start from.
func (j *RenderJob) Inspect(x, y int) (core.HitRecord, bool) {
	if x < 0 || y < 0 || x >= j.width || y >= j.height {
		return core.HitRecord{}, false
	}
	ray := j.camera.GetRay(x, y, false, nil)
	return j.index.TryHit(ray, j.options.KMin, j.options.KMax)
}

// Diagnostics returns a snapshot of everything recorded by this job so far
func (j *RenderJob) Diagnostics() *core.Diagnostics {
	j.mu.Lock()
	defer j.mu.Unlock()
	snapshot := core.NewDiagnostics()
	snapshot.Merge(j.diagnostics)
	return snapshot
}

func (j *RenderJob) absorb(d *core.Diagnostics) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.diagnostics.Merge(d)
}
