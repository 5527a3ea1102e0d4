package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// CameraConfig contains all the parameters needed to set up a camera
type CameraConfig struct {
	Center        core.Vec3 `yaml:"center"`         // Camera position
	LookAt        core.Vec3 `yaml:"look_at"`        // Point the camera is looking at
	Up            core.Vec3 `yaml:"up"`             // Up direction (usually 0,1,0)
	Width         int       `yaml:"width"`          // Image width in pixels
	AspectRatio   float64   `yaml:"aspect_ratio"`   // Width / height
	VFov          float64   `yaml:"vfov"`           // Vertical field of view in degrees
	Aperture      float64   `yaml:"aperture"`       // Lens diameter, 0 for a pinhole
	FocusDistance float64   `yaml:"focus_distance"` // 0 focuses on LookAt
}

// Validate checks that a camera can be built from the config
func (c CameraConfig) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("camera width %d: %w", c.Width, ErrDegenerate)
	case !(c.AspectRatio > 0):
		return fmt.Errorf("camera aspect ratio %g: %w", c.AspectRatio, ErrDegenerate)
	case !(c.VFov > 0 && c.VFov < 180):
		return fmt.Errorf("camera vfov %g: %w", c.VFov, ErrDegenerate)
	case c.Aperture < 0 || c.FocusDistance < 0:
		return fmt.Errorf("camera aperture %g, focus distance %g: %w", c.Aperture, c.FocusDistance, ErrDegenerate)
	case c.Center.Subtract(c.LookAt).NearZero(1e-12):
		return fmt.Errorf("camera looks at its own center: %w", ErrDegenerate)
	case c.Up.Cross(c.Center.Subtract(c.LookAt)).NearZero(1e-12):
		return fmt.Errorf("camera up %v is parallel to the view direction: %w", c.Up, ErrDegenerate)
	}
	return nil
}

// MergeCameraConfig fills zero fields of override from base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}
	if override.Center != zero {
		result.Center = override.Center
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}

// Camera generates primary rays with optional pixel jitter and thin-lens depth of field
type Camera struct {
	config          CameraConfig
	width, height   int
	origin          core.Vec3
	upperLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
}

// NewCamera creates a camera from config; call config.Validate first
func NewCamera(config CameraConfig) *Camera {
	height := int(math.Round(float64(config.Width) / config.AspectRatio))
	if height < 1 {
		height = 1
	}

	theta := config.VFov * math.Pi / 180
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := viewportHeight * config.AspectRatio

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	focus := config.FocusDistance
	if focus == 0 {
		focus = config.Center.Subtract(config.LookAt).Length()
	}

	horizontal := u.Multiply(viewportWidth * focus)
	vertical := v.Multiply(-viewportHeight * focus) // rows grow downward
	upperLeft := config.Center.
		Subtract(w.Multiply(focus)).
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5))

	return &Camera{
		config:          config,
		width:           config.Width,
		height:          height,
		origin:          config.Center,
		upperLeftCorner: upperLeft,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.width }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.height }

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig { return c.config }

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vec3 { return c.w.Negate() }

// GetRay returns a ray through pixel (x, y), y = 0 being the top row.
// Without jitter the ray passes through the pixel centre; the lens is
// sampled whenever the aperture is open.
func (c *Camera) GetRay(x, y int, jitter bool, sampler core.Sampler) core.Ray {
	offset := core.NewVec2(0.5, 0.5)
	if jitter && sampler != nil {
		offset = sampler.Get2D()
	}
	s := (float64(x) + offset.X) / float64(c.width)
	t := (float64(y) + offset.Y) / float64(c.height)

	origin := c.origin
	if c.lensRadius > 0 && sampler != nil {
		rd := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	target := c.upperLeftCorner.Add(c.horizontal.Multiply(s)).Add(c.vertical.Multiply(t))
	return core.NewRay(origin, target.Subtract(origin))
}
