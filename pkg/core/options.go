package core

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// MaxBounceLimit bounds MaxBounces. Path scratch space is sized from it.
const MaxBounceLimit = 1000

// ErrInvalidOptions is wrapped by every RenderOptions validation failure
var ErrInvalidOptions = errors.New("invalid render options")

// RenderOptions contains the render-wide settings read by the integrator,
// materials and lights. It is read-only once rendering starts.
type RenderOptions struct {
	KMin            float64 `yaml:"k_min"`             // Lower bound for valid hit distances
	KMax            float64 `yaml:"k_max"`             // Upper bound for valid hit distances
	MaxBounces      int     `yaml:"max_bounces"`       // Path depth cutoff
	SamplesPerPixel int     `yaml:"samples_per_pixel"` // Camera rays per pixel
	LightSamples    int     `yaml:"light_samples"`     // Samples averaged per area light
	Jitter          bool    `yaml:"jitter"`            // Jitter camera rays within the pixel footprint
	Seed            uint64  `yaml:"seed"`              // Base seed for all random streams
}

// DefaultRenderOptions returns sensible default values
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		KMin:            0.001,
		KMax:            1e6,
		MaxBounces:      12,
		SamplesPerPixel: 64,
		LightSamples:    4,
		Jitter:          true,
		Seed:            42,
	}
}

// Validate reports every invalid field at once
func (o RenderOptions) Validate() error {
	var err error
	if o.KMin < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: k_min %g is negative", ErrInvalidOptions, o.KMin))
	}
	if o.KMax <= o.KMin {
		err = multierr.Append(err, fmt.Errorf("%w: k_max %g must exceed k_min %g", ErrInvalidOptions, o.KMax, o.KMin))
	}
	if o.MaxBounces < 0 || o.MaxBounces > MaxBounceLimit {
		err = multierr.Append(err, fmt.Errorf("%w: max_bounces %d is outside [0, %d]", ErrInvalidOptions, o.MaxBounces, MaxBounceLimit))
	}
	if o.SamplesPerPixel < 1 {
		err = multierr.Append(err, fmt.Errorf("%w: samples_per_pixel must be at least 1, got %d", ErrInvalidOptions, o.SamplesPerPixel))
	}
	if o.LightSamples < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: light_samples %d is negative", ErrInvalidOptions, o.LightSamples))
	}
	return err
}

// LightSampleCount returns the per-light sample count, at least one
func (o RenderOptions) LightSampleCount() int {
	return max(1, o.LightSamples)
}

// SampleCountFor returns how many samples of light to average
func (o RenderOptions) SampleCountFor(light Light) int {
	if single, ok := light.(SingleSampleLight); ok && single.SingleSample() {
		return 1
	}
	return o.LightSampleCount()
}
