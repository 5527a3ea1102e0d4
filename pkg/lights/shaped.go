package lights

import (
	"fmt"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// DefaultMaxAttempts bounds the search for a point on a shaped light
const DefaultMaxAttempts = 16

// ShapedLight is an area light of arbitrary shape. Samples aim at random
// points inside the bounding box and keep only rays that strike the shape.
type ShapedLight struct {
	emitter
	Shape       core.Shape
	MaxAttempts int
	box         core.AABB
}

// NewShapedLight creates a light from a bounded shape
func NewShapedLight(name string, shape core.Shape, colour core.Vec3) (*ShapedLight, error) {
	if shape == nil {
		return nil, fmt.Errorf("shaped light %q without a shape", name)
	}
	volume := shape.BoundingVolume()
	if volume.Unbounded {
		return nil, fmt.Errorf("shaped light %q needs a bounded shape", name)
	}
	return &ShapedLight{
		emitter:     emitter{Name: name, Colour: colour, Attenuation: InverseSquare(0.1)},
		Shape:       shape,
		MaxAttempts: DefaultMaxAttempts,
		box:         volume.Box,
	}, nil
}

// WithAttenuation replaces the falloff
func (l *ShapedLight) WithAttenuation(a Attenuation) *ShapedLight {
	l.Attenuation = a
	return l
}

// WithImportance sets the alignment weight blend
func (l *ShapedLight) WithImportance(importance float64) *ShapedLight {
	l.Importance = importance
	return l
}

// SampleLight retries until a ray toward the box hits the shape. When every
// attempt misses, it falls back to an unshadowed sample toward the box centre.
func (l *ShapedLight) SampleLight(hit *core.HitRecord, ctx *core.RenderContext) core.LightSample {
	size := l.box.Size()
	for attempt := 0; attempt < max(1, l.MaxAttempts); attempt++ {
		target := l.box.Min.Add(size.MultiplyVec(ctx.Sampler.Get3D()))
		offset := target.Subtract(hit.Point)
		if offset.NearZero(1e-12) {
			continue
		}
		ray := core.NewRay(hit.Point, offset)
		if surface, ok := l.Shape.TryHit(ray, ctx.Options.KMin, ctx.Options.KMax); ok {
			return l.shade(hit, surface.Point, ctx)
		}
	}

	ctx.Record(core.DiagLightSamplingExhausted, l.Name)
	centre := l.box.Center()
	offset := centre.Subtract(hit.Point)
	distance := offset.Length()
	sample := core.LightSample{Point: centre, Distance: distance, Visible: true}
	if distance > 0 {
		sample.Direction = offset.Multiply(1.0 / distance)
		sample.Colour = l.contribution(hit, sample.Direction, distance)
	}
	return sample
}

// CalculateLight averages LightSamples samples
func (l *ShapedLight) CalculateLight(hit *core.HitRecord, ctx *core.RenderContext) core.Vec3 {
	return average(ctx.Options.SampleCountFor(l), hit, ctx, l.SampleLight)
}
