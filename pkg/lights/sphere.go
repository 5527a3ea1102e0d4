package lights

import (
	"fmt"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// SphereLight is a diffuse area light sampled on the surface of its shape's
// bounding box. Shadow rays stop at the shape itself.
type SphereLight struct {
	emitter
	Shape core.Shape
	box   core.AABB
}

// NewSphereLight creates an area light around a bounded shape
func NewSphereLight(name string, shape core.Shape, colour core.Vec3) (*SphereLight, error) {
	if shape == nil {
		return nil, fmt.Errorf("sphere light %q without a shape", name)
	}
	volume := shape.BoundingVolume()
	if volume.Unbounded {
		return nil, fmt.Errorf("sphere light %q needs a bounded shape", name)
	}
	return &SphereLight{
		emitter: emitter{Name: name, Colour: colour, Attenuation: InverseSquare(0.1)},
		Shape:   shape,
		box:     volume.Box,
	}, nil
}

// WithAttenuation replaces the falloff
func (l *SphereLight) WithAttenuation(a Attenuation) *SphereLight {
	l.Attenuation = a
	return l
}

// WithImportance sets the alignment weight blend
func (l *SphereLight) WithImportance(importance float64) *SphereLight {
	l.Importance = importance
	return l
}

// SampleLight picks a random point on the bounding box surface
func (l *SphereLight) SampleLight(hit *core.HitRecord, ctx *core.RenderContext) core.LightSample {
	target := core.SamplePointOnBox(l.box, ctx.Sampler.Get3D())
	point, _ := surfaceDistance(l.Shape, hit.Point, target, ctx)
	return l.shade(hit, point, ctx)
}

// CalculateLight averages LightSamples samples
func (l *SphereLight) CalculateLight(hit *core.HitRecord, ctx *core.RenderContext) core.Vec3 {
	return average(ctx.Options.SampleCountFor(l), hit, ctx, l.SampleLight)
}
