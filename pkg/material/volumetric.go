package material

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
)

// Volumetric is the phase function for constant-density media. It scatters
// uniformly and attenuates by albedo^(density × distance travelled).
type Volumetric struct {
	Albedo ColorSource
}

// NewVolumetric creates an isotropic medium material
func NewVolumetric(albedo core.Vec3) *Volumetric {
	return &Volumetric{Albedo: NewSolidColor(albedo)}
}

// Scatter picks a uniformly random direction from the interaction point
func (v *Volumetric) Scatter(hit *core.HitRecord, chain []core.HitRecord, ctx *core.RenderContext) (core.Ray, bool) {
	return core.NewRay(hit.Point, core.SampleOnUnitSphere(ctx.Sampler.Get2D())), true
}

// CalculateColour attenuates the continuation per channel
func (v *Volumetric) CalculateColour(continuation core.Vec3, continuationRay core.Ray, hit *core.HitRecord, chain []core.HitRecord, ctx *core.RenderContext) core.Vec3 {
	albedo := evaluate(v.Albedo, hit)
	exponent := 1.0
	if sample, ok := hit.Payload.(geometry.MediumSample); ok {
		exponent = sample.Density * sample.Distance
	}
	return continuation.MultiplyVec(albedo.Pow(exponent))
}
