package material

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// Standard is the general purpose surface: Diffusion blends between a mirror
// (0) and a fully randomized bounce (1). Emission is added on top.
type Standard struct {
	Albedo    ColorSource
	Emission  ColorSource
	Diffusion float64
}

// NewStandard creates a standard material with a solid albedo and no emission
func NewStandard(albedo core.Vec3, diffusion float64) *Standard {
	return &Standard{Albedo: NewSolidColor(albedo), Diffusion: diffusion}
}

// NewLambertian creates a fully diffuse standard material
func NewLambertian(albedo core.Vec3) *Standard {
	return NewStandard(albedo, 1)
}

// NewEmissive creates a standard material that glows with the given color
func NewEmissive(albedo, emission core.Vec3) *Standard {
	return &Standard{Albedo: NewSolidColor(albedo), Emission: NewSolidColor(emission), Diffusion: 1}
}

// Scatter blends the mirror direction with a random direction on the normal's hemisphere
func (s *Standard) Scatter(hit *core.HitRecord, chain []core.HitRecord, ctx *core.RenderContext) (core.Ray, bool) {
	mirror := hit.Ray.Direction.Normalize().Reflect(hit.Normal)
	random := core.SampleHemisphere(hit.Normal, ctx.Sampler.Get2D())

	direction := mirror.Lerp(random, s.Diffusion)
	if direction.NearZero(1e-8) {
		direction = hit.Normal
	}
	return core.NewRay(hit.Point, direction), true
}

// CalculateColour applies the albedo to direct light plus the continuation and adds emission
func (s *Standard) CalculateColour(continuation core.Vec3, continuationRay core.Ray, hit *core.HitRecord, chain []core.HitRecord, ctx *core.RenderContext) core.Vec3 {
	light := ctx.DirectLight(hit)
	colour := light.Add(continuation).MultiplyVec(evaluate(s.Albedo, hit))
	return colour.Add(evaluate(s.Emission, hit))
}
