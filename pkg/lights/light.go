package lights

import (
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// emitter holds what every light variant shares
type emitter struct {
	Name        string
	Colour      core.Vec3
	Attenuation Attenuation
	// Importance blends the surface alignment weight in: 0 ignores the
	// angle to the light, 1 applies the full |cos|.
	Importance float64
}

// shade builds a shadow-tested sample from hit toward point
func (e *emitter) shade(hit *core.HitRecord, point core.Vec3, ctx *core.RenderContext) core.LightSample {
	offset := point.Subtract(hit.Point)
	distance := offset.Length()
	if distance == 0 {
		return core.LightSample{Point: point}
	}
	direction := offset.Multiply(1.0 / distance)

	sample := core.LightSample{Point: point, Direction: direction, Distance: distance}
	if ctx.Occluded(hit.Point, direction, distance) {
		return sample
	}
	sample.Visible = true
	sample.Colour = e.contribution(hit, direction, distance)
	return sample
}

// contribution is the unshadowed, attenuated and alignment-weighted colour
func (e *emitter) contribution(hit *core.HitRecord, direction core.Vec3, distance float64) core.Vec3 {
	alignment := math.Abs(direction.Dot(hit.Normal))
	weight := 1 + (alignment-1)*e.Importance
	return e.Colour.Multiply(e.Attenuation.Factor(distance) * weight)
}

// average runs n samples of sample and returns the mean colour
func average(n int, hit *core.HitRecord, ctx *core.RenderContext, sample func(*core.HitRecord, *core.RenderContext) core.LightSample) core.Vec3 {
	total := core.Vec3{}
	for i := 0; i < n; i++ {
		total = total.Add(sample(hit, ctx).Colour)
	}
	return total.Multiply(1.0 / float64(n))
}

// surfaceDistance shortens distance to where the ray from origin first meets
// shape, so a light's own geometry does not shadow it
func surfaceDistance(shape core.Shape, origin, target core.Vec3, ctx *core.RenderContext) (core.Vec3, float64) {
	offset := target.Subtract(origin)
	distance := offset.Length()
	if distance == 0 {
		return target, 0
	}
	ray := core.Ray{Origin: origin, Direction: offset.Multiply(1.0 / distance)}
	if hit, ok := shape.TryHit(ray, ctx.Options.KMin, distance); ok {
		return hit.Point, hit.K
	}
	return target, distance
}
