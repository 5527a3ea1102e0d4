package material

import (
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// Phong shades with the classic ambient + diffuse + specular model. It only
// continues the path when Reflectivity is non-zero, as a mirror bounce.
type Phong struct {
	Albedo         ColorSource
	Specular       ColorSource
	Ambient        float64 // Weight of the albedo added regardless of lighting
	Diffuse        float64 // Weight of the lambert term
	SpecularWeight float64 // Weight of the highlight term
	Shininess      float64 // Highlight exponent
	Reflectivity   float64 // Weight of the mirror continuation
}

// NewPhong creates a Phong material with a white highlight
func NewPhong(albedo core.Vec3, shininess float64) *Phong {
	return &Phong{
		Albedo:         NewSolidColor(albedo),
		Specular:       NewSolidColor(core.NewVec3(1, 1, 1)),
		Ambient:        0.05,
		Diffuse:        0.8,
		SpecularWeight: 0.5,
		Shininess:      shininess,
	}
}

// Scatter returns the mirror reflection when the material is reflective
func (p *Phong) Scatter(hit *core.HitRecord, chain []core.HitRecord, ctx *core.RenderContext) (core.Ray, bool) {
	if p.Reflectivity <= 0 {
		return core.Ray{}, false
	}
	return core.NewRay(hit.Point, hit.Ray.Direction.Normalize().Reflect(hit.Normal)), true
}

// CalculateColour sums ambient, diffuse and specular terms over light samples
func (p *Phong) CalculateColour(continuation core.Vec3, continuationRay core.Ray, hit *core.HitRecord, chain []core.HitRecord, ctx *core.RenderContext) core.Vec3 {
	albedo := evaluate(p.Albedo, hit)
	specular := evaluate(p.Specular, hit)
	view := hit.Ray.Direction.Normalize().Negate()

	colour := albedo.Multiply(p.Ambient)
	for _, light := range ctx.Lights {
		samples := ctx.Options.SampleCountFor(light)
		sum := core.Vec3{}
		for i := 0; i < samples; i++ {
			sample := light.SampleLight(hit, ctx)
			if !sample.Visible {
				continue
			}
			lambert := math.Max(0, sample.Direction.Dot(hit.Normal))
			sum = sum.Add(sample.Colour.MultiplyVec(albedo).Multiply(p.Diffuse * lambert))

			reflected := sample.Direction.Negate().Reflect(hit.Normal)
			if highlight := reflected.Dot(view); highlight > 0 {
				weight := p.SpecularWeight * math.Pow(highlight, p.Shininess)
				sum = sum.Add(sample.Colour.MultiplyVec(specular).Multiply(weight))
			}
		}
		colour = colour.Add(sum.Multiply(1.0 / float64(samples)))
	}

	if p.Reflectivity > 0 {
		colour = colour.Add(continuation.Multiply(p.Reflectivity))
	}
	return colour
}
