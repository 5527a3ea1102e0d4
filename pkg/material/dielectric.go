package material

import (
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract.
// With Emission set it becomes an emissive-refractive material.
type Dielectric struct {
	Tint            ColorSource
	Emission        ColorSource
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
	DirectLighting  bool    // Add direct light at the surface, tinted
	DirectEmission  bool    // Show emission to rays that have only passed through this material
}

// NewDielectric creates a new clear dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{Tint: NewSolidColor(core.NewVec3(1, 1, 1)), RefractiveIndex: refractiveIndex}
}

// NewTintedDielectric creates a dielectric that filters light by tint
func NewTintedDielectric(tint core.Vec3, refractiveIndex float64) *Dielectric {
	return &Dielectric{Tint: NewSolidColor(tint), RefractiveIndex: refractiveIndex}
}

// inside reports whether the ray that produced hit travelled through this
// material, which is the case when the previous hit was on it as well
func (d *Dielectric) inside(chain []core.HitRecord) bool {
	if len(chain) == 0 {
		return false
	}
	return chain[len(chain)-1].Material == core.Material(d)
}

// Scatter reflects or refracts the incoming ray
func (d *Dielectric) Scatter(hit *core.HitRecord, chain []core.HitRecord, ctx *core.RenderContext) (core.Ray, bool) {
	refractionRatio := 1.0 / d.RefractiveIndex // air to material
	if d.inside(chain) {
		refractionRatio = d.RefractiveIndex
	}

	unitDirection := hit.Ray.Direction.Normalize()
	cosTheta := math.Min(-unitDirection.Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))

	cannotRefract := refractionRatio*sinTheta > 1.0

	var direction core.Vec3
	if cannotRefract || Reflectance(cosTheta, refractionRatio) > ctx.Sampler.Get1D() {
		direction = unitDirection.Reflect(hit.Normal)
	} else {
		direction = refractVector(unitDirection, hit.Normal, refractionRatio)
	}

	return core.NewRay(hit.Point, direction), true
}

// CalculateColour tints the continuation and adds optional direct light and emission
func (d *Dielectric) CalculateColour(continuation core.Vec3, continuationRay core.Ray, hit *core.HitRecord, chain []core.HitRecord, ctx *core.RenderContext) core.Vec3 {
	tint := evaluate(d.Tint, hit)
	colour := continuation.MultiplyVec(tint)
	if d.DirectLighting {
		colour = colour.Add(ctx.DirectLight(hit).MultiplyVec(tint))
	}
	if d.Emission != nil && (d.DirectEmission || !d.seenOnlyThrough(chain)) {
		colour = colour.Add(evaluate(d.Emission, hit))
	}
	return colour
}

// seenOnlyThrough reports whether every earlier hit on the path was on this
// material, i.e. the camera looks straight at it
func (d *Dielectric) seenOnlyThrough(chain []core.HitRecord) bool {
	for i := range chain {
		if chain[i].Material != core.Material(d) {
			return false
		}
	}
	return true
}

// refractVector calculates the refraction of a vector using Snell's law
func refractVector(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
