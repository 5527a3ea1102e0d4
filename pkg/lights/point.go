package lights

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// PointLight emits from a single position
type PointLight struct {
	emitter
	Position core.Vec3
}

// NewPointLight creates a point light with inverse-square falloff
func NewPointLight(name string, position, colour core.Vec3) *PointLight {
	return &PointLight{
		emitter:  emitter{Name: name, Colour: colour, Attenuation: InverseSquare(0.1)},
		Position: position,
	}
}

// WithAttenuation replaces the falloff
func (l *PointLight) WithAttenuation(a Attenuation) *PointLight {
	l.Attenuation = a
	return l
}

// WithImportance sets the alignment weight blend
func (l *PointLight) WithImportance(importance float64) *PointLight {
	l.Importance = importance
	return l
}

// SampleLight shadow-tests the light position
func (l *PointLight) SampleLight(hit *core.HitRecord, ctx *core.RenderContext) core.LightSample {
	return l.shade(hit, l.Position, ctx)
}

// SingleSample is true, the light position never changes between samples
func (l *PointLight) SingleSample() bool { return true }

// CalculateLight needs a single sample since the light position is fixed
func (l *PointLight) CalculateLight(hit *core.HitRecord, ctx *core.RenderContext) core.Vec3 {
	return l.SampleLight(hit, ctx).Colour
}
