package material

import (
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// Checker alternates two colors in a grid of Scale cells per UV unit
type Checker struct {
	Even, Odd core.Vec3
	Scale     float64
}

// NewChecker creates a UV checker pattern
func NewChecker(even, odd core.Vec3, scale float64) *Checker {
	return &Checker{Even: even, Odd: odd, Scale: scale}
}

// Evaluate picks the cell color for uv
func (c *Checker) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	cell := int(math.Floor(uv.X*c.Scale)) + int(math.Floor(uv.Y*c.Scale))
	if cell%2 == 0 {
		return c.Even
	}
	return c.Odd
}

// evaluate returns black for a nil source
func evaluate(source ColorSource, hit *core.HitRecord) core.Vec3 {
	if source == nil {
		return core.Vec3{}
	}
	return source.Evaluate(hit.UV, hit.Point)
}
