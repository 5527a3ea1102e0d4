package scene

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// Skybox gives the colour seen along rays that leave the scene
type Skybox interface {
	Colour(ray core.Ray) core.Vec3
}

// SolidSkybox returns one colour in every direction
type SolidSkybox struct {
	Color core.Vec3
}

// NewSolidSkybox creates a uniform skybox
func NewSolidSkybox(color core.Vec3) *SolidSkybox {
	return &SolidSkybox{Color: color}
}

// Colour returns the fixed colour
func (s *SolidSkybox) Colour(ray core.Ray) core.Vec3 {
	return s.Color
}

// GradientSkybox blends vertically from Bottom (straight down) to Top (straight up)
type GradientSkybox struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewGradientSkybox creates a vertical gradient skybox
func NewGradientSkybox(top, bottom core.Vec3) *GradientSkybox {
	return &GradientSkybox{Top: top, Bottom: bottom}
}

// Colour interpolates by the ray's vertical direction
func (g *GradientSkybox) Colour(ray core.Ray) core.Vec3 {
	t := 0.5 * (ray.Direction.Normalize().Y + 1.0)
	return g.Bottom.Lerp(g.Top, t)
}
