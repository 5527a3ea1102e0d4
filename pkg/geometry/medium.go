package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// mediumExitBias separates the boundary entry from the exit search
const mediumExitBias = 1e-4

// MediumSample is attached to medium hits as HitRecord.Payload
type MediumSample struct {
	Distance float64 // Free-flight distance travelled inside the medium
	Density  float64
}

// ConstantMedium is a volume of uniform density filling a closed boundary shape.
// A ray scatters at an exponentially distributed distance inside it.
type ConstantMedium struct {
	Boundary core.Shape
	Density  float64
}

// NewConstantMedium wraps a closed boundary shape
func NewConstantMedium(boundary core.Shape, density float64) (*ConstantMedium, error) {
	if boundary == nil || !(density > 0) || math.IsInf(density, 0) {
		return nil, fmt.Errorf("medium with density %g: %w", density, ErrDegenerate)
	}
	return &ConstantMedium{Boundary: boundary, Density: density}, nil
}

func (m *ConstantMedium) scatterDistance(ray core.Ray, kMin, kMax float64) (float64, float64, bool) {
	entry, ok := m.Boundary.TryHit(ray, math.Inf(-1), math.Inf(1))
	if !ok {
		return 0, 0, false
	}
	exit, ok := m.Boundary.TryHit(ray, entry.K+mediumExitBias, math.Inf(1))
	if !ok {
		return 0, 0, false
	}

	k1 := math.Max(entry.K, kMin)
	k2 := math.Min(exit.K, kMax)
	if k1 >= k2 {
		return 0, 0, false
	}
	k1 = math.Max(k1, 0)

	inside := (k2 - k1) * ray.Direction.Length()
	flight := -math.Log(rayUniform(ray)) / m.Density
	if flight > inside {
		return 0, 0, false
	}
	return k1 + flight/ray.Direction.Length(), flight, true
}

// TryHit returns a scattering event inside the medium, if one happens in the window
func (m *ConstantMedium) TryHit(ray core.Ray, kMin, kMax float64) (core.HitRecord, bool) {
	k, flight, ok := m.scatterDistance(ray, kMin, kMax)
	if !ok {
		return core.HitRecord{}, false
	}

	point := ray.PointAt(k)
	return core.HitRecord{
		Ray:        ray,
		Point:      point,
		LocalPoint: point,
		Normal:     core.NewVec3(1, 0, 0), // arbitrary
		K:          k,
		FrontFace:  true,
		Payload:    MediumSample{Distance: flight, Density: m.Density},
	}, true
}

// FastTryHit agrees with TryHit for the same ray
func (m *ConstantMedium) FastTryHit(ray core.Ray, kMin, kMax float64) bool {
	_, _, ok := m.scatterDistance(ray, kMin, kMax)
	return ok
}

// BoundingVolume is the boundary's volume
func (m *ConstantMedium) BoundingVolume() core.BoundingVolume {
	return m.Boundary.BoundingVolume()
}

// Kind identifies the shape variant
func (m *ConstantMedium) Kind() core.ShapeKind { return core.ShapeMedium }

// rayUniform maps the ray's bits to a value in (0, 1) with splitmix64
func rayUniform(ray core.Ray) float64 {
	h := uint64(0x9e3779b97f4a7c15)
	for _, f := range [6]float64{
		ray.Origin.X, ray.Origin.Y, ray.Origin.Z,
		ray.Direction.X, ray.Direction.Y, ray.Direction.Z,
	} {
		h = splitmix64(h ^ math.Float64bits(f))
	}
	return (float64(h>>11) + 0.5) / (1 << 53)
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
