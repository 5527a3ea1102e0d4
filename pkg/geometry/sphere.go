package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// Sphere represents a sphere shape. A negative radius flips the normals
// inward, which is used for hollow glass shells.
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) (*Sphere, error) {
	if radius == 0 || math.IsNaN(radius) || math.IsInf(radius, 0) || !validVec(center) {
		return nil, fmt.Errorf("sphere at %v with radius %g: %w", center, radius, ErrDegenerate)
	}
	return &Sphere{Center: center, Radius: radius}, nil
}

func (s *Sphere) root(ray core.Ray, kMin, kMax float64) (float64, bool) {
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius
	return nearestRoot(a, halfB, c, kMin, kMax)
}

// TryHit tests if a ray intersects with the sphere
func (s *Sphere) TryHit(ray core.Ray, kMin, kMax float64) (core.HitRecord, bool) {
	k, ok := s.root(ray, kMin, kMax)
	if !ok {
		return core.HitRecord{}, false
	}

	point := ray.PointAt(k)
	local := point.Subtract(s.Center)
	outwardNormal := local.Multiply(1.0 / s.Radius)

	hit := core.HitRecord{
		Ray:        ray,
		Point:      point,
		LocalPoint: local,
		K:          k,
		UV:         sphereUV(local.Multiply(1.0 / math.Abs(s.Radius))),
	}
	hit.SetFaceNormal(ray, outwardNormal)
	return hit, true
}

// FastTryHit reports whether the ray intersects the sphere
func (s *Sphere) FastTryHit(ray core.Ray, kMin, kMax float64) bool {
	_, ok := s.root(ray, kMin, kMax)
	return ok
}

// BoundingVolume returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingVolume() core.BoundingVolume {
	r := math.Abs(s.Radius)
	radius := core.NewVec3(r, r, r)
	return core.Bounded(core.NewAABB(s.Center.Subtract(radius), s.Center.Add(radius)))
}

// Kind identifies the shape variant
func (s *Sphere) Kind() core.ShapeKind { return core.ShapeSphere }

// sphereUV maps a point on the unit sphere to longitude/latitude coordinates
func sphereUV(p core.Vec3) core.Vec2 {
	theta := math.Acos(math.Max(-1, math.Min(1, -p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}
