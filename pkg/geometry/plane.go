package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Unit normal
	u, v   core.Vec3 // In-plane basis for UV coordinates
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3) (*Plane, error) {
	if normal.NearZero(1e-12) || !validVec(normal) || !validVec(point) {
		return nil, fmt.Errorf("plane with normal %v: %w", normal, ErrDegenerate)
	}
	n := normal.Normalize()
	u, v := core.OrthonormalBasis(n)
	return &Plane{Point: point, Normal: n, u: u, v: v}, nil
}

func (p *Plane) distance(ray core.Ray, kMin, kMax float64) (float64, bool) {
	denominator := ray.Direction.Dot(p.Normal)
	if math.Abs(denominator) < 1e-12 {
		return 0, false
	}
	k := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	return k, inRange(k, kMin, kMax)
}

// TryHit tests if a ray intersects with the plane
func (p *Plane) TryHit(ray core.Ray, kMin, kMax float64) (core.HitRecord, bool) {
	k, ok := p.distance(ray, kMin, kMax)
	if !ok {
		return core.HitRecord{}, false
	}

	point := ray.PointAt(k)
	local := point.Subtract(p.Point)
	hit := core.HitRecord{
		Ray:        ray,
		Point:      point,
		LocalPoint: local,
		K:          k,
		UV:         core.NewVec2(local.Dot(p.u), local.Dot(p.v)),
	}
	hit.SetFaceNormal(ray, p.Normal)
	return hit, true
}

// FastTryHit reports whether the ray crosses the plane inside the window
func (p *Plane) FastTryHit(ray core.Ray, kMin, kMax float64) bool {
	_, ok := p.distance(ray, kMin, kMax)
	return ok
}

// BoundingVolume is unbounded for an infinite plane
func (p *Plane) BoundingVolume() core.BoundingVolume {
	return core.Unbounded()
}

// Kind identifies the shape variant
func (p *Plane) Kind() core.ShapeKind { return core.ShapePlane }
