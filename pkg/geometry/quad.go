package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// Quad represents a bounded parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner core.Vec3 // One corner of the quad
	U      core.Vec3 // First edge vector
	V      core.Vec3 // Second edge vector
	Normal core.Vec3 // Normal vector (computed from U × V)
	D      float64   // Plane equation constant: normal · p = d
	W      core.Vec3 // Cached n / (n·n) for barycentric coordinates
	bbox   core.AABB
}

// NewQuad creates a new quad from a corner point and two edge vectors.
// Parallel or zero-length edges are rejected.
func NewQuad(corner, u, v core.Vec3) (*Quad, error) {
	cross := u.Cross(v)
	if cross.Length() < 1e-12 || !validVec(corner) || !validVec(cross) {
		return nil, fmt.Errorf("quad with edges %v and %v: %w", u, v, ErrDegenerate)
	}

	normal := cross.Normalize()
	box := core.NewAABBFromPoints(corner, corner.Add(u), corner.Add(v), corner.Add(u).Add(v))

	return &Quad{
		Corner: corner,
		U:      u,
		V:      v,
		Normal: normal,
		D:      normal.Dot(corner),
		W:      cross.Multiply(1.0 / cross.Dot(cross)),
		bbox:   padBox(box),
	}, nil
}

// NewAxisQuad creates an axis-aligned rectangle at the given offset on axis,
// spanning [min, max] on the two remaining axes in (X, Y, Z) order
func NewAxisQuad(axis int, offset float64, min, max core.Vec2) (*Quad, error) {
	du, dv := max.X-min.X, max.Y-min.Y
	switch axis {
	case 0:
		return NewQuad(core.NewVec3(offset, min.X, min.Y), core.NewVec3(0, du, 0), core.NewVec3(0, 0, dv))
	case 1:
		return NewQuad(core.NewVec3(min.X, offset, min.Y), core.NewVec3(0, 0, dv), core.NewVec3(du, 0, 0))
	case 2:
		return NewQuad(core.NewVec3(min.X, min.Y, offset), core.NewVec3(du, 0, 0), core.NewVec3(0, dv, 0))
	default:
		return nil, fmt.Errorf("axis quad with axis %d: %w", axis, ErrDegenerate)
	}
}

// intersect returns the distance and barycentric coordinates of the hit
func (q *Quad) intersect(ray core.Ray, kMin, kMax float64) (float64, float64, float64, bool) {
	denominator := ray.Direction.Dot(q.Normal)
	if math.Abs(denominator) < 1e-12 {
		return 0, 0, 0, false
	}

	k := (q.D - ray.Origin.Dot(q.Normal)) / denominator
	if !inRange(k, kMin, kMax) {
		return 0, 0, 0, false
	}

	hitVector := ray.PointAt(k).Subtract(q.Corner)
	alpha := q.W.Dot(hitVector.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(hitVector))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return 0, 0, 0, false
	}
	return k, alpha, beta, true
}

// TryHit tests if a ray intersects with the quad
func (q *Quad) TryHit(ray core.Ray, kMin, kMax float64) (core.HitRecord, bool) {
	k, alpha, beta, ok := q.intersect(ray, kMin, kMax)
	if !ok {
		return core.HitRecord{}, false
	}

	point := ray.PointAt(k)
	hit := core.HitRecord{
		Ray:        ray,
		Point:      point,
		LocalPoint: core.NewVec3(alpha, beta, 0),
		K:          k,
		UV:         core.NewVec2(alpha, beta),
	}
	hit.SetFaceNormal(ray, q.Normal)
	return hit, true
}

// FastTryHit reports whether the ray crosses the quad
func (q *Quad) FastTryHit(ray core.Ray, kMin, kMax float64) bool {
	_, _, _, ok := q.intersect(ray, kMin, kMax)
	return ok
}

// BoundingVolume returns the padded box around the four corners
func (q *Quad) BoundingVolume() core.BoundingVolume {
	return core.Bounded(q.bbox)
}

// Kind identifies the shape variant
func (q *Quad) Kind() core.ShapeKind { return core.ShapeQuad }
