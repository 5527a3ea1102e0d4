package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// Capsule is a cylinder of Radius around the segment A-B capped by two hemispheres
type Capsule struct {
	A      core.Vec3
	B      core.Vec3
	Radius float64
	axis   core.Vec3 // B - A
	baba   float64   // |B - A|²
}

// NewCapsule creates a capsule between two end points
func NewCapsule(a, b core.Vec3, radius float64) (*Capsule, error) {
	axis := b.Subtract(a)
	if !(radius > 0) || math.IsInf(radius, 0) || !validVec(a) || !validVec(b) || axis.LengthSquared() < 1e-18 {
		return nil, fmt.Errorf("capsule %v-%v with radius %g: %w", a, b, radius, ErrDegenerate)
	}
	return &Capsule{A: a, B: b, Radius: radius, axis: axis, baba: axis.LengthSquared()}, nil
}

// nearest returns the smallest surface crossing in (kMin, kMax). The body
// roots only count between the end planes; each cap sphere's roots only
// count on its own side of them.
func (c *Capsule) nearest(ray core.Ray, kMin, kMax float64) (float64, bool) {
	best, found := kMax, false
	consider := func(k float64) {
		if k > kMin && k < best {
			best, found = k, true
		}
	}

	oa := ray.Origin.Subtract(c.A)
	bard := c.axis.Dot(ray.Direction)
	baoa := c.axis.Dot(oa)
	rdoa := ray.Direction.Dot(oa)
	oaoa := oa.Dot(oa)

	a := c.baba - bard*bard
	if a > 1e-12 {
		halfB := c.baba*rdoa - baoa*bard
		cc := c.baba*oaoa - baoa*baoa - c.Radius*c.Radius*c.baba
		if h := halfB*halfB - a*cc; h >= 0 {
			sqrtH := math.Sqrt(h)
			for _, k := range [2]float64{(-halfB - sqrtH) / a, (-halfB + sqrtH) / a} {
				if y := baoa + k*bard; y > 0 && y < c.baba {
					consider(k)
				}
			}
		}
	}

	for i, center := range [2]core.Vec3{c.A, c.B} {
		oc := ray.Origin.Subtract(center)
		halfB := oc.Dot(ray.Direction)
		h := halfB*halfB - (oc.Dot(oc) - c.Radius*c.Radius)
		if h < 0 {
			continue
		}
		sqrtH := math.Sqrt(h)
		for _, k := range [2]float64{-halfB - sqrtH, -halfB + sqrtH} {
			y := baoa + k*bard
			if (i == 0 && y <= 0) || (i == 1 && y >= c.baba) {
				consider(k)
			}
		}
	}
	return best, found
}

// TryHit tests if a ray intersects with the capsule
func (c *Capsule) TryHit(ray core.Ray, kMin, kMax float64) (core.HitRecord, bool) {
	k, ok := c.nearest(ray, kMin, kMax)
	if !ok {
		return core.HitRecord{}, false
	}

	point := ray.PointAt(k)
	h := math.Max(0, math.Min(1, point.Subtract(c.A).Dot(c.axis)/c.baba))
	closest := c.A.Add(c.axis.Multiply(h))
	outward := point.Subtract(closest).Multiply(1.0 / c.Radius)

	hit := core.HitRecord{
		Ray:        ray,
		Point:      point,
		LocalPoint: point.Subtract(c.A),
		K:          k,
		UV:         core.NewVec2(sphereUV(outward).X, h),
	}
	hit.SetFaceNormal(ray, outward)
	return hit, true
}

// FastTryHit reports whether the ray crosses the capsule surface
func (c *Capsule) FastTryHit(ray core.Ray, kMin, kMax float64) bool {
	_, ok := c.nearest(ray, kMin, kMax)
	return ok
}

// BoundingVolume encloses both cap spheres
func (c *Capsule) BoundingVolume() core.BoundingVolume {
	r := core.NewVec3(c.Radius, c.Radius, c.Radius)
	return core.Bounded(core.Encompass(
		core.NewAABB(c.A.Subtract(r), c.A.Add(r)),
		core.NewAABB(c.B.Subtract(r), c.B.Add(r)),
	))
}

// Kind identifies the shape variant
func (c *Capsule) Kind() core.ShapeKind { return core.ShapeCapsule }
