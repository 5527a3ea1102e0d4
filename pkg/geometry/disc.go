package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// Disc represents a circular disc in 3D space
type Disc struct {
	Center core.Vec3 // Center of the disc
	Normal core.Vec3 // Normal vector (pointing "up" from the disc)
	Radius float64   // Radius of the disc
	Right  core.Vec3 // Right vector (perpendicular to normal)
	Up     core.Vec3 // Up vector (perpendicular to normal and right)
}

// NewDisc creates a new disc
func NewDisc(center, normal core.Vec3, radius float64) (*Disc, error) {
	if normal.NearZero(1e-12) || !validVec(normal) || !validVec(center) || !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("disc with normal %v and radius %g: %w", normal, radius, ErrDegenerate)
	}
	n := normal.Normalize()
	right, up := core.OrthonormalBasis(n)
	return &Disc{Center: center, Normal: n, Radius: radius, Right: right, Up: up}, nil
}

func (d *Disc) intersect(ray core.Ray, kMin, kMax float64) (float64, core.Vec3, bool) {
	denom := d.Normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-12 {
		return 0, core.Vec3{}, false
	}

	k := d.Normal.Dot(d.Center.Subtract(ray.Origin)) / denom
	if !inRange(k, kMin, kMax) {
		return 0, core.Vec3{}, false
	}

	centerToHit := ray.PointAt(k).Subtract(d.Center)
	if centerToHit.LengthSquared() > d.Radius*d.Radius {
		return 0, core.Vec3{}, false
	}
	return k, centerToHit, true
}

// TryHit tests if a ray intersects with the disc
func (d *Disc) TryHit(ray core.Ray, kMin, kMax float64) (core.HitRecord, bool) {
	k, local, ok := d.intersect(ray, kMin, kMax)
	if !ok {
		return core.HitRecord{}, false
	}

	x, y := local.Dot(d.Right), local.Dot(d.Up)
	hit := core.HitRecord{
		Ray:        ray,
		Point:      ray.PointAt(k),
		LocalPoint: core.NewVec3(x, y, 0),
		K:          k,
		UV: core.NewVec2(
			(math.Atan2(y, x)+math.Pi)/(2*math.Pi),
			math.Sqrt(x*x+y*y)/d.Radius,
		),
	}
	hit.SetFaceNormal(ray, d.Normal)
	return hit, true
}

// FastTryHit reports whether the ray crosses the disc
func (d *Disc) FastTryHit(ray core.Ray, kMin, kMax float64) bool {
	_, _, ok := d.intersect(ray, kMin, kMax)
	return ok
}

// BoundingVolume returns a tight box around the disc
func (d *Disc) BoundingVolume() core.BoundingVolume {
	// Extent along each axis is radius * sqrt(1 - n_axis²)
	extent := core.NewVec3(
		d.Radius*math.Sqrt(math.Max(0, 1-d.Normal.X*d.Normal.X)),
		d.Radius*math.Sqrt(math.Max(0, 1-d.Normal.Y*d.Normal.Y)),
		d.Radius*math.Sqrt(math.Max(0, 1-d.Normal.Z*d.Normal.Z)),
	)
	return core.Bounded(padBox(core.NewAABB(d.Center.Subtract(extent), d.Center.Add(extent))))
}

// Kind identifies the shape variant
func (d *Disc) Kind() core.ShapeKind { return core.ShapeDisc }
