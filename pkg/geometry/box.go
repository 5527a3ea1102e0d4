package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// Box represents an axis-aligned box intersected with the slab method
type Box struct {
	Min core.Vec3
	Max core.Vec3
}

// NewBox creates a box from its minimum and maximum corners
func NewBox(min, max core.Vec3) (*Box, error) {
	if !validVec(min) || !validVec(max) || min.X > max.X || min.Y > max.Y || min.Z > max.Z {
		return nil, fmt.Errorf("box %v-%v: %w", min, max, ErrDegenerate)
	}
	return &Box{Min: min, Max: max}, nil
}

// NewBoxFromCenter creates a box from its center and half-extents
func NewBoxFromCenter(center, halfSize core.Vec3) (*Box, error) {
	return NewBox(center.Subtract(halfSize), center.Add(halfSize))
}

// slabs returns entry/exit distances and the axis each was found on
func (b *Box) slabs(ray core.Ray) (float64, float64, int, int) {
	near, far := math.Inf(-1), math.Inf(1)
	nearAxis, farAxis := -1, -1
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)
		t0 := (b.Min.Axis(axis) - origin) * invD
		t1 := (b.Max.Axis(axis) - origin) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > near {
			near, nearAxis = t0, axis
		}
		if t1 < far {
			far, farAxis = t1, axis
		}
	}
	return near, far, nearAxis, farAxis
}

// pick returns the nearest of the entry/exit distances inside (kMin, kMax)
func (b *Box) pick(ray core.Ray, kMin, kMax float64) (float64, int, bool) {
	near, far, nearAxis, farAxis := b.slabs(ray)
	if far < near || nearAxis < 0 {
		return 0, 0, false
	}
	if inRange(near, kMin, kMax) {
		return near, nearAxis, true
	}
	if inRange(far, kMin, kMax) {
		return far, farAxis, true
	}
	return 0, 0, false
}

// TryHit tests if a ray intersects with the box
func (b *Box) TryHit(ray core.Ray, kMin, kMax float64) (core.HitRecord, bool) {
	k, axis, ok := b.pick(ray, kMin, kMax)
	if !ok {
		return core.HitRecord{}, false
	}

	point := ray.PointAt(k)
	center := b.Min.Add(b.Max).Multiply(0.5)
	outward := core.Vec3{}
	sign := 1.0
	if point.Axis(axis) < center.Axis(axis) {
		sign = -1.0
	}
	switch axis {
	case 0:
		outward.X = sign
	case 1:
		outward.Y = sign
	default:
		outward.Z = sign
	}

	size := b.Max.Subtract(b.Min)
	local := point.Subtract(b.Min)
	hit := core.HitRecord{
		Ray:        ray,
		Point:      point,
		LocalPoint: local,
		K:          k,
		UV:         boxFaceUV(axis, local, size),
	}
	hit.SetFaceNormal(ray, outward)
	return hit, true
}

// FastTryHit reports whether the ray touches the box surface in the window
func (b *Box) FastTryHit(ray core.Ray, kMin, kMax float64) bool {
	_, _, ok := b.pick(ray, kMin, kMax)
	return ok
}

// BoundingVolume returns the box itself, padded on flat axes
func (b *Box) BoundingVolume() core.BoundingVolume {
	return core.Bounded(padBox(core.AABB{Min: b.Min, Max: b.Max}))
}

// Kind identifies the shape variant
func (b *Box) Kind() core.ShapeKind { return core.ShapeBox }

func boxFaceUV(axis int, local, size core.Vec3) core.Vec2 {
	ratio := func(v, extent float64) float64 {
		if extent == 0 {
			return 0
		}
		return v / extent
	}
	switch axis {
	case 0:
		return core.NewVec2(ratio(local.Z, size.Z), ratio(local.Y, size.Y))
	case 1:
		return core.NewVec2(ratio(local.X, size.X), ratio(local.Z, size.Z))
	default:
		return core.NewVec2(ratio(local.X, size.X), ratio(local.Y, size.Y))
	}
}
