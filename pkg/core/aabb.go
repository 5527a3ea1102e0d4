package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from two opposing corners, ordering them per axis
func NewAABB(a, b Vec3) AABB {
	return AABB{Min: a.MinVec(b), Max: a.MaxVec(b)}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	box := AABB{Min: points[0], Max: points[0]}
	for _, point := range points[1:] {
		box.Min = box.Min.MinVec(point)
		box.Max = box.Max.MaxVec(point)
	}
	return box
}

// Encompass returns the smallest AABB containing every given box
func Encompass(boxes ...AABB) AABB {
	if len(boxes) == 0 {
		return AABB{}
	}
	result := boxes[0]
	for _, box := range boxes[1:] {
		result = result.Union(box)
	}
	return result
}

// Hit tests if a ray intersects with this AABB using the slab method.
// A zero direction component yields ±Inf slab distances, which the interval
// narrowing handles without a special case.
func (aabb AABB) Hit(ray Ray, kMin, kMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)
		t0 := (aabb.Min.Axis(axis) - origin) * invD
		t1 := (aabb.Max.Axis(axis) - origin) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}

		if t0 > kMin {
			kMin = t0
		}
		if t1 < kMax {
			kMax = t1
		}
		if kMax <= kMin {
			return false
		}
	}
	return true
}

// Interval returns the narrowed [kMin, kMax] window where the ray is inside the box
func (aabb AABB) Interval(ray Ray, kMin, kMax float64) (float64, float64, bool) {
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)
		t0 := (aabb.Min.Axis(axis) - origin) * invD
		t1 := (aabb.Max.Axis(axis) - origin) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		kMin = math.Max(kMin, t0)
		kMax = math.Min(kMax, t1)
		if kMax <= kMin {
			return kMin, kMax, false
		}
	}
	return kMin, kMax, true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{Min: aabb.Min.MinVec(other.Min), Max: aabb.Max.MaxVec(other.Max)}
}

// Contains reports whether other lies entirely inside this box
func (aabb AABB) Contains(other AABB) bool {
	return aabb.Min.X <= other.Min.X && aabb.Min.Y <= other.Min.Y && aabb.Min.Z <= other.Min.Z &&
		aabb.Max.X >= other.Max.X && aabb.Max.Y >= other.Max.Y && aabb.Max.Z >= other.Max.Z
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// Expand returns an AABB expanded by the given amount in all directions
func (aabb AABB) Expand(amount float64) AABB {
	expansion := NewVec3(amount, amount, amount)
	return AABB{
		Min: aabb.Min.Subtract(expansion),
		Max: aabb.Max.Add(expansion),
	}
}

// BoundingVolume is either a finite AABB or an explicit unbounded marker
// used by infinite shapes such as planes.
type BoundingVolume struct {
	Box       AABB
	Unbounded bool
}

// Bounded wraps a finite box
func Bounded(box AABB) BoundingVolume {
	return BoundingVolume{Box: box}
}

// Unbounded returns the marker volume for infinite shapes
func Unbounded() BoundingVolume {
	return BoundingVolume{Unbounded: true}
}

// Hit tests the ray against the volume; unbounded volumes always report a hit
func (bv BoundingVolume) Hit(ray Ray, kMin, kMax float64) bool {
	if bv.Unbounded {
		return true
	}
	return bv.Box.Hit(ray, kMin, kMax)
}

// Extreme returns the lower bound of the volume along an axis (-Inf when unbounded)
func (bv BoundingVolume) Extreme(axis int) float64 {
	if bv.Unbounded {
		return math.Inf(-1)
	}
	return bv.Box.Min.Axis(axis)
}

// Contains reports whether other lies inside this volume
func (bv BoundingVolume) Contains(other BoundingVolume) bool {
	if bv.Unbounded {
		return true
	}
	if other.Unbounded {
		return false
	}
	return bv.Box.Contains(other.Box)
}

// EncompassVolumes reduces volumes with a component-wise min/max; any unbounded input wins
func EncompassVolumes(volumes ...BoundingVolume) BoundingVolume {
	if len(volumes) == 0 {
		return BoundingVolume{}
	}
	boxes := make([]AABB, 0, len(volumes))
	for _, v := range volumes {
		if v.Unbounded {
			return Unbounded()
		}
		boxes = append(boxes, v.Box)
	}
	return Bounded(Encompass(boxes...))
}
