package core

import (
	"math"
	"math/rand/v2"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a PCG generator so it can be cheaply reseeded per pixel
type RandomSampler struct {
	source *rand.PCG
	random *rand.Rand
}

// NewRandomSampler creates a sampler seeded with the given stream
func NewRandomSampler(seed, stream uint64) *RandomSampler {
	source := rand.NewPCG(seed, stream)
	return &RandomSampler{source: source, random: rand.New(source)}
}

// Reseed restarts the generator; used to make every pixel independent of scheduling
func (r *RandomSampler) Reseed(seed, stream uint64) {
	r.source.Seed(seed, stream)
}

// Rand exposes the underlying generator
func (r *RandomSampler) Rand() *rand.Rand {
	return r.random
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// SampleCosineHemisphere generates a cosine-weighted random direction in hemisphere around normal
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	a := 2.0 * math.Pi * sample.X
	z := sample.Y
	r := math.Sqrt(z)

	x := r * math.Cos(a)
	y := r * math.Sin(a)
	zCoord := math.Sqrt(1.0 - z)

	tangent, bitangent := OrthonormalBasis(normal)
	return tangent.Multiply(x).Add(bitangent.Multiply(y)).Add(normal.Multiply(zCoord))
}

// SampleOnUnitSphere generates a uniform random direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// SampleHemisphere returns a uniform direction on the unit sphere flipped into
// the hemisphere around normal
func SampleHemisphere(normal Vec3, sample Vec2) Vec3 {
	direction := SampleOnUnitSphere(sample)
	if direction.Dot(normal) < 0 {
		return direction.Negate()
	}
	return direction
}

// SamplePointInUnitDisk generates a random point in a unit disk using concentric mapping
func SamplePointInUnitDisk(sample Vec2) Vec3 {
	uOffset := NewVec2(2*sample.X-1, 2*sample.Y-1)
	if uOffset.X == 0 && uOffset.Y == 0 {
		return NewVec3(0, 0, 0)
	}

	var theta, r float64
	if math.Abs(uOffset.X) > math.Abs(uOffset.Y) {
		r = uOffset.X
		theta = math.Pi / 4 * (uOffset.Y / uOffset.X)
	} else {
		r = uOffset.Y
		theta = math.Pi/2 - math.Pi/4*(uOffset.X/uOffset.Y)
	}

	return NewVec3(r*math.Cos(theta), r*math.Sin(theta), 0)
}

// SamplePointOnBox picks a point uniformly (by area) on the surface of an AABB
func SamplePointOnBox(box AABB, sample Vec3) Vec3 {
	size := box.Size()
	areas := [3]float64{size.Y * size.Z, size.X * size.Z, size.X * size.Y}
	total := areas[0] + areas[1] + areas[2]
	if total <= 0 {
		// Degenerate box: fall back to a point inside it
		return box.Min.Add(size.MultiplyVec(sample))
	}

	// Six faces: the first half of the range picks the min side, the second half the max side
	pick := sample.X * 2 * total
	side := pick >= total
	if side {
		pick -= total
	}
	axis := 2
	if pick < areas[0] {
		axis = 0
	} else if pick < areas[0]+areas[1] {
		axis = 1
	}

	var point Vec3
	switch axis {
	case 0:
		point = NewVec3(box.Min.X, box.Min.Y+size.Y*sample.Y, box.Min.Z+size.Z*sample.Z)
		if side {
			point.X = box.Max.X
		}
	case 1:
		point = NewVec3(box.Min.X+size.X*sample.Y, box.Min.Y, box.Min.Z+size.Z*sample.Z)
		if side {
			point.Y = box.Max.Y
		}
	default:
		point = NewVec3(box.Min.X+size.X*sample.Y, box.Min.Y+size.Y*sample.Z, box.Min.Z)
		if side {
			point.Z = box.Max.Z
		}
	}
	return point
}

// OrthonormalBasis builds two unit vectors perpendicular to normal and to each other
func OrthonormalBasis(normal Vec3) (Vec3, Vec3) {
	var nt Vec3
	if math.Abs(normal.X) > 0.1 {
		nt = NewVec3(0, 1, 0)
	} else {
		nt = NewVec3(1, 0, 0)
	}
	tangent := nt.Cross(normal).Normalize()
	bitangent := normal.Cross(tangent)
	return tangent, bitangent
}
