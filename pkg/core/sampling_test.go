package core

import (
	"math"
	"testing"
)

func TestRandomSampler_ReseedIsDeterministic(t *testing.T) {
	a := NewRandomSampler(1, 99)
	first := []float64{a.Get1D(), a.Get1D(), a.Get1D()}

	a.Reseed(1, 99)
	for i, expected := range first {
		if got := a.Get1D(); got != expected {
			t.Errorf("Sample %d: expected %f after reseed, got %f", i, expected, got)
		}
	}

	b := NewRandomSampler(1, 100)
	if b.Get1D() == first[0] {
		t.Error("Different streams should produce different sequences")
	}
}

func TestSampleCosineHemisphere_StaysAboveSurface(t *testing.T) {
	sampler := NewRandomSampler(3, 0)
	normals := []Vec3{NewVec3(0, 1, 0), NewVec3(1, 0, 0), NewVec3(0, 0, -1), NewVec3(1, 1, 1).Normalize()}

	for _, normal := range normals {
		for i := 0; i < 500; i++ {
			dir := SampleCosineHemisphere(normal, sampler.Get2D())
			if dir.Dot(normal) < -1e-9 {
				t.Fatalf("Direction %v below surface with normal %v", dir, normal)
			}
			if math.Abs(dir.Length()-1) > 1e-9 {
				t.Fatalf("Direction %v is not unit length", dir)
			}
		}
	}
}

func TestSampleHemisphere_Flips(t *testing.T) {
	normal := NewVec3(0, 0, 1)
	sampler := NewRandomSampler(5, 0)
	for i := 0; i < 200; i++ {
		if SampleHemisphere(normal, sampler.Get2D()).Dot(normal) < 0 {
			t.Fatal("Hemisphere sample points into the surface")
		}
	}
}

func TestSamplePointOnBox_OnSurface(t *testing.T) {
	box := NewAABB(NewVec3(-1, 0, 2), NewVec3(1, 3, 4))
	sampler := NewRandomSampler(9, 0)

	for i := 0; i < 1000; i++ {
		p := SamplePointOnBox(box, sampler.Get3D())
		if !box.Expand(1e-9).Contains(NewAABB(p, p)) {
			t.Fatalf("Point %v outside box", p)
		}
		onFace := false
		for axis := 0; axis < 3; axis++ {
			if math.Abs(p.Axis(axis)-box.Min.Axis(axis)) < 1e-9 || math.Abs(p.Axis(axis)-box.Max.Axis(axis)) < 1e-9 {
				onFace = true
			}
		}
		if !onFace {
			t.Fatalf("Point %v is not on any face", p)
		}
	}
}

func TestOrthonormalBasis(t *testing.T) {
	for _, n := range []Vec3{NewVec3(0, 1, 0), NewVec3(1, 0, 0), NewVec3(0.3, -0.4, 0.866).Normalize()} {
		u, v := OrthonormalBasis(n)
		if math.Abs(u.Dot(n)) > 1e-9 || math.Abs(v.Dot(n)) > 1e-9 || math.Abs(u.Dot(v)) > 1e-9 {
			t.Errorf("Basis for %v not orthogonal: %v %v", n, u, v)
		}
	}
}
