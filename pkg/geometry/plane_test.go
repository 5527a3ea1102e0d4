package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

func TestPlane_Hit(t *testing.T) {
	plane, err := NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 2, 0))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		wantHit   bool
		wantK     float64
		wantFront bool
	}{
		{"from above", core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0), true, 2, true},
		{"from below", core.NewVec3(3, -4, 1), core.NewVec3(0, 1, 0), true, 3, false},
		{"parallel", core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), false, 0, false},
		{"pointing away", core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0), false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.direction)
			hit, ok := plane.TryHit(ray, 0.001, 1000)
			if ok != tt.wantHit {
				t.Fatalf("Expected hit=%t, got %t", tt.wantHit, ok)
			}
			if ok != plane.FastTryHit(ray, 0.001, 1000) {
				t.Error("FastTryHit disagrees with TryHit")
			}
			if !ok {
				return
			}
			if math.Abs(hit.K-tt.wantK) > 1e-9 {
				t.Errorf("Expected k=%f, got %f", tt.wantK, hit.K)
			}
			if hit.FrontFace != tt.wantFront {
				t.Errorf("Expected front face %t, got %t", tt.wantFront, hit.FrontFace)
			}
			if hit.Normal.Dot(ray.Direction) >= 0 {
				t.Errorf("Normal %v should face against the ray", hit.Normal)
			}
		})
	}
}

func TestPlane_IsUnbounded(t *testing.T) {
	plane, err := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	if err != nil {
		t.Fatal(err)
	}
	bv := plane.BoundingVolume()
	if !bv.Unbounded {
		t.Fatal("Expected an unbounded volume")
	}
	if !bv.Hit(core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, 1, 0)), 0.001, 1) {
		t.Error("Unbounded volumes always report a hit")
	}
}

func TestPlane_RejectsZeroNormal(t *testing.T) {
	if _, err := NewPlane(core.NewVec3(0, 0, 0), core.Vec3{}); !errors.Is(err, ErrDegenerate) {
		t.Errorf("Expected ErrDegenerate, got %v", err)
	}
}
