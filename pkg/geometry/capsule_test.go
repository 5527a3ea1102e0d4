package geometry

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

func TestCapsule_Hit(t *testing.T) {
	// Vertical capsule from y=0 to y=2 with radius 0.5
	capsule, err := NewCapsule(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 0.5)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		origin     core.Vec3
		direction  core.Vec3
		wantHit    bool
		wantK      float64
		wantNormal core.Vec3
	}{
		{"body side", core.NewVec3(-3, 1, 0), core.NewVec3(1, 0, 0), true, 2.5, core.NewVec3(-1, 0, 0)},
		{"top cap", core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0), true, 2.5, core.NewVec3(0, 1, 0)},
		{"bottom cap", core.NewVec3(0, -4, 0), core.NewVec3(0, 1, 0), true, 3.5, core.NewVec3(0, -1, 0)},
		{"beside", core.NewVec3(-3, 1, 0.6), core.NewVec3(1, 0, 0), false, 0, core.Vec3{}},
		{"above", core.NewVec3(-3, 2.6, 0), core.NewVec3(1, 0, 0), false, 0, core.Vec3{}},
		{"from inside", core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1), true, 0.5, core.NewVec3(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.direction)
			hit, ok := capsule.TryHit(ray, 0.001, 100)
			if ok != tt.wantHit {
				t.Fatalf("Expected hit=%t, got %t", tt.wantHit, ok)
			}
			if ok != capsule.FastTryHit(ray, 0.001, 100) {
				t.Error("FastTryHit disagrees with TryHit")
			}
			if !ok {
				return
			}
			if math.Abs(hit.K-tt.wantK) > 1e-9 {
				t.Errorf("Expected k=%f, got %f", tt.wantK, hit.K)
			}
			if !vecNear(hit.Normal, tt.wantNormal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", tt.wantNormal, hit.Normal)
			}
		})
	}
}

func TestCapsule_HitsLieOnSurface(t *testing.T) {
	a, b := core.NewVec3(-1, 0.5, 0), core.NewVec3(1, -0.5, 0.3)
	capsule, err := NewCapsule(a, b, 0.4)
	if err != nil {
		t.Fatal(err)
	}
	random := rand.New(rand.NewPCG(3, 5))
	hits := 0
	for i := 0; i < 1000; i++ {
		origin := core.NewVec3(random.Float64()*8-4, random.Float64()*8-4, random.Float64()*8-4)
		target := core.NewVec3(random.Float64()*2-1, random.Float64()-0.5, random.Float64()-0.5)
		ray := core.NewRay(origin, target.Subtract(origin))

		hit, ok := capsule.TryHit(ray, 0.001, 100)
		if !ok {
			continue
		}
		hits++
		// Distance from the hit point to the segment equals the radius
		ab := b.Subtract(a)
		h := math.Max(0, math.Min(1, hit.Point.Subtract(a).Dot(ab)/ab.Dot(ab)))
		if d := hit.Point.Subtract(a.Add(ab.Multiply(h))).Length(); math.Abs(d-0.4) > 1e-6 {
			t.Fatalf("Hit at %v is %g from the axis", hit.Point, d)
		}
		if !capsule.BoundingVolume().Box.Expand(1e-9).Contains(core.AABB{Min: hit.Point, Max: hit.Point}) {
			t.Fatalf("Hit %v outside bounding box", hit.Point)
		}
	}
	if hits == 0 {
		t.Fatal("Expected some rays to hit the capsule")
	}
}

func TestCapsule_RejectsBadInput(t *testing.T) {
	if _, err := NewCapsule(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), 1); !errors.Is(err, ErrDegenerate) {
		t.Errorf("zero-length segment: expected ErrDegenerate, got %v", err)
	}
	if _, err := NewCapsule(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), -1); !errors.Is(err, ErrDegenerate) {
		t.Errorf("negative radius: expected ErrDegenerate, got %v", err)
	}
}
