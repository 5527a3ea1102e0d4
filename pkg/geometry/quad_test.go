package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

func TestQuad_Hit(t *testing.T) {
	// Unit square in the z = 0 plane
	quad, err := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		wantHit   bool
		wantK     float64
		wantUV    core.Vec2
	}{
		{"center", core.NewVec3(0.5, 0.5, 1), core.NewVec3(0, 0, -1), true, 1, core.NewVec2(0.5, 0.5)},
		{"near corner", core.NewVec3(0.1, 0.9, -2), core.NewVec3(0, 0, 1), true, 2, core.NewVec2(0.1, 0.9)},
		{"outside u", core.NewVec3(1.5, 0.5, 1), core.NewVec3(0, 0, -1), false, 0, core.Vec2{}},
		{"outside v", core.NewVec3(0.5, -0.1, 1), core.NewVec3(0, 0, -1), false, 0, core.Vec2{}},
		{"parallel", core.NewVec3(0.5, 0.5, 1), core.NewVec3(1, 0, 0), false, 0, core.Vec2{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.direction)
			hit, ok := quad.TryHit(ray, 0.001, 1000)
			if ok != tt.wantHit {
				t.Fatalf("Expected hit=%t, got %t", tt.wantHit, ok)
			}
			if ok != quad.FastTryHit(ray, 0.001, 1000) {
				t.Error("FastTryHit disagrees with TryHit")
			}
			if !ok {
				return
			}
			if math.Abs(hit.K-tt.wantK) > 1e-9 {
				t.Errorf("Expected k=%f, got %f", tt.wantK, hit.K)
			}
			if math.Abs(hit.UV.X-tt.wantUV.X) > 1e-9 || math.Abs(hit.UV.Y-tt.wantUV.Y) > 1e-9 {
				t.Errorf("Expected uv %v, got %v", tt.wantUV, hit.UV)
			}
		})
	}
}

func TestQuad_RejectsDegenerateEdges(t *testing.T) {
	tests := []struct {
		name string
		u, v core.Vec3
	}{
		{"parallel", core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0)},
		{"zero u", core.Vec3{}, core.NewVec3(0, 1, 0)},
		{"anti-parallel", core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewQuad(core.NewVec3(0, 0, 0), tt.u, tt.v); !errors.Is(err, ErrDegenerate) {
				t.Errorf("Expected ErrDegenerate, got %v", err)
			}
		})
	}
}

func TestQuad_BoundingBoxIsPadded(t *testing.T) {
	quad, err := NewAxisQuad(1, 2, core.NewVec2(-1, -1), core.NewVec2(1, 1))
	if err != nil {
		t.Fatal(err)
	}
	box := quad.BoundingVolume().Box
	if box.Max.Y-box.Min.Y <= 0 {
		t.Errorf("Flat quad must have a padded box, got %v", box)
	}
	if math.Abs(box.Center().Y-2) > 1e-9 {
		t.Errorf("Box should be centred on the quad plane, got %v", box)
	}
	// An axis-aligned ray through the padded box must survive the slab test
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))
	if !box.Hit(ray, 0.001, 100) {
		t.Error("Expected the padded box to be hit")
	}
	if _, ok := quad.TryHit(ray, 0.001, 100); !ok {
		t.Error("Expected the quad to be hit")
	}
}
