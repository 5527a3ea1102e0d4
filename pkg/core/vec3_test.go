package core

import (
	"math"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestVec3_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		normal   Vec3
		expected Vec3
	}{
		{"Straight down onto floor", NewVec3(0, -1, 0), NewVec3(0, 1, 0), NewVec3(0, 1, 0)},
		{"45 degrees onto floor", NewVec3(1, -1, 0), NewVec3(0, 1, 0), NewVec3(1, 1, 0)},
		{"Grazing", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Reflect(tt.normal)
			if result.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_LerpAndPow(t *testing.T) {
	a := NewVec3(0, 2, 4)
	b := NewVec3(2, 4, 8)

	if got := a.Lerp(b, 0.5); got != NewVec3(1, 3, 6) {
		t.Errorf("Expected midpoint (1,3,6), got %v", got)
	}
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Expected start point at t=0, got %v", got)
	}

	p := NewVec3(0.5, 0.25, 1).Pow(2)
	if math.Abs(p.X-0.25) > 1e-12 || math.Abs(p.Y-0.0625) > 1e-12 || p.Z != 1 {
		t.Errorf("Unexpected component-wise power %v", p)
	}
}

func TestVec3_AxisAndMinMax(t *testing.T) {
	v := NewVec3(1, -2, 3)
	for axis, expected := range []float64{1, -2, 3} {
		if v.Axis(axis) != expected {
			t.Errorf("Axis(%d): expected %f, got %f", axis, expected, v.Axis(axis))
		}
	}

	w := NewVec3(0, 5, 3)
	if got := v.MinVec(w); got != NewVec3(0, -2, 3) {
		t.Errorf("MinVec: got %v", got)
	}
	if got := v.MaxVec(w); got != NewVec3(1, 5, 3) {
		t.Errorf("MaxVec: got %v", got)
	}
}

func TestRay_PointAt(t *testing.T) {
	ray := NewRay(NewVec3(1, 1, 1), NewVec3(0, 0, 10))

	if math.Abs(ray.Direction.Length()-1) > 1e-12 {
		t.Fatalf("Expected unit direction, got length %f", ray.Direction.Length())
	}

	point := ray.PointAt(2.5)
	if point.Subtract(NewVec3(1, 1, 3.5)).Length() > 1e-12 {
		t.Errorf("Expected (1,1,3.5), got %v", point)
	}
}

func TestVec3_IsFinite(t *testing.T) {
	if !NewVec3(1, 2, 3).IsFinite() {
		t.Error("Expected finite vector")
	}
	if NewVec3(math.NaN(), 0, 0).IsFinite() {
		t.Error("NaN component should not be finite")
	}
	if NewVec3(0, math.Inf(1), 0).IsFinite() {
		t.Error("Inf component should not be finite")
	}
}

func TestVec3YAML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Vec3
	}{
		{"sequence", "[1, 2.5, -3]", NewVec3(1, 2.5, -3)},
		{"mapping", "{x: 1, y: 2, z: 3}", NewVec3(1, 2, 3)},
		{"scalar", "0.5", NewVec3(0.5, 0.5, 0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Vec3
			if err := yaml.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatal(err)
			}
			if !got.Equals(tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}

	var bad Vec3
	if err := yaml.Unmarshal([]byte("[1, 2]"), &bad); err == nil {
		t.Error("Expected an error for a short vector")
	}

	out, err := yaml.Marshal(NewVec3(1, 0.5, -2))
	if err != nil {
		t.Fatal(err)
	}
	var back Vec3
	if err := yaml.Unmarshal(out, &back); err != nil || !back.Equals(NewVec3(1, 0.5, -2)) {
		t.Errorf("Round trip through %q gave %v (%v)", out, back, err)
	}
}
