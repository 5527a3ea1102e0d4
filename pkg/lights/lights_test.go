package lights

import (
	"math"
	"testing"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
)

func newContext(t *testing.T, objects ...*core.Object) *core.RenderContext {
	t.Helper()
	options := core.DefaultRenderOptions()
	return &core.RenderContext{
		Options:     &options,
		Tracer:      geometry.NewBVH(objects, nil),
		Sampler:     core.NewRandomSampler(1, 1),
		Diagnostics: core.NewDiagnostics(),
	}
}

// floorHit is a hit at the origin on a surface facing +y
func floorHit() *core.HitRecord {
	ray := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1))
	hit := &core.HitRecord{Ray: ray, Point: core.NewVec3(0, 0, 0)}
	hit.SetFaceNormal(ray, core.NewVec3(0, 1, 0))
	return hit
}

func sphereObject(t *testing.T, name string, center core.Vec3, radius float64) *core.Object {
	t.Helper()
	sphere, err := geometry.NewSphere(center, radius)
	if err != nil {
		t.Fatal(err)
	}
	return core.NewObject(name, sphere, nil)
}

func TestAttenuation(t *testing.T) {
	tests := []struct {
		name        string
		attenuation Attenuation
		distance    float64
		want        float64
	}{
		{"constant", ConstantAttenuation(), 10, 1},
		{"zero value is constant", Attenuation{}, 10, 1},
		{"inverse square", InverseSquare(0.1), 2, 0.25},
		{"inverse square clamp", InverseSquare(0.5), 0.1, 4},
		{"custom", CustomAttenuation(func(d float64) float64 { return 1 / d }), 4, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.attenuation.Factor(tt.distance); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Expected %g, got %g", tt.want, got)
			}
		})
	}

	if err := (Attenuation{Mode: "cubic"}).Validate(); err == nil {
		t.Error("Expected unknown mode to be rejected")
	}
	if err := (Attenuation{Mode: AttenuationCustom}).Validate(); err == nil {
		t.Error("Expected custom mode without a function to be rejected")
	}
}

func TestPointLight_Unoccluded(t *testing.T) {
	light := NewPointLight("key", core.NewVec3(0, 2, 0), core.NewVec3(4, 4, 4))
	ctx := newContext(t)

	got := light.CalculateLight(floorHit(), ctx)
	// 4 / 2²
	if got.Subtract(core.NewVec3(1, 1, 1)).Length() > 1e-12 {
		t.Errorf("Expected (1,1,1), got %v", got)
	}

	sample := light.SampleLight(floorHit(), ctx)
	if !sample.Visible || math.Abs(sample.Distance-2) > 1e-12 {
		t.Errorf("Unexpected sample %+v", sample)
	}
}

func TestPointLight_Occluded(t *testing.T) {
	blocker := sphereObject(t, "blocker", core.NewVec3(0, 1, 0), 0.25)
	light := NewPointLight("key", core.NewVec3(0, 2, 0), core.NewVec3(1, 1, 1))
	ctx := newContext(t, blocker)

	if got := light.CalculateLight(floorHit(), ctx); !got.Equals(core.Vec3{}) {
		t.Errorf("Expected a shadow, got %v", got)
	}
	if light.SampleLight(floorHit(), ctx).Visible {
		t.Error("Sample should report occlusion")
	}
}

func TestPointLight_Importance(t *testing.T) {
	// Light at 60 degrees from the normal
	position := core.NewVec3(math.Sin(math.Pi/3), math.Cos(math.Pi/3), 0)
	ctx := newContext(t)

	tests := []struct {
		importance float64
		want       float64
	}{
		{0, 1},
		{1, 0.5},
		{0.5, 0.75},
	}
	for _, tt := range tests {
		light := NewPointLight("key", position, core.NewVec3(1, 1, 1)).
			WithAttenuation(ConstantAttenuation()).
			WithImportance(tt.importance)
		if got := light.CalculateLight(floorHit(), ctx); math.Abs(got.X-tt.want) > 1e-9 {
			t.Errorf("importance %g: expected %g, got %v", tt.importance, tt.want, got)
		}
	}
}

func TestSphereLight_NotShadowedByItsOwnShape(t *testing.T) {
	sphere, err := geometry.NewSphere(core.NewVec3(0, 3, 0), 0.5)
	if err != nil {
		t.Fatal(err)
	}
	light, err := NewSphereLight("bulb", sphere, core.NewVec3(1, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	light.WithAttenuation(ConstantAttenuation())
	// The emitting sphere is itself part of the scene
	ctx := newContext(t, core.NewObject("bulb", sphere, nil))

	got := light.CalculateLight(floorHit(), ctx)
	if math.Abs(got.X-1) > 1e-9 {
		t.Errorf("Expected full, unshadowed light, got %v", got)
	}
}

func TestSphereLight_SamplesOnBoundingBox(t *testing.T) {
	box, err := geometry.NewBox(core.NewVec3(-1, 4, -1), core.NewVec3(1, 5, 1))
	if err != nil {
		t.Fatal(err)
	}
	light, err := NewSphereLight("panel", box, core.NewVec3(1, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	ctx := newContext(t)
	bounds := box.BoundingVolume().Box.Expand(1e-9)
	for i := 0; i < 100; i++ {
		sample := light.SampleLight(floorHit(), ctx)
		if !bounds.Contains(core.AABB{Min: sample.Point, Max: sample.Point}) {
			t.Fatalf("Sample %v outside the light's box", sample.Point)
		}
	}
}

func TestSphereLight_RejectsUnboundedShape(t *testing.T) {
	plane, err := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewSphereLight("sky", plane, core.NewVec3(1, 1, 1)); err == nil {
		t.Error("Expected an error for an unbounded shape")
	}
}

func TestShapedLight_HitsShape(t *testing.T) {
	disc, err := geometry.NewDisc(core.NewVec3(0, 3, 0), core.NewVec3(0, -1, 0), 1)
	if err != nil {
		t.Fatal(err)
	}
	light, err := NewShapedLight("disc", disc, core.NewVec3(1, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	light.WithAttenuation(ConstantAttenuation())
	ctx := newContext(t)

	for i := 0; i < 50; i++ {
		sample := light.SampleLight(floorHit(), ctx)
		if !sample.Visible {
			t.Fatal("Nothing blocks the disc")
		}
		if math.Abs(sample.Point.Y-3) > 1e-9 || sample.Point.Subtract(core.NewVec3(0, 3, 0)).Length() > 1+1e-9 {
			t.Fatalf("Sample %v is not on the disc", sample.Point)
		}
	}
	if n := ctx.Diagnostics.Total(core.DiagLightSamplingExhausted); n > 0 {
		t.Errorf("A disc is easy to hit, yet sampling was exhausted %d times", n)
	}
}

// missShape has a bounding box but can never be struck
type missShape struct{}

func (missShape) TryHit(core.Ray, float64, float64) (core.HitRecord, bool) {
	return core.HitRecord{}, false
}
func (missShape) FastTryHit(core.Ray, float64, float64) bool { return false }
func (missShape) BoundingVolume() core.BoundingVolume {
	return core.Bounded(core.NewAABB(core.NewVec3(-1, 3, -1), core.NewVec3(1, 4, 1)))
}
func (missShape) Kind() core.ShapeKind { return core.ShapeSphere }

func TestShapedLight_ExhaustionFallsBack(t *testing.T) {
	light, err := NewShapedLight("ghost", missShape{}, core.NewVec3(1, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	light.MaxAttempts = 4
	light.WithAttenuation(ConstantAttenuation())

	// Even an occluder in the way does not matter for the fallback
	blocker := sphereObject(t, "blocker", core.NewVec3(0, 2, 0), 0.25)
	ctx := newContext(t, blocker)

	sample := light.SampleLight(floorHit(), ctx)
	if !sample.Visible || math.Abs(sample.Colour.X-1) > 1e-12 {
		t.Errorf("Expected an unshadowed fallback sample, got %+v", sample)
	}
	if !sample.Point.Equals(core.NewVec3(0, 3.5, 0)) {
		t.Errorf("Expected the box centre, got %v", sample.Point)
	}
	if got := ctx.Diagnostics.Count(core.DiagLightSamplingExhausted, "ghost"); got != 1 {
		t.Errorf("Expected one exhaustion diagnostic, got %d", got)
	}
}

func TestSampleCountFor(t *testing.T) {
	options := core.DefaultRenderOptions()
	options.LightSamples = 6
	sphere, err := geometry.NewSphere(core.NewVec3(0, 3, 0), 0.5)
	if err != nil {
		t.Fatal(err)
	}
	area, err := NewSphereLight("bulb", sphere, core.NewVec3(1, 1, 1))
	if err != nil {
		t.Fatal(err)
	}

	if got := options.SampleCountFor(NewPointLight("key", core.NewVec3(0, 2, 0), core.NewVec3(1, 1, 1))); got != 1 {
		t.Errorf("Point lights need one sample, got %d", got)
	}
	if got := options.SampleCountFor(area); got != 6 {
		t.Errorf("Expected 6 samples for an area light, got %d", got)
	}
}
