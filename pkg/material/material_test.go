package material

import (
	"math"
	"testing"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
)

// constantSampler returns the same value for every dimension
type constantSampler struct {
	value float64
}

func (s constantSampler) Get1D() float64 { return s.value }
func (s constantSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.value, s.value)
}
func (s constantSampler) Get3D() core.Vec3 {
	return core.NewVec3(s.value, s.value, s.value)
}

// fixedLight always returns the same sample
type fixedLight struct {
	sample core.LightSample
}

func (l fixedLight) SampleLight(hit *core.HitRecord, ctx *core.RenderContext) core.LightSample {
	return l.sample
}

func (l fixedLight) CalculateLight(hit *core.HitRecord, ctx *core.RenderContext) core.Vec3 {
	return l.sample.Colour
}

// countingLight records how often it is sampled
type countingLight struct {
	fixedLight
	single bool
	calls  *int
}

func (l countingLight) SampleLight(hit *core.HitRecord, ctx *core.RenderContext) core.LightSample {
	*l.calls++
	return l.sample
}

func (l countingLight) SingleSample() bool { return l.single }

func newTestContext(sampler core.Sampler, lights ...core.Light) *core.RenderContext {
	options := core.DefaultRenderOptions()
	return &core.RenderContext{Options: &options, Lights: lights, Sampler: sampler}
}

// hitFrom builds a hit at the origin on a surface facing +y
func hitFrom(direction core.Vec3, material core.Material) *core.HitRecord {
	ray := core.NewRay(core.NewVec3(0, 0, 0).Subtract(direction.Normalize()), direction)
	hit := &core.HitRecord{Ray: ray, Point: core.NewVec3(0, 0, 0), K: 1, Material: material}
	hit.SetFaceNormal(ray, core.NewVec3(0, 1, 0))
	return hit
}

func TestStandard_MirrorScatter(t *testing.T) {
	mirror := NewStandard(core.NewVec3(1, 1, 1), 0)
	hit := hitFrom(core.NewVec3(1, -1, 0), mirror)

	ray, ok := mirror.Scatter(hit, nil, newTestContext(constantSampler{0.3}))
	if !ok {
		t.Fatal("Standard materials always scatter")
	}
	want := core.NewVec3(1, 1, 0).Normalize()
	if ray.Direction.Subtract(want).Length() > 1e-9 {
		t.Errorf("Expected mirror direction %v, got %v", want, ray.Direction)
	}
	if !ray.Origin.Equals(hit.Point) {
		t.Errorf("Scattered ray must start at the hit point, got %v", ray.Origin)
	}
}

func TestStandard_DiffuseScatterStaysAboveSurface(t *testing.T) {
	diffuse := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	hit := hitFrom(core.NewVec3(0, -1, 0), diffuse)

	for _, v := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.99} {
		ray, ok := diffuse.Scatter(hit, nil, newTestContext(constantSampler{v}))
		if !ok {
			t.Fatal("Standard materials always scatter")
		}
		if ray.Direction.Dot(hit.Normal) < 0 {
			t.Errorf("sample %g: scattered below the surface: %v", v, ray.Direction)
		}
	}
}

func TestStandard_CalculateColour(t *testing.T) {
	material := &Standard{
		Albedo:    NewSolidColor(core.NewVec3(0.5, 1, 0)),
		Emission:  NewSolidColor(core.NewVec3(0.1, 0.1, 0.1)),
		Diffusion: 1,
	}
	light := fixedLight{core.LightSample{Colour: core.NewVec3(1, 1, 1), Visible: true}}
	hit := hitFrom(core.NewVec3(0, -1, 0), material)
	ctx := newTestContext(constantSampler{0.5}, light)

	got := material.CalculateColour(core.NewVec3(1, 1, 1), core.Ray{}, hit, nil, ctx)
	// (light 1 + continuation 1) × albedo + emission
	want := core.NewVec3(1.1, 2.1, 0.1)
	if got.Subtract(want).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestDielectric_ReflectanceAtNormalIncidence(t *testing.T) {
	for _, ratio := range []float64{1.0 / 1.5, 1.5, 1.0 / 1.33, 2.4} {
		r0 := math.Pow((1-ratio)/(1+ratio), 2)
		if got := Reflectance(1, ratio); math.Abs(got-r0) > 1e-12 {
			t.Errorf("ratio %g: expected r0=%g, got %g", ratio, r0, got)
		}
	}
	if got := Reflectance(0, 1.5); math.Abs(got-1) > 1e-12 {
		t.Errorf("Grazing incidence should reflect fully, got %g", got)
	}
}

func TestDielectric_RefractsWhenEntering(t *testing.T) {
	glass := NewDielectric(1.5)
	hit := hitFrom(core.NewVec3(0, -1, 0), glass)

	// A high draw beats r0 = 0.04, so the ray refracts straight through
	ray, ok := glass.Scatter(hit, nil, newTestContext(constantSampler{0.99}))
	if !ok {
		t.Fatal("Dielectrics always scatter")
	}
	if ray.Direction.Subtract(core.NewVec3(0, -1, 0)).Length() > 1e-9 {
		t.Errorf("Expected to pass straight through, got %v", ray.Direction)
	}

	// A low draw selects reflection
	ray, _ = glass.Scatter(hit, nil, newTestContext(constantSampler{0.01}))
	if ray.Direction.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-9 {
		t.Errorf("Expected reflection, got %v", ray.Direction)
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)
	// 60 degrees from the normal: sin = 0.866, 1.5 × 0.866 > 1
	direction := core.NewVec3(math.Sin(math.Pi/3), -math.Cos(math.Pi/3), 0)
	hit := hitFrom(direction, glass)
	previous := []core.HitRecord{{Material: glass}}

	ray, ok := glass.Scatter(hit, previous, newTestContext(constantSampler{0.99}))
	if !ok {
		t.Fatal("Dielectrics always scatter")
	}
	if ray.Direction.Dot(hit.Normal) <= 0 {
		t.Errorf("Expected total internal reflection, got %v", ray.Direction)
	}

	// The same ray from outside refracts
	ray, _ = glass.Scatter(hit, nil, newTestContext(constantSampler{0.99}))
	if ray.Direction.Dot(hit.Normal) >= 0 {
		t.Errorf("Expected refraction from outside, got %v", ray.Direction)
	}
}

func TestDielectric_EmissionPolicy(t *testing.T) {
	emissive := &Dielectric{
		Tint:            NewSolidColor(core.NewVec3(1, 1, 1)),
		Emission:        NewSolidColor(core.NewVec3(2, 2, 2)),
		RefractiveIndex: 1.5,
	}
	other := NewLambertian(core.NewVec3(1, 1, 1))
	hit := hitFrom(core.NewVec3(0, -1, 0), emissive)
	ctx := newTestContext(constantSampler{0.5})

	tests := []struct {
		name   string
		chain  []core.HitRecord
		direct bool
		want   float64
	}{
		{"camera ray", nil, false, 0},
		{"through itself", []core.HitRecord{{Material: emissive}}, false, 0},
		{"after a bounce", []core.HitRecord{{Material: other}}, false, 2},
		{"direct emission", nil, true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emissive.DirectEmission = tt.direct
			got := emissive.CalculateColour(core.Vec3{}, core.Ray{}, hit, tt.chain, ctx)
			if math.Abs(got.X-tt.want) > 1e-12 {
				t.Errorf("Expected %g emission, got %v", tt.want, got)
			}
		})
	}
}

func TestPhong(t *testing.T) {
	phong := &Phong{
		Albedo:         NewSolidColor(core.NewVec3(1, 0, 0)),
		Specular:       NewSolidColor(core.NewVec3(1, 1, 1)),
		Ambient:        0.1,
		Diffuse:        1,
		SpecularWeight: 1,
		Shininess:      10,
	}
	// Light straight above, viewer straight above: full lambert and full highlight
	above := fixedLight{core.LightSample{Direction: core.NewVec3(0, 1, 0), Colour: core.NewVec3(1, 1, 1), Visible: true}}
	hit := hitFrom(core.NewVec3(0, -1, 0), phong)

	got := phong.CalculateColour(core.Vec3{}, core.Ray{}, hit, nil, newTestContext(constantSampler{0.5}, above))
	want := core.NewVec3(0.1+1+1, 1, 1)
	if got.Subtract(want).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", want, got)
	}

	hidden := fixedLight{core.LightSample{Direction: core.NewVec3(0, 1, 0), Visible: false}}
	got = phong.CalculateColour(core.Vec3{}, core.Ray{}, hit, nil, newTestContext(constantSampler{0.5}, hidden))
	if got.Subtract(core.NewVec3(0.1, 0, 0)).Length() > 1e-9 {
		t.Errorf("Occluded light should leave only ambient, got %v", got)
	}

	if _, ok := phong.Scatter(hit, nil, newTestContext(constantSampler{0.5})); ok {
		t.Error("Non-reflective Phong must absorb")
	}
	phong.Reflectivity = 0.5
	if _, ok := phong.Scatter(hit, nil, newTestContext(constantSampler{0.5})); !ok {
		t.Error("Reflective Phong must scatter")
	}
}

func TestPhong_LightSampleCount(t *testing.T) {
	phong := &Phong{Albedo: NewSolidColor(core.NewVec3(1, 1, 1)), Diffuse: 1}
	hit := hitFrom(core.NewVec3(0, -1, 0), phong)
	sample := core.LightSample{Direction: core.NewVec3(0, 1, 0), Colour: core.NewVec3(1, 1, 1), Visible: true}

	tests := []struct {
		name   string
		single bool
		want   int
	}{
		{"fixed position", true, 1},
		{"area", false, core.DefaultRenderOptions().LightSampleCount()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			light := countingLight{fixedLight: fixedLight{sample}, single: tt.single, calls: &calls}
			got := phong.CalculateColour(core.Vec3{}, core.Ray{}, hit, nil, newTestContext(constantSampler{0.5}, light))
			if calls != tt.want {
				t.Errorf("Expected %d samples, got %d", tt.want, calls)
			}
			if got.Subtract(core.NewVec3(1, 1, 1)).Length() > 1e-9 {
				t.Errorf("Expected full diffuse, got %v", got)
			}
		})
	}
}

func TestVolumetric_Attenuation(t *testing.T) {
	fog := NewVolumetric(core.NewVec3(0.5, 1, 0.25))
	hit := hitFrom(core.NewVec3(0, -1, 0), fog)
	hit.Payload = geometry.MediumSample{Distance: 2, Density: 1}

	got := fog.CalculateColour(core.NewVec3(1, 1, 1), core.Ray{}, hit, nil, newTestContext(constantSampler{0.5}))
	want := core.NewVec3(0.25, 1, 0.0625)
	if got.Subtract(want).Length() > 1e-12 {
		t.Errorf("Expected albedo^2 = %v, got %v", want, got)
	}

	ray, ok := fog.Scatter(hit, nil, newTestContext(constantSampler{0.3}))
	if !ok || math.Abs(ray.Direction.Length()-1) > 1e-9 {
		t.Errorf("Expected a unit scatter direction, got %v (ok=%t)", ray.Direction, ok)
	}
}
