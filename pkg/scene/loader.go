package scene

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/lights"
	"github.com/df07/go-stochastic-raytracer/pkg/loaders"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// File is the YAML scene description
type File struct {
	Name        string                  `yaml:"name"`
	Description string                  `yaml:"description"`
	Camera      *geometry.CameraConfig  `yaml:"camera"`
	Render      core.RenderOptions      `yaml:"render"`
	Skybox      SkyboxSpec              `yaml:"skybox"`
	Materials   map[string]MaterialSpec `yaml:"materials"`
	Objects     []ObjectSpec            `yaml:"objects"`
	Lights      []LightSpec             `yaml:"lights"`
}

// SkyboxSpec describes the background
type SkyboxSpec struct {
	Type   string    `yaml:"type"` // solid | gradient
	Color  core.Vec3 `yaml:"color"`
	Top    core.Vec3 `yaml:"top"`
	Bottom core.Vec3 `yaml:"bottom"`
}

// TextureSpec describes a colour source. A bare vector is a solid colour.
type TextureSpec struct {
	Type     string    `yaml:"type"` // solid | checker | image
	Color    core.Vec3 `yaml:"color"`
	Even     core.Vec3 `yaml:"even"`
	Odd      core.Vec3 `yaml:"odd"`
	Scale    float64   `yaml:"scale"`
	Path     string    `yaml:"path"`
	Bilinear bool      `yaml:"bilinear"`
}

// UnmarshalYAML lets a texture be written as a plain colour
func (t *TextureSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		var color core.Vec3
		if err := node.Decode(&color); err != nil {
			return err
		}
		*t = TextureSpec{Type: "solid", Color: color}
		return nil
	}
	type plain TextureSpec
	return node.Decode((*plain)(t))
}

// MaterialSpec describes any material variant
type MaterialSpec struct {
	Type            string       `yaml:"type"` // standard | dielectric | phong | volumetric
	Albedo          *TextureSpec `yaml:"albedo"`
	Emission        *TextureSpec `yaml:"emission"`
	Diffusion       *float64     `yaml:"diffusion"`
	Tint            *TextureSpec `yaml:"tint"`
	RefractiveIndex float64      `yaml:"refractive_index"`
	DirectLighting  bool         `yaml:"direct_lighting"`
	DirectEmission  bool         `yaml:"direct_emission"`
	Specular        *TextureSpec `yaml:"specular"`
	Ambient         float64      `yaml:"ambient"`
	Diffuse         float64      `yaml:"diffuse"`
	SpecularWeight  float64      `yaml:"specular_weight"`
	Shininess       float64      `yaml:"shininess"`
	Reflectivity    float64      `yaml:"reflectivity"`
}

// ShapeSpec describes any shape variant
type ShapeSpec struct {
	Type     string     `yaml:"type"` // sphere | plane | quad | box | disc | capsule | medium
	Center   core.Vec3  `yaml:"center"`
	Radius   float64    `yaml:"radius"`
	Point    core.Vec3  `yaml:"point"`
	Normal   core.Vec3  `yaml:"normal"`
	Corner   core.Vec3  `yaml:"corner"`
	U        core.Vec3  `yaml:"u"`
	V        core.Vec3  `yaml:"v"`
	Min      core.Vec3  `yaml:"min"`
	Max      core.Vec3  `yaml:"max"`
	A        core.Vec3  `yaml:"a"`
	B        core.Vec3  `yaml:"b"`
	Density  float64    `yaml:"density"`
	Boundary *ShapeSpec `yaml:"boundary"`
}

// ObjectSpec places a shape with a named material
type ObjectSpec struct {
	Name     string    `yaml:"name"`
	Material string    `yaml:"material"`
	Shape    ShapeSpec `yaml:"shape"`
}

// LightSpec describes any light variant
type LightSpec struct {
	Type        string             `yaml:"type"` // point | sphere | shaped
	Name        string             `yaml:"name"`
	Position    core.Vec3          `yaml:"position"`
	Color       core.Vec3          `yaml:"color"`
	Shape       *ShapeSpec         `yaml:"shape"`
	Object      string             `yaml:"object"` // Reuse the shape of a named object
	Attenuation lights.Attenuation `yaml:"attenuation"`
	Importance  float64            `yaml:"importance"`
	MaxAttempts int                `yaml:"max_attempts"`
}

// cameraDefaults fills the camera fields a scene file leaves out
var cameraDefaults = geometry.CameraConfig{
	Up:          core.NewVec3(0, 1, 0),
	Width:       400,
	AspectRatio: 16.0 / 9.0,
	VFov:        40,
}

// LoadFile reads a YAML scene; texture paths are resolved relative to the file
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	s, err := Load(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Load parses a YAML scene description
func Load(data []byte, baseDir string) (*Scene, error) {
	// Render options left out of the file keep their defaults
	file := File{Render: core.DefaultRenderOptions()}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return file.Build(baseDir)
}

// Build turns the description into a Scene, reporting every problem at once
func (f *File) Build(baseDir string) (*Scene, error) {
	b := NewBuilder(f.Name).Describe(f.Description).Options(f.Render)
	if f.Camera != nil {
		b.Camera(geometry.MergeCameraConfig(cameraDefaults, *f.Camera))
	}

	switch f.Skybox.Type {
	case "", "solid":
		b.Skybox(NewSolidSkybox(f.Skybox.Color))
	case "gradient":
		b.Skybox(NewGradientSkybox(f.Skybox.Top, f.Skybox.Bottom))
	default:
		b.Fail(fmt.Errorf("%w: unknown skybox type %q", ErrInvalidScene, f.Skybox.Type))
	}

	materials := make(map[string]core.Material, len(f.Materials))
	for name, spec := range f.Materials {
		m, err := spec.build(baseDir)
		if err != nil {
			b.Fail(fmt.Errorf("material %q: %w", name, err))
			continue
		}
		materials[name] = m
	}

	shapes := make(map[string]core.Shape, len(f.Objects))
	for i, spec := range f.Objects {
		m, ok := materials[spec.Material]
		if !ok {
			b.Fail(fmt.Errorf("%w: object %d (%s) uses unknown material %q", ErrInvalidScene, i, spec.Name, spec.Material))
			continue
		}
		shape := b.Shape(spec.Shape.build())
		b.Add(spec.Name, shape, m)
		if shape != nil && spec.Name != "" {
			shapes[spec.Name] = shape
		}
	}

	for i, spec := range f.Lights {
		light, err := spec.build(shapes)
		if err != nil {
			err = fmt.Errorf("light %d (%s): %w", i, spec.Name, err)
		}
		b.Light(light, err)
	}

	return b.Build()
}

func (t *TextureSpec) build(baseDir string) (material.ColorSource, error) {
	if t == nil {
		return nil, nil
	}
	switch t.Type {
	case "", "solid":
		return material.NewSolidColor(t.Color), nil
	case "checker":
		scale := t.Scale
		if scale == 0 {
			scale = 1
		}
		return material.NewChecker(t.Even, t.Odd, scale), nil
	case "image":
		path := t.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		data, err := loaders.LoadImage(path)
		if err != nil {
			return nil, err
		}
		texture, err := material.NewImageTexture(data.Width, data.Height, data.Pixels)
		if err != nil {
			return nil, err
		}
		texture.Bilinear = t.Bilinear
		return texture, nil
	default:
		return nil, fmt.Errorf("%w: unknown texture type %q", ErrInvalidScene, t.Type)
	}
}

func (m *MaterialSpec) build(baseDir string) (core.Material, error) {
	albedo, err := m.Albedo.build(baseDir)
	if err != nil {
		return nil, err
	}
	emission, err := m.Emission.build(baseDir)
	if err != nil {
		return nil, err
	}

	switch m.Type {
	case "", "standard":
		diffusion := 1.0
		if m.Diffusion != nil {
			diffusion = *m.Diffusion
		}
		if diffusion < 0 || diffusion > 1 {
			return nil, fmt.Errorf("%w: diffusion %g outside [0, 1]", ErrInvalidScene, diffusion)
		}
		if albedo == nil {
			albedo = material.NewSolidColor(core.NewVec3(0.5, 0.5, 0.5))
		}
		return &material.Standard{Albedo: albedo, Emission: emission, Diffusion: diffusion}, nil

	case "dielectric":
		if m.RefractiveIndex <= 0 {
			return nil, fmt.Errorf("%w: refractive index %g must be positive", ErrInvalidScene, m.RefractiveIndex)
		}
		tint, err := m.Tint.build(baseDir)
		if err != nil {
			return nil, err
		}
		if tint == nil {
			tint = material.NewSolidColor(core.NewVec3(1, 1, 1))
		}
		return &material.Dielectric{
			Tint:            tint,
			Emission:        emission,
			RefractiveIndex: m.RefractiveIndex,
			DirectLighting:  m.DirectLighting,
			DirectEmission:  m.DirectEmission,
		}, nil

	case "phong":
		specular, err := m.Specular.build(baseDir)
		if err != nil {
			return nil, err
		}
		if albedo == nil {
			albedo = material.NewSolidColor(core.NewVec3(0.5, 0.5, 0.5))
		}
		if specular == nil {
			specular = material.NewSolidColor(core.NewVec3(1, 1, 1))
		}
		return &material.Phong{
			Albedo:         albedo,
			Specular:       specular,
			Ambient:        m.Ambient,
			Diffuse:        m.Diffuse,
			SpecularWeight: m.SpecularWeight,
			Shininess:      m.Shininess,
			Reflectivity:   m.Reflectivity,
		}, nil

	case "volumetric":
		if albedo == nil {
			albedo = material.NewSolidColor(core.NewVec3(1, 1, 1))
		}
		return &material.Volumetric{Albedo: albedo}, nil

	default:
		return nil, fmt.Errorf("%w: unknown material type %q", ErrInvalidScene, m.Type)
	}
}

func (s *ShapeSpec) build() (core.Shape, error) {
	switch s.Type {
	case "sphere":
		return geometry.NewSphere(s.Center, s.Radius)
	case "plane":
		return geometry.NewPlane(s.Point, s.Normal)
	case "quad":
		return geometry.NewQuad(s.Corner, s.U, s.V)
	case "box":
		return geometry.NewBox(s.Min, s.Max)
	case "disc":
		return geometry.NewDisc(s.Center, s.Normal, s.Radius)
	case "capsule":
		return geometry.NewCapsule(s.A, s.B, s.Radius)
	case "medium":
		if s.Boundary == nil {
			return nil, fmt.Errorf("%w: medium without a boundary", ErrInvalidScene)
		}
		boundary, err := s.Boundary.build()
		if err != nil {
			return nil, fmt.Errorf("medium boundary: %w", err)
		}
		return geometry.NewConstantMedium(boundary, s.Density)
	default:
		return nil, fmt.Errorf("%w: unknown shape type %q", ErrInvalidScene, s.Type)
	}
}

func (l *LightSpec) shape(shapes map[string]core.Shape) (core.Shape, error) {
	if l.Object != "" {
		shape, ok := shapes[l.Object]
		if !ok {
			return nil, fmt.Errorf("%w: unknown object %q", ErrInvalidScene, l.Object)
		}
		return shape, nil
	}
	if l.Shape == nil {
		return nil, fmt.Errorf("%w: %s light needs a shape or an object", ErrInvalidScene, l.Type)
	}
	return l.Shape.build()
}

func (l *LightSpec) build(shapes map[string]core.Shape) (core.Light, error) {
	if err := l.Attenuation.Validate(); err != nil {
		return nil, err
	}
	attenuation := l.Attenuation
	if attenuation.Mode == "" {
		attenuation = lights.InverseSquare(0.1)
	}

	switch l.Type {
	case "point":
		return lights.NewPointLight(l.Name, l.Position, l.Color).
			WithAttenuation(attenuation).
			WithImportance(l.Importance), nil

	case "sphere":
		shape, err := l.shape(shapes)
		if err != nil {
			return nil, err
		}
		light, err := lights.NewSphereLight(l.Name, shape, l.Color)
		if err != nil {
			return nil, err
		}
		return light.WithAttenuation(attenuation).WithImportance(l.Importance), nil

	case "shaped":
		shape, err := l.shape(shapes)
		if err != nil {
			return nil, err
		}
		light, err := lights.NewShapedLight(l.Name, shape, l.Color)
		if err != nil {
			return nil, err
		}
		if l.MaxAttempts > 0 {
			light.MaxAttempts = l.MaxAttempts
		}
		return light.WithAttenuation(attenuation).WithImportance(l.Importance), nil

	default:
		return nil, fmt.Errorf("%w: unknown light type %q", ErrInvalidScene, l.Type)
	}
}
