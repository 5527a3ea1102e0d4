package scene

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
)

// Builder assembles a Scene. Construction errors from shapes and lights are
// collected as they are added and reported together by Build, so calls can
// be chained straight from constructors:
//
//	b.Add("floor", b.Shape(geometry.NewQuad(corner, u, v)), white)
type Builder struct {
	scene     Scene
	hasCamera bool
	names     map[string]bool
	err       error
}

// NewBuilder starts a scene with default render options and a black skybox
func NewBuilder(name string) *Builder {
	return &Builder{
		scene: Scene{
			Name:    name,
			Skybox:  NewSolidSkybox(core.Vec3{}),
			Options: core.DefaultRenderOptions(),
		},
		names: make(map[string]bool),
	}
}

// Describe sets the scene description
func (b *Builder) Describe(description string) *Builder {
	b.scene.Description = description
	return b
}

// Camera sets the camera configuration
func (b *Builder) Camera(config geometry.CameraConfig) *Builder {
	b.scene.CameraConfig = config
	b.hasCamera = true
	return b
}

// Skybox sets the background
func (b *Builder) Skybox(skybox Skybox) *Builder {
	b.scene.Skybox = skybox
	return b
}

// Options sets the recommended render options
func (b *Builder) Options(options core.RenderOptions) *Builder {
	b.scene.Options = options
	return b
}

// Shape passes shape through, recording err. It returns nil when err is set.
func (b *Builder) Shape(shape core.Shape, err error) core.Shape {
	if err != nil {
		b.fail(err)
		return nil
	}
	return shape
}

// Add places an object in the scene. Objects whose shape failed to construct are skipped.
func (b *Builder) Add(name string, shape core.Shape, material core.Material) *Builder {
	if shape == nil {
		// The constructor error has already been recorded
		return b
	}
	if name == "" {
		name = fmt.Sprintf("%s-%d", shape.Kind(), len(b.scene.Objects))
	}
	if b.names[name] {
		b.fail(fmt.Errorf("%w: duplicate object name %q", ErrInvalidScene, name))
		return b
	}
	if material == nil {
		b.fail(fmt.Errorf("%w: object %q has no material", ErrInvalidScene, name))
		return b
	}
	b.names[name] = true
	b.scene.Objects = append(b.scene.Objects, core.NewObject(name, shape, material))
	return b
}

// Light adds a light, recording err
func (b *Builder) Light(light core.Light, err error) *Builder {
	if err != nil {
		b.fail(err)
		return b
	}
	if light == nil {
		b.fail(fmt.Errorf("%w: nil light", ErrInvalidScene))
		return b
	}
	b.scene.Lights = append(b.scene.Lights, light)
	return b
}

// Fail records an error found outside the builder
func (b *Builder) Fail(err error) *Builder {
	b.fail(err)
	return b
}

func (b *Builder) fail(err error) {
	b.err = multierr.Append(b.err, err)
}

// Build validates the scene and returns it, or every error collected so far
func (b *Builder) Build() (*Scene, error) {
	err := b.err
	if !b.hasCamera {
		err = multierr.Append(err, ErrNoCamera)
	} else if cameraErr := b.scene.CameraConfig.Validate(); cameraErr != nil {
		err = multierr.Append(err, cameraErr)
	}
	if optionsErr := b.scene.Options.Validate(); optionsErr != nil {
		err = multierr.Append(err, optionsErr)
	}
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", b.scene.Name, err)
	}

	s := b.scene
	s.Camera = geometry.NewCamera(s.CameraConfig)
	s.Objects = append([]*core.Object(nil), b.scene.Objects...)
	s.Lights = append([]core.Light(nil), b.scene.Lights...)
	return &s, nil
}
