package scene

import (
	"errors"
	"math/rand/v2"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
)

var (
	// ErrNoCamera is returned when a scene is built without a camera
	ErrNoCamera = errors.New("scene has no camera")
	// ErrInvalidScene is wrapped by every other scene construction failure
	ErrInvalidScene = errors.New("invalid scene")
)

// Scene contains all the elements needed for rendering. It is immutable once built.
type Scene struct {
	Name         string
	Description  string
	Camera       *geometry.Camera
	CameraConfig geometry.CameraConfig
	Objects      []*core.Object // Objects in the scene
	Lights       []core.Light   // Lights in the scene
	Skybox       Skybox
	Options      core.RenderOptions // Recommended render options
}

// BuildAccelerationIndex builds the BVH over the scene objects. The seed makes
// the split axes, and therefore the tree, reproducible.
func BuildAccelerationIndex(s *Scene, seed uint64) *geometry.BVH {
	return geometry.NewBVH(s.Objects, rand.New(rand.NewPCG(seed, 0x5ce9e)))
}

// Background returns the skybox colour for a ray that hits nothing
func (s *Scene) Background(ray core.Ray) core.Vec3 {
	if s.Skybox == nil {
		return core.Vec3{}
	}
	return s.Skybox.Colour(ray)
}

// Object returns the object with the given name
func (s *Scene) Object(name string) (*core.Object, bool) {
	for _, object := range s.Objects {
		if object.Name == name {
			return object, true
		}
	}
	return nil, false
}
