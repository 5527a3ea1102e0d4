package scene

import (
	"fmt"
	"slices"

	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
)

// PresetFunc builds a built-in scene, optionally overriding camera settings
type PresetFunc func(cameraOverrides ...geometry.CameraConfig) (*Scene, error)

var presets = map[string]PresetFunc{
	"default": NewDefaultScene,
	"cornell": NewCornellScene,
	"glass":   NewGlassScene,
	"fog":     NewFogScene,
}

// Preset builds the named built-in scene
func Preset(name string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	build, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown preset %q (available: %v)", ErrInvalidScene, name, PresetNames())
	}
	return build(cameraOverrides...)
}

// PresetNames lists the built-in scenes in alphabetical order
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
