package scene

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/lights"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// NewCornellScene creates a classic Cornell box scene with quad walls and area lighting
func NewCornellScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 1.0,
		VFov:        40.0,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	options := core.DefaultRenderOptions()
	options.SamplesPerPixel = 150
	options.MaxBounces = 24
	options.KMin = 0.01 // Scene units are millimetre-sized

	b := NewBuilder("cornell").
		Describe("Cornell box with a ceiling light, a glass sphere and a tall box").
		Camera(cameraConfig).
		Options(options)

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	// Standard 555x555x555 box
	boxSize := 555.0
	b.Add("floor", b.Shape(geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0))), white)
	b.Add("ceiling", b.Shape(geometry.NewQuad(core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize))), white)
	b.Add("back", b.Shape(geometry.NewQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0))), white)
	b.Add("left", b.Shape(geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0))), red)
	b.Add("right", b.Shape(geometry.NewQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize))), green)

	// Ceiling light: a disc just below the ceiling, facing down
	lampShape := b.Shape(geometry.NewDisc(core.NewVec3(278, boxSize-1, 278), core.NewVec3(0, -1, 0), 70))
	b.Add("lamp", lampShape, material.NewEmissive(core.Vec3{}, core.NewVec3(15, 15, 15)))
	if lampShape != nil {
		lamp, err := lights.NewShapedLight("lamp", lampShape, core.NewVec3(1, 1, 1))
		if err == nil {
			lamp.WithAttenuation(lights.CustomAttenuation(func(d float64) float64 {
				// Falloff tuned to the box size: full strength at the floor
				return (boxSize * boxSize) / (d*d + boxSize)
			})).WithImportance(1)
		}
		b.Light(lamp, err)
	}

	b.Add("tall-box", b.Shape(geometry.NewBox(core.NewVec3(265, 0, 295), core.NewVec3(430, 330, 460))), white)
	b.Add("glass-ball", b.Shape(geometry.NewSphere(core.NewVec3(185, 90, 169), 90)), material.NewDielectric(1.5))

	return b.Build()
}
