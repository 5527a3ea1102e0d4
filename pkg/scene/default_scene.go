package scene

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/lights"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// NewDefaultScene creates a default scene with spheres, ground, and camera
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:        core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0,
		Aperture:      0.05,
		FocusDistance: 0.0, // Auto-calculate focus distance
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	options := core.DefaultRenderOptions()
	options.SamplesPerPixel = 100
	options.MaxBounces = 16

	b := NewBuilder("default").
		Describe("Diffuse, mirror, glass and Phong spheres on a checkered ground").
		Camera(cameraConfig).
		Options(options).
		Skybox(NewGradientSkybox(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1.0, 1.0, 1.0)))

	ground := &material.Standard{
		Albedo:    material.NewChecker(core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.3, 0.3, 0.3), 1),
		Diffusion: 1,
	}
	red := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	silver := material.NewStandard(core.NewVec3(0.8, 0.8, 0.8), 0)
	gold := material.NewStandard(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	glass := material.NewDielectric(1.5)
	plastic := material.NewPhong(core.NewVec3(0.1, 0.2, 0.5), 32)

	b.Add("ground", b.Shape(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))), ground)
	b.Add("center", b.Shape(geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5)), red)
	b.Add("left", b.Shape(geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5)), glass)
	b.Add("left-inner", b.Shape(geometry.NewSphere(core.NewVec3(-1, 0.5, -1), -0.4)), glass)
	b.Add("right", b.Shape(geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5)), silver)
	b.Add("front", b.Shape(geometry.NewSphere(core.NewVec3(0.45, 0.15, -0.3), 0.15)), gold)
	b.Add("back", b.Shape(geometry.NewSphere(core.NewVec3(-0.3, 0.25, -2), 0.25)), plastic)

	sun := lights.NewPointLight("sun", core.NewVec3(2, 4, 1), core.NewVec3(12, 12, 11))
	b.Light(sun, nil)

	bulbShape := b.Shape(geometry.NewSphere(core.NewVec3(-0.6, 1.6, -0.4), 0.15))
	b.Add("bulb", bulbShape, material.NewEmissive(core.NewVec3(0, 0, 0), core.NewVec3(4, 3.6, 3)))
	if bulbShape != nil {
		b.Light(lights.NewSphereLight("bulb", bulbShape, core.NewVec3(1.5, 1.35, 1.1)))
	}

	return b.Build()
}
