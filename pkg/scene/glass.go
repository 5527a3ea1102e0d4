package scene

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/lights"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// NewGlassScene shows refraction: a hollow shell, a tinted capsule and a
// glowing glass core that only lights its surroundings
func NewGlassScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 1.2, 4),
		LookAt:      core.NewVec3(0, 0.6, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 3.0 / 2.0,
		VFov:        35,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	options := core.DefaultRenderOptions()
	options.SamplesPerPixel = 200
	options.MaxBounces = 32

	b := NewBuilder("glass").
		Describe("Hollow glass shell, tinted glass capsule and an emissive-refractive core").
		Camera(cameraConfig).
		Options(options).
		Skybox(NewGradientSkybox(core.NewVec3(0.6, 0.7, 0.9), core.NewVec3(0.1, 0.1, 0.12)))

	floor := &material.Standard{
		Albedo:    material.NewChecker(core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.2, 0.2, 0.25), 0.5),
		Diffusion: 0.9,
	}
	clearGlass := material.NewDielectric(1.5)
	blue := material.NewTintedDielectric(core.NewVec3(0.7, 0.85, 1.0), 1.33)
	glowing := &material.Dielectric{
		Tint:            material.NewSolidColor(core.NewVec3(1, 0.9, 0.8)),
		Emission:        material.NewSolidColor(core.NewVec3(3, 1.5, 0.5)),
		RefractiveIndex: 1.6,
		DirectLighting:  true,
	}

	b.Add("floor", b.Shape(geometry.NewBox(core.NewVec3(-6, -0.2, -6), core.NewVec3(6, 0, 6))), floor)
	b.Add("shell", b.Shape(geometry.NewSphere(core.NewVec3(-1.2, 0.6, 0), 0.6)), clearGlass)
	b.Add("shell-inner", b.Shape(geometry.NewSphere(core.NewVec3(-1.2, 0.6, 0), -0.55)), clearGlass)
	b.Add("capsule", b.Shape(geometry.NewCapsule(core.NewVec3(0.9, 0.35, -0.3), core.NewVec3(1.4, 1.2, 0.2), 0.35)), blue)
	b.Add("core", b.Shape(geometry.NewSphere(core.NewVec3(0, 0.4, 0.8), 0.4)), glowing)

	key := lights.NewPointLight("key", core.NewVec3(-3, 5, 3), core.NewVec3(30, 30, 28)).WithImportance(0.5)
	b.Light(key, nil)

	return b.Build()
}
