package scene

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/lights"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// NewFogScene places Phong objects inside and behind a bank of constant-density fog
func NewFogScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 1.5, 6),
		LookAt:      core.NewVec3(0, 0.8, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        40,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	options := core.DefaultRenderOptions()
	options.SamplesPerPixel = 128
	options.MaxBounces = 20

	b := NewBuilder("fog").
		Describe("Phong shapes in a volumetric fog bank lit by a spherical lamp").
		Camera(cameraConfig).
		Options(options).
		Skybox(NewSolidSkybox(core.NewVec3(0.02, 0.02, 0.03)))

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.45))
	b.Add("ground", b.Shape(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))), ground)

	teal := material.NewPhong(core.NewVec3(0.1, 0.6, 0.6), 48)
	chrome := material.NewPhong(core.NewVec3(0.6, 0.6, 0.6), 96)
	chrome.Reflectivity = 0.6
	b.Add("pillar", b.Shape(geometry.NewCapsule(core.NewVec3(-1.5, 0.4, -1), core.NewVec3(-1.5, 2, -1), 0.4)), teal)
	b.Add("orb", b.Shape(geometry.NewSphere(core.NewVec3(1.2, 0.7, -0.5), 0.7)), chrome)
	b.Add("crate", b.Shape(geometry.NewBoxFromCenter(core.NewVec3(0, 0.35, 0.8), core.NewVec3(0.35, 0.35, 0.35))), teal)

	fogBoundary := b.Shape(geometry.NewBox(core.NewVec3(-4, 0.001, -3), core.NewVec3(4, 2.5, 2.5)))
	if fogBoundary != nil {
		b.Add("fog", b.Shape(geometry.NewConstantMedium(fogBoundary, 0.25)), material.NewVolumetric(core.NewVec3(0.9, 0.9, 0.92)))
	}

	lampShape := b.Shape(geometry.NewSphere(core.NewVec3(0.5, 3.5, 1), 0.3))
	b.Add("lamp", lampShape, material.NewEmissive(core.Vec3{}, core.NewVec3(8, 7, 5)))
	if lampShape != nil {
		b.Light(lights.NewSphereLight("lamp", lampShape, core.NewVec3(16, 14, 10)))
	}

	return b.Build()
}
