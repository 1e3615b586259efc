package scene

import (
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/material"
	"github.com/df07/go-path-tracer/pkg/renderer"
)

// newQuick is a small glass, diffuse and metal lineup for smoke tests
func newQuick(opts Options) *Builder {
	camera := renderer.DefaultCameraConfig()
	camera.AspectRatio = 16.0 / 9.0
	camera.Width = 400
	camera.SamplesPerPixel = 20
	camera.MaxDepth = 10
	camera.VFov = 40
	camera.Center = core.NewVec3(0, 0.5, 2)
	camera.LookAt = core.NewVec3(0, 0, -1)

	return NewBuilder().
		WithCamera(camera).
		Add(
			geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))),
			geometry.NewSphere(core.NewVec3(0, 0, -1.2), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
			geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5)),
			geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)),
		)
}
