package scene

import (
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/material"
	"github.com/df07/go-path-tracer/pkg/renderer"
	"github.com/df07/go-path-tracer/pkg/texture"
)

// sideViewCamera looks at the origin from (13,2,3) with a narrow field of view
func sideViewCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		Width:           400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		VFov:            20,
		Center:          core.NewVec3(13, 2, 3),
		LookAt:          core.NewVec3(0, 0, 0),
		Up:              core.NewVec3(0, 1, 0),
		DefocusAngle:    0,
		FocusDistance:   10,
	}
}

func newCheckeredSpheres(opts Options) *Builder {
	checker := material.NewTexturedLambertian(
		texture.NewCheckerTextureColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)),
	)
	return NewBuilder().
		WithCamera(sideViewCamera()).
		Add(
			geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
			geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
		)
}
