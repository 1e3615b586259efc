package scene

import (
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/material"
	"github.com/df07/go-path-tracer/pkg/renderer"
	"github.com/df07/go-path-tracer/pkg/texture"
)

// DefaultEarthTexture is loaded when Options.TexturePath is empty
const DefaultEarthTexture = "earthmap.jpg"

// newEarth wraps an image around a globe. A missing image renders cyan.
func newEarth(opts Options) *Builder {
	path := opts.TexturePath
	if path == "" {
		path = DefaultEarthTexture
	}
	logger := opts.Logger
	if logger == nil {
		logger = renderer.NopLogger{}
	}

	surface := material.NewTexturedLambertian(texture.LoadImageTexture(path, logger))

	camera := renderer.DefaultCameraConfig()
	camera.AspectRatio = 16.0 / 9.0
	camera.Width = 400
	camera.SamplesPerPixel = 100
	camera.MaxDepth = 50
	camera.VFov = 20
	camera.Center = core.NewVec3(0, 0, 12)
	camera.LookAt = core.NewVec3(0, 0, 0)

	return NewBuilder().
		WithCamera(camera).
		Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 2, surface))
}
