package scene

import (
	"math/rand"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/material"
	"github.com/df07/go-path-tracer/pkg/texture"
)

func newPerlinSpheres(opts Options) *Builder {
	random := rand.New(rand.NewSource(opts.Seed))
	ground := material.NewTexturedLambertian(texture.NewNoiseTexture(4, random))
	marble := material.NewTexturedLambertian(texture.NewMarbleTexture(4, random))

	return NewBuilder().
		WithCamera(sideViewCamera()).
		Add(
			geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground),
			geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
		)
}
