package renderer

import (
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/material"
)

// MinHitDistance is the smallest t accepted for a hit, so rays leaving a surface
// do not immediately re-hit it through floating point error
const MinHitDistance = 0.001

var (
	skyHorizon = core.NewVec3(1.0, 1.0, 1.0)
	skyZenith  = core.NewVec3(0.5, 0.7, 1.0)
)

// RayColor follows ray through world, bouncing at most depth times, and returns the
// gathered radiance
func RayColor(ray core.Ray, depth int, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	var hit material.HitRecord
	if !world.Hit(ray, core.NewInterval(MinHitDistance, math.Inf(1)), &hit) {
		return SkyColor(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		return core.Vec3{X: 0, Y: 0, Z: 0} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(RayColor(scatter.Scattered, depth-1, world, sampler))
}

// SkyColor blends from white at the horizon to light blue overhead by the ray's unit Y
func SkyColor(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)
	return skyHorizon.Lerp(skyZenith, a)
}
