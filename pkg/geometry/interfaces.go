package geometry

import (
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/material"
)

// Hittable is anything a ray can intersect: a primitive, a list, or a BVH node
type Hittable interface {
	// Hit reports the nearest intersection with t strictly inside rayT and fills hit.
	// hit is left untouched on a miss.
	Hit(ray core.Ray, rayT core.Interval, hit *material.HitRecord) bool
	// BoundingBox returns a box enclosing the object over the whole shutter interval
	BoundingBox() core.AABB
}
