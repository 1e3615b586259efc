package geometry

import (
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/material"
)

// Sphere represents a sphere shape whose center may move linearly during the shutter interval
type Sphere struct {
	center   core.Ray // center at time t is center.At(t)
	Radius   float64
	Material material.Material
	bbox     core.AABB
}

// NewSphere creates a stationary sphere. Negative radii are clamped to zero.
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	radius = math.Max(0, radius)
	rvec := core.NewVec3(radius, radius, radius)
	return &Sphere{
		center:   core.NewRay(center, core.Vec3{}),
		Radius:   radius,
		Material: mat,
		bbox:     core.NewAABB(center.Subtract(rvec), center.Add(rvec)),
	}
}

// NewMovingSphere creates a sphere moving from center1 at time 0 to center2 at time 1
func NewMovingSphere(center1, center2 core.Vec3, radius float64, mat material.Material) *Sphere {
	radius = math.Max(0, radius)
	rvec := core.NewVec3(radius, radius, radius)
	box1 := core.NewAABB(center1.Subtract(rvec), center1.Add(rvec))
	box2 := core.NewAABB(center2.Subtract(rvec), center2.Add(rvec))
	return &Sphere{
		center:   core.NewRay(center1, center2.Subtract(center1)),
		Radius:   radius,
		Material: mat,
		bbox:     core.MergeAABB(box1, box2),
	}
}

// Center returns the sphere center at shutter time t
func (s *Sphere) Center(t float64) core.Vec3 {
	return s.center.At(t)
}

// IsMoving reports whether the center changes over the shutter interval
func (s *Sphere) IsMoving() bool {
	return !s.center.Direction.Equals(core.Vec3{})
}

// Hit tests if a ray intersects with the sphere at the ray's time
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval, hit *material.HitRecord) bool {
	currentCenter := s.center.At(ray.Time)
	oc := currentCenter.Subtract(ray.Origin)

	// Quadratic a*t^2 - 2h*t + c = 0 with h = d.oc
	a := ray.Direction.LengthSquared()
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (h - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtD) / a
		if !rayT.Surrounds(root) {
			return false
		}
	}

	hit.T = root
	hit.Point = ray.At(root)
	outwardNormal := hit.Point.Subtract(currentCenter).Divide(s.Radius)
	hit.SetFaceNormal(ray, outwardNormal)
	hit.U, hit.V = SphereUV(outwardNormal)
	hit.Material = s.Material

	return true
}

// BoundingBox returns the precomputed bounds covering every shutter time
func (s *Sphere) BoundingBox() core.AABB {
	return s.bbox
}

// SphereUV maps a point on the unit sphere to texture coordinates.
// u follows the angle around Y starting from -X; v runs from the south pole (0) to the north pole (1).
func SphereUV(p core.Vec3) (u, v float64) {
	theta := math.Acos(math.Max(-1, math.Min(1, -p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi

	return phi / (2 * math.Pi), theta / math.Pi
}
