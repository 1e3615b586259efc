package texture

import (
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
)

// Texture maps a surface position to a color.
// u, v are the surface parameterization in [0,1]; p is the world-space hit point.
type Texture interface {
	Value(u, v float64, p core.Vec3) core.Vec3
}

// SolidColor is a texture with the same color everywhere
type SolidColor struct {
	Albedo core.Vec3
}

// NewSolidColor creates a solid color texture
func NewSolidColor(albedo core.Vec3) *SolidColor {
	return &SolidColor{Albedo: albedo}
}

// NewSolidColorRGB creates a solid color texture from components
func NewSolidColorRGB(r, g, b float64) *SolidColor {
	return NewSolidColor(core.NewVec3(r, g, b))
}

// Value returns the solid color regardless of position
func (s *SolidColor) Value(u, v float64, p core.Vec3) core.Vec3 {
	return s.Albedo
}

// CheckerTexture alternates between two textures on a 3D lattice of cubes of side Scale
type CheckerTexture struct {
	invScale float64
	Even     Texture
	Odd      Texture
}

// NewCheckerTexture creates a checker alternating between two textures
func NewCheckerTexture(scale float64, even, odd Texture) *CheckerTexture {
	return &CheckerTexture{invScale: 1.0 / scale, Even: even, Odd: odd}
}

// NewCheckerTextureColors creates a checker alternating between two solid colors
func NewCheckerTextureColors(scale float64, even, odd core.Vec3) *CheckerTexture {
	return NewCheckerTexture(scale, NewSolidColor(even), NewSolidColor(odd))
}

// Value picks Even or Odd by the parity of the lattice cell containing p
func (c *CheckerTexture) Value(u, v float64, p core.Vec3) core.Vec3 {
	x := int(math.Floor(c.invScale * p.X))
	y := int(math.Floor(c.invScale * p.Y))
	z := int(math.Floor(c.invScale * p.Z))

	if (x+y+z)%2 == 0 {
		return c.Even.Value(u, v, p)
	}
	return c.Odd.Value(u, v, p)
}
