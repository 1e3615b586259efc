package texture

import (
	"math"
	"math/rand"

	"github.com/df07/go-path-tracer/pkg/core"
)

// marbleTurbulenceDepth is the number of noise octaves in the marble veins
const marbleTurbulenceDepth = 7

// NoiseTexture is grey Perlin noise remapped to [0, 1]
type NoiseTexture struct {
	noise *Perlin
	Scale float64
}

// NewNoiseTexture creates a noise texture with its own noise tables drawn from random
func NewNoiseTexture(scale float64, random *rand.Rand) *NoiseTexture {
	return &NoiseTexture{noise: NewPerlin(random), Scale: scale}
}

// Value samples the noise at scale*p
func (t *NoiseTexture) Value(u, v float64, p core.Vec3) core.Vec3 {
	n := 0.5 * (1.0 + t.noise.Noise(p.Multiply(t.Scale)))
	return core.NewVec3(n, n, n)
}

// MarbleTexture shapes turbulence into sine-wave veins along Z
type MarbleTexture struct {
	noise *Perlin
	Scale float64
}

// NewMarbleTexture creates a marble texture with its own noise tables drawn from random
func NewMarbleTexture(scale float64, random *rand.Rand) *MarbleTexture {
	return &MarbleTexture{noise: NewPerlin(random), Scale: scale}
}

// Value returns the vein intensity at p
func (t *MarbleTexture) Value(u, v float64, p core.Vec3) core.Vec3 {
	phase := t.Scale*p.Z + 10*t.noise.Turbulence(p, marbleTurbulenceDepth)
	return core.NewVec3(0.5, 0.5, 0.5).Multiply(1 + math.Sin(phase))
}
