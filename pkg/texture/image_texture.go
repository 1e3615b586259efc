package texture

import (
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/loaders"
)

// missingImageColor marks surfaces whose image failed to load
var missingImageColor = core.NewVec3(0, 1, 1)

// ImageTexture samples an RGB8 image by surface UV with nearest-neighbor lookup
type ImageTexture struct {
	image *loaders.ImageData
}

// NewImageTexture wraps already decoded image data; nil is treated as a missing image
func NewImageTexture(data *loaders.ImageData) *ImageTexture {
	if data == nil {
		data = &loaders.ImageData{}
	}
	return &ImageTexture{image: data}
}

// LoadImageTexture decodes the image at path. A failed load is logged and yields a
// texture that renders cyan rather than aborting the scene.
func LoadImageTexture(path string, logger core.Logger) *ImageTexture {
	data, err := loaders.LoadImage(path)
	if err != nil {
		if logger != nil {
			logger.Printf("could not load image texture: %v\n", err)
		}
		return NewImageTexture(nil)
	}
	return NewImageTexture(data)
}

// Width returns the image width in pixels (0 when missing)
func (t *ImageTexture) Width() int { return t.image.Width }

// Height returns the image height in pixels (0 when missing)
func (t *ImageTexture) Height() int { return t.image.Height }

// Value returns the pixel under (u, v); v=0 is the bottom row of the image
func (t *ImageTexture) Value(u, v float64, p core.Vec3) core.Vec3 {
	if t.image.Height <= 0 || t.image.Width <= 0 {
		return missingImageColor
	}

	unit := core.NewInterval(0, 1)
	u = unit.Clamp(u)
	v = 1.0 - unit.Clamp(v)

	i := int(u * float64(t.image.Width))
	j := int(v * float64(t.image.Height))
	if i >= t.image.Width {
		i = t.image.Width - 1
	}
	if j >= t.image.Height {
		j = t.image.Height - 1
	}

	r, g, b := t.image.PixelAt(i, j)
	const colorScale = 1.0 / 255.0
	return core.NewVec3(float64(r)*colorScale, float64(g)*colorScale, float64(b)*colorScale)
}
