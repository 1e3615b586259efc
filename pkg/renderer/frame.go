package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/df07/go-path-tracer/pkg/core"
)

// Frame is a rendered image in linear color, row-major with the top row first
type Frame struct {
	Width  int
	Height int
	Pixels []core.Vec3
	Stats  RenderStats
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the linear color of pixel (x, y)
func (f *Frame) At(x, y int) core.Vec3 {
	return f.Pixels[y*f.Width+x]
}

// Set stores the linear color of pixel (x, y)
func (f *Frame) Set(x, y int, c core.Vec3) {
	f.Pixels[y*f.Width+x] = c
}

// intensity maps gamma-corrected values into [0, 0.999] so x256 stays below 256
var intensity = core.NewInterval(0.000, 0.999)

// linearToGamma applies gamma 2; negative and NaN components become 0
func linearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// ToRGB8 converts a linear color to display bytes
func ToRGB8(c core.Vec3) (r, g, b uint8) {
	return toByte(c.X), toByte(c.Y), toByte(c.Z)
}

func toByte(linear float64) uint8 {
	return uint8(256 * intensity.Clamp(linearToGamma(linear)))
}

// WritePPM encodes the frame as a plain-text (P3) PPM
func (f *Frame) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", f.Width, f.Height); err != nil {
		return errors.Wrap(err, "while writing PPM header")
	}
	for _, pixel := range f.Pixels {
		r, g, b := ToRGB8(pixel)
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
			return errors.Wrap(err, "while writing PPM pixel")
		}
	}
	return errors.Wrap(bw.Flush(), "while flushing PPM")
}

// Image converts the frame to an 8-bit RGBA image with the same transfer as WritePPM
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			r, g, b := ToRGB8(f.At(x, y))
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// Average returns the mean linear color over all pixels
func (f *Frame) Average() core.Vec3 {
	if len(f.Pixels) == 0 {
		return core.Vec3{}
	}
	var sum core.Vec3
	for _, p := range f.Pixels {
		sum = sum.Add(p)
	}
	return sum.Divide(float64(len(f.Pixels)))
}
