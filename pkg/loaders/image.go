package loaders

import (
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder
)

// BytesPerPixel is the stride of one pixel in ImageData.Pixels
const BytesPerPixel = 3

// ImageData holds a decoded image as tightly packed 8-bit RGB triples.
// Pixels is row-major with the top row first: Pixels[(y*Width+x)*3 + channel].
type ImageData struct {
	Width  int
	Height int
	Pixels []byte
}

// PixelAt returns the RGB bytes at (x, y); coordinates must be in bounds
func (d *ImageData) PixelAt(x, y int) (r, g, b byte) {
	i := (y*d.Width + x) * BytesPerPixel
	return d.Pixels[i], d.Pixels[i+1], d.Pixels[i+2]
}

// LoadImage decodes an image file (format detected from its header) into RGB8
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open image file %q", filename)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode image %q", filename)
	}

	return FromImage(img), nil
}

// FromImage converts any decoded image to RGB8, dropping alpha
func FromImage(img image.Image) *ImageData {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]byte, width*height*BytesPerPixel)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// RGBA returns 16-bit channels; keep the high byte
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			i := (y*width + x) * BytesPerPixel
			pixels[i] = byte(r >> 8)
			pixels[i+1] = byte(g >> 8)
			pixels[i+2] = byte(b >> 8)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}
