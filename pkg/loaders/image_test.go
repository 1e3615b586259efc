package loaders

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// quadImage is a 2x2 image: white, red on top; green, blue below
func quadImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})
	return img
}

var quadPixels = []byte{
	255, 255, 255, 255, 0, 0,
	0, 255, 0, 0, 0, 255,
}

func writeImage(t *testing.T, name string, encode func(io.Writer, image.Image) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	defer f.Close()
	if err := encode(f, quadImage()); err != nil {
		t.Fatalf("Failed to encode %s: %v", name, err)
	}
	return path
}

// TestLoadImage round-trips a small image through each supported encoder
func TestLoadImage(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		encode func(io.Writer, image.Image) error
	}{
		{"png", "test.png", png.Encode},
		{"bmp", "test.bmp", bmp.Encode},
		{"tiff", "test.tiff", func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeImage(t, tt.file, tt.encode)

			imageData, err := LoadImage(path)
			if err != nil {
				t.Fatalf("LoadImage failed: %v", err)
			}
			if imageData.Width != 2 || imageData.Height != 2 {
				t.Errorf("Expected 2x2 image, got %dx%d", imageData.Width, imageData.Height)
			}
			if diff := cmp.Diff(quadPixels, imageData.Pixels); diff != "" {
				t.Errorf("Pixel mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestImageData_PixelAt(t *testing.T) {
	data := FromImage(quadImage())
	r, g, b := data.PixelAt(1, 0)
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("Expected red at (1,0), got (%d,%d,%d)", r, g, b)
	}
	r, g, b = data.PixelAt(0, 1)
	if r != 0 || g != 255 || b != 0 {
		t.Errorf("Expected green at (0,1), got (%d,%d,%d)", r, g, b)
	}
}

// TestLoadImageNotFound verifies error handling for missing files
func TestLoadImageNotFound(t *testing.T) {
	_, err := LoadImage("nonexistent.png")
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestLoadImageCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(path); err == nil {
		t.Error("Expected decode error for corrupt file, got nil")
	}
}
