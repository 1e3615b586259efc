package renderer

import (
	"bytes"
	"math"
	"testing"

	"github.com/df07/go-path-tracer/pkg/core"
)

func TestToRGB8(t *testing.T) {
	tests := []struct {
		name    string
		linear  core.Vec3
		r, g, b uint8
	}{
		{"black", core.NewVec3(0, 0, 0), 0, 0, 0},
		{"white clamps below 256", core.NewVec3(1, 1, 1), 255, 255, 255},
		{"overexposed", core.NewVec3(4, 100, 2), 255, 255, 255},
		{"gamma 2", core.NewVec3(0.25, 0.0625, 0.01), 128, 64, 25},
		{"negative and NaN", core.NewVec3(-1, math.NaN(), 0), 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := ToRGB8(tt.linear)
			if r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("ToRGB8(%v) = (%d,%d,%d), expected (%d,%d,%d)", tt.linear, r, g, b, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestFrame_WritePPM(t *testing.T) {
	frame := NewFrame(2, 1)
	frame.Set(0, 0, core.NewVec3(1, 0, 0))
	frame.Set(1, 0, core.NewVec3(0, 0.25, 1))

	var buf bytes.Buffer
	if err := frame.WritePPM(&buf); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	want := "P3\n2 1\n255\n255 0 0\n0 128 255\n"
	if buf.String() != want {
		t.Errorf("Unexpected PPM:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestFrame_Image(t *testing.T) {
	frame := NewFrame(3, 2)
	frame.Set(2, 1, core.NewVec3(0.25, 1, 0))

	img := frame.Image()
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("Expected 3x2 image, got %v", img.Bounds())
	}
	c := img.RGBAAt(2, 1)
	if c.R != 128 || c.G != 255 || c.B != 0 || c.A != 255 {
		t.Errorf("Unexpected pixel %v", c)
	}
	if c := img.RGBAAt(0, 0); c.R != 0 || c.A != 255 {
		t.Errorf("Expected opaque black, got %v", c)
	}
}

func TestFrame_Average(t *testing.T) {
	frame := NewFrame(2, 1)
	frame.Set(0, 0, core.NewVec3(1, 0, 0))
	frame.Set(1, 0, core.NewVec3(0, 1, 0))
	if !frame.Average().Equals(core.NewVec3(0.5, 0.5, 0)) {
		t.Errorf("Unexpected average %v", frame.Average())
	}
}
