package renderer

import (
	"context"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/material"
)

func smallScene(t *testing.T) (*Camera, geometry.Hittable) {
	t.Helper()
	config := DefaultCameraConfig()
	config.Width = 16
	config.AspectRatio = 2
	config.SamplesPerPixel = 4
	config.MaxDepth = 5

	camera, err := NewCamera(config)
	if err != nil {
		t.Fatal(err)
	}
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0))),
		geometry.NewSphere(core.NewVec3(0, 0, -1.2), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)),
	)
	return camera, world
}

func TestRender_FrameShape(t *testing.T) {
	camera, world := smallScene(t)

	frame, err := camera.Render(context.Background(), world, RenderOptions{Workers: 2, Seed: 1, Logger: NopLogger{}})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if frame.Width != 16 || frame.Height != 8 || len(frame.Pixels) != 16*8 {
		t.Errorf("Unexpected frame size %dx%d (%d pixels)", frame.Width, frame.Height, len(frame.Pixels))
	}
	if frame.Stats.TotalSamples != 16*8*4 || frame.Stats.Workers != 2 {
		t.Errorf("Unexpected stats %+v", frame.Stats)
	}
	for i, p := range frame.Pixels {
		if p.X < 0 || p.Y < 0 || p.Z < 0 || p.X > 1 || p.Y > 1 || p.Z > 1 {
			t.Fatalf("Pixel %d out of range: %v", i, p)
		}
	}
}

func TestRender_DeterministicAcrossWorkerCounts(t *testing.T) {
	camera, world := smallScene(t)

	var frames []*Frame
	for _, workers := range []int{1, 3, 8} {
		frame, err := camera.Render(context.Background(), world, RenderOptions{Workers: workers, Seed: 99})
		if err != nil {
			t.Fatalf("Render with %d workers failed: %v", workers, err)
		}
		frames = append(frames, frame)
	}

	for i := 1; i < len(frames); i++ {
		if diff := cmp.Diff(frames[0].Pixels, frames[i].Pixels); diff != "" {
			t.Errorf("Frame %d differs from single-worker frame (-want +got):\n%s", i, diff)
		}
	}

	other, err := camera.Render(context.Background(), world, RenderOptions{Workers: 1, Seed: 100})
	if err != nil {
		t.Fatal(err)
	}
	if cmp.Equal(frames[0].Pixels, other.Pixels) {
		t.Error("Different seeds should produce different noise")
	}
}

func TestRender_Progress(t *testing.T) {
	camera, world := smallScene(t)

	var mu sync.Mutex
	var reports []int
	_, err := camera.Render(context.Background(), world, RenderOptions{
		Workers: 4,
		Progress: func(remaining int) {
			mu.Lock()
			defer mu.Unlock()
			reports = append(reports, remaining)
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(reports) != camera.Height() {
		t.Fatalf("Expected %d progress reports, got %d", camera.Height(), len(reports))
	}
	for i, remaining := range reports {
		if remaining != camera.Height()-1-i {
			t.Errorf("Report %d: expected %d remaining, got %d", i, camera.Height()-1-i, remaining)
		}
	}
}

func TestRender_Cancelled(t *testing.T) {
	camera, world := smallScene(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	frame, err := camera.Render(ctx, world, RenderOptions{Workers: 2})
	if err == nil {
		t.Fatal("Expected error from cancelled render")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if frame != nil {
		t.Error("Expected no frame from cancelled render")
	}
}

func TestRowSeed_Distinct(t *testing.T) {
	seen := map[int64]bool{}
	for row := 0; row < 1000; row++ {
		s := rowSeed(42, row)
		if seen[s] {
			t.Fatalf("Duplicate seed for row %d", row)
		}
		seen[s] = true
	}
}
