package renderer

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
)

const tracerName = "github.com/df07/go-path-tracer/pkg/renderer"

// rowSeedMultiplier spreads per-row seeds across the generator's seed space
const rowSeedMultiplier = 6364136223846793005

// RenderOptions controls how a frame is rendered
type RenderOptions struct {
	Workers  int                 // Concurrent rows; 0 or less uses runtime.NumCPU()
	Seed     int64               // Base seed; identical seeds give identical frames
	Progress func(remaining int) // Called after each finished row with the rows still to go
	Logger   core.Logger         // Optional summary logging
}

// rowSeed derives the sampler seed for one row from the frame seed
func rowSeed(seed int64, row int) int64 {
	return seed ^ (int64(row+1) * rowSeedMultiplier)
}

// Render traces every pixel of the camera's image against world. Rows are shared
// between workers; each row draws from its own seeded sampler so the result does not
// depend on scheduling. world must not be modified until Render returns.
func (c *Camera) Render(ctx context.Context, world geometry.Hittable, opts RenderOptions) (*Frame, error) {
	tracer := otel.Tracer(tracerName)
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Camera.Render")
	defer span.End()

	width, height := c.Width(), c.Height()
	spp := c.config.SamplesPerPixel

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	span.SetAttributes(
		attribute.Int("width", width),
		attribute.Int("height", height),
		attribute.Int("samples_per_pixel", spp),
		attribute.Int("max_depth", c.config.MaxDepth),
		attribute.Int("workers", workers),
	)

	start := time.Now()
	frame := NewFrame(width, height)

	var progressMu sync.Mutex
	finished := 0

	eg, egCtx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(workers))

	var submitErr error
	for j := 0; j < height; j++ {
		row := j

		if err := sem.Acquire(egCtx, 1); err != nil {
			submitErr = errors.Wrap(err, "while acquiring render worker")
			break
		}

		eg.Go(func() error {
			defer sem.Release(1)

			if err := egCtx.Err(); err != nil {
				return err
			}

			c.renderRow(row, world, core.NewSeededSampler(rowSeed(opts.Seed, row)), frame)

			if opts.Progress != nil {
				progressMu.Lock()
				finished++
				opts.Progress(height - finished)
				progressMu.Unlock()
			}
			return nil
		})
	}

	// Always drain the workers before returning so no row writes after we do
	err := eg.Wait()
	if err == nil {
		err = submitErr
	}
	if err != nil {
		if cause := ctx.Err(); cause != nil {
			err = cause
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	frame.Stats = RenderStats{
		TotalPixels:  width * height,
		TotalSamples: width * height * spp,
		Workers:      workers,
		Duration:     time.Since(start),
	}

	if opts.Logger != nil {
		opts.Logger.Printf("rendered %dx%d at %d spp with %d workers in %v (%.0f samples/s)\n",
			width, height, spp, workers, frame.Stats.Duration, frame.Stats.SamplesPerSecond())
	}

	span.SetStatus(codes.Ok, "")
	return frame, nil
}

// renderRow fills row j of frame; rows are disjoint so workers never share pixels
func (c *Camera) renderRow(j int, world geometry.Hittable, sampler core.Sampler, frame *Frame) {
	for i := 0; i < c.Width(); i++ {
		frame.Set(i, j, c.RenderPixel(i, j, world, sampler))
	}
}

// RenderPixel averages SamplesPerPixel jittered rays through pixel (i, j)
func (c *Camera) RenderPixel(i, j int, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	var pixel PixelStats
	for sample := 0; sample < c.config.SamplesPerPixel; sample++ {
		ray := c.GetRay(i, j, sampler)
		pixel.AddSample(RayColor(ray, c.config.MaxDepth, world, sampler))
	}
	return pixel.GetColor()
}
