// go-path-tracer renders a built-in demo scene or a JSON scene file to a PPM or PNG image.
package main

import (
	"context"
	"flag"
	"image/png"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/df07/go-path-tracer/pkg/renderer"
	"github.com/df07/go-path-tracer/pkg/scene"
)

var (
	sceneName   = flag.String("scene", "bouncing-spheres", "Built-in scene: "+strings.Join(scene.Names(), ", "))
	sceneFile   = flag.String("scene-file", "", "JSON scene file; overrides -scene")
	width       = flag.Int("width", 0, "Image width in pixels (0 keeps the scene's value)")
	spp         = flag.Int("spp", 0, "Samples per pixel (0 keeps the scene's value)")
	depth       = flag.Int("depth", 0, "Maximum ray bounces (0 keeps the scene's value)")
	workers     = flag.Int("workers", 0, "Rows rendered concurrently (0 uses every CPU)")
	seed        = flag.Int64("seed", 1, "Seed for scene generation and sampling")
	bvh         = flag.String("bvh", "auto", "Bounding volume hierarchy: auto, true or false")
	out         = flag.String("out", "-", "Output path; .png writes PNG, anything else PPM, - is PPM on stdout")
	texturePath = flag.String("texture", scene.DefaultEarthTexture, "Image used by the earth scene")
	traceSpans  = flag.Bool("trace", false, "Log OpenTelemetry spans for scene assembly and rendering")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	glog.CopyStandardLogTo("INFO")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := renderer.NewGlogLogger()
	if *traceSpans {
		shutdown := renderer.InstallSpanLogging(logger)
		defer shutdown(context.Background())
	}

	useBVH, err := parseBVHFlag(*bvh)
	if err != nil {
		glog.Exitf("Bad -bvh: %v", err)
	}

	s, err := createScene(ctx, *sceneName, *sceneFile, scene.Options{
		Seed:        *seed,
		TexturePath: *texturePath,
		UseBVH:      useBVH,
		Logger:      logger,
	})
	if err != nil {
		glog.Exitf("Failed to create scene: %v", err)
	}

	config := s.Camera.WithOverrides(*width, *spp, *depth)
	camera, err := renderer.NewCamera(config)
	if err != nil {
		glog.Exitf("Bad camera configuration: %v", err)
	}
	glog.Infof("Rendering %q: %dx%d, %d samples, depth %d", s.Name, camera.Width(), camera.Height(), config.SamplesPerPixel, config.MaxDepth)

	frame, err := camera.Render(ctx, s.World, renderer.RenderOptions{
		Workers: *workers,
		Seed:    *seed,
		Logger:  logger,
		Progress: func(remaining int) {
			glog.V(1).Infof("Scanlines remaining: %d", remaining)
		},
	})
	if err != nil {
		glog.Exitf("Render failed: %v", err)
	}

	if err := writeOutput(*out, frame); err != nil {
		glog.Exitf("Failed to write image: %v", err)
	}
	glog.Infof("Done: %.0f samples/sec", frame.Stats.SamplesPerSecond())
}

// createScene loads sceneFile when set, otherwise builds the named demo
func createScene(ctx context.Context, name, sceneFile string, opts scene.Options) (*scene.Scene, error) {
	if sceneFile != "" {
		s, err := scene.FromFile(ctx, sceneFile, opts.Logger)
		if err != nil {
			return nil, err
		}
		if s.Name == "" {
			s.Name = strings.TrimSuffix(filepath.Base(sceneFile), filepath.Ext(sceneFile))
		}
		return s, nil
	}
	if name == "" {
		return nil, errors.New("no scene given")
	}
	return scene.CreateContext(ctx, name, opts)
}

// parseBVHFlag maps "auto" to nil so the scene decides
func parseBVHFlag(value string) (*bool, error) {
	if value == "auto" || value == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, errors.Errorf("expected auto, true or false, got %q", value)
	}
	return &b, nil
}

func writeOutput(path string, frame *renderer.Frame) error {
	if path == "-" {
		return frame.WritePPM(os.Stdout)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "creating output directory %q", dir)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %q", path)
	}
	if err := encodeFrame(file, path, frame); err != nil {
		file.Close()
		return errors.Wrapf(err, "encoding %q", path)
	}
	return file.Close()
}

// encodeFrame picks the format from the file extension
func encodeFrame(w io.Writer, path string, frame *renderer.Frame) error {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return png.Encode(w, frame.Image())
	}
	return frame.WritePPM(w)
}
