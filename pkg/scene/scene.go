package scene

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/renderer"
)

const tracerName = "github.com/df07/go-path-tracer/pkg/scene"

// ErrEmptyScene is returned when a BVH is requested for a builder with no objects
var ErrEmptyScene = errors.New("scene has no objects")

// Scene is an assembled, read-only world plus the camera it is meant to be seen through
type Scene struct {
	Name    string
	World   geometry.Hittable
	Camera  renderer.CameraConfig
	Objects int // Number of top-level objects added to the builder
}

// BuildOptions controls how the world is assembled
type BuildOptions struct {
	UseBVH bool
	Logger core.Logger // Optional; receives BVH statistics
}

// Builder collects objects and camera settings before a scene is frozen
type Builder struct {
	name    string
	objects []geometry.Hittable
	camera  renderer.CameraConfig
}

// NewBuilder starts an empty scene with the default camera
func NewBuilder() *Builder {
	return &Builder{camera: renderer.DefaultCameraConfig()}
}

// Add appends objects to the scene
func (b *Builder) Add(objects ...geometry.Hittable) *Builder {
	b.objects = append(b.objects, objects...)
	return b
}

// WithName sets the scene name
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithCamera replaces the camera configuration
func (b *Builder) WithCamera(config renderer.CameraConfig) *Builder {
	b.camera = config
	return b
}

// Len returns the number of objects added so far
func (b *Builder) Len() int {
	return len(b.objects)
}

// Build freezes the builder into a Scene
func (b *Builder) Build(opts BuildOptions) (*Scene, error) {
	return b.BuildContext(context.Background(), opts)
}

// BuildContext is Build with a parent context for tracing
func (b *Builder) BuildContext(ctx context.Context, opts BuildOptions) (*Scene, error) {
	s := &Scene{
		Name:    b.name,
		Camera:  b.camera,
		Objects: len(b.objects),
	}

	if !opts.UseBVH {
		// The list takes its own copy so later Adds on the builder don't leak in
		s.World = geometry.NewHittableList(b.objects...)
		return s, nil
	}

	bvh, err := buildBVH(ctx, b.objects, opts.Logger)
	if err != nil {
		return nil, errors.Wrapf(err, "scene %q", b.name)
	}
	s.World = bvh
	return s, nil
}

func buildBVH(ctx context.Context, objects []geometry.Hittable, logger core.Logger) (*geometry.BVHNode, error) {
	tracer := otel.Tracer(tracerName)
	var span trace.Span
	_, span = tracer.Start(ctx, "BuildBVH")
	defer span.End()
	span.SetAttributes(attribute.Int("objects", len(objects)))

	if len(objects) == 0 {
		span.RecordError(ErrEmptyScene)
		span.SetStatus(codes.Error, ErrEmptyScene.Error())
		return nil, ErrEmptyScene
	}

	bvh, err := geometry.NewBVHNode(objects)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Wrap(err, "failed to build BVH")
	}

	stats := bvh.Stats()
	span.SetAttributes(
		attribute.Int("nodes", stats.Nodes),
		attribute.Int("max_depth", stats.MaxDepth),
	)
	if logger != nil {
		logger.Printf("BVH: %d primitives, %d nodes, depth %d\n", stats.Primitives, stats.Nodes, stats.MaxDepth)
	}
	return bvh, nil
}
