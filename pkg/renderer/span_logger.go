package renderer

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/df07/go-path-tracer/pkg/core"
)

// SpanLogger is a span processor that prints each finished span with its duration and attributes
type SpanLogger struct {
	logger core.Logger
}

var _ sdktrace.SpanProcessor = (*SpanLogger)(nil)

// NewSpanLogger creates a span processor writing to logger
func NewSpanLogger(logger core.Logger) *SpanLogger {
	return &SpanLogger{logger: logger}
}

func (p *SpanLogger) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {}

// OnEnd logs one line per span
func (p *SpanLogger) OnEnd(s sdktrace.ReadOnlySpan) {
	var attrs []string
	for _, kv := range s.Attributes() {
		attrs = append(attrs, string(kv.Key)+"="+kv.Value.Emit())
	}
	p.logger.Printf("span %s took %v [%s]\n", s.Name(), s.EndTime().Sub(s.StartTime()), strings.Join(attrs, " "))
}

func (p *SpanLogger) Shutdown(ctx context.Context) error { return nil }

func (p *SpanLogger) ForceFlush(ctx context.Context) error { return nil }

// InstallSpanLogging registers a global tracer provider that logs every span.
// The returned function shuts the provider down.
func InstallSpanLogging(logger core.Logger) func(context.Context) error {
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSpanProcessor(NewSpanLogger(logger)),
	)
	otel.SetTracerProvider(provider)
	return provider.Shutdown
}
