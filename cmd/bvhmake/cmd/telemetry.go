package cmd

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// tracerName scopes every span this command emits under one instrumentation
// name, so a trace viewer can group them regardless of which phase emitted
// them (spec §8: import, build, flatten, export each get their own span).
const tracerName = "github.com/rendercore/bvhmake/cmd/bvhmake"

// initTracer wires a stdout span exporter when traceOut is non-nil, or a
// no-op provider otherwise — tracing is opt-in, never required to run a
// build.
func initTracer(traceOut io.Writer) (trace.Tracer, func(context.Context) error, error) {
	if traceOut == nil {
		return otel.Tracer(tracerName), func(context.Context) error { return nil }, nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(traceOut), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, nil, err
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	return tp.Tracer(tracerName), tp.Shutdown, nil
}
