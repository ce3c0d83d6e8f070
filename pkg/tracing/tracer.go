// Package tracing provides a shared OTel tracer helper.
//
// When no TracerProvider is registered (tests, local runs without an OTel
// collector) the global no-op provider is used and all calls are inert.
// Packages should call tracing.Start rather than using the OTel API directly.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "frix"

// Start creates a new span as a child of the span in ctx, or a root span when
// ctx carries none. The caller must call span.End().
//
//	ctx, span := tracing.Start(ctx, "pagecheck.run",
//	    attribute.Int("frix.page.bytes", len(body)),
//	)
//	defer span.End()
func Start(ctx context.Context, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName, trace.WithAttributes(attrs...))
}
