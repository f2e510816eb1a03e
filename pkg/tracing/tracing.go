// Package tracing wraps OpenTelemetry for the mapper. Spans are only recorded
// after a tracer is installed with SetTracer or UseGlobalProvider.
package tracing

import (
	"context"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const InstrumentationName = "github.com/Ramsey-B/fern"

var tracer atomic.Pointer[trace.Tracer]

// SetTracer sets the tracer used for mapper spans. A nil tracer disables
// tracing.
func SetTracer(t trace.Tracer) {
	if t == nil {
		tracer.Store(nil)
		return
	}
	tracer.Store(&t)
}

// UseGlobalProvider traces through the globally registered provider.
func UseGlobalProvider() {
	SetTracer(otel.Tracer(InstrumentationName))
}

// StartSpan starts a span named spanName carrying attrs. Without a tracer the
// span already in ctx is returned.
func StartSpan(ctx context.Context, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	t := tracer.Load()
	if t == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return (*t).Start(ctx, spanName, trace.WithAttributes(attrs...))
}

// EndSpan records err, when set, and ends the span.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// GetTraceID returns the trace id of the active span, or "" without one.
func GetTraceID(ctx context.Context) string {
	spanContext := trace.SpanContextFromContext(ctx)
	if !spanContext.IsValid() {
		return ""
	}
	return spanContext.TraceID().String()
}
