package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the default tracer name for the taskboard package.
const TracerName = "taskboard"

// Span attribute keys for operations.
const (
	// SpanAttrBackend is the task store backend name attribute.
	SpanAttrBackend = "store.backend"

	// SpanAttrOperation is the store operation type attribute.
	SpanAttrOperation = "store.operation"

	// SpanAttrOwnerHash is the anonymized task owner attribute.
	SpanAttrOwnerHash = "board.owner_hash"

	// SpanAttrTaskID is the task document ID attribute.
	SpanAttrTaskID = "board.task_id"

	// SpanAttrStatus is the operation status attribute.
	SpanAttrStatus = "board.status"
)

// StartSpan starts a new span with the given name and attributes.
// The caller is responsible for ending the span with defer span.End().
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// StartStoreSpan starts a span for a task store operation.
func StartStoreSpan(ctx context.Context, backend, operation string) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, "store."+operation,
		trace.WithAttributes(
			attribute.String(SpanAttrBackend, backend),
			attribute.String(SpanAttrOperation, operation),
		),
	)
}

// EndSpan records the outcome on a span and ends it. A nil error marks
// the span OK; a non-nil error records it and marks the span failed.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
