package store

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"taskboard/internal/instrumentation"
	"taskboard/internal/logging"
)

// instrumentedStore decorates a Store with metrics and tracing.
type instrumentedStore struct {
	inner   Store
	backend string
	metrics *instrumentation.Metrics
}

// Instrumented wraps a Store so every operation records a span and a
// metric sample. The backend label names the implementation (for example
// "firestore"). A nil metrics recorder records spans only.
func Instrumented(inner Store, backend string, metrics *instrumentation.Metrics) Store {
	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}
	return &instrumentedStore{
		inner:   inner,
		backend: backend,
		metrics: metrics,
	}
}

func (s *instrumentedStore) ListTasks(ctx context.Context, filter Filter) ([]Task, error) {
	attrs := s.spanAttrs("list")
	if filter.Owner != "" {
		// The owner is a user identity; spans carry it hashed only
		attrs = append(attrs, attribute.String(
			instrumentation.SpanAttrOwnerHash, logging.AnonymizeOwner(filter.Owner)))
	}
	ctx, span := instrumentation.StartSpan(ctx, "store.list", attrs...)
	start := time.Now()

	tasks, err := s.inner.ListTasks(ctx, filter)

	s.record(ctx, "list", err, time.Since(start))
	instrumentation.EndSpan(span, err)
	return tasks, err
}

func (s *instrumentedStore) CreateTask(ctx context.Context, input TaskInput) (string, error) {
	ctx, span := instrumentation.StartStoreSpan(ctx, s.backend, "create")
	start := time.Now()

	id, err := s.inner.CreateTask(ctx, input)

	s.record(ctx, "create", err, time.Since(start))
	instrumentation.EndSpan(span, err)
	return id, err
}

func (s *instrumentedStore) UpdateTask(ctx context.Context, id string, fields Fields) error {
	attrs := append(s.spanAttrs("update"),
		attribute.String(instrumentation.SpanAttrTaskID, id))
	ctx, span := instrumentation.StartSpan(ctx, "store.update", attrs...)
	start := time.Now()

	err := s.inner.UpdateTask(ctx, id, fields)

	s.record(ctx, "update", err, time.Since(start))
	instrumentation.EndSpan(span, err)
	return err
}

func (s *instrumentedStore) DeleteTask(ctx context.Context, id string) error {
	attrs := append(s.spanAttrs("delete"),
		attribute.String(instrumentation.SpanAttrTaskID, id))
	ctx, span := instrumentation.StartSpan(ctx, "store.delete", attrs...)
	start := time.Now()

	err := s.inner.DeleteTask(ctx, id)

	s.record(ctx, "delete", err, time.Since(start))
	instrumentation.EndSpan(span, err)
	return err
}

func (s *instrumentedStore) spanAttrs(operation string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(instrumentation.SpanAttrBackend, s.backend),
		attribute.String(instrumentation.SpanAttrOperation, operation),
	}
}

func (s *instrumentedStore) record(ctx context.Context, operation string, err error, duration time.Duration) {
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	s.metrics.RecordStoreOperation(ctx, s.backend, operation, status, duration)
}
