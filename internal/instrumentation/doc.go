// Package instrumentation provides OpenTelemetry metrics and tracing for
// taskboard.
//
// The Provider wires a meter provider and a tracer provider according to
// environment-driven Config: metrics export via Prometheus (default),
// OTLP, or stdout; traces via OTLP, stdout, or not at all. When
// instrumentation is disabled the Provider hands out no-op recorders so
// callers never branch on availability.
//
// # Recorded Metrics
//
//   - http_requests_total / http_request_duration_seconds
//   - task_store_operations_total / task_store_operation_duration_seconds
//   - oauth_auth_total
//   - active_sessions
//
// Owner names never appear as metric labels; label cardinality stays
// bounded by method, path, operation, and status.
package instrumentation
