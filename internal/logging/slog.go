package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation = "operation"
	KeyStore     = "store"
	KeyOwnerHash = "owner_hash"
	KeyTaskID    = "task_id"
	KeyStatus    = "status"
	KeyError     = "error"
	KeyDuration  = "duration"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// WithStore returns a logger with the store backend attribute set.
func WithStore(logger *slog.Logger, backend string) *slog.Logger {
	return logger.With(slog.String(KeyStore, backend))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// TaskID returns a slog attribute for a task document ID.
func TaskID(id string) slog.Attr {
	return slog.String(KeyTaskID, id)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted
// from output, so Err(maybeNilErr) is always safe to pass.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// AnonymizeOwner returns a hashed representation of an owner name for
// logging. Owner names are user identities; hashing allows correlating
// log entries without writing PII into log storage.
func AnonymizeOwner(owner string) string {
	if owner == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(owner))
	return "owner:" + hex.EncodeToString(hash[:8])
}

// OwnerHash returns a slog attribute with the anonymized owner name.
func OwnerHash(owner string) slog.Attr {
	return slog.String(KeyOwnerHash, AnonymizeOwner(owner))
}
