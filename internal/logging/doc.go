// Package logging provides structured logging utilities for taskboard.
//
// This package centralizes logging patterns to ensure consistent,
// structured logging throughout the codebase using the standard library's
// slog package.
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "board.refresh")
//	logger.Info("snapshot replaced", logging.Status(logging.StatusSuccess))
//
// Sanitize identities before logging:
//
//	logger.Info("tasks removed", logging.OwnerHash(owner))
//
// # Security Considerations
//
// Owner names are user identities. They are hashed before logging so that
// entries can be correlated without writing PII into log storage. Task
// text is never logged.
package logging
