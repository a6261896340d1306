package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	WithOperation(logger, "board.refresh").Info("snapshot replaced")

	out := buf.String()
	assert.Contains(t, out, "operation=board.refresh")
	assert.Contains(t, out, "snapshot replaced")
}

func TestWithStore(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	WithStore(logger, "firestore").Info("task created")

	assert.Contains(t, buf.String(), "store=firestore")
}

func TestErr(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("write failed", Err(errors.New("backend down")))
	assert.Contains(t, buf.String(), "error=\"backend down\"")
}

func TestErr_NilIsOmitted(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("write ok", Err(nil))
	assert.NotContains(t, buf.String(), "error=")
}

func TestAnonymizeOwner(t *testing.T) {
	assert.Empty(t, AnonymizeOwner(""))

	hashed := AnonymizeOwner("alice")
	assert.True(t, strings.HasPrefix(hashed, "owner:"))
	assert.NotContains(t, hashed, "alice")

	// Stable: same input, same hash
	assert.Equal(t, hashed, AnonymizeOwner("alice"))
	// Distinct inputs produce distinct hashes
	assert.NotEqual(t, hashed, AnonymizeOwner("bob"))
}

func TestStatusAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("op done",
		Operation("board.add"),
		Status(StatusSuccess),
		TaskID("doc-1"),
	)

	out := buf.String()
	assert.Contains(t, out, "operation=board.add")
	assert.Contains(t, out, "status=success")
	assert.Contains(t, out, "task_id=doc-1")
}
