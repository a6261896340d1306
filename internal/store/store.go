package store

import (
	"context"
	"errors"
)

// Sentinel errors for the store error taxonomy. Implementations wrap
// backend-specific failures into one of these so callers can branch with
// errors.Is without importing backend packages.
var (
	// ErrUnavailable indicates the backend could not be reached.
	ErrUnavailable = errors.New("task store unavailable")

	// ErrWriteRejected indicates the backend refused a write.
	ErrWriteRejected = errors.New("task store rejected write")

	// ErrNotFound indicates the referenced task does not exist.
	ErrNotFound = errors.New("task not found")
)

// Task represents one to-do record as held in the store.
type Task struct {
	// ID is the store-assigned document identifier. Unique, immutable.
	ID string

	// Owner is the display name of the user who created the task.
	// Never changes after creation.
	Owner string

	// Text is the free-form task description.
	Text string

	// Date is the calendar date in YYYY-MM-DD form.
	Date string

	// Completed reports whether the task has been checked off.
	Completed bool
}

// TaskInput represents the fields for creating a task.
// The store assigns the ID.
type TaskInput struct {
	Owner     string
	Text      string
	Date      string
	Completed bool
}

// Fields holds a partial update. Nil pointers mean "leave unchanged".
type Fields struct {
	Text      *string
	Date      *string
	Completed *bool
}

// Filter narrows a List call. The zero value matches all owners.
type Filter struct {
	// Owner restricts results to tasks created by this user.
	// Empty means no owner restriction.
	Owner string
}

// Store is the interface all task persistence backends implement.
// The board controller never talks to a database directly.
type Store interface {
	// ListTasks returns the tasks matching the filter. The result is a
	// snapshot; no ordering is guaranteed by the store.
	ListTasks(ctx context.Context, filter Filter) ([]Task, error)

	// CreateTask stores a new task and returns the assigned ID.
	CreateTask(ctx context.Context, input TaskInput) (string, error)

	// UpdateTask applies a partial update to the task with the given ID.
	UpdateTask(ctx context.Context, id string, fields Fields) error

	// DeleteTask removes the task with the given ID.
	DeleteTask(ctx context.Context, id string) error
}
