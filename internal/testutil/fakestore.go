// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"taskboard/internal/store"
)

// UpdateCall records one UpdateTask invocation against the fake store.
type UpdateCall struct {
	ID     string
	Fields store.Fields
}

// FakeStore is an in-memory implementation of store.Store for testing.
// It records every call so tests can assert on the writes a controller
// issued, and supports error injection per operation.
type FakeStore struct {
	mu     sync.RWMutex
	tasks  []store.Task
	nextID int

	// Error injection for testing
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error

	// Call recording
	listCalls   []store.Filter
	createCalls []store.TaskInput
	updateCalls []UpdateCall
	deleteCalls []string
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

// Seed adds tasks directly to the fake store without recording calls.
func (f *FakeStore) Seed(tasks ...store.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, tasks...)
}

// ListTasks implements store.Store.
func (f *FakeStore) ListTasks(ctx context.Context, filter store.Filter) ([]store.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls = append(f.listCalls, filter)
	if f.ListErr != nil {
		return nil, f.ListErr
	}

	var result []store.Task
	for _, t := range f.tasks {
		if filter.Owner == "" || t.Owner == filter.Owner {
			result = append(result, t)
		}
	}
	return result, nil
}

// CreateTask implements store.Store.
func (f *FakeStore) CreateTask(ctx context.Context, input store.TaskInput) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls = append(f.createCalls, input)
	if f.CreateErr != nil {
		return "", f.CreateErr
	}

	f.nextID++
	id := fmt.Sprintf("task-%d", f.nextID)
	f.tasks = append(f.tasks, store.Task{
		ID:        id,
		Owner:     input.Owner,
		Text:      input.Text,
		Date:      input.Date,
		Completed: input.Completed,
	})
	return id, nil
}

// UpdateTask implements store.Store.
func (f *FakeStore) UpdateTask(ctx context.Context, id string, fields store.Fields) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updateCalls = append(f.updateCalls, UpdateCall{ID: id, Fields: fields})
	if f.UpdateErr != nil {
		return f.UpdateErr
	}

	for i := range f.tasks {
		if f.tasks[i].ID == id {
			if fields.Text != nil {
				f.tasks[i].Text = *fields.Text
			}
			if fields.Date != nil {
				f.tasks[i].Date = *fields.Date
			}
			if fields.Completed != nil {
				f.tasks[i].Completed = *fields.Completed
			}
			return nil
		}
	}
	return store.ErrNotFound
}

// DeleteTask implements store.Store.
func (f *FakeStore) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleteCalls = append(f.deleteCalls, id)
	if f.DeleteErr != nil {
		return f.DeleteErr
	}

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			break
		}
	}
	// Deleting a missing document succeeds, matching Firestore behavior.
	return nil
}

// Tasks returns a copy of the current task set.
func (f *FakeStore) Tasks() []store.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]store.Task, len(f.tasks))
	copy(result, f.tasks)
	return result
}

// ListCalls returns the recorded list filters.
func (f *FakeStore) ListCalls() []store.Filter {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]store.Filter, len(f.listCalls))
	copy(result, f.listCalls)
	return result
}

// CreateCalls returns the recorded create inputs.
func (f *FakeStore) CreateCalls() []store.TaskInput {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]store.TaskInput, len(f.createCalls))
	copy(result, f.createCalls)
	return result
}

// UpdateCalls returns the recorded partial updates.
func (f *FakeStore) UpdateCalls() []UpdateCall {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]UpdateCall, len(f.updateCalls))
	copy(result, f.updateCalls)
	return result
}

// DeleteCalls returns the recorded delete IDs.
func (f *FakeStore) DeleteCalls() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]string, len(f.deleteCalls))
	copy(result, f.deleteCalls)
	return result
}
