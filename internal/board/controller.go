package board

import (
	"context"
	"strings"
	"sync"
	"time"

	"taskboard/internal/logging"
	"taskboard/internal/store"
)

// DateLayout is the calendar date format used for task dates.
const DateLayout = "2006-01-02"

// Config holds the dependencies for a Controller.
type Config struct {
	// Store is the task persistence backend.
	Store store.Store

	// User is the display name of the session owner. Empty means the
	// session is unauthenticated; owner-filtered refreshes then no-op.
	User string

	// Logger receives fire-and-forget write failures. Defaults to the
	// slog-backed default logger.
	Logger logging.Logger

	// Now supplies the clock for date defaulting. Defaults to time.Now.
	Now func() time.Time
}

// Controller owns the task snapshot for one active board view and
// orchestrates all reads and writes against the store.
//
// Local state is the source of truth for rendering: toggle and delete
// update the snapshot synchronously and push the store write in the
// background, without rollback on failure. Refresh and the create inside
// AddTask are awaited. One Controller serves one session; methods are
// safe for concurrent use because HTTP handlers run on arbitrary
// goroutines.
type Controller struct {
	store  store.Store
	user   string
	logger logging.Logger
	now    func() time.Time

	mu          sync.Mutex
	tasks       []store.Task
	showOthers  bool
	pendingText string
	pendingDate string

	// writes tracks in-flight fire-and-forget store calls so shutdown
	// and tests can drain them.
	writes sync.WaitGroup
}

// NewController creates a Controller for one session.
func NewController(config Config) *Controller {
	logger := config.Logger
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}
	return &Controller{
		store:  config.Store,
		user:   config.User,
		logger: logger,
		now:    now,
	}
}

// User returns the session owner's display name.
func (c *Controller) User() string {
	return c.user
}

// ShowOthers reports whether the view includes other owners' tasks.
func (c *Controller) ShowOthers() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.showOthers
}

// Tasks returns a copy of the current snapshot.
func (c *Controller) Tasks() []store.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]store.Task, len(c.tasks))
	copy(result, c.tasks)
	return result
}

// PendingInput returns the uncommitted form values.
func (c *Controller) PendingInput() (text, date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingText, c.pendingDate
}

// SetPendingInput stores uncommitted form values so a re-render can keep
// what the user typed.
func (c *Controller) SetPendingInput(text, date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingText = text
	c.pendingDate = date
}

// Refresh replaces the snapshot with a fresh fetch from the store.
//
// When the view is owner-filtered and no identity is available the call
// is a no-op, not an error. The fetch is a full replace; no merging.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	showOthers := c.showOthers
	c.mu.Unlock()

	var filter store.Filter
	if !showOthers {
		if c.user == "" {
			return nil
		}
		filter.Owner = c.user
	}

	tasks, err := c.store.ListTasks(ctx, filter)
	if err != nil {
		c.logger.Warn("refresh failed, keeping previous snapshot",
			logging.Operation("board.refresh"), logging.Err(err))
		return err
	}

	c.mu.Lock()
	c.tasks = tasks
	c.mu.Unlock()
	return nil
}

// AddTask creates a task owned by the session user.
//
// Empty-after-trim text is rejected silently. An empty date defaults to
// today in the controller's clock. On success the new record is appended
// locally with the store-assigned ID, the pending input is cleared, and
// the snapshot is reconciled with a full Refresh.
func (c *Controller) AddTask(ctx context.Context, text, date string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if date == "" {
		date = c.now().Format(DateLayout)
	}

	id, err := c.store.CreateTask(ctx, store.TaskInput{
		Owner:     c.user,
		Text:      text,
		Date:      date,
		Completed: false,
	})
	if err != nil {
		c.logger.Warn("create failed",
			logging.Operation("board.add"), logging.Err(err))
		return err
	}

	c.mu.Lock()
	c.tasks = append(c.tasks, store.Task{
		ID:        id,
		Owner:     c.user,
		Text:      text,
		Date:      date,
		Completed: false,
	})
	c.pendingText = ""
	c.pendingDate = ""
	c.mu.Unlock()

	// Reconcile with server state after the write.
	return c.Refresh(ctx)
}

// ToggleTask flips the completion flag of the task with the given ID.
//
// The flip is applied to the snapshot immediately; the store write runs
// in the background and is never rolled back on failure. Unknown IDs are
// a no-op.
func (c *Controller) ToggleTask(ctx context.Context, id string) {
	c.mu.Lock()
	var completed bool
	found := false
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks[i].Completed = !c.tasks[i].Completed
			completed = c.tasks[i].Completed
			found = true
			break
		}
	}
	c.mu.Unlock()

	if !found {
		return
	}

	c.writes.Add(1)
	go func(ctx context.Context) {
		defer c.writes.Done()
		err := c.store.UpdateTask(ctx, id, store.Fields{Completed: &completed})
		if err != nil {
			c.logger.Warn("toggle write failed, local state kept",
				logging.Operation("board.toggle"), logging.TaskID(id), logging.Err(err))
		}
	}(context.WithoutCancel(ctx))
}

// DeleteTask removes the task with the given ID.
//
// The record leaves the snapshot immediately; the store delete runs in
// the background regardless of outcome.
func (c *Controller) DeleteTask(ctx context.Context, id string) {
	c.mu.Lock()
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	c.writes.Add(1)
	go func(ctx context.Context) {
		defer c.writes.Done()
		if err := c.store.DeleteTask(ctx, id); err != nil {
			c.logger.Warn("delete write failed, local state kept",
				logging.Operation("board.delete"), logging.TaskID(id), logging.Err(err))
		}
	}(context.WithoutCancel(ctx))
}

// DeleteAllFor removes every task belonging to the given owner.
//
// Any viewer may invoke this for any owner shown on the board; it is not
// restricted to the session user. Matching records are fetched from the
// store, deleted one by one, and the snapshot is reconciled with a full
// Refresh afterwards.
func (c *Controller) DeleteAllFor(ctx context.Context, owner string) error {
	tasks, err := c.store.ListTasks(ctx, store.Filter{Owner: owner})
	if err != nil {
		c.logger.Warn("delete-all fetch failed",
			logging.Operation("board.delete_all"), logging.OwnerHash(owner), logging.Err(err))
		return err
	}

	for _, t := range tasks {
		if err := c.store.DeleteTask(ctx, t.ID); err != nil {
			c.logger.Warn("delete-all write failed, continuing",
				logging.Operation("board.delete_all"), logging.TaskID(t.ID), logging.Err(err))
		}
	}

	return c.Refresh(ctx)
}

// SetShowOthers sets the view filter and refreshes the snapshot.
func (c *Controller) SetShowOthers(ctx context.Context, show bool) error {
	c.mu.Lock()
	c.showOthers = show
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// ToggleShowOthers flips the view filter in one step and refreshes the
// snapshot. The flip happens under the controller's lock, so concurrent
// toggles never read a stale filter value.
func (c *Controller) ToggleShowOthers(ctx context.Context) error {
	c.mu.Lock()
	c.showOthers = !c.showOthers
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Wait blocks until all in-flight background writes have finished.
func (c *Controller) Wait() {
	c.writes.Wait()
}
