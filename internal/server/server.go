package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"taskboard/internal/board"
	"taskboard/internal/instrumentation"
	"taskboard/internal/logging"
	"taskboard/internal/session"
	"taskboard/internal/store"
)

const (
	// DefaultAddr is the default listen address for the board server.
	DefaultAddr = ":8080"

	defaultReadHeaderTimeout = 10 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
)

// Config holds the dependencies for the board server.
type Config struct {
	// Store is the task persistence backend.
	Store store.Store

	// Sessions resolves request cookies to signed-in users.
	Sessions *session.Manager

	// Flow serves the Google sign-in endpoints. Optional; without it the
	// sign-in routes are not registered and sign-out is handled locally.
	Flow *session.Flow

	// Logger defaults to slog.Default.
	Logger *slog.Logger

	// Metrics records HTTP and session metrics. Optional.
	Metrics *instrumentation.Metrics
}

// Server is the HTTP front of the board: it renders the task list and
// translates form posts into board controller calls.
//
// Each signed-in session gets its own board.Controller, keyed by the
// session token. The controller holds that session's view state (the
// snapshot and the everyone/mine filter) for as long as the session
// lives.
type Server struct {
	store    store.Store
	sessions *session.Manager
	flow     *session.Flow
	logger   *slog.Logger
	metrics  *instrumentation.Metrics
	health   *HealthChecker

	mu          sync.Mutex
	controllers map[string]*board.Controller

	httpServer *http.Server
	shutdown   atomic.Bool
}

// NewServer creates the board server.
func NewServer(config Config) (*Server, error) {
	if config.Store == nil {
		return nil, fmt.Errorf("task store is required")
	}
	if config.Sessions == nil {
		return nil, fmt.Errorf("session manager is required")
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := config.Metrics
	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}

	s := &Server{
		store:       config.Store,
		sessions:    config.Sessions,
		flow:        config.Flow,
		logger:      logger,
		metrics:     metrics,
		controllers: make(map[string]*board.Controller),
	}
	s.health = NewHealthChecker(s.shutdown.Load)

	// Every ending session, signed out or idle-expired, releases its
	// controller and brings the active-sessions gauge down.
	s.sessions.OnRemove(func(token string) {
		s.metrics.DecrementActiveSessions(context.Background())
		if ctrl := s.dropController(token); ctrl != nil {
			go ctrl.Wait()
		}
	})

	return s, nil
}

// Health returns the server's health checker.
func (s *Server) Health() *HealthChecker {
	return s.health
}

// Handler builds the full route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.instrument("/", s.handleBoard))
	mux.HandleFunc("GET /login", s.instrument("/login", s.handleLoginPage))
	mux.HandleFunc("POST /tasks", s.instrument("/tasks", s.handleAdd))
	mux.HandleFunc("POST /tasks/toggle", s.instrument("/tasks/toggle", s.handleToggle))
	mux.HandleFunc("POST /tasks/delete", s.instrument("/tasks/delete", s.handleDelete))
	mux.HandleFunc("POST /owners/delete", s.instrument("/owners/delete", s.handleDeleteAll))
	mux.HandleFunc("POST /filter", s.instrument("/filter", s.handleFilter))
	mux.HandleFunc("POST /logout", s.instrument("/logout", s.handleSignOut))

	if s.flow != nil {
		mux.HandleFunc("GET /oauth/login", s.instrument("/oauth/login", s.flow.HandleLogin))
		mux.HandleFunc("GET /oauth/callback", s.instrument("/oauth/callback", s.flow.HandleCallback))
	}

	s.health.RegisterHealthEndpoints(mux)

	return mux
}

// Start runs the server on addr until Shutdown is called. A clean close
// returns nil.
func (s *Server) Start(addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
	}

	s.health.SetReady(true)
	s.logger.Info("starting board server", "addr", addr)

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting requests and drains the in-flight background
// store writes of every live controller.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdown.Store(true)
	s.health.SetReady(false)

	var err error
	if s.httpServer != nil {
		s.logger.Info("shutting down board server")
		err = s.httpServer.Shutdown(ctx)
	}

	s.mu.Lock()
	controllers := make([]*board.Controller, 0, len(s.controllers))
	for _, c := range s.controllers {
		controllers = append(controllers, c)
	}
	s.controllers = make(map[string]*board.Controller)
	s.mu.Unlock()

	for _, c := range controllers {
		c.Wait()
	}

	return err
}

// controller returns the board controller of the request's session,
// creating one on first use. ErrUnauthenticated means the caller should
// redirect to the login page.
func (s *Server) controller(r *http.Request) (*board.Controller, error) {
	user, err := s.sessions.UserFromRequest(r)
	if err != nil {
		return nil, err
	}
	token := s.sessions.TokenFromRequest(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	if ctrl, ok := s.controllers[token]; ok {
		return ctrl, nil
	}

	ctrl := board.NewController(board.Config{
		Store:  s.store,
		User:   user.Name,
		Logger: logging.NewSlogAdapter(s.logger),
	})
	s.controllers[token] = ctrl
	return ctrl, nil
}

func (s *Server) dropController(token string) *board.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctrl := s.controllers[token]
	delete(s.controllers, token)
	return ctrl
}
// handleBoard renders the grouped task list for the session.
func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	ctrl, err := s.controller(r)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	// Every page view re-fetches; a failed fetch still renders the last
	// known snapshot.
	if err := ctrl.Refresh(r.Context()); err != nil {
		s.logger.Warn("board refresh failed", logging.Err(err))
	}

	pendingText, pendingDate := ctrl.PendingInput()
	data := boardData{
		User:        ctrl.User(),
		ShowOthers:  ctrl.ShowOthers(),
		Groups:      toOwnerGroups(ctrl.Groups()),
		PendingText: pendingText,
		PendingDate: pendingDate,
		Today:       time.Now().Format(board.DateLayout),
	}

	s.render(w, boardTemplate, data)
}

// handleLoginPage renders the sign-in page, or sends signed-in users back
// to the board.
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, err := s.sessions.UserFromRequest(r); err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, loginTemplate, nil)
}

// handleAdd creates a task from the add form and returns to the board.
func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctrl, err := s.controller(r)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	text := r.FormValue("text")
	date := r.FormValue("date")

	// Keep the typed values; a successful create clears them.
	ctrl.SetPendingInput(text, date)
	if err := ctrl.AddTask(r.Context(), text, date); err != nil {
		s.logger.Warn("add task failed", logging.Err(err))
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleToggle flips one task's completion state.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	ctrl, err := s.controller(r)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if id := r.FormValue("id"); id != "" {
		ctrl.ToggleTask(r.Context(), id)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleDelete removes one task.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctrl, err := s.controller(r)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if id := r.FormValue("id"); id != "" {
		ctrl.DeleteTask(r.Context(), id)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleDeleteAll removes every task of one owner.
func (s *Server) handleDeleteAll(w http.ResponseWriter, r *http.Request) {
	ctrl, err := s.controller(r)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if owner := r.FormValue("owner"); owner != "" {
		if err := ctrl.DeleteAllFor(r.Context(), owner); err != nil {
			s.logger.Warn("delete all failed",
				logging.OwnerHash(owner), logging.Err(err))
		}
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleFilter toggles between the owner-only and everyone views.
func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	ctrl, err := s.controller(r)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := ctrl.ToggleShowOthers(r.Context()); err != nil {
		s.logger.Warn("filter refresh failed", logging.Err(err))
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleSignOut ends the session and navigates back to the login page.
// Controller teardown and the gauge decrement ride the session manager's
// OnRemove notification.
func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if s.flow != nil {
		s.flow.HandleSignOut(w, r)
		return
	}

	if token := s.sessions.TokenFromRequest(r); token != "" {
		s.sessions.Remove(token)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// render writes a fully buffered template so a render error can still
// produce a clean 500.
func (s *Server) render(w http.ResponseWriter, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		s.logger.Error("template render failed", logging.Err(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// toOwnerGroups converts board groups into the template's render model.
func toOwnerGroups(groups []board.Group) []ownerGroup {
	result := make([]ownerGroup, 0, len(groups))
	for _, g := range groups {
		rows := make([]taskRow, 0, len(g.Tasks))
		for _, t := range g.Tasks {
			rows = append(rows, taskRow{
				ID:        t.ID,
				Text:      t.Text,
				Date:      t.Date,
				Completed: t.Completed,
			})
		}
		result = append(result, ownerGroup{Owner: g.Owner, Tasks: rows})
	}
	return result
}

// statusRecorder captures the response status for request metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument wraps a handler with a request span, request metrics, and
// debug logging. The path label is the route pattern, never the raw URL,
// to keep metric cardinality bounded.
func (s *Server) instrument(path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := instrumentation.StartSpan(r.Context(), "http "+path)
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(recorder, r.WithContext(ctx))

		duration := time.Since(start)
		status := instrumentation.StatusSuccess
		if recorder.status >= http.StatusInternalServerError {
			status = instrumentation.StatusError
		}
		span.SetAttributes(attribute.String(instrumentation.SpanAttrStatus, status))
		instrumentation.EndSpan(span, nil)

		s.metrics.RecordHTTPRequest(ctx, r.Method, path, recorder.status, duration)
		s.logger.Debug("request handled",
			"method", r.Method,
			"path", path,
			"status", recorder.status,
			logging.KeyDuration, duration,
		)
	}
}
