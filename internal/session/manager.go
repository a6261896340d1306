package session

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// CookieName is the session cookie set after a successful sign-in.
const CookieName = "taskboard_session"

// DefaultTimeout is the idle timeout after which a session expires.
const DefaultTimeout = 24 * time.Hour

// sessionInfo tracks session identity and last access for cleanup.
type sessionInfo struct {
	user       User
	lastAccess time.Time
}

// Manager implements cookie-based session management. Each signed-in
// browser gets an opaque random token; the token-to-identity mapping
// lives in memory and expires after an idle timeout.
type Manager struct {
	sessions       map[string]*sessionInfo
	mu             sync.RWMutex
	cleanupTicker  *time.Ticker
	cleanupDone    chan bool
	sessionTimeout time.Duration
	logger         *slog.Logger
	onRemove       func(token string)
}

// NewManager creates a session manager with the default timeout.
func NewManager() *Manager {
	return NewManagerWithTimeout(DefaultTimeout, slog.Default())
}

// NewManagerWithTimeout creates a session manager with a custom idle
// timeout and logger.
func NewManagerWithTimeout(timeout time.Duration, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		sessions:       make(map[string]*sessionInfo),
		cleanupTicker:  time.NewTicker(10 * time.Minute),
		cleanupDone:    make(chan bool),
		sessionTimeout: timeout,
		logger:         logger,
	}

	// Start cleanup goroutine
	go m.cleanupExpiredSessions()

	return m
}

// Create registers a new session for the user and returns its token.
func (m *Manager) Create(user User) string {
	token := newToken()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = &sessionInfo{
		user:       user,
		lastAccess: time.Now(),
	}
	return token
}

// Lookup resolves a token to its user and refreshes the idle timer.
func (m *Manager) Lookup(token string) (User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	info, ok := m.sessions[token]
	if !ok {
		return User{}, false
	}
	info.lastAccess = time.Now()
	return info.user, true
}

// OnRemove registers fn to be called with the token of every session
// that ends, whether by explicit Remove or by idle expiry. At most one
// handler is held; it runs outside the manager's lock.
func (m *Manager) OnRemove(fn func(token string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onRemove = fn
}

// Remove deletes a session.
func (m *Manager) Remove(token string) {
	m.mu.Lock()
	_, existed := m.sessions[token]
	delete(m.sessions, token)
	fn := m.onRemove
	m.mu.Unlock()

	if existed && fn != nil {
		fn(token)
	}
}

// ActiveCount returns the number of live sessions.
func (m *Manager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// UserFromRequest implements Provider using the session cookie.
func (m *Manager) UserFromRequest(r *http.Request) (User, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return User{}, ErrUnauthenticated
	}

	user, ok := m.Lookup(cookie.Value)
	if !ok {
		return User{}, ErrUnauthenticated
	}
	return user, nil
}

// TokenFromRequest returns the raw session token of a request, or empty.
func (m *Manager) TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// cleanupExpiredSessions periodically removes idle sessions.
func (m *Manager) cleanupExpiredSessions() {
	for {
		select {
		case <-m.cleanupTicker.C:
			expired := m.removeExpired()
			if len(expired) > 0 {
				m.logger.Info("Cleaned up expired sessions", "count", len(expired))
			}
		case <-m.cleanupDone:
			return
		}
	}
}

// removeExpired deletes every idle session past the timeout and notifies
// the OnRemove handler for each, outside the lock.
func (m *Manager) removeExpired() []string {
	m.mu.Lock()
	now := time.Now()
	var expired []string
	for token, info := range m.sessions {
		if now.Sub(info.lastAccess) > m.sessionTimeout {
			delete(m.sessions, token)
			expired = append(expired, token)
		}
	}
	fn := m.onRemove
	m.mu.Unlock()

	if fn != nil {
		for _, token := range expired {
			fn(token)
		}
	}
	return expired
}

// Stop stops the session cleanup goroutine.
func (m *Manager) Stop() {
	if m.cleanupTicker != nil {
		m.cleanupTicker.Stop()
	}
	if m.cleanupDone != nil {
		close(m.cleanupDone)
	}
}

// newToken returns an opaque random session token.
func newToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the platform RNG is broken
		panic(err)
	}
	return hex.EncodeToString(buf)
}
