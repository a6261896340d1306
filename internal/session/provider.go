package session

import (
	"errors"
	"net/http"
)

// ErrUnauthenticated is returned when a request carries no valid session.
// Callers redirect to the login surface; this is never treated as a crash.
var ErrUnauthenticated = errors.New("no authenticated session")

// User is the identity of the current viewer, supplied by the external
// identity provider.
type User struct {
	// Name is the display name used as the task owner.
	Name string

	// Email is the account email. Logged only in anonymized form.
	Email string
}

// Provider supplies the current user for a request.
type Provider interface {
	// UserFromRequest resolves the session identity of an HTTP request.
	// Returns ErrUnauthenticated when no valid session exists.
	UserFromRequest(r *http.Request) (User, error)
}
