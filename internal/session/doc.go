// Package session supplies the current viewer's identity.
//
// Authentication is delegated to Google OAuth 2.0: Flow implements the
// web sign-in (login redirect, provider callback, sign-out) and Manager
// keeps the cookie-token-to-identity mapping in memory with an idle
// timeout. Requests without a valid session resolve to
// ErrUnauthenticated, which the HTTP layer turns into a redirect to the
// login surface.
//
// Sessions are process-local. A restart signs everyone out; there is no
// persistent session store.
package session
