package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"taskboard/internal/logging"
)

// stateCookie carries the CSRF state between the login redirect and the
// provider callback.
const stateCookie = "taskboard_oauth_state"

// Results reported through FlowConfig.OnAuth.
const (
	AuthResultSuccess = "success"
	AuthResultFailure = "failure"
)

// FlowConfig holds the settings for the Google sign-in flow.
type FlowConfig struct {
	// ClientID and ClientSecret identify the OAuth application.
	ClientID     string
	ClientSecret string

	// BaseURL is the public base URL of this deployment, used to build
	// the redirect URL. Example: https://board.example.com
	BaseURL string

	// Secure marks issued cookies as HTTPS-only. Disable for localhost.
	Secure bool

	// Manager stores the sessions created on successful sign-in.
	Manager *Manager

	// Logger defaults to slog.Default.
	Logger *slog.Logger

	// OnAuth, when set, is called with AuthResultSuccess or
	// AuthResultFailure after each callback, for metrics recording.
	OnAuth func(ctx context.Context, result string)
}

// Flow implements the Google OAuth 2.0 web sign-in: a login redirect, the
// provider callback, and sign-out.
type Flow struct {
	conf    *oauth2.Config
	manager *Manager
	logger  *slog.Logger
	secure  bool
	onAuth  func(ctx context.Context, result string)
}

// NewFlow creates the sign-in flow.
func NewFlow(config FlowConfig) (*Flow, error) {
	if config.ClientID == "" || config.ClientSecret == "" {
		return nil, fmt.Errorf("Google OAuth client ID and secret are required")
	}
	if config.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required to build the OAuth redirect URL")
	}
	if config.Manager == nil {
		return nil, fmt.Errorf("session manager is required")
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Flow{
		conf: &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  config.BaseURL + "/oauth/callback",
			Scopes: []string{
				oauth2api.UserinfoProfileScope,
				oauth2api.UserinfoEmailScope,
			},
		},
		manager: config.Manager,
		logger:  logger,
		secure:  config.Secure,
		onAuth:  config.OnAuth,
	}, nil
}

// HandleLogin starts the sign-in: sets the state cookie and redirects to
// the provider's consent page.
func (f *Flow) HandleLogin(w http.ResponseWriter, r *http.Request) {
	state := newState()

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, f.conf.AuthCodeURL(state), http.StatusFound)
}

// HandleCallback finishes the sign-in: verifies state, exchanges the
// authorization code, resolves the user's profile, and issues a session.
func (f *Flow) HandleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.FormValue("state") {
		f.authFailed(ctx, w, "state mismatch on OAuth callback", err)
		return
	}

	code := r.FormValue("code")
	if code == "" {
		f.authFailed(ctx, w, "OAuth callback without authorization code", nil)
		return
	}

	token, err := f.conf.Exchange(ctx, code)
	if err != nil {
		f.authFailed(ctx, w, "failed to exchange authorization code", err)
		return
	}

	user, err := f.fetchUser(ctx, token)
	if err != nil {
		f.authFailed(ctx, w, "failed to fetch user profile", err)
		return
	}

	sessionToken := f.manager.Create(user)
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sessionToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
	})
	// The state cookie is one-shot
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1})

	f.logger.Info("user signed in",
		logging.OwnerHash(user.Name),
		logging.Status(logging.StatusSuccess))
	if f.onAuth != nil {
		f.onAuth(ctx, AuthResultSuccess)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleSignOut terminates the session and navigates back to login.
func (f *Flow) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	if token := f.manager.TokenFromRequest(r); token != "" {
		f.manager.Remove(token)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   f.secure,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// fetchUser resolves the signed-in user's profile via the userinfo API.
func (f *Flow) fetchUser(ctx context.Context, token *oauth2.Token) (User, error) {
	svc, err := oauth2api.NewService(ctx,
		option.WithTokenSource(f.conf.TokenSource(ctx, token)))
	if err != nil {
		return User{}, fmt.Errorf("failed to create userinfo service: %w", err)
	}

	info, err := svc.Userinfo.Get().Do()
	if err != nil {
		return User{}, fmt.Errorf("failed to get userinfo: %w", err)
	}

	name := info.Name
	if name == "" {
		name = info.Email
	}
	if name == "" {
		return User{}, fmt.Errorf("identity provider returned no usable name")
	}

	return User{Name: name, Email: info.Email}, nil
}

func (f *Flow) authFailed(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	f.logger.Warn(msg, logging.Err(err), logging.Status(logging.StatusError))
	if f.onAuth != nil {
		f.onAuth(ctx, AuthResultFailure)
	}
	http.Error(w, "sign-in failed", http.StatusUnauthorized)
}

// newState returns a random CSRF state value.
func newState() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
