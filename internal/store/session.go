// Package store holds the client-side application state: the current
// session and the snippet collections. Stores sit between the UI layer and
// the API client: callers hand them plain values, they orchestrate the API
// call, and they own every mutation of their state.
//
// Stores never panic and never leak state transitions: an operation either
// lands its result in the store or records its failure there, and the
// returned error exists only so the caller can sequence its own control
// flow.
package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/sakif/snipshare/internal/api"
	"github.com/sakif/snipshare/internal/apperror"
	"github.com/sakif/snipshare/internal/credentials"
	"github.com/sakif/snipshare/internal/model"
)

// Fixed failure strings shown for authentication failures. Deliberately
// vague: the login form must not reveal whether the email or the password
// was wrong.
const (
	loginFailedMessage    = "Login failed. Please check your credentials."
	registerFailedMessage = "Registration failed. Please check your details."
	refreshFailedMessage  = "Failed to fetch user information."
)

// AuthAPI is the slice of the API client the session store needs.
// Declared here, at the consumer, so tests can substitute a hand-written
// mock.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Register(ctx context.Context, input api.RegisterInput) (*model.User, string, error)
	Me(ctx context.Context) (*model.User, error)
	UpdateProfile(ctx context.Context, input api.UpdateProfileInput) (*model.User, error)
}

// Session is a point-in-time snapshot of authentication state.
// Invariant: User non-nil implies Token non-empty — the two are only ever
// set together on success and cleared together on logout or expiry.
type Session struct {
	User        *model.User
	Token       string
	IsLoading   bool
	Error       string
	Initialized bool
}

// SessionStore owns the authenticated-user state and the persisted token.
//
// Concurrent logins are not deduplicated: whichever response resolves last
// wins the store, matching the behaviour the API was designed against.
type SessionStore struct {
	mu    sync.Mutex
	state Session

	api    AuthAPI
	creds  *credentials.Store
	logger *slog.Logger
}

// NewSessionStore creates a SessionStore. The persisted token (if any and
// unexpired) is adopted immediately so a restarted client stays logged in;
// the user record stays nil until RefreshSelf confirms the token works.
func NewSessionStore(authAPI AuthAPI, creds *credentials.Store, logger *slog.Logger) *SessionStore {
	return &SessionStore{
		state:  Session{Token: creds.Get()},
		api:    authAPI,
		creds:  creds,
		logger: logger,
	}
}

// Snapshot returns a copy of the current session state.
func (s *SessionStore) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

// IsAuthenticated reports whether a user is currently logged in.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.User != nil
}

// Token returns the current bearer token, or "" when anonymous.
func (s *SessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// Login authenticates with email and password. On success the user and
// token are set together and the token is persisted for future runs; on
// failure the session is left untouched apart from the fixed error string.
func (s *SessionStore) Login(ctx context.Context, email, password string) error {
	s.begin()

	user, token, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.fail(loginFailedMessage)
		s.logger.Warn("login failed", slog.String("email", email), slog.String("error", err.Error()))
		return err
	}
	s.establish(user, token)
	s.logger.Info("logged in", slog.String("username", user.Username))
	return nil
}

// Register creates an account; the success and failure contracts match
// Login. Redirecting to a welcome view afterwards is the caller's job.
func (s *SessionStore) Register(ctx context.Context, input api.RegisterInput) error {
	s.begin()

	user, token, err := s.api.Register(ctx, input)
	if err != nil {
		s.fail(registerFailedMessage)
		s.logger.Warn("registration failed", slog.String("email", input.Email), slog.String("error", err.Error()))
		return err
	}
	s.establish(user, token)
	s.logger.Info("registered", slog.String("username", user.Username))
	return nil
}

// Logout clears the persisted token and resets the session. It is a
// local-only operation and always succeeds from the store's perspective —
// a failure to remove the file is logged, not surfaced.
func (s *SessionStore) Logout() {
	if err := s.creds.Clear(); err != nil {
		s.logger.Warn("failed to clear persisted token", slog.String("error", err.Error()))
	}

	s.mu.Lock()
	s.state.User = nil
	s.state.Token = ""
	s.state.IsLoading = false
	s.state.Error = ""
	s.mu.Unlock()

	s.logger.Info("logged out")
}

// RefreshSelf re-fetches the current user with the persisted token ("who
// am I"). A session-expired answer ends the session: the store — not the
// HTTP layer — clears the persisted credential, so the authority over the
// token lives in exactly one place.
func (s *SessionStore) RefreshSelf(ctx context.Context) error {
	token := s.creds.Get()
	if token == "" {
		s.endSession(refreshFailedMessage)
		return apperror.SessionExpired()
	}

	s.begin()

	user, err := s.api.Me(ctx)
	if err != nil {
		if errors.Is(err, apperror.ErrSessionExpired) {
			if clearErr := s.creds.Clear(); clearErr != nil {
				s.logger.Warn("failed to clear expired token", slog.String("error", clearErr.Error()))
			}
			s.endSession(refreshFailedMessage)
			s.logger.Info("session expired")
			return err
		}
		s.fail(refreshFailedMessage)
		return err
	}

	s.mu.Lock()
	s.state.User = user
	s.state.Token = token
	s.state.IsLoading = false
	s.state.Error = ""
	s.state.Initialized = true
	s.mu.Unlock()
	return nil
}

// UpdateProfile submits new profile fields and replaces the stored user
// wholesale with the refreshed record the server returns.
func (s *SessionStore) UpdateProfile(ctx context.Context, input api.UpdateProfileInput) error {
	s.begin()

	user, err := s.api.UpdateProfile(ctx, input)
	if err != nil {
		if errors.Is(err, apperror.ErrSessionExpired) {
			if clearErr := s.creds.Clear(); clearErr != nil {
				s.logger.Warn("failed to clear expired token", slog.String("error", clearErr.Error()))
			}
			s.endSession(apperror.Message(err, "Failed to update profile."))
			return err
		}
		s.fail(apperror.Message(err, "Failed to update profile."))
		return err
	}

	s.mu.Lock()
	s.state.User = user
	s.state.IsLoading = false
	s.state.Error = ""
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) begin() {
	s.mu.Lock()
	s.state.IsLoading = true
	s.state.Error = ""
	s.mu.Unlock()
}

// fail records an error without touching user/token.
func (s *SessionStore) fail(message string) {
	s.mu.Lock()
	s.state.IsLoading = false
	s.state.Error = message
	s.state.Initialized = true
	s.mu.Unlock()
}

// establish sets user and token together and persists the token.
func (s *SessionStore) establish(user *model.User, token string) {
	if err := s.creds.Set(token); err != nil {
		// The session still works for this process; it just won't survive a
		// restart. Not worth failing the login over.
		s.logger.Warn("failed to persist token", slog.String("error", err.Error()))
	}

	s.mu.Lock()
	s.state.User = user
	s.state.Token = token
	s.state.IsLoading = false
	s.state.Error = ""
	s.state.Initialized = true
	s.mu.Unlock()
}

// endSession resets to anonymous with an error message.
func (s *SessionStore) endSession(message string) {
	s.mu.Lock()
	s.state.User = nil
	s.state.Token = ""
	s.state.IsLoading = false
	s.state.Error = message
	s.state.Initialized = true
	s.mu.Unlock()
}
