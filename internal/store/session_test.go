package store

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/sakif/snipshare/internal/api"
	"github.com/sakif/snipshare/internal/apperror"
	"github.com/sakif/snipshare/internal/credentials"
	"github.com/sakif/snipshare/internal/model"
)

// mockAuthAPI is a hand-written fake of the auth endpoints. Each field
// configures the next response; nil error means success.
type mockAuthAPI struct {
	user  *model.User
	token string
	err   error

	meUser *model.User
	meErr  error
}

func (m *mockAuthAPI) Login(_ context.Context, _, _ string) (*model.User, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	return m.user, m.token, nil
}

func (m *mockAuthAPI) Register(_ context.Context, _ api.RegisterInput) (*model.User, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	return m.user, m.token, nil
}

func (m *mockAuthAPI) Me(_ context.Context) (*model.User, error) {
	if m.meErr != nil {
		return nil, m.meErr
	}
	return m.meUser, nil
}

func (m *mockAuthAPI) UpdateProfile(_ context.Context, _ api.UpdateProfileInput) (*model.User, error) {
	if m.meErr != nil {
		return nil, m.meErr
	}
	return m.meUser, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestSession(t *testing.T, mock *mockAuthAPI) (*SessionStore, *credentials.Store) {
	t.Helper()
	creds := credentials.NewStore(filepath.Join(t.TempDir(), "token.json"))
	return NewSessionStore(mock, creds, testLogger()), creds
}

func TestLogin_Success(t *testing.T) {
	user := &model.User{ID: "u1", Username: "ada", Email: "ada@example.com"}
	svc, creds := newTestSession(t, &mockAuthAPI{user: user, token: "tok-1"})

	if err := svc.Login(context.Background(), "ada@example.com", "secret"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	state := svc.Snapshot()
	if state.User == nil || state.User.Username != "ada" {
		t.Errorf("User = %+v, want ada", state.User)
	}
	if state.Token != "tok-1" {
		t.Errorf("Token = %q, want tok-1", state.Token)
	}
	if state.Error != "" {
		t.Errorf("Error = %q, want empty", state.Error)
	}
	if creds.Get() != "tok-1" {
		t.Error("token should be persisted after login")
	}
}

func TestLogin_Failure(t *testing.T) {
	svc, creds := newTestSession(t, &mockAuthAPI{err: apperror.SessionExpired()})

	if err := svc.Login(context.Background(), "ada@example.com", "wrong"); err == nil {
		t.Fatal("Login() should return the API error")
	}

	state := svc.Snapshot()
	if state.User != nil {
		t.Errorf("User = %+v, want nil after failed login", state.User)
	}
	if state.Error != "Login failed. Please check your credentials." {
		t.Errorf("Error = %q, want the fixed login failure string", state.Error)
	}
	if creds.Get() != "" {
		t.Error("no token should be persisted after failed login")
	}
}

func TestRegister_Failure_FixedString(t *testing.T) {
	svc, _ := newTestSession(t, &mockAuthAPI{err: apperror.API("email taken")})

	_ = svc.Register(context.Background(), api.RegisterInput{Email: "x@y.z"})

	if got := svc.Snapshot().Error; got != "Registration failed. Please check your details." {
		t.Errorf("Error = %q, want the fixed registration failure string", got)
	}
}

func TestLogout_ClearsEverything(t *testing.T) {
	user := &model.User{ID: "u1", Username: "ada"}
	svc, creds := newTestSession(t, &mockAuthAPI{user: user, token: "tok-1"})

	if err := svc.Login(context.Background(), "a", "b"); err != nil {
		t.Fatalf("setup: Login() error = %v", err)
	}

	svc.Logout()

	state := svc.Snapshot()
	if state.User != nil || state.Token != "" {
		t.Errorf("after logout: user=%+v token=%q, want nil/empty", state.User, state.Token)
	}
	if creds.Get() != "" {
		t.Error("persisted token should be removed on logout")
	}
}

func TestRefreshSelf_SessionExpiredClearsPersistedToken(t *testing.T) {
	mock := &mockAuthAPI{user: &model.User{ID: "u1"}, token: "tok-1", meErr: apperror.SessionExpired()}
	svc, creds := newTestSession(t, mock)

	if err := svc.Login(context.Background(), "a", "b"); err != nil {
		t.Fatalf("setup: Login() error = %v", err)
	}

	err := svc.RefreshSelf(context.Background())
	if !errors.Is(err, apperror.ErrSessionExpired) {
		t.Fatalf("RefreshSelf() error = %v, want ErrSessionExpired", err)
	}

	if creds.Get() != "" {
		t.Error("persisted token should be cleared after a 401")
	}
	state := svc.Snapshot()
	if state.User != nil || state.Token != "" {
		t.Errorf("session should be anonymous after expiry, got user=%+v token=%q", state.User, state.Token)
	}

	// A second refresh finds no token and fails immediately.
	if err := svc.RefreshSelf(context.Background()); !errors.Is(err, apperror.ErrSessionExpired) {
		t.Errorf("RefreshSelf() after expiry = %v, want ErrSessionExpired", err)
	}
}

func TestRefreshSelf_Success(t *testing.T) {
	me := &model.User{ID: "u1", Username: "ada"}
	mock := &mockAuthAPI{user: me, token: "tok-1", meUser: me}
	svc, _ := newTestSession(t, mock)

	if err := svc.Login(context.Background(), "a", "b"); err != nil {
		t.Fatalf("setup: Login() error = %v", err)
	}

	if err := svc.RefreshSelf(context.Background()); err != nil {
		t.Fatalf("RefreshSelf() error = %v", err)
	}
	state := svc.Snapshot()
	if !state.Initialized {
		t.Error("session should be initialized after a refresh")
	}
	if state.User == nil || state.Token == "" {
		t.Error("user and token must be set together after refresh")
	}
}

// The store-wide invariant: a non-nil user always comes with a token.
func TestInvariant_UserImpliesToken(t *testing.T) {
	mock := &mockAuthAPI{user: &model.User{ID: "u1"}, token: "tok-1"}
	svc, _ := newTestSession(t, mock)

	check := func(label string) {
		t.Helper()
		state := svc.Snapshot()
		if state.User != nil && state.Token == "" {
			t.Errorf("%s: user set without token", label)
		}
	}

	check("initial")
	_ = svc.Login(context.Background(), "a", "b")
	check("after login")
	mock.err = apperror.API("nope")
	_ = svc.Login(context.Background(), "a", "b")
	check("after failed login")
	svc.Logout()
	check("after logout")
}

func TestUpdateProfile_ReplacesUserWholesale(t *testing.T) {
	original := &model.User{ID: "u1", Username: "ada", Position: "dev"}
	refreshed := &model.User{ID: "u1", Username: "ada", Position: "principal dev"}
	mock := &mockAuthAPI{user: original, token: "tok-1", meUser: refreshed}
	svc, _ := newTestSession(t, mock)

	if err := svc.Login(context.Background(), "a", "b"); err != nil {
		t.Fatalf("setup: Login() error = %v", err)
	}
	if err := svc.UpdateProfile(context.Background(), api.UpdateProfileInput{Position: "principal dev"}); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	if got := svc.Snapshot().User.Position; got != "principal dev" {
		t.Errorf("Position = %q, want the refreshed record", got)
	}
}
