package credentials

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "token.json"))
}

func TestSetAndGet(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set("tok-1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := s.Get(); got != "tok-1" {
		t.Errorf("Get() = %q, want tok-1", got)
	}
}

func TestGet_NoFile(t *testing.T) {
	if got := newTestStore(t).Get(); got != "" {
		t.Errorf("Get() = %q, want empty for a missing file", got)
	}
}

func TestSet_CreatesParentDirectoryWithOwnerOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "token.json")
	s := NewStore(path)

	if err := s.Set("tok-1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat token file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("token file mode = %o, want 600", perm)
	}
}

func TestClear_IsIdempotent(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set("tok-1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Errorf("Clear() on an empty store = %v, want nil", err)
	}
	if got := s.Get(); got != "" {
		t.Errorf("Get() after Clear() = %q, want empty", got)
	}
}

func TestGet_ExpiredTokenIsRemoved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	s := NewStore(path)

	// Write a record that expired an hour ago, bypassing Set.
	data := []byte(`{"token":"dead","expiresAt":"` +
		time.Now().Add(-time.Hour).Format(time.RFC3339) + `"}`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("seed token file: %v", err)
	}

	if got := s.Get(); got != "" {
		t.Errorf("Get() = %q, want empty for an expired token", got)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expired token file should be removed")
	}
}

func TestGet_CorruptFileTreatedAsLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	s := NewStore(path)

	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seed token file: %v", err)
	}
	if got := s.Get(); got != "" {
		t.Errorf("Get() = %q, want empty for a corrupt file", got)
	}
}

func TestSet_JWTExpiryShortensLifetime(t *testing.T) {
	s := newTestStore(t)

	// A JWT whose exp claim is already in the past must not survive Set.
	claims := jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(-time.Minute).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}

	if err := s.Set(token); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := s.Get(); got != "" {
		t.Errorf("Get() = %q, want empty for a token the server already expired", got)
	}
}

func TestSet_JWTWithoutExpiryGetsDefaultLifetime(t *testing.T) {
	s := newTestStore(t)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"}).
		SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}

	if err := s.Set(token); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := s.Get(); got != token {
		t.Errorf("Get() = %q, want the stored token", got)
	}
}

func TestSet_OpaqueTokenKeepsDefaultLifetime(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set("not-a-jwt"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := s.Get(); got != "not-a-jwt" {
		t.Errorf("Get() = %q, want not-a-jwt", got)
	}
}
