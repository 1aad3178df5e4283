// Package credentials persists the session token between runs.
//
// The browser version of this client kept the token in a cookie with a
// 7-day expiry; here the equivalent is a small JSON file with owner-only
// permissions. The store is deliberately dumb: it holds one token, knows
// when it expires, and can be cleared. Deciding WHEN to clear it belongs to
// the session store, not here.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL matches the cookie lifetime the API was designed around.
const TTL = 7 * 24 * time.Hour

type stored struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Store reads and writes the persisted token file.
// All methods are safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Set persists token with the standard 7-day lifetime. If the token is a
// JWT that declares an earlier `exp` claim, that earlier deadline wins —
// there is no point holding a credential the server already considers dead.
//
// We parse WITHOUT verifying: the client has no signing secret, and the
// claim is only used to avoid doomed requests. The server remains the
// authority and still rejects a forged or expired token with a 401.
func (s *Store) Set(token string) error {
	expires := time.Now().Add(TTL)
	if exp, ok := tokenExpiry(token); ok && exp.Before(expires) {
		expires = exp
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(stored{Token: token, ExpiresAt: expires})
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating token directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

// Get returns the persisted token, or "" when there is none or it has
// expired. An expired token is removed on the way out so a later Get
// doesn't re-read a dead file.
func (s *Store) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	var st stored
	if err := json.Unmarshal(data, &st); err != nil {
		// Unreadable file: treat as logged out rather than erroring forever.
		_ = os.Remove(s.path)
		return ""
	}
	if !st.ExpiresAt.IsZero() && time.Now().After(st.ExpiresAt) {
		_ = os.Remove(s.path)
		return ""
	}
	return st.Token
}

// Clear removes the persisted token. Clearing an absent token is not an
// error — logout must always succeed locally.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}

// tokenExpiry extracts the `exp` claim from a JWT bearer token.
// Returns ok=false for opaque tokens or JWTs without an expiry.
func tokenExpiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
