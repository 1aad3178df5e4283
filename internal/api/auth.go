package api

import (
	"context"
	"net/http"

	"github.com/sakif/snipshare/internal/model"
)

// RegisterInput is the payload for auth/register. The optional company
// fields are sent as empty strings rather than omitted — the API treats
// both the same and it keeps the struct symmetric with the profile form.
type RegisterInput struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Username       string `json:"username"`
	Position       string `json:"position,omitempty"`
	CompanyName    string `json:"companyName,omitempty"`
	CompanyWebsite string `json:"companyWebsite,omitempty"`
}

// sessionEnvelope is the login/register response: the authenticated user
// plus the bearer token the client must present from now on.
type sessionEnvelope struct {
	User        model.User `json:"user"`
	AccessToken string     `json:"access_token"`
}

type userEnvelope struct {
	User model.User `json:"user"`
}

// Login exchanges credentials for a user record and a session token.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	body := map[string]string{"email": email, "password": password}
	var env sessionEnvelope
	if err := c.do(ctx, http.MethodPost, "auth/login", nil, body, &env); err != nil {
		return nil, "", err
	}
	return &env.User, env.AccessToken, nil
}

// Register creates an account. On success the API also logs the new user
// in, so the response carries a token just like Login.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*model.User, string, error) {
	var env sessionEnvelope
	if err := c.do(ctx, http.MethodPost, "auth/register", nil, input, &env); err != nil {
		return nil, "", err
	}
	return &env.User, env.AccessToken, nil
}

// Me fetches the user the current token belongs to.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var env userEnvelope
	if err := c.do(ctx, http.MethodGet, "me", nil, nil, &env); err != nil {
		return nil, err
	}
	return &env.User, nil
}

// UpdateProfileInput carries the mutable profile fields. Identity (ID) and
// email verification are server-owned and absent here.
type UpdateProfileInput struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Username       string `json:"username"`
	Position       string `json:"position,omitempty"`
	CompanyName    string `json:"companyName,omitempty"`
	CompanyWebsite string `json:"companyWebsite,omitempty"`
}

// UpdateProfile submits new profile fields and returns the full refreshed
// record. Callers replace their copy wholesale — there is no field-level
// merge contract.
func (c *Client) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*model.User, error) {
	var env userEnvelope
	if err := c.do(ctx, http.MethodPatch, "me", nil, input, &env); err != nil {
		return nil, err
	}
	return &env.User, nil
}
