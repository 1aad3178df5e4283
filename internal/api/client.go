// Package api is the HTTP client adapter for the remote snippet API.
//
// Every other package talks to the network through the Client here. The
// adapter owns the base URL, the JSON codec, the fixed request timeout and
// the translation of HTTP failures into the apperror taxonomy. It does NOT
// own any session state: a 401 comes back to the caller as a typed
// apperror.ErrSessionExpired, and the session store decides what to do
// about the persisted token. Keeping that decision out of the transport
// avoids an interceptor that mutates storage as a side effect of an
// unrelated request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sakif/snipshare/internal/apperror"
	"github.com/sakif/snipshare/internal/model"
)

// TokenSource yields the current bearer token, or "" when anonymous.
// *credentials.Store satisfies this; tests substitute a fixed string.
type TokenSource interface {
	Get() string
}

// StaticToken is a TokenSource holding a fixed token. Used in tests.
type StaticToken string

func (t StaticToken) Get() string { return string(t) }

// Client calls the remote snippet API.
//
// The zero value is not usable; construct with New. The embedded
// http.Client carries the fixed timeout — there is no per-call retry or
// backoff, a slow or failed request surfaces as a single error.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a Client for the API at baseURL.
// tokens supplies the bearer credential attached to every request that has
// one; the transport chain also logs each outbound call.
func New(baseURL string, timeout time.Duration, tokens TokenSource, logger *slog.Logger) *Client {
	transport := &authTransport{
		base:   &loggingTransport{base: http.DefaultTransport, logger: logger},
		tokens: tokens,
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		logger: logger,
	}
}

// ListQuery carries the server-side filter parameters for the list
// endpoints. Zero-valued fields are omitted from the request entirely —
// the server treats an absent parameter as "unfiltered".
type ListQuery struct {
	Search              string
	ProgrammingLanguage string // "" or "all" means unfiltered
	Tags                []string
	Page                int // 1-indexed; 0 means let the server default
	Limit               int
}

// Values encodes the query for the wire. Parameter order doesn't matter to
// the server; the canonical ordering of the shareable URL is the search
// package's concern, not ours.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.ProgrammingLanguage != "" && q.ProgrammingLanguage != "all" {
		v.Set("programmingLanguage", q.ProgrammingLanguage)
	}
	if len(q.Tags) > 0 {
		v.Set("tags", strings.Join(q.Tags, ","))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// errorEnvelope is the union of the error body shapes the API produces.
// Older endpoints return {"status","errors":[...]}, newer ones
// {"error","message"}; we accept both and pick the best message.
type errorEnvelope struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Status  string   `json:"status"`
	Errors  []string `json:"errors"`
}

func (e errorEnvelope) message() string {
	switch {
	case e.Message != "":
		return e.Message
	case len(e.Errors) > 0:
		return strings.Join(e.Errors, ", ")
	case e.Status != "":
		return e.Status
	default:
		return ""
	}
}

// do performs one request. body (if non-nil) is JSON-encoded; out (if
// non-nil) receives the decoded response body on success.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// send executes an already-built request and decodes the response.
// Shared by do and the multipart upload path.
func (c *Client) send(req *http.Request, out any) error {
	res, err := c.http.Do(req)
	if err != nil {
		// Timeouts and refused connections land here. The message is fixed:
		// transport errors routinely embed URLs we don't want to show users.
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, apperror.API("could not reach the server"))
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return c.errorFrom(res)
	}
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// errorFrom classifies a non-2xx response into the apperror taxonomy.
func (c *Client) errorFrom(res *http.Response) error {
	var env errorEnvelope
	// Decode failures are fine — some error responses have empty bodies.
	_ = json.NewDecoder(io.LimitReader(res.Body, 1<<16)).Decode(&env)
	msg := env.message()

	switch res.StatusCode {
	case http.StatusUnauthorized:
		return apperror.SessionExpired()
	case http.StatusForbidden:
		if msg == "" {
			msg = "you do not have permission to do that"
		}
		return &apperror.AppError{Err: apperror.ErrForbidden, Message: msg}
	case http.StatusNotFound:
		if msg == "" {
			msg = "resource not found"
		}
		return &apperror.AppError{Err: apperror.ErrNotFound, Message: msg}
	case http.StatusConflict:
		if msg == "" {
			msg = "resource already exists"
		}
		return &apperror.AppError{Err: apperror.ErrConflict, Message: msg}
	default:
		if msg == "" {
			msg = fmt.Sprintf("request failed with status %d", res.StatusCode)
		}
		return apperror.API(msg)
	}
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// pageEnvelope is the list-endpoint response body.
type pageEnvelope struct {
	Snippets   []model.Snippet  `json:"snippets"`
	Pagination model.Pagination `json:"pagination"`
}

func (e pageEnvelope) page() *model.SnippetPage {
	return &model.SnippetPage{Snippets: e.Snippets, Pagination: e.Pagination}
}
