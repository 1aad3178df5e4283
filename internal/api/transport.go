package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/xid"
)

// The transports below wrap http.RoundTripper the same way server
// middleware wraps http.Handler: do something before, delegate, do
// something after. Composing them keeps the Client itself free of
// cross-cutting concerns.

// authTransport attaches the bearer credential to outbound requests.
// Requests issued while anonymous simply go out without an Authorization
// header — the server decides which endpoints require one.
type authTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := t.tokens.Get(); token != "" {
		// Clone before mutating: RoundTrippers must not modify the caller's
		// request (it may be retried or inspected after the call).
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return t.base.RoundTrip(req)
}

// loggingTransport logs each outbound request with a generated request ID.
// The ID is also sent as X-Request-ID so a server-side log line can be
// matched to the client-side one.
type loggingTransport struct {
	base   http.RoundTripper
	logger *slog.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	requestID := xid.New().String()
	req = req.Clone(req.Context())
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	res, err := t.base.RoundTrip(req)

	if err != nil {
		t.logger.Error("request failed",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.String("request_id", requestID),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	t.logger.Debug("request completed",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status", res.StatusCode),
		slog.String("request_id", requestID),
		slog.Duration("duration", time.Since(start)),
	)
	return res, nil
}
