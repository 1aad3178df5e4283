// Package app is the composition root: it wires configuration, the
// credential store, the API client and the state stores into one
// explicitly-lifecycled object.
//
// Nothing in this codebase reaches for ambient global state — every view
// and command receives the *App it should operate on, and tests build
// their own throwaway instances.
package app

import (
	"log/slog"

	"github.com/sakif/snipshare/internal/api"
	"github.com/sakif/snipshare/internal/config"
	"github.com/sakif/snipshare/internal/credentials"
	"github.com/sakif/snipshare/internal/notify"
	"github.com/sakif/snipshare/internal/store"
)

// App owns the client's state and dependencies for one session of use.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	API      *api.Client
	Session  *store.SessionStore
	Snippets *store.SnippetStore
	Notifier notify.Notifier
}

// New wires the dependency chain:
//
//	config → credentials → API client → stores
//
// The credential store doubles as the API client's token source, so a
// login performed through the session store is visible to the very next
// request without any explicit hand-off.
func New(cfg config.Config, notifier notify.Notifier, logger *slog.Logger) *App {
	creds := credentials.NewStore(cfg.TokenFile)
	client := api.New(cfg.BaseURL, cfg.Timeout, creds, logger)

	return &App{
		Config:   cfg,
		Logger:   logger,
		API:      client,
		Session:  store.NewSessionStore(client, creds, logger),
		Snippets: store.NewSnippetStore(client, notifier, logger),
		Notifier: notifier,
	}
}

// Close releases the app's resources. In-memory state simply becomes
// garbage; the persisted token is deliberately left in place so the next
// run stays logged in.
func (a *App) Close() error {
	a.Logger.Debug("app closed")
	return nil
}
