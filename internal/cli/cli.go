// Package cli is the command surface — the terminal stand-in for the
// browser client's page views. Each command reads its "URL" (the shared
// query string or flags), drives the stores, and renders what the stores
// hold afterwards.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/sakif/snipshare/internal/app"
	"github.com/sakif/snipshare/internal/forms"
	"github.com/sakif/snipshare/internal/search"
	"github.com/sakif/snipshare/internal/store"
)

// New builds the command tree over an already-wired App.
// out receives rendered views; notifications go through the App's Notifier.
func New(a *app.App, out io.Writer) *cli.App {
	return &cli.App{
		Name:  "snipshare",
		Usage: "browse, author and save code snippets",
		Commands: []*cli.Command{
			loginCommand(a, out),
			registerCommand(a, out),
			logoutCommand(a, out),
			whoamiCommand(a, out),
			browseCommand(a, out),
			mineCommand(a, out),
			savedCommand(a, out),
			viewCommand(a, out),
			createCommand(a, out),
			updateCommand(a, out),
			deleteCommand(a),
			saveCommand(a),
			unsaveCommand(a),
		},
	}
}

// filterFlags are shared by the browse and mine views.
func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "free-text search"},
		&cli.StringFlag{Name: "language", Aliases: []string{"l"}, Value: search.AllLanguages, Usage: "programming language filter"},
		&cli.StringSliceFlag{Name: "tag", Aliases: []string{"t"}, Usage: "tag filter (repeatable)"},
		&cli.IntFlag{Name: "page", Aliases: []string{"p"}, Value: 1, Usage: "page number (1-indexed)"},
		&cli.IntFlag{Name: "limit", Value: store.DefaultLimit, Usage: "items per page"},
		&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "shared query string (overrides the filter flags)"},
	}
}

// filtersFrom assembles the filter state for a list command. A --query
// value is the shared-URL path and wins over individual flags.
func filtersFrom(c *cli.Context) (search.Filters, int) {
	if q := c.String("query"); q != "" {
		return search.Parse(q)
	}
	return search.Filters{
		Search:              c.String("search"),
		ProgrammingLanguage: c.String("language"),
		Tags:                c.StringSlice("tag"),
	}, c.Int("page")
}

func loginCommand(a *app.App, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "log in with email and password",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
		},
		Action: func(c *cli.Context) error {
			form := forms.Login{Email: c.String("email"), Password: c.String("password")}
			if errs := forms.Check(form); errs != nil {
				renderFieldErrors(out, errs)
				return cli.Exit("", 1)
			}
			if err := a.Session.Login(c.Context, form.Email, form.Password); err != nil {
				fmt.Fprintln(out, a.Session.Snapshot().Error)
				return cli.Exit("", 1)
			}
			user := a.Session.Snapshot().User
			fmt.Fprintf(out, "Logged in as %s (%s)\n", user.Username, user.Email)
			return nil
		},
	}
}

func registerCommand(a *app.App, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "create an account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
			&cli.StringFlag{Name: "first-name", Required: true},
			&cli.StringFlag{Name: "last-name", Required: true},
			&cli.StringFlag{Name: "username", Required: true},
			&cli.StringFlag{Name: "position"},
			&cli.StringFlag{Name: "company"},
			&cli.StringFlag{Name: "company-website"},
		},
		Action: func(c *cli.Context) error {
			form := forms.Register{
				Email:          c.String("email"),
				Password:       c.String("password"),
				FirstName:      c.String("first-name"),
				LastName:       c.String("last-name"),
				Username:       c.String("username"),
				Position:       c.String("position"),
				CompanyName:    c.String("company"),
				CompanyWebsite: c.String("company-website"),
			}
			if errs := forms.Check(form); errs != nil {
				renderFieldErrors(out, errs)
				return cli.Exit("", 1)
			}
			if err := a.Session.Register(c.Context, form.Input()); err != nil {
				fmt.Fprintln(out, a.Session.Snapshot().Error)
				return cli.Exit("", 1)
			}
			// The caller redirects to a welcome view on success; here that
			// is a welcome line.
			user := a.Session.Snapshot().User
			fmt.Fprintf(out, "Welcome, %s! Your account %s is ready.\n", user.FirstName, user.Username)
			return nil
		},
	}
}

func logoutCommand(a *app.App, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "log out and forget the stored session",
		Action: func(c *cli.Context) error {
			a.Session.Logout()
			fmt.Fprintln(out, "Logged out.")
			return nil
		},
	}
}

func whoamiCommand(a *app.App, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the currently logged-in user",
		Action: func(c *cli.Context) error {
			if err := a.Session.RefreshSelf(c.Context); err != nil {
				fmt.Fprintln(out, "Not logged in.")
				return cli.Exit("", 1)
			}
			renderUser(out, a.Session.Snapshot().User)
			return nil
		},
	}
}

func browseCommand(a *app.App, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "browse the public snippet feed",
		Flags: filterFlags(),
		Action: func(c *cli.Context) error {
			f, page := filtersFrom(c)
			_, err := a.Snippets.FetchHome(c.Context, f.Query(page, c.Int("limit")))
			if err != nil {
				return cli.Exit("", 1)
			}
			renderPage(out, a.Snippets, store.SlotHome)
			fmt.Fprintf(out, "share: ?%s\n", search.Encode(f, page))
			return nil
		},
	}
}

func mineCommand(a *app.App, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "mine",
		Usage: "list your own snippets",
		Flags: filterFlags(),
		Action: func(c *cli.Context) error {
			// Session gating happens here, in the calling code: the store
			// itself would happily issue the request and let the server
			// reject it.
			if err := requireSession(a); err != nil {
				return err
			}
			f, page := filtersFrom(c)
			if _, err := a.Snippets.FetchMine(c.Context, f.Query(page, c.Int("limit"))); err != nil {
				return cli.Exit("", 1)
			}
			renderPage(out, a.Snippets, store.SlotMine)
			return nil
		},
	}
}

func savedCommand(a *app.App, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "saved",
		Usage: "list your saved snippets",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "page", Aliases: []string{"p"}, Value: 1},
			&cli.IntFlag{Name: "limit", Value: store.DefaultLimit},
		},
		Action: func(c *cli.Context) error {
			if err := requireSession(a); err != nil {
				return err
			}
			if _, err := a.Snippets.FetchSaved(c.Context, c.Int("page"), c.Int("limit")); err != nil {
				return cli.Exit("", 1)
			}
			renderPage(out, a.Snippets, store.SlotSaved)
			return nil
		},
	}
}

func viewCommand(a *app.App, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "view",
		Usage:     "show one snippet in full",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return cli.Exit("usage: snipshare view <id>", 1)
			}
			if _, err := a.Snippets.FetchByID(c.Context, id); err != nil {
				return cli.Exit("", 1)
			}
			snippet := a.Snippets.Selected()
			if saved, err := a.Snippets.CheckSaved(c.Context, id); err == nil {
				renderSnippet(out, snippet, saved)
			} else {
				renderSnippet(out, snippet, false)
			}
			return nil
		},
	}
}

func snippetFormFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Required: true},
		&cli.StringFlag{Name: "description"},
		&cli.StringFlag{Name: "content", Usage: "snippet source; use @file to read from a file", Required: true},
		&cli.StringFlag{Name: "language", Required: true},
		&cli.StringSliceFlag{Name: "tag"},
		&cli.BoolFlag{Name: "public", Value: true},
	}
}

func snippetFormFrom(c *cli.Context) (forms.Snippet, error) {
	content, err := readContent(c.String("content"))
	if err != nil {
		return forms.Snippet{}, err
	}
	return forms.Snippet{
		Title:               c.String("title"),
		Description:         c.String("description"),
		Content:             content,
		ProgrammingLanguage: c.String("language"),
		Tags:                c.StringSlice("tag"),
		IsPublic:            c.Bool("public"),
	}, nil
}

func createCommand(a *app.App, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "create a snippet",
		Flags: snippetFormFlags(),
		Action: func(c *cli.Context) error {
			if err := requireSession(a); err != nil {
				return err
			}
			form, err := snippetFormFrom(c)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			if errs := forms.Check(form); errs != nil {
				renderFieldErrors(out, errs)
				return cli.Exit("", 1)
			}
			created, err := a.Snippets.Create(c.Context, form.Input())
			if err != nil {
				return cli.Exit("", 1)
			}
			fmt.Fprintf(out, "created %s\n", created.ID)
			return nil
		},
	}
}

func updateCommand(a *app.App, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "update a snippet (full record resubmission)",
		ArgsUsage: "<id>",
		Flags:     snippetFormFlags(),
		Action: func(c *cli.Context) error {
			if err := requireSession(a); err != nil {
				return err
			}
			id := c.Args().First()
			if id == "" {
				return cli.Exit("usage: snipshare update <id> [flags]", 1)
			}
			form, err := snippetFormFrom(c)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			if errs := forms.Check(form); errs != nil {
				renderFieldErrors(out, errs)
				return cli.Exit("", 1)
			}
			if _, err := a.Snippets.Update(c.Context, id, form.Input()); err != nil {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

func deleteCommand(a *app.App) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "delete a snippet by id",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if err := requireSession(a); err != nil {
				return err
			}
			id := c.Args().First()
			if id == "" {
				return cli.Exit("usage: snipshare delete <id>", 1)
			}
			if err := a.Snippets.Delete(c.Context, id); err != nil {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

func saveCommand(a *app.App) *cli.Command {
	return &cli.Command{
		Name:      "save",
		Usage:     "add a snippet to your saved collection",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if err := requireSession(a); err != nil {
				return err
			}
			id := c.Args().First()
			if id == "" {
				return cli.Exit("usage: snipshare save <id>", 1)
			}
			if err := a.Snippets.Save(c.Context, id); err != nil {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

func unsaveCommand(a *app.App) *cli.Command {
	return &cli.Command{
		Name:      "unsave",
		Usage:     "remove a snippet from your saved collection",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if err := requireSession(a); err != nil {
				return err
			}
			id := c.Args().First()
			if id == "" {
				return cli.Exit("usage: snipshare unsave <id>", 1)
			}
			if err := a.Snippets.Unsave(c.Context, id); err != nil {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

// requireSession gates authenticated views. The token alone is enough to
// try — the server remains the authority and a dead token surfaces as a
// session error on the request itself.
func requireSession(a *app.App) error {
	if a.Session.Token() == "" {
		return cli.Exit("please log in first: snipshare login --email ... --password ...", 1)
	}
	return nil
}

// readContent resolves a --content value, supporting the @file convention.
func readContent(value string) (string, error) {
	if !strings.HasPrefix(value, "@") {
		return value, nil
	}
	data, err := os.ReadFile(strings.TrimPrefix(value, "@"))
	if err != nil {
		return "", fmt.Errorf("reading content file: %w", err)
	}
	return string(data), nil
}
