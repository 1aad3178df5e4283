// Command snipshare is the terminal client for the snippet-sharing API.
//
// main stays minimal: read configuration, build the logger, wire the app,
// run the requested command. All behaviour lives in the internal packages.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sakif/snipshare/internal/app"
	"github.com/sakif/snipshare/internal/cli"
	"github.com/sakif/snipshare/internal/config"
	"github.com/sakif/snipshare/internal/notify"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Logs go to stderr so rendered views on stdout stay pipeable.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	a := app.New(cfg, notify.NewWriter(os.Stderr), logger)
	defer a.Close()

	if err := cli.New(a, os.Stdout).Run(os.Args); err != nil {
		// urfave/cli has already printed the message for cli.Exit errors;
		// it also set the process exit code.
		logger.Debug("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
