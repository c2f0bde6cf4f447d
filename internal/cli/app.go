// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides the storefront command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/janderssonse/storefront/internal/adapters/fakestore"
	"github.com/janderssonse/storefront/internal/adapters/network"
	"github.com/janderssonse/storefront/internal/adapters/session"
	"github.com/janderssonse/storefront/internal/application"
	"github.com/janderssonse/storefront/internal/cli/handlers"
	"github.com/janderssonse/storefront/internal/config"
	"github.com/janderssonse/storefront/internal/console"
	"github.com/janderssonse/storefront/internal/domain"
	"github.com/janderssonse/storefront/internal/tui"
	"github.com/janderssonse/storefront/internal/tui/models"
	"github.com/urfave/cli/v3"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev" //nolint:gochecknoglobals

const debugLogName = "debug.log"

// CLI holds the global flags and the effective configuration.
type CLI struct {
	app        *cli.Command
	verbose    bool
	json       bool
	quiet      bool
	plain      bool
	color      string        // "auto", "always", "never"
	timeout    time.Duration // per-request upstream timeout
	apiURL     string
	configFile string
	debug      bool
	ephemeral  bool

	stdout io.Writer
	stderr io.Writer
	out    *console.OutputState
	cfg    *config.Config
	store  domain.SessionStore
	launch Launcher
}

// Launcher starts the interactive interface.
type Launcher func(ctx context.Context, session models.Session, loader domain.ProductLoader, opts tui.LaunchOptions) error

// Option configures a CLI.
type Option func(*CLI)

// WithWriters redirects results and messages, e.g. to buffers in tests.
func WithWriters(stdout, stderr io.Writer) Option {
	return func(app *CLI) {
		app.stdout = stdout
		app.stderr = stderr
	}
}

// WithSessionStore replaces the session file for every command.
func WithSessionStore(store domain.SessionStore) Option {
	return func(app *CLI) {
		app.store = store
	}
}

// WithLauncher replaces the interactive interface, e.g. to capture the
// options it would start with.
func WithLauncher(launch Launcher) Option {
	return func(app *CLI) {
		app.launch = launch
	}
}

// NewCLI creates the storefront command tree.
func NewCLI(opts ...Option) *CLI {
	app := &CLI{stdout: os.Stdout, stderr: os.Stderr, launch: tui.LaunchInteractive}

	for _, opt := range opts {
		opt(app)
	}

	app.out = &console.OutputState{Color: console.ColorAuto, Stdout: app.stdout, Stderr: app.stderr}

	app.app = &cli.Command{
		Name:      "storefront",
		Usage:     "Browse a fake store from the terminal",
		Writer:    app.stdout,
		ErrWriter: app.stderr,
		Suggest:   true,
		Description: `Sign in or browse as a guest, filter the catalog by category, sort it and
read product details. Without a command the interactive interface starts.

QUICK START:
  storefront                                   # Interactive storefront
  storefront products list --category jewelry  # Filtered listing
  storefront products list --sort price-asc    # Cheapest first
  storefront products show 5                   # One product

OFFLINE:
  storefront mock-api --addr :8089 &
  storefront --api-url http://localhost:8089 login --username johnd`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "verbose",
				Usage:       "show progress messages to stderr",
				Aliases:     []string{"v"},
				Destination: &app.verbose,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output structured JSON results",
				Aliases:     []string{"j"},
				Destination: &app.json,
			},
			&cli.BoolFlag{
				Name:        "quiet",
				Usage:       "suppress non-essential output",
				Aliases:     []string{"q"},
				Destination: &app.quiet,
			},
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "output plain text without formatting for scripts",
				Destination: &app.plain,
			},
			&cli.StringFlag{
				Name:        "color",
				Usage:       "color output mode: auto, always, never",
				Value:       string(console.ColorAuto),
				Destination: &app.color,
			},
			&cli.DurationFlag{
				Name:        "timeout",
				Usage:       "timeout for each upstream request",
				Value:       config.DefaultTimeout,
				Destination: &app.timeout,
			},
			&cli.StringFlag{
				Name:        "api-url",
				Usage:       "upstream store API root",
				Destination: &app.apiURL,
			},
			&cli.StringFlag{
				Name:        "config",
				Usage:       "config file (default $XDG_CONFIG_HOME/storefront/config.toml)",
				Destination: &app.configFile,
			},
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "write interactive interface logs to the state directory",
				Destination: &app.debug,
			},
			&cli.BoolFlag{
				Name:        "ephemeral",
				Usage:       "keep the session in memory only",
				Destination: &app.ephemeral,
			},
		},
		Before:       app.initConfig,
		Action:       app.defaultAction,
		Commands:     app.createAllCommands(),
		OnUsageError: usageError,
	}

	return app
}

// App returns the root command with default settings.
func App() *cli.Command {
	return NewCLI().app
}

// Run executes the command line. Failures come back as *domain.ExitError
// whose Message is ready for stderr.
func (app *CLI) Run(ctx context.Context, args []string) error {
	err := app.app.Run(ctx, args)
	if err == nil {
		return nil
	}

	exitErr := &domain.ExitError{}
	if !errors.As(err, &exitErr) {
		exitErr = domain.NewExitError(domain.ExitCodeFor(err), domain.FormatErrorMessage(err, app.verbose), err)
	}

	if app.json {
		app.out.JSONResult("error", map[string]any{
			"error": exitErr.Message,
			"code":  exitErr.Code,
		})
	}

	return exitErr
}

// createAllCommands builds the command tree.
func (app *CLI) createAllCommands() []*cli.Command {
	return []*cli.Command{
		app.createTUICommand(),
		app.createProductsCommand(),
		app.createCategoriesCommand(),
		app.createLoginCommand(),
		app.createRegisterCommand(),
		app.createLogoutCommand(),
		app.createGuestCommand(),
		app.createWhoamiCommand(),
		app.createMockAPICommand(),
		app.createConfigCommand(),
		app.createVersionCommand(),
	}
}

func usageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return domain.NewExitError(domain.ExitUsageError, err.Error(), err)
}

// initConfig validates the global flags, then loads and validates the
// configuration with flag overrides applied.
func (app *CLI) initConfig(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if app.json && app.plain {
		return ctx, domain.NewExitError(domain.ExitUsageError, "cannot use both --json and --plain flags simultaneously", nil)
	}

	color, err := console.ParseColorMode(app.color)
	if err != nil {
		return ctx, domain.NewExitError(domain.ExitUsageError, "invalid --color value: must be auto, always, or never", err)
	}

	app.out.Color = color
	app.out.Quiet = app.quiet
	app.out.SetMode(app.verbose, app.json, app.plain)

	cfg, err := config.Load(config.LoadOptions{ConfigFile: app.configFile})
	if err != nil {
		return ctx, domain.NewExitError(domain.ExitConfigError, err.Error(), err)
	}

	if cmd.IsSet("api-url") {
		cfg.APIURL = app.apiURL
	}

	if cmd.IsSet("timeout") {
		cfg.Timeout = config.Duration(app.timeout)
	}

	if err := cfg.Validate(); err != nil {
		return ctx, domain.NewExitError(domain.ExitConfigError, err.Error(), err)
	}

	app.cfg = cfg

	app.out.Progressf("Using %s", cfg.APIURL)

	if proxy := network.ProxyFor(cfg.APIURL); proxy != "" {
		app.out.Progressf("Requests go through proxy %s", proxy)
	}

	return ctx, nil
}

// defaultAction runs when no command is provided.
func (app *CLI) defaultAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Present() {
		return domain.NewExitError(domain.ExitUsageError,
			fmt.Sprintf("'%s' is not a command. Run 'storefront --help' to see available commands.", cmd.Args().First()), nil)
	}

	selections, err := app.selections(cmd)
	if err != nil {
		return err
	}

	return app.runTUI(ctx, selections)
}

func (app *CLI) base() *handlers.BaseHandler {
	return handlers.NewBaseHandler(app.verbose, app.json, app.quiet, app.plain, app.cfg.RequestTimeout(), app.stdout, app.out)
}

func (app *CLI) client() (*fakestore.Client, error) {
	client, err := fakestore.NewClient(app.cfg.APIURL, network.GetHTTPClient(app.cfg.RequestTimeout()))
	if err != nil {
		return nil, domain.NewExitError(domain.ExitConfigError, err.Error(), err)
	}

	return client, nil
}

func (app *CLI) catalogService() (*application.CatalogService, error) {
	client, err := app.client()
	if err != nil {
		return nil, err
	}

	return application.NewCatalogService(client), nil
}

func (app *CLI) sessionStore() domain.SessionStore {
	switch {
	case app.store != nil:
		return app.store
	case app.ephemeral:
		return session.NewMemoryStore(domain.StoredSession{})
	default:
		return session.NewFileStore(app.cfg.StateDir())
	}
}

// openSession restores the stored session. Callers must Teardown the
// returned service.
func (app *CLI) openSession(ctx context.Context) (*application.AuthService, error) {
	client, err := app.client()
	if err != nil {
		return nil, err
	}

	auth := application.NewAuthService(app.sessionStore(), client, fakestore.DecodeClaims)
	if err := auth.Init(ctx); err != nil {
		return nil, err
	}

	return auth, nil
}

func (app *CLI) sessionHandler(ctx context.Context) (*handlers.SessionHandler, func(), error) {
	auth, err := app.openSession(ctx)
	if err != nil {
		return nil, nil, err
	}

	return handlers.NewSessionHandler(app.base(), auth), auth.Teardown, nil
}

func (app *CLI) catalogHandler() (*handlers.CatalogHandler, error) {
	service, err := app.catalogService()
	if err != nil {
		return nil, err
	}

	return handlers.NewCatalogHandler(app.base(), service, app.cfg.WordWrap), nil
}

// runTUI starts the interactive storefront with already resolved selections.
func (app *CLI) runTUI(ctx context.Context, selections models.ProductsOptions) error {
	service, err := app.catalogService()
	if err != nil {
		return err
	}

	auth, err := app.openSession(ctx)
	if err != nil {
		return err
	}
	defer auth.Teardown()

	opts := tui.LaunchOptions{
		Options: tui.Options{
			Products: selections,
			WordWrap: app.cfg.WordWrap,
			NoColor:  app.out.Color == console.ColorNever,
		},
	}

	if app.debug {
		opts.DebugLog = filepath.Join(app.cfg.StateDir(), debugLogName)
		app.out.Progressf("Writing debug log to %s", opts.DebugLog)
	}

	if err := app.launch(ctx, auth, service.Loader(), opts); err != nil {
		if app.verbose || !errors.Is(err, tui.ErrNoTerminal) {
			return domain.NewExitError(domain.ExitGeneralError, fmt.Sprintf("Failed to launch TUI: %v", err), err)
		}

		return domain.NewExitError(domain.ExitGeneralError, "Failed to launch interactive interface (terminal required)", err)
	}

	return nil
}
