// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package tui implements the interactive storefront: a root model that owns
// the session, the router and one content model per screen.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/storefront/internal/domain"
	"github.com/janderssonse/storefront/internal/tui/models"
	"github.com/janderssonse/storefront/internal/tui/styles"
	"golang.org/x/term"
)

// ErrNoTerminal is returned when the TUI is launched in a non-terminal environment.
var ErrNoTerminal = errors.New("TUI requires a terminal environment")

// Options configure the screens.
type Options struct {
	Products models.ProductsOptions
	WordWrap int
	NoColor  bool
}

// App represents the main TUI application following tree-of-models pattern.
//
//nolint:containedctx // TUI models require context for proper cancellation propagation
type App struct {
	ctx           context.Context
	width         int
	height        int
	styles        *styles.Styles
	session       models.Session
	router        *Router
	loader        domain.ProductLoader
	opts          Options
	group         Group
	currentScreen models.Screen
	contentModel  tea.Model
	models        map[models.Screen]tea.Model // Cache of screens that keep state within a group
	quitting      bool
}

// NewApp creates the root model and mounts the entry screen of the
// session's group. The session must already be initialized.
func NewApp(ctx context.Context, session models.Session, loader domain.ProductLoader, opts Options) *App {
	app := &App{
		ctx:     ctx,
		styles:  styles.ForColor(!opts.NoColor),
		session: session,
		router:  NewRouter(session),
		loader:  loader,
		opts:    opts,
		models:  make(map[models.Screen]tea.Model),
	}

	app.group = app.router.Group()
	app.currentScreen = app.router.Entry()
	app.contentModel = app.createModelForScreen(app.currentScreen, nil)

	if app.currentScreen == models.ProductsScreen {
		app.models[app.currentScreen] = app.contentModel
	}

	return app
}

// Run starts the TUI application with the provided context.
func (a *App) Run(ctx context.Context) error {
	program := tea.NewProgram(
		a,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI application failed: %w", err)
	}

	return nil
}

// Init implements the tea.Model interface.
func (a *App) Init() tea.Cmd {
	return a.contentModel.Init()
}

// Update implements the tea.Model interface with global navigation handling.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		return a.forward(msg)

	case models.NavigateMsg:
		return a.handleNavigation(msg)

	case models.SessionChangedMsg:
		return a.handleSessionChanged(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case models.KeyCtrlC:
			a.quitting = true

			return a, tea.Quit
		case "q":
			if !a.onFormScreen() {
				a.quitting = true

				return a, tea.Quit
			}
		}

		return a.forward(msg)

	default:
		return a.forward(msg)
	}
}

// View implements the tea.Model interface.
func (a *App) View() string {
	if a.quitting {
		return models.GoodbyeMessage
	}

	content := a.contentModel.View()

	if a.height > 0 && a.onFormScreen() {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
	}

	return content
}

// GetCurrentScreen returns the current screen (for testing).
func (a *App) GetCurrentScreen() models.Screen {
	return a.currentScreen
}

// GetContentModel returns the current content model (for testing).
func (a *App) GetContentModel() tea.Model {
	return a.contentModel
}

// Group returns the screen group currently mounted.
func (a *App) Group() Group {
	return a.group
}

func (a *App) onFormScreen() bool {
	return a.currentScreen == models.LoginScreen || a.currentScreen == models.RegisterScreen
}

func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	a.contentModel, cmd = a.contentModel.Update(msg)
	if _, cached := a.models[a.currentScreen]; cached {
		a.models[a.currentScreen] = a.contentModel
	}

	return a, cmd
}

// handleNavigation moves within the active group. Requests for a screen of
// the other group land on the group's entry screen instead.
func (a *App) handleNavigation(msg models.NavigateMsg) (tea.Model, tea.Cmd) {
	target := msg.Screen
	if !a.router.Allows(target) {
		log.Printf("navigation to %s refused in %s group", target, a.router.Group())
		target = a.router.Entry()
	}

	return a, a.mount(target, msg.Data)
}

// handleSessionChanged swaps the screen group after sign-in, sign-out or a
// guest switch. Screens of the old group are discarded, so the new group
// starts fresh.
func (a *App) handleSessionChanged(msg models.SessionChangedMsg) (tea.Model, tea.Cmd) {
	a.group = a.router.Group()
	clear(a.models)

	var data any
	if msg.Notice != "" {
		data = models.NoticeData{Notice: msg.Notice}
	}

	return a, a.mount(a.router.Entry(), data)
}

// mount makes the screen current, reusing the cached products screen and
// creating every other screen fresh.
func (a *App) mount(screen models.Screen, data any) tea.Cmd {
	var cmds []tea.Cmd

	model, cached := a.models[screen]
	if !cached {
		model = a.createModelForScreen(screen, data)
		cmds = append(cmds, model.Init())

		if screen == models.ProductsScreen {
			a.models[screen] = model
		}
	}

	a.currentScreen = screen
	a.contentModel = model

	if a.width > 0 && a.height > 0 {
		updated, cmd := a.contentModel.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		a.contentModel = updated

		if cached || screen == models.ProductsScreen {
			a.models[screen] = updated
		}

		cmds = append(cmds, cmd)
	}

	return tea.Batch(cmds...)
}

func (a *App) createModelForScreen(screen models.Screen, data any) tea.Model {
	notice := ""
	if n, ok := data.(models.NoticeData); ok {
		notice = n.Notice
	}

	switch screen {
	case models.RegisterScreen:
		return models.NewRegister(a.ctx, a.styles, a.session)
	case models.ProductsScreen:
		return models.NewProducts(a.ctx, a.styles, a.loader, a.session, a.opts.Products)
	case models.ProductDetailScreen:
		id, _ := data.(domain.ProductID)

		return models.NewDetail(a.ctx, a.styles, a.loader, id, a.opts.WordWrap)
	default:
		return models.NewLogin(a.ctx, a.styles, a.session, notice)
	}
}

// LaunchOptions control the interactive session.
type LaunchOptions struct {
	Options

	// DebugLog, when set, receives the screens' log output.
	DebugLog string
}

// LaunchInteractive starts the interactive TUI interface.
func LaunchInteractive(ctx context.Context, session models.Session, loader domain.ProductLoader, opts LaunchOptions) error {
	if !isTerminal() {
		return fmt.Errorf("terminal check failed: %w", ErrNoTerminal)
	}

	closeLog, err := setupLogging(opts.DebugLog)
	if err != nil {
		return err
	}
	defer closeLog()

	return NewApp(ctx, session, loader, opts.Options).Run(ctx)
}

// setupLogging routes the standard logger to the debug file, or discards it
// so log lines never draw over the screen.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)

		return func() { log.SetOutput(os.Stderr) }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := tea.LogToFile(path, "storefront")
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}

	return func() {
		_ = file.Close()

		log.SetOutput(os.Stderr)
	}, nil
}

// isTerminal checks if stdin and stdout are connected to a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
