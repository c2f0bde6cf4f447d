// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/storefront/internal/adapters/fakestore"
	"github.com/janderssonse/storefront/internal/domain"
	"github.com/janderssonse/storefront/internal/tui/styles"
)

// Login key bindings outside the form.
const (
	KeyRegister = "ctrl+r"
	KeyGuest    = "ctrl+g"
)

// SignedOutNotice greets a user who has just signed out.
const SignedOutNotice = "You have been signed out."

type signInResultMsg struct{ err error }

type guestResultMsg struct{ err error }

// Login is the sign-in screen.
//
//nolint:containedctx // TUI models require context for proper cancellation propagation
type Login struct {
	ctx        context.Context
	styles     *styles.Styles
	session    Session
	form       *huh.Form
	spinner    spinner.Model
	username   string
	password   string
	width      int
	height     int
	submitting bool
	failure    string
	notice     string
}

// NewLogin creates the sign-in screen. notice is shown above the form.
func NewLogin(ctx context.Context, styleConfig *styles.Styles, session Session, notice string) *Login {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Login{
		ctx:     ctx,
		styles:  styleConfig,
		session: session,
		spinner: sp,
		notice:  notice,
	}

	if notice == "" && session.State().JustLoggedOut {
		m.notice = SignedOutNotice
	}

	m.form = m.newForm()

	return m
}

func (m *Login) newForm() *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Key("username").
			Title("Username").
			Value(&m.username),
		huh.NewInput().
			Key("password").
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&m.password),
	)).
		WithTheme(formTheme(m.styles)).
		WithShowHelp(false)
}

// Init implements tea.Model.
func (m *Login) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model.
func (m *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		return m, nil

	case signInResultMsg:
		return m.handleSignInResult(msg)

	case guestResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.failure = "Error: " + errorText(msg.err)

			return m, nil
		}

		return m, sessionChanged("")

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}

		switch msg.String() {
		case KeyRegister:
			return m, Navigate(RegisterScreen, nil)
		case KeyGuest:
			return m, m.continueAsGuest()
		}
	}

	if m.submitting {
		return m, nil
	}

	return m.updateForm(msg)
}

func (m *Login) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m, m.submit()
	case huh.StateAborted:
		return m, tea.Quit
	case huh.StateNormal:
	}

	return m, cmd
}

// submit validates the fields and signs in asynchronously.
func (m *Login) submit() tea.Cmd {
	creds := domain.Credentials{Username: m.username, Password: m.password}
	if creds.Blank() {
		m.failure = "Error: " + errorText(domain.ErrMissingCredentials)
		m.resetForm(false)

		return m.form.Init()
	}

	m.submitting = true
	m.failure = ""
	m.notice = ""

	ctx := m.ctx
	session := m.session

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return signInResultMsg{err: session.SignIn(ctx, creds)}
	})
}

func (m *Login) continueAsGuest() tea.Cmd {
	m.submitting = true
	m.failure = ""

	ctx := m.ctx
	session := m.session

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return guestResultMsg{err: session.ContinueAsGuest(ctx)}
	})
}

func (m *Login) handleSignInResult(msg signInResultMsg) (tea.Model, tea.Cmd) {
	m.submitting = false

	if msg.err != nil {
		m.failure = "Login Failed: " + errorText(msg.err)
		m.resetForm(false)

		return m, m.form.Init()
	}

	return m, sessionChanged("")
}

// resetForm rebuilds the form, keeping the username unless clearAll is set.
func (m *Login) resetForm(clearAll bool) {
	m.password = ""
	if clearAll {
		m.username = ""
	}

	m.form = m.newForm()
}

// Failure returns the inline error line, if any.
func (m *Login) Failure() string {
	return m.failure
}

// Notice returns the informational line above the form.
func (m *Login) Notice() string {
	return m.notice
}

// Submitting reports whether a sign-in or guest switch is in flight.
func (m *Login) Submitting() bool {
	return m.submitting
}

// View implements tea.Model.
func (m *Login) View() string {
	sections := []string{m.styles.Logo(), m.styles.Title.Render("Login")}

	if m.notice != "" {
		sections = append(sections, m.styles.SuccessText.Render(m.notice))
	}

	if m.failure != "" {
		sections = append(sections, m.styles.ErrorText.Render(m.failure))
	}

	if m.submitting {
		sections = append(sections, m.spinner.View()+" Signing in...")
	} else {
		sections = append(sections, m.form.View())
	}

	sections = append(sections,
		m.styles.MutedText.Render("Enter your credentials to login"),
		RenderFooter(m.styles, m.width, []FooterAction{
			{Key: "enter", Action: "Login"},
			{Key: KeyRegister, Action: "Register"},
			{Key: KeyGuest, Action: "Continue as Guest"},
			{Key: KeyCtrlC, Action: "Quit"},
		}),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// errorText picks the message shown inline: the upstream's own message when
// it sent one, otherwise the user-facing text for the error.
func errorText(err error) string {
	var apiErr *fakestore.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	for _, sentinel := range []error{domain.ErrInvalidCredentials, domain.ErrInvalidRegistration} {
		if !errors.Is(err, sentinel) {
			continue
		}

		prefix := sentinel.Error() + ": "
		if msg := err.Error(); strings.Contains(msg, prefix) {
			return msg[strings.LastIndex(msg, prefix)+len(prefix):]
		}
	}

	return domain.GetErrorInfo(err, false).Message
}

// formTheme matches the forms to the screen palette.
func formTheme(styleConfig *styles.Styles) *huh.Theme {
	if styleConfig.Mono {
		return huh.ThemeBase()
	}

	return huh.ThemeCharm()
}
