// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/storefront/internal/domain"
	"github.com/janderssonse/storefront/internal/tui/styles"
)

// Register screen messages.
const (
	RegisteredNotice    = "Registration successful! Please login"
	PasswordMismatchMsg = "Passwords do not match"
)

type registerResultMsg struct {
	user *domain.User
	err  error
}

// Register is the account creation screen.
//
//nolint:containedctx // TUI models require context for proper cancellation propagation
type Register struct {
	ctx        context.Context
	styles     *styles.Styles
	session    Session
	form       *huh.Form
	spinner    spinner.Model
	values     domain.Registration
	confirm    string
	width      int
	submitting bool
	failure    string
}

// NewRegister creates the registration screen.
func NewRegister(ctx context.Context, styleConfig *styles.Styles, session Session) *Register {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Register{
		ctx:     ctx,
		styles:  styleConfig,
		session: session,
		spinner: sp,
	}
	m.form = m.newForm()

	return m
}

func (m *Register) newForm() *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Key("username").Title("Username").Value(&m.values.Username),
		huh.NewInput().Key("email").Title("Email").Value(&m.values.Email),
		huh.NewInput().Key("password").Title("Password").
			EchoMode(huh.EchoModePassword).Value(&m.values.Password),
		huh.NewInput().Key("confirm").Title("Confirm Password").
			EchoMode(huh.EchoModePassword).Value(&m.confirm),
	)).
		WithTheme(formTheme(m.styles)).
		WithShowHelp(false)
}

// Init implements tea.Model.
func (m *Register) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model.
func (m *Register) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

		return m, nil

	case registerResultMsg:
		m.submitting = false

		if msg.err != nil {
			m.failure = "Error: " + errorText(msg.err)
			m.resetPasswords()

			return m, m.form.Init()
		}

		return m, Navigate(LoginScreen, NoticeData{Notice: RegisteredNotice})

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

		if msg.String() == KeyEsc {
			return m, Navigate(LoginScreen, nil)
		}
	}

	if m.submitting {
		return m, nil
	}

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

func (m *Register) submit() tea.Cmd {
	if m.values.Password != m.confirm {
		m.failure = "Error: " + PasswordMismatchMsg
		m.resetPasswords()

		return m.form.Init()
	}

	m.submitting = true
	m.failure = ""

	ctx := m.ctx
	session := m.session
	reg := m.values

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		user, err := session.Register(ctx, reg)

		return registerResultMsg{user: user, err: err}
	})
}

func (m *Register) resetPasswords() {
	m.values.Password = ""
	m.confirm = ""
	m.form = m.newForm()
}

// Failure returns the inline error line, if any.
func (m *Register) Failure() string {
	return m.failure
}

// View implements tea.Model.
func (m *Register) View() string {
	sections := []string{m.styles.Logo(), m.styles.Title.Render("Register")}

	if m.failure != "" {
		sections = append(sections, m.styles.ErrorText.Render(m.failure))
	}

	if m.submitting {
		sections = append(sections, m.spinner.View()+" Creating account...")
	} else {
		sections = append(sections, m.form.View())
	}

	sections = append(sections, RenderFooter(m.styles, m.width, []FooterAction{
		{Key: "enter", Action: "Register"},
		{Key: KeyEsc, Action: "Already have an account? Login"},
		{Key: KeyCtrlC, Action: "Quit"},
	}))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
