// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/storefront/internal/domain"
	"golang.org/x/term"
)

// ErrPasswordMismatch is returned when the confirmation differs.
var ErrPasswordMismatch = errors.New("passwords do not match")

// stdinIsTerminal reports whether prompts can be shown.
var stdinIsTerminal = func() bool { //nolint:gochecknoglobals
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func getTitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		MarginBottom(1)
}

func (app *CLI) canPrompt() bool {
	return !app.json && !app.plain && stdinIsTerminal()
}

// promptLogin asks for the credentials the flags did not provide.
func (app *CLI) promptLogin(creds *domain.Credentials) error {
	if !app.canPrompt() {
		return domain.NewExitError(domain.ExitUsageError, "--username and --password are required without a terminal", domain.ErrMissingCredentials)
	}

	_, _ = fmt.Fprintln(app.stderr, getTitleStyle().Render("◈ Sign in to the store"))

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&creds.Username).
				Validate(huh.ValidateNotEmpty()),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&creds.Password).
				Validate(huh.ValidateNotEmpty()),
		),
	).WithOutput(app.stderr)

	return runForm(form)
}

// promptRegister asks for the registration fields the flags did not provide,
// with a password confirmation.
func (app *CLI) promptRegister(reg *domain.Registration) error {
	if !app.canPrompt() {
		return domain.NewExitError(domain.ExitUsageError, "--username, --email and --password are required without a terminal", nil)
	}

	_, _ = fmt.Fprintln(app.stderr, getTitleStyle().Render("◈ Create an account"))

	var confirm string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&reg.Username).
				Validate(huh.ValidateNotEmpty()),
			huh.NewInput().
				Title("Email").
				Value(&reg.Email).
				Validate(huh.ValidateNotEmpty()),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&reg.Password).
				Validate(huh.ValidateNotEmpty()),
			huh.NewInput().
				Title("Confirm Password").
				EchoMode(huh.EchoModePassword).
				Value(&confirm).
				Validate(func(value string) error {
					return confirmPassword(reg.Password, value)
				}),
		),
	).WithOutput(app.stderr)

	return runForm(form)
}

func confirmPassword(password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}

	return nil
}

func runForm(form *huh.Form) error {
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return domain.NewExitError(domain.ExitGeneralError, "Cancelled.", err)
		}

		return fmt.Errorf("prompt failed: %w", err)
	}

	return nil
}
