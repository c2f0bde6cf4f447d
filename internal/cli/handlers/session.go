// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/janderssonse/storefront/internal/application"
	"github.com/janderssonse/storefront/internal/domain"
)

// Session command messages.
const (
	RegisteredMessage = "Registration successful! Please login"
	SignedOutMessage  = "You have been signed out."
	GuestMessage      = "Browsing as guest."
)

// SessionHandler runs the account commands.
type SessionHandler struct {
	*BaseHandler

	auth *application.AuthService
	now  func() time.Time
}

// NewSessionHandler creates a SessionHandler. The auth service must already
// be initialized.
func NewSessionHandler(base *BaseHandler, auth *application.AuthService) *SessionHandler {
	return &SessionHandler{BaseHandler: base, auth: auth, now: time.Now}
}

// Login signs in and stores the token.
func (h *SessionHandler) Login(ctx context.Context, creds domain.Credentials) error {
	ctx, cancel := h.WithTimeout(ctx)
	defer cancel()

	h.Console.Progressf("Signing in as %s...", creds.Username)

	if err := h.auth.SignIn(ctx, creds); err != nil {
		return err
	}

	return h.Output.Success("Signed in as "+creds.Username, h.result())
}

// Register creates an account. The user still has to log in afterwards.
func (h *SessionHandler) Register(ctx context.Context, reg domain.Registration) error {
	ctx, cancel := h.WithTimeout(ctx)
	defer cancel()

	user, err := h.auth.Register(ctx, reg)
	if err != nil {
		return err
	}

	return h.Output.Success(RegisteredMessage, user)
}

// Logout forgets the token and the guest flag.
func (h *SessionHandler) Logout(ctx context.Context) error {
	if err := h.auth.SignOut(ctx); err != nil {
		return err
	}

	return h.Output.Success(SignedOutMessage, h.result())
}

// Guest switches to browsing without an account.
func (h *SessionHandler) Guest(ctx context.Context) error {
	if err := h.auth.ContinueAsGuest(ctx); err != nil {
		return err
	}

	return h.Output.Success(GuestMessage, h.result())
}

// Whoami prints the session status.
func (h *SessionHandler) Whoami() error {
	result := h.result()

	if h.JSON {
		return h.Output.Success("", result)
	}

	if h.Plain {
		h.Console.PlainKeyValue("signed_in", strconv.FormatBool(result.SignedIn))
		h.Console.PlainKeyValue("guest", strconv.FormatBool(result.Guest))
		h.Console.PlainKeyValue("username", result.Username)

		return nil
	}

	switch {
	case result.Guest:
		return h.Output.Info("Browsing as guest")
	case !result.SignedIn:
		return h.Output.Info("Not signed in. Run 'storefront login' or 'storefront guest'.")
	}

	rows := [][]string{{"Signed in", "yes"}}
	if result.Username != "" {
		rows = append(rows, []string{"Username", result.Username})
	}

	if result.Subject != "" {
		rows = append(rows, []string{"User id", result.Subject})
	}

	if result.IssuedAt != nil {
		rows = append(rows, []string{"Token issued", humanize.RelTime(*result.IssuedAt, h.now(), "ago", "from now")})
	}

	return h.Output.Table([]string{"FIELD", "VALUE"}, rows)
}

func (h *SessionHandler) result() domain.SessionResult {
	state := h.auth.State()
	result := domain.SessionResult{SignedIn: state.HasToken(), Guest: state.IsGuest}

	if claims, ok := h.auth.Claims(); ok {
		result.Subject = claims.Subject
		result.Username = claims.Username

		if !claims.IssuedAt.IsZero() {
			issued := claims.IssuedAt
			result.IssuedAt = &issued
		}
	}

	return result
}
