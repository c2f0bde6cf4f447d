// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package models defines shared navigation messages between UI screens.
package models

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janderssonse/storefront/internal/domain"
)

// Screen identifies one storefront screen.
type Screen int

// Screens. Login and Register form the unauthenticated group, Products and
// ProductDetail the authenticated one.
const (
	LoginScreen Screen = iota
	RegisterScreen
	ProductsScreen
	ProductDetailScreen
)

func (s Screen) String() string {
	switch s {
	case LoginScreen:
		return "Login"
	case RegisterScreen:
		return "Register"
	case ProductsScreen:
		return "Products"
	case ProductDetailScreen:
		return "ProductDetail"
	default:
		return "Unknown"
	}
}

// NavigateMsg is a message sent to request navigation to a specific screen.
type NavigateMsg struct {
	Screen Screen
	Data   any // Optional data to pass to the new screen
}

// SessionChangedMsg is sent after a sign-in, sign-out or guest switch so the
// root model can re-evaluate which screen group to show.
type SessionChangedMsg struct {
	Notice string
}

// NoticeData carries a one-line message for the target screen.
type NoticeData struct {
	Notice string
}

// Key constants for common key inputs.
const (
	KeyCtrlC = "ctrl+c"
	KeyEnter = "enter"
	KeyEsc   = "esc"
)

// UI constants.
const (
	SelectedPrefix = "❯ "
	GoodbyeMessage = "Thanks for shopping!\n"
)

// Session is the part of the auth service the screens drive.
type Session interface {
	domain.SessionReader
	SignIn(ctx context.Context, creds domain.Credentials) error
	SignOut(ctx context.Context) error
	ContinueAsGuest(ctx context.Context) error
	GoToLogin() error
	SetJustLoggedOut(value bool)
	Register(ctx context.Context, reg domain.Registration) (*domain.User, error)
}

// Navigate returns a command requesting a screen change.
func Navigate(screen Screen, data any) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Screen: screen, Data: data} }
}

func sessionChanged(notice string) tea.Cmd {
	return func() tea.Msg { return SessionChangedMsg{Notice: notice} }
}
