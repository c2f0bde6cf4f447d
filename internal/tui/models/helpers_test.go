// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janderssonse/storefront/internal/adapters/fakestore"
	"github.com/janderssonse/storefront/internal/adapters/session"
	"github.com/janderssonse/storefront/internal/application"
	"github.com/janderssonse/storefront/internal/domain"
	"github.com/janderssonse/storefront/internal/testutil"
	"github.com/janderssonse/storefront/internal/tui/styles"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, stored domain.StoredSession, gateway domain.AuthGateway) *application.AuthService {
	t.Helper()

	svc := application.NewAuthService(session.NewMemoryStore(stored), gateway, fakestore.DecodeClaims)
	require.NoError(t, svc.Init(context.Background()))

	return svc
}

func guestSession(t *testing.T) *application.AuthService {
	t.Helper()

	return newSession(t, domain.StoredSession{IsGuest: true}, &testutil.MockAuthGateway{})
}

func fixtureProducts() []domain.Product {
	item := func(id int, title, price string, rate float64, category string) domain.Product {
		return domain.Product{
			ID:          domain.ProductID(id),
			Title:       title,
			Price:       decimal.RequireFromString(price),
			Category:    category,
			Description: "A fine " + title,
			Rating:      domain.Rating{Rate: rate, Count: id * 100},
		}
	}

	return []domain.Product{
		item(1, "Fjallraven Backpack", "109.95", 3.9, "men's clothing"),
		item(2, "Slim Fit T-Shirt", "22.3", 4.1, "men's clothing"),
		item(5, "Dragon Bracelet", "695", 4.6, "jewelery"),
		item(6, "Solid Gold Petite", "168", 3.9, "jewelery"),
		item(15, "Snowboard Jacket", "56.99", 2.6, "women's clothing"),
	}
}

func testStyles() *styles.Styles {
	return styles.New()
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+g":
		return tea.KeyMsg{Type: tea.KeyCtrlG}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// collect runs a command and any batched commands, returning their messages.
// Only use it on commands that return immediately.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}

		return out
	}

	return []tea.Msg{msg}
}

// find returns the first message of type T.
func find[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if typed, ok := msg.(T); ok {
			return typed, true
		}
	}

	var zero T

	return zero, false
}
