// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package tui

import (
	"slices"

	"github.com/janderssonse/storefront/internal/domain"
	"github.com/janderssonse/storefront/internal/tui/models"
)

// Group is a set of screens reachable under one session state.
type Group int

// Screen groups.
const (
	GroupUnauthenticated Group = iota
	GroupAuthenticated
)

func (g Group) String() string {
	if g == GroupAuthenticated {
		return "authenticated"
	}

	return "unauthenticated"
}

var groupScreens = map[Group][]models.Screen{ //nolint:gochecknoglobals
	GroupUnauthenticated: {models.LoginScreen, models.RegisterScreen},
	GroupAuthenticated:   {models.ProductsScreen, models.ProductDetailScreen},
}

// Router decides which screens the current session may see. It only reads
// the session; state changes go through the auth service.
type Router struct {
	session domain.SessionReader
}

// NewRouter creates a Router over the session.
func NewRouter(session domain.SessionReader) *Router {
	return &Router{session: session}
}

// Group returns the active group: authenticated when a token is held or the
// user is a guest.
func (r *Router) Group() Group {
	if r.session.State().Authenticated() {
		return GroupAuthenticated
	}

	return GroupUnauthenticated
}

// Screens lists the screens of the active group, entry first.
func (r *Router) Screens() []models.Screen {
	return slices.Clone(groupScreens[r.Group()])
}

// Entry returns the first screen of the active group.
func (r *Router) Entry() models.Screen {
	return groupScreens[r.Group()][0]
}

// Allows reports whether the screen belongs to the active group.
func (r *Router) Allows(screen models.Screen) bool {
	return slices.Contains(groupScreens[r.Group()], screen)
}
