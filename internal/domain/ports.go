// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"context"
)

// ProductLoader fetches the catalog from the upstream product source.
// Implemented by the fakestore adapter; calls are single-shot with no retry.
type ProductLoader interface {
	// FetchAll returns every product in upstream order.
	FetchAll(ctx context.Context) ([]Product, error)

	// FetchByID returns a single product.
	FetchByID(ctx context.Context, id ProductID) (*Product, error)
}

// AuthGateway talks to the upstream account endpoints.
type AuthGateway interface {
	// Login exchanges credentials for a token.
	Login(ctx context.Context, creds Credentials) (string, error)

	// Register creates an upstream account.
	Register(ctx context.Context, reg Registration) (*User, error)
}

// SessionStore persists the session flags across runs.
type SessionStore interface {
	// Load returns the stored session, or an empty one if nothing was saved.
	Load(ctx context.Context) (StoredSession, error)

	// SaveToken stores the sign-in token.
	SaveToken(ctx context.Context, token string) error

	// SaveGuest stores the guest flag.
	SaveGuest(ctx context.Context, guest bool) error

	// Clear removes both the token and the guest flag.
	Clear(ctx context.Context) error
}

// SessionReader exposes read-only session state, e.g. to the router.
type SessionReader interface {
	State() SessionState
}
