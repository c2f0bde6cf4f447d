// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"strings"
	"time"
)

// SessionState is the in-memory view of who is using the storefront.
type SessionState struct {
	Token         string
	IsGuest       bool
	IsLoading     bool
	JustLoggedOut bool
}

// HasToken reports whether a sign-in token is held.
func (s SessionState) HasToken() bool {
	return s.Token != ""
}

// Authenticated reports whether the user may browse the catalog,
// either signed in or as a guest.
func (s SessionState) Authenticated() bool {
	return s.HasToken() || s.IsGuest
}

// StoredSession is the durable part of a session.
type StoredSession struct {
	Token   string `toml:"user_token,omitempty"`
	IsGuest bool   `toml:"is_guest"`
}

// Claims are the fields the storefront reads from a sign-in token.
type Claims struct {
	Subject  string
	Username string
	IssuedAt time.Time
}

// Credentials identify a user at sign-in.
type Credentials struct {
	Username string
	Password string
}

// Blank reports whether either field is empty after trimming.
func (c Credentials) Blank() bool {
	return strings.TrimSpace(c.Username) == "" || strings.TrimSpace(c.Password) == ""
}

// Registration is the data sent to create an account.
type Registration struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// User is an upstream account.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
