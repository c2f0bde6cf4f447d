// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import "time"

// OutputPort defines the interface for presenting command results.
// This is a domain port that adapters implement for different output formats.
type OutputPort interface {
	// Success outputs a success message with optional structured data
	Success(message string, data any) error

	// Error outputs an error message
	Error(message string) error

	// Info outputs an informational message
	Info(message string) error

	// Table outputs tabular data
	Table(headers []string, rows [][]string) error

	// IsQuiet returns true if output should be suppressed
	IsQuiet() bool
}

// ListResult is the JSON shape of `products list`.
type ListResult struct {
	Category  string    `json:"category"`
	Sort      string    `json:"sort"`
	Products  []Product `json:"products"`
	Total     int       `json:"total"`
	Fallback  bool      `json:"fallback"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionResult is the JSON shape of `whoami`.
type SessionResult struct {
	SignedIn bool       `json:"signed_in"`
	Guest    bool       `json:"guest"`
	Subject  string     `json:"subject,omitempty"`
	Username string     `json:"username,omitempty"`
	IssuedAt *time.Time `json:"issued_at,omitempty"`
}

// CategoryResult is one row of `categories`.
type CategoryResult struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Tag   string `json:"tag"`
}
