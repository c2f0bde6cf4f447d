// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/janderssonse/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
)

// TestExitErrorFormatting tests that ExitError properly formats messages.
func TestExitErrorFormatting(t *testing.T) {
	tests := []struct {
		name            string
		exitError       *domain.ExitError
		expectedCode    int
		expectedMessage string
	}{
		{
			name: "exit error with underlying error",
			exitError: domain.NewExitError(domain.ExitNetworkError, "Could not load products",
				domain.ErrNetworkFailure),
			expectedCode:    domain.ExitNetworkError,
			expectedMessage: "Could not load products: network failure",
		},
		{
			name:            "exit error without underlying error",
			exitError:       domain.NewExitError(domain.ExitConfigError, "Invalid configuration", nil),
			expectedCode:    domain.ExitConfigError,
			expectedMessage: "Invalid configuration",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedMessage, tc.exitError.Error())
			assert.Equal(t, tc.expectedCode, tc.exitError.Code)
		})
	}
}

func TestExitErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("command: %w", domain.NewExitError(domain.ExitNotFound, "missing", domain.ErrProductNotFound))

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: domain.ExitSuccess},
		{name: "explicit exit error", err: domain.NewExitError(domain.ExitConfigError, "bad", nil), want: domain.ExitConfigError},
		{name: "unknown category", err: fmt.Errorf("flag: %w", domain.ErrUnknownCategory), want: domain.ExitUsageError},
		{name: "unknown sort", err: domain.ErrUnknownSortOption, want: domain.ExitUsageError},
		{name: "bad product id", err: domain.ErrInvalidProductID, want: domain.ExitUsageError},
		{name: "missing credentials", err: domain.ErrMissingCredentials, want: domain.ExitUsageError},
		{name: "not found", err: fmt.Errorf("fetch 99: %w", domain.ErrProductNotFound), want: domain.ExitNotFound},
		{name: "bad login", err: domain.ErrInvalidCredentials, want: domain.ExitAuthError},
		{name: "network", err: fmt.Errorf("get: %w", domain.ErrNetworkFailure), want: domain.ExitNetworkError},
		{name: "upstream", err: domain.ErrUpstream, want: domain.ExitNetworkError},
		{name: "other", err: errors.New("boom"), want: domain.ExitGeneralError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, domain.ExitCodeFor(tc.err))
		})
	}
}

// TestFormatErrorMessage tests user-friendly error formatting.
func TestFormatErrorMessage(t *testing.T) {
	tests := []struct {
		name             string
		err              error
		verbose          bool
		shouldContain    []string
		shouldNotContain []string
	}{
		{
			name:          "wrapped sentinel non-verbose",
			err:           fmt.Errorf("login: %w", domain.ErrInvalidCredentials),
			shouldContain: []string{"Login failed", "Check the username and password"},
			shouldNotContain: []string{
				"Technical details",
			},
		},
		{
			name:    "network error verbose",
			err:     errors.New("dial tcp: connection refused"),
			verbose: true,
			shouldContain: []string{
				"Network connection failed",
				"Technical details: dial tcp: connection refused",
				"Suggestions:",
				"Try again in a few moments",
			},
		},
		{
			name:          "missing credentials",
			err:           domain.ErrMissingCredentials,
			shouldContain: []string{"Please enter both username and password"},
		},
		{
			name:          "product not found by text",
			err:           errors.New("product 42 not found"),
			shouldContain: []string{"Product not found", "storefront products list"},
		},
		{
			name:             "generic error",
			err:              errors.New("something odd"),
			shouldContain:    []string{"Something went wrong", "--verbose"},
			shouldNotContain: []string{"something odd"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := domain.FormatErrorMessage(tc.err, tc.verbose)

			assert.True(t, strings.HasPrefix(result, "✗ "))

			for _, want := range tc.shouldContain {
				assert.Contains(t, result, want)
			}

			for _, unwanted := range tc.shouldNotContain {
				assert.NotContains(t, result, unwanted)
			}
		})
	}
}

func TestGetErrorInfoNil(t *testing.T) {
	assert.Equal(t, domain.ErrorInfo{}, domain.GetErrorInfo(nil, true))
}
