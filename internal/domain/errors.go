// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors.
var (
	ErrNetworkFailure      = errors.New("network failure")
	ErrUpstream            = errors.New("upstream error")
	ErrProductNotFound     = errors.New("product not found")
	ErrInvalidProductID    = errors.New("invalid product id")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrMissingCredentials  = errors.New("please enter both username and password")
	ErrInvalidRegistration = errors.New("invalid registration")
	ErrUnknownCategory     = errors.New("unknown category")
	ErrUnknownSortOption   = errors.New("unknown sort option")
	ErrSessionClosed       = errors.New("session closed")
)

// Exit codes shared by the CLI and the entry point.
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitUsageError   = 2
	ExitConfigError  = 3
	ExitNotFound     = 5
	ExitAuthError    = 6
	ExitNetworkError = 11
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// NewExitError creates an ExitError with the specified code and message.
func NewExitError(code int, message string, err error) *ExitError {
	return &ExitError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFor picks the exit code matching an error.
func ExitCodeFor(err error) int {
	var exitErr *ExitError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, ErrUnknownCategory), errors.Is(err, ErrUnknownSortOption),
		errors.Is(err, ErrInvalidProductID), errors.Is(err, ErrInvalidRegistration),
		errors.Is(err, ErrMissingCredentials):
		return ExitUsageError
	case errors.Is(err, ErrProductNotFound):
		return ExitNotFound
	case errors.Is(err, ErrInvalidCredentials):
		return ExitAuthError
	case errors.Is(err, ErrNetworkFailure), errors.Is(err, ErrUpstream):
		return ExitNetworkError
	default:
		return ExitGeneralError
	}
}

// ErrorInfo provides user-friendly error information.
type ErrorInfo struct {
	Message     string   // User-friendly message
	Suggestions []string // Actionable suggestions
	ShowDetails bool     // Whether to show technical details
}

type errorMatcher struct {
	target   error
	patterns []string
	info     ErrorInfo
}

// getErrorMatchers returns sentinel errors, fallback text patterns and their info.
func getErrorMatchers() []errorMatcher {
	return []errorMatcher{
		{
			target:   ErrMissingCredentials,
			patterns: nil,
			info: ErrorInfo{
				Message:     "Please enter both username and password",
				Suggestions: []string{"Fill in both fields and try again"},
			},
		},
		{
			target:   ErrInvalidCredentials,
			patterns: []string{"unauthorized", "incorrect"},
			info: ErrorInfo{
				Message:     "Login failed. Please check your credentials.",
				Suggestions: []string{"Check the username and password", "Continue as guest to browse without an account"},
			},
		},
		{
			target:   ErrProductNotFound,
			patterns: []string{"not found"},
			info: ErrorInfo{
				Message:     "Product not found",
				Suggestions: []string{"Run 'storefront products list' to see valid ids"},
			},
		},
		{
			target:   ErrInvalidRegistration,
			patterns: nil,
			info: ErrorInfo{
				Message:     "Registration failed. Please try again.",
				Suggestions: []string{"Use a valid email address", "Passwords need at least 6 characters"},
			},
		},
		{
			target:   ErrNetworkFailure,
			patterns: []string{"connection", "timeout", "no such host", "deadline exceeded"},
			info: ErrorInfo{
				Message:     "Network connection failed",
				Suggestions: []string{"Check your internet connection", "Try again in a few moments"},
			},
		},
		{
			target:   ErrUpstream,
			patterns: nil,
			info: ErrorInfo{
				Message:     "The store did not accept the request",
				Suggestions: []string{"Try again in a few moments"},
			},
		},
	}
}

// GetErrorInfo analyzes an error and returns user-friendly information.
func GetErrorInfo(err error, verbose bool) ErrorInfo {
	if err == nil {
		return ErrorInfo{}
	}

	matchers := getErrorMatchers()

	for _, matcher := range matchers {
		if errors.Is(err, matcher.target) {
			info := matcher.info
			info.ShowDetails = verbose

			return info
		}
	}

	errStr := strings.ToLower(err.Error())

	for _, matcher := range matchers {
		for _, pattern := range matcher.patterns {
			if strings.Contains(errStr, pattern) {
				info := matcher.info
				info.ShowDetails = verbose

				return info
			}
		}
	}

	// Generic error - show details in verbose mode
	return ErrorInfo{
		Message:     "Something went wrong",
		Suggestions: []string{"Run with --verbose for more details"},
		ShowDetails: verbose,
	}
}

// FormatErrorMessage formats an error for display.
func FormatErrorMessage(err error, verbose bool) string {
	info := GetErrorInfo(err, verbose)

	var result strings.Builder

	result.WriteString("✗ ")
	result.WriteString(info.Message)

	if info.ShowDetails && err != nil {
		result.WriteString("\n  Technical details: ")
		result.WriteString(err.Error())
	}

	if len(info.Suggestions) > 0 && !verbose {
		result.WriteString(" (")
		result.WriteString(info.Suggestions[0])
		result.WriteString(")")
	} else if len(info.Suggestions) > 0 {
		result.WriteString("\n  Suggestions:")

		for _, suggestion := range info.Suggestions {
			result.WriteString("\n    • ")
			result.WriteString(suggestion)
		}
	}

	return result.String()
}
