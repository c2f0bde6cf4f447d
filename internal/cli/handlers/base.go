// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package handlers implements CLI command execution logic.
package handlers

import (
	"context"
	"io"
	"os"
	"time"

	cliAdapter "github.com/janderssonse/storefront/internal/adapters/cli"
	"github.com/janderssonse/storefront/internal/console"
	"github.com/janderssonse/storefront/internal/domain"
)

// BaseHandler provides common functionality for all command handlers.
type BaseHandler struct {
	Verbose bool
	JSON    bool
	Quiet   bool
	Plain   bool
	Timeout time.Duration
	Output  *cliAdapter.OutputAdapter
	Console *console.OutputState
}

// NewBaseHandler creates a new base handler with the given configuration.
// Results go to stdout; messages go through the console state.
func NewBaseHandler(verbose, json, quiet, plain bool, timeout time.Duration, stdout io.Writer, out *console.OutputState) *BaseHandler {
	if stdout == nil {
		stdout = os.Stdout
	}

	if out == nil {
		out = console.DefaultOutput
	}

	return &BaseHandler{
		Verbose: verbose,
		JSON:    json,
		Quiet:   quiet,
		Plain:   plain,
		Timeout: timeout,
		Output:  cliAdapter.NewOutputAdapterWithWriter(stdout, format(json, plain), quiet),
		Console: out,
	}
}

func format(json, plain bool) cliAdapter.OutputFormat {
	switch {
	case json:
		return cliAdapter.JSONFormat
	case plain:
		return cliAdapter.PlainFormat
	default:
		return cliAdapter.TextFormat
	}
}

// WithTimeout applies timeout to context if configured.
func (h *BaseHandler) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.Timeout > 0 {
		return context.WithTimeout(ctx, h.Timeout)
	}

	return ctx, func() {}
}

// GetOutput returns the output port for CLI rendering.
func (h *BaseHandler) GetOutput() domain.OutputPort {
	return h.Output
}
