// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package main provides the CLI entry point for storefront.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/janderssonse/storefront/internal/cli"
	"github.com/janderssonse/storefront/internal/domain"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := cli.NewCLI().Run(context.Background(), os.Args)
	if err == nil {
		return domain.ExitSuccess
	}

	exitErr := &domain.ExitError{}
	if errors.As(err, &exitErr) {
		if exitErr.Message != "" {
			_, _ = fmt.Fprintln(os.Stderr, exitErr.Message)
		}

		return exitErr.Code
	}

	_, _ = fmt.Fprintf(os.Stderr, "Unexpected error: %v\n", err)

	return domain.ExitGeneralError
}
