// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli renders command results for the terminal.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/janderssonse/storefront/internal/domain"
	"github.com/mattn/go-runewidth"
)

// ErrUnsupportedFormat is returned when an unsupported output format is requested.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// TitleWidth is the display width of the title column in product tables.
const TitleWidth = 48

// OutputFormat represents the output format type.
type OutputFormat int

const (
	// TextFormat outputs aligned tables.
	TextFormat OutputFormat = iota
	// JSONFormat outputs indented JSON.
	JSONFormat
	// PlainFormat outputs tab-separated rows without headers.
	PlainFormat
)

// OutputAdapter implements domain.OutputPort for CLI output.
type OutputAdapter struct {
	writer io.Writer
	format OutputFormat
	quiet  bool
}

var _ domain.OutputPort = (*OutputAdapter)(nil)

// NewOutputAdapter writes to stdout.
func NewOutputAdapter(format OutputFormat, quiet bool) *OutputAdapter {
	return NewOutputAdapterWithWriter(os.Stdout, format, quiet)
}

// NewOutputAdapterWithWriter creates an output adapter with a custom writer for testing.
func NewOutputAdapterWithWriter(writer io.Writer, format OutputFormat, quiet bool) *OutputAdapter {
	return &OutputAdapter{
		writer: writer,
		format: format,
		quiet:  quiet,
	}
}

// Format returns the configured format.
func (o *OutputAdapter) Format() OutputFormat {
	return o.format
}

// Success outputs a success message with optional structured data.
func (o *OutputAdapter) Success(message string, data any) error {
	if o.format == JSONFormat && data != nil {
		return o.outputJSON(data)
	}

	if message != "" && !o.quiet {
		_, _ = fmt.Fprintln(o.writer, message)
	}

	return nil
}

// Error outputs an error message.
func (o *OutputAdapter) Error(message string) error {
	if o.format == JSONFormat {
		return o.outputJSON(map[string]string{"error": message})
	}

	_, _ = fmt.Fprintf(o.writer, "Error: %s\n", message)

	return nil
}

// Info outputs an informational message.
func (o *OutputAdapter) Info(message string) error {
	if o.quiet {
		return nil
	}

	if o.format == JSONFormat {
		return o.outputJSON(map[string]string{"info": message})
	}

	_, _ = fmt.Fprintln(o.writer, message)

	return nil
}

// Table outputs tabular data.
func (o *OutputAdapter) Table(headers []string, rows [][]string) error {
	switch o.format {
	case JSONFormat:
		return o.outputJSON(map[string]any{
			"headers": headers,
			"rows":    rows,
		})
	case PlainFormat:
		for _, row := range rows {
			_, _ = fmt.Fprintln(o.writer, strings.Join(row, "\t"))
		}

		return nil
	case TextFormat:
	}

	w := tabwriter.NewWriter(o.writer, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, strings.Join(headers, "\t"))

	separators := make([]string, len(headers))
	for i := range headers {
		separators[i] = strings.Repeat("-", len(headers[i]))
	}

	_, _ = fmt.Fprintln(w, strings.Join(separators, "\t"))

	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}

	return nil
}

// IsQuiet returns true if output should be suppressed.
func (o *OutputAdapter) IsQuiet() bool {
	return o.quiet
}

// Products renders a product listing.
func (o *OutputAdapter) Products(result *domain.ListResult) error {
	if o.format == JSONFormat {
		return o.outputJSON(result)
	}

	rows := make([][]string, 0, len(result.Products))
	for _, p := range result.Products {
		rows = append(rows, []string{
			p.ID.String(),
			Truncate(p.Title, TitleWidth),
			p.FormattedPrice(),
			RatingSummary(p.Rating),
			p.Category,
		})
	}

	return o.Table([]string{"ID", "TITLE", "PRICE", "RATING", "CATEGORY"}, rows)
}

// Product renders one product. description is shown in text mode in place
// of the raw description, e.g. after markdown rendering.
func (o *OutputAdapter) Product(product *domain.Product, description string) error {
	if o.format == JSONFormat {
		return o.outputJSON(product)
	}

	if description == "" {
		description = product.Description
	}

	fields := [][2]string{
		{"id", product.ID.String()},
		{"title", product.Title},
		{"price", product.FormattedPrice()},
		{"rating", RatingSummary(product.Rating)},
		{"category", product.Category},
		{"image", product.Image},
	}

	if o.format == PlainFormat {
		for _, field := range fields {
			_, _ = fmt.Fprintf(o.writer, "%s:%s\n", field[0], field[1])
		}

		return nil
	}

	w := tabwriter.NewWriter(o.writer, 0, 0, 2, ' ', 0)
	for _, field := range fields {
		_, _ = fmt.Fprintf(w, "%s:\t%s\n", strings.ToUpper(field[0][:1])+field[0][1:], field[1])
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write product: %w", err)
	}

	_, _ = fmt.Fprintf(o.writer, "\n%s\n", strings.TrimRight(description, "\n"))

	return nil
}

// Truncate shortens s to width display cells, ending in an ellipsis.
func Truncate(s string, width int) string {
	return runewidth.Truncate(strings.TrimSpace(s), width, "…")
}

// RatingSummary renders a rating as "4.1 (1,259)".
func RatingSummary(rating domain.Rating) string {
	return strconv.FormatFloat(rating.Rate, 'f', 1, 64) + " (" + humanize.Comma(int64(rating.Count)) + ")"
}

func (o *OutputAdapter) outputJSON(data any) error {
	encoder := json.NewEncoder(o.writer)
	encoder.SetIndent("", "  ")

	return encoder.Encode(data)
}

// ParseOutputFormat parses a string into an OutputFormat.
func ParseOutputFormat(format string) (OutputFormat, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return TextFormat, nil
	case "json":
		return JSONFormat, nil
	case "plain":
		return PlainFormat, nil
	default:
		return TextFormat, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// OutputFromFlags picks the format from the global --json and --plain flags.
func OutputFromFlags(jsonFlag, plainFlag, quietFlag bool) *OutputAdapter {
	format := TextFormat

	switch {
	case jsonFlag:
		format = JSONFormat
	case plainFlag:
		format = PlainFormat
	}

	return NewOutputAdapter(format, quietFlag)
}
