// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/janderssonse/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleList() *domain.ListResult {
	return &domain.ListResult{
		Category: "jewelry",
		Sort:     "price-asc",
		Products: []domain.Product{
			{ID: 7, Title: "White Gold Plated Princess", Price: decimal.RequireFromString("9.99"), Category: "jewelery", Rating: domain.Rating{Rate: 3, Count: 400}},
			{ID: 5, Title: "John Hardy Women's Legends Naga Gold & Silver Dragon Station Chain Bracelet", Price: decimal.RequireFromString("695"), Category: "jewelery", Rating: domain.Rating{Rate: 4.6, Count: 1400}},
		},
		Total:     2,
		Timestamp: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestOutputAdapter_Success(t *testing.T) {
	tests := []struct {
		name         string
		format       OutputFormat
		quiet        bool
		message      string
		data         any
		wantContains string
		wantEmpty    bool
	}{
		{name: "text format with message", format: TextFormat, message: "Signed out", wantContains: "Signed out"},
		{name: "quiet mode suppresses message", format: TextFormat, quiet: true, message: "Signed out", wantEmpty: true},
		{name: "JSON format with data", format: JSONFormat, message: "ignored", data: domain.SessionResult{Guest: true}, wantContains: `"guest": true`},
		{name: "JSON format without data shows message", format: JSONFormat, message: "No data to show", wantContains: "No data to show"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer

			adapter := NewOutputAdapterWithWriter(&buf, tc.format, tc.quiet)
			require.NoError(t, adapter.Success(tc.message, tc.data))

			if tc.wantEmpty {
				assert.Empty(t, buf.String())

				return
			}

			assert.Contains(t, buf.String(), tc.wantContains)
		})
	}
}

func TestOutputAdapter_ErrorAndInfo(t *testing.T) {
	var buf bytes.Buffer

	adapter := NewOutputAdapterWithWriter(&buf, TextFormat, true)
	require.NoError(t, adapter.Info("hidden"))
	require.NoError(t, adapter.Error("still shown"))
	assert.Equal(t, "Error: still shown\n", buf.String())

	buf.Reset()

	adapter = NewOutputAdapterWithWriter(&buf, JSONFormat, false)
	require.NoError(t, adapter.Info("hello"))
	assert.JSONEq(t, `{"info":"hello"}`, buf.String())
	assert.True(t, NewOutputAdapterWithWriter(&buf, TextFormat, true).IsQuiet())
}

func TestOutputAdapter_ProductsText(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewOutputAdapterWithWriter(&buf, TextFormat, false).Products(sampleList()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[0], "CATEGORY")
	assert.Contains(t, lines[2], "$9.99")
	assert.Contains(t, lines[2], "3.0 (400)")
	assert.Contains(t, lines[3], "4.6 (1,400)")
	assert.Contains(t, lines[3], "…")
	assert.NotContains(t, lines[3], "Chain Bracelet")
}

func TestOutputAdapter_ProductsPlain(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewOutputAdapterWithWriter(&buf, PlainFormat, false).Products(sampleList()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "7\tWhite Gold Plated Princess\t$9.99\t3.0 (400)\tjewelery", lines[0])
}

func TestOutputAdapter_ProductsJSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewOutputAdapterWithWriter(&buf, JSONFormat, false).Products(sampleList()))

	var decoded domain.ListResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 2, decoded.Total)
	assert.Equal(t, "price-asc", decoded.Sort)
	assert.True(t, decoded.Products[1].Price.Equal(decimal.NewFromInt(695)))
}

func TestOutputAdapter_Product(t *testing.T) {
	product := sampleList().Products[0]
	product.Description = "Classic ring."

	var buf bytes.Buffer

	require.NoError(t, NewOutputAdapterWithWriter(&buf, TextFormat, false).Product(&product, ""))
	assert.Contains(t, buf.String(), "Title:")
	assert.Contains(t, buf.String(), "White Gold Plated Princess")
	assert.Contains(t, buf.String(), "\nClassic ring.\n")

	buf.Reset()
	require.NoError(t, NewOutputAdapterWithWriter(&buf, PlainFormat, false).Product(&product, "rendered"))
	assert.Contains(t, buf.String(), "price:$9.99\n")
	assert.NotContains(t, buf.String(), "rendered")
}

func TestParseOutputFormat(t *testing.T) {
	for raw, want := range map[string]OutputFormat{"": TextFormat, "TEXT": TextFormat, "json": JSONFormat, "plain": PlainFormat} {
		got, err := ParseOutputFormat(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseOutputFormat("yaml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("  short ", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefghij", 5))
	assert.Equal(t, "日本…", Truncate("日本語のタイトル", 5))
}
