// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/storefront/internal/tui/styles"
)

const (
	footerGap     = "   "
	footerPadding = 2
)

// FooterAction represents a key-action pair for footer display.
type FooterAction struct {
	Key    string
	Action string
}

// RenderFooter renders the key hints under a rule. With a known width, hints
// that do not fit are dropped from the end.
func RenderFooter(styleConfig *styles.Styles, width int, actions []FooterAction) string {
	style := lipgloss.NewStyle().
		Padding(0, footerPadding).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(styleConfig.Muted)

	room := -1
	if width > 0 {
		style = style.Width(width)
		room = width - 2*footerPadding
	}

	hints := make([]string, 0, len(actions))
	used := 0

	for _, action := range actions {
		hint := styleConfig.Keybinding(action.Key, action.Action)

		needed := lipgloss.Width(hint)
		if len(hints) > 0 {
			needed += len(footerGap)
		}

		if room >= 0 && used+needed > room {
			break
		}

		hints = append(hints, hint)
		used += needed
	}

	return style.Render(strings.Join(hints, footerGap))
}
