// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package styles defines consistent visual styling for TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette holds the colors every screen style derives from.
type Palette struct {
	Primary   lipgloss.TerminalColor
	Accent    lipgloss.TerminalColor
	Success   lipgloss.TerminalColor
	Warning   lipgloss.TerminalColor
	Error     lipgloss.TerminalColor
	Muted     lipgloss.TerminalColor
	Surface   lipgloss.TerminalColor
}

// StorePalette is the default storefront look, adapted to light and dark
// terminals.
var StorePalette = Palette{ //nolint:gochecknoglobals
	Primary:   lipgloss.AdaptiveColor{Light: "#3451b2", Dark: "#7aa2f7"},
	Accent:    lipgloss.AdaptiveColor{Light: "#8839ef", Dark: "#bb9af7"},
	Success:   lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#9ece6a"},
	Warning:   lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#e0af68"},
	Error:     lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f7768e"},
	Muted:     lipgloss.AdaptiveColor{Light: "#8c8fa1", Dark: "#565f89"},
	Surface:   lipgloss.AdaptiveColor{Light: "#eff1f5", Dark: "#1a1b26"},
}

// MonoPalette renders without color, for --color never.
var MonoPalette = Palette{ //nolint:gochecknoglobals
	Primary:   lipgloss.NoColor{},
	Accent:    lipgloss.NoColor{},
	Success:   lipgloss.NoColor{},
	Warning:   lipgloss.NoColor{},
	Error:     lipgloss.NoColor{},
	Muted:     lipgloss.NoColor{},
	Surface:   lipgloss.NoColor{},
}

// Styles contains all the styles used in the TUI.
type Styles struct {
	Palette

	// Mono is set for the colorless palette.
	Mono bool

	Header   lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Card     lipgloss.Style
	Button   lipgloss.Style
	Modal    lipgloss.Style

	MutedText   lipgloss.Style
	PrimaryText lipgloss.Style
	SuccessText lipgloss.Style
	ErrorText   lipgloss.Style
	WarningText lipgloss.Style
	Price       lipgloss.Style
	Stars       lipgloss.Style

	keyText lipgloss.Style
}

// New returns the default storefront styles.
func New() *Styles {
	return WithPalette(StorePalette)
}

// ForColor picks the store palette, or the monochrome one when color is off.
func ForColor(enabled bool) *Styles {
	if enabled {
		return New()
	}

	s := WithPalette(MonoPalette)
	s.Mono = true

	return s
}

// WithPalette builds every style from p.
func WithPalette(p Palette) *Styles {
	return &Styles{
		Palette: p,

		Header: lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder(), false, false, true, false).
			BorderForeground(p.Primary),

		Title: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(p.Accent).
			Italic(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Muted).
			Padding(1, 2).
			MarginBottom(1),

		Button: lipgloss.NewStyle().
			Background(p.Primary).
			Foreground(p.Surface).
			Bold(true).
			Padding(0, 2).
			MarginRight(1),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(1, 2),

		MutedText:   lipgloss.NewStyle().Foreground(p.Muted),
		PrimaryText: lipgloss.NewStyle().Foreground(p.Primary),
		SuccessText: lipgloss.NewStyle().Foreground(p.Success),
		ErrorText:   lipgloss.NewStyle().Foreground(p.Error),
		WarningText: lipgloss.NewStyle().Foreground(p.Warning),
		Price:       lipgloss.NewStyle().Foreground(p.Success).Bold(true),
		Stars:       lipgloss.NewStyle().Foreground(p.Warning),

		keyText: lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
	}
}

// Logo returns the styled storefront banner.
func (s *Styles) Logo() string {
	logo := `
  ┌─┐┌┬┐┌─┐┬─┐┌─┐┌─┐┬─┐┌─┐┌┐┌┌┬┐
  └─┐ │ │ │├┬┘├┤ ├┤ ├┬┘│ ││││ │
  └─┘ ┴ └─┘┴└─└─┘└  ┴└─└─┘┘└┘ ┴`

	return s.Title.Render(logo)
}

// StatusIcon returns the marker for a status: success, error, warning or info.
func (s *Styles) StatusIcon(status string) string {
	switch status {
	case "success":
		return s.SuccessText.Render("✓")
	case "error":
		return s.ErrorText.Render("✗")
	case "warning":
		return s.WarningText.Render("!")
	case "info":
		return s.PrimaryText.Render("i")
	default:
		return s.MutedText.Render("•")
	}
}

// Keybinding renders "[key] desc".
func (s *Styles) Keybinding(key, desc string) string {
	return s.keyText.Render("["+key+"]") + " " + s.MutedText.Render(desc)
}
