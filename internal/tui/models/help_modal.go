// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/janderssonse/storefront/internal/tui/styles"
)

const (
	helpModalWidth = 60
	helpKeyWidth   = 15
)

// HelpSection groups the bindings shown under one heading.
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// HelpModal is an overlay listing every key of the current screen.
type HelpModal struct {
	styles   *styles.Styles
	visible  bool
	sections []HelpSection
	toggle   key.Binding
	close    key.Binding
}

// NewHelpModal creates a hidden help modal. A General section with the help
// and quit keys is always appended.
func NewHelpModal(styleConfig *styles.Styles, sections ...HelpSection) *HelpModal {
	toggle := key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Toggle this help"))
	quit := key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "Quit application"))

	return &HelpModal{
		styles:   styleConfig,
		sections: append(sections, HelpSection{Title: "General", Bindings: []key.Binding{toggle, quit}}),
		toggle:   toggle,
		close:    key.NewBinding(key.WithKeys(KeyEsc), key.WithHelp("esc", "close help")),
	}
}

// Toggle shows/hides the modal.
func (h *HelpModal) Toggle() {
	h.visible = !h.visible
}

// IsVisible returns whether the modal is shown.
func (h *HelpModal) IsVisible() bool {
	return h.visible
}

// Update closes the modal on ? or esc. It reports whether the key was consumed.
func (h *HelpModal) Update(msg tea.Msg) bool {
	if !h.visible {
		return false
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, h.toggle) || key.Matches(msg, h.close) {
			h.visible = false
		}
	}

	return true
}

// View renders the help modal.
func (h *HelpModal) View() string {
	if !h.visible {
		return ""
	}

	heading := h.styles.MutedText.Bold(true).MarginTop(1)
	keyStyle := h.styles.PrimaryText.Width(helpKeyWidth)

	lines := []string{h.styles.Title.Render("All Commands")}

	for _, section := range h.sections {
		lines = append(lines, heading.Render(section.Title))

		for _, binding := range section.Bindings {
			if !binding.Enabled() {
				continue
			}

			help := binding.Help()
			lines = append(lines, keyStyle.Render(help.Key)+" "+help.Desc)
		}
	}

	lines = append(lines, "", h.styles.MutedText.Render("Press ? or Esc to close"))

	return h.styles.Modal.MaxWidth(helpModalWidth).Render(strings.Join(lines, "\n"))
}

// helpSections lists the catalog keys for the help modal.
func (k ProductsKeyMap) helpSections() []HelpSection {
	return []HelpSection{
		{Title: "Navigation", Bindings: []key.Binding{k.Up, k.Down, k.Top, k.Bottom, k.Open}},
		{Title: "Catalog", Bindings: []key.Binding{k.Categories, k.Sort, k.Reload, k.Close}},
		{Title: "Account", Bindings: []key.Binding{k.Auth}},
	}
}

// detailHelpSections lists the scroll keys of the detail viewport and the
// way back.
func detailHelpSections(keys detailKeyMap) []HelpSection {
	return []HelpSection{
		{Title: "Navigation", Bindings: []key.Binding{keys.Up, keys.Down, keys.PageUp, keys.PageDown, keys.Back}},
	}
}
