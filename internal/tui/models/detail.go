// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"context"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/storefront/internal/domain"
	"github.com/janderssonse/storefront/internal/tui/styles"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultWordWrap is the description width when none is configured.
const DefaultWordWrap = 80

const detailChromeHeight = 4

type detailKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Back     key.Binding
	Help     key.Binding
}

// newDetailKeyMap reuses the viewport's scroll keys with help text for the
// help modal.
func newDetailKeyMap(scroll viewport.KeyMap) detailKeyMap {
	keys := detailKeyMap{
		Up:       scroll.Up,
		Down:     scroll.Down,
		PageUp:   scroll.PageUp,
		PageDown: scroll.PageDown,
		Back:     key.NewBinding(key.WithKeys(KeyEsc, "backspace"), key.WithHelp("esc", "Back to products")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}

	keys.Up.SetHelp("↑/k", "Scroll up")
	keys.Down.SetHelp("↓/j", "Scroll down")
	keys.PageUp.SetHelp("pgup/b", "Page up")
	keys.PageDown.SetHelp("pgdn/f", "Page down")

	return keys
}

type productLoadedMsg struct {
	product *domain.Product
	err     error
}

// Detail shows one product.
//
//nolint:containedctx // TUI models require context for proper cancellation propagation
type Detail struct {
	ctx      context.Context
	styles   *styles.Styles
	loader   domain.ProductLoader
	id       domain.ProductID
	wordWrap int

	spinner  spinner.Model
	viewport viewport.Model
	keys     detailKeyMap
	help     *HelpModal
	product  *domain.Product
	loadErr  string
	width    int
	height   int
}

// NewDetail creates the detail screen for a product id.
func NewDetail(ctx context.Context, styleConfig *styles.Styles, loader domain.ProductLoader, id domain.ProductID, wordWrap int) *Detail {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	if wordWrap <= 0 {
		wordWrap = DefaultWordWrap
	}

	vp := viewport.New(wordWrap, 20)
	keys := newDetailKeyMap(vp.KeyMap)

	return &Detail{
		ctx:      ctx,
		styles:   styleConfig,
		loader:   loader,
		id:       id,
		wordWrap: wordWrap,
		spinner:  sp,
		viewport: vp,
		keys:     keys,
		help:     NewHelpModal(styleConfig, detailHelpSections(keys)...),
	}
}

// Init starts the product fetch.
func (m *Detail) Init() tea.Cmd {
	ctx := m.ctx
	loader := m.loader
	id := m.id

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		product, err := loader.FetchByID(ctx, id)

		return productLoadedMsg{product: product, err: err}
	})
}

// Update implements tea.Model.
func (m *Detail) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-detailChromeHeight)
		m.refresh()

		return m, nil

	case productLoadedMsg:
		if msg.err != nil {
			log.Printf("failed to load product %d: %v", m.id, msg.err)
			m.loadErr = domain.GetErrorInfo(msg.err, false).Message

			return m, nil
		}

		m.product = msg.product
		m.refresh()

		return m, nil

	case spinner.TickMsg:
		if m.product != nil || m.loadErr != "" {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		if m.help.Update(msg) {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Help):
			m.help.Toggle()

			return m, nil
		case key.Matches(msg, m.keys.Back):
			return m, Navigate(ProductsScreen, nil)
		}

		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)

		return m, cmd
	}

	return m, nil
}

// Product returns the loaded product, or nil while loading.
func (m *Detail) Product() *domain.Product {
	return m.product
}

// ProductID returns the id being shown.
func (m *Detail) ProductID() domain.ProductID {
	return m.id
}

func (m *Detail) refresh() {
	if m.product == nil {
		return
	}

	m.viewport.SetContent(RenderProduct(m.styles, m.product, m.wordWrap))
}

// View implements tea.Model.
func (m *Detail) View() string {
	var body string

	switch {
	case m.help.IsVisible():
		body = m.help.View()
	case m.loadErr != "":
		body = m.styles.StatusIcon("error") + " " + m.styles.ErrorText.Render(m.loadErr)
	case m.product == nil:
		body = m.spinner.View() + " Loading product details..."
	default:
		body = m.viewport.View()
	}

	footer := RenderFooter(m.styles, m.width, []FooterAction{
		{Key: "↑/↓", Action: "Scroll"},
		{Key: "esc", Action: "Back"},
		{Key: "?", Action: "Help"},
		{Key: "q", Action: "Quit"},
	})

	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

// RenderProduct lays out a product for the detail view.
func RenderProduct(styleConfig *styles.Styles, product *domain.Product, wordWrap int) string {
	sections := []string{
		styleConfig.Title.Render(product.Title),
		styleConfig.Price.Render(product.FormattedPrice()),
		styleConfig.Stars.Render(Stars(product.Rating.Rate)) + " " + styleConfig.MutedText.Render(RatingText(product.Rating)),
		styleConfig.Subtitle.Render(CategoryTitle(product.Category)),
	}

	if product.Image != "" {
		sections = append(sections, styleConfig.MutedText.Render(product.Image))
	}

	sections = append(sections, RenderMarkdown(product.Description, wordWrap, !styleConfig.Mono))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// CategoryTitle title-cases an upstream category tag.
func CategoryTitle(category string) string {
	return cases.Title(language.English).String(category)
}

// RenderMarkdown renders a description with glamour, returning the plain
// text if rendering fails.
func RenderMarkdown(text string, wordWrap int, color bool) string {
	if wordWrap <= 0 {
		wordWrap = DefaultWordWrap
	}

	style := glamour.WithStandardStyle("notty")
	if color {
		style = glamour.WithAutoStyle()
	}

	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(wordWrap))
	if err != nil {
		return text
	}

	rendered, err := renderer.Render(text)
	if err != nil {
		return text
	}

	return strings.TrimRight(rendered, "\n")
}
