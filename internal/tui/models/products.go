// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/storefront/internal/catalog"
	"github.com/janderssonse/storefront/internal/domain"
	"github.com/janderssonse/storefront/internal/tui/styles"
	"github.com/mattn/go-runewidth"
)

const (
	productsChromeHeight = 7 // header, selection bar, blank lines and footer
	minTitleWidth        = 16
	maxTitleWidth        = 60
)

type productsLoadedMsg struct {
	products []domain.Product
	err      error
}

type authActionResultMsg struct{ err error }

// ProductsKeyMap defines key bindings for the products screen.
type ProductsKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Open       key.Binding
	Categories key.Binding
	Sort       key.Binding
	Auth       key.Binding
	Reload     key.Binding
	Close      key.Binding
}

// DefaultProductsKeyMap returns the default key bindings.
func DefaultProductsKeyMap() ProductsKeyMap {
	return ProductsKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "Previous product")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "Next product")),
		Top:        key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "First product")),
		Bottom:     key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "Last product")),
		Open:       key.NewBinding(key.WithKeys(KeyEnter), key.WithHelp("enter", "Open product details")),
		Categories: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "Choose a category")),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Choose a sort order")),
		Auth:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "Logout, or login when browsing as guest")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Reload the catalog")),
		Close:      key.NewBinding(key.WithKeys(KeyEsc), key.WithHelp("esc", "Close a menu")),
	}
}

// ProductsOptions are the selections applied once the catalog has loaded.
type ProductsOptions struct {
	Category domain.Category
	Sort     domain.SortOption
}

// Products is the catalog screen: category menu, sort modal and product list.
//
//nolint:containedctx // TUI models require context for proper cancellation propagation
type Products struct {
	ctx     context.Context
	styles  *styles.Styles
	loader  domain.ProductLoader
	session Session
	engine  *catalog.Engine
	keyMap  ProductsKeyMap
	spinner spinner.Model
	help    *HelpModal
	opts    ProductsOptions

	width  int
	height int

	loading bool
	loaded  bool
	loadErr string
	busy    bool

	cursor int
	offset int

	categoriesOpen bool
	categoryCursor int
	sortOpen       bool
	sortCursor     int
}

// NewProducts creates the catalog screen. Each instance starts with a fresh
// engine, so selections reset whenever the screen is mounted again.
func NewProducts(ctx context.Context, styleConfig *styles.Styles, loader domain.ProductLoader, session Session, opts ProductsOptions) *Products {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	keyMap := DefaultProductsKeyMap()

	return &Products{
		ctx:     ctx,
		styles:  styleConfig,
		loader:  loader,
		session: session,
		engine:  catalog.New(),
		keyMap:  keyMap,
		spinner: sp,
		help:    NewHelpModal(styleConfig, keyMap.helpSections()...),
		opts:    opts,
		loading: true,
	}
}

// Init starts the catalog fetch.
func (m *Products) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m *Products) load() tea.Cmd {
	ctx := m.ctx
	loader := m.loader

	return func() tea.Msg {
		products, err := loader.FetchAll(ctx)

		return productsLoadedMsg{products: products, err: err}
	}
}

// Update implements tea.Model.
func (m *Products) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampCursor()

		return m, nil

	case productsLoadedMsg:
		return m.handleLoaded(msg)

	case authActionResultMsg:
		m.busy = false
		if msg.err != nil {
			log.Printf("auth action failed: %v", msg.err)
			m.loadErr = errorText(msg.err)

			return m, nil
		}

		return m, sessionChanged("")

	case spinner.TickMsg:
		if !m.loading && !m.busy {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Products) handleLoaded(msg productsLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false

	if msg.err != nil {
		log.Printf("failed to load products: %v", msg.err)
		m.loadErr = domain.GetErrorInfo(msg.err, false).Message

		return m, nil
	}

	m.loadErr = ""
	m.engine.SetFullSet(msg.products)

	// Launch selections apply once; reloads keep what the user picked since.
	if !m.loaded {
		m.loaded = true

		if m.opts.Category != domain.CategoryAll {
			m.engine.SelectCategory(m.opts.Category)
		}

		if m.opts.Sort != domain.SortDefault {
			m.engine.SelectSort(m.opts.Sort)
		}
	}

	m.cursor = 0
	m.offset = 0

	return m, nil
}

func (m *Products) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy || m.help.Update(msg) {
		return m, nil
	}

	if msg.String() == "?" {
		m.help.Toggle()

		return m, nil
	}

	switch {
	case m.sortOpen:
		return m.handleSortKey(msg)
	case m.categoriesOpen:
		return m.handleCategoryKey(msg)
	}

	switch {
	case key.Matches(msg, m.keyMap.Reload):
		m.loading = true
		m.loadErr = ""

		return m, tea.Batch(m.spinner.Tick, m.load())
	case key.Matches(msg, m.keyMap.Auth):
		return m, m.authAction()
	}

	if m.loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keyMap.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keyMap.Top):
		m.cursor = 0
		m.clampCursor()
	case key.Matches(msg, m.keyMap.Bottom):
		m.cursor = len(m.engine.CurrentDisplayList()) - 1
		m.clampCursor()
	case key.Matches(msg, m.keyMap.Categories):
		m.categoriesOpen = true
		m.categoryCursor = slices.Index(domain.Categories(), m.engine.ActiveCategory())
	case key.Matches(msg, m.keyMap.Sort):
		m.sortOpen = true
		m.sortCursor = slices.Index(domain.SortOptions(), m.engine.ActiveSort())
	case key.Matches(msg, m.keyMap.Open):
		if product, ok := m.SelectedProduct(); ok {
			return m, Navigate(ProductDetailScreen, product.ID)
		}
	}

	return m, nil
}

func (m *Products) handleCategoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	categories := domain.Categories()

	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.categoryCursor = max(0, m.categoryCursor-1)
	case key.Matches(msg, m.keyMap.Down):
		m.categoryCursor = min(len(categories)-1, m.categoryCursor+1)
	case key.Matches(msg, m.keyMap.Open):
		m.SelectCategory(categories[m.categoryCursor])
	case key.Matches(msg, m.keyMap.Close), key.Matches(msg, m.keyMap.Categories):
		m.categoriesOpen = false
	}

	return m, nil
}

func (m *Products) handleSortKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := domain.SortOptions()

	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.sortCursor = max(0, m.sortCursor-1)
	case key.Matches(msg, m.keyMap.Down):
		m.sortCursor = min(len(options)-1, m.sortCursor+1)
	case key.Matches(msg, m.keyMap.Open):
		m.SelectSort(options[m.sortCursor])
	case key.Matches(msg, m.keyMap.Close), key.Matches(msg, m.keyMap.Sort):
		m.sortOpen = false
	}

	return m, nil
}

// SelectCategory applies a category from the menu and closes it.
func (m *Products) SelectCategory(category domain.Category) {
	m.engine.SelectCategory(category)
	m.categoriesOpen = false
	m.cursor = 0
	m.offset = 0
}

// SelectSort applies a sort option from the modal and closes it.
func (m *Products) SelectSort(option domain.SortOption) {
	m.engine.SelectSort(option)
	m.sortOpen = false
	m.cursor = 0
	m.offset = 0
}

// authAction signs a user out, or sends a guest back to the login screen.
func (m *Products) authAction() tea.Cmd {
	session := m.session

	if !session.State().HasToken() {
		if err := session.GoToLogin(); err != nil {
			m.loadErr = errorText(err)

			return nil
		}

		return sessionChanged("")
	}

	m.busy = true
	ctx := m.ctx

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return authActionResultMsg{err: session.SignOut(ctx)}
	})
}

func (m *Products) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Products) clampCursor() {
	count := len(m.engine.CurrentDisplayList())
	m.cursor = max(0, min(m.cursor, count-1))

	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}

	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

func (m *Products) visibleRows() int {
	if m.height <= 0 {
		return 10
	}

	return max(1, m.height-productsChromeHeight)
}

// Engine exposes the catalog engine, e.g. for tests.
func (m *Products) Engine() *catalog.Engine {
	return m.engine
}

// Cursor returns the highlighted row.
func (m *Products) Cursor() int {
	return m.cursor
}

// Loading reports whether the catalog is still being fetched.
func (m *Products) Loading() bool {
	return m.loading
}

// CategoriesOpen reports whether the category menu is shown.
func (m *Products) CategoriesOpen() bool {
	return m.categoriesOpen
}

// SortOpen reports whether the sort modal is shown.
func (m *Products) SortOpen() bool {
	return m.sortOpen
}

// SelectedProduct returns the highlighted product.
func (m *Products) SelectedProduct() (domain.Product, bool) {
	list := m.engine.CurrentDisplayList()
	if m.cursor < 0 || m.cursor >= len(list) {
		return domain.Product{}, false
	}

	return list[m.cursor], true
}

// View implements tea.Model.
func (m *Products) View() string {
	sections := []string{m.renderHeader()}

	switch {
	case m.help.IsVisible():
		sections = append(sections, m.help.View())
	case m.loading:
		sections = append(sections, "", m.spinner.View()+" Loading...")
	case m.loadErr != "" && len(m.engine.FullSet()) == 0:
		sections = append(sections, "",
			m.styles.StatusIcon("error")+" "+m.styles.ErrorText.Render(m.loadErr),
			m.styles.MutedText.Render("Press r to retry"))
	default:
		if m.loadErr != "" {
			sections = append(sections, m.styles.StatusIcon("error")+" "+m.styles.ErrorText.Render(m.loadErr))
		}

		sections = append(sections, m.renderSelectionBar())

		switch {
		case m.categoriesOpen:
			sections = append(sections, m.renderCategoryMenu())
		case m.sortOpen:
			sections = append(sections, m.renderSortModal())
		default:
			sections = append(sections, m.renderList())
		}
	}

	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Products) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(m.styles.Primary).Render("storefront")

	action := "Logout"
	if !m.session.State().HasToken() {
		action = "Login"
	}

	return m.styles.Header.Render(title + "   " + m.styles.Keybinding("o", action))
}

func (m *Products) renderSelectionBar() string {
	category := m.engine.ActiveCategory()
	chevron := "▾"

	if m.categoriesOpen {
		chevron = "▴"
	}

	bar := m.styles.Button.Render(category.Icon()+" "+category.Label()+" "+chevron) +
		m.styles.MutedText.Render("Sort: "+m.engine.ActiveSort().Label())

	if m.engine.IsFallback() && len(m.engine.FullSet()) > 0 {
		bar += "\n" + m.styles.WarningText.Render(fmt.Sprintf("No products in %s, showing everything", category.Label()))
	}

	return bar
}

func (m *Products) renderCategoryMenu() string {
	var b strings.Builder

	active := m.engine.ActiveCategory()

	for i, category := range domain.Categories() {
		prefix := "  "
		if i == m.categoryCursor {
			prefix = SelectedPrefix
		}

		line := category.Icon() + " " + category.Label()

		switch {
		case category == active:
			b.WriteString(prefix + m.styles.PrimaryText.Bold(true).Render(line))
		default:
			b.WriteString(prefix + line)
		}

		b.WriteString("\n")
	}

	return m.styles.Card.Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Products) renderSortModal() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Sort By"))
	b.WriteString("\n")

	active := m.engine.ActiveSort()

	for i, option := range domain.SortOptions() {
		prefix := "  "
		if i == m.sortCursor {
			prefix = SelectedPrefix
		}

		line := option.Label()
		if option == active {
			line = m.styles.PrimaryText.Render(line) + " " + m.styles.StatusIcon("success")
		}

		b.WriteString(prefix + line + "\n")
	}

	return m.styles.Modal.Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Products) renderList() string {
	list := m.engine.CurrentDisplayList()
	if len(list) == 0 {
		return m.styles.MutedText.Render("No products available")
	}

	titleWidth := maxTitleWidth
	if m.width > 0 {
		titleWidth = max(minTitleWidth, min(maxTitleWidth, m.width-40))
	}

	end := min(len(list), m.offset+m.visibleRows())

	rows := make([]string, 0, end-m.offset)

	for i := m.offset; i < end; i++ {
		product := list[i]
		title := runewidth.FillRight(runewidth.Truncate(product.Title, titleWidth, "…"), titleWidth)
		row := title + "  " +
			m.styles.Stars.Render(Stars(product.Rating.Rate)) + " " +
			m.styles.MutedText.Render(fmt.Sprintf("%-11s", RatingText(product.Rating))) + " " +
			m.styles.Price.Render(fmt.Sprintf("%10s", product.FormattedPrice()))

		if i == m.cursor {
			rows = append(rows, SelectedPrefix+row)
		} else {
			rows = append(rows, "  "+row)
		}
	}

	return strings.Join(rows, "\n")
}

func (m *Products) renderFooter() string {
	var actions []FooterAction

	switch {
	case m.categoriesOpen, m.sortOpen:
		actions = []FooterAction{
			{Key: "j/k", Action: "Move"},
			{Key: "enter", Action: "Apply"},
			{Key: "esc", Action: "Close"},
		}
	default:
		actions = []FooterAction{
			{Key: "j/k", Action: "Move"},
			{Key: "enter", Action: "Details"},
			{Key: "c", Action: "Categories"},
			{Key: "s", Action: "Sort"},
			{Key: "r", Action: "Reload"},
			{Key: "?", Action: "Help"},
			{Key: "q", Action: "Quit"},
		}
	}

	return RenderFooter(m.styles, m.width, actions)
}
