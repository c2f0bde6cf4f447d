// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	cliAdapter "github.com/janderssonse/storefront/internal/adapters/cli"
	"github.com/janderssonse/storefront/internal/application"
	"github.com/janderssonse/storefront/internal/domain"
)

// CatalogHandler runs the products and categories commands.
type CatalogHandler struct {
	*BaseHandler

	service  *application.CatalogService
	wordWrap int
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(base *BaseHandler, service *application.CatalogService, wordWrap int) *CatalogHandler {
	return &CatalogHandler{BaseHandler: base, service: service, wordWrap: wordWrap}
}

// List prints the derived product list.
func (h *CatalogHandler) List(ctx context.Context, query application.ListQuery) error {
	ctx, cancel := h.WithTimeout(ctx)
	defer cancel()

	h.Console.Progressf("Loading catalog...")

	result, err := h.service.ListProducts(ctx, query)
	if err != nil {
		return err
	}

	if result.Fallback {
		h.Console.Warningf("No products in %s, showing everything", query.Category.Label())
	}

	if err := h.Output.Products(result); err != nil {
		return fmt.Errorf("failed to write products: %w", err)
	}

	if h.Output.Format() == cliAdapter.TextFormat && !h.Quiet {
		h.Console.Progressf("%d products (%s, %s)", result.Total, query.Category.Label(), query.Sort.Label())
	}

	return nil
}

// Show prints one product. In text mode the description is rendered as
// markdown.
func (h *CatalogHandler) Show(ctx context.Context, id domain.ProductID) error {
	ctx, cancel := h.WithTimeout(ctx)
	defer cancel()

	product, err := h.service.Product(ctx, id)
	if err != nil {
		return err
	}

	description := ""
	if h.Output.Format() == cliAdapter.TextFormat {
		description = h.renderDescription(product.Description)
	}

	if err := h.Output.Product(product, description); err != nil {
		return fmt.Errorf("failed to write product: %w", err)
	}

	return nil
}

// Categories prints the category menu.
func (h *CatalogHandler) Categories() error {
	categories := h.service.Categories()

	if h.JSON {
		return h.Output.Success("", categories)
	}

	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []string{c.ID, c.Label, c.Tag})
	}

	return h.Output.Table([]string{"ID", "LABEL", "UPSTREAM TAG"}, rows)
}

func (h *CatalogHandler) renderDescription(text string) string {
	style := glamour.WithStandardStyle("notty")
	if h.Console.UseColor() {
		style = glamour.WithAutoStyle()
	}

	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(h.wordWrap))
	if err != nil {
		return text
	}

	rendered, err := renderer.Render(text)
	if err != nil {
		return text
	}

	return strings.Trim(rendered, "\n")
}
