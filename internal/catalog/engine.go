// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package catalog derives the product list shown to the user from the
// loaded catalog and the active category and sort selections.
package catalog

import (
	"slices"

	"github.com/janderssonse/storefront/internal/domain"
)

// Engine holds the catalog selection state for one screen visit.
//
// The displayed list always equals SortProducts(activeSort, Filter(activeCategory, full)).
// It is recomputed on every mutation and never edited directly. Engine is not
// safe for concurrent use; the owning screen serializes access.
type Engine struct {
	full           []domain.Product
	activeCategory domain.Category
	activeSort     domain.SortOption
	displayed      []domain.Product
}

// New returns an engine with an empty catalog and default selections.
func New() *Engine {
	return &Engine{
		activeCategory: domain.CategoryAll,
		activeSort:     domain.SortDefault,
	}
}

// SetFullSet replaces the catalog and re-derives the displayed list under
// the current category and sort.
func (e *Engine) SetFullSet(products []domain.Product) {
	e.full = slices.Clone(products)
	e.displayed = SortProducts(e.activeSort, Filter(e.activeCategory, e.full))
}

// SelectCategory activates a category filter and resets the sort to default.
func (e *Engine) SelectCategory(category domain.Category) {
	e.activeCategory = category
	e.activeSort = domain.SortDefault
	e.displayed = Filter(category, e.full)
}

// SelectSort activates a sort option. Non-default options reorder the
// currently displayed list; SortDefault re-derives the filtered list in
// catalog order.
func (e *Engine) SelectSort(option domain.SortOption) {
	e.activeSort = option

	if option == domain.SortDefault {
		e.displayed = Filter(e.activeCategory, e.full)

		return
	}

	e.displayed = SortProducts(option, e.displayed)
}

// CurrentDisplayList returns the list to render. An empty derived list
// falls back to the full catalog.
func (e *Engine) CurrentDisplayList() []domain.Product {
	if len(e.displayed) == 0 {
		return slices.Clone(e.full)
	}

	return slices.Clone(e.displayed)
}

// DisplayList returns the derived list without the empty-list fallback.
func (e *Engine) DisplayList() []domain.Product {
	return slices.Clone(e.displayed)
}

// IsFallback reports whether CurrentDisplayList is serving the full catalog
// because the derived list is empty.
func (e *Engine) IsFallback() bool {
	return len(e.displayed) == 0 && len(e.full) > 0
}

// FullSet returns a copy of the loaded catalog.
func (e *Engine) FullSet() []domain.Product {
	return slices.Clone(e.full)
}

// ActiveCategory returns the active category.
func (e *Engine) ActiveCategory() domain.Category {
	return e.activeCategory
}

// ActiveSort returns the active sort option.
func (e *Engine) ActiveSort() domain.SortOption {
	return e.activeSort
}

// Filter returns the products matching the category, in input order.
// The result is always a fresh slice.
func Filter(category domain.Category, products []domain.Product) []domain.Product {
	filtered := make([]domain.Product, 0, len(products))

	for _, p := range products {
		if category.Matches(p) {
			filtered = append(filtered, p)
		}
	}

	return filtered
}

// SortProducts returns a stably sorted copy. Products with equal keys keep
// their relative order; SortDefault returns the input order unchanged.
func SortProducts(option domain.SortOption, products []domain.Product) []domain.Product {
	sorted := slices.Clone(products)
	if sorted == nil {
		sorted = []domain.Product{}
	}

	if option == domain.SortDefault {
		return sorted
	}

	slices.SortStableFunc(sorted, option.Compare)

	return sorted
}

// Derive computes the displayed list for a category and sort in one step.
func Derive(category domain.Category, option domain.SortOption, products []domain.Product) []domain.Product {
	return SortProducts(option, Filter(category, products))
}
