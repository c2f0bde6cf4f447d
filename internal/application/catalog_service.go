// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package application

import (
	"context"
	"fmt"
	"time"

	"github.com/janderssonse/storefront/internal/catalog"
	"github.com/janderssonse/storefront/internal/domain"
)

// CatalogService runs one-shot catalog queries for the command line.
type CatalogService struct {
	loader domain.ProductLoader
	now    func() time.Time
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(loader domain.ProductLoader) *CatalogService {
	return &CatalogService{loader: loader, now: time.Now}
}

// Loader exposes the product loader for screens that drive their own engine.
func (s *CatalogService) Loader() domain.ProductLoader {
	return s.loader
}

// ListQuery selects what ListProducts returns.
type ListQuery struct {
	Category domain.Category
	Sort     domain.SortOption
	// Strict disables the fallback to the full catalog when nothing matches.
	Strict bool
}

// ListProducts fetches the catalog and derives the list the products screen
// would show after picking the category and then the sort.
func (s *CatalogService) ListProducts(ctx context.Context, query ListQuery) (*domain.ListResult, error) {
	products, err := s.loader.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	engine := catalog.New()
	engine.SetFullSet(products)
	engine.SelectCategory(query.Category)
	engine.SelectSort(query.Sort)

	result := &domain.ListResult{
		Category:  query.Category.ID(),
		Sort:      query.Sort.ID(),
		Timestamp: s.now(),
	}

	if query.Strict {
		result.Products = engine.DisplayList()
	} else {
		result.Products = engine.CurrentDisplayList()
		result.Fallback = engine.IsFallback()
	}

	result.Total = len(result.Products)

	return result, nil
}

// Product fetches one product.
func (s *CatalogService) Product(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	product, err := s.loader.FetchByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	return product, nil
}

// Categories lists the category menu.
func (s *CatalogService) Categories() []domain.CategoryResult {
	categories := domain.Categories()
	out := make([]domain.CategoryResult, 0, len(categories))

	for _, c := range categories {
		out = append(out, domain.CategoryResult{ID: c.ID(), Label: c.Label(), Tag: c.Tag()})
	}

	return out
}
