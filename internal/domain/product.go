// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package domain contains the storefront entities, closed enumerations and ports.
package domain

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Rating bounds as published by the upstream catalog.
const (
	MinRating = 0.0
	MaxRating = 5.0
)

var (
	// ErrNegativePrice is returned when a product carries a price below zero.
	ErrNegativePrice = errors.New("price must not be negative")
	// ErrRatingOutOfRange is returned when a rating mean is outside [0,5].
	ErrRatingOutOfRange = errors.New("rating must be between 0 and 5")
	// ErrNegativeRatingCount is returned when the number of ratings is negative.
	ErrNegativeRatingCount = errors.New("rating count must not be negative")
)

// ProductID is the upstream-assigned product identifier.
type ProductID int

// String implements fmt.Stringer.
func (id ProductID) String() string {
	return strconv.Itoa(int(id))
}

// ParseProductID parses a positive product identifier.
func ParseProductID(raw string) (ProductID, error) {
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidProductID, raw)
	}

	return ProductID(value), nil
}

// Rating is the aggregate customer rating of a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is a catalog entry. It is treated as immutable once loaded.
type Product struct {
	ID          ProductID       `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
	Rating      Rating          `json:"rating"`
}

// Validate reports values the upstream contract does not allow.
func (p Product) Validate() error {
	if p.Price.IsNegative() {
		return fmt.Errorf("product %d: %w", p.ID, ErrNegativePrice)
	}

	if p.Rating.Rate < MinRating || p.Rating.Rate > MaxRating {
		return fmt.Errorf("product %d: %w", p.ID, ErrRatingOutOfRange)
	}

	if p.Rating.Count < 0 {
		return fmt.Errorf("product %d: %w", p.ID, ErrNegativeRatingCount)
	}

	return nil
}

// FormattedPrice renders the price the way the storefront displays it.
func (p Product) FormattedPrice() string {
	return "$" + p.Price.StringFixed(2)
}
