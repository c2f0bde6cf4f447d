// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"math"
	"strconv"
	"strings"

	"github.com/janderssonse/storefront/internal/domain"
)

// Star glyphs.
const (
	StarFull  = "★"
	StarHalf  = "⯪"
	StarEmpty = "☆"
)

// StarCounts splits a rating into full, half and empty stars out of five.
// A fractional part of .5 or more earns a half star.
func StarCounts(rate float64) (full, half, empty int) {
	rate = math.Max(domain.MinRating, math.Min(domain.MaxRating, rate))

	whole := math.Floor(rate)
	full = int(whole)

	if rate-whole >= 0.5 {
		half = 1
	}

	empty = int(domain.MaxRating) - full - half

	return full, half, empty
}

// Stars renders the five-star strip for a rating.
func Stars(rate float64) string {
	full, half, empty := StarCounts(rate)

	return strings.Repeat(StarFull, full) + strings.Repeat(StarHalf, half) + strings.Repeat(StarEmpty, empty)
}

// RatingText renders "4.1 (259)".
func RatingText(rating domain.Rating) string {
	return strconv.FormatFloat(rating.Rate, 'f', 1, 64) + " (" + strconv.Itoa(rating.Count) + ")"
}
