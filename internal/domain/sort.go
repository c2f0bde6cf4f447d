// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"cmp"
	"fmt"
	"strings"
)

// SortOption is the closed set of orderings the catalog supports.
type SortOption int

// Sort options in the order the sort menu lists them.
const (
	SortDefault SortOption = iota
	SortPriceAscending
	SortPriceDescending
	SortRatingDescending
	SortNameAscending
)

var sortTable = [...]struct { //nolint:gochecknoglobals
	id    string
	label string
}{
	SortDefault:          {id: "default", label: "Default"},
	SortPriceAscending:   {id: "price-asc", label: "Price: Low to High"},
	SortPriceDescending:  {id: "price-desc", label: "Price: High to Low"},
	SortRatingDescending: {id: "rating", label: "Highest Rating"},
	SortNameAscending:    {id: "name", label: "Alphabetical"},
}

// SortOptions returns every sort option in menu order.
func SortOptions() []SortOption {
	return []SortOption{SortDefault, SortPriceAscending, SortPriceDescending, SortRatingDescending, SortNameAscending}
}

func (o SortOption) valid() bool {
	return o >= SortDefault && int(o) < len(sortTable)
}

// ID returns the command line identifier.
func (o SortOption) ID() string {
	if !o.valid() {
		return sortTable[SortDefault].id
	}

	return sortTable[o].id
}

// Label returns the menu label.
func (o SortOption) Label() string {
	if !o.valid() {
		return sortTable[SortDefault].label
	}

	return sortTable[o].label
}

// String implements fmt.Stringer.
func (o SortOption) String() string { return o.Label() }

// Compare orders two products under the option. SortDefault has no
// comparator and reports every pair as equal.
func (o SortOption) Compare(a, b Product) int {
	switch o {
	case SortPriceAscending:
		return a.Price.Cmp(b.Price)
	case SortPriceDescending:
		return b.Price.Cmp(a.Price)
	case SortRatingDescending:
		return cmp.Compare(b.Rating.Rate, a.Rating.Rate)
	case SortNameAscending:
		return strings.Compare(a.Title, b.Title)
	default:
		return 0
	}
}

// ParseSortOption resolves an identifier or label, case-insensitively.
func ParseSortOption(raw string) (SortOption, error) {
	needle := strings.ToLower(strings.TrimSpace(raw))
	if needle == "" {
		return SortDefault, nil
	}

	for _, o := range SortOptions() {
		if needle == sortTable[o].id || needle == strings.ToLower(sortTable[o].label) {
			return o, nil
		}
	}

	return SortDefault, fmt.Errorf("%w: %q", ErrUnknownSortOption, raw)
}
