// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"fmt"
	"strings"
)

// Category is the closed set of catalog filters offered to the user.
// Values outside this set cannot reach the catalog engine.
type Category int

// Category values in display order.
const (
	CategoryAll Category = iota
	CategoryMen
	CategoryWomen
	CategoryJewelry
	CategoryElectronics
)

type categoryInfo struct {
	id    string
	label string
	icon  string
	tag   string // upstream category tag
}

var categoryTable = [...]categoryInfo{ //nolint:gochecknoglobals
	CategoryAll:         {id: "all", label: "All", icon: "▦", tag: "all"},
	CategoryMen:         {id: "men's clothing", label: "Men", icon: "♂", tag: "men's clothing"},
	CategoryWomen:       {id: "women's clothing", label: "Women", icon: "♀", tag: "women's clothing"},
	CategoryJewelry:     {id: "jewelry", label: "Jewelry", icon: "◆", tag: "jewelery"},
	CategoryElectronics: {id: "electronics", label: "Electronics", icon: "⌁", tag: "electronics"},
}

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{CategoryAll, CategoryMen, CategoryWomen, CategoryJewelry, CategoryElectronics}
}

func (c Category) info() categoryInfo {
	if c < CategoryAll || int(c) >= len(categoryTable) {
		return categoryTable[CategoryAll]
	}

	return categoryTable[c]
}

// ID returns the stable identifier used on the command line and in config files.
func (c Category) ID() string { return c.info().id }

// Label returns the short display label.
func (c Category) Label() string { return c.info().label }

// Icon returns the glyph shown next to the label.
func (c Category) Icon() string { return c.info().icon }

// Tag returns the upstream category tag the filter compares against.
func (c Category) Tag() string { return c.info().tag }

// String implements fmt.Stringer.
func (c Category) String() string { return c.Label() }

// Matches reports whether the product belongs to the category.
// All matches unconditionally, every other category compares tags exactly.
func (c Category) Matches(p Product) bool {
	if c == CategoryAll {
		return true
	}

	return p.Category == c.Tag()
}

// ParseCategory resolves an identifier or label, case-insensitively.
func ParseCategory(raw string) (Category, error) {
	needle := strings.ToLower(strings.TrimSpace(raw))
	if needle == "" {
		return CategoryAll, nil
	}

	for _, c := range Categories() {
		info := c.info()
		if needle == info.id || needle == strings.ToLower(info.label) || needle == info.tag {
			return c, nil
		}
	}

	return CategoryAll, fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
}
