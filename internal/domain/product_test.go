// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/janderssonse/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductValidate(t *testing.T) {
	t.Parallel()

	valid := domain.Product{
		ID:     1,
		Title:  "Backpack",
		Price:  decimal.RequireFromString("109.95"),
		Rating: domain.Rating{Rate: 3.9, Count: 120},
	}

	tests := []struct {
		name    string
		mutate  func(p *domain.Product)
		wantErr error
	}{
		{name: "valid", mutate: func(*domain.Product) {}},
		{name: "free is fine", mutate: func(p *domain.Product) { p.Price = decimal.Zero }},
		{name: "negative price", mutate: func(p *domain.Product) { p.Price = decimal.NewFromInt(-1) }, wantErr: domain.ErrNegativePrice},
		{name: "rating above five", mutate: func(p *domain.Product) { p.Rating.Rate = 5.1 }, wantErr: domain.ErrRatingOutOfRange},
		{name: "rating below zero", mutate: func(p *domain.Product) { p.Rating.Rate = -0.5 }, wantErr: domain.ErrRatingOutOfRange},
		{name: "negative count", mutate: func(p *domain.Product) { p.Rating.Count = -3 }, wantErr: domain.ErrNegativeRatingCount},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := valid
			tc.mutate(&p)

			err := p.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestProductDecodesPriceExactly(t *testing.T) {
	t.Parallel()

	var p domain.Product

	err := json.Unmarshal([]byte(`{"id":9,"title":"Drive","price":64.1,"category":"electronics","rating":{"rate":3.3,"count":203}}`), &p)
	require.NoError(t, err)

	assert.Equal(t, domain.ProductID(9), p.ID)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("64.1")))
	assert.Equal(t, "$64.10", p.FormattedPrice())
	assert.Equal(t, 203, p.Rating.Count)
}

func TestParseProductID(t *testing.T) {
	t.Parallel()

	id, err := domain.ParseProductID("17")
	require.NoError(t, err)
	assert.Equal(t, domain.ProductID(17), id)
	assert.Equal(t, "17", id.String())

	for _, raw := range []string{"", "0", "-2", "abc", "1.5"} {
		_, err := domain.ParseProductID(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidProductID, raw)
	}
}

func TestCredentialsBlank(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.Credentials{}.Blank())
	assert.True(t, domain.Credentials{Username: "johnd", Password: "  "}.Blank())
	assert.True(t, domain.Credentials{Username: " ", Password: "secret"}.Blank())
	assert.False(t, domain.Credentials{Username: "johnd", Password: "m38rmF$"}.Blank())
}

func TestSessionStateAuthenticated(t *testing.T) {
	t.Parallel()

	assert.False(t, domain.SessionState{}.Authenticated())
	assert.True(t, domain.SessionState{IsGuest: true}.Authenticated())
	assert.True(t, domain.SessionState{Token: "abc"}.Authenticated())
	assert.False(t, domain.SessionState{JustLoggedOut: true}.HasToken())
}
