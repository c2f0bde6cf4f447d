// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package fakestore_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/janderssonse/storefront/internal/adapters/fakestore"
	"github.com/janderssonse/storefront/internal/adapters/mockapi"
	"github.com/janderssonse/storefront/internal/adapters/network"
	"github.com/janderssonse/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newClient(t *testing.T) *fakestore.Client {
	t.Helper()

	srv, err := mockapi.New(mockapi.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client, err := fakestore.NewClient(ts.URL, network.GetHTTPClient(5*time.Second))
	require.NoError(t, err)

	return client
}

func stubClient(t *testing.T, handler http.HandlerFunc) *fakestore.Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := fakestore.NewClient(ts.URL+"/", ts.Client())
	require.NoError(t, err)

	return client
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	client, err := fakestore.NewClient("", nil)
	require.NoError(t, err)
	assert.Equal(t, fakestore.DefaultBaseURL, client.BaseURL())

	_, err = fakestore.NewClient("ftp://example.com", nil)
	require.Error(t, err)

	_, err = fakestore.NewClient("://bad", nil)
	require.Error(t, err)
}

func TestFetchAll(t *testing.T) {
	t.Parallel()

	products, err := newClient(t).FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 20)

	first := products[0]
	assert.Equal(t, domain.ProductID(1), first.ID)
	assert.Equal(t, "men's clothing", first.Category)
	assert.True(t, first.Price.Equal(decimal.RequireFromString("109.95")))
	assert.InDelta(t, 3.9, first.Rating.Rate, 0.0001)
	assert.Equal(t, 120, first.Rating.Count)
	assert.NotEmpty(t, first.Description)
	assert.NotEmpty(t, first.Image)
}

func TestFetchByID(t *testing.T) {
	t.Parallel()

	client := newClient(t)

	product, err := client.FetchByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "jewelery", product.Category)

	_, err = client.FetchByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestFetchByIDNotFoundStatus(t *testing.T) {
	t.Parallel()

	client := stubClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	})

	_, err := client.FetchByID(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestRequestHeaders(t *testing.T) {
	t.Parallel()

	var got http.Header

	client := stubClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	products, err := client.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)

	assert.Len(t, got.Get("X-Request-ID"), 36)
	assert.Contains(t, got.Get("User-Agent"), "storefront")
}

func TestUpstreamErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{name: "json message wins", status: http.StatusBadGateway, body: `{"message":"catalog offline"}`, wantMessage: "catalog offline"},
		{name: "plain text body", status: http.StatusServiceUnavailable, body: "maintenance", wantMessage: "maintenance"},
		{name: "html falls back to status", status: http.StatusInternalServerError, body: "<html>oops</html>", wantMessage: "Internal Server Error"},
		{name: "empty body", status: http.StatusTeapot, body: "", wantMessage: "I'm a teapot"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := stubClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := client.FetchAll(context.Background())
			require.Error(t, err)

			var apiErr *fakestore.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.wantMessage, apiErr.Message)
			assert.ErrorIs(t, err, domain.ErrUpstream)
		})
	}
}

func TestMalformedCatalog(t *testing.T) {
	t.Parallel()

	client := stubClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	})

	_, err := client.FetchAll(context.Background())
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestNetworkFailure(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	client, err := fakestore.NewClient(url, network.GetHTTPClient(time.Second))
	require.NoError(t, err)

	_, err = client.FetchAll(context.Background())
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
}

func TestCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newClient(t).FetchAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	client := newClient(t)

	token, err := client.Login(context.Background(), domain.Credentials{Username: mockapi.DemoUsername, Password: mockapi.DemoPassword})
	require.NoError(t, err)

	claims, err := fakestore.DecodeClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.Subject)
	assert.Equal(t, mockapi.DemoUsername, claims.Username)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt, time.Minute)

	_, err = client.Login(context.Background(), domain.Credentials{Username: mockapi.DemoUsername, Password: "wrong"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "username or password is incorrect")
}

func TestRegister(t *testing.T) {
	t.Parallel()

	client := newClient(t)

	user, err := client.Register(context.Background(), domain.Registration{Username: "grace", Email: "grace@example.com", Password: "cobol60"})
	require.NoError(t, err)
	assert.Equal(t, 2, user.ID)
	assert.Equal(t, "grace", user.Username)

	_, err = client.Register(context.Background(), domain.Registration{Username: "grace", Email: "grace@example.com", Password: "cobol60"})
	assert.ErrorIs(t, err, domain.ErrInvalidRegistration)
}

func TestRegisterIDOnlyResponse(t *testing.T) {
	t.Parallel()

	client := stubClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":11}`))
	})

	user, err := client.Register(context.Background(), domain.Registration{Username: "linus", Email: "l@example.com", Password: "kernel"})
	require.NoError(t, err)
	assert.Equal(t, domain.User{ID: 11, Username: "linus", Email: "l@example.com"}, *user)
}

func TestDecodeClaims(t *testing.T) {
	t.Parallel()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "abc",
		"user": "mor_2314",
		"iat":  1700000000,
	}).SignedString([]byte("whatever"))
	require.NoError(t, err)

	claims, err := fakestore.DecodeClaims(signed)
	require.NoError(t, err)
	assert.Equal(t, domain.Claims{
		Subject:  "abc",
		Username: "mor_2314",
		IssuedAt: time.Unix(1700000000, 0).UTC(),
	}, claims)

	_, err = fakestore.DecodeClaims("not-a-token")
	assert.Error(t, err)
}
