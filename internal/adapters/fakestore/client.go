// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package fakestore implements the product loader and auth gateway ports
// against the fake store REST API.
package fakestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/janderssonse/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the public upstream.
const DefaultBaseURL = "https://fakestoreapi.com"

const (
	userAgent       = "storefront/1.0"
	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 4 << 20
	maxMessageBytes = 200
)

// APIError is a non-2xx upstream answer.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Client talks to the upstream. It implements domain.ProductLoader and
// domain.AuthGateway.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

var (
	_ domain.ProductLoader = (*Client)(nil)
	_ domain.AuthGateway   = (*Client)(nil)
)

// NewClient creates a client for baseURL. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{baseURL: parsed, http: httpClient}, nil
}

// BaseURL returns the upstream root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

type wireRating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

type wireProduct struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      wireRating      `json:"rating"`
}

func (w wireProduct) toDomain() domain.Product {
	return domain.Product{
		ID:          domain.ProductID(w.ID),
		Title:       w.Title,
		Price:       w.Price,
		Category:    w.Category,
		Description: w.Description,
		Image:       w.Image,
		Rating:      domain.Rating{Rate: w.Rating.Rate, Count: w.Rating.Count},
	}
}

// FetchAll returns the full catalog in upstream order.
func (c *Client) FetchAll(ctx context.Context) ([]domain.Product, error) {
	body, err := c.do(ctx, http.MethodGet, "/products", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	var wire []wireProduct
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w: %w", domain.ErrUpstream, err)
	}

	products := make([]domain.Product, 0, len(wire))
	for _, w := range wire {
		products = append(products, w.toDomain())
	}

	return products, nil
}

// FetchByID returns one product. Unknown ids map to domain.ErrProductNotFound.
func (c *Client) FetchByID(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	body, err := c.do(ctx, http.MethodGet, "/products/"+id.String(), nil)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return nil, fmt.Errorf("product %s: %w", id, domain.ErrProductNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to fetch product %s: %w", id, err)
	}

	// The upstream answers unknown ids with an empty 200 or a literal null.
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("product %s: %w", id, domain.ErrProductNotFound)
	}

	var wire wireProduct
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode product %s: %w: %w", id, domain.ErrUpstream, err)
	}

	product := wire.toDomain()

	return &product, nil
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	payload := map[string]string{"username": creds.Username, "password": creds.Password}

	body, err := c.do(ctx, http.MethodPost, "/auth/login", payload)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, apiErr.Message)
	}

	if err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}

	var out struct {
		Token string `json:"token"`
	}

	if err := json.Unmarshal(body, &out); err != nil || out.Token == "" {
		return "", fmt.Errorf("login failed: %w: no token in response", domain.ErrUpstream)
	}

	return out.Token, nil
}

// Register creates an account upstream.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	body, err := c.do(ctx, http.MethodPost, "/users", reg)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidRegistration, apiErr.Message)
	}

	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("registration failed: %w: %w", domain.ErrUpstream, err)
	}

	// The upstream echoes only the new id.
	if user.Username == "" {
		user.Username = reg.Username
	}

	if user.Email == "" {
		user.Email = reg.Email
	}

	return &user, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reader io.Reader

	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}

		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(requestIDHeader, uuid.NewString())

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", domain.ErrNetworkFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, body), Err: domain.ErrUpstream}
	}

	return body, nil
}

// errorMessage prefers the upstream "message" field, then a short plain-text
// body, then the status text.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}

	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}

	text := strings.TrimSpace(string(body))
	if text != "" && len(text) <= maxMessageBytes && !strings.HasPrefix(text, "<") && !strings.HasPrefix(text, "{") {
		return text
	}

	return http.StatusText(status)
}
