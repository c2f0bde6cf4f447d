// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package testutil provides testify mocks for the domain ports.
package testutil

import (
	"context"

	"github.com/janderssonse/storefront/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockProductLoader mocks the ProductLoader port for testing.
type MockProductLoader struct {
	mock.Mock
}

// FetchAll mocks loading the catalog.
func (m *MockProductLoader) FetchAll(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if result := args.Get(0); result != nil {
		res, ok := result.([]domain.Product)
		if !ok {
			return nil, args.Error(1)
		}

		return res, args.Error(1)
	}

	return nil, args.Error(1)
}

// FetchByID mocks loading one product.
func (m *MockProductLoader) FetchByID(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if result := args.Get(0); result != nil {
		res, ok := result.(*domain.Product)
		if !ok {
			return nil, args.Error(1)
		}

		return res, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockAuthGateway mocks the AuthGateway port for testing.
type MockAuthGateway struct {
	mock.Mock
}

// Login mocks the token exchange.
func (m *MockAuthGateway) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	args := m.Called(ctx, creds)

	return args.String(0), args.Error(1)
}

// Register mocks account creation.
func (m *MockAuthGateway) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	args := m.Called(ctx, reg)
	if result := args.Get(0); result != nil {
		res, ok := result.(*domain.User)
		if !ok {
			return nil, args.Error(1)
		}

		return res, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockSessionStore mocks the SessionStore port for testing.
type MockSessionStore struct {
	mock.Mock
}

// Load mocks reading the stored session.
func (m *MockSessionStore) Load(ctx context.Context) (domain.StoredSession, error) {
	args := m.Called(ctx)

	stored, _ := args.Get(0).(domain.StoredSession)

	return stored, args.Error(1)
}

// SaveToken mocks persisting the token.
func (m *MockSessionStore) SaveToken(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

// SaveGuest mocks persisting the guest flag.
func (m *MockSessionStore) SaveGuest(ctx context.Context, guest bool) error {
	return m.Called(ctx, guest).Error(0)
}

// Clear mocks removing the stored session.
func (m *MockSessionStore) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
