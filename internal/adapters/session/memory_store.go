// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package session

import (
	"context"
	"sync"

	"github.com/janderssonse/storefront/internal/domain"
)

// MemoryStore keeps the session for the life of the process only.
type MemoryStore struct {
	mu     sync.Mutex
	stored domain.StoredSession
}

var _ domain.SessionStore = (*MemoryStore)(nil)

// NewMemoryStore returns a store preloaded with initial.
func NewMemoryStore(initial domain.StoredSession) *MemoryStore {
	return &MemoryStore{stored: initial}
}

// Load implements domain.SessionStore.
func (m *MemoryStore) Load(context.Context) (domain.StoredSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.stored, nil
}

// SaveToken implements domain.SessionStore.
func (m *MemoryStore) SaveToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stored.Token = token

	return nil
}

// SaveGuest implements domain.SessionStore.
func (m *MemoryStore) SaveGuest(_ context.Context, guest bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stored.IsGuest = guest

	return nil
}

// Clear implements domain.SessionStore.
func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stored = domain.StoredSession{}

	return nil
}
