// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package session persists the sign-in token and guest flag between runs.
package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/janderssonse/storefront/internal/domain"
	"github.com/pelletier/go-toml/v2"
)

const (
	// FileName is the session file inside the state directory.
	FileName = "session.toml"

	lockRetryDelay = 50 * time.Millisecond
	fileMode       = 0o600
	dirMode        = 0o700
)

// FileStore keeps the session in a TOML file. Writers hold an exclusive
// flock on a sibling lock file so concurrent storefront processes do not
// interleave updates. The mutex covers goroutines sharing one store, which
// the flock alone does not.
type FileStore struct {
	mu   sync.Mutex
	path string
	lock *flock.Flock
}

var _ domain.SessionStore = (*FileStore)(nil)

// NewFileStore stores the session in dir/session.toml.
func NewFileStore(dir string) *FileStore {
	path := filepath.Join(dir, FileName)

	return &FileStore{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the session file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load returns the stored session. A missing file is an empty session.
func (s *FileStore) Load(ctx context.Context) (domain.StoredSession, error) {
	if _, err := os.Stat(filepath.Dir(s.path)); errors.Is(err, fs.ErrNotExist) {
		return domain.StoredSession{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	locked, err := s.lock.TryRLockContext(ctx, lockRetryDelay)
	if err != nil {
		return domain.StoredSession{}, fmt.Errorf("failed to lock session file: %w", err)
	}

	if !locked {
		return domain.StoredSession{}, fmt.Errorf("failed to lock session file %s", s.path)
	}

	defer func() {
		_ = s.lock.Unlock()
	}()

	return s.read()
}

// SaveToken stores the sign-in token, keeping the guest flag.
func (s *FileStore) SaveToken(ctx context.Context, token string) error {
	return s.update(ctx, func(stored *domain.StoredSession) {
		stored.Token = token
	})
}

// SaveGuest stores the guest flag, keeping the token.
func (s *FileStore) SaveGuest(ctx context.Context, guest bool) error {
	return s.update(ctx, func(stored *domain.StoredSession) {
		stored.IsGuest = guest
	})
}

// Clear removes the session file.
func (s *FileStore) Clear(ctx context.Context) error {
	if _, err := os.Stat(filepath.Dir(s.path)); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err := s.acquire(ctx); err != nil {
		return err
	}

	defer s.release()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	return nil
}

func (s *FileStore) update(ctx context.Context, mutate func(*domain.StoredSession)) error {
	if err := os.MkdirAll(filepath.Dir(s.path), dirMode); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	if err := s.acquire(ctx); err != nil {
		return err
	}

	defer s.release()

	stored, err := s.read()
	if err != nil {
		return err
	}

	mutate(&stored)

	return s.write(stored)
}

// acquire takes the in-process mutex and the exclusive flock. Callers
// release both with s.release.
func (s *FileStore) acquire(ctx context.Context) error {
	s.mu.Lock()

	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		s.mu.Unlock()

		return fmt.Errorf("failed to lock session file: %w", err)
	}

	if !locked {
		s.mu.Unlock()

		return fmt.Errorf("failed to lock session file %s", s.path)
	}

	return nil
}

func (s *FileStore) release() {
	_ = s.lock.Unlock()

	s.mu.Unlock()
}

func (s *FileStore) read() (domain.StoredSession, error) {
	var stored domain.StoredSession

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return stored, nil
	}

	if err != nil {
		return stored, fmt.Errorf("failed to read session: %w", err)
	}

	if err := toml.Unmarshal(data, &stored); err != nil {
		return domain.StoredSession{}, fmt.Errorf("failed to parse session file %s: %w", s.path, err)
	}

	return stored, nil
}

func (s *FileStore) write(stored domain.StoredSession) error {
	data, err := toml.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create session file: %w", err)
	}

	tmpName := tmp.Name()

	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("failed to write session: %w", err)
	}

	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("failed to set session permissions: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}

	return nil
}
