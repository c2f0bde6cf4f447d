// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package application holds the storefront use cases built on the domain ports.
package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator"
	"github.com/janderssonse/storefront/internal/domain"
)

// ClaimsDecoder reads display claims from a sign-in token.
type ClaimsDecoder func(token string) (domain.Claims, error)

// AuthService owns the session state for one process. It is created before
// any screen, initialized once with Init, and torn down on exit.
//
// Every mutating operation sets IsLoading for its duration and clears it on
// return, whether or not the operation failed.
type AuthService struct {
	mu       sync.RWMutex
	store    domain.SessionStore
	gateway  domain.AuthGateway
	decode   ClaimsDecoder
	validate *validator.Validate
	state    domain.SessionState
	closed   bool
}

var _ domain.SessionReader = (*AuthService)(nil)

// NewAuthService creates an AuthService. The state reports IsLoading until Init returns.
func NewAuthService(store domain.SessionStore, gateway domain.AuthGateway, decode ClaimsDecoder) *AuthService {
	return &AuthService{
		store:    store,
		gateway:  gateway,
		decode:   decode,
		validate: validator.New(),
		state:    domain.SessionState{IsLoading: true},
	}
}

// Init restores the stored session.
func (s *AuthService) Init(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.finish()

	stored, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	s.mu.Lock()
	s.state.Token = stored.Token
	s.state.IsGuest = stored.IsGuest
	s.mu.Unlock()

	return nil
}

// Teardown drops the in-memory token. Later mutating calls fail with
// domain.ErrSessionClosed.
func (s *AuthService) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.state = domain.SessionState{}
}

// SignIn exchanges credentials for a token and stores it.
func (s *AuthService) SignIn(ctx context.Context, creds domain.Credentials) error {
	if creds.Blank() {
		return domain.ErrMissingCredentials
	}

	if err := s.begin(); err != nil {
		return err
	}
	defer s.finish()

	creds.Username = strings.TrimSpace(creds.Username)

	token, err := s.gateway.Login(ctx, creds)
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}

	if err := s.store.SaveToken(ctx, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	// A failed sign-in leaves no token on disk.
	if err := s.store.SaveGuest(ctx, false); err != nil {
		if clearErr := s.store.Clear(ctx); clearErr != nil {
			err = errors.Join(err, clearErr)
		}

		return fmt.Errorf("failed to store guest flag: %w", err)
	}

	s.mu.Lock()
	s.state.Token = token
	s.state.IsGuest = false
	s.state.JustLoggedOut = false
	s.mu.Unlock()

	return nil
}

// SignOut forgets the token and the guest flag.
func (s *AuthService) SignOut(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.finish()

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	s.mu.Lock()
	s.state.Token = ""
	s.state.IsGuest = false
	s.state.JustLoggedOut = true
	s.mu.Unlock()

	return nil
}

// ContinueAsGuest lets the user browse without signing in.
func (s *AuthService) ContinueAsGuest(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.finish()

	if err := s.store.SaveGuest(ctx, true); err != nil {
		return fmt.Errorf("failed to store guest flag: %w", err)
	}

	s.mu.Lock()
	s.state.IsGuest = true
	s.state.Token = ""
	s.state.JustLoggedOut = false
	s.mu.Unlock()

	return nil
}

// GoToLogin returns a guest to the sign-in screens. Storage is left as is.
func (s *AuthService) GoToLogin() error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.finish()

	s.mu.Lock()
	s.state.JustLoggedOut = false
	s.state.Token = ""
	s.state.IsGuest = false
	s.mu.Unlock()

	return nil
}

// SetJustLoggedOut sets the flag the login screen uses to greet a user who
// just signed out.
func (s *AuthService) SetJustLoggedOut(value bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.JustLoggedOut = value
}

// Register creates an account. It does not sign the user in.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.TrimSpace(reg.Email)

	if err := s.validate.Struct(reg); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidRegistration, describeValidation(err))
	}

	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.finish()

	user, err := s.gateway.Register(ctx, reg)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	return user, nil
}

// State returns a snapshot of the session.
func (s *AuthService) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// Claims decodes the held token. ok is false for guests, signed-out users and
// tokens that cannot be decoded.
func (s *AuthService) Claims() (domain.Claims, bool) {
	token := s.State().Token
	if token == "" || s.decode == nil {
		return domain.Claims{}, false
	}

	claims, err := s.decode(token)
	if err != nil {
		return domain.Claims{}, false
	}

	return claims, true
}

func (s *AuthService) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrSessionClosed
	}

	s.state.IsLoading = true

	return nil
}

func (s *AuthService) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.IsLoading = false
}

func describeValidation(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	messages := make([]string, 0, len(fieldErrs))

	for _, fieldErr := range fieldErrs {
		field := strings.ToLower(fieldErr.Field())

		switch fieldErr.Tag() {
		case "required":
			messages = append(messages, field+" is required")
		case "email":
			messages = append(messages, field+" must be a valid email address")
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", field, fieldErr.Param()))
		default:
			messages = append(messages, field+" is invalid")
		}
	}

	return strings.Join(messages, "; ")
}
