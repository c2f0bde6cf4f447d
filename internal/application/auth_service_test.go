// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/janderssonse/storefront/internal/adapters/session"
	"github.com/janderssonse/storefront/internal/application"
	"github.com/janderssonse/storefront/internal/domain"
	"github.com/janderssonse/storefront/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errDisk = errors.New("disk full")

func newInitialized(t *testing.T, stored domain.StoredSession, gateway domain.AuthGateway) (*application.AuthService, *session.MemoryStore) {
	t.Helper()

	store := session.NewMemoryStore(stored)
	svc := application.NewAuthService(store, gateway, nil)
	require.NoError(t, svc.Init(context.Background()))

	return svc, store
}

func TestAuthService_Init(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stored domain.StoredSession
		want   domain.SessionState
	}{
		{name: "nothing stored", want: domain.SessionState{}},
		{name: "token stored", stored: domain.StoredSession{Token: "t"}, want: domain.SessionState{Token: "t"}},
		{name: "guest stored", stored: domain.StoredSession{IsGuest: true}, want: domain.SessionState{IsGuest: true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := application.NewAuthService(session.NewMemoryStore(tc.stored), &testutil.MockAuthGateway{}, nil)
			assert.True(t, svc.State().IsLoading)

			require.NoError(t, svc.Init(context.Background()))
			assert.Equal(t, tc.want, svc.State())
		})
	}
}

func TestAuthService_InitFailureStopsLoading(t *testing.T) {
	t.Parallel()

	store := &testutil.MockSessionStore{}
	store.On("Load", mock.Anything).Return(domain.StoredSession{}, errDisk).Once()

	svc := application.NewAuthService(store, &testutil.MockAuthGateway{}, nil)

	err := svc.Init(context.Background())
	require.ErrorIs(t, err, errDisk)
	assert.False(t, svc.State().IsLoading)
	assert.False(t, svc.State().Authenticated())
	store.AssertExpectations(t)
}

func TestAuthService_SignIn(t *testing.T) {
	t.Parallel()

	gateway := &testutil.MockAuthGateway{}
	gateway.On("Login", mock.Anything, domain.Credentials{Username: "johnd", Password: "m38rmF$"}).Return("jwt-token", nil).Once()

	svc, store := newInitialized(t, domain.StoredSession{IsGuest: true}, gateway)
	svc.SetJustLoggedOut(true)

	require.NoError(t, svc.SignIn(context.Background(), domain.Credentials{Username: " johnd ", Password: "m38rmF$"}))

	assert.Equal(t, domain.SessionState{Token: "jwt-token"}, svc.State())

	stored, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StoredSession{Token: "jwt-token"}, stored)
	gateway.AssertExpectations(t)
}

func TestAuthService_SignInBlankFields(t *testing.T) {
	t.Parallel()

	gateway := &testutil.MockAuthGateway{}
	svc, _ := newInitialized(t, domain.StoredSession{}, gateway)

	for _, creds := range []domain.Credentials{{}, {Username: "johnd"}, {Password: "x"}, {Username: "  ", Password: "x"}} {
		err := svc.SignIn(context.Background(), creds)
		require.ErrorIs(t, err, domain.ErrMissingCredentials)
		assert.Equal(t, "please enter both username and password", err.Error())
	}

	gateway.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestAuthService_SignInRejected(t *testing.T) {
	t.Parallel()

	gateway := &testutil.MockAuthGateway{}
	gateway.On("Login", mock.Anything, mock.Anything).Return("", domain.ErrInvalidCredentials).Once()

	svc, store := newInitialized(t, domain.StoredSession{}, gateway)

	err := svc.SignIn(context.Background(), domain.Credentials{Username: "johnd", Password: "nope"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	state := svc.State()
	assert.False(t, state.IsLoading)
	assert.False(t, state.HasToken())

	stored, _ := store.Load(context.Background())
	assert.Empty(t, stored.Token)
}

func TestAuthService_SignInStoreFailure(t *testing.T) {
	t.Parallel()

	gateway := &testutil.MockAuthGateway{}
	gateway.On("Login", mock.Anything, mock.Anything).Return("tok", nil).Once()

	store := &testutil.MockSessionStore{}
	store.On("Load", mock.Anything).Return(domain.StoredSession{}, nil).Once()
	store.On("SaveToken", mock.Anything, "tok").Return(errDisk).Once()

	svc := application.NewAuthService(store, gateway, nil)
	require.NoError(t, svc.Init(context.Background()))

	err := svc.SignIn(context.Background(), domain.Credentials{Username: "a", Password: "b"})
	require.ErrorIs(t, err, errDisk)
	assert.False(t, svc.State().HasToken())
	assert.False(t, svc.State().IsLoading)
	store.AssertExpectations(t)
}

func TestAuthService_SignInGuestFlagFailureClearsToken(t *testing.T) {
	t.Parallel()

	gateway := &testutil.MockAuthGateway{}
	gateway.On("Login", mock.Anything, mock.Anything).Return("tok", nil).Once()

	store := &testutil.MockSessionStore{}
	store.On("Load", mock.Anything).Return(domain.StoredSession{}, nil).Once()
	store.On("SaveToken", mock.Anything, "tok").Return(nil).Once()
	store.On("SaveGuest", mock.Anything, false).Return(errDisk).Once()
	store.On("Clear", mock.Anything).Return(nil).Once()

	svc := application.NewAuthService(store, gateway, nil)
	require.NoError(t, svc.Init(context.Background()))

	err := svc.SignIn(context.Background(), domain.Credentials{Username: "a", Password: "b"})
	require.ErrorIs(t, err, errDisk)
	assert.False(t, svc.State().HasToken())
	store.AssertExpectations(t)
}

func TestAuthService_SignOut(t *testing.T) {
	t.Parallel()

	svc, store := newInitialized(t, domain.StoredSession{Token: "t", IsGuest: true}, &testutil.MockAuthGateway{})

	require.NoError(t, svc.SignOut(context.Background()))

	assert.Equal(t, domain.SessionState{JustLoggedOut: true}, svc.State())

	stored, _ := store.Load(context.Background())
	assert.Equal(t, domain.StoredSession{}, stored)
}

func TestAuthService_ContinueAsGuest(t *testing.T) {
	t.Parallel()

	svc, store := newInitialized(t, domain.StoredSession{}, &testutil.MockAuthGateway{})
	svc.SetJustLoggedOut(true)

	require.NoError(t, svc.ContinueAsGuest(context.Background()))

	assert.Equal(t, domain.SessionState{IsGuest: true}, svc.State())
	assert.True(t, svc.State().Authenticated())

	stored, _ := store.Load(context.Background())
	assert.True(t, stored.IsGuest)
}

func TestAuthService_GoToLoginLeavesStorage(t *testing.T) {
	t.Parallel()

	svc, store := newInitialized(t, domain.StoredSession{IsGuest: true}, &testutil.MockAuthGateway{})

	require.NoError(t, svc.GoToLogin())

	assert.Equal(t, domain.SessionState{}, svc.State())

	stored, _ := store.Load(context.Background())
	assert.True(t, stored.IsGuest)
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	valid := domain.Registration{Username: "ada", Email: "ada@example.com", Password: "engine1"}

	tests := []struct {
		name        string
		reg         domain.Registration
		errContains string
	}{
		{name: "valid", reg: valid},
		{name: "missing username", reg: domain.Registration{Email: "ada@example.com", Password: "engine1"}, errContains: "username is required"},
		{name: "bad email", reg: domain.Registration{Username: "ada", Email: "ada", Password: "engine1"}, errContains: "email must be a valid email address"},
		{name: "short password", reg: domain.Registration{Username: "ada", Email: "ada@example.com", Password: "abc"}, errContains: "password must be at least 6 characters"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gateway := &testutil.MockAuthGateway{}
			gateway.On("Register", mock.Anything, valid).Return(&domain.User{ID: 7, Username: "ada"}, nil).Maybe()

			svc, _ := newInitialized(t, domain.StoredSession{}, gateway)

			user, err := svc.Register(context.Background(), tc.reg)
			if tc.errContains != "" {
				require.ErrorIs(t, err, domain.ErrInvalidRegistration)
				assert.Contains(t, err.Error(), tc.errContains)
				gateway.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 7, user.ID)
			assert.False(t, svc.State().HasToken(), "registering does not sign in")
		})
	}
}

func TestAuthService_Teardown(t *testing.T) {
	t.Parallel()

	svc, _ := newInitialized(t, domain.StoredSession{Token: "t"}, &testutil.MockAuthGateway{})

	svc.Teardown()

	assert.Equal(t, domain.SessionState{}, svc.State())
	require.ErrorIs(t, svc.SignOut(context.Background()), domain.ErrSessionClosed)
	require.ErrorIs(t, svc.ContinueAsGuest(context.Background()), domain.ErrSessionClosed)
	require.ErrorIs(t, svc.GoToLogin(), domain.ErrSessionClosed)
	require.ErrorIs(t, svc.Init(context.Background()), domain.ErrSessionClosed)
	require.ErrorIs(t, svc.SignIn(context.Background(), domain.Credentials{Username: "a", Password: "b"}), domain.ErrSessionClosed)
}

func TestAuthService_Claims(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	decode := func(token string) (domain.Claims, error) {
		if token != "good" {
			return domain.Claims{}, errors.New("bad token")
		}

		return domain.Claims{Subject: "1", Username: "johnd", IssuedAt: issued}, nil
	}

	guest := application.NewAuthService(session.NewMemoryStore(domain.StoredSession{IsGuest: true}), nil, decode)
	require.NoError(t, guest.Init(context.Background()))

	_, ok := guest.Claims()
	assert.False(t, ok)

	signedIn := application.NewAuthService(session.NewMemoryStore(domain.StoredSession{Token: "good"}), nil, decode)
	require.NoError(t, signedIn.Init(context.Background()))

	claims, ok := signedIn.Claims()
	require.True(t, ok)
	assert.Equal(t, "johnd", claims.Username)

	broken := application.NewAuthService(session.NewMemoryStore(domain.StoredSession{Token: "garbage"}), nil, decode)
	require.NoError(t, broken.Init(context.Background()))

	_, ok = broken.Claims()
	assert.False(t, ok)
}
