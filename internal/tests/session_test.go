package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tastybites-web/internal/backend"
	"tastybites-web/internal/domain"
	"tastybites-web/internal/mocks"
	"tastybites-web/internal/session"
)

func TestManager_RefreshCachesState(t *testing.T) {
	ctx := context.Background()
	sessionBackend := mocks.NewSessionBackend(t)
	manager := session.NewManager(sessionBackend)

	state := loggedIn()
	sessionBackend.On("CheckSession", mock.Anything, "session=abc").Return(state, nil).Once()

	got, err := manager.Refresh(ctx, "session=abc")
	assert.NoError(t, err)
	assert.Equal(t, state, got)

	// Current reads the shared state without another backend call.
	cached, ok := manager.Current("session=abc")
	assert.True(t, ok)
	assert.Equal(t, state, cached)
}

func TestManager_RefreshErrorKeepsNothing(t *testing.T) {
	ctx := context.Background()
	sessionBackend := mocks.NewSessionBackend(t)
	manager := session.NewManager(sessionBackend)

	sessionBackend.On("CheckSession", mock.Anything, "session=abc").
		Return(domain.SessionState{}, errors.New("backend down")).Once()

	_, err := manager.Refresh(ctx, "session=abc")
	assert.Error(t, err)

	_, ok := manager.Current("session=abc")
	assert.False(t, ok)
}

func TestManager_LogoutDropsCachedState(t *testing.T) {
	ctx := context.Background()
	sessionBackend := mocks.NewSessionBackend(t)
	manager := session.NewManager(sessionBackend)

	sessionBackend.On("CheckSession", mock.Anything, "session=abc").Return(loggedIn(), nil).Once()
	sessionBackend.On("Logout", mock.Anything, "session=abc").
		Return(backend.AuthResult{Message: "Logged out successfully."}, nil).Once()

	_, err := manager.Refresh(ctx, "session=abc")
	assert.NoError(t, err)

	result, err := manager.Logout(ctx, "session=abc")
	assert.NoError(t, err)
	assert.Equal(t, "Logged out successfully.", result.Message)

	// The dead cookie's entry is gone, not kept as a zero state.
	_, ok := manager.Current("session=abc")
	assert.False(t, ok)
}

func TestManager_SubscribersHearTransitions(t *testing.T) {
	ctx := context.Background()
	sessionBackend := mocks.NewSessionBackend(t)
	manager := session.NewManager(sessionBackend)
	updates := manager.Subscribe()

	sessionBackend.On("CheckSession", mock.Anything, "session=abc").Return(loggedIn(), nil).Once()
	sessionBackend.On("Logout", mock.Anything, "session=abc").
		Return(backend.AuthResult{}, nil).Once()

	_, err := manager.Refresh(ctx, "session=abc")
	assert.NoError(t, err)
	assert.Equal(t, loggedIn(), <-updates)

	_, err = manager.Logout(ctx, "session=abc")
	assert.NoError(t, err)
	assert.False(t, (<-updates).Authenticated)
}

func TestManager_RepeatedRefreshDoesNotRenotify(t *testing.T) {
	ctx := context.Background()
	sessionBackend := mocks.NewSessionBackend(t)
	manager := session.NewManager(sessionBackend)
	updates := manager.Subscribe()

	sessionBackend.On("CheckSession", mock.Anything, "session=abc").Return(loggedIn(), nil).Twice()

	manager.Refresh(ctx, "session=abc")
	manager.Refresh(ctx, "session=abc")

	<-updates
	select {
	case extra := <-updates:
		t.Fatalf("unexpected second notification: %+v", extra)
	default:
	}
}
