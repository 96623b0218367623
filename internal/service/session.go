package service

import (
	"CloudVault/model"
	"CloudVault/utils"
	"context"
	"fmt"
	"time"
)

const sessionKeyPrefix = "session:"

// SessionManager maps opaque tokens to a denormalized snapshot of the
// logged-in user. The cache entry is the sole authority for token
// validity: its TTL is fixed at login and never refreshed on access, so
// credential changes after login are not reflected until re-login.
type SessionManager struct {
	cache utils.Cache
	ttl   time.Duration
}

// NewSessionManager creates a session manager over a cache.
func NewSessionManager(cache utils.Cache, ttl time.Duration) *SessionManager {
	return &SessionManager{cache: cache, ttl: ttl}
}

// TTL returns the session lifetime.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Create stores the user snapshot and returns a new session token.
func (m *SessionManager) Create(ctx context.Context, user *model.User) (string, error) {
	token := utils.GetToken()
	if err := m.cache.Set(ctx, sessionKeyPrefix+token, user, m.ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Get resolves a token to the user snapshot taken at login.
func (m *SessionManager) Get(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	var user model.User
	if err := m.cache.Get(ctx, sessionKeyPrefix+token, &user); err != nil {
		return nil, ErrUnauthenticated
	}
	return &user, nil
}

// Destroy invalidates a token. Destroying an unknown token is a no-op.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.cache.Delete(ctx, sessionKeyPrefix+token)
}
