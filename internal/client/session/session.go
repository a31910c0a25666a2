// Package session holds the authentication context of the client: the access
// and refresh tokens, persisted in a storage.Store and cached in memory.
//
// The in-memory copy of the access token is authoritative once set; the store
// is consulted only when the cache is empty (for example right after start-up,
// before anything has been read). A Session is created once at application
// start and injected into the HTTP layer.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/etimsclient/internal/client/storage"
	"github.com/golang-jwt/jwt/v5"
)

type Session struct {
	store storage.Store

	mu          sync.RWMutex
	accessToken string
}

func New(store storage.Store) *Session {
	return &Session{store: store}
}

// AccessToken resolves the bearer token for an outgoing request: the cached
// value first, the persisted one second. An empty string means the request
// goes out unauthenticated.
func (s *Session) AccessToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	token := s.accessToken
	s.mu.RUnlock()
	if token != "" {
		return token, nil
	}

	raw, err := s.store.Get(ctx, storage.KeyAuthToken)
	if err != nil {
		return "", fmt.Errorf("read access token: %w", err)
	}
	return string(raw), nil
}

// RefreshToken returns the persisted refresh token, or "" when there is none.
func (s *Session) RefreshToken(ctx context.Context) (string, error) {
	raw, err := s.store.Get(ctx, storage.KeyRefreshToken)
	if err != nil {
		return "", fmt.Errorf("read refresh token: %w", err)
	}
	return string(raw), nil
}

// Start persists a fresh token pair and caches the access token. Both keys
// are written in one batch.
func (s *Session) Start(ctx context.Context, access, refresh string) error {
	err := s.store.Batch(ctx, func(tx storage.Store) error {
		if err := tx.Set(ctx, storage.KeyAuthToken, []byte(access)); err != nil {
			return err
		}
		return tx.Set(ctx, storage.KeyRefreshToken, []byte(refresh))
	})
	if err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}

	s.mu.Lock()
	s.accessToken = access
	s.mu.Unlock()
	return nil
}

// Rotate replaces the access token after a refresh. The refresh token is
// only replaced when a new one is given.
func (s *Session) Rotate(ctx context.Context, access, refresh string) error {
	if refresh != "" {
		return s.Start(ctx, access, refresh)
	}
	if err := s.store.Set(ctx, storage.KeyAuthToken, []byte(access)); err != nil {
		return fmt.Errorf("save access token: %w", err)
	}
	s.mu.Lock()
	s.accessToken = access
	s.mu.Unlock()
	return nil
}

// Clear destroys the session in memory and in the store. The in-memory copy
// is dropped even when the store fails, so no further request carries it.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.accessToken = ""
	s.mu.Unlock()

	if err := s.store.Delete(ctx, storage.KeyAuthToken, storage.KeyRefreshToken); err != nil {
		return fmt.Errorf("clear tokens: %w", err)
	}
	return nil
}

// Authenticated reports whether a token can be resolved.
func (s *Session) Authenticated(ctx context.Context) bool {
	token, err := s.AccessToken(ctx)
	return err == nil && token != ""
}

// Expiry returns the exp claim of the current access token. The token is
// decoded without verifying its signature; ok is false when there is no token,
// when it is not a JWT, or when it carries no exp claim.
func (s *Session) Expiry(ctx context.Context) (exp time.Time, ok bool) {
	token, err := s.AccessToken(ctx)
	if err != nil || token == "" {
		return time.Time{}, false
	}
	return TokenExpiry(token)
}

// TokenExpiry extracts the exp claim from an unverified JWT.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
