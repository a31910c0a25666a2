// Package storage is the durable client-side key/value store. It holds the
// session tokens and app settings under plain string keys; values are opaque
// bytes (JSON for structured settings) with no schema versioning.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Well-known keys.
const (
	KeyAuthToken    = "auth_token"
	KeyRefreshToken = "refresh_token"
	KeySyncSettings = "sync_settings"
	KeyLastSyncTime = "last_sync_time"
)

// Store is a persistent key/value store.
//
// Get returns (nil, nil) when the key is absent. Delete is idempotent.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error

	// Batch runs fn against a Store whose writes are applied atomically.
	Batch(ctx context.Context, fn func(s Store) error) error
}

// GetJSON decodes the value stored under key into v. It reports false when
// the key is absent.
func GetJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}
