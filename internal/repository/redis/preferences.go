package redis

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// PreferenceStore persists per-user settings objects as JSON under a
// fixed key namespace. Values are opaque to the store; the settings
// service owns the set of valid names.
type PreferenceStore struct {
	rdb *redis.Client
}

func NewPreferenceStore(rdb *redis.Client) *PreferenceStore {
	return &PreferenceStore{rdb: rdb}
}

func (s *PreferenceStore) Get(ctx context.Context, userID uuid.UUID, name string) (json.RawMessage, bool, error) {
	v, err := s.rdb.Get(ctx, KeyPreference(userID, name)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return json.RawMessage(v), true, nil
}

func (s *PreferenceStore) Set(ctx context.Context, userID uuid.UUID, name string, value json.RawMessage) error {
	// Preferences survive sessions; no TTL.
	return s.rdb.Set(ctx, KeyPreference(userID, name), string(value), 0).Err()
}
