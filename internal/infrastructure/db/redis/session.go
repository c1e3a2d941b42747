package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/probooking/probooking-api/internal/core/domain"
)

// SessionStore keeps the session slot in Redis under a fixed key. Clear also
// sweeps temp-tagged derived entries so a logout leaves no caches behind.
type SessionStore struct {
	client *redis.Client
	key    string
}

// NewSessionStore creates a SessionStore. An empty key falls back to the
// fixed slot key.
func NewSessionStore(client *redis.Client, key string) *SessionStore {
	if key == "" {
		key = domain.SessionKey
	}
	return &SessionStore{client: client, key: key}
}

func (s *SessionStore) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *SessionStore) Load(ctx context.Context) (string, error) {
	tok, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrNoSession
		}
		return "", fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return tok, nil
}

// Clear removes the slot and every derived temp-tagged key. Clearing when
// nothing is set is a no-op success.
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	iter := s.client.Scan(ctx, 0, domain.TempKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}
