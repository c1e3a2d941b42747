package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptLimiter counts failed logins per email in Redis.
// Key format: attempts:<email>, expiring after the configured window.
type AttemptLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

// NewAttemptLimiter creates an AttemptLimiter allowing max failures per window.
func NewAttemptLimiter(client *redis.Client, max int, window time.Duration) *AttemptLimiter {
	return &AttemptLimiter{client: client, max: max, window: window}
}

// TooMany reports whether the email has reached the failure threshold.
func (l *AttemptLimiter) TooMany(ctx context.Context, email string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(email)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("attempt check: %w", err)
	}
	return n >= l.max, nil
}

// RecordFailure bumps the counter, starting the expiry window on the first
// failure.
func (l *AttemptLimiter) RecordFailure(ctx context.Context, email string) error {
	key := l.key(email)
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("attempt record: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("attempt expire: %w", err)
		}
	}
	return nil
}

// Reset drops the counter after a successful login.
func (l *AttemptLimiter) Reset(ctx context.Context, email string) error {
	return l.client.Del(ctx, l.key(email)).Err()
}

func (l *AttemptLimiter) key(email string) string {
	return "attempts:" + email
}
