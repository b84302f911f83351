package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResetLimiter throttles password-reset requests per email address,
// backed by Redis. Key format: resetreq:<email>
type ResetLimiter struct {
	client *redis.Client
	window time.Duration
}

// NewResetLimiter creates a ResetLimiter. The window normally matches the
// reset-token TTL so a second token cannot be requested while the first
// is still valid.
func NewResetLimiter(client *redis.Client, window time.Duration) *ResetLimiter {
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &ResetLimiter{client: client, window: window}
}

// Allow reports whether a reset may be issued for the address now. The
// first call inside the window claims the key; later calls are refused
// until it expires.
func (l *ResetLimiter) Allow(ctx context.Context, email string) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key(email), "1", l.window).Result()
	if err != nil {
		return false, fmt.Errorf("reset limiter: %w", err)
	}
	return ok, nil
}

func (l *ResetLimiter) key(email string) string {
	return fmt.Sprintf("resetreq:%s", email)
}
