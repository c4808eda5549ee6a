package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NewClient creates a new Redis client. The initial ping is retried with
// exponential backoff until maxElapsed has passed; zero disables retries.
func NewClient(ctx context.Context, redisURL string, maxElapsed time.Duration) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = time.Second
	b.MaxElapsedTime = maxElapsed

	attempt := 0
	err = backoff.Retry(func() error {
		attempt++
		pingErr := client.Ping(ctx).Err()
		if pingErr == nil {
			return nil
		}
		if maxElapsed <= 0 {
			return backoff.Permanent(pingErr)
		}

		log.Warn().Err(pingErr).Int("attempt", attempt).Msg("redis not reachable, retrying")
		return pingErr
	}, backoff.WithContext(b, ctx))
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
