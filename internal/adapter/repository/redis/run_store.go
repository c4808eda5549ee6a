package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/txengine/internal/usecase"
)

// RunStore implements usecase.RunStore using Redis.
type RunStore struct {
	client *redis.Client
	prefix string
}

// NewRunStore creates a new RunStore.
func NewRunStore(client *redis.Client) *RunStore {
	return &RunStore{
		client: client,
		prefix: "txengine:run:",
	}
}

// Save stores summary under its run id for ttl.
func (s *RunStore) Save(ctx context.Context, summary *usecase.RunSummary, ttl time.Duration) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal run summary: %w", err)
	}

	return s.client.Set(ctx, s.prefix+summary.RunID, data, ttl).Err()
}

// Get loads the summary of runID.
func (s *RunStore) Get(ctx context.Context, runID string) (*usecase.RunSummary, error) {
	data, err := s.client.Get(ctx, s.prefix+runID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, usecase.ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}

	var summary usecase.RunSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("unmarshal run summary %s: %w", runID, err)
	}

	return &summary, nil
}
