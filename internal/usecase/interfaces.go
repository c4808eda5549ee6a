package usecase

import (
	"context"
	"time"

	"github.com/iho/txengine/internal/domain"
)

// TransactionSource produces validated transactions in arrival order.
// Both channels are closed when the input is exhausted. Malformed records
// are sent on the error channel as *domain.RecordError; an error wrapping
// domain.ErrSourceUnavailable means the input could not be read further.
type TransactionSource interface {
	Transactions() (<-chan domain.Transaction, <-chan error)
}

// AccountSink consumes final accounts until the channel is closed.
type AccountSink interface {
	WriteAccounts(accounts <-chan domain.ClientAccount) error
}

// ErrorReporter receives record-parsing and transaction-application failures.
type ErrorReporter interface {
	ReportParseError(ctx context.Context, err error)
	ReportTransactionError(ctx context.Context, err error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore remembers the response of a completed request by key.
// CheckAndSet reports whether key is already known; a known key with a nil
// response is still being processed.
type IdempotencyStore interface {
	CheckAndSet(ctx context.Context, key string, ttl time.Duration) (exists bool, response []byte, err error)
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}

// RunStore keeps run summaries for later lookup.
type RunStore interface {
	Save(ctx context.Context, summary *RunSummary, ttl time.Duration) error
	Get(ctx context.Context, runID string) (*RunSummary, error)
}
