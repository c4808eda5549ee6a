package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/iho/txengine/internal/domain"
	"github.com/iho/txengine/internal/infrastructure/metrics"
	"github.com/iho/txengine/internal/infrastructure/queue"
)

// RunSummary describes one completed engine run.
type RunSummary struct {
	RunID             string        `json:"run_id"`
	Transactions      int           `json:"transactions"`
	ParseErrors       int           `json:"parse_errors"`
	TransactionErrors int           `json:"transaction_errors"`
	Accounts          int           `json:"accounts"`
	FrozenAccounts    int           `json:"frozen_accounts"`
	Duration          time.Duration `json:"duration"`
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (s *RunSummary) MarshalZerologObject(e *zerolog.Event) {
	e.Str("run_id", s.RunID).
		Int("transactions", s.Transactions).
		Int("parse_errors", s.ParseErrors).
		Int("transaction_errors", s.TransactionErrors).
		Int("accounts", s.Accounts).
		Int("frozen_accounts", s.FrozenAccounts).
		Dur("duration", s.Duration)
}

// Engine runs the parse, process and emit stages of one batch.
type Engine struct {
	processor *Processor
	reporter  ErrorReporter
	idGen     IDGenerator
	logger    zerolog.Logger
	metrics   *metrics.Metrics
}

// NewEngine creates a new Engine. m may be nil.
func NewEngine(
	processor *Processor,
	reporter ErrorReporter,
	idGen IDGenerator,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *Engine {
	return &Engine{
		processor: processor,
		reporter:  reporter,
		idGen:     idGen,
		logger:    logger,
		metrics:   m,
	}
}

// Run feeds every transaction of source through a fresh ledger and writes
// the final accounts to sink. Parse and transaction errors are reported as
// they occur and never stop the run. An unavailable source is not a parse
// error: it is neither reported nor counted, and Run returns it. Run returns once every stage has
// finished; the summary is returned even when an error is.
//
// The error is non-nil when the source became unavailable or the sink failed.
func (e *Engine) Run(ctx context.Context, source TransactionSource, sink AccountSink) (*RunSummary, error) {
	start := time.Now()
	summary := &RunSummary{RunID: e.idGen.Generate()}

	logger := e.logger.With().Str("run_id", summary.RunID).Logger()
	ctx = logger.WithContext(ctx)

	logger.Debug().Msg("engine run started")

	transactions, parseErrs := source.Transactions()

	txIn, txOut := queue.New[domain.Transaction]()
	accIn, accOut := queue.New[domain.ClientAccount]()
	toSink := make(chan domain.ClientAccount)

	txErrs := e.processor.Build(txOut, accIn)

	var (
		g         errgroup.Group
		sourceErr error
	)

	g.Go(func() error {
		for tx := range transactions {
			summary.Transactions++
			txIn <- tx
		}
		close(txIn)
		return nil
	})

	g.Go(func() error {
		for err := range parseErrs {
			// Ends the run rather than skipping a record; returned by Run.
			if errors.Is(err, domain.ErrSourceUnavailable) {
				if sourceErr == nil {
					sourceErr = err
				}
				continue
			}
			summary.ParseErrors++
			e.reporter.ReportParseError(ctx, err)
		}
		return nil
	})

	g.Go(func() error {
		for err := range txErrs {
			summary.TransactionErrors++
			e.reporter.ReportTransactionError(ctx, err)
		}
		return nil
	})

	g.Go(func() error {
		for acc := range accOut {
			summary.Accounts++
			if acc.Account.Frozen() {
				summary.FrozenAccounts++
			}
			toSink <- acc
		}
		close(toSink)
		return nil
	})

	g.Go(func() error {
		err := sink.WriteAccounts(toSink)
		// Keep the emit stage moving when the sink gave up early.
		for range toSink {
		}
		if err != nil {
			return fmt.Errorf("write accounts: %w", err)
		}
		return nil
	})

	runErr := g.Wait()
	if runErr == nil && sourceErr != nil {
		runErr = fmt.Errorf("read transactions: %w", sourceErr)
	}

	summary.Duration = time.Since(start)
	e.observe(summary, runErr)

	if runErr != nil {
		logger.Error().Err(runErr).EmbedObject(summary).Msg("engine run failed")
		return summary, runErr
	}

	logger.Info().EmbedObject(summary).Msg("engine run completed")

	return summary, nil
}

func (e *Engine) observe(summary *RunSummary, err error) {
	if e.metrics == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failure"
	}

	e.metrics.Runs.WithLabelValues(status).Inc()
	e.metrics.RunDuration.Observe(summary.Duration.Seconds())
	e.metrics.AccountsEmitted.Add(float64(summary.Accounts))
	e.metrics.FrozenAccounts.Add(float64(summary.FrozenAccounts))
}
