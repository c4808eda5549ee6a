package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/iho/txengine/internal/domain"
	"github.com/iho/txengine/internal/infrastructure/metrics"
)

// LogReporter logs every reported failure at warn level through the logger
// carried by ctx and counts it.
type LogReporter struct {
	metrics *metrics.Metrics
}

// NewLogReporter creates a new LogReporter. m may be nil.
func NewLogReporter(m *metrics.Metrics) *LogReporter {
	return &LogReporter{metrics: m}
}

// ReportParseError implements ErrorReporter.
func (r *LogReporter) ReportParseError(ctx context.Context, err error) {
	if r.metrics != nil {
		r.metrics.ParseErrors.Inc()
	}

	event := zerolog.Ctx(ctx).Warn().
		Err(err).
		Str("error_kind", domain.ErrorKind(err))

	var recErr *domain.RecordError
	if errors.As(err, &recErr) {
		event = event.Int("line", recErr.Line)
	}

	event.Msg("skipping malformed record")
}

// ReportTransactionError implements ErrorReporter.
func (r *LogReporter) ReportTransactionError(ctx context.Context, err error) {
	kind := domain.ErrorKind(err)

	if r.metrics != nil {
		r.metrics.TransactionErrors.WithLabelValues(kind).Inc()
	}

	event := zerolog.Ctx(ctx).Warn().
		Err(err).
		Str("error_kind", kind)

	var txErr *domain.TransactionError
	if errors.As(err, &txErr) {
		event = event.
			Uint16("client", uint16(txErr.ClientID)).
			Uint32("tx", uint32(txErr.TransactionID)).
			Str("type", string(txErr.Type))
	}

	event.Msg("transaction rejected")
}
