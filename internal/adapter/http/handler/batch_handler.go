package handler

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/iho/txengine/internal/adapter/csv"
	"github.com/iho/txengine/internal/adapter/http/dto"
	"github.com/iho/txengine/internal/domain"
	"github.com/iho/txengine/internal/usecase"
)

// Batch response headers.
const (
	HeaderRunID             = "X-Run-ID"
	HeaderParseErrors       = "X-Parse-Errors"
	HeaderTransactionErrors = "X-Transaction-Errors"
)

// BatchRunner defines the behavior needed by BatchHandler.
type BatchRunner interface {
	Run(ctx context.Context, source usecase.TransactionSource, sink usecase.AccountSink) (*usecase.RunSummary, error)
}

// BatchHandler runs uploaded transaction batches. Every batch gets a fresh ledger.
type BatchHandler struct {
	runner   BatchRunner
	runs     usecase.RunStore
	runTTL   time.Duration
	maxBytes int64
}

// NewBatchHandler creates a new BatchHandler. runs may be nil, in which case
// summaries are not kept.
func NewBatchHandler(runner BatchRunner, runs usecase.RunStore, runTTL time.Duration, maxBytes int64) *BatchHandler {
	return &BatchHandler{
		runner:   runner,
		runs:     runs,
		runTTL:   runTTL,
		maxBytes: maxBytes,
	}
}

// Create processes a CSV batch and returns the final accounts.
func (h *BatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, h.maxBytes)
	source := csv.NewReader(body)

	asJSON := wantsJSON(r)

	var (
		out       bytes.Buffer
		collector snapshotCollector
		sink      usecase.AccountSink = csv.NewWriter(&out)
	)
	if asJSON {
		sink = &collector
	}

	summary, err := h.runner.Run(r.Context(), source, sink)
	if err != nil {
		writeError(w, mapRunError(err), "failed to process batch", err.Error())
		return
	}

	if h.runs != nil {
		if err := h.runs.Save(r.Context(), summary, h.runTTL); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Str("run_id", summary.RunID).Msg("failed to store run summary")
		}
	}

	w.Header().Set(HeaderRunID, summary.RunID)
	w.Header().Set(HeaderParseErrors, strconv.Itoa(summary.ParseErrors))
	w.Header().Set(HeaderTransactionErrors, strconv.Itoa(summary.TransactionErrors))

	if asJSON {
		writeJSON(w, http.StatusOK, dto.BatchResponse{
			RunID:             summary.RunID,
			Accounts:          dto.AccountsFromSnapshots(collector.snapshots),
			ParseErrors:       summary.ParseErrors,
			TransactionErrors: summary.TransactionErrors,
		})
		return
	}

	w.Header().Set("Content-Type", contentTypeCSV)
	w.WriteHeader(http.StatusOK)
	w.Write(out.Bytes())
}

// Get returns the stored summary of a previous run.
func (h *BatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		writeError(w, http.StatusNotFound, "run history disabled", "")
		return
	}

	runID := chi.URLParam(r, "runID")

	summary, err := h.runs.Get(r.Context(), runID)
	if err != nil {
		writeError(w, mapRunError(err), "failed to get run", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RunFromSummary(summary))
}

// snapshotCollector is an account sink keeping snapshots in memory.
type snapshotCollector struct {
	snapshots []domain.AccountSnapshot
}

func (c *snapshotCollector) WriteAccounts(accounts <-chan domain.ClientAccount) error {
	for acc := range accounts {
		c.snapshots = append(c.snapshots, acc.Account.Snapshot(acc.ClientID))
	}
	return nil
}
