package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/txengine/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency keys.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayHeader marks a response served from the store.
	IdempotencyReplayHeader = "X-Idempotency-Replay"
)

// storedResponse is what gets replayed for a repeated key.
type storedResponse struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

// IdempotencyMiddleware replays the response of a completed request when the
// same Idempotency-Key is sent again.
type IdempotencyMiddleware struct {
	store usecase.IdempotencyStore
	ttl   time.Duration
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore, ttl time.Duration) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{store: store, ttl: ttl}
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only apply to mutating requests
		if r.Method != http.MethodPost && r.Method != http.MethodPut {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		logger := zerolog.Ctx(ctx)

		exists, cached, err := m.store.CheckAndSet(ctx, key, m.ttl)
		if err != nil {
			logger.Error().Err(err).Str("idempotency_key", key).Msg("idempotency check failed")
			writeError(w, http.StatusInternalServerError, "idempotency check failed")
			return
		}

		if exists {
			if cached == nil {
				writeError(w, http.StatusConflict, "request with this idempotency key is in progress")
				return
			}
			m.replay(w, r, key, cached)
			return
		}

		// Released unless a 2xx response completes, including when next panics.
		completed := false
		defer func() {
			if completed {
				return
			}
			if err := m.store.Release(ctx, key); err != nil {
				logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to release idempotency key")
			}
		}()

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(recorder, r)

		if recorder.statusCode < 200 || recorder.statusCode >= 300 {
			return
		}
		completed = true

		data, err := json.Marshal(storedResponse{
			Status: recorder.statusCode,
			Header: w.Header().Clone(),
			Body:   recorder.body.Bytes(),
		})
		if err == nil {
			err = m.store.Update(ctx, key, data, m.ttl)
		}
		if err != nil {
			logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to store idempotent response")
		}
	})
}

func (m *IdempotencyMiddleware) replay(w http.ResponseWriter, r *http.Request, key string, cached []byte) {
	var stored storedResponse
	if err := json.Unmarshal(cached, &stored); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("idempotency_key", key).Msg("corrupt idempotent response")
		writeError(w, http.StatusInternalServerError, "idempotency check failed")
		return
	}

	for name, values := range stored.Header {
		w.Header()[name] = values
	}
	w.Header().Set(IdempotencyReplayHeader, "true")
	w.WriteHeader(stored.Status)
	w.Write(stored.Body)
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
