package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/txengine/internal/adapter/http/dto"
	"github.com/iho/txengine/internal/usecase"
	"github.com/iho/txengine/internal/usecase/mocks"
)

const sampleBatch = "type,client,tx,amount\n" +
	"deposit,1,1,1.0\n" +
	"deposit,2,2,2.0\n" +
	"deposit,1,3,2.0\n" +
	"withdrawal,1,4,1.5\n" +
	"withdrawal,2,5,3.0\n" +
	"not a record\n"

type fixedID string

func (f fixedID) Generate() string { return string(f) }

func newTestEngine(runID string) *usecase.Engine {
	return usecase.NewEngine(
		usecase.NewProcessor(zerolog.New(io.Discard), nil),
		usecase.NewLogReporter(nil),
		fixedID(runID),
		zerolog.New(io.Discard),
		nil,
	)
}

func TestBatchHandler_Create_CSV(t *testing.T) {
	h := NewBatchHandler(newTestEngine("run-csv"), nil, time.Hour, 1<<20)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/batches", strings.NewReader(sampleBatch))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
	assert.Equal(t, "run-csv", rr.Header().Get(HeaderRunID))
	assert.Equal(t, "1", rr.Header().Get(HeaderParseErrors))
	assert.Equal(t, "1", rr.Header().Get(HeaderTransactionErrors))

	want := "client,available,held,total,locked\n" +
		"1,1.5,0,1.5,false\n" +
		"2,2,0,2,false\n"
	assert.Equal(t, want, rr.Body.String())
}

func TestBatchHandler_Create_JSON(t *testing.T) {
	h := NewBatchHandler(newTestEngine("run-json"), nil, time.Hour, 1<<20)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/batches", strings.NewReader(sampleBatch))
	req.Header.Set("Accept", "application/json")
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp dto.BatchResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.Equal(t, "run-json", resp.RunID)
	assert.Equal(t, 1, resp.ParseErrors)
	assert.Equal(t, 1, resp.TransactionErrors)
	require.Len(t, resp.Accounts, 2)
	assert.Equal(t, uint16(1), resp.Accounts[0].Client)
	assert.Equal(t, "1.5", resp.Accounts[0].Available.String())
	assert.False(t, resp.Accounts[0].Locked)
}

func TestBatchHandler_Create_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		maxBytes int64
		want     int
	}{
		{"missing header columns", "a,b,c\n1,2,3\n", 1 << 20, http.StatusBadRequest},
		{"empty body", "", 1 << 20, http.StatusBadRequest},
		{"body too large", sampleBatch + strings.Repeat("deposit,1,9,1.0\n", 100), 64, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewBatchHandler(newTestEngine("run-err"), nil, time.Hour, tt.maxBytes)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/batches", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			h.Create(rr, req)

			assert.Equal(t, tt.want, rr.Code)

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "failed to process batch", resp.Error)
		})
	}
}

func TestBatchHandler_Create_StoresSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	runs := mocks.NewMockRunStore(ctrl)

	runs.EXPECT().
		Save(gomock.Any(), gomock.Any(), 2*time.Hour).
		DoAndReturn(func(_ context.Context, summary *usecase.RunSummary, _ time.Duration) error {
			assert.Equal(t, "run-store", summary.RunID)
			assert.Equal(t, 5, summary.Transactions)
			return nil
		})

	h := NewBatchHandler(newTestEngine("run-store"), runs, 2*time.Hour, 1<<20)

	rr := httptest.NewRecorder()
	h.Create(rr, httptest.NewRequest(http.MethodPost, "/api/v1/batches", strings.NewReader(sampleBatch)))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestBatchHandler_Create_SummaryStoreFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	runs := mocks.NewMockRunStore(ctrl)
	runs.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	h := NewBatchHandler(newTestEngine("run-x"), runs, time.Hour, 1<<20)

	rr := httptest.NewRecorder()
	h.Create(rr, httptest.NewRequest(http.MethodPost, "/api/v1/batches", strings.NewReader(sampleBatch)))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestBatchHandler_Get(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*mocks.MockRunStore)
		want       int
	}{
		{
			name: "found",
			setupMocks: func(runs *mocks.MockRunStore) {
				runs.EXPECT().Get(gomock.Any(), "run-1").Return(&usecase.RunSummary{RunID: "run-1", Transactions: 3}, nil)
			},
			want: http.StatusOK,
		},
		{
			name: "not found",
			setupMocks: func(runs *mocks.MockRunStore) {
				runs.EXPECT().Get(gomock.Any(), "run-1").Return(nil, usecase.ErrRunNotFound)
			},
			want: http.StatusNotFound,
		},
		{
			name: "store failure",
			setupMocks: func(runs *mocks.MockRunStore) {
				runs.EXPECT().Get(gomock.Any(), "run-1").Return(nil, errors.New("boom"))
			},
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			runs := mocks.NewMockRunStore(ctrl)
			tt.setupMocks(runs)

			h := NewBatchHandler(newTestEngine("unused"), runs, time.Hour, 1<<20)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/batches/run-1", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("runID", "run-1")
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rr := httptest.NewRecorder()

			h.Get(rr, req)

			assert.Equal(t, tt.want, rr.Code)
			if tt.want == http.StatusOK {
				var resp dto.RunResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, "run-1", resp.RunID)
				assert.Equal(t, 3, resp.Transactions)
			}
		})
	}
}

func TestBatchHandler_GetWithoutRunStore(t *testing.T) {
	h := NewBatchHandler(newTestEngine("unused"), nil, time.Hour, 1<<20)

	rr := httptest.NewRecorder()
	h.Get(rr, httptest.NewRequest(http.MethodGet, "/api/v1/batches/run-1", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
