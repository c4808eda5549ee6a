package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/txengine/internal/domain"
	"github.com/iho/txengine/internal/usecase"
)

// AccountResponse represents a final account in API responses.
type AccountResponse struct {
	Client    uint16          `json:"client"`
	Available decimal.Decimal `json:"available"`
	Held      decimal.Decimal `json:"held"`
	Total     decimal.Decimal `json:"total"`
	Locked    bool            `json:"locked"`
}

// AccountFromSnapshot converts an account snapshot to response.
func AccountFromSnapshot(s domain.AccountSnapshot) AccountResponse {
	return AccountResponse{
		Client:    uint16(s.Client),
		Available: s.Available,
		Held:      s.Held,
		Total:     s.Total,
		Locked:    s.Locked,
	}
}

// AccountsFromSnapshots converts account snapshots to responses.
func AccountsFromSnapshots(snapshots []domain.AccountSnapshot) []AccountResponse {
	result := make([]AccountResponse, len(snapshots))
	for i, s := range snapshots {
		result[i] = AccountFromSnapshot(s)
	}
	return result
}

// RunResponse represents a run summary in API responses.
type RunResponse struct {
	RunID             string `json:"run_id"`
	Transactions      int    `json:"transactions"`
	ParseErrors       int    `json:"parse_errors"`
	TransactionErrors int    `json:"transaction_errors"`
	Accounts          int    `json:"accounts"`
	FrozenAccounts    int    `json:"frozen_accounts"`
	DurationMs        int64  `json:"duration_ms"`
}

// RunFromSummary converts a run summary to response.
func RunFromSummary(s *usecase.RunSummary) RunResponse {
	return RunResponse{
		RunID:             s.RunID,
		Transactions:      s.Transactions,
		ParseErrors:       s.ParseErrors,
		TransactionErrors: s.TransactionErrors,
		Accounts:          s.Accounts,
		FrozenAccounts:    s.FrozenAccounts,
		DurationMs:        s.Duration.Milliseconds(),
	}
}

// BatchResponse is the JSON result of a processed batch.
type BatchResponse struct {
	RunID             string            `json:"run_id"`
	Accounts          []AccountResponse `json:"accounts"`
	ParseErrors       int               `json:"parse_errors"`
	TransactionErrors int               `json:"transaction_errors"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
