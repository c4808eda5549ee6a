package domain

import (
	"errors"
	"fmt"
)

var (
	// Transaction application errors
	ErrFrozenAccount        = errors.New("account is frozen")
	ErrNotEnoughFunds       = errors.New("not enough funds")
	ErrDuplicateTransaction = errors.New("duplicate transaction")
	ErrUnknownTransaction   = errors.New("unknown transaction")
	ErrInvalidTransaction   = errors.New("invalid transaction for current state")
	ErrOverflow             = errors.New("balance overflow")

	// Amount errors
	ErrInvalidAmount  = errors.New("amount must not be negative")
	ErrAmountTooLarge = errors.New("amount exceeds maximum allowed")

	// Input errors
	ErrMalformedRecord   = errors.New("malformed record")
	ErrSourceUnavailable = errors.New("transaction source unavailable")
)

// TransactionError is a failure to apply one transaction to its account.
type TransactionError struct {
	ClientID      ClientID
	TransactionID TransactionID
	Type          TransactionType
	Err           error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("client %d: %s %d: %v", e.ClientID, e.Type, e.TransactionID, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// ErrorKind returns a stable label for err, suitable for logs and metric labels.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrFrozenAccount):
		return "frozen_account"
	case errors.Is(err, ErrNotEnoughFunds):
		return "not_enough_funds"
	case errors.Is(err, ErrDuplicateTransaction):
		return "duplicate_transaction"
	case errors.Is(err, ErrUnknownTransaction):
		return "unknown_transaction"
	case errors.Is(err, ErrInvalidTransaction):
		return "invalid_transaction"
	case errors.Is(err, ErrOverflow):
		return "overflow"
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrAmountTooLarge):
		return "invalid_amount"
	case errors.Is(err, ErrMalformedRecord):
		return "malformed_record"
	case errors.Is(err, ErrSourceUnavailable):
		return "source_unavailable"
	default:
		return "unknown"
	}
}

// RecordError is a raw input record that could not become a Transaction.
// Line is 1-based and counts the header.
type RecordError struct {
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
