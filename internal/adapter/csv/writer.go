package csv

import (
	stdcsv "encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iho/txengine/internal/domain"
)

// Header is the account snapshot header row.
var Header = []string{"client", "available", "held", "total", "locked"}

// Writer is an account sink writing one CSV row per account.
type Writer struct {
	w io.Writer
}

// NewWriter creates a new Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteAccounts writes the header and then every account in arrival order.
func (w *Writer) WriteAccounts(accounts <-chan domain.ClientAccount) error {
	cw := stdcsv.NewWriter(w.w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for acc := range accounts {
		if err := cw.Write(Row(acc.Account.Snapshot(acc.ClientID))); err != nil {
			return fmt.Errorf("write client %d: %w", acc.ClientID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Row renders a snapshot as a CSV record. Amounts carry no trailing zeros.
func Row(s domain.AccountSnapshot) []string {
	return []string{
		strconv.FormatUint(uint64(s.Client), 10),
		s.Available.String(),
		s.Held.String(),
		s.Total.String(),
		strconv.FormatBool(s.Locked),
	}
}
