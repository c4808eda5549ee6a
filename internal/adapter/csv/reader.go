// Package csv reads transactions from and writes account snapshots to CSV streams.
package csv

import (
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/txengine/internal/domain"
)

// Input column names.
const (
	ColumnType   = "type"
	ColumnClient = "client"
	ColumnTx     = "tx"
	ColumnAmount = "amount"
)

// Reader is a transaction source over a CSV stream with a
// type,client,tx,amount header. Columns are located by name and every field
// is trimmed. Every row must have as many fields as the header.
type Reader struct {
	r io.Reader
}

// NewReader creates a new Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

type columns struct {
	txType int
	client int
	tx     int
	amount int // -1 when the header has no amount column
}

// Transactions starts reading in its own goroutine. Rows that cannot become a
// transaction are sent as *domain.RecordError and skipped. A missing header or
// a read failure is sent wrapped in domain.ErrSourceUnavailable and ends the
// stream. Both channels are closed once reading stops.
func (r *Reader) Transactions() (<-chan domain.Transaction, <-chan error) {
	transactions := make(chan domain.Transaction)
	errs := make(chan error)

	go func() {
		defer close(errs)
		defer close(transactions)

		cr := stdcsv.NewReader(r.r)
		cr.ReuseRecord = true
		cr.TrimLeadingSpace = true

		header, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = errors.New("empty input")
			}
			errs <- fmt.Errorf("%w: read header: %w", domain.ErrSourceUnavailable, err)
			return
		}

		cols, err := parseHeader(header)
		if err != nil {
			errs <- fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
			return
		}

		for {
			record, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return
			}

			if err != nil {
				var parseErr *stdcsv.ParseError
				if !errors.As(err, &parseErr) {
					errs <- fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
					return
				}
				errs <- &domain.RecordError{
					Line: parseErr.StartLine,
					Err:  fmt.Errorf("%w: %v", domain.ErrMalformedRecord, parseErr.Err),
				}
				continue
			}

			tx, err := cols.transaction(record)
			if err != nil {
				line, _ := cr.FieldPos(0)
				errs <- &domain.RecordError{Line: line, Err: err}
				continue
			}

			transactions <- tx
		}
	}()

	return transactions, errs
}

func parseHeader(header []string) (columns, error) {
	cols := columns{txType: -1, client: -1, tx: -1, amount: -1}

	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case ColumnType:
			cols.txType = i
		case ColumnClient:
			cols.client = i
		case ColumnTx:
			cols.tx = i
		case ColumnAmount:
			cols.amount = i
		}
	}

	var missing []string
	if cols.txType < 0 {
		missing = append(missing, ColumnType)
	}
	if cols.client < 0 {
		missing = append(missing, ColumnClient)
	}
	if cols.tx < 0 {
		missing = append(missing, ColumnTx)
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("header is missing column(s) %s", strings.Join(missing, ", "))
	}

	return cols, nil
}

func (c columns) transaction(record []string) (domain.Transaction, error) {
	txType := domain.TransactionType(field(record, c.txType))
	if !txType.Valid() {
		return domain.Transaction{}, fmt.Errorf("%w: unknown transaction type %q", domain.ErrMalformedRecord, txType)
	}

	client, err := strconv.ParseUint(field(record, c.client), 10, 16)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: client: %v", domain.ErrMalformedRecord, err)
	}

	txID, err := strconv.ParseUint(field(record, c.tx), 10, 32)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: tx: %v", domain.ErrMalformedRecord, err)
	}

	amount := decimal.Zero
	if raw := field(record, c.amount); raw != "" {
		amount, err = decimal.NewFromString(raw)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("%w: amount: %v", domain.ErrMalformedRecord, err)
		}
		if err := domain.ValidateAmount(amount); err != nil {
			return domain.Transaction{}, err
		}
	} else if txType.CarriesAmount() {
		return domain.Transaction{}, fmt.Errorf("%w: missing amount for %s", domain.ErrMalformedRecord, txType)
	}

	return domain.NewTransaction(txType, domain.ClientID(client), domain.TransactionID(txID), amount), nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
