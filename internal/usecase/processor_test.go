package usecase_test

import (
	"errors"
	"io"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/txengine/internal/domain"
	"github.com/iho/txengine/internal/infrastructure/metrics"
	"github.com/iho/txengine/internal/usecase"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// runProcessor feeds txs through a processor and collects everything it emits.
func runProcessor(t *testing.T, p *usecase.Processor, txs ...domain.Transaction) ([]domain.ClientAccount, []error) {
	t.Helper()

	in := make(chan domain.Transaction)
	out := make(chan domain.ClientAccount)

	errs := p.Build(in, out)

	go func() {
		for _, tx := range txs {
			in <- tx
		}
		close(in)
	}()

	var collected []error
	for err := range errs {
		collected = append(collected, err)
	}

	var accounts []domain.ClientAccount
	for acc := range out {
		accounts = append(accounts, acc)
	}

	return accounts, collected
}

func newTestProcessor() *usecase.Processor {
	return usecase.NewProcessor(zerolog.New(io.Discard), nil)
}

func TestProcessor_Build(t *testing.T) {
	tests := []struct {
		name       string
		txs        []domain.Transaction
		want       []domain.AccountSnapshot
		wantErrors []error
	}{
		{
			name: "deposits and withdrawals across two clients",
			txs: []domain.Transaction{
				domain.NewDeposit(1, 1, dec("1.0")),
				domain.NewDeposit(2, 2, dec("2.0")),
				domain.NewDeposit(1, 3, dec("2.0")),
				domain.NewWithdrawal(1, 4, dec("1.5")),
				domain.NewWithdrawal(2, 5, dec("3.0")),
			},
			want: []domain.AccountSnapshot{
				{Client: 1, Available: dec("1.5"), Held: dec("0"), Total: dec("1.5")},
				{Client: 2, Available: dec("2"), Held: dec("0"), Total: dec("2")},
			},
			wantErrors: []error{domain.ErrNotEnoughFunds},
		},
		{
			name: "chargeback after failed withdrawal freezes account",
			txs: []domain.Transaction{
				domain.NewDeposit(1, 1, dec("5000")),
				domain.NewDispute(1, 1),
				domain.NewWithdrawal(1, 2, dec("1000")),
				domain.NewChargeback(1, 1),
			},
			want: []domain.AccountSnapshot{
				{Client: 1, Available: dec("0"), Held: dec("0"), Total: dec("0"), Locked: true},
			},
			wantErrors: []error{domain.ErrNotEnoughFunds},
		},
		{
			name: "frozen account rejects everything",
			txs: []domain.Transaction{
				domain.NewDeposit(3, 1, dec("10")),
				domain.NewDispute(3, 1),
				domain.NewChargeback(3, 1),
				domain.NewDeposit(3, 2, dec("1")),
				domain.NewResolve(3, 1),
			},
			want: []domain.AccountSnapshot{
				{Client: 3, Available: dec("0"), Held: dec("0"), Total: dec("0"), Locked: true},
			},
			wantErrors: []error{domain.ErrFrozenAccount, domain.ErrFrozenAccount},
		},
		{
			name: "dispute family on unknown ids creates an empty account",
			txs: []domain.Transaction{
				domain.NewDispute(9, 77),
				domain.NewResolve(9, 77),
				domain.NewChargeback(9, 77),
			},
			want: []domain.AccountSnapshot{
				{Client: 9, Available: dec("0"), Held: dec("0"), Total: dec("0")},
			},
			wantErrors: []error{domain.ErrUnknownTransaction, domain.ErrUnknownTransaction, domain.ErrUnknownTransaction},
		},
		{
			name: "duplicate ids are per client",
			txs: []domain.Transaction{
				domain.NewDeposit(1, 1, dec("1")),
				domain.NewDeposit(2, 1, dec("1")),
				domain.NewDeposit(1, 1, dec("5")),
			},
			want: []domain.AccountSnapshot{
				{Client: 1, Available: dec("1"), Held: dec("0"), Total: dec("1")},
				{Client: 2, Available: dec("1"), Held: dec("0"), Total: dec("1")},
			},
			wantErrors: []error{domain.ErrDuplicateTransaction},
		},
		{
			name: "empty input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts, errs := runProcessor(t, newTestProcessor(), tt.txs...)

			require.Len(t, errs, len(tt.wantErrors))
			for i, want := range tt.wantErrors {
				assert.ErrorIs(t, errs[i], want)
			}

			require.Len(t, accounts, len(tt.want))
			for i, want := range tt.want {
				got := accounts[i].Account.Snapshot(accounts[i].ClientID)
				assert.Equal(t, want.Client, got.Client)
				assert.True(t, want.Available.Equal(got.Available), "available: want %s, got %s", want.Available, got.Available)
				assert.True(t, want.Held.Equal(got.Held), "held: want %s, got %s", want.Held, got.Held)
				assert.True(t, want.Total.Equal(got.Total), "total: want %s, got %s", want.Total, got.Total)
				assert.Equal(t, want.Locked, got.Locked)
			}
		})
	}
}

func TestProcessor_ErrorsCarryTransactionContext(t *testing.T) {
	_, errs := runProcessor(t, newTestProcessor(),
		domain.NewWithdrawal(7, 42, dec("1")),
	)

	require.Len(t, errs, 1)

	var txErr *domain.TransactionError
	require.True(t, errors.As(errs[0], &txErr))
	assert.Equal(t, domain.ClientID(7), txErr.ClientID)
	assert.Equal(t, domain.TransactionID(42), txErr.TransactionID)
	assert.Equal(t, domain.TransactionTypeWithdrawal, txErr.Type)
	assert.ErrorIs(t, txErr, domain.ErrNotEnoughFunds)
}

func TestProcessor_EmitsEachClientOnce(t *testing.T) {
	var txs []domain.Transaction
	for i := 0; i < 1000; i++ {
		client := domain.ClientID(i % 10)
		txs = append(txs, domain.NewDeposit(client, domain.TransactionID(i), dec("0.0001")))
	}

	accounts, errs := runProcessor(t, newTestProcessor(), txs...)

	assert.Empty(t, errs)
	require.Len(t, accounts, 10)

	for i, acc := range accounts {
		assert.Equal(t, domain.ClientID(i), acc.ClientID)
		assert.True(t, dec("0.01").Equal(acc.Account.Available()), "client %d available %s", acc.ClientID, acc.Account.Available())
	}
}

func TestProcessor_CountsTransactionsByType(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	p := usecase.NewProcessor(zerolog.New(io.Discard), m)

	runProcessor(t, p,
		domain.NewDeposit(1, 1, dec("3")),
		domain.NewDeposit(1, 2, dec("3")),
		domain.NewDispute(1, 1),
	)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TransactionsProcessed.WithLabelValues("deposit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TransactionsProcessed.WithLabelValues("dispute")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.TransactionsProcessed.WithLabelValues("withdrawal")))
}
