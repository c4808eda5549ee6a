package usecase

import (
	"maps"
	"slices"

	"github.com/rs/zerolog"

	"github.com/iho/txengine/internal/domain"
	"github.com/iho/txengine/internal/infrastructure/metrics"
	"github.com/iho/txengine/internal/infrastructure/queue"
)

// Processor builds the ledger of client accounts from a transaction stream.
type Processor struct {
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewProcessor creates a new Processor. m may be nil.
func NewProcessor(logger zerolog.Logger, m *metrics.Metrics) *Processor {
	return &Processor{
		logger:  logger,
		metrics: m,
	}
}

// Build starts processing in its own goroutine and returns the channel of
// transaction errors, each a *domain.TransactionError.
//
// Transactions are applied in the order received. A failed transaction is
// reported and skipped. Once transactions is closed the error channel is
// closed, every account is sent to accounts exactly once in client id order,
// and accounts is closed.
func (p *Processor) Build(transactions <-chan domain.Transaction, accounts chan<- domain.ClientAccount) <-chan error {
	errIn, errOut := queue.New[error]()

	go func() {
		ledger := make(map[domain.ClientID]*domain.Account)

		for tx := range transactions {
			if p.metrics != nil {
				p.metrics.TransactionsProcessed.WithLabelValues(string(tx.Type())).Inc()
			}

			account, ok := ledger[tx.ClientID()]
			if !ok {
				account = domain.NewAccount()
				ledger[tx.ClientID()] = account
			}

			if err := account.Apply(tx); err != nil {
				errIn <- &domain.TransactionError{
					ClientID:      tx.ClientID(),
					TransactionID: tx.ID(),
					Type:          tx.Type(),
					Err:           err,
				}
			}
		}
		close(errIn)

		p.logger.Debug().Int("accounts", len(ledger)).Msg("transaction stream drained")

		for _, client := range slices.Sorted(maps.Keys(ledger)) {
			accounts <- domain.ClientAccount{ClientID: client, Account: ledger[client]}
		}
		close(accounts)
	}()

	return errOut
}
