package domain

import "fmt"

// TransactionState is the last known disposition of a transaction id.
//
//	deposited -> disputed -> deposited (resolve)
//	                      -> charged_back (terminal)
//	withdrawn (terminal, never disputable)
type TransactionState string

const (
	TransactionStateWithdrawn   TransactionState = "withdrawn"
	TransactionStateDeposited   TransactionState = "deposited"
	TransactionStateDisputed    TransactionState = "disputed"
	TransactionStateChargedBack TransactionState = "charged_back"
)

type txRecord struct {
	state  TransactionState
	amount Amount
}

// Account is a client account state machine. It is mutated only through Apply.
type Account struct {
	frozen    bool
	available Balance
	held      Balance
	txStates  map[TransactionID]txRecord
}

// NewAccount creates an empty, unfrozen account.
func NewAccount() *Account {
	return &Account{
		available: zeroBalance(),
		held:      zeroBalance(),
		txStates:  make(map[TransactionID]txRecord),
	}
}

// Available returns the funds available for withdrawal.
func (a *Account) Available() Amount {
	return a.available.Amount()
}

// Held returns the funds held by open disputes.
func (a *Account) Held() Amount {
	return a.held.Amount()
}

// Total returns available plus held funds.
func (a *Account) Total() Amount {
	return a.available.Amount().Add(a.held.Amount())
}

// Frozen reports whether a chargeback has locked the account.
func (a *Account) Frozen() bool {
	return a.frozen
}

// TransactionState returns the last known state of txID.
func (a *Account) TransactionState(txID TransactionID) (TransactionState, bool) {
	rec, ok := a.txStates[txID]
	return rec.state, ok
}

// Apply applies tx to the account. A failed transaction leaves the
// account exactly as it was.
func (a *Account) Apply(tx Transaction) error {
	if a.frozen {
		return ErrFrozenAccount
	}

	switch tx.Type() {
	case TransactionTypeDeposit:
		return a.applyDeposit(tx.ID(), tx.Amount())
	case TransactionTypeWithdrawal:
		return a.applyWithdrawal(tx.ID(), tx.Amount())
	case TransactionTypeDispute:
		return a.applyDispute(tx.ID())
	case TransactionTypeResolve:
		return a.applyResolve(tx.ID())
	case TransactionTypeChargeback:
		return a.applyChargeback(tx.ID())
	default:
		return fmt.Errorf("%w: unsupported type %q", ErrInvalidTransaction, tx.Type())
	}
}

func (a *Account) lookup(txID TransactionID) (txRecord, error) {
	rec, ok := a.txStates[txID]
	if !ok {
		return txRecord{}, ErrUnknownTransaction
	}
	return rec, nil
}

func (a *Account) record(txID TransactionID, state TransactionState, amount Amount) {
	a.txStates[txID] = txRecord{state: state, amount: amount}
}

// AccountSnapshot is the externally visible projection of an account.
type AccountSnapshot struct {
	Client    ClientID
	Available Amount
	Held      Amount
	Total     Amount
	Locked    bool
}

// Snapshot projects the account for output.
func (a *Account) Snapshot(client ClientID) AccountSnapshot {
	return AccountSnapshot{
		Client:    client,
		Available: a.Available(),
		Held:      a.Held(),
		Total:     a.Total(),
		Locked:    a.frozen,
	}
}

// ClientAccount pairs a final account with its client id.
type ClientAccount struct {
	ClientID ClientID
	Account  *Account
}
