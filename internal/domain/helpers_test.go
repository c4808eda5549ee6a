package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func amt(s string) Amount {
	return decimal.RequireFromString(s)
}

func bal(credit, debit string) Balance {
	return NewBalance(amt(credit), amt(debit))
}

func newTestAccount(available, held Balance, states map[TransactionID]txRecord) *Account {
	if states == nil {
		states = make(map[TransactionID]txRecord)
	}
	return &Account{
		available: available,
		held:      held,
		txStates:  states,
	}
}

func assertAmount(t *testing.T, label, want string, got Amount) {
	t.Helper()
	if !got.Equal(amt(want)) {
		t.Errorf("%s: expected %s, got %s", label, want, got)
	}
}

func assertBalances(t *testing.T, acc *Account, available, held string) {
	t.Helper()
	assertAmount(t, "available", available, acc.Available())
	assertAmount(t, "held", held, acc.Held())
}

var allStates = []TransactionState{
	TransactionStateWithdrawn,
	TransactionStateDeposited,
	TransactionStateDisputed,
	TransactionStateChargedBack,
}

func statesExcept(excluded TransactionState) []TransactionState {
	var out []TransactionState
	for _, s := range allStates {
		if s != excluded {
			out = append(out, s)
		}
	}
	return out
}

const veryBigNumber = "70000000000000000000000000000"
