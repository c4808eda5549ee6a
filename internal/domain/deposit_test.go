package domain

import (
	"errors"
	"testing"
)

func TestAccount_ApplyDeposit(t *testing.T) {
	acc := newTestAccount(bal("3.0", "0"), bal("1.0", "0"), nil)

	if err := acc.applyDeposit(1, amt("3.0")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertBalances(t, acc, "6.0", "1.0")
	if state, _ := acc.TransactionState(1); state != TransactionStateDeposited {
		t.Fatalf("expected deposited, got %q", state)
	}
}

func TestAccount_ApplyDepositAlreadyExists(t *testing.T) {
	for _, state := range allStates {
		t.Run(string(state), func(t *testing.T) {
			acc := newTestAccount(bal("99.99", "0"), bal("88.88", "0"), map[TransactionID]txRecord{
				1: {state: state, amount: amt("123.456")},
			})

			err := acc.applyDeposit(1, amt("3.0"))
			if !errors.Is(err, ErrDuplicateTransaction) {
				t.Fatalf("expected ErrDuplicateTransaction, got %v", err)
			}
			assertBalances(t, acc, "99.99", "88.88")
			if got, _ := acc.TransactionState(1); got != state {
				t.Fatalf("expected state %q to be untouched, got %q", state, got)
			}
		})
	}
}

func TestAccount_ApplyDepositOverflow(t *testing.T) {
	acc := newTestAccount(bal(veryBigNumber, "0"), bal("0", "0"), nil)

	err := acc.applyDeposit(1, amt(veryBigNumber))
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
	assertBalances(t, acc, veryBigNumber, "0")
	if _, ok := acc.TransactionState(1); ok {
		t.Fatal("expected failed deposit not to be recorded")
	}
}
