package domain

import (
	"errors"
	"testing"
)

func TestAccount_ApplyChargeback(t *testing.T) {
	acc := newTestAccount(bal("10.0", "0"), bal("10.0", "0"), map[TransactionID]txRecord{
		1: {state: TransactionStateDisputed, amount: amt("8.0")},
	})

	if err := acc.applyChargeback(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertBalances(t, acc, "10.0", "2.0")
	if !acc.Frozen() {
		t.Fatal("expected account to be frozen")
	}
	if state, _ := acc.TransactionState(1); state != TransactionStateChargedBack {
		t.Fatalf("expected charged_back, got %q", state)
	}
}

func TestAccount_ApplyChargebackUnknownTransaction(t *testing.T) {
	acc := newTestAccount(bal("10.0", "0"), bal("10.0", "0"), nil)

	err := acc.applyChargeback(1)
	if !errors.Is(err, ErrUnknownTransaction) {
		t.Fatalf("expected ErrUnknownTransaction, got %v", err)
	}
	assertBalances(t, acc, "10.0", "10.0")
	if acc.Frozen() {
		t.Fatal("expected account not to be frozen")
	}
}

func TestAccount_ApplyChargebackInvalidState(t *testing.T) {
	for _, state := range statesExcept(TransactionStateDisputed) {
		t.Run(string(state), func(t *testing.T) {
			acc := newTestAccount(bal("0", "0"), bal("88.88", "0"), map[TransactionID]txRecord{
				1: {state: state, amount: amt("10.0")},
			})

			err := acc.applyChargeback(1)
			if !errors.Is(err, ErrInvalidTransaction) {
				t.Fatalf("expected ErrInvalidTransaction, got %v", err)
			}
			assertBalances(t, acc, "0", "88.88")
			if acc.Frozen() {
				t.Fatal("expected account not to be frozen")
			}
		})
	}
}

func TestAccount_ApplyChargebackNotEnoughHeld(t *testing.T) {
	acc := newTestAccount(bal("10.0", "0"), bal("1.0", "0"), map[TransactionID]txRecord{
		1: {state: TransactionStateDisputed, amount: amt("5.0")},
	})

	err := acc.applyChargeback(1)
	if !errors.Is(err, ErrNotEnoughFunds) {
		t.Fatalf("expected ErrNotEnoughFunds, got %v", err)
	}
	assertBalances(t, acc, "10.0", "1.0")
	if acc.Frozen() {
		t.Fatal("expected a rejected chargeback not to freeze the account")
	}
}
