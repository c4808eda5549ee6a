package domain

import (
	"errors"
	"testing"
)

func TestAccount_NewAccountIsEmpty(t *testing.T) {
	acc := NewAccount()

	assertBalances(t, acc, "0", "0")
	assertAmount(t, "total", "0", acc.Total())
	if acc.Frozen() {
		t.Fatal("expected new account not to be frozen")
	}
}

func TestAccount_ApplyOnFrozenAccount(t *testing.T) {
	txs := []Transaction{
		NewDeposit(15, 12, amt("5000")),
		NewWithdrawal(15, 13, amt("1")),
		NewDispute(15, 1),
		NewResolve(15, 1),
		NewChargeback(15, 1),
	}

	for _, tx := range txs {
		t.Run(string(tx.Type()), func(t *testing.T) {
			acc := newTestAccount(bal("3.0", "0"), bal("1.0", "2.0"), map[TransactionID]txRecord{
				1: {state: TransactionStateDisputed, amount: amt("1.0")},
			})
			acc.frozen = true

			err := acc.Apply(tx)
			if !errors.Is(err, ErrFrozenAccount) {
				t.Fatalf("expected ErrFrozenAccount, got %v", err)
			}
			assertBalances(t, acc, "3.0", "-1.0")
		})
	}
}

func TestAccount_Amounts(t *testing.T) {
	acc := newTestAccount(bal("3.0", "0"), bal("1.0", "2.0"), nil)

	assertAmount(t, "available", "3.0", acc.Available())
	assertAmount(t, "held", "-1.0", acc.Held())
	assertAmount(t, "total", "2.0", acc.Total())
}

func TestAccount_Snapshot(t *testing.T) {
	acc := newTestAccount(bal("5", "1.5"), bal("2", "0"), nil)
	acc.frozen = true

	snap := acc.Snapshot(9)

	if snap.Client != 9 || !snap.Locked {
		t.Fatalf("unexpected snapshot header: %+v", snap)
	}
	assertAmount(t, "available", "3.5", snap.Available)
	assertAmount(t, "held", "2", snap.Held)
	assertAmount(t, "total", "5.5", snap.Total)
}

func TestAccount_ApplyUnsupportedType(t *testing.T) {
	acc := NewAccount()

	err := acc.Apply(Transaction{txType: "refund", clientID: 1, txID: 1})
	if !errors.Is(err, ErrInvalidTransaction) {
		t.Fatalf("expected ErrInvalidTransaction, got %v", err)
	}
}

func TestAccount_TransactionState(t *testing.T) {
	acc := NewAccount()
	if _, ok := acc.TransactionState(1); ok {
		t.Fatal("expected no state for unseen transaction")
	}

	if err := acc.Apply(NewDeposit(1, 1, amt("10"))); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}

	state, ok := acc.TransactionState(1)
	if !ok || state != TransactionStateDeposited {
		t.Fatalf("expected deposited, got %q (ok=%v)", state, ok)
	}
}
