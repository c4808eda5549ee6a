package domain

import "github.com/shopspring/decimal"

// Balance is one money pool of an account, kept as two accumulators.
// Its value is credit minus debit. Both accumulators only ever grow.
type Balance struct {
	credit Amount
	debit  Amount
}

// NewBalance creates a balance with the given accumulators.
func NewBalance(credit, debit Amount) Balance {
	return Balance{credit: credit, debit: debit}
}

// Amount returns credit minus debit.
func (b Balance) Amount() Amount {
	return b.credit.Sub(b.debit)
}

// Add credits delta. On overflow the balance is left unchanged.
func (b *Balance) Add(delta Amount) error {
	credit, err := checkedAdd(b.credit, delta)
	if err != nil {
		return err
	}
	b.credit = credit
	return nil
}

// Subtract debits delta. On overflow the balance is left unchanged.
func (b *Balance) Subtract(delta Amount) error {
	debit, err := checkedAdd(b.debit, delta)
	if err != nil {
		return err
	}
	b.debit = debit
	return nil
}

func zeroBalance() Balance {
	return Balance{credit: decimal.Zero, debit: decimal.Zero}
}
