package domain

func (a *Account) applyWithdrawal(txID TransactionID, amount Amount) error {
	// Funds are checked before the id so a rejected withdrawal never touches state.
	if amount.GreaterThan(a.available.Amount()) {
		return ErrNotEnoughFunds
	}

	if _, seen := a.txStates[txID]; seen {
		return ErrDuplicateTransaction
	}

	if err := a.available.Subtract(amount); err != nil {
		return err
	}

	a.record(txID, TransactionStateWithdrawn, amount)
	return nil
}
