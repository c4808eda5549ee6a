package domain

func (a *Account) applyDeposit(txID TransactionID, amount Amount) error {
	if _, seen := a.txStates[txID]; seen {
		return ErrDuplicateTransaction
	}

	if err := a.available.Add(amount); err != nil {
		return err
	}

	a.record(txID, TransactionStateDeposited, amount)
	return nil
}
