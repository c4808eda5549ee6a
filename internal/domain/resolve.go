package domain

// applyResolve releases a disputed amount back to available. The transaction
// returns to deposited and can be disputed again.
func (a *Account) applyResolve(txID TransactionID) error {
	rec, err := a.lookup(txID)
	if err != nil {
		return err
	}

	if rec.state != TransactionStateDisputed {
		return ErrInvalidTransaction
	}

	if a.held.Amount().LessThan(rec.amount) {
		return ErrNotEnoughFunds
	}

	// held >= amount bounds the debit accumulator, so the subtract cannot overflow.
	savedAvailable := a.available
	if err := a.available.Add(rec.amount); err != nil {
		return err
	}
	if err := a.held.Subtract(rec.amount); err != nil {
		a.available = savedAvailable
		return err
	}

	a.record(txID, TransactionStateDeposited, rec.amount)
	return nil
}
