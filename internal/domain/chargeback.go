package domain

// applyChargeback removes a disputed amount from held and freezes the account
// for the rest of the run.
func (a *Account) applyChargeback(txID TransactionID) error {
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

	if err := a.held.Subtract(rec.amount); err != nil {
		return err
	}

	a.record(txID, TransactionStateChargedBack, rec.amount)
	a.frozen = true
	return nil
}
