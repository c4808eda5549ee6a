package domain

// applyDispute moves a deposit's amount from available to held.
// Only deposits can be disputed; a withdrawal has already left the available pool.
func (a *Account) applyDispute(txID TransactionID) error {
	rec, err := a.lookup(txID)
	if err != nil {
		return err
	}

	if rec.state != TransactionStateDeposited {
		return ErrInvalidTransaction
	}

	savedHeld := a.held
	if err := a.held.Add(rec.amount); err != nil {
		return err
	}
	if err := a.available.Subtract(rec.amount); err != nil {
		a.held = savedHeld
		return err
	}

	a.record(txID, TransactionStateDisputed, rec.amount)
	return nil
}
