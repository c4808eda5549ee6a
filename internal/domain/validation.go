package domain

import "fmt"

// ValidateAmount checks a raw deposit/withdrawal amount before it becomes a Transaction.
func ValidateAmount(amount Amount) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}

	if amount.GreaterThan(MaxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	return nil
}
