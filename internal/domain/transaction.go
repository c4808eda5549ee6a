package domain

import "github.com/shopspring/decimal"

// ClientID identifies a client account.
type ClientID uint16

// TransactionID identifies a deposit or withdrawal. Dispute-family
// transactions reuse it to reference the transaction they act on.
type TransactionID uint32

// TransactionType is the kind of a transaction.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeDispute    TransactionType = "dispute"
	TransactionTypeResolve    TransactionType = "resolve"
	TransactionTypeChargeback TransactionType = "chargeback"
)

// CarriesAmount reports whether transactions of this type carry their own amount.
func (t TransactionType) CarriesAmount() bool {
	return t == TransactionTypeDeposit || t == TransactionTypeWithdrawal
}

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal,
		TransactionTypeDispute, TransactionTypeResolve, TransactionTypeChargeback:
		return true
	}
	return false
}

// Transaction is an immutable transaction record.
type Transaction struct {
	txType   TransactionType
	clientID ClientID
	txID     TransactionID
	amount   Amount
}

// NewTransaction builds a transaction. The amount is normalized to
// AmountPrecision for deposits and withdrawals and dropped for every other type.
func NewTransaction(txType TransactionType, clientID ClientID, txID TransactionID, amount Amount) Transaction {
	if txType.CarriesAmount() {
		amount = NormalizeAmount(amount)
	} else {
		amount = decimal.Zero
	}

	return Transaction{
		txType:   txType,
		clientID: clientID,
		txID:     txID,
		amount:   amount,
	}
}

func NewDeposit(clientID ClientID, txID TransactionID, amount Amount) Transaction {
	return NewTransaction(TransactionTypeDeposit, clientID, txID, amount)
}

func NewWithdrawal(clientID ClientID, txID TransactionID, amount Amount) Transaction {
	return NewTransaction(TransactionTypeWithdrawal, clientID, txID, amount)
}

func NewDispute(clientID ClientID, txID TransactionID) Transaction {
	return NewTransaction(TransactionTypeDispute, clientID, txID, decimal.Zero)
}

func NewResolve(clientID ClientID, txID TransactionID) Transaction {
	return NewTransaction(TransactionTypeResolve, clientID, txID, decimal.Zero)
}

func NewChargeback(clientID ClientID, txID TransactionID) Transaction {
	return NewTransaction(TransactionTypeChargeback, clientID, txID, decimal.Zero)
}

func (t Transaction) Type() TransactionType { return t.txType }

func (t Transaction) ClientID() ClientID { return t.clientID }

func (t Transaction) ID() TransactionID { return t.txID }

// Amount returns the normalized amount. It is zero for dispute, resolve and chargeback.
func (t Transaction) Amount() Amount { return t.amount }
