package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxType is the direction of a transaction.
type TxType string

const (
	TxTypeCredit TxType = "credit"
	TxTypeDebit  TxType = "debit"
)

// Valid reports whether t is a known transaction type.
func (t TxType) Valid() bool {
	return t == TxTypeCredit || t == TxTypeDebit
}

// Transaction is a single financial transaction event. Records are
// append-only: once stored under an ID they are never mutated, and the ID
// doubles as the producer's idempotency key.
type Transaction struct {
	ID        string
	Account   string
	Amount    decimal.Decimal
	Type      TxType
	Timestamp time.Time
	CreatedAt time.Time
}

// IsCredit reports whether the transaction credits its account.
func (tx *Transaction) IsCredit() bool {
	return tx.Type == TxTypeCredit
}
