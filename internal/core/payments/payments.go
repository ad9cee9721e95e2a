// Package payments defines the append-only ledger of settled checkouts.
package payments

import "context"

// Payment methods recorded in the ledger.
const (
	MethodCredit = "Credit"
	MethodDebit  = "Debit"
)

// Record is one settled checkout.
type Record struct {
	Email  string
	Amount float64
	Method string
	Date   string // ISO date
}

// Ledger is the persistence collaborator for payment records.
type Ledger interface {
	Append(ctx context.Context, r Record) error
	All(ctx context.Context) ([]Record, error)
}
