// Package messaging defines the customer-staff conversation domain types
// and the store interface for durable conversation records.
package messaging

import (
	"context"

	"github.com/shopterm/shopterm/internal/core/account"
)

// Entry is one message in a conversation: who spoke, and what they said.
type Entry struct {
	Speaker account.Role
	Body    string
}

// Store is the persistence collaborator for conversation records. One
// record per customer email, holding the full alternating history.
type Store interface {
	// Emails returns every customer email that has any history.
	Emails(ctx context.Context) ([]string, error)
	// History returns the conversation for one customer, oldest first.
	History(ctx context.Context, email string) ([]Entry, error)
	// Append adds one entry to the customer's record, creating the
	// record if it does not exist yet.
	Append(ctx context.Context, email string, speaker account.Role, body string) error
}
