// Package sales defines the raw sales log: one record per item sold.
package sales

import "context"

// DateLayout is the wire format for sale dates.
const DateLayout = "2006-01-02"

// Record is a single sold item.
type Record struct {
	Product string // product name, not id
	Date    string // ISO date, DateLayout
}

// Log is the persistence collaborator for sale records. Append-only.
type Log interface {
	Append(ctx context.Context, records []Record) error
	All(ctx context.Context) ([]Record, error)
}
