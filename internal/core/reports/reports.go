// Package reports defines the sales report archive and the tally logic
// that turns raw sale records into report bodies.
package reports

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopterm/shopterm/internal/core/sales"
)

// ErrNotFound is returned by Store.Get when no block matches the token.
var ErrNotFound = errors.New("reports: report not found")

// Kind selects one of the two report archives.
type Kind string

// Report archive kinds.
const (
	KindDaily   Kind = "Daily"
	KindMonthly Kind = "Monthly"
)

// MonthLayout is the token format for monthly report keys.
const MonthLayout = "2006-01"

// Store is the persistence collaborator for report archives. Blocks are
// strictly append-only; appending the same token twice stores two blocks,
// and Get returns the first one.
type Store interface {
	// Dates returns every date token present in the archive, in file order.
	Dates(ctx context.Context, kind Kind) ([]string, error)
	// Get returns the full report block for a token, header and footer
	// included. Returns ErrNotFound when no block matches.
	Get(ctx context.Context, kind Kind, token string) (string, error)
	// Append adds a new report block for the token.
	Append(ctx context.Context, kind Kind, token string, body []string) error
}

// Line is one tallied row of a report body.
type Line struct {
	Product string
	Count   int
}

// Tally counts records per product name, sorted by name so report bodies
// are deterministic.
func Tally(records []sales.Record) []Line {
	counts := make(map[string]int)
	for _, r := range records {
		if r.Product == "" {
			continue
		}
		counts[r.Product]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]Line, 0, len(names))
	for _, name := range names {
		lines = append(lines, Line{Product: name, Count: counts[name]})
	}
	return lines
}

// Body renders tallied lines as report body text, one "name: count" line
// per product.
func Body(lines []Line) []string {
	if len(lines) == 0 {
		return []string{"No sales found for this period."}
	}
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, fmt.Sprintf("%s: %d", l.Product, l.Count))
	}
	return out
}

// FilterByDate keeps only records sold on exactly date (ISO day).
func FilterByDate(records []sales.Record, date string) []sales.Record {
	var out []sales.Record
	for _, r := range records {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out
}

// FilterByMonth keeps only records whose sale date falls in month
// (MonthLayout). Records with unparseable dates are dropped.
func FilterByMonth(records []sales.Record, month string) []sales.Record {
	target, err := time.Parse(MonthLayout, month)
	if err != nil {
		return nil
	}

	var out []sales.Record
	for _, r := range records {
		d, err := time.Parse(sales.DateLayout, r.Date)
		if err != nil {
			continue
		}
		if d.Year() == target.Year() && d.Month() == target.Month() {
			out = append(out, r)
		}
	}
	return out
}
