package flatfile

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/shopterm/shopterm/internal/core/payments"
)

// PaymentLog persists settled checkouts as "email,amount,method,date"
// lines, append-only.
type PaymentLog struct {
	path string
	mu   sync.Mutex
	log  zerolog.Logger
}

var _ payments.Ledger = (*PaymentLog)(nil)

// NewPaymentLog returns a ledger writing to path.
func NewPaymentLog(path string, logger zerolog.Logger) *PaymentLog {
	return &PaymentLog{path: path, log: logger.With().Str("component", "paymentlog").Logger()}
}

// Append adds one record to the end of the ledger.
func (s *PaymentLog) Append(ctx context.Context, r payments.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := strings.Join([]string{
		r.Email,
		strconv.FormatFloat(r.Amount, 'f', 2, 64),
		r.Method,
		r.Date,
	}, ",")
	if err := appendLines(s.path, []string{line}); err != nil {
		return fmt.Errorf("append payment: %w", err)
	}
	return nil
}

// All reads every valid payment record. Malformed lines are skipped and
// logged.
func (s *PaymentLog) All(ctx context.Context) ([]payments.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := readLines(s.path)
	if err != nil {
		return nil, fmt.Errorf("read payments: %w", err)
	}

	records := make([]payments.Record, 0, len(lines))
	for _, line := range lines {
		fields := strings.Split(line, ",")
		if len(fields) != 4 {
			s.log.Warn().Str("line", line).Msg("skipping malformed payment record")
			continue
		}
		amount, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			s.log.Warn().Err(err).Str("line", line).Msg("skipping payment record with bad amount")
			continue
		}
		records = append(records, payments.Record{
			Email:  fields[0],
			Amount: amount,
			Method: fields[2],
			Date:   fields[3],
		})
	}
	return records, nil
}
