package flatfile

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/shopterm/shopterm/internal/core/sales"
)

// SalesLog persists sale records as "productName,dateSold" lines,
// append-only.
type SalesLog struct {
	path string
	mu   sync.Mutex
	log  zerolog.Logger
}

var _ sales.Log = (*SalesLog)(nil)

// NewSalesLog returns a log writing to path.
func NewSalesLog(path string, logger zerolog.Logger) *SalesLog {
	return &SalesLog{path: path, log: logger.With().Str("component", "saleslog").Logger()}
}

// Append adds one line per record to the end of the log.
func (s *SalesLog) Append(ctx context.Context, records []sales.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, r.Product+","+r.Date)
	}
	if err := appendLines(s.path, lines); err != nil {
		return fmt.Errorf("append sales: %w", err)
	}
	return nil
}

// All reads every valid sale record. Malformed lines are skipped and
// logged.
func (s *SalesLog) All(ctx context.Context) ([]sales.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := readLines(s.path)
	if err != nil {
		return nil, fmt.Errorf("read sales: %w", err)
	}

	records := make([]sales.Record, 0, len(lines))
	for _, line := range lines {
		fields := strings.Split(line, ",")
		if len(fields) != 2 {
			s.log.Warn().Str("line", line).Msg("skipping malformed sales record")
			continue
		}
		records = append(records, sales.Record{
			Product: strings.TrimSpace(fields[0]),
			Date:    strings.TrimSpace(fields[1]),
		})
	}
	return records, nil
}
