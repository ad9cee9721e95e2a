package flatfile

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/shopterm/shopterm/internal/core/reports"
)

// Report archives are title-delimited text blocks, not structured records:
//
//	--- Daily Report for: 2026-08-28 ---
//	Widget: 3
//	----------------------------
//
// There is no index; listing and extraction both scan for the header and
// footer sentinels. Blocks are append-only, so the same token can appear
// more than once; Get returns the first match.
const reportFooter = "----------------------------"

func reportHeader(kind reports.Kind, token string) string {
	return fmt.Sprintf("--- %s Report for: %s ---", kind, token)
}

// ReportStore persists the daily and monthly report archives in two
// separate files.
type ReportStore struct {
	dailyPath   string
	monthlyPath string
	mu          sync.Mutex
	log         zerolog.Logger
}

var _ reports.Store = (*ReportStore)(nil)

// NewReportStore returns a store writing daily and monthly archives to the
// given paths.
func NewReportStore(dailyPath, monthlyPath string, logger zerolog.Logger) *ReportStore {
	return &ReportStore{
		dailyPath:   dailyPath,
		monthlyPath: monthlyPath,
		log:         logger.With().Str("component", "reportstore").Logger(),
	}
}

func (s *ReportStore) pathFor(kind reports.Kind) string {
	if kind == reports.KindMonthly {
		return s.monthlyPath
	}
	return s.dailyPath
}

// Dates returns every date token present in the archive, in file order.
func (s *ReportStore) Dates(ctx context.Context, kind reports.Kind) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := readLines(s.pathFor(kind))
	if err != nil {
		return nil, fmt.Errorf("read %s reports: %w", kind, err)
	}

	prefix := fmt.Sprintf("--- %s Report for: ", kind)
	const suffix = " ---"

	var tokens []string
	for _, line := range lines {
		rest, ok := strings.CutPrefix(line, prefix)
		if !ok {
			continue
		}
		token, ok := strings.CutSuffix(rest, suffix)
		if !ok {
			continue
		}
		tokens = append(tokens, strings.TrimSpace(token))
	}
	return tokens, nil
}

// Get returns the full block for a token, header through footer. Lines are
// copied verbatim. Returns ErrNotFound when no block matches.
func (s *ReportStore) Get(ctx context.Context, kind reports.Kind, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := readLines(s.pathFor(kind))
	if err != nil {
		return "", fmt.Errorf("read %s reports: %w", kind, err)
	}

	header := reportHeader(kind, token)
	var block []string
	inside := false
	for _, line := range lines {
		if !inside {
			if line == header {
				inside = true
				block = append(block, line)
			}
			continue
		}
		block = append(block, line)
		if strings.TrimSpace(line) == reportFooter {
			return strings.Join(block, "\n"), nil
		}
	}
	if inside {
		// Truncated trailing block; return what is there.
		return strings.Join(block, "\n"), nil
	}
	return "", reports.ErrNotFound
}

// Append adds a new block for the token. Appending an existing token
// stores a duplicate block rather than replacing the old one.
func (s *ReportStore) Append(ctx context.Context, kind reports.Kind, token string, body []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	block := make([]string, 0, len(body)+2)
	block = append(block, reportHeader(kind, token))
	block = append(block, body...)
	block = append(block, reportFooter)

	if err := appendLines(s.pathFor(kind), block); err != nil {
		return fmt.Errorf("append %s report: %w", kind, err)
	}
	return nil
}
