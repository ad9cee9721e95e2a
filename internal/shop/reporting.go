package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shopterm/shopterm/internal/core/reports"
	"github.com/shopterm/shopterm/internal/core/sales"
)

// Reporting screen prompts.
const (
	repPromptMenu = "Welcome, Executive.\n\nCommands:\n1. View daily reports\n2. View monthly reports\n3. Exit\nInput: "
	repMenuDaily  = "Commands:\n1 [YYYY-MM-DD]. Select report\n2. Return to welcome screen\nInput: "
	repMenuMonth  = "Commands:\n1 [YYYY-MM]. Select report\n2. Return to welcome screen\nInput: "
)

// ReportingCoordinator owns the executive report browser and report
// generation.
type ReportingCoordinator struct {
	reports reports.Store
	sales   sales.Log
	log     zerolog.Logger
}

var _ Coordinator = (*ReportingCoordinator)(nil)

// NewReportingCoordinator returns a coordinator over the report archives
// and the raw sales log.
func NewReportingCoordinator(store reports.Store, salesLog sales.Log, logger zerolog.Logger) *ReportingCoordinator {
	return &ReportingCoordinator{
		reports: store,
		sales:   salesLog,
		log:     logger.With().Str("component", "reporting").Logger(),
	}
}

// Handle runs one REPORTING turn.
func (c *ReportingCoordinator) Handle(ctx context.Context, s *Session, env Envelope) Envelope {
	input := strings.TrimSpace(env.Text)

	switch s.rep.screen {
	case repScreenInit:
		// First arrival; any text is a handoff notice, not a command.
		s.rep.screen = repScreenMenu
		text := repPromptMenu
		if input != "" {
			text = input + "\n\n" + repPromptMenu
		}
		return Envelope{Dest: SubsystemReporting, Text: text}
	case repScreenMenu:
		return c.handleMenu(ctx, s, input)
	case repScreenDaily:
		return c.handleSelection(ctx, s, input, reports.KindDaily)
	case repScreenMonthly:
		return c.handleSelection(ctx, s, input, reports.KindMonthly)
	default:
		s.rep = reportingFlow{screen: repScreenMenu}
		return Envelope{Dest: SubsystemReporting, Text: repPromptMenu}
	}
}

func (c *ReportingCoordinator) handleMenu(ctx context.Context, s *Session, input string) Envelope {
	switch input {
	case "":
		return Envelope{Dest: SubsystemReporting, Text: repPromptMenu}
	case "1":
		s.rep.screen = repScreenDaily
		return c.renderSelection(ctx, reports.KindDaily)
	case "2":
		s.rep.screen = repScreenMonthly
		return c.renderSelection(ctx, reports.KindMonthly)
	case "3":
		s.rep = reportingFlow{}
		return Envelope{Dest: SubsystemAccount}
	default:
		return Envelope{Dest: SubsystemReporting, Text: "Invalid selection.\nHit [ENTER] to return to the welcome screen."}
	}
}

func (c *ReportingCoordinator) handleSelection(ctx context.Context, s *Session, input string, kind reports.Kind) Envelope {
	if input == "" {
		return c.renderSelection(ctx, kind)
	}

	fields := strings.Fields(input)
	switch fields[0] {
	case "1":
		if len(fields) != 2 {
			return Envelope{Dest: SubsystemReporting, Text: "Usage: \"1 REPORT_DATE\"\nHit [ENTER] to return to report selection."}
		}
		block, err := c.reports.Get(ctx, kind, fields[1])
		if err != nil {
			if !errors.Is(err, reports.ErrNotFound) {
				c.log.Error().Err(err).Str("token", fields[1]).Msg("failed to read report")
			}
			return Envelope{Dest: SubsystemReporting, Text: "Report not found.\nHit [ENTER] to return to report selection."}
		}
		text := "================ REPORT VIEW ================\n" +
			block +
			"\n=============================================\n" +
			"Hit [ENTER] to return to the previous screen."
		return Envelope{Dest: SubsystemReporting, Text: text}
	case "2":
		s.rep.screen = repScreenMenu
		return Envelope{Dest: SubsystemReporting, Text: repPromptMenu}
	default:
		return Envelope{Dest: SubsystemReporting, Text: "Unknown command.\nHit [ENTER] to return to report selection."}
	}
}

func (c *ReportingCoordinator) renderSelection(ctx context.Context, kind reports.Kind) Envelope {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Available %s Reports ---\n", kind)

	dates, err := c.reports.Dates(ctx, kind)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to list reports")
	}
	if len(dates) == 0 {
		sb.WriteString("No reports found.\n")
	}
	for _, d := range dates {
		sb.WriteString("- " + d + "\n")
	}

	if kind == reports.KindMonthly {
		sb.WriteString(repMenuMonth)
	} else {
		sb.WriteString(repMenuDaily)
	}
	return Envelope{Dest: SubsystemReporting, Text: sb.String()}
}

// GenerateDaily tallies the sales log for one ISO day and appends a new
// daily report block. Reports are append-only: generating twice for the
// same date stores a duplicate block.
func (c *ReportingCoordinator) GenerateDaily(ctx context.Context, date string) error {
	records, err := c.sales.All(ctx)
	if err != nil {
		return fmt.Errorf("read sales: %w", err)
	}

	body := reports.Body(reports.Tally(reports.FilterByDate(records, date)))
	if err := c.reports.Append(ctx, reports.KindDaily, date, body); err != nil {
		return fmt.Errorf("append daily report: %w", err)
	}
	c.log.Info().Str("date", date).Msg("daily report generated")
	return nil
}

// GenerateMonthly tallies the sales log for one YYYY-MM month and appends
// a new monthly report block.
func (c *ReportingCoordinator) GenerateMonthly(ctx context.Context, month string) error {
	records, err := c.sales.All(ctx)
	if err != nil {
		return fmt.Errorf("read sales: %w", err)
	}

	body := reports.Body(reports.Tally(reports.FilterByMonth(records, month)))
	if err := c.reports.Append(ctx, reports.KindMonthly, month, body); err != nil {
		return fmt.Errorf("append monthly report: %w", err)
	}
	c.log.Info().Str("month", month).Msg("monthly report generated")
	return nil
}
