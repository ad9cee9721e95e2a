package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/shopterm/shopterm/internal/core/reports"
	"github.com/shopterm/shopterm/internal/core/sales"
)

type ReportCmd struct {
	flags *Flags
}

// NewReportCmd creates a new report command
func NewReportCmd(flags *Flags) *ReportCmd {
	return &ReportCmd{flags: flags}
}

// Register adds the report command to the application
func (cmd *ReportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "report",
		Usage:     "Generate sales reports outside the console",
		UsageText: "shopterm report <daily|monthly> [token]",
		Description: `Tallies the sales log and appends a report block to the archive, the same
way the console's automatic generation does. Tokens default to the current
day (YYYY-MM-DD) or month (YYYY-MM).`,
		Commands: []*cli.Command{
			{
				Name:      "daily",
				Usage:     "Generate a daily report",
				UsageText: "shopterm report daily [YYYY-MM-DD]",
				Action:    cmd.runDaily,
			},
			{
				Name:      "monthly",
				Usage:     "Generate a monthly report",
				UsageText: "shopterm report monthly [YYYY-MM]",
				Action:    cmd.runMonthly,
			},
		},
	})

	return app
}

func (cmd *ReportCmd) runDaily(ctx context.Context, c *cli.Command) error {
	date := c.Args().First()
	if date == "" {
		date = time.Now().Format(sales.DateLayout)
	}
	if _, err := time.Parse(sales.DateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q, want YYYY-MM-DD", date)
	}

	if err := cmd.flags.App.Reporting.GenerateDaily(ctx, date); err != nil {
		return fmt.Errorf("generate daily report: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Daily report for %s written\n", date)
	return nil
}

func (cmd *ReportCmd) runMonthly(ctx context.Context, c *cli.Command) error {
	month := c.Args().First()
	if month == "" {
		month = time.Now().Format(reports.MonthLayout)
	}
	if _, err := time.Parse(reports.MonthLayout, month); err != nil {
		return fmt.Errorf("invalid month %q, want YYYY-MM", month)
	}

	if err := cmd.flags.App.Reporting.GenerateMonthly(ctx, month); err != nil {
		return fmt.Errorf("generate monthly report: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Monthly report for %s written\n", month)
	return nil
}
