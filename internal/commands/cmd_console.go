package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/shopterm/shopterm/internal/core/reports"
	"github.com/shopterm/shopterm/internal/core/sales"
	"github.com/shopterm/shopterm/internal/core/styles"
	"github.com/shopterm/shopterm/internal/shop"
)

// ansiClear homes the cursor and wipes the screen between settled turns.
const ansiClear = "\033[H\033[2J"

type ConsoleCmd struct {
	flags *Flags

	// Dedup state for automatic report generation. Reports are
	// append-only, so without this every console turn inside the window
	// would stack another block.
	lastDaily   string
	lastMonthly string

	now func() time.Time
}

// NewConsoleCmd creates a new console command
func NewConsoleCmd(flags *Flags) *ConsoleCmd {
	return &ConsoleCmd{flags: flags, now: time.Now}
}

// Register adds the console command to the application
func (cmd *ConsoleCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "console",
		Usage:     "Run the interactive storefront console",
		UsageText: "shopterm console",
		Description: `Starts the turn-based storefront on stdin/stdout. Each line of input is
one turn; the prompt shown is always the screen of the subsystem that
currently owns the conversation.

This is also the default action when no subcommand is given.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *ConsoleCmd) run(ctx context.Context, c *cli.Command) error {
	return cmd.Run(ctx, c)
}

// Run drives the console loop until stdin closes or the context is
// cancelled.
func (cmd *ConsoleCmd) Run(ctx context.Context, c *cli.Command) error {
	app := cmd.flags.App
	out := c.Root().Writer

	fmt.Fprintln(out, styles.BannerStyle.Render("shopterm"))
	fmt.Fprintln(out, styles.BannerRule.Render("========================================"))

	session := shop.NewSession()

	// First screen: an empty turn addressed to the starting owner.
	settled := app.Router.Dispatch(ctx, session, shop.Envelope{Dest: app.Router.Owner()})
	fmt.Fprint(out, settled.Text)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd.maybeGenerateReports(ctx)

		settled = app.Router.Dispatch(ctx, session, shop.Envelope{
			Dest: app.Router.Owner(),
			Text: scanner.Text(),
		})

		if app.Config.ClearScreen {
			fmt.Fprint(out, ansiClear)
		}
		fmt.Fprint(out, settled.Text)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	// Stdin closed mid-conversation; a logged-in account may carry
	// unsaved cart edits.
	app.Accounts.PersistCurrent(ctx, session)

	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.ShutdownStyle.Render("Goodbye."))
	return nil
}

// maybeGenerateReports appends the daily report once per day inside the
// configured clock window, and the monthly report once per month when the
// window falls on the month's last day.
func (cmd *ConsoleCmd) maybeGenerateReports(ctx context.Context) {
	app := cmd.flags.App
	if !app.Config.Reports.Auto {
		return
	}

	now := cmd.now()
	start, end := app.Config.Window()
	clock, _ := time.Parse("15:04", now.Format("15:04"))
	if clock.Before(start) || clock.After(end) {
		return
	}

	day := now.Format(sales.DateLayout)
	if cmd.lastDaily != day {
		if err := app.Reporting.GenerateDaily(ctx, day); err != nil {
			log.Error().Err(err).Str("date", day).Msg("automatic daily report failed")
		} else {
			cmd.lastDaily = day
		}
	}

	month := now.Format(reports.MonthLayout)
	if lastDayOfMonth(now) && cmd.lastMonthly != month {
		if err := app.Reporting.GenerateMonthly(ctx, month); err != nil {
			log.Error().Err(err).Str("month", month).Msg("automatic monthly report failed")
		} else {
			cmd.lastMonthly = month
		}
	}
}

func lastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Month() != t.Month()
}
