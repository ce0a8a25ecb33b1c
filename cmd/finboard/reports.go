package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/subcommands"

	"finboard/internal/cli"
	"finboard/internal/core"
	"finboard/internal/ledger"
)

// withApp boots the service for a one-shot report and tears it down after.
func withApp(ctx context.Context, fn func(app *cli.App) error) subcommands.ExitStatus {
	app, err := cli.Bootstrap(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer app.Close()

	if err := fn(app); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print ledger totals" }
func (*summaryCmd) Usage() string {
	return `finboard summary

  Prints income, expense and investment totals with balance and savings.
  Data comes from $SEED_FILE; nothing persists between runs.
`
}
func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(app *cli.App) error {
		sum, err := app.Service.Summary(ctx)
		if err != nil {
			return err
		}
		printSummary(os.Stdout, sum, app.Config.Currency)
		return nil
	})
}

func printSummary(w io.Writer, sum core.Summary, currency string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Income\t%s\t\n", core.FormatAmount(sum.TotalIncome, currency))
	fmt.Fprintf(tw, "Expenses\t%s\t\n", core.FormatAmount(sum.TotalExpenses, currency))
	fmt.Fprintf(tw, "Investments\t%s\t\n", core.FormatAmount(sum.TotalInvestments, currency))
	fmt.Fprintf(tw, "Balance\t%s\t\n", core.FormatAmount(sum.Balance, currency))
	fmt.Fprintf(tw, "Savings\t%s\t\n", core.FormatAmount(sum.Savings, currency))
	tw.Flush()
}

type seriesCmd struct {
	period  int
	balance bool
}

func (*seriesCmd) Name() string     { return "series" }
func (*seriesCmd) Synopsis() string { return "print daily income and expenses" }
func (*seriesCmd) Usage() string {
	return `finboard series [-period <days>] [-balance]

  Prints one row per calendar day, oldest first. Presets: 7, 30, 90, 365.
`
}

func (c *seriesCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.period, "period", 0, "number of days (defaults to $DEFAULT_PERIOD_DAYS)")
	f.BoolVar(&c.balance, "balance", false, "print the running balance instead")
}

func (c *seriesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(app *cli.App) error {
		period := c.period
		if period == 0 {
			period = app.Config.DefaultPeriodDays
		}
		if c.balance {
			points, err := app.Service.BalanceSeries(ctx, period)
			if err != nil {
				return err
			}
			printBalance(os.Stdout, points, app.Config.Currency)
			return nil
		}
		series, err := app.Service.Series(ctx, period)
		if err != nil {
			return err
		}
		printSeries(os.Stdout, series, app.Config.Currency)
		return nil
	})
}

func printSeries(w io.Writer, s core.Series, currency string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Day\tIncome\tExpenses\t")
	for i, label := range s.Labels {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", label,
			core.FormatAmount(s.Income[i], currency),
			core.FormatAmount(s.Expenses[i], currency))
	}
	tw.Flush()
}

func printBalance(w io.Writer, points []core.BalancePoint, currency string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Day\tBalance\t")
	for _, p := range points {
		fmt.Fprintf(tw, "%s\t%s\t\n", p.Label, core.FormatAmount(p.Balance, currency))
	}
	tw.Flush()
}

type goalsCmd struct{}

func (*goalsCmd) Name() string     { return "goals" }
func (*goalsCmd) Synopsis() string { return "print savings goals and progress" }
func (*goalsCmd) Usage() string {
	return `finboard goals

  Prints each goal with current amount, target and percent reached.
`
}
func (*goalsCmd) SetFlags(*flag.FlagSet) {}

func (c *goalsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(app *cli.App) error {
		goals, err := app.Service.ListGoals(ctx)
		if err != nil {
			return err
		}
		printGoals(os.Stdout, goals, app.Config.Currency)
		return nil
	})
}

func printGoals(w io.Writer, goals []core.Goal, currency string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Goal\tCurrent\tTarget\tProgress")
	for _, g := range goals {
		pct := ledger.GoalProgressPercent(g)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%3d%% %s\n", g.Name,
			core.FormatAmount(g.Current, currency),
			core.FormatAmount(g.Target, currency),
			pct, progressBar(pct, 20))
	}
	tw.Flush()
}

// progressBar renders pct (0-100) as a bar width cells wide.
func progressBar(pct, width int) string {
	filled := min(max(pct*width/100, 0), width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

type transactionsCmd struct {
	limit int
}

func (*transactionsCmd) Name() string     { return "transactions" }
func (*transactionsCmd) Synopsis() string { return "print recent transactions" }
func (*transactionsCmd) Usage() string {
	return `finboard transactions [-n <count>]

  Prints transactions, most recent first.
`
}

func (c *transactionsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 5, "number of transactions (0 for all)")
}

func (c *transactionsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(app *cli.App) error {
		txs, err := app.Service.ListTransactions(ctx, c.limit)
		if err != nil {
			return err
		}
		printTransactions(os.Stdout, txs, app.Config.Currency)
		return nil
	})
}

func printTransactions(w io.Writer, txs []core.Transaction, currency string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Date\tType\tCategory\tVendor\tAmount")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			tx.Date.Format("2006-01-02"), tx.Type, core.CategoryName(tx.Category), tx.Vendor,
			core.FormatAmount(tx.Amount, currency))
	}
	tw.Flush()
}
