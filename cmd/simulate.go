package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/skimscoop/thomas"
	"github.com/skimscoop/thomas/date"
	"github.com/skimscoop/thomas/history"
	"github.com/skimscoop/thomas/renderer"
)

type simulateCmd struct {
	portfolio string
	cash      float64
	scoop     float64
	minSkim   float64
	outDir    string
	date      string
	db        string
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "run one skim/scoop pass over a portfolio" }
func (*simulateCmd) Usage() string {
	return `thomas simulate -portfolio <file> -cash <amount> [-scoop-amount <amount>] [-min-skim-proceeds <amount>] [-out-dir <dir>] [-d <date>] [-db <file>]

  Loads the portfolio CSV, applies the skim/scoop rules once, writes the
  action log and the after snapshot under the output directory, and prints
  the report. Everything is a simulation; no order is ever placed.

Usage Examples:
# Simulate with $10,000 of cash available for scoops.
$ thomas simulate -portfolio portfolio.csv -cash 10000

`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "portfolio", "", "Path to the portfolio CSV (required).")
	f.Float64Var(&c.cash, "cash", -1, "Available cash balance for scoops (required).")
	f.Float64Var(&c.scoop, "scoop-amount", 10.0, "Dollar amount to spend per scoop action.")
	f.Float64Var(&c.minSkim, "min-skim-proceeds", 10.0, "Minimum proceeds required for a skim.")
	f.StringVar(&c.outDir, "out-dir", "out", "Output directory for the CSV logs.")
	f.StringVar(&c.date, "d", "", "Simulation date (defaults to today). See 'thomas topic csv'.")
	f.StringVar(&c.db, "db", "", "SQLite file to record the run into. Empty disables recording.")
}

func (c *simulateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.portfolio == "" {
		fmt.Fprintln(os.Stderr, "-portfolio is required")
		return subcommands.ExitUsageError
	}
	if c.cash < 0 {
		fmt.Fprintln(os.Stderr, "-cash is required and must not be negative")
		return subcommands.ExitUsageError
	}
	if c.scoop <= 0 || c.minSkim <= 0 {
		fmt.Fprintln(os.Stderr, "-scoop-amount and -min-skim-proceeds must be positive")
		return subcommands.ExitUsageError
	}

	opts := thomas.Options{
		ScoopAmount:     thomas.USD(c.scoop),
		MinSkimProceeds: thomas.USD(c.minSkim),
	}
	if c.date != "" {
		on, err := date.Parse(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		opts.Date = on
	}

	positions, err := loadPortfolio(c.portfolio)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio %q: %v\n", c.portfolio, err)
		return subcommands.ExitFailure
	}

	engine := thomas.NewEngine(positions, thomas.USD(c.cash), opts)
	if err := engine.Evaluate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running simulation: %v\n", err)
		return subcommands.ExitFailure
	}
	rep := engine.Report()

	actionsPath, portfolioPath, err := writeOutputs(c.outDir, rep)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing outputs: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := c.record(rep); err != nil {
		// the simulation succeeded; a recording failure is a warning
		fmt.Fprintf(os.Stderr, "Warning: could not record run: %v\n", err)
	}

	printMarkdown(renderer.ReportMarkdown(rep))
	fmt.Printf("Wrote: %s\n", actionsPath)
	fmt.Printf("Wrote: %s\n", portfolioPath)
	return subcommands.ExitSuccess
}

// writeOutputs writes the action log and after snapshot CSVs under outDir.
func writeOutputs(outDir string, rep *thomas.Report) (actionsPath, portfolioPath string, err error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", "", err
	}

	actionsPath = filepath.Join(outDir, fmt.Sprintf("actions_%s.csv", rep.Date.Compact()))
	af, err := os.Create(actionsPath)
	if err != nil {
		return "", "", err
	}
	defer af.Close()
	if err := thomas.WriteActions(af, rep.Actions); err != nil {
		return "", "", err
	}

	portfolioPath = filepath.Join(outDir, "portfolio_after.csv")
	pf, err := os.Create(portfolioPath)
	if err != nil {
		return "", "", err
	}
	defer pf.Close()
	if err := thomas.WritePortfolio(pf, rep.Positions); err != nil {
		return "", "", err
	}
	return actionsPath, portfolioPath, nil
}

// record stores the run in the history database when one is configured.
func (c *simulateCmd) record(rep *thomas.Report) error {
	var rec history.Recorder = history.NewNoopRecorder()
	if c.db != "" {
		var err error
		rec, err = history.NewSQLiteRecorder(c.db)
		if err != nil {
			return err
		}
	}
	defer rec.Close()

	run := &history.Run{
		Date:       rep.Date.String(),
		Portfolio:  c.portfolio,
		CashBefore: c.cash,
		CashAfter:  rep.Cash.InexactFloat64(),
	}
	for _, a := range rep.Actions {
		run.Actions = append(run.Actions, history.RunAction{
			Symbol:    a.Symbol,
			Kind:      string(a.Kind),
			Shares:    a.Shares.InexactFloat64(),
			Price:     a.Price.InexactFloat64(),
			CashDelta: a.CashDelta.InexactFloat64(),
			Reason:    a.Reason,
		})
	}
	return rec.RecordRun(run)
}

// loadPortfolio opens and parses a portfolio CSV.
func loadPortfolio(path string) ([]thomas.Position, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return thomas.ReadPortfolio(f)
}
