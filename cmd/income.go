package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/skimscoop/thomas"
	"github.com/skimscoop/thomas/renderer"
)

type incomeCmd struct {
	portfolio string
	goal      float64
}

func (*incomeCmd) Name() string     { return "income" }
func (*incomeCmd) Synopsis() string { return "project monthly dividend income for a portfolio" }
func (*incomeCmd) Usage() string {
	return `thomas income -portfolio <file.csv> [-goal <dollars/month>]

  Estimates the annual and monthly dividend income each holding generates at
  its current price and yield, and compares the total against your monthly goal.
`
}

func (c *incomeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "portfolio", "", "Portfolio CSV file to read.")
	f.Float64Var(&c.goal, "goal", 0, "Desired monthly income, in dollars. 0 skips the comparison.")
}

func (c *incomeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	positions, err := loadPortfolio(c.portfolio)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	est := thomas.EstimateHoldingsIncome(positions)
	printMarkdown(renderer.IncomeMarkdown(est, c.goal))
	return subcommands.ExitSuccess
}
