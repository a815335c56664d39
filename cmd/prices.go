package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/skimscoop/thomas"
	"github.com/skimscoop/thomas/quotes"
)

type pricesCmd struct {
	portfolio string
	dryRun    bool
}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "refresh the CurrentPrice column from market quotes" }
func (*pricesCmd) Usage() string {
	return `thomas prices -portfolio <file.csv> [-n]

  Fetches the latest quote for every symbol in the portfolio and rewrites the
  CurrentPrice column in place. Symbols with no quote keep their current price.
`
}

func (c *pricesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "portfolio", "", "Portfolio CSV file to update.")
	f.BoolVar(&c.dryRun, "n", false, "Dry run. Print the new prices without rewriting the file.")
}

func (c *pricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	positions, err := loadPortfolio(c.portfolio)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	symbols := make([]string, 0, len(positions))
	for _, pos := range positions {
		symbols = append(symbols, pos.Symbol)
	}

	prices, err := quotes.Latest(quotes.Daily(), symbols)
	if err != nil {
		// Partial results are still usable; report the misses and move on.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if len(prices) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no quotes received, portfolio left untouched")
		return subcommands.ExitFailure
	}

	for i := range positions {
		price, ok := prices[positions[i].Symbol]
		if !ok {
			continue
		}
		old := positions[i].Price
		positions[i].Price = thomas.USD(price)
		fmt.Printf("%s: %s -> %s\n", positions[i].Symbol, old.StringFixed(2), positions[i].Price.StringFixed(2))
	}

	if c.dryRun {
		fmt.Println("Dry run, file not rewritten.")
		return subcommands.ExitSuccess
	}

	out, err := os.Create(c.portfolio)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer out.Close()
	if err := thomas.WritePortfolio(out, positions); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Wrote: %s\n", c.portfolio)
	return subcommands.ExitSuccess
}
