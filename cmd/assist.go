package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/skimscoop/thomas/advisor"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI advisor.
type assistCmd struct {
	portfolio string
	cash      float64
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI advisor" }
func (*assistCmd) Usage() string {
	return `thomas assist -portfolio <file.csv> [-cash <amount>] [prompt...]

  Starts an interactive session with the advisor. It can show the portfolio,
  run skim/scoop simulations, and explain the method. It never places orders.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "portfolio", "", "Portfolio CSV the advisor can read and simulate on.")
	f.Float64Var(&c.cash, "cash", 0, "Cash balance used when the advisor runs a simulation.")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	expert := advisor.NewThomas(c.portfolio, c.cash)
	a := advisor.New(os.Stdout, os.Stdin, expert)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Advisor failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
