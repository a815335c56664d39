package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"
	"github.com/skimscoop/thomas/history"
	"github.com/skimscoop/thomas/renderer"
)

type historyCmd struct {
	db    string
	limit int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list recorded simulation runs" }
func (*historyCmd) Usage() string {
	return `thomas history -db <file> [-n <count>] [run-id]

  Lists the recorded runs, newest first. With a run id, lists that run's
  actions instead.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.db, "db", "", "SQLite file the runs were recorded into (required).")
	f.IntVar(&c.limit, "n", 20, "Maximum number of runs to list.")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.db == "" {
		fmt.Fprintln(os.Stderr, "-db is required")
		return subcommands.ExitUsageError
	}

	rec, err := history.NewSQLiteRecorder(c.db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.db, err)
		return subcommands.ExitFailure
	}
	defer rec.Close()

	if f.NArg() > 0 {
		id, err := strconv.ParseInt(f.Arg(0), 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: run id must be a number, got %q\n", f.Arg(0))
			return subcommands.ExitUsageError
		}
		actions, err := rec.Actions(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.RunActionsMarkdown(id, actions))
		return subcommands.ExitSuccess
	}

	runs, err := rec.Runs(c.limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RunsMarkdown(runs))
	return subcommands.ExitSuccess
}
