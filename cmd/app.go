// Package cmd implements the CLI application around the skim/scoop
// simulator. A main package calls Register() to install the subcommands and
// Execute() on the user-selected one.
package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "help")
	c.Register(c.FlagsCommand(), "help")
	c.Register(c.CommandsCommand(), "help")

	c.Register(&simulateCmd{}, "simulation")
	c.Register(&pricesCmd{}, "simulation")
	c.Register(&historyCmd{}, "simulation")

	c.Register(&buildCmd{}, "planning")
	c.Register(&incomeCmd{}, "planning")
	c.Register(&scoreCmd{}, "planning")

	c.Register(&assistCmd{}, "help")
	c.Register(&topicCmd{}, "help")
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the terminal renderer cannot be built.
func printMarkdown(content string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err == nil {
		if out, rerr := r.Render(content); rerr == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Println(content)
}
