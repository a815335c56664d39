package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/google/subcommands"
	"github.com/skimscoop/thomas"
	"github.com/skimscoop/thomas/renderer"
)

type buildCmd struct {
	amount  float64
	goal    float64
	account string
	models  string
}

var accountTypes = []string{
	"Regular taxable account",
	"Qualified retirement account",
	"Both",
}

func (*buildCmd) Name() string     { return "build" }
func (*buildCmd) Synopsis() string { return "suggest a starter portfolio for an amount and income goal" }
func (*buildCmd) Usage() string {
	return `thomas build [-amount <dollars>] [-goal <dollars/month>] [-account <type>] [-models <file>]

  Picks the starter-portfolio tier for the amount you can invest and projects
  its dividend income against your monthly goal. Flags left out are asked
  interactively.
`
}

func (c *buildCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "Total amount available to invest, in dollars.")
	f.Float64Var(&c.goal, "goal", 0, "Desired additional monthly income, in dollars.")
	f.StringVar(&c.account, "account", "", "Account type: taxable, retirement or both.")
	f.StringVar(&c.models, "models", "", "YAML file overriding the built-in model tiers.")
}

func (c *buildCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.ask(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	table, err := thomas.LoadTable(c.models)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading models: %v\n", err)
		return subcommands.ExitFailure
	}

	model := table.ModelFor(c.amount)
	est := thomas.EstimateIncome(model, c.amount)

	fmt.Printf("Account type: %s\n", c.account)
	printMarkdown(renderer.ModelMarkdown(model, est, c.goal))
	return subcommands.ExitSuccess
}

// ask fills the flags the user left out, interactively.
func (c *buildCmd) ask() error {
	if c.amount <= 0 {
		v, err := askPositiveAmount("How much money do you have available to invest right now?")
		if err != nil {
			return err
		}
		c.amount = v
	}
	if c.account == "" {
		prompt := &survey.Select{
			Message: "What type of account will you be using?",
			Options: accountTypes,
			Default: accountTypes[0],
		}
		if err := survey.AskOne(prompt, &c.account); err != nil {
			return err
		}
	}
	if c.goal <= 0 {
		v, err := askPositiveAmount("How much additional monthly income would you like to generate?")
		if err != nil {
			return err
		}
		c.goal = v
	}
	return nil
}

// askPositiveAmount prompts for a positive dollar amount.
func askPositiveAmount(message string) (float64, error) {
	var answer string
	prompt := &survey.Input{
		Message: message,
		Help:    "A plain dollar amount, e.g. 100000.",
	}
	err := survey.AskOne(prompt, &answer, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return fmt.Errorf("enter a plain number, e.g. 100000")
		}
		if v <= 0 {
			return fmt.Errorf("the amount must be positive")
		}
		return nil
	}))
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(answer), 64)
}
