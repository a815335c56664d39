package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/subcommands"
	"github.com/skimscoop/thomas"
)

type scoreCmd struct {
	ratings string
}

func (*scoreCmd) Name() string     { return "score" }
func (*scoreCmd) Synopsis() string { return "rate tickers on the 1-5 income suitability scale" }
func (*scoreCmd) Usage() string {
	return `thomas score [-ratings <file>] <ticker> [ticker...]

  Rates each ticker for income investing with a score from 1 to 5 and a short
  comment. Unknown tickers fall back to the lowest rating.
`
}

func (c *scoreCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ratings, "ratings", "", "YAML file overriding the built-in ratings.")
}

var (
	scoreColors = map[int]lipgloss.Color{
		5: lipgloss.Color("#10B981"),
		4: lipgloss.Color("#3B82F6"),
		3: lipgloss.Color("#F59E0B"),
	}
	scoreFallbackColor = lipgloss.Color("#EF4444")
)

func (c *scoreCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one ticker is required")
		return subcommands.ExitUsageError
	}

	table, err := thomas.LoadTable(c.ratings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ratings: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, ticker := range f.Args() {
		r := table.Score(ticker)
		fmt.Println(scorePanel(strings.ToUpper(strings.TrimSpace(ticker)), r))
	}
	return subcommands.ExitSuccess
}

// scorePanel renders one rating as a bordered panel colored by score band.
func scorePanel(ticker string, r thomas.Rating) string {
	color, ok := scoreColors[r.Score]
	if !ok {
		color = scoreFallbackColor
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(color).
		Render(fmt.Sprintf("%s  TomScore %d/5", ticker, r.Score))
	label := lipgloss.NewStyle().Bold(true).Render(r.Label)
	body := lipgloss.NewStyle().Faint(true).Render(r.Comment)

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(72)

	return panel.Render(title + "\n" + label + "\n" + body)
}
