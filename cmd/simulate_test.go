package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skimscoop/thomas"
	"github.com/skimscoop/thomas/date"
)

func TestWriteOutputs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	rep := &thomas.Report{
		Date: date.New(2025, 7, 31),
		Actions: []thomas.Action{
			{
				Date:      date.New(2025, 7, 31),
				Symbol:    "JEPQ",
				Kind:      thomas.Skim,
				Shares:    thomas.Q(100),
				Price:     thomas.USD(55),
				CashDelta: thomas.USD(5500),
				Reason:    "Gain 10.0% ≥ 0; sold 100.00 to lock profit and add to cash.",
			},
		},
		Cash: thomas.USD(5500),
		Positions: []thomas.Position{
			{Symbol: "JEPQ", Shares: thomas.Q(0), CostBasis: thomas.USD(50), Price: thomas.USD(55), DividendYield: thomas.Q(0.11)},
		},
	}

	actionsPath, portfolioPath, err := writeOutputs(dir, rep)
	if err != nil {
		t.Fatalf("writeOutputs() error = %v", err)
	}

	if want := filepath.Join(dir, "actions_20250731.csv"); actionsPath != want {
		t.Errorf("actions path = %q, want %q", actionsPath, want)
	}
	if want := filepath.Join(dir, "portfolio_after.csv"); portfolioPath != want {
		t.Errorf("portfolio path = %q, want %q", portfolioPath, want)
	}

	actions, err := os.ReadFile(actionsPath)
	if err != nil {
		t.Fatalf("reading actions: %v", err)
	}
	if !strings.Contains(string(actions), "JEPQ,Skim,100.00,55.00,5500.00") {
		t.Errorf("actions file missing skim row:\n%s", actions)
	}

	after, err := os.ReadFile(portfolioPath)
	if err != nil {
		t.Fatalf("reading portfolio: %v", err)
	}
	if !strings.HasPrefix(string(after), "Symbol,Shares,CostBasis,CurrentPrice,DividendYield") {
		t.Errorf("portfolio file missing header:\n%s", after)
	}
}

func TestScorePanelNamesTheTicker(t *testing.T) {
	table := thomas.DefaultTable()
	for _, tc := range []struct {
		ticker string
		score  int
	}{
		{"JEPQ", 5},
		{"SCHD", 4},
		{"VTI", 3},
		{"TSLA", 1},
	} {
		t.Run(tc.ticker, func(t *testing.T) {
			r := table.Score(tc.ticker)
			if r.Score != tc.score {
				t.Fatalf("Score(%s) = %d, want %d", tc.ticker, r.Score, tc.score)
			}
			panel := scorePanel(tc.ticker, r)
			if !strings.Contains(panel, tc.ticker) {
				t.Errorf("panel does not name the ticker:\n%s", panel)
			}
			if !strings.Contains(panel, r.Label) {
				t.Errorf("panel does not show the label:\n%s", panel)
			}
		})
	}
}
