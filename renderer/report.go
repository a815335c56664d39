// Package renderer turns simulation results into markdown for the terminal.
// It only consumes the engine's outputs; it never reaches into the pass.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/skimscoop/thomas"
)

// ReportMarkdown renders a full simulation report: the action log, the
// portfolio snapshot after the pass, and the plain-English summary.
func ReportMarkdown(rep *thomas.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Skim/Scoop Simulation on %s", rep.Date))

	if len(rep.Actions) > 0 {
		doc.H2("Action Log")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignLeft,
			},
			Header: []string{"Date", "Symbol", "Action", "Shares", "Price", "CashDelta", "Reason"},
			Rows:   [][]string{},
		}
		for _, a := range rep.Actions {
			table.Rows = append(table.Rows, []string{
				a.Date.String(),
				a.Symbol,
				string(a.Kind),
				a.Shares.StringFixed(2),
				a.Price.StringFixed(2),
				a.CashDelta.StringFixed(2),
				a.Reason,
			})
		}
		doc.Table(table)
	}

	doc.H2("Portfolio After")
	doc.Table(positionsTable(rep.Positions))

	doc.H2("Summary")
	for _, line := range SummaryLines(rep) {
		doc.PlainText(line)
	}

	return doc.String()
}

// PortfolioMarkdown renders a position snapshot on its own, the way the
// assistant shows the current portfolio.
func PortfolioMarkdown(positions []thomas.Position) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Portfolio")
	doc.Table(positionsTable(positions))
	return doc.String()
}

func positionsTable(positions []thomas.Position) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Shares", "CostBasis", "CurrentPrice", "DividendYield", "CoreShares"},
		Rows:   [][]string{},
	}
	for _, p := range positions {
		table.Rows = append(table.Rows, []string{
			p.Symbol,
			p.Shares.StringFixed(2),
			p.CostBasis.StringFixed(2),
			p.Price.StringFixed(2),
			p.DividendYield.StringFixed(6),
			p.CoreShares.StringFixed(2),
		})
	}
	return table
}

// SummaryLines renders the plain-English recommendation lines, one per
// action, followed by the ending cash balance.
func SummaryLines(rep *thomas.Report) []string {
	var lines []string
	if len(rep.Actions) == 0 {
		lines = append(lines, "No actions today — all positions within safe ranges.")
	}
	for _, a := range rep.Actions {
		switch a.Kind {
		case thomas.Skim, thomas.Scoop:
			verb := "Selling"
			if a.Kind == thomas.Scoop {
				verb = "Buying"
			}
			lines = append(lines, fmt.Sprintf("%s: %s — %s %s @ $%s. Cash change: $%s. %s",
				a.Symbol, a.Kind, verb, a.Shares.StringFixed(2), a.Price.StringFixed(2),
				a.CashDelta.StringFixed(2), a.Reason))
		case thomas.Note:
			lines = append(lines, fmt.Sprintf("%s: Note — %s", a.Symbol, a.Reason))
		default:
			lines = append(lines, fmt.Sprintf("%s: %s — %s", a.Symbol, a.Kind, a.Reason))
		}
	}
	lines = append(lines, fmt.Sprintf("Ending cash balance: $%s", rep.Cash.StringFixed(2)))
	return lines
}
