package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/skimscoop/thomas"
)

// ModelMarkdown renders a suggested starter portfolio and its projected
// income against the monthly goal.
func ModelMarkdown(m thomas.Model, est thomas.IncomeEstimate, goal float64) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Suggested Starter Portfolio")
	doc.Table(incomeTable(m, est))
	incomeSummary(doc, est, goal)
	return doc.String()
}

// IncomeMarkdown renders the projected dividend income of held positions
// against the monthly goal.
func IncomeMarkdown(est thomas.IncomeEstimate, goal float64) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Projected Dividend Income")
	doc.Table(incomeTable(thomas.Model{}, est))
	incomeSummary(doc, est, goal)
	return doc.String()
}

func incomeTable(m thomas.Model, est thomas.IncomeEstimate) md.TableSet {
	weights := make(map[string]float64, len(m.Assets))
	for _, a := range m.Assets {
		weights[a.Symbol] = a.Weight
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Allocation", "Invest", "Est. Income / yr"},
		Rows:   [][]string{},
	}
	for _, line := range est.Lines {
		alloc := "-"
		if w, ok := weights[line.Symbol]; ok {
			alloc = thomas.Percent(w).String()
		}
		table.Rows = append(table.Rows, []string{
			line.Symbol,
			alloc,
			thomas.USD(line.Invest).String(),
			thomas.USD(line.Annual).String(),
		})
	}
	return table
}

func incomeSummary(doc *md.Markdown, est thomas.IncomeEstimate, goal float64) {
	monthly := thomas.USD(est.Monthly())
	doc.H2("Estimated Monthly Income: " + monthly.String())

	if goal <= 0 {
		return
	}
	gap := est.GapTo(goal)
	switch {
	case gap < 0:
		doc.PlainText(fmt.Sprintf("You're projected to generate %s/mo — that's %s below your target of %s/mo.",
			monthly, thomas.USD(-gap), thomas.USD(goal)))
		doc.PlainText("Thomas can help you explore ways to close this gap by adjusting expectations, reallocating funds, or increasing your investable assets.")
	case gap > 0:
		doc.PlainText(fmt.Sprintf("You're projected to generate %s/mo — that's %s above your target!",
			monthly, thomas.USD(gap)))
	default:
		doc.PlainText("Your portfolio is projected to hit your monthly income goal exactly.")
	}
}
