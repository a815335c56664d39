package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/skimscoop/thomas/history"
)

// RunsMarkdown renders a listing of recorded simulation runs, newest first.
func RunsMarkdown(runs []history.Run) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Recorded Runs")
	if len(runs) == 0 {
		doc.PlainText("No runs recorded yet.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Run", "Date", "Portfolio", "Cash Before", "Cash After", "Actions"},
		Rows:   [][]string{},
	}
	for _, r := range runs {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", r.ID),
			r.Date,
			r.Portfolio,
			fmt.Sprintf("%.2f", r.CashBefore),
			fmt.Sprintf("%.2f", r.CashAfter),
			fmt.Sprintf("%d", r.ActionCount),
		})
	}
	doc.Table(table)
	return doc.String()
}

// RunActionsMarkdown renders the action log of one recorded run.
func RunActionsMarkdown(runID int64, actions []history.RunAction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Actions of Run %d", runID))
	if len(actions) == 0 {
		doc.PlainText("This run produced no actions.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Symbol", "Action", "Shares", "Price", "CashDelta", "Reason"},
		Rows:   [][]string{},
	}
	for _, a := range actions {
		table.Rows = append(table.Rows, []string{
			a.Symbol,
			a.Kind,
			fmt.Sprintf("%.2f", a.Shares),
			fmt.Sprintf("%.2f", a.Price),
			fmt.Sprintf("%.2f", a.CashDelta),
			a.Reason,
		})
	}
	doc.Table(table)
	return doc.String()
}
