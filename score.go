package thomas

import "strings"

// Rating is a TomScore: a static suitability score of a symbol for the
// skim/scoop method, with a short verdict.
type Rating struct {
	Score   int      `yaml:"score"`
	Label   string   `yaml:"label"`
	Comment string   `yaml:"comment"`
	Symbols []string `yaml:"symbols"`
}

// Score returns the TomScore of a symbol, case-insensitively. Rating groups
// are tried in declaration order; a group with no symbols matches everything,
// so the last group acts as the fallback for unknown tickers.
func (t *Table) Score(symbol string) Rating {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	for _, r := range t.Ratings {
		if len(r.Symbols) == 0 {
			return r
		}
		for _, s := range r.Symbols {
			if strings.ToUpper(s) == symbol {
				return r
			}
		}
	}
	// a table without a fallback group rates unknown symbols at the floor
	return Rating{Score: 1, Label: "Not optimized for Skim/Scoop",
		Comment: "This asset may not support reliable income through Thomas."}
}
