package thomas

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// The starter-portfolio tiers and TomScore ratings are data, not logic. The
// defaults ship embedded; a user file with the same layout overrides them.

//go:embed models.yaml
var defaultTable []byte

// Asset is one line of an allocation model.
type Asset struct {
	Symbol string  `yaml:"symbol"`
	Weight float64 `yaml:"weight"`
	Yield  float64 `yaml:"yield"`
}

// Model is a static starter-portfolio allocation for investable amounts
// below its ceiling. A ceiling of 0 means no ceiling.
type Model struct {
	Name    string  `yaml:"name"`
	Ceiling float64 `yaml:"ceiling"`
	Assets  []Asset `yaml:"assets"`
}

// Table holds the allocation models and symbol ratings.
type Table struct {
	Models  []Model  `yaml:"models"`
	Ratings []Rating `yaml:"ratings"`
}

// DefaultTable returns the embedded models and ratings.
func DefaultTable() *Table {
	t, err := parseTable(defaultTable)
	if err != nil {
		// the embedded file is validated by tests
		panic(err.Error())
	}
	return t
}

// LoadTable reads a models/ratings override file. An empty path returns the
// embedded defaults.
func LoadTable(path string) (*Table, error) {
	if path == "" {
		return DefaultTable(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read models file: %w", err)
	}
	return parseTable(data)
}

func parseTable(data []byte) (*Table, error) {
	t := &Table{}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("cannot parse models file: %w", err)
	}
	if len(t.Models) == 0 {
		return nil, fmt.Errorf("models file declares no models")
	}
	for _, m := range t.Models {
		if len(m.Assets) == 0 {
			return nil, fmt.Errorf("model %q declares no assets", m.Name)
		}
	}
	return t, nil
}

// ModelFor picks the first model whose ceiling is above the amount to invest.
func (t *Table) ModelFor(amount float64) Model {
	for _, m := range t.Models {
		if m.Ceiling == 0 || amount < m.Ceiling {
			return m
		}
	}
	return t.Models[len(t.Models)-1]
}

// IncomeLine is the projected income of one asset.
type IncomeLine struct {
	Symbol string
	// Invest is the dollar amount put (or already held) in the asset.
	Invest float64
	// Annual is the projected annual dividend income in dollars.
	Annual float64
}

// IncomeEstimate is a projected dividend income, per asset and in total.
type IncomeEstimate struct {
	Lines       []IncomeLine
	TotalAnnual float64
}

// Monthly returns the projected monthly income.
func (e IncomeEstimate) Monthly() float64 { return e.TotalAnnual / 12 }

// GapTo compares the projected monthly income against a monthly goal.
// Positive means surplus, negative shortfall, zero an exact match.
func (e IncomeEstimate) GapTo(goal float64) float64 { return e.Monthly() - goal }

// EstimateIncome projects the dividend income of investing 'amount' dollars
// following the model's allocations and estimated yields.
func EstimateIncome(m Model, amount float64) IncomeEstimate {
	var est IncomeEstimate
	for _, a := range m.Assets {
		invest := amount * a.Weight
		annual := invest * a.Yield
		est.Lines = append(est.Lines, IncomeLine{Symbol: a.Symbol, Invest: invest, Annual: annual})
		est.TotalAnnual += annual
	}
	return est
}

// EstimateHoldingsIncome projects the dividend income of positions already
// held, valued at their current price and declared yield.
func EstimateHoldingsIncome(positions []Position) IncomeEstimate {
	var est IncomeEstimate
	for _, p := range positions {
		value := p.Price.Mul(p.Shares)
		annual := value.Mul(p.DividendYield)
		line := IncomeLine{
			Symbol: p.Symbol,
			Invest: value.InexactFloat64(),
			Annual: annual.InexactFloat64(),
		}
		est.Lines = append(est.Lines, line)
		est.TotalAnnual += line.Annual
	}
	return est
}
