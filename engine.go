package thomas

import (
	"errors"
	"fmt"
	"strings"

	"github.com/skimscoop/thomas/date"
)

// ErrAlreadyEvaluated is returned by Evaluate when it is called a second time
// on the same engine. A run is a single pass; batch callers build a fresh
// engine per portfolio.
var ErrAlreadyEvaluated = errors.New("engine has already been evaluated")

// Options are the knobs of a simulation run. Zero values mean today's date
// and $10 for both amounts.
type Options struct {
	// Date is the simulation date stamped on every action.
	Date date.Date
	// ScoopAmount is the dollar amount spent per scoop.
	ScoopAmount Money
	// MinSkimProceeds is the minimum proceeds required for a skim to execute.
	MinSkimProceeds Money
}

// Engine owns the positions and cash of one simulation run and applies the
// skim/scoop rule set exactly once.
type Engine struct {
	symbols   []string // insertion order of first appearance
	positions map[string]*Position
	cash      Money
	today     date.Date
	scoop     Money
	minSkim   Money
	actions   []Action
	evaluated bool
}

// NewEngine builds an engine over the given positions and starting cash.
// Positions are keyed by uppercased symbol; a later duplicate replaces the
// earlier value but keeps its original slot, the same behavior as loading
// rows into a dictionary.
func NewEngine(positions []Position, cash Money, opts Options) *Engine {
	e := &Engine{
		positions: make(map[string]*Position, len(positions)),
		cash:      cash,
		today:     opts.Date,
		scoop:     opts.ScoopAmount,
		minSkim:   opts.MinSkimProceeds,
	}
	if e.today.IsZero() {
		e.today = date.Today()
	}
	if e.scoop.IsZero() {
		e.scoop = USD(10.0)
	}
	if e.minSkim.IsZero() {
		e.minSkim = USD(10.0)
	}
	for _, p := range positions {
		p.Symbol = strings.ToUpper(p.Symbol)
		if _, seen := e.positions[p.Symbol]; !seen {
			e.symbols = append(e.symbols, p.Symbol)
		}
		pos := p
		e.positions[p.Symbol] = &pos
	}
	return e
}

// Evaluate runs the single skim/scoop pass over every position, in load
// order. The skim check runs before the scoop check because skim proceeds
// change the cash available to later scoops. A second call is rejected with
// ErrAlreadyEvaluated.
func (e *Engine) Evaluate() error {
	if e.evaluated {
		return ErrAlreadyEvaluated
	}
	e.evaluated = true

	for _, sym := range e.symbols {
		pos := e.positions[sym]
		e.skim(pos)
		e.scoopInto(pos)
	}
	return nil
}

// skim sells all skimmable shares of a position in a gain, when the proceeds
// meet the minimum. A triggered skim below the minimum leaves a Note.
func (e *Engine) skim(pos *Position) {
	if !pos.Price.GreaterThan(pos.CostBasis) || pos.GainFraction() < 0 {
		return
	}
	skimmable := pos.Skimmable()
	if !skimmable.IsPositive() {
		return // nothing to skim, in silence
	}
	// Share quantities round to 2 decimal places at computation time, and
	// the rounded value feeds all the math after it.
	sell := skimmable.Round(2)
	if sell.GreaterThan(skimmable) {
		// rounding up may not sell shares the position does not hold
		sell = skimmable.RoundDown(2)
	}
	proceeds := pos.Price.Mul(sell)
	if proceeds.GreaterThanOrEqual(e.minSkim) {
		pos.Shares = pos.Shares.Sub(sell)
		e.cash = e.cash.Add(proceeds)
		e.log(Skim, pos, sell, proceeds,
			fmt.Sprintf("Gain %s ≥ 0; sold %s to lock profit and add to cash.", pos.GainFraction(), sell))
	} else {
		e.log(Note, pos, Q(0), USD(0),
			fmt.Sprintf("Skim trigger met but proceeds $%s < minimum $%s; skipped.",
				proceeds.StringFixed(2), e.minSkim.StringFixed(2)))
	}
}

// scoopInto buys a fixed dollar amount of a position trading below its cost
// basis, when enough cash is available, and lowers the weighted-average basis.
func (e *Engine) scoopInto(pos *Position) {
	if !pos.Price.LessThan(pos.CostBasis) || !e.cash.GreaterThanOrEqual(e.scoop) {
		return
	}
	if !pos.Price.IsPositive() {
		return // a zero or negative price is never a divisor
	}
	buy := e.scoop.DivPrice(pos.Price).Round(2)
	cost := pos.Price.Mul(buy)
	if !cost.LessThanOrEqual(e.cash) || !buy.IsPositive() {
		return
	}
	newTotalCost := pos.CostBasis.Mul(pos.Shares).Add(cost)
	pos.Shares = pos.Shares.Add(buy)
	if pos.Shares.IsPositive() {
		pos.CostBasis = newTotalCost.Div(pos.Shares)
	}
	e.cash = e.cash.Sub(cost)
	// The reason cites the basis after the buy, the figure the user will see
	// on the next run.
	e.log(Scoop, pos, buy, cost.Neg(),
		fmt.Sprintf("Price %s < cost basis %s; bought %s to lower basis.",
			pos.Price.StringFixed(2), pos.CostBasis.StringFixed(2), buy))
}

func (e *Engine) log(kind Kind, pos *Position, shares Quantity, cashDelta Money, reason string) {
	e.actions = append(e.actions, Action{
		Date:      e.today,
		Symbol:    pos.Symbol,
		Kind:      kind,
		Shares:    shares,
		Price:     pos.Price,
		CashDelta: cashDelta,
		Reason:    reason,
	})
}

// Actions returns the ordered action log of the pass.
func (e *Engine) Actions() []Action { return e.actions }

// Cash returns the cash balance, final after Evaluate.
func (e *Engine) Cash() Money { return e.cash }

// Date returns the simulation date.
func (e *Engine) Date() date.Date { return e.today }

// Snapshot returns the positions in load order, mutated by the pass.
func (e *Engine) Snapshot() []Position {
	out := make([]Position, 0, len(e.symbols))
	for _, sym := range e.symbols {
		out = append(out, *e.positions[sym])
	}
	return out
}

// Report bundles the outcome of a run for renderers and recorders.
type Report struct {
	Date      date.Date
	Actions   []Action
	Cash      Money
	Positions []Position
}

// Report returns the bundled outcome of the pass.
func (e *Engine) Report() *Report {
	return &Report{
		Date:      e.today,
		Actions:   e.actions,
		Cash:      e.cash,
		Positions: e.Snapshot(),
	}
}
