package thomas

import (
	"errors"
	"strings"
	"testing"

	"github.com/skimscoop/thomas/date"
)

var onDate = date.New(2025, 7, 31)

func newTestEngine(positions []Position, cash float64) *Engine {
	return NewEngine(positions, USD(cash), Options{Date: onDate})
}

func TestEvaluate_SkimAll(t *testing.T) {
	e := newTestEngine([]Position{
		{Symbol: "JEPQ", Shares: Q(100), CostBasis: USD(50), Price: USD(55)},
	}, 0)
	if err := e.Evaluate(); err != nil {
		t.Fatalf("Evaluate() unexpected error: %v", err)
	}

	if got, want := e.Cash().StringFixed(2), "5500.00"; got != want {
		t.Errorf("Cash() = %s, want %s", got, want)
	}
	pos := e.Snapshot()[0]
	if !pos.Shares.IsZero() {
		t.Errorf("Shares = %s, want 0", pos.Shares)
	}

	actions := e.Actions()
	if len(actions) != 1 {
		t.Fatalf("got %d actions, want 1", len(actions))
	}
	a := actions[0]
	if a.Kind != Skim {
		t.Errorf("Kind = %s, want Skim", a.Kind)
	}
	if got, want := a.Shares.StringFixed(2), "100.00"; got != want {
		t.Errorf("Shares = %s, want %s", got, want)
	}
	if got, want := a.CashDelta.StringFixed(2), "5500.00"; got != want {
		t.Errorf("CashDelta = %s, want %s", got, want)
	}
	if a.Date != onDate {
		t.Errorf("Date = %s, want %s", a.Date, onDate)
	}
	if !strings.Contains(a.Reason, "Gain 10.0%") {
		t.Errorf("Reason = %q, want it to cite the gain fraction", a.Reason)
	}
}

func TestEvaluate_SkimAtExactMinimum(t *testing.T) {
	// proceeds 10.05 are right above the $10 minimum
	e := newTestEngine([]Position{
		{Symbol: "AGNC", Shares: Q(1), CostBasis: USD(10), Price: USD(10.05)},
	}, 0)
	if err := e.Evaluate(); err != nil {
		t.Fatalf("Evaluate() unexpected error: %v", err)
	}
	if got, want := e.Cash().StringFixed(2), "10.05"; got != want {
		t.Errorf("Cash() = %s, want %s", got, want)
	}
	if got := e.Actions(); len(got) != 1 || got[0].Kind != Skim {
		t.Errorf("got %v, want a single Skim", got)
	}
}

func TestEvaluate_SkimBelowMinimumLeavesNote(t *testing.T) {
	e := newTestEngine([]Position{
		{Symbol: "O", Shares: Q(0.1), CostBasis: USD(60), Price: USD(65)},
	}, 0)
	if err := e.Evaluate(); err != nil {
		t.Fatalf("Evaluate() unexpected error: %v", err)
	}

	if !e.Cash().IsZero() {
		t.Errorf("Cash() = %s, want unchanged 0", e.Cash())
	}
	pos := e.Snapshot()[0]
	if got, want := pos.Shares.StringFixed(2), "0.10"; got != want {
		t.Errorf("Shares = %s, want unchanged %s", got, want)
	}

	actions := e.Actions()
	if len(actions) != 1 {
		t.Fatalf("got %d actions, want 1", len(actions))
	}
	a := actions[0]
	if a.Kind != Note {
		t.Errorf("Kind = %s, want Note", a.Kind)
	}
	if !a.Shares.IsZero() || !a.CashDelta.IsZero() {
		t.Errorf("Note carries deltas: shares %s cash %s, want both 0", a.Shares, a.CashDelta)
	}
	if got, want := a.Reason, "Skim trigger met but proceeds $6.50 < minimum $10.00; skipped."; got != want {
		t.Errorf("Reason = %q, want %q", got, want)
	}
}

func TestEvaluate_Scoop(t *testing.T) {
	e := newTestEngine([]Position{
		{Symbol: "VTI", Shares: Q(10), CostBasis: USD(240), Price: USD(230)},
	}, 20)
	if err := e.Evaluate(); err != nil {
		t.Fatalf("Evaluate() unexpected error: %v", err)
	}

	pos := e.Snapshot()[0]
	if got, want := pos.Shares.StringFixed(2), "10.04"; got != want {
		t.Errorf("Shares = %s, want %s", got, want)
	}
	if got, want := e.Cash().StringFixed(2), "10.80"; got != want {
		t.Errorf("Cash() = %s, want %s", got, want)
	}
	// weighted average of the old lot and the new one: (240*10+9.2)/10.04
	if got, want := pos.CostBasis.StringFixed(2), "239.96"; got != want {
		t.Errorf("CostBasis = %s, want %s", got, want)
	}

	actions := e.Actions()
	if len(actions) != 1 {
		t.Fatalf("got %d actions, want 1", len(actions))
	}
	a := actions[0]
	if a.Kind != Scoop {
		t.Errorf("Kind = %s, want Scoop", a.Kind)
	}
	if got, want := a.Shares.StringFixed(2), "0.04"; got != want {
		t.Errorf("Shares = %s, want %s", got, want)
	}
	if got, want := a.CashDelta.StringFixed(2), "-9.20"; got != want {
		t.Errorf("CashDelta = %s, want %s", got, want)
	}
}

func TestEvaluate_ScoopNeedsCash(t *testing.T) {
	// cash below the scoop amount: no scoop regardless of price vs basis
	e := newTestEngine([]Position{
		{Symbol: "VTI", Shares: Q(10), CostBasis: USD(240), Price: USD(230)},
	}, 5)
	if err := e.Evaluate(); err != nil {
		t.Fatalf("Evaluate() unexpected error: %v", err)
	}
	if got := e.Actions(); len(got) != 0 {
		t.Errorf("got %d actions, want none", len(got))
	}
	if got, want := e.Cash().StringFixed(2), "5.00"; got != want {
		t.Errorf("Cash() = %s, want untouched %s", got, want)
	}
}

func TestEvaluate_ScoopSkipsZeroPrice(t *testing.T) {
	e := newTestEngine([]Position{
		{Symbol: "XXXX", Shares: Q(10), CostBasis: USD(240), Price: USD(0)},
	}, 1000)
	if err := e.Evaluate(); err != nil {
		t.Fatalf("Evaluate() unexpected error: %v", err)
	}
	if got := e.Actions(); len(got) != 0 {
		t.Errorf("got %d actions, want none for a zero price", len(got))
	}
}

func TestEvaluate_CoreSharesProtect(t *testing.T) {
	tests := []struct {
		name string
		core float64
	}{
		{name: "core equals shares", core: 100},
		{name: "core above shares", core: 150},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine([]Position{
				{Symbol: "JEPQ", Shares: Q(100), CostBasis: USD(50), Price: USD(55), CoreShares: Q(tc.core)},
			}, 0)
			if err := e.Evaluate(); err != nil {
				t.Fatalf("Evaluate() unexpected error: %v", err)
			}
			if got := e.Actions(); len(got) != 0 {
				t.Errorf("got %d actions, want none; core shares are never skimmed", len(got))
			}
			if got, want := e.Snapshot()[0].Shares.StringFixed(2), "100.00"; got != want {
				t.Errorf("Shares = %s, want untouched %s", got, want)
			}
		})
	}
}

func TestEvaluate_PartialCoreSkim(t *testing.T) {
	e := newTestEngine([]Position{
		{Symbol: "JEPQ", Shares: Q(100), CostBasis: USD(50), Price: USD(55), CoreShares: Q(60)},
	}, 0)
	if err := e.Evaluate(); err != nil {
		t.Fatalf("Evaluate() unexpected error: %v", err)
	}
	pos := e.Snapshot()[0]
	if got, want := pos.Shares.StringFixed(2), "60.00"; got != want {
		t.Errorf("Shares = %s, want %s", got, want)
	}
	if got, want := e.Cash().StringFixed(2), "2200.00"; got != want {
		t.Errorf("Cash() = %s, want %s", got, want)
	}
}

func TestEvaluate_ZeroBasisGainIsZero(t *testing.T) {
	// a zero cost basis means "unknown/free": the gain fraction is defined as
	// 0, which still satisfies the skim trigger when the price is above 0.
	e := newTestEngine([]Position{
		{Symbol: "GIFT", Shares: Q(2), CostBasis: USD(0), Price: USD(30)},
	}, 0)
	if err := e.Evaluate(); err != nil {
		t.Fatalf("Evaluate() unexpected error: %v", err)
	}
	actions := e.Actions()
	if len(actions) != 1 || actions[0].Kind != Skim {
		t.Fatalf("got %v, want a single Skim", actions)
	}
	if !strings.Contains(actions[0].Reason, "Gain 0.0%") {
		t.Errorf("Reason = %q, want a 0.0%% gain", actions[0].Reason)
	}
}

func TestEvaluate_SkimFundsLaterScoop(t *testing.T) {
	// the skim on the first position frees the cash the scoop on the second
	// position needs; the per-position order (skim before scoop) and the
	// load order together are load-bearing.
	e := newTestEngine([]Position{
		{Symbol: "JEPQ", Shares: Q(1), CostBasis: USD(50), Price: USD(55)},
		{Symbol: "VTI", Shares: Q(10), CostBasis: USD(240), Price: USD(230)},
	}, 0)
	if err := e.Evaluate(); err != nil {
		t.Fatalf("Evaluate() unexpected error: %v", err)
	}

	actions := e.Actions()
	if len(actions) != 2 {
		t.Fatalf("got %d actions, want 2", len(actions))
	}
	if actions[0].Kind != Skim || actions[0].Symbol != "JEPQ" {
		t.Errorf("actions[0] = %s %s, want Skim JEPQ", actions[0].Kind, actions[0].Symbol)
	}
	if actions[1].Kind != Scoop || actions[1].Symbol != "VTI" {
		t.Errorf("actions[1] = %s %s, want Scoop VTI", actions[1].Kind, actions[1].Symbol)
	}
	// 55 skimmed, 9.20 scooped
	if got, want := e.Cash().StringFixed(2), "45.80"; got != want {
		t.Errorf("Cash() = %s, want %s", got, want)
	}
}

func TestEvaluate_RoundingNeverOversells(t *testing.T) {
	// 0.015 skimmable shares round to 0.02, more than the position holds;
	// the engine falls back to rounding down.
	e := NewEngine([]Position{
		{Symbol: "HIGH", Shares: Q(0.015), CostBasis: USD(1), Price: USD(2000)},
	}, USD(0), Options{Date: onDate})
	if err := e.Evaluate(); err != nil {
		t.Fatalf("Evaluate() unexpected error: %v", err)
	}
	pos := e.Snapshot()[0]
	if pos.Shares.IsNegative() {
		t.Fatalf("Shares = %s, must never go negative", pos.Shares)
	}
	actions := e.Actions()
	if len(actions) != 1 || actions[0].Kind != Skim {
		t.Fatalf("got %v, want a single Skim", actions)
	}
	if got, want := actions[0].Shares.StringFixed(2), "0.01"; got != want {
		t.Errorf("skimmed %s shares, want %s", got, want)
	}
}

func TestNewEngine_DuplicateSymbolLastWins(t *testing.T) {
	e := newTestEngine([]Position{
		{Symbol: "jepq", Shares: Q(1), CostBasis: USD(50), Price: USD(55)},
		{Symbol: "VTI", Shares: Q(1), CostBasis: USD(240), Price: USD(250)},
		{Symbol: "JEPQ", Shares: Q(100), CostBasis: USD(50), Price: USD(55)},
	}, 0)
	snap := e.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("got %d positions, want 2 after dedup", len(snap))
	}
	// the duplicate keeps the first slot but takes the last value
	if snap[0].Symbol != "JEPQ" || snap[1].Symbol != "VTI" {
		t.Errorf("order = %s,%s, want JEPQ,VTI", snap[0].Symbol, snap[1].Symbol)
	}
	if got, want := snap[0].Shares.StringFixed(2), "100.00"; got != want {
		t.Errorf("JEPQ shares = %s, want the later row's %s", got, want)
	}
}

func TestEvaluate_SecondCallRejected(t *testing.T) {
	e := newTestEngine([]Position{
		{Symbol: "JEPQ", Shares: Q(100), CostBasis: USD(50), Price: USD(55)},
	}, 0)
	if err := e.Evaluate(); err != nil {
		t.Fatalf("first Evaluate() unexpected error: %v", err)
	}
	cash := e.Cash()
	err := e.Evaluate()
	if !errors.Is(err, ErrAlreadyEvaluated) {
		t.Fatalf("second Evaluate() = %v, want ErrAlreadyEvaluated", err)
	}
	if !e.Cash().Equal(cash) {
		t.Errorf("rejected second pass still mutated cash: %s != %s", e.Cash(), cash)
	}
}

func TestEvaluate_DefaultsAndOverrides(t *testing.T) {
	// with a $5 minimum, the $6.50 proceeds now execute instead of a Note
	e := NewEngine([]Position{
		{Symbol: "O", Shares: Q(0.1), CostBasis: USD(60), Price: USD(65)},
	}, USD(0), Options{Date: onDate, MinSkimProceeds: USD(5)})
	if err := e.Evaluate(); err != nil {
		t.Fatalf("Evaluate() unexpected error: %v", err)
	}
	if got := e.Actions(); len(got) != 1 || got[0].Kind != Skim {
		t.Fatalf("got %v, want a single Skim with the lowered minimum", got)
	}

	// with a $100 scoop, the buy is 100/230 shares
	e = NewEngine([]Position{
		{Symbol: "VTI", Shares: Q(10), CostBasis: USD(240), Price: USD(230)},
	}, USD(200), Options{Date: onDate, ScoopAmount: USD(100)})
	if err := e.Evaluate(); err != nil {
		t.Fatalf("Evaluate() unexpected error: %v", err)
	}
	actions := e.Actions()
	if len(actions) != 1 || actions[0].Kind != Scoop {
		t.Fatalf("got %v, want a single Scoop", actions)
	}
	if got, want := actions[0].Shares.StringFixed(2), "0.43"; got != want {
		t.Errorf("scooped %s shares, want %s", got, want)
	}
}

func TestEvaluate_YieldCarriedUnchanged(t *testing.T) {
	e := newTestEngine([]Position{
		{Symbol: "JEPQ", Shares: Q(100), CostBasis: USD(50), Price: USD(55), DividendYield: Q(0.11)},
	}, 0)
	if err := e.Evaluate(); err != nil {
		t.Fatalf("Evaluate() unexpected error: %v", err)
	}
	if got, want := e.Snapshot()[0].DividendYield.StringFixed(6), "0.110000"; got != want {
		t.Errorf("DividendYield = %s, want untouched %s", got, want)
	}
}
