package thomas

import "github.com/skimscoop/thomas/date"

// Kind is the kind of a logged decision.
type Kind string

const (
	// Skim sells shares of a position in a gain to realize profit.
	Skim Kind = "Skim"
	// Scoop buys a small fixed dollar amount of a position below its basis.
	Scoop Kind = "Scoop"
	// Note records a skim that triggered but was skipped. No state changes.
	Note Kind = "Note"
	// NoAction is never emitted by the engine; display layers may use it for
	// positions that stayed silent.
	NoAction Kind = "NoAction"
)

// Action is one logged decision of the evaluation pass.
type Action struct {
	// Date of the simulation run.
	Date date.Date
	// Symbol of the position the decision applies to.
	Symbol string
	// Kind of decision.
	Kind Kind
	// Shares is the magnitude sold or bought. Zero for Note and NoAction.
	Shares Quantity
	// Price per share at the time of the action.
	Price Money
	// CashDelta is the signed change to cash: positive for skim proceeds,
	// negative for scoop cost, zero otherwise.
	CashDelta Money
	// Reason is a human-readable explanation, deterministic given the inputs.
	Reason string
}
