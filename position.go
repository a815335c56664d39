package thomas

// Position is the state of one holding inside a simulation run.
type Position struct {
	// Symbol is the uppercase ticker, the unique key within a run.
	Symbol string
	// Shares is the quantity currently held. Fractional shares are allowed.
	Shares Quantity
	// CostBasis is the average dollar cost per share. Zero means
	// unknown/free and disables the gain computation.
	CostBasis Money
	// Price is the current dollar price per share.
	Price Money
	// DividendYield is the annual yield as a decimal fraction. It is carried
	// through unchanged; the decision rules never read it.
	DividendYield Quantity
	// CoreShares is the part of the position that can never be skimmed.
	CoreShares Quantity
}

// GainFraction returns (Price-CostBasis)/CostBasis, or 0 when the cost basis
// is zero or below (unknown basis, never a division by zero).
func (p Position) GainFraction() Percent {
	if !p.CostBasis.IsPositive() {
		return 0
	}
	gain := p.Price.Sub(p.CostBasis).DivPrice(p.CostBasis)
	return Percent(gain.InexactFloat64())
}

// Skimmable returns the quantity the skim rule may sell:
// max(0, Shares-CoreShares). An inconsistent CoreShares larger than Shares is
// clamped, not rejected.
func (p Position) Skimmable() Quantity {
	s := p.Shares.Sub(p.CoreShares)
	if s.IsNegative() {
		return Q(0)
	}
	return s
}
