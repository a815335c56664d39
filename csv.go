package thomas

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// this file contains the portfolio and action-log CSV formats. Loading and
// evaluating are separate transactions: any error here prevents a simulation
// from starting at all.

// portfolio columns, in write order. CoreShares is optional on read.
var portfolioColumns = []string{"Symbol", "Shares", "CostBasis", "CurrentPrice", "DividendYield", "CoreShares"}

// action-log columns, in write order.
var actionColumns = []string{"Date", "Symbol", "Action", "Shares", "Price", "CashDelta", "Reason"}

// SchemaError reports the required portfolio columns missing from a header
// row, all of them at once.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ReadPortfolio reads positions from the portfolio CSV format.
//
// The header must contain Symbol, Shares, CostBasis, CurrentPrice and
// DividendYield; CoreShares is optional and defaults to 0. Column order is
// free. A missing column is a *SchemaError naming every missing column,
// raised before any row is parsed. A cell that does not parse as a number, an
// empty symbol, or a negative value fails with the line number.
func ReadPortfolio(r io.Reader) ([]Position, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read portfolio header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range portfolioColumns[:5] {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}
	_, hasCore := index["CoreShares"]

	var positions []Position
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read portfolio line %d: %w", line, err)
		}
		cell := func(name string) string {
			i := index[name]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		symbol := strings.ToUpper(cell("Symbol"))
		if symbol == "" {
			return nil, fmt.Errorf("portfolio line %d: empty Symbol", line)
		}
		p := Position{Symbol: symbol}

		quantities := []struct {
			column string
			dst    *Quantity
		}{
			{"Shares", &p.Shares},
			{"DividendYield", &p.DividendYield},
		}
		for _, q := range quantities {
			v, err := ParseQuantity(cell(q.column))
			if err != nil {
				return nil, fmt.Errorf("portfolio line %d: invalid %s %q: %w", line, q.column, cell(q.column), err)
			}
			*q.dst = v
		}
		amounts := []struct {
			column string
			dst    *Money
		}{
			{"CostBasis", &p.CostBasis},
			{"CurrentPrice", &p.Price},
		}
		for _, a := range amounts {
			v, err := ParseUSD(cell(a.column))
			if err != nil {
				return nil, fmt.Errorf("portfolio line %d: invalid %s %q: %w", line, a.column, cell(a.column), err)
			}
			*a.dst = v
		}
		if hasCore && cell("CoreShares") != "" {
			v, err := ParseQuantity(cell("CoreShares"))
			if err != nil {
				return nil, fmt.Errorf("portfolio line %d: invalid CoreShares %q: %w", line, cell("CoreShares"), err)
			}
			p.CoreShares = v
		}

		if p.Shares.IsNegative() || p.CoreShares.IsNegative() {
			return nil, fmt.Errorf("portfolio line %d: %s holds a negative quantity", line, symbol)
		}
		if p.CostBasis.IsNegative() || p.Price.IsNegative() {
			return nil, fmt.Errorf("portfolio line %d: %s has a negative dollar value", line, symbol)
		}
		positions = append(positions, p)
	}
	return positions, nil
}

// WritePortfolio writes a position snapshot in the portfolio CSV format.
// Numbers are fixed to 2 decimal places, except DividendYield fixed to 6.
func WritePortfolio(w io.Writer, positions []Position) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(portfolioColumns); err != nil {
		return fmt.Errorf("cannot write portfolio header: %w", err)
	}
	for _, p := range positions {
		record := []string{
			p.Symbol,
			p.Shares.StringFixed(2),
			p.CostBasis.StringFixed(2),
			p.Price.StringFixed(2),
			p.DividendYield.StringFixed(6),
			p.CoreShares.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cannot write portfolio row for %s: %w", p.Symbol, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteActions writes the action log in the actions CSV format.
func WriteActions(w io.Writer, actions []Action) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(actionColumns); err != nil {
		return fmt.Errorf("cannot write actions header: %w", err)
	}
	for _, a := range actions {
		record := []string{
			a.Date.String(),
			a.Symbol,
			string(a.Kind),
			a.Shares.StringFixed(2),
			a.Price.StringFixed(2),
			a.CashDelta.StringFixed(2),
			a.Reason,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cannot write action row for %s: %w", a.Symbol, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
