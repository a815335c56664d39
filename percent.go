package thomas

import "fmt"

// Percent is a display type for a fraction such as a gain. Percent(0.1) is 10%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// String renders with one decimal place, the precision action reasons cite.
func (p Percent) String() string {
	return fmt.Sprintf("%.1f%%", float64(p)*100)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.1f%%", float64(p)*100)
	if res == "+0.0%" {
		return "-"
	}
	return res
}
