package thomas

import "testing"

func TestGainFraction(t *testing.T) {
	tests := []struct {
		name  string
		basis float64
		price float64
		want  Percent
	}{
		{name: "gain", basis: 50, price: 55, want: 0.10},
		{name: "loss", basis: 240, price: 230, want: -0.0416667},
		{name: "flat", basis: 50, price: 50, want: 0},
		{name: "zero basis is defined as 0", basis: 0, price: 55, want: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Position{Symbol: "X", CostBasis: USD(tc.basis), Price: USD(tc.price)}
			if got := p.GainFraction(); !got.Equal(tc.want) {
				t.Errorf("GainFraction() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSkimmable(t *testing.T) {
	tests := []struct {
		name   string
		shares float64
		core   float64
		want   string
	}{
		{name: "no core", shares: 100, core: 0, want: "100.00"},
		{name: "partial core", shares: 100, core: 60, want: "40.00"},
		{name: "all core", shares: 100, core: 100, want: "0.00"},
		{name: "core above shares is clamped", shares: 100, core: 150, want: "0.00"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Position{Symbol: "X", Shares: Q(tc.shares), CoreShares: Q(tc.core)}
			if got := p.Skimmable().StringFixed(2); got != tc.want {
				t.Errorf("Skimmable() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestPercentString(t *testing.T) {
	if got, want := Percent(0.1).String(), "10.0%"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := Percent(-0.0416667).String(), "-4.2%"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := Percent(0).SignedString(), "-"; got != want {
		t.Errorf("SignedString() = %q, want %q", got, want)
	}
}
