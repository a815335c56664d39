package thomas

import "testing"

func TestMoneyArithmetic(t *testing.T) {
	a := USD(10.05)
	b := USD(0.95)
	if got, want := a.Add(b).StringFixed(2), "11.00"; got != want {
		t.Errorf("Add = %s, want %s", got, want)
	}
	if got, want := a.Sub(b).StringFixed(2), "9.10"; got != want {
		t.Errorf("Sub = %s, want %s", got, want)
	}
	if got, want := a.Mul(Q(3)).StringFixed(2), "30.15"; got != want {
		t.Errorf("Mul = %s, want %s", got, want)
	}
	if got, want := USD(10).DivPrice(USD(230)).Round(2).StringFixed(2), "0.04"; got != want {
		t.Errorf("DivPrice = %s, want %s", got, want)
	}
}

func TestMoneySignedString(t *testing.T) {
	tests := []struct {
		in   Money
		want string
	}{
		{in: USD(5500), want: "+$5,500.00"},
		{in: USD(-9.2), want: "-$9.20"},
		{in: USD(0), want: "-"},
	}
	for _, tc := range tests {
		if got := tc.in.SignedString(); got != tc.want {
			t.Errorf("SignedString(%s) = %q, want %q", tc.in.StringFixed(2), got, tc.want)
		}
	}
}

func TestQuantityRound(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		// banker's rounding: half goes to the even neighbor
		{in: 0.045, want: "0.04"},
		{in: 0.055, want: "0.06"},
		{in: 0.0434, want: "0.04"},
		{in: 0.0435, want: "0.04"},
		{in: 10.005, want: "10.00"},
		{in: 10.015, want: "10.02"},
	}
	for _, tc := range tests {
		if got := Q(tc.in).Round(2).StringFixed(2); got != tc.want {
			t.Errorf("Q(%v).Round(2) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestQuantityRoundDown(t *testing.T) {
	if got, want := Q(0.019).RoundDown(2).StringFixed(2), "0.01"; got != want {
		t.Errorf("RoundDown = %s, want %s", got, want)
	}
}

func TestParseUSD(t *testing.T) {
	m, err := ParseUSD("55.10")
	if err != nil {
		t.Fatalf("ParseUSD: %v", err)
	}
	if got, want := m.StringFixed(2), "55.10"; got != want {
		t.Errorf("ParseUSD = %s, want %s", got, want)
	}
	if _, err := ParseUSD("abc"); err == nil {
		t.Errorf("ParseUSD(abc) succeeded, want error")
	}
}
