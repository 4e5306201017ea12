package odds

import (
	"errors"
	"math"
	"testing"
)

func TestAmericanToDecimal(t *testing.T) {
	tests := []struct {
		name     string
		odds     int
		expected float64
		delta    float64
	}{
		{"Even money +100", 100, 2.0, 1e-9},
		{"Even money -100", -100, 2.0, 1e-9},
		{"Underdog +150", 150, 2.5, 1e-9},
		{"Underdog +200", 200, 3.0, 1e-9},
		{"Favorite -150", -150, 1.6667, 0.0001},
		{"Standard -110", -110, 1.9091, 0.0001},
		{"Zero odds", 0, 0, 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AmericanToDecimal(tt.odds)
			if math.Abs(result-tt.expected) > tt.delta {
				t.Errorf("AmericanToDecimal(%d) = %v, want %v", tt.odds, result, tt.expected)
			}
		})
	}
}

func TestAmericanToImplied(t *testing.T) {
	tests := []struct {
		name     string
		odds     int
		expected float64
		delta    float64
	}{
		{"Even money +100", 100, 0.5, 0.001},
		{"Even money -100", -100, 0.5, 0.001},
		{"Favorite -150", -150, 0.6, 0.001},
		{"Underdog +150", 150, 0.4, 0.001},
		{"Heavy favorite -300", -300, 0.75, 0.001},
		{"Big underdog +300", 300, 0.25, 0.001},
		{"Standard -110", -110, 0.5238, 0.001},
		{"Zero odds", 0, 0, 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AmericanToImplied(tt.odds)
			if math.Abs(result-tt.expected) > tt.delta {
				t.Errorf("AmericanToImplied(%d) = %v, want %v", tt.odds, result, tt.expected)
			}
		})
	}
}

func TestDecimalToAmerican(t *testing.T) {
	tests := []struct {
		decimal  float64
		expected int
	}{
		{2.5, 150},
		{2.0, 100},
		{3.0, 200},
		{1.6667, -150},
		{1.9091, -110},
	}

	for _, tt := range tests {
		got, err := DecimalToAmerican(tt.decimal)
		if err != nil {
			t.Fatalf("DecimalToAmerican(%v) error: %v", tt.decimal, err)
		}
		if got != tt.expected {
			t.Errorf("DecimalToAmerican(%v) = %d, want %d", tt.decimal, got, tt.expected)
		}
	}

	for _, bad := range []float64{1.0, 0.5, 0, math.NaN(), math.Inf(1)} {
		if _, err := DecimalToAmerican(bad); err == nil {
			t.Errorf("DecimalToAmerican(%v) should fail", bad)
		}
	}
}

func TestAmericanRoundTrip(t *testing.T) {
	for _, american := range []int{-500, -250, -150, -110, 100, 120, 150, 200, 450} {
		back, err := DecimalToAmerican(AmericanToDecimal(american))
		if err != nil {
			t.Fatalf("round trip %d: %v", american, err)
		}
		// -100 and +100 are the same price
		if back != american && !(american == -100 && back == 100) {
			t.Errorf("round trip %d -> %d", american, back)
		}
	}
}

func TestImpliedToAmerican(t *testing.T) {
	got, err := ImpliedToAmerican(0.4)
	if err != nil || got != 150 {
		t.Errorf("ImpliedToAmerican(0.4) = %d, %v; want 150", got, err)
	}
	got, err = ImpliedToAmerican(0.6)
	if err != nil || got != -150 {
		t.Errorf("ImpliedToAmerican(0.6) = %d, %v; want -150", got, err)
	}
	if _, err := ImpliedToAmerican(1); err == nil {
		t.Error("ImpliedToAmerican(1) should fail")
	}
}

func TestValidateAmerican(t *testing.T) {
	if err := ValidateAmerican(0); !errors.Is(err, ErrZeroOdds) {
		t.Errorf("ValidateAmerican(0) = %v, want ErrZeroOdds", err)
	}
	if err := ValidateAmerican(-110); err != nil {
		t.Errorf("ValidateAmerican(-110) = %v, want nil", err)
	}
}

func TestFormatAmerican(t *testing.T) {
	cases := map[int]string{150: "+150", -110: "-110", 0: "-", 100: "+100"}
	for in, want := range cases {
		if got := FormatAmerican(in); got != want {
			t.Errorf("FormatAmerican(%d) = %q, want %q", in, got, want)
		}
	}
}
