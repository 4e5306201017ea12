package odds

import (
	"errors"
	"fmt"
	"math"
)

// ErrZeroOdds is returned for an American price of exactly 0, which no market quotes.
var ErrZeroOdds = errors.New("american odds cannot be 0")

// ValidateAmerican reports whether odds is a usable American price.
func ValidateAmerican(odds int) error {
	if odds == 0 {
		return ErrZeroOdds
	}
	return nil
}

// AmericanToDecimal converts American odds to decimal odds (payout multiple including stake)
// Example: +150 → 2.5, -150 → 1.6667
// Returns 0 for odds of 0; validate first when that matters.
func AmericanToDecimal(odds int) float64 {
	if odds == 0 {
		return 0
	}

	if odds > 0 {
		// Underdog: profit per 100 staked
		return float64(odds)/100.0 + 1.0
	}
	// Favorite: stake required to profit 100
	return 100.0/math.Abs(float64(odds)) + 1.0
}

// AmericanToImplied converts American odds to implied probability
// Example: -150 → 0.6 (60%), +150 → 0.4 (40%)
func AmericanToImplied(odds int) float64 {
	dec := AmericanToDecimal(odds)
	if dec == 0 {
		return 0
	}
	return 1.0 / dec
}

// DecimalToAmerican converts decimal odds back to the nearest American price
// Decimal 2.50 → +150, Decimal 1.6667 → -150
func DecimalToAmerican(decimal float64) (int, error) {
	if decimal <= 1.0 || math.IsNaN(decimal) || math.IsInf(decimal, 0) {
		return 0, fmt.Errorf("invalid decimal odds %v: must be > 1.0", decimal)
	}

	if decimal >= 2.0 {
		return int(math.Round((decimal - 1.0) * 100.0)), nil
	}
	return int(math.Round(-100.0 / (decimal - 1.0))), nil
}

// ImpliedToAmerican converts a probability (0-1) to the fair American price
func ImpliedToAmerican(prob float64) (int, error) {
	if prob <= 0 || prob >= 1 {
		return 0, fmt.Errorf("invalid probability %v: must be between 0 and 1", prob)
	}
	return DecimalToAmerican(1.0 / prob)
}

// FormatAmerican renders odds the way books print them: +150, -110
func FormatAmerican(odds int) string {
	if odds == 0 {
		return "-"
	}
	if odds > 0 {
		return fmt.Sprintf("+%d", odds)
	}
	return fmt.Sprintf("%d", odds)
}
