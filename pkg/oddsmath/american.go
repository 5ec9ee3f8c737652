package oddsmath

import (
	"fmt"
	"math"
)

// AmericanToDecimal converts American odds to a decimal multiplier
// American +150 → Decimal 2.50
// American -150 → Decimal 1.67
func AmericanToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, fmt.Errorf("invalid American odds: cannot be 0")
	}

	if american > 0 {
		// Positive odds: (american / 100) + 1
		return (float64(american) / 100.0) + 1.0, nil
	}

	// Negative odds: (100 / abs(american)) + 1
	return (100.0 / float64(-american)) + 1.0, nil
}

// DecimalToAmerican converts a decimal multiplier back to American odds.
// A multiplier at or below 1.0 has no American representation; every
// valid single-leg multiplier is strictly above breakeven, so hitting
// this is an internal invariant violation rather than bad user input.
// Decimal 2.50 → American +150
// Decimal 1.67 → American -150
func DecimalToAmerican(decimal float64) (int, error) {
	if decimal <= 1.0 {
		return 0, fmt.Errorf("invalid decimal odds: must be > 1.0")
	}

	if decimal >= 2.0 {
		// Positive American odds: (decimal - 1) * 100
		return int(math.Round((decimal - 1.0) * 100.0)), nil
	}

	// Negative American odds: -100 / (decimal - 1)
	return int(math.Round(-100.0 / (decimal - 1.0))), nil
}

// FormatAmerican renders American odds with an explicit leading sign,
// the way books display them: +150, -110.
func FormatAmerican(american int) string {
	if american > 0 {
		return fmt.Sprintf("+%d", american)
	}
	return fmt.Sprintf("%d", american)
}

// Round2 rounds a monetary value to 2 decimal places, half away from
// zero. Every rounding of odds or money in this module goes through
// here so the policy is applied in exactly one place.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
