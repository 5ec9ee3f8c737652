package oddsmath

import (
	"fmt"

	"github.com/XavierBriggs/tyche/pkg/models"
)

// Parlay leg-count bounds. Product policy, not numeric necessity:
// both ends are enforced.
const (
	MinLegs = 2
	MaxLegs = 12
)

// ValidationError describes structurally invalid parlay input. It is
// surfaced to the caller as a rejected request, never silently fixed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ParlayPrice is the priced summary of a leg collection and stake.
type ParlayPrice struct {
	CombinedOdds    float64 `json:"combinedOdds"`
	AmericanOdds    int     `json:"americanOdds"`
	AmericanDisplay string  `json:"americanDisplay"`
	EstimatedPayout float64 `json:"estimatedPayout"`
	EstimatedProfit float64 `json:"estimatedProfit"`
}

// CombinedDecimal multiplies the per-leg decimal multipliers into a
// single parlay multiplier. Multiplication is commutative, so leg
// ordering never affects the result. A leg with price 0 is rejected.
func CombinedDecimal(legs []models.Leg) (float64, error) {
	combined := 1.0
	for i, leg := range legs {
		dec, err := AmericanToDecimal(leg.Price)
		if err != nil {
			return 0, &ValidationError{
				Field:  "legs",
				Reason: fmt.Sprintf("leg %d: %v", i+1, err),
			}
		}
		combined *= dec
	}
	return combined, nil
}

// PriceParlay validates a leg collection and stake and computes the
// combined multiplier, display price, payout, and profit.
//
// A stake of exactly 0 is permitted (payout 0, profit 0): stakes here
// are research estimates, not money movement. Negative stakes are
// rejected.
func PriceParlay(legs []models.Leg, stake float64) (*ParlayPrice, error) {
	if len(legs) < MinLegs || len(legs) > MaxLegs {
		return nil, &ValidationError{
			Field:  "legs",
			Reason: fmt.Sprintf("parlay must have between %d and %d legs, got %d", MinLegs, MaxLegs, len(legs)),
		}
	}

	if stake < 0 {
		return nil, &ValidationError{
			Field:  "stake",
			Reason: fmt.Sprintf("stake must be non-negative, got %.2f", stake),
		}
	}

	for i, leg := range legs {
		if err := validateLeg(i, leg); err != nil {
			return nil, err
		}
	}

	combined, err := CombinedDecimal(legs)
	if err != nil {
		return nil, err
	}

	// Display price comes from the unrounded multiplier; the stored
	// multiplier is rounded for presentation.
	american, err := DecimalToAmerican(combined)
	if err != nil {
		return nil, err
	}

	payout := Round2(stake * combined)

	return &ParlayPrice{
		CombinedOdds:    Round2(combined),
		AmericanOdds:    american,
		AmericanDisplay: FormatAmerican(american),
		EstimatedPayout: payout,
		EstimatedProfit: Round2(payout - stake),
	}, nil
}

func validateLeg(i int, leg models.Leg) error {
	if leg.Team == "" {
		return &ValidationError{
			Field:  "legs",
			Reason: fmt.Sprintf("leg %d: missing selection", i+1),
		}
	}

	switch leg.Type {
	case models.MarketMoneyline:
		// No point on moneyline legs.
	case models.MarketSpreads, models.MarketTotals:
		if leg.Point == nil {
			return &ValidationError{
				Field:  "legs",
				Reason: fmt.Sprintf("leg %d: %s legs require a point", i+1, leg.Type),
			}
		}
	default:
		if !leg.IsPlayerProp() {
			return &ValidationError{
				Field:  "legs",
				Reason: fmt.Sprintf("leg %d: unknown market type %q", i+1, leg.Type),
			}
		}
	}

	if leg.Price == 0 {
		return &ValidationError{
			Field:  "legs",
			Reason: fmt.Sprintf("leg %d: price cannot be 0", i+1),
		}
	}

	return nil
}
