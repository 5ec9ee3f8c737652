package suggest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/XavierBriggs/tyche/pkg/models"
)

const analysisMaxTokens = 500

// Analyze produces free-text risk commentary for a user-supplied leg
// set. The model's reply is returned verbatim; when the gateway is
// unavailable or errors, a templated commentary keyed on leg count is
// served instead. Analyze never fails.
func (r *Reconciler) Analyze(ctx context.Context, legs []models.Leg) string {
	if r.gateway == nil || !r.gateway.Available() {
		return templatedAnalysis(legs)
	}

	legsJSON, err := json.MarshalIndent(legs, "", "  ")
	if err != nil {
		return templatedAnalysis(legs)
	}

	prompt := fmt.Sprintf(`Analyze this sports parlay for research purposes. Be concise.

Legs: %s

Provide:
1. Brief risk assessment
2. Key factors to consider
3. Potential concerns

End with a reminder this is for research only, not betting advice.`, legsJSON)

	analysis, err := r.gateway.Complete(ctx, prompt, analysisMaxTokens)
	if err != nil {
		fmt.Printf("analysis dispatch failed, serving template: %v\n", err)
		return templatedAnalysis(legs)
	}

	return analysis
}

func templatedAnalysis(legs []models.Leg) string {
	risk := "Very High"
	switch {
	case len(legs) <= 3:
		risk = "Moderate"
	case len(legs) <= 5:
		risk = "High"
	}

	return fmt.Sprintf(`**Parlay Analysis**

This %d-leg parlay combines multiple bets that all must win for a payout.

**Risk Assessment**: %s

**Key Considerations**:
- Each additional leg significantly reduces win probability
- Consider the correlation between picks
- Check for any scheduling conflicts or injury reports

**Reminder**: This is for research purposes only. Past performance does not guarantee future results.`, len(legs), risk)
}
