package suggest

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/XavierBriggs/tyche/pkg/models"
	"github.com/XavierBriggs/tyche/pkg/oddsmath"
)

// The model is told to emit integers, but it sometimes writes +750,
// which strict JSON rejects. Strip a "+" between a colon and digits.
var plusSignRe = regexp.MustCompile(`:\s*\+(\d)`)

// Filler values for fields the model omitted. Conventional -110 is a
// placeholder, not a real market price.
const (
	defaultPrice       = -110
	defaultName        = "AI Suggestion"
	defaultDescription = "AI-generated parlay suggestion"
	defaultRiskLevel   = "medium"
)

// extractSuggestions pulls a suggestion array out of free-form model
// output. A nil slice with ok=false means extraction failed; the
// caller falls back, it never sees the failure reason as an error.
func extractSuggestions(raw string) ([]models.Suggestion, bool) {
	text := stripCodeFence(strings.TrimSpace(raw))

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end <= start {
		return nil, false
	}
	span := plusSignRe.ReplaceAllString(text[start:end+1], ":$1")

	var parsed []map[string]any
	if err := json.Unmarshal([]byte(span), &parsed); err != nil {
		return nil, false
	}

	suggestions := make([]models.Suggestion, 0, len(parsed))
	for _, obj := range parsed {
		if sug, ok := buildSuggestion(obj); ok {
			suggestions = append(suggestions, sug)
		}
	}
	if len(suggestions) == 0 {
		return nil, false
	}

	for i := range suggestions {
		suggestions[i].ID = fmt.Sprintf("sug-%d", i+1)
	}
	return suggestions, true
}

// buildSuggestion validates one parsed object. The combined odds are
// always recomputed from the legs; a model-supplied odds figure is
// never trusted.
func buildSuggestion(obj map[string]any) (models.Suggestion, bool) {
	sug := models.Suggestion{
		Name:        stringField(obj, "name", defaultName),
		Description: stringField(obj, "description", defaultDescription),
		RiskLevel:   stringField(obj, "riskLevel", defaultRiskLevel),
		Reasoning:   stringField(obj, "reasoning", fallbackReasoning),
	}

	rawLegs, _ := obj["legs"].([]any)
	for _, rl := range rawLegs {
		legObj, ok := rl.(map[string]any)
		if !ok {
			continue
		}
		sug.Legs = append(sug.Legs, buildLeg(legObj))
	}
	if len(sug.Legs) == 0 {
		return models.Suggestion{}, false
	}

	combined, err := oddsmath.CombinedDecimal(sug.Legs)
	if err != nil {
		return models.Suggestion{}, false
	}
	sug.EstimatedOdds = oddsmath.Round2(combined)

	return sug, true
}

func buildLeg(obj map[string]any) models.Leg {
	leg := models.Leg{
		Team:  stringField(obj, "team", "Unknown"),
		Type:  stringField(obj, "type", models.MarketMoneyline),
		Price: defaultPrice,
	}

	if id, ok := obj["gameId"].(string); ok {
		leg.GameID = id
	}
	if price, ok := obj["price"].(float64); ok && int(price) != 0 {
		leg.Price = int(price)
	}
	if point, ok := obj["point"].(float64); ok {
		leg.Point = &point
	}

	return leg
}

func stringField(obj map[string]any, key, fallback string) string {
	if v, ok := obj[key].(string); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

// stripCodeFence removes a surrounding markdown fence, with or
// without a language tag.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx != -1 {
		// Drop the language tag line ("json", "JSON", or empty).
		text = text[idx+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
