package suggest

import (
	"testing"

	"github.com/XavierBriggs/tyche/pkg/models"
)

func TestExtractSuggestions_FencedWithPlusSign(t *testing.T) {
	raw := "```json\n" + `[
		{
			"name": "Longshot Special",
			"description": "Big underdog stack",
			"riskLevel": "high",
			"legs": [
				{"team": "Charlotte Hornets", "type": "h2h", "price": +750, "point": null, "gameId": "g7"},
				{"team": "Detroit Pistons", "type": "h2h", "price": +320, "point": null, "gameId": "g8"}
			],
			"reasoning": "Maximum variance."
		}
	]` + "\n```"

	suggestions, ok := extractSuggestions(raw)
	if !ok {
		t.Fatal("extraction failed")
	}
	if len(suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(suggestions))
	}

	if got := suggestions[0].Legs[0].Price; got != 750 {
		t.Errorf("first leg price = %d, want 750", got)
	}
	if got := suggestions[0].Legs[1].Price; got != 320 {
		t.Errorf("second leg price = %d, want 320", got)
	}
}

func TestExtractSuggestions_SurroundingProse(t *testing.T) {
	raw := `Here are my suggestions for today:

[{"name": "Pick", "riskLevel": "low", "legs": [{"team": "A", "type": "h2h", "price": -120}]}]

Remember, this is for research only.`

	suggestions, ok := extractSuggestions(raw)
	if !ok {
		t.Fatal("extraction failed")
	}
	if suggestions[0].Name != "Pick" {
		t.Errorf("name = %q, want Pick", suggestions[0].Name)
	}
}

func TestExtractSuggestions_FillerDefaults(t *testing.T) {
	raw := `[{"legs": [{"team": "A", "type": "h2h"}, {"team": "B", "type": "h2h"}]}]`

	suggestions, ok := extractSuggestions(raw)
	if !ok {
		t.Fatal("extraction failed")
	}

	sug := suggestions[0]
	if sug.Name != defaultName {
		t.Errorf("name = %q, want filler", sug.Name)
	}
	if sug.Description != defaultDescription {
		t.Errorf("description = %q, want filler", sug.Description)
	}
	if sug.RiskLevel != defaultRiskLevel {
		t.Errorf("riskLevel = %q, want filler", sug.RiskLevel)
	}
	if sug.Reasoning == "" {
		t.Error("reasoning should default to filler text")
	}
	for i, leg := range sug.Legs {
		if leg.Price != defaultPrice {
			t.Errorf("leg %d price = %d, want %d", i, leg.Price, defaultPrice)
		}
	}
}

func TestExtractSuggestions_RecomputesOdds(t *testing.T) {
	// The model claims estimatedOdds 99.9; the recomputed product of
	// -110 and -110 (≈3.65) must win.
	raw := `[{
		"name": "Pick",
		"estimatedOdds": 99.9,
		"legs": [
			{"team": "A", "type": "h2h", "price": -110},
			{"team": "B", "type": "h2h", "price": -110}
		]
	}]`

	suggestions, ok := extractSuggestions(raw)
	if !ok {
		t.Fatal("extraction failed")
	}
	if got := suggestions[0].EstimatedOdds; got < 3.6 || got > 3.7 {
		t.Errorf("estimatedOdds = %v, want recomputed ≈3.65", got)
	}
}

func TestExtractSuggestions_SequentialIDs(t *testing.T) {
	raw := `[
		{"legs": [{"team": "A", "type": "h2h", "price": -110}]},
		{"legs": [{"team": "B", "type": "h2h", "price": -110}]},
		{"legs": [{"team": "C", "type": "h2h", "price": -110}]}
	]`

	suggestions, ok := extractSuggestions(raw)
	if !ok {
		t.Fatal("extraction failed")
	}

	for i, sug := range suggestions {
		want := []string{"sug-1", "sug-2", "sug-3"}[i]
		if sug.ID != want {
			t.Errorf("suggestion %d id = %q, want %q", i, sug.ID, want)
		}
	}
}

func TestExtractSuggestions_PointCarriedThrough(t *testing.T) {
	raw := `[{"legs": [{"team": "Over", "type": "totals", "price": -110, "point": 224.5}]}]`

	suggestions, ok := extractSuggestions(raw)
	if !ok {
		t.Fatal("extraction failed")
	}

	leg := suggestions[0].Legs[0]
	if leg.Type != models.MarketTotals {
		t.Errorf("type = %q, want totals", leg.Type)
	}
	if leg.Point == nil || *leg.Point != 224.5 {
		t.Errorf("point not carried through: %+v", leg)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `[1]`, `[1]`},
		{"json tag", "```json\n[1]\n```", `[1]`},
		{"bare fence", "```\n[1]\n```", `[1]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFence(tt.in); got != tt.want {
				t.Errorf("stripCodeFence = %q, want %q", got, tt.want)
			}
		})
	}
}
