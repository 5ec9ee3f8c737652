package suggest

import "github.com/XavierBriggs/tyche/pkg/models"

func floatPtr(f float64) *float64 { return &f }

// FallbackSuggestions returns the fixed three-entry suggestion set
// served whenever no games are available or the model gateway fails.
// Returned fresh per call so callers can annotate without sharing.
func FallbackSuggestions() []models.Suggestion {
	return []models.Suggestion{
		{
			ID:          "sug-1",
			Name:        "Conservative Pick",
			Description: "Lower risk combination with favorites",
			RiskLevel:   "low",
			Legs: []models.Leg{
				{Team: "Example Team A", Type: models.MarketMoneyline, Price: -150},
				{Team: "Example Team B", Type: models.MarketSpreads, Price: -110, Point: floatPtr(-3.5)},
			},
			EstimatedOdds: 2.6,
			Reasoning:     fallbackReasoning,
		},
		{
			ID:          "sug-2",
			Name:        "Balanced Pick",
			Description: "Mix of favorites and slight underdogs",
			RiskLevel:   "medium",
			Legs: []models.Leg{
				{Team: "Example Team C", Type: models.MarketMoneyline, Price: -120},
				{Team: "Over", Type: models.MarketTotals, Price: -110, Point: floatPtr(45.5)},
				{Team: "Example Team E", Type: models.MarketMoneyline, Price: 105},
			},
			EstimatedOdds: 5.2,
			Reasoning:     fallbackReasoning,
		},
		{
			ID:          "sug-3",
			Name:        "Value Play",
			Description: "Higher risk, higher potential reward",
			RiskLevel:   "high",
			Legs: []models.Leg{
				{Team: "Example Team F", Type: models.MarketMoneyline, Price: 130},
				{Team: "Example Team G", Type: models.MarketMoneyline, Price: 145},
				{Team: "Example Team H", Type: models.MarketSpreads, Price: -105, Point: floatPtr(6.5)},
			},
			EstimatedOdds: 10.8,
			Reasoning:     fallbackReasoning,
		},
	}
}

const fallbackReasoning = "Analysis based on current odds and trends."
