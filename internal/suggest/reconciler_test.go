package suggest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/XavierBriggs/tyche/pkg/models"
)

// fakeGateway records dispatches and serves a canned reply or error.
type fakeGateway struct {
	available bool
	reply     string
	err       error
	calls     int
	prompts   []string
}

func (f *fakeGateway) Available() bool { return f.available }

func (f *fakeGateway) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func sampleGames() []models.Game {
	return []models.Game{
		{
			ID:       "g1",
			Sport:    "nba",
			HomeTeam: "Boston Celtics",
			AwayTeam: "Los Angeles Lakers",
			Bookmakers: []models.Bookmaker{
				{
					Name: "DraftKings",
					Markets: []models.Market{
						{
							Type: models.MarketMoneyline,
							Outcomes: []models.Outcome{
								{Name: "Boston Celtics", Price: -140},
								{Name: "Los Angeles Lakers", Price: 120},
							},
						},
					},
				},
			},
		},
	}
}

func TestGenerateEmptySlateSkipsDispatch(t *testing.T) {
	gateway := &fakeGateway{available: true, reply: "should never be requested"}
	r := NewReconciler(gateway)

	suggestions, source := r.Generate(context.Background(), nil, nil, nil)

	if gateway.calls != 0 {
		t.Errorf("gateway dispatched %d times, want 0", gateway.calls)
	}
	if source != SourceFallback {
		t.Errorf("source = %q, want %q", source, SourceFallback)
	}
	if len(suggestions) != 3 {
		t.Fatalf("got %d suggestions, want 3", len(suggestions))
	}

	wantRisk := []string{"low", "medium", "high"}
	for i, sug := range suggestions {
		if sug.RiskLevel != wantRisk[i] {
			t.Errorf("suggestion %d risk = %q, want %q", i, sug.RiskLevel, wantRisk[i])
		}
	}
}

func TestGenerateGatewayErrorFallsBack(t *testing.T) {
	gateway := &fakeGateway{available: true, err: errors.New("connection refused")}
	r := NewReconciler(gateway)

	suggestions, source := r.Generate(context.Background(), sampleGames(), nil, nil)

	if source != SourceFallback {
		t.Errorf("source = %q, want %q", source, SourceFallback)
	}
	if len(suggestions) != 3 {
		t.Fatalf("got %d suggestions, want 3", len(suggestions))
	}
	if suggestions[0].Name != "Conservative Pick" {
		t.Errorf("first suggestion = %q, want Conservative Pick", suggestions[0].Name)
	}
}

func TestGenerateUnavailableGatewayFallsBack(t *testing.T) {
	gateway := &fakeGateway{available: false}
	r := NewReconciler(gateway)

	_, source := r.Generate(context.Background(), sampleGames(), nil, nil)

	if gateway.calls != 0 {
		t.Errorf("unavailable gateway dispatched %d times, want 0", gateway.calls)
	}
	if source != SourceFallback {
		t.Errorf("source = %q, want %q", source, SourceFallback)
	}
}

func TestGenerateNilGatewayFallsBack(t *testing.T) {
	r := NewReconciler(nil)

	suggestions, source := r.Generate(context.Background(), sampleGames(), nil, nil)

	if source != SourceFallback || len(suggestions) != 3 {
		t.Errorf("got source %q with %d suggestions, want fallback set", source, len(suggestions))
	}
}

func TestGenerateMalformedReplyFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"prose only", "I cannot produce suggestions today."},
		{"no array", `{"name": "not an array"}`},
		{"broken json", `[{"name": "oops"`},
		{"empty array", `[]`},
		{"objects without legs", `[{"name": "No Legs", "legs": []}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := &fakeGateway{available: true, reply: tt.reply}
			r := NewReconciler(gateway)

			suggestions, source := r.Generate(context.Background(), sampleGames(), nil, nil)

			if source != SourceFallback {
				t.Errorf("source = %q, want %q", source, SourceFallback)
			}
			if len(suggestions) != 3 {
				t.Errorf("got %d suggestions, want the 3-entry fallback", len(suggestions))
			}
		})
	}
}

func TestGenerateValidReply(t *testing.T) {
	gateway := &fakeGateway{available: true, reply: "```json\n" + `[
		{
			"name": "Favorites Double",
			"description": "Two home favorites",
			"riskLevel": "low",
			"legs": [
				{"team": "Boston Celtics", "type": "h2h", "price": -140, "point": null, "gameId": "g1"},
				{"team": "Denver Nuggets", "type": "h2h", "price": -180, "point": null, "gameId": "g2"}
			],
			"reasoning": "Both favorites at home."
		}
	]` + "\n```"}
	r := NewReconciler(gateway)

	suggestions, source := r.Generate(context.Background(), sampleGames(), nil, nil)

	if source != SourceAI {
		t.Fatalf("source = %q, want %q", source, SourceAI)
	}
	if len(suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(suggestions))
	}

	sug := suggestions[0]
	if sug.ID != "sug-1" {
		t.Errorf("id = %q, want sug-1", sug.ID)
	}
	if len(sug.Legs) != 2 {
		t.Fatalf("got %d legs, want 2", len(sug.Legs))
	}
	// -140 → 1.7143, -180 → 1.5556, product ≈ 2.6667
	if sug.EstimatedOdds < 2.66 || sug.EstimatedOdds > 2.67 {
		t.Errorf("estimatedOdds = %v, want ≈2.67", sug.EstimatedOdds)
	}
}

func TestGeneratePromptContents(t *testing.T) {
	gateway := &fakeGateway{available: true, err: errors.New("stop after prompt")}
	r := NewReconciler(gateway)

	prefs := &models.Preferences{
		FavoriteTeams: []string{"Boston Celtics"},
		RiskTolerance: "aggressive",
		TeamFocus:     []models.TeamFocus{{Team: "Denver Nuggets", RiskAffinity: "high", AlwaysInclude: true}},
		AvoidTeams:    []string{"Utah Jazz"},
	}
	props := []models.PlayerProp{
		{Player: "Jayson Tatum", Market: "player_points", Type: "Over", Point: floatPtr(27.5), Price: -115},
	}

	r.Generate(context.Background(), sampleGames(), props, prefs)

	if len(gateway.prompts) != 1 {
		t.Fatalf("expected one dispatch, got %d", len(gateway.prompts))
	}
	prompt := gateway.prompts[0]

	for _, want := range []string{
		"Boston Celtics",
		"aggressive",
		"MUST include a Denver Nuggets leg",
		"Never include these teams: Utah Jazz",
		"Jayson Tatum",
		"exactly 3 suggestion objects",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestAnalyzeTemplatedRiskTiers(t *testing.T) {
	r := NewReconciler(nil)

	tests := []struct {
		legCount int
		want     string
	}{
		{2, "Moderate"},
		{3, "Moderate"},
		{4, "High"},
		{5, "High"},
		{6, "Very High"},
	}

	for _, tt := range tests {
		legs := make([]models.Leg, tt.legCount)
		for i := range legs {
			legs[i] = models.Leg{Team: "Team", Type: models.MarketMoneyline, Price: -110}
		}

		analysis := r.Analyze(context.Background(), legs)
		if !strings.Contains(analysis, "**Risk Assessment**: "+tt.want) {
			t.Errorf("%d legs: analysis missing risk tier %q", tt.legCount, tt.want)
		}
	}
}

func TestAnalyzeGatewayReplyVerbatim(t *testing.T) {
	gateway := &fakeGateway{available: true, reply: "This parlay leans heavily on road favorites."}
	r := NewReconciler(gateway)

	legs := []models.Leg{
		{Team: "A", Type: models.MarketMoneyline, Price: -110},
		{Team: "B", Type: models.MarketMoneyline, Price: 120},
	}

	if got := r.Analyze(context.Background(), legs); got != gateway.reply {
		t.Errorf("analysis = %q, want gateway reply verbatim", got)
	}
}

func TestAnalyzeGatewayErrorFallsBack(t *testing.T) {
	gateway := &fakeGateway{available: true, err: errors.New("timeout")}
	r := NewReconciler(gateway)

	legs := make([]models.Leg, 4)
	for i := range legs {
		legs[i] = models.Leg{Team: "Team", Type: models.MarketMoneyline, Price: -110}
	}

	analysis := r.Analyze(context.Background(), legs)
	if !strings.Contains(analysis, "High") {
		t.Errorf("expected templated fallback, got %q", analysis)
	}
}
