package theodds

import (
	"time"

	"github.com/XavierBriggs/tyche/pkg/models"
)

func floatPtr(f float64) *float64 { return &f }

// mockOdds returns a small fixed slate so the app is usable without an
// API key. Snapshots are flagged so the UI can show a banner.
func mockOdds(sport string) *models.OddsSnapshot {
	tipoff := time.Now().UTC().Add(6 * time.Hour).Truncate(time.Minute)

	var games []models.Game
	switch sport {
	case "nhl":
		games = []models.Game{
			{
				ID:        "mock-nhl-1",
				Sport:     "nhl",
				HomeTeam:  "Toronto Maple Leafs",
				AwayTeam:  "Montreal Canadiens",
				StartTime: tipoff,
				Bookmakers: []models.Bookmaker{
					{
						Name: "DraftKings",
						Markets: []models.Market{
							{
								Type: models.MarketMoneyline,
								Outcomes: []models.Outcome{
									{Name: "Toronto Maple Leafs", Price: -145},
									{Name: "Montreal Canadiens", Price: 125},
								},
							},
							{
								Type: models.MarketSpreads,
								Outcomes: []models.Outcome{
									{Name: "Toronto Maple Leafs", Price: 115, Point: floatPtr(-1.5)},
									{Name: "Montreal Canadiens", Price: -135, Point: floatPtr(1.5)},
								},
							},
							{
								Type: models.MarketTotals,
								Outcomes: []models.Outcome{
									{Name: "Over", Price: -110, Point: floatPtr(6.5)},
									{Name: "Under", Price: -110, Point: floatPtr(6.5)},
								},
							},
						},
					},
				},
			},
		}
	default:
		games = []models.Game{
			{
				ID:        "mock-nba-1",
				Sport:     "nba",
				HomeTeam:  "Los Angeles Lakers",
				AwayTeam:  "Boston Celtics",
				StartTime: tipoff,
				Bookmakers: []models.Bookmaker{
					{
						Name: "DraftKings",
						Markets: []models.Market{
							{
								Type: models.MarketMoneyline,
								Outcomes: []models.Outcome{
									{Name: "Los Angeles Lakers", Price: 120},
									{Name: "Boston Celtics", Price: -140},
								},
							},
							{
								Type: models.MarketSpreads,
								Outcomes: []models.Outcome{
									{Name: "Los Angeles Lakers", Price: -110, Point: floatPtr(3.5)},
									{Name: "Boston Celtics", Price: -110, Point: floatPtr(-3.5)},
								},
							},
							{
								Type: models.MarketTotals,
								Outcomes: []models.Outcome{
									{Name: "Over", Price: -108, Point: floatPtr(224.5)},
									{Name: "Under", Price: -112, Point: floatPtr(224.5)},
								},
							},
						},
					},
				},
			},
		}
	}

	return &models.OddsSnapshot{
		Sport:       sport,
		Games:       games,
		LastUpdated: time.Now().UTC(),
		IsMockData:  true,
	}
}

func mockProps(sport, eventID string) *models.PropsSnapshot {
	var props []models.PlayerProp
	switch sport {
	case "nhl":
		props = []models.PlayerProp{
			{Player: "Auston Matthews", Market: "player_goals", Type: "Over", Point: floatPtr(0.5), Price: 130},
			{Player: "Auston Matthews", Market: "player_shots_on_goal", Type: "Over", Point: floatPtr(3.5), Price: -115},
			{Player: "Connor McDavid", Market: "player_points", Type: "Over", Point: floatPtr(1.5), Price: 105},
			{Player: "Connor McDavid", Market: "player_assists", Type: "Over", Point: floatPtr(0.5), Price: -160},
		}
	default:
		props = []models.PlayerProp{
			{Player: "LeBron James", Market: "player_points", Type: "Over", Point: floatPtr(25.5), Price: -115},
			{Player: "LeBron James", Market: "player_assists", Type: "Over", Point: floatPtr(7.5), Price: -105},
			{Player: "Anthony Davis", Market: "player_rebounds", Type: "Over", Point: floatPtr(11.5), Price: -120},
			{Player: "Anthony Davis", Market: "player_points", Type: "Under", Point: floatPtr(24.5), Price: -110},
		}
	}

	return &models.PropsSnapshot{
		EventID:    eventID,
		Sport:      sport,
		Props:      props,
		IsMockData: true,
	}
}
