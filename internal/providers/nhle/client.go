package nhle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	BaseURL = "https://api-web.nhle.com/v1"
)

// TeamStanding is one club's line in the current standings.
type TeamStanding struct {
	Abbreviation string `json:"abbreviation"`
	Name         string `json:"name"`
	Conference   string `json:"conference"`
	Division     string `json:"division"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	OTLosses     int    `json:"otLosses"`
	Points       int    `json:"points"`
	GamesPlayed  int    `json:"gamesPlayed"`
	GoalsFor     int    `json:"goalsFor"`
	GoalsAgainst int    `json:"goalsAgainst"`
	StreakCode   string `json:"streakCode"`
	StreakCount  int    `json:"streakCount"`
}

// Client handles NHL API requests. The NHL API needs no key.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new NHL API client.
func New() *Client {
	return &Client{
		baseURL: BaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Standings fetches the league standings as of now.
func (c *Client) Standings(ctx context.Context) ([]TeamStanding, error) {
	endpoint := fmt.Sprintf("%s/standings/now", c.baseURL)

	var payload struct {
		Standings []struct {
			TeamAbbrev struct {
				Default string `json:"default"`
			} `json:"teamAbbrev"`
			TeamName struct {
				Default string `json:"default"`
			} `json:"teamName"`
			ConferenceName string `json:"conferenceName"`
			DivisionName   string `json:"divisionName"`
			Wins           int    `json:"wins"`
			Losses         int    `json:"losses"`
			OTLosses       int    `json:"otLosses"`
			Points         int    `json:"points"`
			GamesPlayed    int    `json:"gamesPlayed"`
			GoalFor        int    `json:"goalFor"`
			GoalAgainst    int    `json:"goalAgainst"`
			StreakCode     string `json:"streakCode"`
			StreakCount    int    `json:"streakCount"`
		} `json:"standings"`
	}
	if err := c.fetch(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	standings := make([]TeamStanding, 0, len(payload.Standings))
	for _, s := range payload.Standings {
		standings = append(standings, TeamStanding{
			Abbreviation: s.TeamAbbrev.Default,
			Name:         s.TeamName.Default,
			Conference:   s.ConferenceName,
			Division:     s.DivisionName,
			Wins:         s.Wins,
			Losses:       s.Losses,
			OTLosses:     s.OTLosses,
			Points:       s.Points,
			GamesPlayed:  s.GamesPlayed,
			GoalsFor:     s.GoalFor,
			GoalsAgainst: s.GoalAgainst,
			StreakCode:   s.StreakCode,
			StreakCount:  s.StreakCount,
		})
	}
	return standings, nil
}

// SkaterStats is one skater's line from the club-stats endpoint.
type SkaterStats struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Position  string  `json:"position"`
	Games     int     `json:"games"`
	Goals     int     `json:"goals"`
	Assists   int     `json:"assists"`
	Points    int     `json:"points"`
	Shots     int     `json:"shots"`
	PlusMinus int     `json:"plusMinus"`
	AvgTOI    float64 `json:"avgToi"`
}

// GoalieStats is one goalie's line from the club-stats endpoint.
type GoalieStats struct {
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Games          int     `json:"games"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	SavePercentage float64 `json:"savePercentage"`
	GoalsAgainst   float64 `json:"goalsAgainstAverage"`
}

// ClubStats holds a team's current-season player statistics. Skaters
// are truncated to the top entries; goalies are returned whole.
type ClubStats struct {
	TeamAbbr string        `json:"teamAbbr"`
	Skaters  []SkaterStats `json:"skaters"`
	Goalies  []GoalieStats `json:"goalies"`
}

const maxClubSkaters = 10

// TeamStats fetches a club's current-season skater and goalie stats.
func (c *Client) TeamStats(ctx context.Context, teamAbbr string) (*ClubStats, error) {
	endpoint := fmt.Sprintf("%s/club-stats/%s/now", c.baseURL, teamAbbr)

	var payload struct {
		Skaters []struct {
			FirstName struct {
				Default string `json:"default"`
			} `json:"firstName"`
			LastName struct {
				Default string `json:"default"`
			} `json:"lastName"`
			PositionCode        string  `json:"positionCode"`
			GamesPlayed         int     `json:"gamesPlayed"`
			Goals               int     `json:"goals"`
			Assists             int     `json:"assists"`
			Points              int     `json:"points"`
			Shots               int     `json:"shots"`
			PlusMinus           int     `json:"plusMinus"`
			AvgTimeOnIcePerGame float64 `json:"avgTimeOnIcePerGame"`
		} `json:"skaters"`
		Goalies []struct {
			FirstName struct {
				Default string `json:"default"`
			} `json:"firstName"`
			LastName struct {
				Default string `json:"default"`
			} `json:"lastName"`
			GamesPlayed         int     `json:"gamesPlayed"`
			Wins                int     `json:"wins"`
			Losses              int     `json:"losses"`
			SavePercentage      float64 `json:"savePercentage"`
			GoalsAgainstAverage float64 `json:"goalsAgainstAverage"`
		} `json:"goalies"`
	}
	if err := c.fetch(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	stats := &ClubStats{TeamAbbr: teamAbbr}
	for i, s := range payload.Skaters {
		if i >= maxClubSkaters {
			break
		}
		stats.Skaters = append(stats.Skaters, SkaterStats{
			FirstName: s.FirstName.Default,
			LastName:  s.LastName.Default,
			Position:  s.PositionCode,
			Games:     s.GamesPlayed,
			Goals:     s.Goals,
			Assists:   s.Assists,
			Points:    s.Points,
			Shots:     s.Shots,
			PlusMinus: s.PlusMinus,
			AvgTOI:    s.AvgTimeOnIcePerGame,
		})
	}
	for _, g := range payload.Goalies {
		stats.Goalies = append(stats.Goalies, GoalieStats{
			FirstName:      g.FirstName.Default,
			LastName:       g.LastName.Default,
			Games:          g.GamesPlayed,
			Wins:           g.Wins,
			Losses:         g.Losses,
			SavePercentage: g.SavePercentage,
			GoalsAgainst:   g.GoalsAgainstAverage,
		})
	}
	return stats, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("NHL API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
