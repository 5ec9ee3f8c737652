package balldontlie

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	BaseURL = "https://api.balldontlie.io/v1"
)

// Team is one NBA franchise.
type Team struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Conference   string `json:"conference"`
}

// Player is a search result from the players endpoint.
type Player struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Position  string `json:"position"`
	Team      string `json:"team"`
}

// SeasonAverages holds one player's per-game averages for a season.
type SeasonAverages struct {
	PlayerID int                `json:"playerId"`
	Season   int                `json:"season"`
	Stats    map[string]float64 `json:"stats"`
}

// Teams is a static lookup table. BALLDONTLIE's teams endpoint also
// returns historical franchises, so we keep the 30 active clubs here.
var Teams = []Team{
	{1, "Atlanta Hawks", "ATL", "East"},
	{2, "Boston Celtics", "BOS", "East"},
	{3, "Brooklyn Nets", "BKN", "East"},
	{4, "Charlotte Hornets", "CHA", "East"},
	{5, "Chicago Bulls", "CHI", "East"},
	{6, "Cleveland Cavaliers", "CLE", "East"},
	{7, "Dallas Mavericks", "DAL", "West"},
	{8, "Denver Nuggets", "DEN", "West"},
	{9, "Detroit Pistons", "DET", "East"},
	{10, "Golden State Warriors", "GSW", "West"},
	{11, "Houston Rockets", "HOU", "West"},
	{12, "Indiana Pacers", "IND", "East"},
	{13, "LA Clippers", "LAC", "West"},
	{14, "Los Angeles Lakers", "LAL", "West"},
	{15, "Memphis Grizzlies", "MEM", "West"},
	{16, "Miami Heat", "MIA", "East"},
	{17, "Milwaukee Bucks", "MIL", "East"},
	{18, "Minnesota Timberwolves", "MIN", "West"},
	{19, "New Orleans Pelicans", "NOP", "West"},
	{20, "New York Knicks", "NYK", "East"},
	{21, "Oklahoma City Thunder", "OKC", "West"},
	{22, "Orlando Magic", "ORL", "East"},
	{23, "Philadelphia 76ers", "PHI", "East"},
	{24, "Phoenix Suns", "PHX", "West"},
	{25, "Portland Trail Blazers", "POR", "West"},
	{26, "Sacramento Kings", "SAC", "West"},
	{27, "San Antonio Spurs", "SAS", "West"},
	{28, "Toronto Raptors", "TOR", "East"},
	{29, "Utah Jazz", "UTA", "West"},
	{30, "Washington Wizards", "WAS", "East"},
}

// TeamByID returns the active team with the given id, or nil.
func TeamByID(id int) *Team {
	for i := range Teams {
		if Teams[i].ID == id {
			return &Teams[i]
		}
	}
	return nil
}

// Client handles BALLDONTLIE API requests.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// New creates a new BALLDONTLIE client.
func New(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: BaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SearchPlayers looks up players by name fragment.
func (c *Client) SearchPlayers(ctx context.Context, query string) ([]Player, error) {
	endpoint := fmt.Sprintf("%s/players?search=%s", c.baseURL, url.QueryEscape(query))

	var payload struct {
		Data []struct {
			ID        int    `json:"id"`
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Position  string `json:"position"`
			Team      struct {
				FullName string `json:"full_name"`
			} `json:"team"`
		} `json:"data"`
	}
	if err := c.fetch(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	players := make([]Player, 0, len(payload.Data))
	for _, p := range payload.Data {
		team := p.Team.FullName
		if team == "" {
			team = "Unknown"
		}
		players = append(players, Player{
			ID:        p.ID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Position:  p.Position,
			Team:      team,
		})
	}
	return players, nil
}

// PlayerSeasonAverages fetches the player's averages for the current
// season. Before October the season rolls back to the previous year.
func (c *Client) PlayerSeasonAverages(ctx context.Context, playerID int) (*SeasonAverages, error) {
	season := CurrentSeason(time.Now())
	endpoint := fmt.Sprintf("%s/season_averages?season=%d&player_ids[]=%d", c.baseURL, season, playerID)

	var payload struct {
		Data []map[string]float64 `json:"data"`
	}
	if err := c.fetch(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	avg := &SeasonAverages{PlayerID: playerID, Season: season}
	if len(payload.Data) > 0 {
		avg.Stats = payload.Data[0]
	}
	return avg, nil
}

// CurrentSeason maps a date onto a BALLDONTLIE season year.
func CurrentSeason(now time.Time) int {
	if now.Month() >= time.October {
		return now.Year()
	}
	return now.Year() - 1
}

func (c *Client) fetch(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("BALLDONTLIE API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
