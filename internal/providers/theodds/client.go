package theodds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/XavierBriggs/tyche/pkg/models"
)

const (
	DefaultBaseURL = "https://api.the-odds-api.com/v4"

	// DraftKings is the single book we quote from so prices stay
	// comparable across games.
	bookmakerKey = "draftkings"

	gameMarkets = "h2h,spreads,totals"
)

// SportKeys maps our short sport names onto The Odds API sport keys.
var SportKeys = map[string]string{
	"nba": "basketball_nba",
	"nhl": "icehockey_nhl",
}

// PropMarkets lists the player prop markets requested per sport.
var PropMarkets = map[string]string{
	"nba": "player_points,player_rebounds,player_assists,player_threes",
	"nhl": "player_points,player_goals,player_assists,player_shots_on_goal",
}

// RateLimitError signals the provider refused the request because the
// key is exhausted or invalid. RetryAfter is seconds, 0 when unknown.
type RateLimitError struct {
	StatusCode int
	RetryAfter int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("odds provider rate limited: status=%d retryAfter=%ds", e.StatusCode, e.RetryAfter)
}

// Client handles The Odds API requests. Without an API key it serves
// static mock snapshots so the rest of the app keeps working in dev.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// New creates a new Odds API client.
func New(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Configured reports whether a real API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// FetchOdds fetches upcoming games with moneyline, spread and total
// markets for one sport. sport is a short key ("nba", "nhl").
func (c *Client) FetchOdds(ctx context.Context, sport string) (*models.OddsSnapshot, error) {
	sportKey, ok := SportKeys[sport]
	if !ok {
		return nil, fmt.Errorf("unsupported sport: %s", sport)
	}

	if !c.Configured() {
		return mockOdds(sport), nil
	}

	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	q.Set("regions", "us")
	q.Set("markets", gameMarkets)
	q.Set("bookmakers", bookmakerKey)
	q.Set("oddsFormat", "american")

	endpoint := fmt.Sprintf("%s/sports/%s/odds?%s", c.baseURL, sportKey, q.Encode())

	var events []apiEvent
	if err := c.fetch(ctx, endpoint, &events); err != nil {
		return nil, err
	}

	games := make([]models.Game, 0, len(events))
	for _, ev := range events {
		games = append(games, ev.toGame(sport))
	}

	return &models.OddsSnapshot{
		Sport:       sport,
		Games:       games,
		LastUpdated: time.Now().UTC(),
	}, nil
}

// FetchPlayerProps fetches player prop markets for a single event.
func (c *Client) FetchPlayerProps(ctx context.Context, sport, eventID string) (*models.PropsSnapshot, error) {
	sportKey, ok := SportKeys[sport]
	if !ok {
		return nil, fmt.Errorf("unsupported sport: %s", sport)
	}

	if !c.Configured() {
		return mockProps(sport, eventID), nil
	}

	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	q.Set("regions", "us")
	q.Set("markets", PropMarkets[sport])
	q.Set("bookmakers", bookmakerKey)
	q.Set("oddsFormat", "american")

	endpoint := fmt.Sprintf("%s/sports/%s/events/%s/odds?%s", c.baseURL, sportKey, eventID, q.Encode())

	var ev apiEvent
	if err := c.fetch(ctx, endpoint, &ev); err != nil {
		return nil, err
	}

	return &models.PropsSnapshot{
		EventID: eventID,
		Sport:   sport,
		Props:   ev.toProps(),
	}, nil
}

// fetch makes an HTTP GET request and decodes the JSON body into out.
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

	// 401 covers an exhausted monthly quota, not just a bad key.
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusUnauthorized {
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &RateLimitError{StatusCode: resp.StatusCode, RetryAfter: retryAfter}
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("odds API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// apiEvent mirrors The Odds API event payload.
type apiEvent struct {
	ID           string    `json:"id"`
	CommenceTime time.Time `json:"commence_time"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
	Bookmakers   []struct {
		Key     string `json:"key"`
		Title   string `json:"title"`
		Markets []struct {
			Key      string `json:"key"`
			Outcomes []struct {
				Name        string   `json:"name"`
				Description string   `json:"description"`
				Price       int      `json:"price"`
				Point       *float64 `json:"point"`
			} `json:"outcomes"`
		} `json:"markets"`
	} `json:"bookmakers"`
}

func (ev apiEvent) toGame(sport string) models.Game {
	game := models.Game{
		ID:        ev.ID,
		Sport:     sport,
		HomeTeam:  ev.HomeTeam,
		AwayTeam:  ev.AwayTeam,
		StartTime: ev.CommenceTime,
	}

	for _, bm := range ev.Bookmakers {
		book := models.Bookmaker{Name: bm.Title}
		for _, mkt := range bm.Markets {
			market := models.Market{Type: mkt.Key}
			for _, o := range mkt.Outcomes {
				market.Outcomes = append(market.Outcomes, models.Outcome{
					Name:  o.Name,
					Price: o.Price,
					Point: o.Point,
				})
			}
			book.Markets = append(book.Markets, market)
		}
		game.Bookmakers = append(game.Bookmakers, book)
	}

	return game
}

// toProps flattens the event's prop markets: the provider puts the
// player name in Description and Over/Under in Name.
func (ev apiEvent) toProps() []models.PlayerProp {
	var props []models.PlayerProp
	for _, bm := range ev.Bookmakers {
		for _, mkt := range bm.Markets {
			if !strings.HasPrefix(mkt.Key, models.PlayerPropPrefix) {
				continue
			}
			for _, o := range mkt.Outcomes {
				props = append(props, models.PlayerProp{
					Player: o.Description,
					Market: mkt.Key,
					Type:   o.Name,
					Point:  o.Point,
					Price:  o.Price,
				})
			}
		}
	}
	return props
}
