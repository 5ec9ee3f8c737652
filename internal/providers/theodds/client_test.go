package theodds_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/XavierBriggs/tyche/internal/providers/theodds"
	"github.com/XavierBriggs/tyche/pkg/models"
)

func TestFetchOddsUnconfiguredServesMock(t *testing.T) {
	client := theodds.New("", "")

	snap, err := client.FetchOdds(context.Background(), "nba")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !snap.IsMockData {
		t.Error("expected mock snapshot to be flagged")
	}
	if len(snap.Games) == 0 {
		t.Fatal("expected at least one mock game")
	}
	if snap.Games[0].Sport != "nba" {
		t.Errorf("sport = %q, want nba", snap.Games[0].Sport)
	}

	// Mock games must carry all three game markets so the builder UI
	// has something to render.
	markets := map[string]bool{}
	for _, bm := range snap.Games[0].Bookmakers {
		for _, mkt := range bm.Markets {
			markets[mkt.Type] = true
		}
	}
	for _, want := range []string{models.MarketMoneyline, models.MarketSpreads, models.MarketTotals} {
		if !markets[want] {
			t.Errorf("mock game missing market %q", want)
		}
	}
}

func TestFetchOddsUnsupportedSport(t *testing.T) {
	client := theodds.New("", "")

	if _, err := client.FetchOdds(context.Background(), "cricket"); err == nil {
		t.Error("expected error for unsupported sport")
	}
}

func TestFetchOddsRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "42")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := theodds.New("test-key", server.URL)

	_, err := client.FetchOdds(context.Background(), "nba")
	var rle *theodds.RateLimitError
	if !errors.As(err, &rle) {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
	if rle.RetryAfter != 42 {
		t.Errorf("RetryAfter = %d, want 42", rle.RetryAfter)
	}
}

func TestFetchOddsDecodesEvents(t *testing.T) {
	const payload = `[{
		"id": "evt-1",
		"commence_time": "2026-01-15T00:00:00Z",
		"home_team": "Denver Nuggets",
		"away_team": "Phoenix Suns",
		"bookmakers": [{
			"key": "draftkings",
			"title": "DraftKings",
			"markets": [{
				"key": "h2h",
				"outcomes": [
					{"name": "Denver Nuggets", "price": -180},
					{"name": "Phoenix Suns", "price": 155}
				]
			}]
		}]
	}]`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apiKey") != "test-key" {
			t.Errorf("missing apiKey query param")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer server.Close()

	client := theodds.New("test-key", server.URL)

	snap, err := client.FetchOdds(context.Background(), "nba")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.IsMockData {
		t.Error("live snapshot flagged as mock")
	}
	if len(snap.Games) != 1 {
		t.Fatalf("got %d games, want 1", len(snap.Games))
	}

	game := snap.Games[0]
	if game.ID != "evt-1" || game.HomeTeam != "Denver Nuggets" {
		t.Errorf("unexpected game: %+v", game)
	}
	if len(game.Bookmakers) != 1 || len(game.Bookmakers[0].Markets) != 1 {
		t.Fatalf("unexpected bookmaker shape: %+v", game.Bookmakers)
	}
	if got := game.Bookmakers[0].Markets[0].Outcomes[1].Price; got != 155 {
		t.Errorf("away price = %d, want 155", got)
	}
}

func TestFetchPlayerPropsFlattens(t *testing.T) {
	const payload = `{
		"id": "evt-9",
		"commence_time": "2026-01-15T00:00:00Z",
		"home_team": "Los Angeles Lakers",
		"away_team": "Boston Celtics",
		"bookmakers": [{
			"key": "draftkings",
			"title": "DraftKings",
			"markets": [{
				"key": "player_points",
				"outcomes": [
					{"name": "Over", "description": "LeBron James", "price": -115, "point": 25.5},
					{"name": "Under", "description": "LeBron James", "price": -105, "point": 25.5}
				]
			}]
		}]
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer server.Close()

	client := theodds.New("test-key", server.URL)

	snap, err := client.FetchPlayerProps(context.Background(), "nba", "evt-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.Props) != 2 {
		t.Fatalf("got %d props, want 2", len(snap.Props))
	}
	if snap.Props[0].Player != "LeBron James" || snap.Props[0].Type != "Over" {
		t.Errorf("unexpected prop: %+v", snap.Props[0])
	}
	if snap.Props[0].Point == nil || *snap.Props[0].Point != 25.5 {
		t.Errorf("point not carried through: %+v", snap.Props[0])
	}
}
