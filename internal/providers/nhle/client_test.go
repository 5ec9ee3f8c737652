package nhle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newServerClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := New()
	c.baseURL = srv.URL
	return c, srv
}

func TestStandings(t *testing.T) {
	c, srv := newServerClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/standings/now" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"standings":[{
			"teamAbbrev":{"default":"TOR"},
			"teamName":{"default":"Toronto Maple Leafs"},
			"conferenceName":"Eastern",
			"divisionName":"Atlantic",
			"wins":30,"losses":12,"otLosses":4,"points":64,
			"gamesPlayed":46,"goalFor":160,"goalAgainst":120,
			"streakCode":"W","streakCount":3
		}]}`))
	})
	defer srv.Close()

	standings, err := c.Standings(context.Background())
	if err != nil {
		t.Fatalf("Standings: %v", err)
	}
	if len(standings) != 1 {
		t.Fatalf("expected 1 standing, got %d", len(standings))
	}
	team := standings[0]
	if team.Abbreviation != "TOR" {
		t.Errorf("abbreviation = %q, want TOR", team.Abbreviation)
	}
	if team.Name != "Toronto Maple Leafs" {
		t.Errorf("name = %q", team.Name)
	}
	if team.Points != 64 {
		t.Errorf("points = %d, want 64", team.Points)
	}
	if team.GoalsFor != 160 || team.GoalsAgainst != 120 {
		t.Errorf("goals = %d/%d, want 160/120", team.GoalsFor, team.GoalsAgainst)
	}
	if team.StreakCode != "W" || team.StreakCount != 3 {
		t.Errorf("streak = %s%d, want W3", team.StreakCode, team.StreakCount)
	}
}

func TestTeamStats(t *testing.T) {
	c, srv := newServerClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/club-stats/EDM/now" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"skaters":[{
				"firstName":{"default":"Connor"},
				"lastName":{"default":"McDavid"},
				"positionCode":"C",
				"gamesPlayed":45,"goals":28,"assists":52,"points":80,
				"shots":170,"plusMinus":18,"avgTimeOnIcePerGame":1320.5
			}],
			"goalies":[{
				"firstName":{"default":"Stuart"},
				"lastName":{"default":"Skinner"},
				"gamesPlayed":30,"wins":19,"losses":8,
				"savePercentage":0.908,"goalsAgainstAverage":2.62
			}]
		}`))
	})
	defer srv.Close()

	stats, err := c.TeamStats(context.Background(), "EDM")
	if err != nil {
		t.Fatalf("TeamStats: %v", err)
	}
	if stats.TeamAbbr != "EDM" {
		t.Errorf("teamAbbr = %q, want EDM", stats.TeamAbbr)
	}
	if len(stats.Skaters) != 1 || len(stats.Goalies) != 1 {
		t.Fatalf("expected 1 skater and 1 goalie, got %d/%d", len(stats.Skaters), len(stats.Goalies))
	}
	skater := stats.Skaters[0]
	if skater.FirstName != "Connor" || skater.LastName != "McDavid" {
		t.Errorf("skater name = %s %s", skater.FirstName, skater.LastName)
	}
	if skater.Position != "C" || skater.Points != 80 {
		t.Errorf("skater stats = %s/%d, want C/80", skater.Position, skater.Points)
	}
	goalie := stats.Goalies[0]
	if goalie.SavePercentage != 0.908 {
		t.Errorf("save%% = %v, want 0.908", goalie.SavePercentage)
	}
	if goalie.Wins != 19 {
		t.Errorf("wins = %d, want 19", goalie.Wins)
	}
}

func TestTeamStatsTruncatesSkaters(t *testing.T) {
	var skaters []string
	for i := 0; i < 15; i++ {
		skaters = append(skaters, `{"firstName":{"default":"Skater"},"lastName":{"default":"Depth"},"positionCode":"D","gamesPlayed":40}`)
	}
	body := `{"skaters":[` + strings.Join(skaters, ",") + `],"goalies":[]}`

	c, srv := newServerClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
	defer srv.Close()

	stats, err := c.TeamStats(context.Background(), "CHI")
	if err != nil {
		t.Fatalf("TeamStats: %v", err)
	}
	if len(stats.Skaters) != maxClubSkaters {
		t.Errorf("expected skaters capped at %d, got %d", maxClubSkaters, len(stats.Skaters))
	}
}

func TestFetchErrorStatus(t *testing.T) {
	c, srv := newServerClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	defer srv.Close()

	if _, err := c.Standings(context.Background()); err == nil {
		t.Fatal("expected error on 404 response")
	}
}
