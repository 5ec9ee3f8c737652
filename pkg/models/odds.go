package models

import "time"

// Outcome is a single priced selection within a market.
type Outcome struct {
	Name  string   `json:"name"`
	Price int      `json:"price"`
	Point *float64 `json:"point,omitempty"`
}

// Market is one wager category offered by a bookmaker.
type Market struct {
	Type     string    `json:"type"`
	Outcomes []Outcome `json:"outcomes"`
}

// Bookmaker is one book's quotes for a game.
type Bookmaker struct {
	Name    string   `json:"name"`
	Markets []Market `json:"markets"`
}

// Game is a single upcoming event with its bookmaker quotes.
type Game struct {
	ID         string      `json:"id"`
	Sport      string      `json:"sport"`
	HomeTeam   string      `json:"homeTeam"`
	AwayTeam   string      `json:"awayTeam"`
	StartTime  time.Time   `json:"startTime"`
	Bookmakers []Bookmaker `json:"bookmakers"`
}

// OddsSnapshot is the per-sport odds payload served to clients and
// cached between provider fetches.
type OddsSnapshot struct {
	Sport       string    `json:"sport"`
	Games       []Game    `json:"games"`
	LastUpdated time.Time `json:"lastUpdated"`
	IsMockData  bool      `json:"isMockData,omitempty"`
}

// PlayerProp is one flattened player prop line for a game.
type PlayerProp struct {
	Player string   `json:"player"`
	Market string   `json:"market"`
	Type   string   `json:"type"` // Over / Under
	Point  *float64 `json:"point,omitempty"`
	Price  int      `json:"price"`
}

// PropsSnapshot is the per-event player prop payload.
type PropsSnapshot struct {
	EventID    string       `json:"eventId"`
	Sport      string       `json:"sport"`
	Props      []PlayerProp `json:"props"`
	IsMockData bool         `json:"isMockData,omitempty"`
}
