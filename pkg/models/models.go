package models

import "time"

// Market type keys, matching the odds provider's market naming.
const (
	MarketMoneyline = "h2h"
	MarketSpreads   = "spreads"
	MarketTotals    = "totals"

	// Player prop markets share the provider's "player_" prefix
	// (player_points, player_rebounds, player_goals, ...).
	PlayerPropPrefix = "player_"
)

// Leg is a single selection within a parlay.
// Team carries the selection label: a team name for h2h/spreads,
// "Over"/"Under" for totals, or a player name for props.
type Leg struct {
	GameID string   `json:"gameId,omitempty"`
	Team   string   `json:"team"`
	Type   string   `json:"type"`
	Price  int      `json:"price"`
	Point  *float64 `json:"point,omitempty"`
}

// IsPlayerProp reports whether the leg's market is a player prop.
func (l Leg) IsPlayerProp() bool {
	return len(l.Type) > len(PlayerPropPrefix) && l.Type[:len(PlayerPropPrefix)] == PlayerPropPrefix
}

// Parlay statuses. Only "saved" is produced by this service;
// settlement states exist for forward compatibility with the schema.
const (
	ParlayStatusSaved = "saved"
	ParlayStatusWon   = "settled-won"
	ParlayStatusLost  = "settled-lost"
)

// Parlay is a saved multi-leg combination owned by a single user.
type Parlay struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"-"`
	Name            string    `json:"name"`
	Legs            []Leg     `json:"legs"`
	EstimatedOdds   float64   `json:"estimatedOdds"`
	EstimatedPayout float64   `json:"estimatedPayout"`
	Stake           float64   `json:"stake"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Suggestion is a system- or AI-produced parlay recommendation.
// Reasoning is empty for the built-in fallback entries until a user
// requests deeper analysis.
type Suggestion struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	RiskLevel     string  `json:"riskLevel"`
	Legs          []Leg   `json:"legs"`
	EstimatedOdds float64 `json:"estimatedOdds"`
	Reasoning     string  `json:"reasoning,omitempty"`
}

// TeamFocus is a per-team directive steering suggestion generation.
type TeamFocus struct {
	Team          string `json:"team"`
	RiskAffinity  string `json:"riskAffinity"`
	AlwaysInclude bool   `json:"alwaysInclude"`
}

// Preferences holds per-user suggestion configuration. Created with
// defaults at registration, replaced wholesale on update.
type Preferences struct {
	FavoriteTeams []string    `json:"favoriteTeams"`
	BetTypes      []string    `json:"betTypes"`
	RiskTolerance string      `json:"riskTolerance"`
	Bankroll      float64     `json:"bankroll"`
	TeamFocus     []TeamFocus `json:"teamFocus"`
	AvoidTeams    []string    `json:"avoidTeams"`
}

// DefaultPreferences returns the preference row created at registration.
func DefaultPreferences() *Preferences {
	return &Preferences{
		FavoriteTeams: []string{},
		BetTypes:      []string{MarketMoneyline, MarketSpreads, MarketTotals},
		RiskTolerance: "moderate",
		TeamFocus:     []TeamFocus{},
		AvoidTeams:    []string{},
	}
}

// User is an account record. PasswordHash never leaves the server.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SuggestionHistory is an append-only record of an analyzed leg set.
type SuggestionHistory struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Legs      []Leg     `json:"legs"`
	Analysis  string    `json:"analysis"`
	CreatedAt time.Time `json:"createdAt"`
}

// ErrorResponse is the standard error payload
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
