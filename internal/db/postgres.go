package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/XavierBriggs/tyche/pkg/models"
)

// Postgres implements Store for PostgreSQL
type Postgres struct {
	db *sql.DB
}

// NewPostgres opens a connection pool against the given DSN.
func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &Postgres{db: db}, nil
}

// InitSchema creates tables and indexes if they do not exist.
func (p *Postgres) InitSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Ping checks database connectivity
func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Close closes the connection pool
func (p *Postgres) Close() error {
	return p.db.Close()
}

// CreateUser inserts a user and their default preference row in one
// transaction.
func (p *Postgres) CreateUser(ctx context.Context, email, passwordHash string) (int64, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var userID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id`,
		email, passwordHash,
	).Scan(&userID)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}

	prefs := models.DefaultPreferences()
	if err := insertPreferences(ctx, tx, userID, prefs); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	return userID, nil
}

func insertPreferences(ctx context.Context, tx *sql.Tx, userID int64, prefs *models.Preferences) error {
	favorites, betTypes, focus, avoid, err := marshalPreferences(prefs)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO preferences (user_id, favorite_teams, bet_types, risk_tolerance, bankroll, team_focus, avoid_teams)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		userID, favorites, betTypes, prefs.RiskTolerance, prefs.Bankroll, focus, avoid,
	)
	if err != nil {
		return fmt.Errorf("insert preferences: %w", err)
	}
	return nil
}

// GetUserByEmail returns nil if no user matches.
func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return p.getUser(ctx, `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`, email)
}

// GetUserByID returns nil if no user matches.
func (p *Postgres) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return p.getUser(ctx, `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`, id)
}

func (p *Postgres) getUser(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var u models.User
	err := p.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

// GetPreferences returns the user's preference row, or nil if absent.
func (p *Postgres) GetPreferences(ctx context.Context, userID int64) (*models.Preferences, error) {
	var (
		prefs     models.Preferences
		favorites []byte
		betTypes  []byte
		focus     []byte
		avoid     []byte
	)

	err := p.db.QueryRowContext(ctx,
		`SELECT favorite_teams, bet_types, risk_tolerance, bankroll, team_focus, avoid_teams
		 FROM preferences WHERE user_id = $1`,
		userID,
	).Scan(&favorites, &betTypes, &prefs.RiskTolerance, &prefs.Bankroll, &focus, &avoid)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query preferences: %w", err)
	}

	if err := json.Unmarshal(favorites, &prefs.FavoriteTeams); err != nil {
		return nil, fmt.Errorf("parse favorite_teams: %w", err)
	}
	if err := json.Unmarshal(betTypes, &prefs.BetTypes); err != nil {
		return nil, fmt.Errorf("parse bet_types: %w", err)
	}
	if err := json.Unmarshal(focus, &prefs.TeamFocus); err != nil {
		return nil, fmt.Errorf("parse team_focus: %w", err)
	}
	if err := json.Unmarshal(avoid, &prefs.AvoidTeams); err != nil {
		return nil, fmt.Errorf("parse avoid_teams: %w", err)
	}

	return &prefs, nil
}

// UpdatePreferences replaces the preference row wholesale.
func (p *Postgres) UpdatePreferences(ctx context.Context, userID int64, prefs *models.Preferences) error {
	favorites, betTypes, focus, avoid, err := marshalPreferences(prefs)
	if err != nil {
		return err
	}

	_, err = p.db.ExecContext(ctx,
		`UPDATE preferences SET
			favorite_teams = $1,
			bet_types = $2,
			risk_tolerance = $3,
			bankroll = $4,
			team_focus = $5,
			avoid_teams = $6,
			updated_at = now()
		 WHERE user_id = $7`,
		favorites, betTypes, prefs.RiskTolerance, prefs.Bankroll, focus, avoid, userID,
	)
	if err != nil {
		return fmt.Errorf("update preferences: %w", err)
	}
	return nil
}

func marshalPreferences(prefs *models.Preferences) (favorites, betTypes, focus, avoid []byte, err error) {
	if favorites, err = json.Marshal(prefs.FavoriteTeams); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal favorite_teams: %w", err)
	}
	if betTypes, err = json.Marshal(prefs.BetTypes); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal bet_types: %w", err)
	}
	if focus, err = json.Marshal(prefs.TeamFocus); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal team_focus: %w", err)
	}
	if avoid, err = json.Marshal(prefs.AvoidTeams); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal avoid_teams: %w", err)
	}
	return favorites, betTypes, focus, avoid, nil
}

const parlayColumns = `id, user_id, name, legs, estimated_odds, estimated_payout, stake, status, created_at, updated_at`

// ListParlays returns the user's parlays, newest first.
func (p *Postgres) ListParlays(ctx context.Context, userID int64) ([]*models.Parlay, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT `+parlayColumns+` FROM parlays WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query parlays: %w", err)
	}
	defer rows.Close()

	parlays := []*models.Parlay{}
	for rows.Next() {
		parlay, err := scanParlay(rows)
		if err != nil {
			return nil, err
		}
		parlays = append(parlays, parlay)
	}

	return parlays, rows.Err()
}

// GetParlay returns the parlay only if it exists AND belongs to the
// user; otherwise nil.
func (p *Postgres) GetParlay(ctx context.Context, userID, id int64) (*models.Parlay, error) {
	row := p.db.QueryRowContext(ctx,
		`SELECT `+parlayColumns+` FROM parlays WHERE id = $1 AND user_id = $2`,
		id, userID,
	)

	parlay, err := scanParlay(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return parlay, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanParlay(row rowScanner) (*models.Parlay, error) {
	var (
		parlay   models.Parlay
		legsJSON []byte
	)

	err := row.Scan(
		&parlay.ID, &parlay.UserID, &parlay.Name, &legsJSON,
		&parlay.EstimatedOdds, &parlay.EstimatedPayout,
		&parlay.Stake, &parlay.Status,
		&parlay.CreatedAt, &parlay.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(legsJSON, &parlay.Legs); err != nil {
		return nil, fmt.Errorf("parse legs: %w", err)
	}

	return &parlay, nil
}

// CreateParlay inserts a parlay and returns its id.
func (p *Postgres) CreateParlay(ctx context.Context, parlay *models.Parlay) (int64, error) {
	legsJSON, err := json.Marshal(parlay.Legs)
	if err != nil {
		return 0, fmt.Errorf("marshal legs: %w", err)
	}

	var id int64
	err = p.db.QueryRowContext(ctx,
		`INSERT INTO parlays (user_id, name, legs, estimated_odds, estimated_payout, stake, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		parlay.UserID, parlay.Name, legsJSON,
		parlay.EstimatedOdds, parlay.EstimatedPayout,
		parlay.Stake, parlay.Status,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert parlay: %w", err)
	}

	return id, nil
}

// UpdateParlay replaces a parlay's fields; returns false if no row
// matched id+owner.
func (p *Postgres) UpdateParlay(ctx context.Context, parlay *models.Parlay) (bool, error) {
	legsJSON, err := json.Marshal(parlay.Legs)
	if err != nil {
		return false, fmt.Errorf("marshal legs: %w", err)
	}

	result, err := p.db.ExecContext(ctx,
		`UPDATE parlays SET
			name = $1,
			legs = $2,
			estimated_odds = $3,
			estimated_payout = $4,
			stake = $5,
			status = $6,
			updated_at = now()
		 WHERE id = $7 AND user_id = $8`,
		parlay.Name, legsJSON,
		parlay.EstimatedOdds, parlay.EstimatedPayout,
		parlay.Stake, parlay.Status,
		parlay.ID, parlay.UserID,
	)
	if err != nil {
		return false, fmt.Errorf("update parlay: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// DeleteParlay removes a parlay; returns false if no row matched
// id+owner.
func (p *Postgres) DeleteParlay(ctx context.Context, userID, id int64) (bool, error) {
	result, err := p.db.ExecContext(ctx,
		`DELETE FROM parlays WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("delete parlay: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// AppendSuggestionHistory records an analyzed leg set. Rows are
// append-only.
func (p *Postgres) AppendSuggestionHistory(ctx context.Context, userID int64, legs []models.Leg, analysis string) error {
	legsJSON, err := json.Marshal(legs)
	if err != nil {
		return fmt.Errorf("marshal legs: %w", err)
	}

	_, err = p.db.ExecContext(ctx,
		`INSERT INTO suggestion_history (user_id, legs, analysis) VALUES ($1, $2, $3)`,
		userID, legsJSON, analysis,
	)
	if err != nil {
		return fmt.Errorf("insert suggestion history: %w", err)
	}
	return nil
}
