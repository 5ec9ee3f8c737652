package db

import (
	"context"

	"github.com/XavierBriggs/tyche/pkg/models"
)

// Store defines the persistence operations used by the handlers.
//
// Every parlay operation takes the owning user ID: existence and
// ownership are a single predicate, so a parlay owned by someone else
// is indistinguishable from a missing one.
type Store interface {
	Ping(ctx context.Context) error
	Close() error

	CreateUser(ctx context.Context, email, passwordHash string) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	GetPreferences(ctx context.Context, userID int64) (*models.Preferences, error)
	UpdatePreferences(ctx context.Context, userID int64, prefs *models.Preferences) error

	ListParlays(ctx context.Context, userID int64) ([]*models.Parlay, error)
	GetParlay(ctx context.Context, userID, id int64) (*models.Parlay, error)
	CreateParlay(ctx context.Context, p *models.Parlay) (int64, error)
	UpdateParlay(ctx context.Context, p *models.Parlay) (bool, error)
	DeleteParlay(ctx context.Context, userID, id int64) (bool, error)

	AppendSuggestionHistory(ctx context.Context, userID int64, legs []models.Leg, analysis string) error
}
