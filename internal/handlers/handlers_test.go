package handlers

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/XavierBriggs/tyche/internal/auth"
	"github.com/XavierBriggs/tyche/internal/cache"
	"github.com/XavierBriggs/tyche/internal/metrics"
	"github.com/XavierBriggs/tyche/internal/providers/balldontlie"
	"github.com/XavierBriggs/tyche/internal/providers/nhle"
	"github.com/XavierBriggs/tyche/internal/providers/theodds"
	"github.com/XavierBriggs/tyche/internal/suggest"
	"github.com/XavierBriggs/tyche/pkg/models"
)

// mockStore implements db.Store with overridable function fields.
type mockStore struct {
	pingFn              func(ctx context.Context) error
	createUserFn        func(ctx context.Context, email, passwordHash string) (int64, error)
	getUserByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	getUserByIDFn       func(ctx context.Context, id int64) (*models.User, error)
	getPreferencesFn    func(ctx context.Context, userID int64) (*models.Preferences, error)
	updatePreferencesFn func(ctx context.Context, userID int64, prefs *models.Preferences) error
	listParlaysFn       func(ctx context.Context, userID int64) ([]*models.Parlay, error)
	getParlayFn         func(ctx context.Context, userID, id int64) (*models.Parlay, error)
	createParlayFn      func(ctx context.Context, p *models.Parlay) (int64, error)
	updateParlayFn      func(ctx context.Context, p *models.Parlay) (bool, error)
	deleteParlayFn      func(ctx context.Context, userID, id int64) (bool, error)
	appendHistoryFn     func(ctx context.Context, userID int64, legs []models.Leg, analysis string) error
}

func (m *mockStore) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

func (m *mockStore) Close() error { return nil }

func (m *mockStore) CreateUser(ctx context.Context, email, passwordHash string) (int64, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, email, passwordHash)
	}
	return 1, nil
}

func (m *mockStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockStore) GetPreferences(ctx context.Context, userID int64) (*models.Preferences, error) {
	if m.getPreferencesFn != nil {
		return m.getPreferencesFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockStore) UpdatePreferences(ctx context.Context, userID int64, prefs *models.Preferences) error {
	if m.updatePreferencesFn != nil {
		return m.updatePreferencesFn(ctx, userID, prefs)
	}
	return nil
}

func (m *mockStore) ListParlays(ctx context.Context, userID int64) ([]*models.Parlay, error) {
	if m.listParlaysFn != nil {
		return m.listParlaysFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockStore) GetParlay(ctx context.Context, userID, id int64) (*models.Parlay, error) {
	if m.getParlayFn != nil {
		return m.getParlayFn(ctx, userID, id)
	}
	return nil, nil
}

func (m *mockStore) CreateParlay(ctx context.Context, p *models.Parlay) (int64, error) {
	if m.createParlayFn != nil {
		return m.createParlayFn(ctx, p)
	}
	return 1, nil
}

func (m *mockStore) UpdateParlay(ctx context.Context, p *models.Parlay) (bool, error) {
	if m.updateParlayFn != nil {
		return m.updateParlayFn(ctx, p)
	}
	return true, nil
}

func (m *mockStore) DeleteParlay(ctx context.Context, userID, id int64) (bool, error) {
	if m.deleteParlayFn != nil {
		return m.deleteParlayFn(ctx, userID, id)
	}
	return true, nil
}

func (m *mockStore) AppendSuggestionHistory(ctx context.Context, userID int64, legs []models.Leg, analysis string) error {
	if m.appendHistoryFn != nil {
		return m.appendHistoryFn(ctx, userID, legs, analysis)
	}
	return nil
}

// newTestHandler wires a handler over the mock store. The odds client
// is unconfigured (serves mock snapshots), the cache points at a dead
// Redis (every lookup is a miss), and the model gateway is nil (the
// reconciler serves its fallback set).
func newTestHandler(store *mockStore) *Handler {
	deadRedis := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	return NewHandler(
		store,
		auth.NewSessions(deadRedis),
		theodds.New("", ""),
		cache.NewOddsCache(deadRedis),
		balldontlie.New(""),
		nhle.New(),
		suggest.NewReconciler(nil),
		metrics.New(),
	)
}

func TestHealthCheck(t *testing.T) {
	h := newTestHandler(&mockStore{})

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()

	h.HealthCheck(rec, req)

	if rec.Code != 200 {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestHealthCheckUnhealthyDatabase(t *testing.T) {
	h := newTestHandler(&mockStore{
		pingFn: func(ctx context.Context) error { return context.DeadlineExceeded },
	})

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()

	h.HealthCheck(rec, req)

	if rec.Code != 503 {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
