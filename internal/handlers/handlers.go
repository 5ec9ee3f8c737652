package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/XavierBriggs/tyche/internal/auth"
	"github.com/XavierBriggs/tyche/internal/cache"
	"github.com/XavierBriggs/tyche/internal/db"
	"github.com/XavierBriggs/tyche/internal/metrics"
	"github.com/XavierBriggs/tyche/internal/providers/balldontlie"
	"github.com/XavierBriggs/tyche/internal/providers/nhle"
	"github.com/XavierBriggs/tyche/internal/providers/theodds"
	"github.com/XavierBriggs/tyche/internal/suggest"
	"github.com/XavierBriggs/tyche/pkg/models"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	store      db.Store
	sessions   *auth.Sessions
	odds       *theodds.Client
	oddsCache  *cache.OddsCache
	nba        *balldontlie.Client
	nhl        *nhle.Client
	reconciler *suggest.Reconciler
	metrics    *metrics.APIMetrics
}

// NewHandler creates a new handler with dependencies
func NewHandler(store db.Store, sessions *auth.Sessions, odds *theodds.Client, oddsCache *cache.OddsCache, nba *balldontlie.Client, nhl *nhle.Client, reconciler *suggest.Reconciler, m *metrics.APIMetrics) *Handler {
	return &Handler{
		store:      store,
		sessions:   sessions,
		odds:       odds,
		oddsCache:  oddsCache,
		nba:        nba,
		nhl:        nhl,
		reconciler: reconciler,
		metrics:    m,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		respondError(w, http.StatusServiceUnavailable, "database unhealthy", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "parlay-api",
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Printf("error encoding response: %v\n", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errResp := models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}

	if err != nil {
		fmt.Printf("error: %s - %v\n", message, err)
	}

	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		fmt.Printf("error encoding error response: %v\n", err)
	}
}
