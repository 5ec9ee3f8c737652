package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/XavierBriggs/tyche/internal/providers/balldontlie"
)

// GetNBATeams serves the static NBA team table.
func (h *Handler) GetNBATeams(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"teams": balldontlie.Teams,
	})
}

// SearchNBAPlayers looks up NBA players by name fragment.
func (h *Handler) SearchNBAPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	query := strings.TrimSpace(r.URL.Query().Get("search"))
	if query == "" {
		respondError(w, http.StatusBadRequest, "search query is required", nil)
		return
	}

	players, err := h.nba.SearchPlayers(ctx, query)
	if err != nil {
		h.metrics.ProviderErrors.WithLabelValues("balldontlie").Inc()
		respondError(w, http.StatusBadGateway, "player search failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"players": players,
	})
}

// GetNBAPlayerStats serves a player's current-season averages.
func (h *Handler) GetNBAPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	playerID, err := strconv.Atoi(chi.URLParam(r, "playerId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid player id", nil)
		return
	}

	averages, err := h.nba.PlayerSeasonAverages(ctx, playerID)
	if err != nil {
		h.metrics.ProviderErrors.WithLabelValues("balldontlie").Inc()
		respondError(w, http.StatusBadGateway, "player stats fetch failed", err)
		return
	}

	respondJSON(w, http.StatusOK, averages)
}

// GetNHLTeamStats serves a club's current-season player stats.
func (h *Handler) GetNHLTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	abbr := strings.ToUpper(chi.URLParam(r, "abbr"))
	if abbr == "" {
		respondError(w, http.StatusBadRequest, "team abbreviation is required", nil)
		return
	}

	stats, err := h.nhl.TeamStats(ctx, abbr)
	if err != nil {
		h.metrics.ProviderErrors.WithLabelValues("nhle").Inc()
		respondError(w, http.StatusBadGateway, "team stats fetch failed", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// GetNHLStandings serves the current NHL standings.
func (h *Handler) GetNHLStandings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	standings, err := h.nhl.Standings(ctx)
	if err != nil {
		h.metrics.ProviderErrors.WithLabelValues("nhle").Inc()
		respondError(w, http.StatusBadGateway, "standings fetch failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"teams": standings,
	})
}
