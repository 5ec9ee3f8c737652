package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/XavierBriggs/tyche/internal/auth"
	"github.com/XavierBriggs/tyche/pkg/models"
	"github.com/XavierBriggs/tyche/pkg/oddsmath"
)

const (
	suggestionsDisclaimer = "These are AI-generated suggestions for RESEARCH ONLY. Not financial advice."
	analysisDisclaimer    = "This analysis is for RESEARCH ONLY. Not financial or betting advice."
)

var suggestionSports = []string{"nba", "nhl"}

// DailySuggestions builds the 3-entry suggestion set for the day.
// Anonymous callers get defaults; authenticated callers get their
// stored preferences folded into the prompt.
func (h *Handler) DailySuggestions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var prefs *models.Preferences
	if session, ok := auth.SessionFrom(ctx); ok {
		stored, err := h.store.GetPreferences(ctx, session.UserID)
		if err != nil {
			fmt.Printf("preferences lookup failed, using defaults: %v\n", err)
		} else if stored != nil {
			prefs = stored
		}
	}

	games := h.fetchSlate(ctx)

	var props []models.PlayerProp
	if wantsProps(prefs) && len(games) > 0 {
		props = h.fetchProps(ctx, games[0])
	}

	suggestions, source := h.reconciler.Generate(ctx, games, props, prefs)
	h.metrics.SuggestionsTotal.WithLabelValues(source).Inc()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": suggestions,
		"generatedAt": time.Now().UTC(),
		"disclaimer":  suggestionsDisclaimer,
	})
}

// fetchSlate gathers candidate games across sports. The fetches run
// concurrently; a failed sport degrades to an empty slice for that
// sport rather than failing the whole slate.
func (h *Handler) fetchSlate(ctx context.Context) []models.Game {
	results := make([][]models.Game, len(suggestionSports))

	var wg sync.WaitGroup
	for i, sport := range suggestionSports {
		wg.Add(1)
		go func(i int, sport string) {
			defer wg.Done()

			if snap := h.oddsCache.GetOdds(ctx, sport); snap != nil {
				results[i] = snap.Games
				return
			}

			snap, err := h.odds.FetchOdds(ctx, sport)
			if err != nil {
				h.metrics.ProviderErrors.WithLabelValues("theodds").Inc()
				fmt.Printf("odds fetch failed for %s: %v\n", sport, err)
				return
			}
			if err := h.oddsCache.SetOdds(ctx, snap); err != nil {
				h.metrics.ProviderErrors.WithLabelValues("redis").Inc()
			}
			results[i] = snap.Games
		}(i, sport)
	}
	wg.Wait()

	var games []models.Game
	for _, r := range results {
		games = append(games, r...)
	}
	return games
}

// fetchProps pulls prop lines for one representative game.
func (h *Handler) fetchProps(ctx context.Context, game models.Game) []models.PlayerProp {
	if snap := h.oddsCache.GetProps(ctx, game.Sport, game.ID); snap != nil {
		return snap.Props
	}

	snap, err := h.odds.FetchPlayerProps(ctx, game.Sport, game.ID)
	if err != nil {
		h.metrics.ProviderErrors.WithLabelValues("theodds").Inc()
		fmt.Printf("props fetch failed for %s/%s: %v\n", game.Sport, game.ID, err)
		return nil
	}
	if err := h.oddsCache.SetProps(ctx, snap); err != nil {
		h.metrics.ProviderErrors.WithLabelValues("redis").Inc()
	}
	return snap.Props
}

func wantsProps(prefs *models.Preferences) bool {
	if prefs == nil {
		return false
	}
	for _, bt := range prefs.BetTypes {
		if strings.HasPrefix(bt, models.PlayerPropPrefix) {
			return true
		}
	}
	return false
}

// AnalyzeParlay returns free-text risk commentary for a leg set and,
// for authenticated callers, appends a history row.
func (h *Handler) AnalyzeParlay(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var req struct {
		Legs []models.Leg `json:"legs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if len(req.Legs) < oddsmath.MinLegs {
		respondError(w, http.StatusBadRequest, "at least 2 legs required for analysis", nil)
		return
	}

	analysis := h.reconciler.Analyze(ctx, req.Legs)

	if session, ok := auth.SessionFrom(ctx); ok {
		if err := h.store.AppendSuggestionHistory(ctx, session.UserID, req.Legs, analysis); err != nil {
			fmt.Printf("failed to append suggestion history: %v\n", err)
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"analysis":   analysis,
		"disclaimer": analysisDisclaimer,
	})
}
