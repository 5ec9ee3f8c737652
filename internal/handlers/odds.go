package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/XavierBriggs/tyche/internal/providers/theodds"
)

// GetOdds serves the odds snapshot for one sport, read through the
// Redis cache. Rate-limit signals from the provider surface as 429
// with a Retry-After header.
func (h *Handler) GetOdds(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sport := strings.ToLower(chi.URLParam(r, "sport"))
	if _, ok := theodds.SportKeys[sport]; !ok {
		respondError(w, http.StatusBadRequest, "invalid sport, supported: nba, nhl", nil)
		return
	}

	if snap := h.oddsCache.GetOdds(ctx, sport); snap != nil {
		respondJSON(w, http.StatusOK, snap)
		return
	}

	snap, err := h.odds.FetchOdds(ctx, sport)
	if err != nil {
		h.metrics.ProviderErrors.WithLabelValues("theodds").Inc()

		var rle *theodds.RateLimitError
		if errors.As(err, &rle) {
			if rle.RetryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(rle.RetryAfter))
			}
			respondError(w, http.StatusTooManyRequests, "odds provider rate limited", err)
			return
		}

		respondError(w, http.StatusBadGateway, "failed to fetch odds", err)
		return
	}

	if err := h.oddsCache.SetOdds(ctx, snap); err != nil {
		// A cache write failure is not a request failure.
		h.metrics.ProviderErrors.WithLabelValues("redis").Inc()
	}

	respondJSON(w, http.StatusOK, snap)
}

// GetPlayerProps serves the player prop lines for one event.
func (h *Handler) GetPlayerProps(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sport := strings.ToLower(chi.URLParam(r, "sport"))
	eventID := chi.URLParam(r, "eventId")
	if _, ok := theodds.SportKeys[sport]; !ok {
		respondError(w, http.StatusBadRequest, "invalid sport, supported: nba, nhl", nil)
		return
	}

	if snap := h.oddsCache.GetProps(ctx, sport, eventID); snap != nil {
		respondJSON(w, http.StatusOK, snap)
		return
	}

	snap, err := h.odds.FetchPlayerProps(ctx, sport, eventID)
	if err != nil {
		h.metrics.ProviderErrors.WithLabelValues("theodds").Inc()

		var rle *theodds.RateLimitError
		if errors.As(err, &rle) {
			if rle.RetryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(rle.RetryAfter))
			}
			respondError(w, http.StatusTooManyRequests, "odds provider rate limited", err)
			return
		}

		respondError(w, http.StatusBadGateway, "failed to fetch player props", err)
		return
	}

	if err := h.oddsCache.SetProps(ctx, snap); err != nil {
		h.metrics.ProviderErrors.WithLabelValues("redis").Inc()
	}

	respondJSON(w, http.StatusOK, snap)
}
