package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/XavierBriggs/tyche/internal/auth"
	"github.com/XavierBriggs/tyche/pkg/models"
	"github.com/XavierBriggs/tyche/pkg/oddsmath"
)

// An absent stake means "unset" and defaults to a research stake of
// 10. An explicit 0 is kept as-is.
const defaultStake = 10

type parlayRequest struct {
	Name   string       `json:"name"`
	Legs   []models.Leg `json:"legs"`
	Stake  *float64     `json:"stake"`
	Status string       `json:"status"`
}

// ListParlays returns the caller's saved parlays, newest first.
func (h *Handler) ListParlays(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	session, _ := auth.SessionFrom(ctx)

	parlays, err := h.store.ListParlays(ctx, session.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch parlays", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"parlays": parlays,
		"count":   len(parlays),
	})
}

// CreateParlay prices and saves a new parlay.
func (h *Handler) CreateParlay(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	session, _ := auth.SessionFrom(ctx)

	var req parlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	stake := float64(defaultStake)
	if req.Stake != nil {
		stake = *req.Stake
	}

	price, err := oddsmath.PriceParlay(req.Legs, stake)
	if err != nil {
		var verr *oddsmath.ValidationError
		if errors.As(err, &verr) {
			respondError(w, http.StatusBadRequest, verr.Error(), nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to price parlay", err)
		return
	}

	name := req.Name
	if name == "" {
		name = fmt.Sprintf("Parlay %s", time.Now().Format("2006-01-02"))
	}

	parlay := &models.Parlay{
		UserID:          session.UserID,
		Name:            name,
		Legs:            req.Legs,
		EstimatedOdds:   price.CombinedOdds,
		EstimatedPayout: price.EstimatedPayout,
		Stake:           stake,
		Status:          models.ParlayStatusSaved,
	}

	id, err := h.store.CreateParlay(ctx, parlay)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save parlay", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":              id,
		"message":         "Parlay saved",
		"estimatedOdds":   price.CombinedOdds,
		"estimatedPayout": price.EstimatedPayout,
		"americanDisplay": price.AmericanDisplay,
	})
}

// UpdateParlay replaces a parlay's fields and re-prices it. Missing
// fields keep their stored values.
func (h *Handler) UpdateParlay(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	session, _ := auth.SessionFrom(ctx)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid parlay id", nil)
		return
	}

	var req parlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	existing, err := h.store.GetParlay(ctx, session.UserID, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch parlay", err)
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "parlay not found", nil)
		return
	}

	legs := existing.Legs
	if req.Legs != nil {
		legs = req.Legs
	}
	stake := existing.Stake
	if req.Stake != nil {
		stake = *req.Stake
	}

	price, err := oddsmath.PriceParlay(legs, stake)
	if err != nil {
		var verr *oddsmath.ValidationError
		if errors.As(err, &verr) {
			respondError(w, http.StatusBadRequest, verr.Error(), nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to price parlay", err)
		return
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Status != "" {
		existing.Status = req.Status
	}
	existing.Legs = legs
	existing.Stake = stake
	existing.EstimatedOdds = price.CombinedOdds
	existing.EstimatedPayout = price.EstimatedPayout

	found, err := h.store.UpdateParlay(ctx, existing)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update parlay", err)
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "parlay not found", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":         "Parlay updated",
		"estimatedOdds":   price.CombinedOdds,
		"estimatedPayout": price.EstimatedPayout,
	})
}

// DeleteParlay removes a parlay. A parlay owned by someone else
// answers the same as a missing one.
func (h *Handler) DeleteParlay(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	session, _ := auth.SessionFrom(ctx)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid parlay id", nil)
		return
	}

	found, err := h.store.DeleteParlay(ctx, session.UserID, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete parlay", err)
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "parlay not found", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"message": "Parlay deleted"})
}
