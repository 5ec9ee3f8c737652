package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/XavierBriggs/tyche/internal/auth"
	"github.com/XavierBriggs/tyche/pkg/models"
)

const minPasswordLength = 8

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a user with default preferences and starts a
// session.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	creds.Email = strings.TrimSpace(strings.ToLower(creds.Email))
	if creds.Email == "" || creds.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required", nil)
		return
	}
	if len(creds.Password) < minPasswordLength {
		respondError(w, http.StatusBadRequest, "password must be at least 8 characters", nil)
		return
	}

	existing, err := h.store.GetUserByEmail(ctx, creds.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "registration failed", err)
		return
	}
	if existing != nil {
		respondError(w, http.StatusConflict, "email already registered", nil)
		return
	}

	hash, err := auth.HashPassword(creds.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "registration failed", err)
		return
	}

	userID, err := h.store.CreateUser(ctx, creds.Email, hash)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "registration failed", err)
		return
	}

	token, err := h.sessions.Create(ctx, userID, creds.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "registration failed", err)
		return
	}
	setSessionCookie(w, token)

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"user":    map[string]interface{}{"id": userID, "email": creds.Email},
		"message": "Registration successful",
	})
}

// Login verifies credentials and starts a session. Unknown email and
// wrong password answer identically.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	creds.Email = strings.TrimSpace(strings.ToLower(creds.Email))
	if creds.Email == "" || creds.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required", nil)
		return
	}

	user, err := h.store.GetUserByEmail(ctx, creds.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "login failed", err)
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, creds.Password) {
		respondError(w, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	token, err := h.sessions.Create(ctx, user.ID, user.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "login failed", err)
		return
	}
	setSessionCookie(w, token)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user":    map[string]interface{}{"id": user.ID, "email": user.Email},
		"message": "Login successful",
	})
}

// Logout revokes the current session and clears the cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := auth.ExtractToken(r); token != "" {
		if err := h.sessions.Delete(r.Context(), token); err != nil {
			respondError(w, http.StatusInternalServerError, "logout failed", err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{"message": "Logged out"})
}

// Me returns the authenticated user and their preferences.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	session, _ := auth.SessionFrom(ctx)

	user, err := h.store.GetUserByID(ctx, session.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load user", err)
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "user not found", nil)
		return
	}

	prefs, err := h.store.GetPreferences(ctx, session.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load preferences", err)
		return
	}
	if prefs == nil {
		prefs = models.DefaultPreferences()
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user":        user,
		"preferences": prefs,
	})
}

// UpdatePreferences replaces the user's preference row wholesale.
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	session, _ := auth.SessionFrom(ctx)

	var prefs models.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.store.UpdatePreferences(ctx, session.UserID, &prefs); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update preferences", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Preferences updated",
		"preferences": prefs,
	})
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(auth.SessionTTL / time.Second),
	})
}
