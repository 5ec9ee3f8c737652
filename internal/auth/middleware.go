package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/XavierBriggs/tyche/pkg/models"
)

type contextKey struct{}

var sessionContextKey = contextKey{}

// CookieName is the session cookie set on login/register.
const CookieName = "token"

// SessionFrom returns the session attached by the auth middleware.
func SessionFrom(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(*Session)
	return session, ok
}

// WithSession attaches a session to a context.
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// ExtractToken pulls the session token from the cookie or a Bearer
// Authorization header. Empty string when neither is present.
func ExtractToken(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// RequireAuth rejects requests without a valid session: 401 when no
// token is presented, 403 when the token is unknown or expired.
func (s *Sessions) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ExtractToken(r)
		if token == "" {
			respondAuthError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		session, err := s.Get(r.Context(), token)
		if err != nil || session == nil {
			respondAuthError(w, http.StatusForbidden, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// OptionalAuth attaches a session when a valid token is presented and
// continues anonymously otherwise.
func (s *Sessions) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := ExtractToken(r); token != "" {
			if session, err := s.Get(r.Context(), token); err == nil && session != nil {
				r = r.WithContext(WithSession(r.Context(), session))
			}
		}
		next.ServeHTTP(w, r)
	})
}

func respondAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
