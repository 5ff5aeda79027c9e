package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ideaprism/mafia-growth-academy/internal/models"
)

type contextKey string

const userContextKey contextKey = "user"

// WithUser stores the session user on the request context. Used by the
// session middleware and by tests.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext returns the session user, or nil when signed out.
func GetUserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
