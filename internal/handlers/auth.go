package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ideaprism/mafia-growth-academy/internal/logging"
	"github.com/ideaprism/mafia-growth-academy/internal/models"
	"github.com/ideaprism/mafia-growth-academy/internal/services"
)

type AuthHandler struct {
	userService services.UserServiceInterface
}

func NewAuthHandler(userService services.UserServiceInterface) *AuthHandler {
	return &AuthHandler{userService: userService}
}

type LoginRequest struct {
	Name  string `json:"name"`
	Group string `json:"group"`
}

type UserResponse struct {
	User *models.User `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message,omitempty"`
}

// Login signs the (name, group) pair in, creating the user on first
// login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.Login(r.Context(), req.Name, req.Group)
	if errors.Is(err, services.ErrNameRequired) {
		writeError(w, http.StatusBadRequest, "Display name is required")
		return
	}
	if errors.Is(err, services.ErrGroupRequired) {
		writeError(w, http.StatusBadRequest, "Group name is required")
		return
	}
	if err != nil {
		logging.Error("Login failed", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{User: user})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.Logout(r.Context()); err != nil {
		logging.Error("Logout failed", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Signed out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	writeJSON(w, http.StatusOK, UserResponse{User: user})
}
