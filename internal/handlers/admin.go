package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/ideaprism/mafia-growth-academy/internal/logging"
	"github.com/ideaprism/mafia-growth-academy/internal/models"
	"github.com/ideaprism/mafia-growth-academy/internal/services"
)

// AdminHandler backs the management ("boss") screens: user roster with
// progress summaries, member provisioning, and removal.
type AdminHandler struct {
	userService     services.UserServiceInterface
	progressService services.ProgressServiceInterface
}

func NewAdminHandler(userService services.UserServiceInterface, progressService services.ProgressServiceInterface) *AdminHandler {
	return &AdminHandler{userService: userService, progressService: progressService}
}

type CreateUserRequest struct {
	Name  string          `json:"name"`
	Group string          `json:"group"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

type AdminUserEntry struct {
	models.User
	TotalChallenges   int     `json:"total_challenges"`
	AveragePercentage float64 `json:"average_percentage"`
}

type AdminUserListResponse struct {
	Users []AdminUserEntry `json:"users"`
}

type AdminStatsResponse struct {
	Stats models.MonthlyStats `json:"stats"`
}

func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) *models.User {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return nil
	}
	if !user.IsAdmin() {
		writeError(w, http.StatusForbidden, "Admin access required")
		return nil
	}
	return user
}

// ListUsers returns every user with their current-month activity
// summary.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}

	users := h.userService.List(r.Context())
	entries := make([]AdminUserEntry, 0, len(users))
	for _, u := range users {
		progress := h.progressService.UserProgress(r.Context(), u.ID, "")
		percentages := h.progressService.UserProgressPercentage(r.Context(), u.ID, "")
		entries = append(entries, AdminUserEntry{
			User:              u,
			TotalChallenges:   progress.Total,
			AveragePercentage: percentages.Sum() / models.CategoryCount,
		})
	}
	writeJSON(w, http.StatusOK, AdminUserListResponse{Users: entries})
}

func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.AdminUpsert(r.Context(), models.CreateUserParams{
		Name:  req.Name,
		Group: req.Group,
		Email: req.Email,
		Role:  req.Role,
	})
	if errors.Is(err, services.ErrNameRequired) || errors.Is(err, services.ErrGroupRequired) {
		writeError(w, http.StatusBadRequest, "Name and group are required")
		return
	}
	if errors.Is(err, services.ErrInvalidRole) {
		writeError(w, http.StatusBadRequest, "Invalid role")
		return
	}
	if errors.Is(err, services.ErrUserAlreadyExists) {
		writeError(w, http.StatusConflict, "User already exists")
		return
	}
	if err != nil {
		logging.Error("Error creating user", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, UserResponse{User: user})
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	admin := h.requireAdmin(w, r)
	if admin == nil {
		return
	}

	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	if userID == admin.ID {
		writeError(w, http.StatusBadRequest, "Cannot delete your own account")
		return
	}

	err = h.userService.Delete(r.Context(), userID)
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		logging.Error("Error deleting user", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "User deleted"})
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.requireAdmin(w, r) == nil {
		return
	}
	month, ok := monthParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid month; expected YYYY-MM")
		return
	}
	writeJSON(w, http.StatusOK, AdminStatsResponse{
		Stats: h.progressService.MonthlyStats(r.Context(), month),
	})
}
