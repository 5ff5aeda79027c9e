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

type ChallengeHandler struct {
	challengeService services.ChallengeServiceInterface
}

func NewChallengeHandler(challengeService services.ChallengeServiceInterface) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService}
}

type CreateChallengeRequest struct {
	Category    models.ChallengeCategory `json:"category"`
	Medium      models.ChallengeMedium   `json:"medium"`
	Content     string                   `json:"content"`
	Description string                   `json:"description"`
	Date        string                   `json:"date"`
}

type UpdateChallengeRequest struct {
	Description *string `json:"description"`
	Date        *string `json:"date"`
}

type ChallengeResponse struct {
	Challenge *models.Challenge `json:"challenge"`
}

type ChallengeListResponse struct {
	Challenges []models.ChallengeWithReactions `json:"challenges"`
}

type CategoriesResponse struct {
	Categories []models.CategoryConfig `json:"categories"`
}

func (h *ChallengeHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	challenge, err := h.challengeService.Submit(r.Context(), user.ID, services.SubmitChallengeParams{
		Category:    req.Category,
		Medium:      req.Medium,
		Content:     req.Content,
		Description: req.Description,
		Date:        req.Date,
	})
	if errors.Is(err, services.ErrInvalidCategory) {
		writeError(w, http.StatusBadRequest, "Invalid category")
		return
	}
	if errors.Is(err, services.ErrInvalidMedium) {
		writeError(w, http.StatusBadRequest, "Invalid medium")
		return
	}
	if errors.Is(err, services.ErrInvalidDate) {
		writeError(w, http.StatusBadRequest, "Invalid date; expected YYYY-MM-DD")
		return
	}
	if errors.Is(err, services.ErrInvalidURL) {
		writeError(w, http.StatusBadRequest, "Invalid link URL")
		return
	}
	if errors.Is(err, services.ErrUnsupportedImage) {
		writeError(w, http.StatusBadRequest, "Unsupported image format (JPG, PNG, WebP only)")
		return
	}
	if errors.Is(err, services.ErrImageTooLarge) {
		writeError(w, http.StatusBadRequest, "Image too large (max 10MB)")
		return
	}
	if errors.Is(err, services.ErrEmptyImage) {
		writeError(w, http.StatusBadRequest, "Empty image payload")
		return
	}
	if err != nil {
		logging.Error("Error creating challenge", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, ChallengeResponse{Challenge: challenge})
}

// List returns challenges for a user or a category, month-scoped
// (default current month), each with its reactions attached.
func (h *ChallengeHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	month, ok := monthParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid month; expected YYYY-MM")
		return
	}

	var challenges []models.Challenge
	if category := r.URL.Query().Get("category"); category != "" {
		if !models.IsValidCategory(models.ChallengeCategory(category)) {
			writeError(w, http.StatusBadRequest, "Invalid category")
			return
		}
		challenges = h.challengeService.ByCategory(r.Context(), models.ChallengeCategory(category), month)
	} else {
		targetUser := user.ID
		if userParam := r.URL.Query().Get("user"); userParam != "" {
			parsed, err := uuid.Parse(userParam)
			if err != nil {
				writeError(w, http.StatusBadRequest, "Invalid user ID")
				return
			}
			targetUser = parsed
		}
		challenges = h.challengeService.ByUser(r.Context(), targetUser, month)
	}

	writeJSON(w, http.StatusOK, ChallengeListResponse{
		Challenges: h.challengeService.WithReactions(r.Context(), challenges),
	})
}

func (h *ChallengeHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	challengeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid challenge ID")
		return
	}

	var req UpdateChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	challenge, err := h.challengeService.Update(r.Context(), user.ID, challengeID, services.UpdateChallengeParams{
		Description: req.Description,
		Date:        req.Date,
	})
	if errors.Is(err, services.ErrChallengeNotFound) {
		writeError(w, http.StatusNotFound, "Challenge not found")
		return
	}
	if errors.Is(err, services.ErrNotChallengeOwner) {
		writeError(w, http.StatusForbidden, "Only the owner can edit a challenge")
		return
	}
	if errors.Is(err, services.ErrInvalidDate) {
		writeError(w, http.StatusBadRequest, "Invalid date; expected YYYY-MM-DD")
		return
	}
	if err != nil {
		logging.Error("Error updating challenge", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ChallengeResponse{Challenge: challenge})
}

func (h *ChallengeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	challengeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid challenge ID")
		return
	}

	err = h.challengeService.Delete(r.Context(), user.ID, challengeID)
	if errors.Is(err, services.ErrChallengeNotFound) {
		writeError(w, http.StatusNotFound, "Challenge not found")
		return
	}
	if errors.Is(err, services.ErrNotChallengeOwner) {
		writeError(w, http.StatusForbidden, "Only the owner can delete a challenge")
		return
	}
	if err != nil {
		logging.Error("Error deleting challenge", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Challenge deleted"})
}

func (h *ChallengeHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CategoriesResponse{Categories: models.AllCategories()})
}
