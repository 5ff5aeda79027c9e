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

type ReactionHandler struct {
	reactionService services.ReactionServiceInterface
}

func NewReactionHandler(reactionService services.ReactionServiceInterface) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

type ToggleReactionRequest struct {
	Emoji string `json:"emoji"`
}

type ReactionResponse struct {
	Reaction  *models.Reaction         `json:"reaction,omitempty"`
	Reactions []models.Reaction        `json:"reactions,omitempty"`
	Summary   []models.ReactionSummary `json:"summary,omitempty"`
	Removed   bool                     `json:"removed,omitempty"`
}

type AllowedEmojisResponse struct {
	Emojis []string `json:"emojis"`
}

// Toggle applies toggle semantics: same emoji removes, different emoji
// replaces. A removal responds with removed=true and no reaction.
func (h *ReactionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
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

	var req ToggleReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reaction, err := h.reactionService.Toggle(r.Context(), user, challengeID, req.Emoji)
	if errors.Is(err, services.ErrInvalidEmoji) {
		writeError(w, http.StatusBadRequest, "Invalid emoji")
		return
	}
	if errors.Is(err, services.ErrChallengeNotFound) {
		writeError(w, http.StatusNotFound, "Challenge not found")
		return
	}
	if err != nil {
		logging.Error("Error toggling reaction", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ReactionResponse{Reaction: reaction, Removed: reaction == nil})
}

func (h *ReactionHandler) GetReactions(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, ReactionResponse{
		Reactions: h.reactionService.ForChallenge(r.Context(), challengeID),
		Summary:   h.reactionService.Summary(r.Context(), challengeID),
	})
}

func (h *ReactionHandler) GetAllowedEmojis(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, AllowedEmojisResponse{Emojis: models.AllowedEmojis})
}
