package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/ideaprism/mafia-growth-academy/internal/models"
	"github.com/ideaprism/mafia-growth-academy/internal/services"
)

func TestReactionHandler_Toggle_RequiresAuth(t *testing.T) {
	handler := NewReactionHandler(&mockReactionService{})
	req := httptest.NewRequest(http.MethodPost, "/api/challenges/x/reactions", nil)
	rr := httptest.NewRecorder()

	handler.Toggle(rr, req)
	assertErrorResponse(t, rr, http.StatusUnauthorized, "Authentication required")
}

func TestReactionHandler_Toggle_Adds(t *testing.T) {
	challengeID := uuid.New()
	user := &models.User{ID: uuid.New(), Name: "창균", Group: "광교 구락부"}
	handler := NewReactionHandler(&mockReactionService{
		ToggleFunc: func(ctx context.Context, gotUser *models.User, gotChallengeID uuid.UUID, emoji string) (*models.Reaction, error) {
			if gotUser.ID != user.ID || gotChallengeID != challengeID || emoji != "🔥" {
				t.Fatalf("unexpected toggle args: %v %v %s", gotUser.ID, gotChallengeID, emoji)
			}
			return &models.Reaction{ID: uuid.New(), ChallengeID: challengeID, UserID: user.ID, Emoji: emoji}, nil
		},
	})

	req := authedRequest(http.MethodPost, "/api/challenges/"+challengeID.String()+"/reactions", bytes.NewBufferString(`{"emoji":"🔥"}`), user)
	req.SetPathValue("id", challengeID.String())
	rr := httptest.NewRecorder()

	handler.Toggle(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var response ReactionResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.Reaction == nil || response.Reaction.Emoji != "🔥" || response.Removed {
		t.Fatalf("unexpected response: %+v", response)
	}
}

func TestReactionHandler_Toggle_RemovalFlagged(t *testing.T) {
	challengeID := uuid.New()
	handler := NewReactionHandler(&mockReactionService{
		ToggleFunc: func(ctx context.Context, user *models.User, gotChallengeID uuid.UUID, emoji string) (*models.Reaction, error) {
			return nil, nil
		},
	})

	req := authedRequest(http.MethodPost, "/api/challenges/"+challengeID.String()+"/reactions", bytes.NewBufferString(`{"emoji":"👍"}`), &models.User{ID: uuid.New()})
	req.SetPathValue("id", challengeID.String())
	rr := httptest.NewRecorder()

	handler.Toggle(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var response ReactionResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !response.Removed || response.Reaction != nil {
		t.Fatalf("expected removal response, got %+v", response)
	}
}

func TestReactionHandler_Toggle_Errors(t *testing.T) {
	challengeID := uuid.New()

	tests := []struct {
		name        string
		serviceErr  error
		wantStatus  int
		wantMessage string
	}{
		{"invalid emoji", services.ErrInvalidEmoji, http.StatusBadRequest, "Invalid emoji"},
		{"missing challenge", services.ErrChallengeNotFound, http.StatusNotFound, "Challenge not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewReactionHandler(&mockReactionService{
				ToggleFunc: func(ctx context.Context, user *models.User, gotChallengeID uuid.UUID, emoji string) (*models.Reaction, error) {
					return nil, tt.serviceErr
				},
			})
			req := authedRequest(http.MethodPost, "/api/challenges/"+challengeID.String()+"/reactions", bytes.NewBufferString(`{"emoji":"🍕"}`), &models.User{ID: uuid.New()})
			req.SetPathValue("id", challengeID.String())
			rr := httptest.NewRecorder()

			handler.Toggle(rr, req)
			assertErrorResponse(t, rr, tt.wantStatus, tt.wantMessage)
		})
	}
}

func TestReactionHandler_GetReactions(t *testing.T) {
	challengeID := uuid.New()
	handler := NewReactionHandler(&mockReactionService{
		ForChallengeFunc: func(ctx context.Context, gotChallengeID uuid.UUID) []models.Reaction {
			return []models.Reaction{{ID: uuid.New(), ChallengeID: gotChallengeID, Emoji: "👏"}}
		},
		SummaryFunc: func(ctx context.Context, gotChallengeID uuid.UUID) []models.ReactionSummary {
			return []models.ReactionSummary{{Emoji: "👏", Count: 1}}
		},
	})

	req := authedRequest(http.MethodGet, "/api/challenges/"+challengeID.String()+"/reactions", nil, &models.User{ID: uuid.New()})
	req.SetPathValue("id", challengeID.String())
	rr := httptest.NewRecorder()

	handler.GetReactions(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var response ReactionResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(response.Reactions) != 1 || len(response.Summary) != 1 {
		t.Fatalf("unexpected response: %+v", response)
	}
}

func TestReactionHandler_GetAllowedEmojis(t *testing.T) {
	handler := NewReactionHandler(&mockReactionService{})
	req := httptest.NewRequest(http.MethodGet, "/api/reactions/emojis", nil)
	rr := httptest.NewRecorder()

	handler.GetAllowedEmojis(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var response AllowedEmojisResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(response.Emojis) != len(models.AllowedEmojis) {
		t.Fatalf("expected %d emojis, got %d", len(models.AllowedEmojis), len(response.Emojis))
	}
}
