package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ideaprism/mafia-growth-academy/internal/models"
	"github.com/ideaprism/mafia-growth-academy/internal/store"
)

var ErrInvalidEmoji = errors.New("invalid emoji")

type ReactionServiceInterface interface {
	Toggle(ctx context.Context, user *models.User, challengeID uuid.UUID, emoji string) (*models.Reaction, error)
	ForChallenge(ctx context.Context, challengeID uuid.UUID) []models.Reaction
	Summary(ctx context.Context, challengeID uuid.UUID) []models.ReactionSummary
}

type ReactionService struct {
	store *store.Store
	now   func() time.Time
}

func NewReactionService(st *store.Store) *ReactionService {
	return &ReactionService{store: st, now: time.Now}
}

// Toggle applies a reaction with replace/remove semantics: reacting
// with the emoji already held removes it (returns nil), a different
// emoji replaces it, otherwise a new reaction is appended. At most one
// reaction per (user, challenge) pair ever persists.
func (s *ReactionService) Toggle(ctx context.Context, user *models.User, challengeID uuid.UUID, emoji string) (*models.Reaction, error) {
	if !models.IsAllowedEmoji(emoji) {
		return nil, ErrInvalidEmoji
	}
	if s.store.FindChallengeByID(ctx, challengeID) == nil {
		return nil, ErrChallengeNotFound
	}

	existing := s.store.UserReactionOnChallenge(ctx, user.ID, challengeID)
	if existing != nil {
		if err := s.store.DeleteReaction(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("removing reaction: %w", err)
		}
		if existing.Emoji == emoji {
			return nil, nil
		}
	}

	reaction := &models.Reaction{
		ID:          uuid.New(),
		ChallengeID: challengeID,
		UserID:      user.ID,
		UserName:    user.Name,
		UserGroup:   user.Group,
		Emoji:       emoji,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.SaveReaction(ctx, *reaction); err != nil {
		return nil, fmt.Errorf("adding reaction: %w", err)
	}
	return reaction, nil
}

func (s *ReactionService) ForChallenge(ctx context.Context, challengeID uuid.UUID) []models.Reaction {
	return s.store.ReactionsByChallenge(ctx, challengeID)
}

// Summary groups a challenge's reactions by emoji, counts descending;
// ties keep first-seen order.
func (s *ReactionService) Summary(ctx context.Context, challengeID uuid.UUID) []models.ReactionSummary {
	counts := map[string]int{}
	order := []string{}
	for _, r := range s.store.ReactionsByChallenge(ctx, challengeID) {
		if _, seen := counts[r.Emoji]; !seen {
			order = append(order, r.Emoji)
		}
		counts[r.Emoji]++
	}

	summaries := make([]models.ReactionSummary, 0, len(order))
	for _, emoji := range order {
		summaries = append(summaries, models.ReactionSummary{Emoji: emoji, Count: counts[emoji]})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Count > summaries[j].Count
	})
	return summaries
}
