package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ideaprism/mafia-growth-academy/internal/logging"
	"github.com/ideaprism/mafia-growth-academy/internal/models"
	"github.com/ideaprism/mafia-growth-academy/internal/store"
)

var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrNotChallengeOwner = errors.New("not the challenge owner")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidMedium     = errors.New("invalid medium")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidURL        = errors.New("invalid link URL")
)

const dateLayout = "2006-01-02"

type SubmitChallengeParams struct {
	Category    models.ChallengeCategory
	Medium      models.ChallengeMedium
	Content     string
	Description string
	Date        string
}

type UpdateChallengeParams struct {
	Description *string
	Date        *string
}

type ChallengeServiceInterface interface {
	Submit(ctx context.Context, userID uuid.UUID, params SubmitChallengeParams) (*models.Challenge, error)
	Update(ctx context.Context, userID, challengeID uuid.UUID, params UpdateChallengeParams) (*models.Challenge, error)
	Delete(ctx context.Context, userID, challengeID uuid.UUID) error
	ByUser(ctx context.Context, userID uuid.UUID, month string) []models.Challenge
	ByCategory(ctx context.Context, category models.ChallengeCategory, month string) []models.Challenge
	WithReactions(ctx context.Context, challenges []models.Challenge) []models.ChallengeWithReactions
}

// ChallengeService is the submission workflow: it validates and shapes
// a challenge record, runs photo payloads through compression, and
// hands the result to the record store.
type ChallengeService struct {
	store  *store.Store
	images ImageServiceInterface
	now    func() time.Time
}

func NewChallengeService(st *store.Store, images ImageServiceInterface) *ChallengeService {
	return &ChallengeService{store: st, images: images, now: time.Now}
}

func (s *ChallengeService) Submit(ctx context.Context, userID uuid.UUID, params SubmitChallengeParams) (*models.Challenge, error) {
	if !models.IsValidCategory(params.Category) {
		return nil, ErrInvalidCategory
	}
	if !models.IsValidMedium(params.Medium) {
		return nil, ErrInvalidMedium
	}

	date := strings.TrimSpace(params.Date)
	if date == "" {
		date = s.now().UTC().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}

	content := strings.TrimSpace(params.Content)
	switch params.Medium {
	case models.MediumLink:
		if !isValidLink(content) {
			return nil, ErrInvalidURL
		}
	case models.MediumPhoto:
		prepared, err := s.images.PreparePhoto(content)
		if err != nil {
			return nil, err
		}
		content = prepared
	}

	challenge := &models.Challenge{
		ID:          uuid.New(),
		UserID:      userID,
		Category:    params.Category,
		Medium:      params.Medium,
		Content:     content,
		Description: strings.TrimSpace(params.Description),
		CreatedAt:   s.now().UTC(),
		Date:        date,
	}
	if err := s.store.SaveChallenge(ctx, *challenge); err != nil {
		return nil, fmt.Errorf("saving challenge: %w", err)
	}
	return challenge, nil
}

// Update edits the description and date of an owned challenge. The
// category, medium and content are immutable after submission.
func (s *ChallengeService) Update(ctx context.Context, userID, challengeID uuid.UUID, params UpdateChallengeParams) (*models.Challenge, error) {
	challenge := s.store.FindChallengeByID(ctx, challengeID)
	if challenge == nil {
		return nil, ErrChallengeNotFound
	}
	if challenge.UserID != userID {
		return nil, ErrNotChallengeOwner
	}

	if params.Date != nil {
		date := strings.TrimSpace(*params.Date)
		if _, err := time.Parse(dateLayout, date); err != nil {
			return nil, ErrInvalidDate
		}
		challenge.Date = date
	}
	if params.Description != nil {
		challenge.Description = strings.TrimSpace(*params.Description)
	}

	if err := s.store.UpdateChallenge(ctx, *challenge); err != nil {
		return nil, fmt.Errorf("updating challenge: %w", err)
	}
	return challenge, nil
}

// Delete removes an owned challenge and prunes its reactions. The two
// collection writes are independent; a failed prune is logged and the
// delete still counts.
func (s *ChallengeService) Delete(ctx context.Context, userID, challengeID uuid.UUID) error {
	challenge := s.store.FindChallengeByID(ctx, challengeID)
	if challenge == nil {
		return ErrChallengeNotFound
	}
	if challenge.UserID != userID {
		return ErrNotChallengeOwner
	}

	if err := s.store.DeleteChallenge(ctx, challengeID); err != nil {
		return fmt.Errorf("deleting challenge: %w", err)
	}
	if err := s.store.DeleteReactionsForChallenge(ctx, challengeID); err != nil {
		logging.Warn("Pruning reactions for deleted challenge failed", map[string]interface{}{
			"challenge_id": challengeID.String(),
			"error":        err.Error(),
		})
	}
	return nil
}

// ByUser returns one user's challenges for the target month (empty
// month means current), newest date first within stored order.
func (s *ChallengeService) ByUser(ctx context.Context, userID uuid.UUID, month string) []models.Challenge {
	target := s.targetMonth(month)
	matched := []models.Challenge{}
	for _, c := range s.store.Challenges(ctx) {
		if c.UserID == userID && strings.HasPrefix(c.Date, target) {
			matched = append(matched, c)
		}
	}
	return matched
}

func (s *ChallengeService) ByCategory(ctx context.Context, category models.ChallengeCategory, month string) []models.Challenge {
	target := s.targetMonth(month)
	matched := []models.Challenge{}
	for _, c := range s.store.Challenges(ctx) {
		if c.Category == category && strings.HasPrefix(c.Date, target) {
			matched = append(matched, c)
		}
	}
	return matched
}

// WithReactions attaches each challenge's reactions for the viewer UI.
func (s *ChallengeService) WithReactions(ctx context.Context, challenges []models.Challenge) []models.ChallengeWithReactions {
	out := make([]models.ChallengeWithReactions, 0, len(challenges))
	for _, c := range challenges {
		out = append(out, models.ChallengeWithReactions{
			Challenge: c,
			Reactions: s.store.ReactionsByChallenge(ctx, c.ID),
		})
	}
	return out
}

func (s *ChallengeService) targetMonth(month string) string {
	if month != "" {
		return month
	}
	return s.now().UTC().Format("2006-01")
}

func isValidLink(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
