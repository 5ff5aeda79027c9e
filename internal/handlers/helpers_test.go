package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/ideaprism/mafia-growth-academy/internal/models"
	"github.com/ideaprism/mafia-growth-academy/internal/services"
)

func assertErrorResponse(t *testing.T, rr *httptest.ResponseRecorder, wantStatus int, wantMessage string) {
	t.Helper()
	if rr.Code != wantStatus {
		t.Fatalf("expected status %d, got %d (body %s)", wantStatus, rr.Code, rr.Body.String())
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if body["error"] != wantMessage {
		t.Fatalf("expected error %q, got %q", wantMessage, body["error"])
	}
}

type mockUserService struct {
	LoginFunc       func(ctx context.Context, name, group string) (*models.User, error)
	LogoutFunc      func(ctx context.Context) error
	CurrentFunc     func(ctx context.Context) *models.User
	ListFunc        func(ctx context.Context) []models.User
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*models.User, error)
	AdminUpsertFunc func(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserService) Login(ctx context.Context, name, group string) (*models.User, error) {
	return m.LoginFunc(ctx, name, group)
}

func (m *mockUserService) Logout(ctx context.Context) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

func (m *mockUserService) Current(ctx context.Context) *models.User {
	if m.CurrentFunc != nil {
		return m.CurrentFunc(ctx)
	}
	return nil
}

func (m *mockUserService) List(ctx context.Context) []models.User {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil
}

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockUserService) AdminUpsert(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	return m.AdminUpsertFunc(ctx, params)
}

func (m *mockUserService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

type mockChallengeService struct {
	SubmitFunc        func(ctx context.Context, userID uuid.UUID, params services.SubmitChallengeParams) (*models.Challenge, error)
	UpdateFunc        func(ctx context.Context, userID, challengeID uuid.UUID, params services.UpdateChallengeParams) (*models.Challenge, error)
	DeleteFunc        func(ctx context.Context, userID, challengeID uuid.UUID) error
	ByUserFunc        func(ctx context.Context, userID uuid.UUID, month string) []models.Challenge
	ByCategoryFunc    func(ctx context.Context, category models.ChallengeCategory, month string) []models.Challenge
	WithReactionsFunc func(ctx context.Context, challenges []models.Challenge) []models.ChallengeWithReactions
}

func (m *mockChallengeService) Submit(ctx context.Context, userID uuid.UUID, params services.SubmitChallengeParams) (*models.Challenge, error) {
	return m.SubmitFunc(ctx, userID, params)
}

func (m *mockChallengeService) Update(ctx context.Context, userID, challengeID uuid.UUID, params services.UpdateChallengeParams) (*models.Challenge, error) {
	return m.UpdateFunc(ctx, userID, challengeID, params)
}

func (m *mockChallengeService) Delete(ctx context.Context, userID, challengeID uuid.UUID) error {
	return m.DeleteFunc(ctx, userID, challengeID)
}

func (m *mockChallengeService) ByUser(ctx context.Context, userID uuid.UUID, month string) []models.Challenge {
	if m.ByUserFunc != nil {
		return m.ByUserFunc(ctx, userID, month)
	}
	return nil
}

func (m *mockChallengeService) ByCategory(ctx context.Context, category models.ChallengeCategory, month string) []models.Challenge {
	if m.ByCategoryFunc != nil {
		return m.ByCategoryFunc(ctx, category, month)
	}
	return nil
}

func (m *mockChallengeService) WithReactions(ctx context.Context, challenges []models.Challenge) []models.ChallengeWithReactions {
	if m.WithReactionsFunc != nil {
		return m.WithReactionsFunc(ctx, challenges)
	}
	out := make([]models.ChallengeWithReactions, 0, len(challenges))
	for _, c := range challenges {
		out = append(out, models.ChallengeWithReactions{Challenge: c, Reactions: []models.Reaction{}})
	}
	return out
}

type mockReactionService struct {
	ToggleFunc       func(ctx context.Context, user *models.User, challengeID uuid.UUID, emoji string) (*models.Reaction, error)
	ForChallengeFunc func(ctx context.Context, challengeID uuid.UUID) []models.Reaction
	SummaryFunc      func(ctx context.Context, challengeID uuid.UUID) []models.ReactionSummary
}

func (m *mockReactionService) Toggle(ctx context.Context, user *models.User, challengeID uuid.UUID, emoji string) (*models.Reaction, error) {
	return m.ToggleFunc(ctx, user, challengeID, emoji)
}

func (m *mockReactionService) ForChallenge(ctx context.Context, challengeID uuid.UUID) []models.Reaction {
	if m.ForChallengeFunc != nil {
		return m.ForChallengeFunc(ctx, challengeID)
	}
	return nil
}

func (m *mockReactionService) Summary(ctx context.Context, challengeID uuid.UUID) []models.ReactionSummary {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx, challengeID)
	}
	return nil
}

type mockProgressService struct {
	UserProgressFunc           func(ctx context.Context, userID uuid.UUID, month string) models.UserProgress
	UserProgressPercentageFunc func(ctx context.Context, userID uuid.UUID, month string) models.CategoryPercentages
	MonthlyStatsFunc           func(ctx context.Context, month string) models.MonthlyStats
	RankingByCategoryFunc      func(ctx context.Context, category models.ChallengeCategory, month string) []models.CategoryRankingEntry
	OverallRankingFunc         func(ctx context.Context, month string) []models.OverallRankingEntry
}

func (m *mockProgressService) UserProgress(ctx context.Context, userID uuid.UUID, month string) models.UserProgress {
	if m.UserProgressFunc != nil {
		return m.UserProgressFunc(ctx, userID, month)
	}
	return models.UserProgress{UserID: userID}
}

func (m *mockProgressService) UserProgressPercentage(ctx context.Context, userID uuid.UUID, month string) models.CategoryPercentages {
	if m.UserProgressPercentageFunc != nil {
		return m.UserProgressPercentageFunc(ctx, userID, month)
	}
	return models.CategoryPercentages{}
}

func (m *mockProgressService) MonthlyStats(ctx context.Context, month string) models.MonthlyStats {
	if m.MonthlyStatsFunc != nil {
		return m.MonthlyStatsFunc(ctx, month)
	}
	return models.MonthlyStats{}
}

func (m *mockProgressService) RankingByCategory(ctx context.Context, category models.ChallengeCategory, month string) []models.CategoryRankingEntry {
	if m.RankingByCategoryFunc != nil {
		return m.RankingByCategoryFunc(ctx, category, month)
	}
	return nil
}

func (m *mockProgressService) OverallRanking(ctx context.Context, month string) []models.OverallRankingEntry {
	if m.OverallRankingFunc != nil {
		return m.OverallRankingFunc(ctx, month)
	}
	return nil
}
