package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ideaprism/mafia-growth-academy/internal/models"
)

func newTestStore() *Store {
	return New(NewMemoryKV(), "test")
}

func testUser(name, group string) models.User {
	return models.User{
		ID:        uuid.New(),
		Name:      name,
		Group:     group,
		CreatedAt: time.Now().UTC(),
	}
}

func TestStore_EmptyCollections(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	if got := s.Users(ctx); len(got) != 0 {
		t.Fatalf("expected empty users, got %d", len(got))
	}
	if got := s.Challenges(ctx); len(got) != 0 {
		t.Fatalf("expected empty challenges, got %d", len(got))
	}
	if got := s.Reactions(ctx); len(got) != 0 {
		t.Fatalf("expected empty reactions, got %d", len(got))
	}
	if s.CurrentUser(ctx) != nil {
		t.Fatal("expected no current user")
	}
}

func TestStore_CorruptDocumentReadsAsEmpty(t *testing.T) {
	kv := NewMemoryKV()
	s := New(kv, "test")
	ctx := context.Background()

	if err := kv.Set(ctx, "test:users", "{not json"); err != nil {
		t.Fatalf("seed corrupt doc: %v", err)
	}
	if err := kv.Set(ctx, "test:current_user", "[]"); err != nil {
		t.Fatalf("seed corrupt session: %v", err)
	}

	if got := s.Users(ctx); len(got) != 0 {
		t.Fatalf("expected corrupt users doc to read as empty, got %d", len(got))
	}
	if s.CurrentUser(ctx) != nil {
		t.Fatal("expected corrupt session record to read as signed out")
	}
}

func TestStore_UpsertUser_AppendsThenReplaces(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	user := testUser("재린", "광교 구락부")
	if err := s.UpsertUser(ctx, user); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	other := testUser("창균", "광교 구락부")
	if err := s.UpsertUser(ctx, other); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	user.Email = "jaerin@example.com"
	user.Role = models.RoleAdmin
	if err := s.UpsertUser(ctx, user); err != nil {
		t.Fatalf("upsert replace: %v", err)
	}

	users := s.Users(ctx)
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].ID != user.ID || users[0].Email != "jaerin@example.com" {
		t.Fatalf("expected in-place replacement preserving order, got %+v", users[0])
	}

	found := s.FindUserByNameAndGroup(ctx, "창균", "광교 구락부")
	if found == nil || found.ID != other.ID {
		t.Fatalf("expected to find user by name and group, got %+v", found)
	}
	if s.FindUserByNameAndGroup(ctx, "창균", "다른 그룹") != nil {
		t.Fatal("expected group to participate in the match")
	}
}

func TestStore_DeleteUser_NoopWhenAbsent(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	user := testUser("빅톨", "광교 구락부")
	if err := s.UpsertUser(ctx, user); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.DeleteUser(ctx, uuid.New()); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
	if len(s.Users(ctx)) != 1 {
		t.Fatal("expected absent delete to be a no-op")
	}

	if err := s.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(s.Users(ctx)) != 0 {
		t.Fatal("expected user removed")
	}
}

func TestStore_ChallengeLifecycle(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	userID := uuid.New()

	challenge := models.Challenge{
		ID:        uuid.New(),
		UserID:    userID,
		Category:  models.CategoryExercise,
		Medium:    models.MediumLink,
		Content:   "https://strava.com/activities/123456",
		CreatedAt: time.Now().UTC(),
		Date:      "2026-08-15",
	}
	if err := s.SaveChallenge(ctx, challenge); err != nil {
		t.Fatalf("save: %v", err)
	}

	challenge.Description = "아침 러닝"
	challenge.Date = "2026-08-16"
	if err := s.UpdateChallenge(ctx, challenge); err != nil {
		t.Fatalf("update: %v", err)
	}

	got := s.FindChallengeByID(ctx, challenge.ID)
	if got == nil || got.Description != "아침 러닝" || got.Date != "2026-08-16" {
		t.Fatalf("expected updated challenge, got %+v", got)
	}

	if err := s.DeleteChallenge(ctx, challenge.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s.FindChallengeByID(ctx, challenge.ID) != nil {
		t.Fatal("expected challenge removed from subsequent reads")
	}
}

func TestStore_ReactionsByChallenge(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	challengeID := uuid.New()
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		reaction := models.Reaction{
			ID:          uuid.New(),
			ChallengeID: challengeID,
			UserID:      uuid.New(),
			Emoji:       "🔥",
			CreatedAt:   time.Now().UTC(),
		}
		if i == 0 {
			reaction.UserID = userID
		}
		if err := s.SaveReaction(ctx, reaction); err != nil {
			t.Fatalf("save reaction: %v", err)
		}
	}
	stray := models.Reaction{ID: uuid.New(), ChallengeID: uuid.New(), UserID: userID, Emoji: "👍"}
	if err := s.SaveReaction(ctx, stray); err != nil {
		t.Fatalf("save stray: %v", err)
	}

	if got := s.ReactionsByChallenge(ctx, challengeID); len(got) != 3 {
		t.Fatalf("expected 3 reactions for challenge, got %d", len(got))
	}
	if got := s.UserReactionOnChallenge(ctx, userID, challengeID); got == nil || got.Emoji != "🔥" {
		t.Fatalf("expected user reaction, got %+v", got)
	}

	if err := s.DeleteReactionsForChallenge(ctx, challengeID); err != nil {
		t.Fatalf("prune: %v", err)
	}
	if got := s.Reactions(ctx); len(got) != 1 || got[0].ID != stray.ID {
		t.Fatalf("expected only the stray reaction to survive, got %+v", got)
	}
}

func TestStore_CurrentUserSlot(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	user := testUser("지올", "광교 구락부")
	if err := s.SetCurrentUser(ctx, user); err != nil {
		t.Fatalf("set: %v", err)
	}
	got := s.CurrentUser(ctx)
	if got == nil || got.ID != user.ID {
		t.Fatalf("expected current user, got %+v", got)
	}

	if err := s.ClearCurrentUser(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if s.CurrentUser(ctx) != nil {
		t.Fatal("expected cleared session")
	}
}

func TestStore_WriteFailuresPropagate(t *testing.T) {
	kv := NewMemoryKV()
	kv.FailWrites = errors.New("substrate down")
	s := New(kv, "test")
	ctx := context.Background()

	if err := s.UpsertUser(ctx, testUser("지성", "광교 구락부")); err == nil {
		t.Fatal("expected write error")
	}
	if err := s.SetCurrentUser(ctx, testUser("지성", "광교 구락부")); err == nil {
		t.Fatal("expected session write error")
	}
}
