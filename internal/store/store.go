// Package store persists the application's four record collections —
// users, challenges, reactions and the current-session user — each as a
// single JSON document under its own key in a generic key-value
// substrate. Every write re-serializes and overwrites a whole
// collection document; reads of absent or corrupt documents yield empty
// collections rather than errors.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/ideaprism/mafia-growth-academy/internal/logging"
	"github.com/ideaprism/mafia-growth-academy/internal/models"
)

type Store struct {
	kv     KV
	prefix string
}

func New(kv KV, prefix string) *Store {
	return &Store{kv: kv, prefix: prefix}
}

func (s *Store) usersKey() string       { return s.prefix + ":users" }
func (s *Store) challengesKey() string  { return s.prefix + ":challenges" }
func (s *Store) reactionsKey() string   { return s.prefix + ":reactions" }
func (s *Store) currentUserKey() string { return s.prefix + ":current_user" }

// readCollection unmarshals one collection document into dst. Absent or
// unparsable documents leave dst empty — storage read failures never
// surface as errors.
func (s *Store) readCollection(ctx context.Context, key string, dst interface{}) {
	value, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		logging.Warn("Storage read failed; treating as empty", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal([]byte(value), dst); err != nil {
		logging.Warn("Corrupt collection document; treating as empty", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func (s *Store) writeCollection(ctx context.Context, key string, src interface{}) error {
	data, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("serializing collection %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("writing collection %s: %w", key, err)
	}
	return nil
}

// Users returns the full ordered users collection.
func (s *Store) Users(ctx context.Context) []models.User {
	users := []models.User{}
	s.readCollection(ctx, s.usersKey(), &users)
	return users
}

// UpsertUser replaces the user with a matching ID if present, else
// appends.
func (s *Store) UpsertUser(ctx context.Context, user models.User) error {
	users := s.Users(ctx)
	replaced := false
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = user
			replaced = true
			break
		}
	}
	if !replaced {
		users = append(users, user)
	}
	return s.writeCollection(ctx, s.usersKey(), users)
}

// DeleteUser removes the user with the matching ID; no-op if absent.
func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) error {
	users := s.Users(ctx)
	kept := users[:0]
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	return s.writeCollection(ctx, s.usersKey(), kept)
}

func (s *Store) FindUserByID(ctx context.Context, id uuid.UUID) *models.User {
	for _, u := range s.Users(ctx) {
		if u.ID == id {
			user := u
			return &user
		}
	}
	return nil
}

func (s *Store) FindUserByNameAndGroup(ctx context.Context, name, group string) *models.User {
	for _, u := range s.Users(ctx) {
		if u.Name == name && u.Group == group {
			user := u
			return &user
		}
	}
	return nil
}

// Challenges returns the full ordered challenges collection.
func (s *Store) Challenges(ctx context.Context) []models.Challenge {
	challenges := []models.Challenge{}
	s.readCollection(ctx, s.challengesKey(), &challenges)
	return challenges
}

// SaveChallenge appends; no dedup beyond the caller-generated ID.
func (s *Store) SaveChallenge(ctx context.Context, challenge models.Challenge) error {
	challenges := append(s.Challenges(ctx), challenge)
	return s.writeCollection(ctx, s.challengesKey(), challenges)
}

// UpdateChallenge replaces the challenge with a matching ID; no-op if
// absent.
func (s *Store) UpdateChallenge(ctx context.Context, challenge models.Challenge) error {
	challenges := s.Challenges(ctx)
	for i := range challenges {
		if challenges[i].ID == challenge.ID {
			challenges[i] = challenge
			break
		}
	}
	return s.writeCollection(ctx, s.challengesKey(), challenges)
}

func (s *Store) DeleteChallenge(ctx context.Context, id uuid.UUID) error {
	challenges := s.Challenges(ctx)
	kept := challenges[:0]
	for _, c := range challenges {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	return s.writeCollection(ctx, s.challengesKey(), kept)
}

func (s *Store) FindChallengeByID(ctx context.Context, id uuid.UUID) *models.Challenge {
	for _, c := range s.Challenges(ctx) {
		if c.ID == id {
			challenge := c
			return &challenge
		}
	}
	return nil
}

// Reactions returns the full ordered reactions collection.
func (s *Store) Reactions(ctx context.Context) []models.Reaction {
	reactions := []models.Reaction{}
	s.readCollection(ctx, s.reactionsKey(), &reactions)
	return reactions
}

func (s *Store) SaveReaction(ctx context.Context, reaction models.Reaction) error {
	reactions := append(s.Reactions(ctx), reaction)
	return s.writeCollection(ctx, s.reactionsKey(), reactions)
}

func (s *Store) DeleteReaction(ctx context.Context, id uuid.UUID) error {
	reactions := s.Reactions(ctx)
	kept := reactions[:0]
	for _, r := range reactions {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	return s.writeCollection(ctx, s.reactionsKey(), kept)
}

// DeleteReactionsForChallenge prunes every reaction targeting the
// challenge. A single whole-document rewrite, same as any other write.
func (s *Store) DeleteReactionsForChallenge(ctx context.Context, challengeID uuid.UUID) error {
	reactions := s.Reactions(ctx)
	kept := reactions[:0]
	for _, r := range reactions {
		if r.ChallengeID != challengeID {
			kept = append(kept, r)
		}
	}
	return s.writeCollection(ctx, s.reactionsKey(), kept)
}

func (s *Store) ReactionsByChallenge(ctx context.Context, challengeID uuid.UUID) []models.Reaction {
	matched := []models.Reaction{}
	for _, r := range s.Reactions(ctx) {
		if r.ChallengeID == challengeID {
			matched = append(matched, r)
		}
	}
	return matched
}

func (s *Store) UserReactionOnChallenge(ctx context.Context, userID, challengeID uuid.UUID) *models.Reaction {
	for _, r := range s.Reactions(ctx) {
		if r.UserID == userID && r.ChallengeID == challengeID {
			reaction := r
			return &reaction
		}
	}
	return nil
}

// CurrentUser reads the single-slot session pointer, nil when unset or
// unparsable.
func (s *Store) CurrentUser(ctx context.Context) *models.User {
	value, ok, err := s.kv.Get(ctx, s.currentUserKey())
	if err != nil || !ok {
		return nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(value), &user); err != nil {
		logging.Warn("Corrupt session record; treating as signed out", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	return &user
}

func (s *Store) SetCurrentUser(ctx context.Context, user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("serializing session record: %w", err)
	}
	if err := s.kv.Set(ctx, s.currentUserKey(), string(data)); err != nil {
		return fmt.Errorf("writing session record: %w", err)
	}
	return nil
}

func (s *Store) ClearCurrentUser(ctx context.Context) error {
	if err := s.kv.Del(ctx, s.currentUserKey()); err != nil {
		return fmt.Errorf("clearing session record: %w", err)
	}
	return nil
}
