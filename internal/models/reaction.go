package models

import (
	"time"

	"github.com/google/uuid"
)

var AllowedEmojis = []string{"👍", "❤️", "🔥", "👏", "🎉", "💪", "😊", "🤩"}

// Reaction is one user's emoji response to a challenge. At most one
// reaction per (user, challenge) pair is ever persisted; the reacting
// user's name and group are denormalized for display.
type Reaction struct {
	ID          uuid.UUID `json:"id"`
	ChallengeID uuid.UUID `json:"challenge_id"`
	UserID      uuid.UUID `json:"user_id"`
	UserName    string    `json:"user_name"`
	UserGroup   string    `json:"user_group"`
	Emoji       string    `json:"emoji"`
	CreatedAt   time.Time `json:"created_at"`
}

type ReactionSummary struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

func IsAllowedEmoji(emoji string) bool {
	for _, e := range AllowedEmojis {
		if e == emoji {
			return true
		}
	}
	return false
}
