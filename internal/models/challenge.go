package models

import (
	"time"

	"github.com/google/uuid"
)

type ChallengeMedium string

const (
	MediumPhoto ChallengeMedium = "photo"
	MediumLink  ChallengeMedium = "link"
)

func IsValidMedium(medium ChallengeMedium) bool {
	return medium == MediumPhoto || medium == MediumLink
}

// Challenge is a single submitted certification. Content is either a
// data-URL image payload (photo) or a URL string (link). Date is the
// calendar day the certification counts toward, in YYYY-MM-DD form,
// and drives monthly bucketing by string prefix.
type Challenge struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"user_id"`
	Category    ChallengeCategory `json:"category"`
	Medium      ChallengeMedium   `json:"medium"`
	Content     string            `json:"content"`
	Description string            `json:"description,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	Date        string            `json:"date"`
}

type ChallengeWithReactions struct {
	Challenge
	Reactions []Reaction `json:"reactions"`
}
