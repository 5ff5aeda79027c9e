package models

import "github.com/google/uuid"

// UserProgress is one user's raw challenge counts for a single month.
type UserProgress struct {
	UserID uuid.UUID `json:"user_id"`
	CategoryCounts
	Total int `json:"total"`
}

// CategoryMonthlyStats describes one category's activity across all
// users in a month.
type CategoryMonthlyStats struct {
	Category         ChallengeCategory `json:"category"`
	Participants     int               `json:"participants"`
	TotalSubmissions int               `json:"total_submissions"`
	AveragePerUser   float64           `json:"average_per_user"`
}

type TopUser struct {
	UserID          uuid.UUID `json:"user_id"`
	UserName        string    `json:"user_name"`
	Group           string    `json:"group"`
	TotalChallenges int       `json:"total_challenges"`
}

// MonthlyStats aggregates a month across every user in the store.
// CategoryStats is ordered to match AllCategories.
type MonthlyStats struct {
	TotalUsers      int                    `json:"total_users"`
	TotalChallenges int                    `json:"total_challenges"`
	CategoryStats   []CategoryMonthlyStats `json:"category_stats"`
	TopUsers        []TopUser              `json:"top_users"`
}

type CategoryRankingEntry struct {
	UserID     uuid.UUID `json:"user_id"`
	UserName   string    `json:"user_name"`
	Group      string    `json:"group"`
	Count      int       `json:"count"`
	Percentage float64   `json:"percentage"`
}

type OverallRankingEntry struct {
	UserID            uuid.UUID `json:"user_id"`
	UserName          string    `json:"user_name"`
	Group             string    `json:"group"`
	TotalChallenges   int       `json:"total_challenges"`
	AveragePercentage float64   `json:"average_percentage"`
}
