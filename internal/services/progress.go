package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ideaprism/mafia-growth-academy/internal/models"
	"github.com/ideaprism/mafia-growth-academy/internal/store"
)

// ProgressServiceInterface is the surface handlers depend on.
type ProgressServiceInterface interface {
	UserProgress(ctx context.Context, userID uuid.UUID, month string) models.UserProgress
	UserProgressPercentage(ctx context.Context, userID uuid.UUID, month string) models.CategoryPercentages
	MonthlyStats(ctx context.Context, month string) models.MonthlyStats
	RankingByCategory(ctx context.Context, category models.ChallengeCategory, month string) []models.CategoryRankingEntry
	OverallRanking(ctx context.Context, month string) []models.OverallRankingEntry
}

const topUserLimit = 5

// ProgressService computes per-user progress and cross-user rankings.
// It holds no state: every call re-reads the store, so results always
// reflect the latest writes at the cost of a full collection scan.
type ProgressService struct {
	store *store.Store
	now   func() time.Time
}

func NewProgressService(st *store.Store) *ProgressService {
	return &ProgressService{store: st, now: time.Now}
}

// targetMonth resolves an empty month argument to the current calendar
// month at call time. Deliberately recomputed per call: concurrent
// calls straddling a month boundary can land in different buckets.
func (s *ProgressService) targetMonth(month string) string {
	if month != "" {
		return month
	}
	return s.now().UTC().Format("2006-01")
}

func inMonth(c models.Challenge, month string) bool {
	return strings.HasPrefix(c.Date, month)
}

// UserProgress counts one user's challenges per category for the target
// month (empty month means current).
func (s *ProgressService) UserProgress(ctx context.Context, userID uuid.UUID, month string) models.UserProgress {
	target := s.targetMonth(month)
	progress := models.UserProgress{UserID: userID}

	for _, c := range s.store.Challenges(ctx) {
		if c.UserID != userID || !inMonth(c, target) {
			continue
		}
		progress.Inc(c.Category)
		progress.Total++
	}
	return progress
}

func percentageOfGoal(count, goal int) float64 {
	pct := float64(count) / float64(goal) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// UserProgressPercentage maps each category count to percentage of its
// monthly goal, capped at 100.
func (s *ProgressService) UserProgressPercentage(ctx context.Context, userID uuid.UUID, month string) models.CategoryPercentages {
	progress := s.UserProgress(ctx, userID, month)

	var percentages models.CategoryPercentages
	for _, cfg := range models.AllCategories() {
		percentages.Set(cfg.ID, percentageOfGoal(progress.Get(cfg.ID), cfg.MonthlyGoal))
	}
	return percentages
}

// MonthlyStats aggregates the target month across all users: per
// category the distinct participant count, submission total and
// submissions per participant, plus the top five users by raw count.
// Ties keep stored user order.
func (s *ProgressService) MonthlyStats(ctx context.Context, month string) models.MonthlyStats {
	target := s.targetMonth(month)
	users := s.store.Users(ctx)

	monthChallenges := []models.Challenge{}
	for _, c := range s.store.Challenges(ctx) {
		if inMonth(c, target) {
			monthChallenges = append(monthChallenges, c)
		}
	}

	stats := models.MonthlyStats{
		TotalUsers:      len(users),
		TotalChallenges: len(monthChallenges),
		CategoryStats:   make([]models.CategoryMonthlyStats, 0, models.CategoryCount),
	}

	for _, cfg := range models.AllCategories() {
		participants := map[uuid.UUID]struct{}{}
		submissions := 0
		for _, c := range monthChallenges {
			if c.Category != cfg.ID {
				continue
			}
			participants[c.UserID] = struct{}{}
			submissions++
		}

		average := 0.0
		if len(participants) > 0 {
			average = float64(submissions) / float64(len(participants))
		}

		stats.CategoryStats = append(stats.CategoryStats, models.CategoryMonthlyStats{
			Category:         cfg.ID,
			Participants:     len(participants),
			TotalSubmissions: submissions,
			AveragePerUser:   average,
		})
	}

	countByUser := map[uuid.UUID]int{}
	for _, c := range monthChallenges {
		countByUser[c.UserID]++
	}

	top := make([]models.TopUser, 0, len(users))
	for _, u := range users {
		top = append(top, models.TopUser{
			UserID:          u.ID,
			UserName:        u.Name,
			Group:           u.Group,
			TotalChallenges: countByUser[u.ID],
		})
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].TotalChallenges > top[j].TotalChallenges
	})
	if len(top) > topUserLimit {
		top = top[:topUserLimit]
	}
	stats.TopUsers = top

	return stats
}

// RankingByCategory ranks every user by raw challenge count in the
// category, descending. The percentage is computed for display but does
// not participate in the ordering, so a user far past the goal outranks
// one who merely met it.
func (s *ProgressService) RankingByCategory(ctx context.Context, category models.ChallengeCategory, month string) []models.CategoryRankingEntry {
	if !models.IsValidCategory(category) {
		return []models.CategoryRankingEntry{}
	}
	cfg := models.GetCategoryConfig(category)
	users := s.store.Users(ctx)

	entries := make([]models.CategoryRankingEntry, 0, len(users))
	for _, u := range users {
		progress := s.UserProgress(ctx, u.ID, month)
		count := progress.Get(category)
		entries = append(entries, models.CategoryRankingEntry{
			UserID:     u.ID,
			UserName:   u.Name,
			Group:      u.Group,
			Count:      count,
			Percentage: percentageOfGoal(count, cfg.MonthlyGoal),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// OverallRanking averages each user's five category percentages over
// the fixed category count — an unattempted category contributes 0 and
// is never excluded — and sorts descending by that average.
func (s *ProgressService) OverallRanking(ctx context.Context, month string) []models.OverallRankingEntry {
	users := s.store.Users(ctx)

	entries := make([]models.OverallRankingEntry, 0, len(users))
	for _, u := range users {
		progress := s.UserProgress(ctx, u.ID, month)
		percentages := s.UserProgressPercentage(ctx, u.ID, month)
		entries = append(entries, models.OverallRankingEntry{
			UserID:            u.ID,
			UserName:          u.Name,
			Group:             u.Group,
			TotalChallenges:   progress.Total,
			AveragePercentage: percentages.Sum() / models.CategoryCount,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AveragePercentage > entries[j].AveragePercentage
	})
	return entries
}
