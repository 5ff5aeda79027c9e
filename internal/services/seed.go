package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/ideaprism/mafia-growth-academy/internal/logging"
	"github.com/ideaprism/mafia-growth-academy/internal/models"
	"github.com/ideaprism/mafia-growth-academy/internal/store"
)

type seedUser struct {
	name   string
	counts models.CategoryCounts
}

var sampleGroup = "광교 구락부"

var sampleUsers = []seedUser{
	{name: "재린", counts: models.CategoryCounts{Exercise: 5, Writing: 4, Work: 6, Food: 3, Fun: 2}},
	{name: "창균", counts: models.CategoryCounts{Exercise: 3, Writing: 5, Work: 4, Food: 5, Fun: 1}},
	{name: "빅톨", counts: models.CategoryCounts{Exercise: 6, Writing: 3, Work: 5, Food: 4, Fun: 2}},
	{name: "재익", counts: models.CategoryCounts{Exercise: 4, Writing: 6, Work: 3, Food: 6, Fun: 2}},
	{name: "SNY", counts: models.CategoryCounts{Exercise: 5, Writing: 4, Work: 6, Food: 3, Fun: 1}},
	{name: "지올", counts: models.CategoryCounts{Exercise: 3, Writing: 5, Work: 4, Food: 5, Fun: 2}},
	{name: "지성", counts: models.CategoryCounts{Exercise: 6, Writing: 3, Work: 5, Food: 4, Fun: 1}},
}

var sampleContents = map[models.ChallengeCategory][]string{
	models.CategoryExercise: {
		"https://strava.com/activities/123456",
		"https://www.runkeeper.com/user/example/activity/123",
		"https://www.garmin.com/connect/activity/123",
		"https://www.fitbit.com/user/example/activity/123",
	},
	models.CategoryWriting: {
		"https://medium.com/@example/article-1",
		"https://velog.io/@example/post-1",
		"https://brunch.co.kr/@example/123",
		"https://blog.naver.com/example/123",
	},
	models.CategoryWork: {
		"https://github.com/example/project-1",
		"https://www.notion.so/example/work-1",
		"https://figma.com/file/example",
		"https://dribbble.com/shots/123",
	},
	models.CategoryFood: {
		"https://www.instagram.com/p/restaurant-1",
		"https://www.naver.com/maps/restaurant/123",
		"https://www.tripadvisor.com/restaurant/123",
		"https://www.yelp.com/restaurant/123",
	},
	models.CategoryFun: {
		"https://www.netflix.com/watch/123",
		"https://www.spotify.com/track/123",
		"https://www.twitch.tv/example",
		"https://www.steam.com/app/123",
	},
}

var sampleDescriptions = map[models.ChallengeCategory][]string{
	models.CategoryExercise: {"헬스장 운동 인증", "러닝 기록", "요가 세션", "홈트레이닝"},
	models.CategoryWriting:  {"기술 블로그 포스트", "일기 작성", "회고록", "독서록"},
	models.CategoryWork:     {"사이드 프로젝트", "포트폴리오 작업", "코드 리뷰", "기술 스터디"},
	models.CategoryFood:     {"맛집 탐방", "홈쿡 도전", "카페 투어", "브런치"},
	models.CategoryFun:      {"게임 플레이", "영화 감상", "음악 감상", "여행 기록"},
}

// SeedSampleData populates the store with a demo group: seven users,
// per-user category counts spread across the current month, and a
// scatter of reactions. Skipped when any users already exist.
func SeedSampleData(ctx context.Context, st *store.Store, now func() time.Time) error {
	if len(st.Users(ctx)) > 0 {
		logging.Info("Sample data seeding skipped; users already present")
		return nil
	}

	rng := rand.New(rand.NewSource(now().UnixNano()))
	month := now().UTC().Format("2006-01")

	users := make([]models.User, 0, len(sampleUsers))
	challenges := []models.Challenge{}

	for i, su := range sampleUsers {
		user := models.User{
			ID:        uuid.New(),
			Name:      su.name,
			Group:     sampleGroup,
			Role:      models.RoleMember,
			CreatedAt: now().UTC().AddDate(0, 0, -(len(sampleUsers) - i)),
		}
		users = append(users, user)

		for _, cfg := range models.AllCategories() {
			count := su.counts.Get(cfg.ID)
			contents := sampleContents[cfg.ID]
			descriptions := sampleDescriptions[cfg.ID]
			for j := 0; j < count; j++ {
				challenges = append(challenges, models.Challenge{
					ID:          uuid.New(),
					UserID:      user.ID,
					Category:    cfg.ID,
					Medium:      models.MediumLink,
					Content:     contents[j%len(contents)],
					Description: fmt.Sprintf("%s님의 %s", su.name, descriptions[j%len(descriptions)]),
					CreatedAt:   now().UTC().Add(-time.Duration(rng.Intn(30*24)) * time.Hour),
					Date:        fmt.Sprintf("%s-%02d", month, rng.Intn(28)+1),
				})
			}
		}
	}

	for _, user := range users {
		if err := st.UpsertUser(ctx, user); err != nil {
			return fmt.Errorf("seeding users: %w", err)
		}
	}
	for _, c := range challenges {
		if err := st.SaveChallenge(ctx, c); err != nil {
			return fmt.Errorf("seeding challenges: %w", err)
		}
	}

	// Each user reacts to a handful of other users' challenges.
	reacted := 0
	for _, user := range users {
		for tries := 0; tries < 3 && len(challenges) > 0; tries++ {
			target := challenges[rng.Intn(len(challenges))]
			if target.UserID == user.ID {
				continue
			}
			if st.UserReactionOnChallenge(ctx, user.ID, target.ID) != nil {
				continue
			}
			reaction := models.Reaction{
				ID:          uuid.New(),
				ChallengeID: target.ID,
				UserID:      user.ID,
				UserName:    user.Name,
				UserGroup:   user.Group,
				Emoji:       models.AllowedEmojis[rng.Intn(len(models.AllowedEmojis))],
				CreatedAt:   now().UTC(),
			}
			if err := st.SaveReaction(ctx, reaction); err != nil {
				return fmt.Errorf("seeding reactions: %w", err)
			}
			reacted++
		}
	}

	logging.Info("Sample data seeded", map[string]interface{}{
		"users":      len(users),
		"challenges": len(challenges),
		"reactions":  reacted,
	})
	return nil
}
