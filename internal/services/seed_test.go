package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ideaprism/mafia-growth-academy/internal/store"
)

func TestSeedSampleData_PopulatesFreshStore(t *testing.T) {
	st := store.New(store.NewMemoryKV(), "test")
	now := func() time.Time { return testNow }

	if err := SeedSampleData(context.Background(), st, now); err != nil {
		t.Fatalf("seed: %v", err)
	}

	users := st.Users(context.Background())
	if len(users) != len(sampleUsers) {
		t.Fatalf("expected %d users, got %d", len(sampleUsers), len(users))
	}

	wantChallenges := 0
	for _, su := range sampleUsers {
		wantChallenges += su.counts.Exercise + su.counts.Writing + su.counts.Work + su.counts.Food + su.counts.Fun
	}
	challenges := st.Challenges(context.Background())
	if len(challenges) != wantChallenges {
		t.Fatalf("expected %d challenges, got %d", wantChallenges, len(challenges))
	}
	for _, c := range challenges {
		if !strings.HasPrefix(c.Date, "2026-08") {
			t.Fatalf("expected seeded challenge in current month, got date %q", c.Date)
		}
	}
}

func TestSeedSampleData_SkipsWhenUsersExist(t *testing.T) {
	st := store.New(store.NewMemoryKV(), "test")
	now := func() time.Time { return testNow }
	addUser(t, st, "재린")

	if err := SeedSampleData(context.Background(), st, now); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if got := st.Users(context.Background()); len(got) != 1 {
		t.Fatalf("expected seeding skipped, got %d users", len(got))
	}
	if got := st.Challenges(context.Background()); len(got) != 0 {
		t.Fatalf("expected no seeded challenges, got %d", len(got))
	}
}
