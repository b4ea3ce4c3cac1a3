package progression_bench

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ironquest/IronQuest_Go/internal/database/memory"
	"github.com/ironquest/IronQuest_Go/internal/domain"
	"github.com/ironquest/IronQuest_Go/internal/event"
	"github.com/ironquest/IronQuest_Go/internal/progression"
)

// nopBus swallows events so publishing cost is not measured.
type nopBus struct{}

func (nopBus) Publish(ctx context.Context, evt event.Event) error     { return nil }
func (nopBus) Subscribe(eventType event.Type, handler event.Handler) {}

func benchService(b *testing.B) (progression.Service, string) {
	b.Helper()

	repo := memory.NewUserRepository()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := progression.NewService(repo, nopBus{}, func() time.Time { return now })

	user, err := svc.RegisterUser(context.Background(), "bench-user")
	if err != nil {
		b.Fatalf("failed to register user: %v", err)
	}
	return svc, user.ID
}

func BenchmarkApplyWorkout(b *testing.B) {
	svc, userID := benchService(b)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.ApplyWorkout(ctx, userID, domain.ExercisePushup, 20); err != nil {
			b.Fatalf("apply workout failed: %v", err)
		}
	}
}

func BenchmarkGetLeaderboard(b *testing.B) {
	repo := memory.NewUserRepository()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := progression.NewService(repo, nopBus{}, func() time.Time { return now })

	ctx := context.Background()
	for i := 0; i < 500; i++ {
		user, err := svc.RegisterUser(ctx, fmt.Sprintf("bench-user-%d", i))
		if err != nil {
			b.Fatalf("failed to register user: %v", err)
		}
		if _, err := svc.ApplyWorkout(ctx, user.ID, domain.ExerciseSquat, 10+i%50); err != nil {
			b.Fatalf("apply workout failed: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.GetLeaderboard(ctx, 10); err != nil {
			b.Fatalf("leaderboard failed: %v", err)
		}
	}
}
