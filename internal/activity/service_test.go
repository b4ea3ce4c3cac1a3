package activity

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironquest/IronQuest_Go/internal/database/memory"
	"github.com/ironquest/IronQuest_Go/internal/domain"
	"github.com/ironquest/IronQuest_Go/internal/event"
)

func newTestService(t *testing.T) (Service, *event.MemoryBus) {
	t.Helper()
	repo := memory.NewActivityRepository()
	bus := event.NewMemoryBus()
	svc := NewService(repo, func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) })
	require.NoError(t, svc.Subscribe(bus))
	return svc, bus
}

func TestRecordsWorkoutEvents(t *testing.T) {
	svc, bus := newTestService(t)
	ctx := context.Background()

	evt := event.NewWorkoutRecordedEvent(domain.WorkoutSnapshot{UserID: "u1", Exercise: domain.ExercisePushup, Reps: 30})
	require.NoError(t, bus.Publish(ctx, evt))

	entries, err := svc.GetUserActivity(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, string(domain.EventTypeWorkoutRecorded), entries[0].EventType)
	require.NotNil(t, entries[0].UserID)
	assert.Equal(t, "u1", *entries[0].UserID)
}

func TestRecordsTypedTrackerEvents(t *testing.T) {
	svc, bus := newTestService(t)
	ctx := context.Background()

	require.NoError(t, bus.Publish(ctx, event.NewQuestCompletedEvent("u1", "q1", "daily_pushup_50", 40)))
	require.NoError(t, bus.Publish(ctx, event.NewAchievementUnlockedEvent("u1", "level_5", time.Now())))
	require.NoError(t, bus.Publish(ctx, event.NewLevelUpEvent("u1", 4, 5)))

	entries, err := svc.GetUserActivity(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first.
	assert.Equal(t, string(domain.EventTypeLevelUp), entries[0].EventType)
	assert.Equal(t, string(domain.EventTypeQuestCompleted), entries[2].EventType)
}

func TestExtractsAttackerFromBattleEvents(t *testing.T) {
	svc, bus := newTestService(t)
	ctx := context.Background()

	evt := event.NewTerritoryBattleEvent(domain.BattleResult{
		LocationID: "loc1", AttackerID: "u1", AttackerClubID: "c1", AttackerWon: true,
	})
	require.NoError(t, bus.Publish(ctx, evt))

	entries, err := svc.GetUserActivity(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, string(domain.EventTypeTerritoryBattle), entries[0].EventType)
}

func TestRetentionCap(t *testing.T) {
	svc, bus := newTestService(t)
	ctx := context.Background()

	for i := 0; i < RetentionPerUser+25; i++ {
		evt := event.NewWorkoutRecordedEvent(domain.WorkoutSnapshot{UserID: "u1", Exercise: domain.ExerciseSitup, Reps: i + 1})
		require.NoError(t, bus.Publish(ctx, evt))
	}

	entries, err := svc.GetUserActivity(ctx, "u1", RetentionPerUser*2)
	require.NoError(t, err)
	assert.Len(t, entries, RetentionPerUser)

	// The survivors are the most recent entries.
	snap := entries[0].Payload["snapshot"].(map[string]interface{})
	assert.Equal(t, float64(RetentionPerUser+25), snap["reps"])
}

func TestGetRecentActivity_CrossUser(t *testing.T) {
	svc, bus := newTestService(t)
	ctx := context.Background()

	for _, uid := range []string{"u1", "u2", "u3"} {
		evt := event.NewWorkoutRecordedEvent(domain.WorkoutSnapshot{UserID: uid, Exercise: domain.ExerciseRun, Reps: 3})
		require.NoError(t, bus.Publish(ctx, evt))
	}

	entries, err := svc.GetRecentActivity(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	snap := entries[0].Payload["snapshot"].(map[string]interface{})
	assert.Equal(t, "u3", snap["user_id"])
}

func TestDefaultLimit(t *testing.T) {
	svc, bus := newTestService(t)
	ctx := context.Background()

	for i := 0; i < DefaultFeedLimit+10; i++ {
		evt := event.NewLevelUpEvent(fmt.Sprintf("u%d", i), 1, 2)
		require.NoError(t, bus.Publish(ctx, evt))
	}

	entries, err := svc.GetRecentActivity(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, DefaultFeedLimit)
}
