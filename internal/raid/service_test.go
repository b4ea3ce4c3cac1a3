package raid

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironquest/IronQuest_Go/internal/database/memory"
	"github.com/ironquest/IronQuest_Go/internal/domain"
	"github.com/ironquest/IronQuest_Go/internal/event"
)

func newTestService(t *testing.T) (Service, *memory.RaidRepository, *event.MemoryBus) {
	t.Helper()
	repo := memory.NewRaidRepository()
	bus := event.NewMemoryBus()
	clock := func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return NewService(repo, bus, clock), repo, bus
}

func damageSnapshot(userID string, exercise domain.Exercise, damage int) domain.WorkoutSnapshot {
	return domain.WorkoutSnapshot{UserID: userID, Exercise: exercise, Reps: damage, RaidDamage: damage}
}

func TestSpawnBoss(t *testing.T) {
	svc, _, _ := newTestService(t)

	boss, err := svc.SpawnBoss(context.Background(), "Iron Golem", 5000, domain.ExerciseSquat)
	require.NoError(t, err)

	assert.Equal(t, 5000, boss.TotalHP)
	assert.Equal(t, 5000, boss.CurrentHP)
	assert.True(t, boss.Active)
	assert.Empty(t, boss.Participants)
}

func TestSpawnBoss_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SpawnBoss(ctx, "", 5000, domain.ExerciseSquat)
	assert.ErrorIs(t, err, domain.ErrInvalidChallenge)

	_, err = svc.SpawnBoss(ctx, "Iron Golem", 0, domain.ExerciseSquat)
	assert.ErrorIs(t, err, domain.ErrInvalidChallenge)

	_, err = svc.SpawnBoss(ctx, "Iron Golem", 5000, domain.Exercise("yoga"))
	assert.ErrorIs(t, err, domain.ErrInvalidChallenge)
}

func TestSpawnBoss_RetiresActiveBoss(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.SpawnBoss(ctx, "Iron Golem", 5000, domain.ExerciseSquat)
	require.NoError(t, err)
	second, err := svc.SpawnBoss(ctx, "Cardio Wraith", 3000, domain.ExerciseRun)
	require.NoError(t, err)

	active, err := svc.GetActiveBoss(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	old, err := svc.GetBoss(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, old.Active)
}

func TestOnWorkout_DealsDamage(t *testing.T) {
	svc, _, bus := newTestService(t)
	ctx := context.Background()

	boss, err := svc.SpawnBoss(ctx, "Iron Golem", 5000, domain.ExerciseSquat)
	require.NoError(t, err)

	var events []event.Event
	bus.Subscribe(event.Type(domain.EventTypeRaidDamage), func(ctx context.Context, evt event.Event) error {
		events = append(events, evt)
		return nil
	})

	require.NoError(t, svc.OnWorkout(ctx, damageSnapshot("u1", domain.ExerciseSquat, 250)))

	updated, err := svc.GetBoss(ctx, boss.ID)
	require.NoError(t, err)
	assert.Equal(t, 4750, updated.CurrentHP)
	assert.Equal(t, []string{"u1"}, updated.Participants)

	require.Len(t, events, 1)
	payload, err := event.DecodePayload[event.RaidDamagePayloadV1](events[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, 250, payload.Damage)
	assert.False(t, payload.Defeated)
}

func TestOnWorkout_WrongExerciseNoDamage(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	boss, err := svc.SpawnBoss(ctx, "Iron Golem", 5000, domain.ExerciseSquat)
	require.NoError(t, err)

	require.NoError(t, svc.OnWorkout(ctx, damageSnapshot("u1", domain.ExercisePushup, 250)))

	updated, err := svc.GetBoss(ctx, boss.ID)
	require.NoError(t, err)
	assert.Equal(t, 5000, updated.CurrentHP)
	assert.Empty(t, updated.Participants)
}

func TestOnWorkout_NoActiveBoss(t *testing.T) {
	svc, _, _ := newTestService(t)

	// Workouts without an active boss simply pass through.
	require.NoError(t, svc.OnWorkout(context.Background(), damageSnapshot("u1", domain.ExerciseSquat, 250)))
}

func TestOnWorkout_DefeatClampsAtZero(t *testing.T) {
	svc, _, bus := newTestService(t)
	ctx := context.Background()

	boss, err := svc.SpawnBoss(ctx, "Iron Golem", 100, domain.ExerciseSquat)
	require.NoError(t, err)

	var defeated int
	bus.Subscribe(event.Type(domain.EventTypeRaidDefeated), func(ctx context.Context, evt event.Event) error {
		defeated++
		return nil
	})

	require.NoError(t, svc.OnWorkout(ctx, damageSnapshot("u1", domain.ExerciseSquat, 250)))

	updated, err := svc.GetBoss(ctx, boss.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.CurrentHP)
	assert.False(t, updated.Active)
	require.NotNil(t, updated.DefeatedAt)
	assert.Equal(t, 1, defeated)

	// Damage after the kill is a no-op.
	require.NoError(t, svc.OnWorkout(ctx, damageSnapshot("u2", domain.ExerciseSquat, 50)))
	after, err := svc.GetBoss(ctx, boss.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.CurrentHP)
	assert.NotContains(t, after.Participants, "u2")
	assert.Equal(t, 1, defeated)
}

func TestOnWorkout_ParticipantsDeduplicated(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	boss, err := svc.SpawnBoss(ctx, "Iron Golem", 5000, domain.ExerciseSquat)
	require.NoError(t, err)

	require.NoError(t, svc.OnWorkout(ctx, damageSnapshot("u1", domain.ExerciseSquat, 100)))
	require.NoError(t, svc.OnWorkout(ctx, damageSnapshot("u1", domain.ExerciseSquat, 100)))
	require.NoError(t, svc.OnWorkout(ctx, damageSnapshot("u2", domain.ExerciseSquat, 100)))

	updated, err := svc.GetBoss(ctx, boss.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"u1", "u2"}, updated.Participants)
	assert.Equal(t, 4700, updated.CurrentHP)
}

func TestEventHandler_HandlesWorkoutRecorded(t *testing.T) {
	svc, _, bus := newTestService(t)
	ctx := context.Background()

	boss, err := svc.SpawnBoss(ctx, "Iron Golem", 5000, domain.ExerciseSquat)
	require.NoError(t, err)

	NewEventHandler(svc).Register(bus)

	evt := event.NewWorkoutRecordedEvent(damageSnapshot("u1", domain.ExerciseSquat, 120))
	require.NoError(t, bus.Publish(ctx, evt))

	updated, err := svc.GetBoss(ctx, boss.ID)
	require.NoError(t, err)
	assert.Equal(t, 4880, updated.CurrentHP)
}
