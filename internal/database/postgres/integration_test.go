package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironquest/IronQuest_Go/internal/domain"
	"github.com/ironquest/IronQuest_Go/internal/repository"
)

func createTestUser(t *testing.T, repo *UserRepository, username string) *domain.UserProgress {
	t.Helper()
	user := domain.NewUserProgress(uuid.NewString(), username, time.Now().UTC())
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

func TestUserRepository_RoundTrip(t *testing.T) {
	requireDB(t)
	repo := NewUserRepository(testPool)
	ctx := context.Background()

	user := createTestUser(t, repo, "pg-roundtrip-"+uuid.NewString()[:8])

	fetched, err := repo.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, fetched.Username)
	assert.Equal(t, 1, fetched.Level)

	byName, err := repo.GetUserByUsername(ctx, user.Username)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	_, err = repo.GetUser(ctx, "missing-"+uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_UsernameTaken(t *testing.T) {
	requireDB(t)
	repo := NewUserRepository(testPool)

	username := "pg-taken-" + uuid.NewString()[:8]
	createTestUser(t, repo, username)

	dup := domain.NewUserProgress(uuid.NewString(), username, time.Now().UTC())
	err := repo.CreateUser(context.Background(), dup)
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestUserRepository_MutateUpdatesIndexedColumns(t *testing.T) {
	requireDB(t)
	repo := NewUserRepository(testPool)
	ctx := context.Background()

	user := createTestUser(t, repo, "pg-mutate-"+uuid.NewString()[:8])

	updated, err := repo.MutateUser(ctx, user.ID, func(u *domain.UserProgress) error {
		u.Level = 7
		u.XP = 42
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Level)

	// The leaderboard reads the extracted columns, not the document.
	var level, xp int
	err = testPool.QueryRow(ctx, `SELECT level, xp FROM users WHERE id = $1`, user.ID).Scan(&level, &xp)
	require.NoError(t, err)
	assert.Equal(t, 7, level)
	assert.Equal(t, 42, xp)
}

func TestUserRepository_MutateErrorLeavesRecordUntouched(t *testing.T) {
	requireDB(t)
	repo := NewUserRepository(testPool)
	ctx := context.Background()

	user := createTestUser(t, repo, "pg-mutate-err-"+uuid.NewString()[:8])

	_, err := repo.MutateUser(ctx, user.ID, func(u *domain.UserProgress) error {
		u.Level = 99
		return domain.ErrInvalidWorkout
	})
	assert.ErrorIs(t, err, domain.ErrInvalidWorkout)

	fetched, err := repo.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fetched.Level)
}

func TestQuestRepository_DeleteByKind(t *testing.T) {
	requireDB(t)
	users := NewUserRepository(testPool)
	repo := NewQuestRepository(testPool)
	ctx := context.Background()

	user := createTestUser(t, users, "pg-quests-"+uuid.NewString()[:8])

	for _, kind := range []domain.QuestKind{domain.QuestKindDaily, domain.QuestKindDaily, domain.QuestKindMilestone} {
		quest := &domain.Quest{
			ID:           uuid.NewString(),
			UserID:       user.ID,
			Kind:         kind,
			QuestKey:     "test_quest",
			TargetMetric: domain.QuestMetricAny,
			TargetValue:  100,
			CreatedAt:    time.Now().UTC(),
		}
		require.NoError(t, repo.CreateQuest(ctx, quest))
	}

	deleted, err := repo.DeleteQuestsByKind(ctx, user.ID, domain.QuestKindDaily)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	remaining, err := repo.GetUserQuests(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, domain.QuestKindMilestone, remaining[0].Kind)
}

func TestAchievementRepository_UnlockIsIdempotent(t *testing.T) {
	requireDB(t)
	users := NewUserRepository(testPool)
	repo := NewAchievementRepository(testPool)
	ctx := context.Background()

	user := createTestUser(t, users, "pg-achieve-"+uuid.NewString()[:8])

	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Unlock(ctx, domain.AchievementUnlock{
		UserID:        user.ID,
		AchievementID: "first_workout",
		UnlockedAt:    first,
	}))

	// A replay must not move the original timestamp.
	require.NoError(t, repo.Unlock(ctx, domain.AchievementUnlock{
		UserID:        user.ID,
		AchievementID: "first_workout",
		UnlockedAt:    first.Add(time.Hour),
	}))

	unlocked, err := repo.GetUnlocked(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, unlocked, 1)
	assert.True(t, unlocked["first_workout"].Equal(first))
}

func TestDuelRepository_StatusFilter(t *testing.T) {
	requireDB(t)
	repo := NewDuelRepository(testPool)
	ctx := context.Background()

	challengerID := uuid.NewString()
	opponentID := uuid.NewString()
	now := time.Now().UTC()

	for _, status := range []domain.DuelStatus{domain.DuelStatusPending, domain.DuelStatusActive, domain.DuelStatusDeclined} {
		duel := &domain.Duel{
			ID:            uuid.NewString(),
			ChallengerID:  challengerID,
			OpponentID:    opponentID,
			Status:        status,
			ChallengeType: "squat",
			Scores:        map[string]int{challengerID: 0, opponentID: 0},
			CreatedAt:     now,
			Deadline:      now.Add(24 * time.Hour),
		}
		require.NoError(t, repo.CreateDuel(ctx, duel))
	}

	active, err := repo.GetDuelsForUser(ctx, challengerID, domain.DuelStatusActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, domain.DuelStatusActive, active[0].Status)

	all, err := repo.GetDuelsForUser(ctx, opponentID)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDuelRepository_MutateUpdatesStatusColumn(t *testing.T) {
	requireDB(t)
	repo := NewDuelRepository(testPool)
	ctx := context.Background()

	now := time.Now().UTC()
	duel := &domain.Duel{
		ID:            uuid.NewString(),
		ChallengerID:  uuid.NewString(),
		OpponentID:    uuid.NewString(),
		Status:        domain.DuelStatusPending,
		ChallengeType: "pushup",
		Scores:        map[string]int{},
		CreatedAt:     now,
		Deadline:      now.Add(24 * time.Hour),
	}
	require.NoError(t, repo.CreateDuel(ctx, duel))

	_, err := repo.MutateDuel(ctx, duel.ID, func(d *domain.Duel) error {
		d.Status = domain.DuelStatusActive
		return nil
	})
	require.NoError(t, err)

	var status string
	err = testPool.QueryRow(ctx, `SELECT status FROM duels WHERE id = $1`, duel.ID).Scan(&status)
	require.NoError(t, err)
	assert.Equal(t, string(domain.DuelStatusActive), status)
}

func TestActivityRepository_TrimsPerUser(t *testing.T) {
	requireDB(t)
	repo := NewActivityRepository(testPool)
	ctx := context.Background()

	userID := uuid.NewString()
	keep := 5
	for i := 0; i < keep+3; i++ {
		entry := repository.ActivityEntry{
			EventType: "workout.recorded",
			UserID:    &userID,
			Payload:   map[string]interface{}{"reps": i},
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, repo.Append(ctx, entry, keep))
	}

	entries, err := repo.GetByUser(ctx, userID, 0)
	require.NoError(t, err)
	assert.Len(t, entries, keep)

	// Newest first, and the oldest three were trimmed.
	assert.Equal(t, float64(keep+2), entries[0].Payload["reps"])
}

func TestPartyRepository_TransactRollsBack(t *testing.T) {
	requireDB(t)
	users := NewUserRepository(testPool)
	repo := NewPartyRepository(testPool)
	ctx := context.Background()

	owner := createTestUser(t, users, "pg-party-"+uuid.NewString()[:8])
	party := &domain.Party{
		ID:         uuid.NewString(),
		Name:       "Rollback Crew",
		InviteCode: uuid.NewString()[:6],
		OwnerID:    owner.ID,
		Members:    []domain.PartyMember{{UserID: owner.ID, JoinedAt: time.Now().UTC()}},
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, repo.CreateParty(ctx, party))

	err := repo.Transact(ctx, func(tx repository.PartyTx) error {
		locked, err := tx.GetPartyForUpdate(ctx, party.ID)
		if err != nil {
			return err
		}
		locked.Name = "Should Not Persist"
		if err := tx.SaveParty(ctx, locked); err != nil {
			return err
		}
		return domain.ErrPartyFull
	})
	assert.ErrorIs(t, err, domain.ErrPartyFull)

	fetched, err := repo.GetParty(ctx, party.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rollback Crew", fetched.Name)
}

func TestPartyRepository_MemberLookup(t *testing.T) {
	requireDB(t)
	users := NewUserRepository(testPool)
	repo := NewPartyRepository(testPool)
	ctx := context.Background()

	owner := createTestUser(t, users, "pg-member-"+uuid.NewString()[:8])
	party := &domain.Party{
		ID:         uuid.NewString(),
		Name:       "Lookup Crew",
		InviteCode: uuid.NewString()[:6],
		OwnerID:    owner.ID,
		Members:    []domain.PartyMember{{UserID: owner.ID, JoinedAt: time.Now().UTC()}},
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, repo.CreateParty(ctx, party))

	found, err := repo.GetPartyByMember(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, party.ID, found.ID)

	taken, err := repo.IsInviteCodeTaken(ctx, party.InviteCode)
	require.NoError(t, err)
	assert.True(t, taken)

	_, err = repo.GetPartyByMember(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrPartyNotFound)
}

func TestTerritoryRepository_CountControlledBy(t *testing.T) {
	requireDB(t)
	repo := NewTerritoryRepository(testPool)
	ctx := context.Background()

	clubID := uuid.NewString()
	now := time.Now().UTC()

	for i := 0; i < 2; i++ {
		loc := &domain.GymLocation{
			ID:                uuid.NewString(),
			PlaceID:           "place-" + uuid.NewString(),
			Name:              "Test Gym",
			ControllingClubID: &clubID,
			ControlStrength:   10,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		require.NoError(t, repo.CreateLocation(ctx, loc))
	}

	count, err := repo.CountControlledBy(ctx, clubID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
