package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// fakeQuestService counts refresh calls; everything else is a no-op.
type fakeQuestService struct {
	dailyCalls  int32
	weeklyCalls int32
}

func (f *fakeQuestService) GetUserQuests(ctx context.Context, userID string) ([]domain.Quest, error) {
	return nil, nil
}

func (f *fakeQuestService) ClaimQuestReward(ctx context.Context, userID, questID string) (int, error) {
	return 0, nil
}

func (f *fakeQuestService) OnWorkout(ctx context.Context, snapshot domain.WorkoutSnapshot) error {
	return nil
}

func (f *fakeQuestService) EnsureMilestoneQuests(ctx context.Context, userID string) error {
	return nil
}

func (f *fakeQuestService) RefreshDailyQuests(ctx context.Context, userID string, now time.Time) error {
	return nil
}

func (f *fakeQuestService) RefreshWeeklyQuests(ctx context.Context, userID string, now time.Time) error {
	return nil
}

func (f *fakeQuestService) RefreshAllDaily(ctx context.Context, now time.Time) error {
	atomic.AddInt32(&f.dailyCalls, 1)
	return nil
}

func (f *fakeQuestService) RefreshAllWeekly(ctx context.Context, now time.Time) error {
	atomic.AddInt32(&f.weeklyCalls, 1)
	return nil
}

func TestDailyResetWorker_ExecuteReset(t *testing.T) {
	quests := &fakeQuestService{}
	w := NewDailyResetWorker(quests)

	w.executeReset()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, w.Shutdown(ctx))

	assert.Equal(t, int32(1), atomic.LoadInt32(&quests.dailyCalls))
}

func TestWeeklyResetWorker_ExecuteReset(t *testing.T) {
	quests := &fakeQuestService{}
	w := NewWeeklyResetWorker(quests)

	w.wg.Add(1)
	w.executeReset()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, w.Shutdown(ctx))

	assert.Equal(t, int32(1), atomic.LoadInt32(&quests.weeklyCalls))
}

func TestTimeUntilNextDailyReset(t *testing.T) {
	t.Run("mid-day rolls to next midnight", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
		d := timeUntilNextDailyReset(now)
		assert.Equal(t, 8*time.Hour+30*time.Minute, d)
	})

	t.Run("exactly midnight schedules a full day out", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		d := timeUntilNextDailyReset(now)
		assert.Equal(t, 24*time.Hour, d)
	})

	t.Run("one second before midnight", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)
		d := timeUntilNextDailyReset(now)
		assert.Equal(t, time.Second, d)
	})
}

func TestTimeUntilNextWeeklyReset(t *testing.T) {
	t.Run("midweek rolls to next Monday", func(t *testing.T) {
		// 2025-03-12 is a Wednesday
		now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
		d := timeUntilNextWeeklyReset(now)

		next := now.Add(d)
		assert.Equal(t, time.Monday, next.Weekday())
		assert.Equal(t, 0, next.Hour())
		assert.Equal(t, time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), next)
	})

	t.Run("monday schedules a full week out", func(t *testing.T) {
		// 2025-03-10 is a Monday
		now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		d := timeUntilNextWeeklyReset(now)
		assert.Equal(t, 7*24*time.Hour, d)
	})

	t.Run("sunday night rolls to tomorrow", func(t *testing.T) {
		// 2025-03-16 is a Sunday
		now := time.Date(2025, 3, 16, 23, 0, 0, 0, time.UTC)
		d := timeUntilNextWeeklyReset(now)
		assert.Equal(t, time.Hour, d)
	})
}
