// Package achievement evaluates a static badge catalog against the
// post-workout snapshot and records one-way unlocks.
package achievement

import (
	"context"
	"sort"
	"time"

	"github.com/ironquest/IronQuest_Go/internal/domain"
	"github.com/ironquest/IronQuest_Go/internal/event"
	"github.com/ironquest/IronQuest_Go/internal/logger"
	"github.com/ironquest/IronQuest_Go/internal/repository"
)

// Catalog is the built-in achievement set. Thresholds only ever compare
// against aggregates from the snapshot, so evaluation is a pure check.
var Catalog = []domain.Achievement{
	{ID: "level_5", Name: "Getting Serious", Description: "Reach level 5", Metric: domain.MetricLevel, Threshold: 5},
	{ID: "level_10", Name: "Dedicated", Description: "Reach level 10", Metric: domain.MetricLevel, Threshold: 10},
	{ID: "level_25", Name: "Gym Veteran", Description: "Reach level 25", Metric: domain.MetricLevel, Threshold: 25},
	{ID: "level_50", Name: "Iron Legend", Description: "Reach level 50", Metric: domain.MetricLevel, Threshold: 50},

	{ID: "streak_7", Name: "One Week Strong", Description: "Work out 7 days in a row", Metric: domain.MetricStreak, Threshold: 7},
	{ID: "streak_30", Name: "Habit Formed", Description: "Work out 30 days in a row", Metric: domain.MetricStreak, Threshold: 30},
	{ID: "streak_100", Name: "Unstoppable", Description: "Work out 100 days in a row", Metric: domain.MetricStreak, Threshold: 100},

	{ID: "workouts_10", Name: "Regular", Description: "Log 10 workouts", Metric: domain.MetricTotalWorkouts, Threshold: 10},
	{ID: "workouts_100", Name: "Centurion", Description: "Log 100 workouts", Metric: domain.MetricTotalWorkouts, Threshold: 100},
	{ID: "workouts_1000", Name: "Machine", Description: "Log 1000 workouts", Metric: domain.MetricTotalWorkouts, Threshold: 1000},

	{ID: "reps_1000", Name: "Rep Counter", Description: "Accumulate 1000 lifetime reps", Metric: domain.MetricLifetimeReps, Threshold: 1000},
	{ID: "reps_10000", Name: "Volume Dealer", Description: "Accumulate 10000 lifetime reps", Metric: domain.MetricLifetimeReps, Threshold: 10000},

	{ID: "strength_50", Name: "Powerhouse", Description: "Reach 50 strength", Metric: domain.MetricStrength, Threshold: 50},
	{ID: "endurance_50", Name: "Marathoner", Description: "Reach 50 endurance", Metric: domain.MetricEndurance, Threshold: 50},
	{ID: "agility_50", Name: "Acrobat", Description: "Reach 50 agility", Metric: domain.MetricAgility, Threshold: 50},
}

type Service interface {
	// GetCatalog returns the static achievement catalog.
	GetCatalog(ctx context.Context) []domain.Achievement

	// GetUnlocked returns the user's unlocks keyed by achievement id.
	GetUnlocked(ctx context.Context, userID string) (map[string]time.Time, error)

	// CheckAchievements unlocks every catalog entry the snapshot newly
	// satisfies and returns the new unlocks.
	CheckAchievements(ctx context.Context, snapshot domain.WorkoutSnapshot) ([]domain.AchievementUnlock, error)
}

type service struct {
	repo    repository.Achievement
	bus     event.Bus
	catalog []domain.Achievement
	now     func() time.Time
}

// NewService creates a new achievement service over the built-in catalog.
func NewService(repo repository.Achievement, bus event.Bus, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, bus: bus, catalog: Catalog, now: now}
}

func (s *service) GetCatalog(ctx context.Context) []domain.Achievement {
	out := make([]domain.Achievement, len(s.catalog))
	copy(out, s.catalog)
	return out
}

func (s *service) GetUnlocked(ctx context.Context, userID string) (map[string]time.Time, error) {
	return s.repo.GetUnlocked(ctx, userID)
}

// CheckAchievements is idempotent: already-unlocked badges are skipped,
// so replaying a snapshot produces no duplicate unlocks.
func (s *service) CheckAchievements(ctx context.Context, snapshot domain.WorkoutSnapshot) ([]domain.AchievementUnlock, error) {
	log := logger.FromContext(ctx)

	unlocked, err := s.repo.GetUnlocked(ctx, snapshot.UserID)
	if err != nil {
		return nil, err
	}

	var newUnlocks []domain.AchievementUnlock
	for _, a := range s.catalog {
		if _, ok := unlocked[a.ID]; ok {
			continue
		}
		if metricValue(a.Metric, snapshot) < a.Threshold {
			continue
		}

		unlock := domain.AchievementUnlock{
			UserID:        snapshot.UserID,
			AchievementID: a.ID,
			UnlockedAt:    s.now().UTC(),
		}
		if err := s.repo.Unlock(ctx, unlock); err != nil {
			return newUnlocks, err
		}
		newUnlocks = append(newUnlocks, unlock)

		log.Info("Achievement unlocked", "user_id", snapshot.UserID, "achievement_id", a.ID)

		if s.bus != nil {
			evt := event.NewAchievementUnlockedEvent(snapshot.UserID, a.ID, unlock.UnlockedAt)
			if err := s.bus.Publish(ctx, evt); err != nil {
				log.Warn("Achievement event publish failed", "error", err, "achievement_id", a.ID)
			}
		}
	}

	sort.Slice(newUnlocks, func(i, j int) bool { return newUnlocks[i].AchievementID < newUnlocks[j].AchievementID })
	return newUnlocks, nil
}

func metricValue(metric domain.AchievementMetric, s domain.WorkoutSnapshot) int {
	switch metric {
	case domain.MetricLevel:
		return s.Level
	case domain.MetricStreak:
		return s.WorkoutStreak
	case domain.MetricTotalWorkouts:
		return s.TotalWorkouts
	case domain.MetricLifetimeReps:
		return s.LifetimeReps
	case domain.MetricStrength:
		return s.Strength
	case domain.MetricEndurance:
		return s.Endurance
	case domain.MetricAgility:
		return s.Agility
	}
	return 0
}
