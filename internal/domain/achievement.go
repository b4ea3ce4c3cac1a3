package domain

import "time"

// AchievementMetric is the aggregate stat an achievement rule tests.
type AchievementMetric string

const (
	MetricLevel         AchievementMetric = "level"
	MetricStreak        AchievementMetric = "streak"
	MetricTotalWorkouts AchievementMetric = "total_workouts"
	MetricLifetimeReps  AchievementMetric = "lifetime_reps"
	MetricStrength      AchievementMetric = "strength"
	MetricEndurance     AchievementMetric = "endurance"
	MetricAgility       AchievementMetric = "agility"
)

// Achievement is a static catalog entry. The catalog itself never
// changes at runtime; per-user unlock state is the only mutable part.
type Achievement struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Metric      AchievementMetric `json:"metric"`
	Threshold   int               `json:"threshold"`
}

// AchievementUnlock records a one-way unlock for a user.
type AchievementUnlock struct {
	UserID        string    `json:"user_id"`
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}
