package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

func TestXPGained_WorkedExample(t *testing.T) {
	// 60 pushups at level 1, no streak: 60*1.5 = 90, +5% level bonus
	// = 94.5, floored to 94.
	assert.Equal(t, 94, XPGained(domain.ExercisePushup, 60, 1, 0))
}

func TestXPGained_Rejections(t *testing.T) {
	assert.Equal(t, 0, XPGained(domain.Exercise("yoga"), 10, 1, 0))
	assert.Equal(t, 0, XPGained(domain.ExerciseSquat, 0, 1, 0))
	assert.Equal(t, 0, XPGained(domain.ExerciseSquat, -5, 1, 0))
}

func TestXPGained_StreakBonusCaps(t *testing.T) {
	capped := XPGained(domain.ExerciseSquat, 100, 0, StreakCapDays)

	// +5% per streak day up to the cap, then flat.
	assert.Equal(t, 300, capped)
	assert.Equal(t, capped, XPGained(domain.ExerciseSquat, 100, 0, StreakCapDays+1))
	assert.Equal(t, capped, XPGained(domain.ExerciseSquat, 100, 0, 365))
	assert.Less(t, XPGained(domain.ExerciseSquat, 100, 0, StreakCapDays-1), capped)
}

func TestXPGained_MonotonicInLevel(t *testing.T) {
	prev := -1
	for level := 0; level <= 50; level++ {
		xp := XPGained(domain.ExercisePullup, 30, level, 3)
		assert.Greater(t, xp, prev, "level %d", level)
		prev = xp
	}
}

func TestStatGains_ExerciseMapping(t *testing.T) {
	tests := []struct {
		name     string
		exercise domain.Exercise
		reps     int
		want     domain.StatGains
	}{
		{"squat trains strength", domain.ExerciseSquat, 40, domain.StatGains{Strength: 2}},
		{"pushup splits into endurance", domain.ExercisePushup, 40, domain.StatGains{Strength: 2, Endurance: 1}},
		{"pullup splits into agility", domain.ExercisePullup, 80, domain.StatGains{Strength: 4, Agility: 2}},
		{"situp trains endurance", domain.ExerciseSitup, 20, domain.StatGains{Endurance: 1}},
		{"run km scale", domain.ExerciseRun, 8, domain.StatGains{Endurance: 4, Agility: 2}},
		{"small workouts still gain", domain.ExerciseSquat, 1, domain.StatGains{Strength: 1}},
		{"zero reps gain nothing", domain.ExerciseSquat, 0, domain.StatGains{}},
		{"unknown exercise gains nothing", domain.Exercise("yoga"), 50, domain.StatGains{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatGains(tt.exercise, tt.reps))
		})
	}
}

func TestRaidDamage_ExceedsRepsForAnyLevel(t *testing.T) {
	for _, exercise := range domain.ValidExercises {
		for reps := 1; reps <= 50; reps++ {
			for level := 1; level <= 5; level++ {
				dmg := RaidDamage(exercise, reps, level)
				assert.Greater(t, dmg, reps, "%s reps=%d level=%d", exercise, reps, level)
			}
		}
	}
}

func TestRaidDamage_Monotonic(t *testing.T) {
	prev := 0
	for reps := 1; reps <= 100; reps++ {
		dmg := RaidDamage(domain.ExerciseSitup, reps, 1)
		assert.Greater(t, dmg, prev, "reps %d", reps)
		prev = dmg
	}

	prev = 0
	for level := 1; level <= 30; level++ {
		dmg := RaidDamage(domain.ExerciseSitup, 10, level)
		assert.GreaterOrEqual(t, dmg, prev, "level %d", level)
		prev = dmg
	}
}

func TestRaidDamage_ZeroCases(t *testing.T) {
	assert.Equal(t, 0, RaidDamage(domain.Exercise("yoga"), 10, 3))
	assert.Equal(t, 0, RaidDamage(domain.ExerciseSquat, 0, 3))
}

func TestXPThreshold_StrictlyIncreasing(t *testing.T) {
	prev := 0
	for level := 1; level <= 100; level++ {
		threshold := XPThreshold(level)
		assert.Greater(t, threshold, prev, "level %d", level)
		prev = threshold
	}

	// Sub-1 levels clamp to the first threshold.
	assert.Equal(t, XPThreshold(1), XPThreshold(0))
	assert.Equal(t, XPThreshold(1), XPThreshold(-3))
}
