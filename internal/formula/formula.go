// Package formula holds the pure scoring math: XP, stat gains, raid
// damage, and level thresholds. Every function is referentially
// transparent so callers can property-test it black-box.
package formula

import (
	"math"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

const (
	// LevelBonusRate scales XP by +5% per level.
	LevelBonusRate = 0.05

	// StreakBonusRate scales XP by +5% per consecutive workout day,
	// capped at StreakCapDays (so at most +50%).
	StreakBonusRate = 0.05
	StreakCapDays   = 10

	// RaidLevelBonusRate scales raid damage by +10% per level.
	RaidLevelBonusRate = 0.1

	// XPPerLevel is the per-level slope of the threshold curve.
	XPPerLevel = 100

	// PerLevelStatBonus is added to every stat on each level gained.
	PerLevelStatBonus = 2
)

// exerciseMultipliers are the fixed per-exercise XP multipliers. Run is
// per kilometer rather than per rep.
var exerciseMultipliers = map[domain.Exercise]float64{
	domain.ExerciseSquat:  2.0,
	domain.ExercisePushup: 1.5,
	domain.ExercisePullup: 2.5,
	domain.ExerciseSitup:  1.2,
	domain.ExerciseRun:    10.0,
}

// ExerciseMultiplier returns the XP multiplier for an exercise, or 0
// for an unknown exercise.
func ExerciseMultiplier(e domain.Exercise) float64 {
	return exerciseMultipliers[e]
}

// XPGained computes the XP for one workout:
// base reps*multiplier, then a level bonus, then a capped streak bonus,
// floored to an integer.
func XPGained(exercise domain.Exercise, reps, level, streakDays int) int {
	mult, ok := exerciseMultipliers[exercise]
	if !ok || reps <= 0 {
		return 0
	}

	base := float64(reps) * mult
	withLevel := base * (1 + float64(level)*LevelBonusRate)

	streak := streakDays
	if streak > StreakCapDays {
		streak = StreakCapDays
	}
	withStreak := withLevel * (1 + float64(streak)*StreakBonusRate)

	xp := int(math.Floor(withStreak))
	if xp < 0 {
		return 0
	}
	return xp
}

// StatGains maps an exercise to its stat deltas. Stats the exercise
// does not train stay zero and must be treated as omitted, not reset.
func StatGains(exercise domain.Exercise, reps int) domain.StatGains {
	if reps <= 0 || !domain.IsValidExercise(exercise) {
		return domain.StatGains{}
	}

	primary := reps / 20
	if primary < 1 {
		primary = 1
	}
	secondary := reps / 40
	if secondary < 1 {
		secondary = 1
	}

	switch exercise {
	case domain.ExerciseSquat:
		return domain.StatGains{Strength: primary}
	case domain.ExercisePushup:
		return domain.StatGains{Strength: primary, Endurance: secondary}
	case domain.ExercisePullup:
		return domain.StatGains{Strength: primary, Agility: secondary}
	case domain.ExerciseSitup:
		return domain.StatGains{Endurance: primary}
	case domain.ExerciseRun:
		// reps are kilometers, so a much lower divisor
		endurance := reps / 2
		if endurance < 1 {
			endurance = 1
		}
		agility := reps / 4
		if agility < 1 {
			agility = 1
		}
		return domain.StatGains{Endurance: endurance, Agility: agility}
	}
	return domain.StatGains{}
}

// RaidDamage computes boss damage for one workout. Monotonic in reps
// and level, and strictly above the raw rep count for level > 0.
// Flooring can cancel the multipliers at small rep counts, so the
// result is raised to reps+1 when that happens.
func RaidDamage(exercise domain.Exercise, reps, level int) int {
	mult, ok := exerciseMultipliers[exercise]
	if !ok || reps <= 0 {
		return 0
	}

	dmg := int(math.Floor(float64(reps) * mult * (1 + float64(level)*RaidLevelBonusRate)))
	if level > 0 && dmg <= reps {
		dmg = reps + 1
	}
	return dmg
}

// XPThreshold returns the XP needed to complete the given level.
// Strictly increasing in level.
func XPThreshold(level int) int {
	if level < 1 {
		level = 1
	}
	return level * XPPerLevel
}
