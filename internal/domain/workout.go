package domain

import "time"

// Exercise identifies a supported exercise type.
type Exercise string

const (
	ExerciseSquat  Exercise = "squat"
	ExercisePushup Exercise = "pushup"
	ExercisePullup Exercise = "pullup"
	ExerciseSitup  Exercise = "situp"
	ExerciseRun    Exercise = "run" // reps are kilometers
)

// ValidExercises lists every exercise the ledger accepts.
var ValidExercises = []Exercise{ExerciseSquat, ExercisePushup, ExercisePullup, ExerciseSitup, ExerciseRun}

// IsValidExercise reports whether e is a known exercise.
func IsValidExercise(e Exercise) bool {
	for _, known := range ValidExercises {
		if known == e {
			return true
		}
	}
	return false
}

// MaxWorkoutReps is the upper range check on a single submission.
// Anything above is treated as a fat-finger and rejected.
const MaxWorkoutReps = 1000

// StatGains holds stat deltas from a workout. Zero-valued stats were
// not touched by the exercise.
type StatGains struct {
	Strength  int `json:"strength,omitempty"`
	Endurance int `json:"endurance,omitempty"`
	Agility   int `json:"agility,omitempty"`
}

// WorkoutResult is what the ledger returns for one applied workout.
type WorkoutResult struct {
	XPGained   int       `json:"xp_gained"`
	StatGains  StatGains `json:"stat_gains"`
	LeveledUp  bool      `json:"leveled_up"`
	NewLevel   int       `json:"new_level"`
	RaidDamage int       `json:"raid_damage"`
}

// WorkoutSnapshot is the immutable post-ledger view of a workout that
// fans out to the trackers. No tracker may depend on another tracker's
// side effects within the same snapshot.
type WorkoutSnapshot struct {
	UserID   string   `json:"user_id"`
	Exercise Exercise `json:"exercise"`
	Reps     int      `json:"reps"`

	XPGained   int  `json:"xp_gained"`
	RaidDamage int  `json:"raid_damage"`
	LeveledUp  bool `json:"leveled_up"`

	Level         int `json:"level"`
	Strength      int `json:"strength"`
	Endurance     int `json:"endurance"`
	Agility       int `json:"agility"`
	WorkoutStreak int `json:"workout_streak"`
	TotalWorkouts int `json:"total_workouts"`
	LifetimeReps  int `json:"lifetime_reps"`

	RecordedAt time.Time `json:"recorded_at"`
}
