// Package progression owns the canonical per-user level/XP/stat record.
// It is the only writer of UserProgress numeric fields; the trackers
// consume the immutable post-ledger snapshot published on the bus.
package progression

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ironquest/IronQuest_Go/internal/domain"
	"github.com/ironquest/IronQuest_Go/internal/event"
	"github.com/ironquest/IronQuest_Go/internal/formula"
	"github.com/ironquest/IronQuest_Go/internal/logger"
	"github.com/ironquest/IronQuest_Go/internal/repository"
)

// Service defines the interface for progression ledger operations
type Service interface {
	RegisterUser(ctx context.Context, username string) (*domain.UserProgress, error)
	GetUser(ctx context.Context, userID string) (*domain.UserProgress, error)

	// ApplyWorkout validates and applies one workout submission. This
	// is the single place the canonical numeric state changes.
	ApplyWorkout(ctx context.Context, userID string, exercise domain.Exercise, reps int) (*domain.WorkoutResult, error)

	// AwardXP grants flat XP outside a workout (quest reward claims).
	AwardXP(ctx context.Context, userID string, xp int, source string) (*domain.UserProgress, error)

	EquipItem(ctx context.Context, userID, itemID string, slot domain.EquipmentSlot) (*domain.UserProgress, error)
	UnequipItem(ctx context.Context, userID string, slot domain.EquipmentSlot) (*domain.UserProgress, error)

	GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

type service struct {
	repo repository.User
	bus  event.Bus
	now  func() time.Time
}

// NewService creates a new progression service. A nil clock defaults to
// time.Now; tests inject a fixed clock.
func NewService(repo repository.User, bus event.Bus, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, bus: bus, now: now}
}

// RegisterUser creates a fresh level-1 record
func (s *service) RegisterUser(ctx context.Context, username string) (*domain.UserProgress, error) {
	user := domain.NewUserProgress(uuid.NewString(), username, s.now().UTC())
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUser returns the user's progression record
func (s *service) GetUser(ctx context.Context, userID string) (*domain.UserProgress, error) {
	return s.repo.GetUser(ctx, userID)
}

// ApplyWorkout converts an exercise report into XP, stat gains and
// level-ups, updates the workout streak, and publishes the post-ledger
// snapshot for the trackers.
func (s *service) ApplyWorkout(ctx context.Context, userID string, exercise domain.Exercise, reps int) (*domain.WorkoutResult, error) {
	log := logger.FromContext(ctx)

	// Range checks happen before any mutation so a rejected workout
	// leaves the record untouched.
	if reps <= 0 {
		return nil, fmt.Errorf("%w: reps must be positive, got %d", domain.ErrInvalidWorkout, reps)
	}
	if reps > domain.MaxWorkoutReps {
		return nil, fmt.Errorf("%w: reps exceed maximum of %d", domain.ErrInvalidWorkout, domain.MaxWorkoutReps)
	}
	if !domain.IsValidExercise(exercise) {
		return nil, fmt.Errorf("%w: unknown exercise %q", domain.ErrInvalidWorkout, exercise)
	}

	now := s.now().UTC()
	var result domain.WorkoutResult
	var oldLevel int

	updated, err := s.repo.MutateUser(ctx, userID, func(u *domain.UserProgress) error {
		oldLevel = u.Level

		// The streak bonus reflects the streak entering this workout;
		// the streak itself is updated afterwards.
		xpGained := formula.XPGained(exercise, reps, u.Level, u.WorkoutStreak)
		statGains := formula.StatGains(exercise, reps)
		raidDamage := formula.RaidDamage(exercise, reps, u.Level)

		levels := applyXP(u, xpGained)

		u.Strength += statGains.Strength
		u.Endurance += statGains.Endurance
		u.Agility += statGains.Agility

		u.WorkoutStreak = nextStreak(u.WorkoutStreak, u.LastWorkoutDate, now)
		u.LastWorkoutDate = &now
		u.TotalWorkouts++
		u.LifetimeReps += reps
		u.UpdatedAt = now

		result = domain.WorkoutResult{
			XPGained:   xpGained,
			StatGains:  statGains,
			LeveledUp:  levels > 0,
			NewLevel:   u.Level,
			RaidDamage: raidDamage,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Workout applied",
		"user_id", userID,
		"exercise", exercise,
		"reps", reps,
		"xp_gained", result.XPGained,
		"leveled_up", result.LeveledUp,
		"level", updated.Level)

	if s.bus != nil {
		if result.LeveledUp {
			if err := s.bus.Publish(ctx, event.NewLevelUpEvent(userID, oldLevel, updated.Level)); err != nil {
				log.Warn("Level up event publish failed", "error", err, "user_id", userID)
			}
		}

		snapshot := domain.WorkoutSnapshot{
			UserID:        userID,
			Exercise:      exercise,
			Reps:          reps,
			XPGained:      result.XPGained,
			RaidDamage:    result.RaidDamage,
			LeveledUp:     result.LeveledUp,
			Level:         updated.Level,
			Strength:      updated.Strength,
			Endurance:     updated.Endurance,
			Agility:       updated.Agility,
			WorkoutStreak: updated.WorkoutStreak,
			TotalWorkouts: updated.TotalWorkouts,
			LifetimeReps:  updated.LifetimeReps,
			RecordedAt:    now,
		}
		if err := s.bus.Publish(ctx, event.NewWorkoutRecordedEvent(snapshot)); err != nil {
			log.Warn("Workout fan-out reported handler errors", "error", err, "user_id", userID)
		}
	}

	return &result, nil
}

// AwardXP grants flat XP through the same level-up loop as workouts
func (s *service) AwardXP(ctx context.Context, userID string, xp int, source string) (*domain.UserProgress, error) {
	log := logger.FromContext(ctx)

	if xp <= 0 {
		return s.repo.GetUser(ctx, userID)
	}

	var oldLevel int
	updated, err := s.repo.MutateUser(ctx, userID, func(u *domain.UserProgress) error {
		oldLevel = u.Level
		applyXP(u, xp)
		u.UpdatedAt = s.now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("XP awarded", "user_id", userID, "xp", xp, "source", source, "level", updated.Level)

	if s.bus != nil && updated.Level > oldLevel {
		if err := s.bus.Publish(ctx, event.NewLevelUpEvent(userID, oldLevel, updated.Level)); err != nil {
			log.Warn("Level up event publish failed", "error", err, "user_id", userID)
		}
	}
	return updated, nil
}

// EquipItem moves an inventory item into an equipment slot, swapping
// any currently equipped item back into the inventory. An item id is
// never both equipped and in the inventory.
func (s *service) EquipItem(ctx context.Context, userID, itemID string, slot domain.EquipmentSlot) (*domain.UserProgress, error) {
	if !domain.IsValidEquipmentSlot(slot) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidEquipSlot, slot)
	}

	return s.repo.MutateUser(ctx, userID, func(u *domain.UserProgress) error {
		if !u.RemoveInventoryItem(itemID) {
			return fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
		}
		if u.Equipment == nil {
			u.Equipment = make(map[domain.EquipmentSlot]string)
		}
		if current, ok := u.Equipment[slot]; ok {
			u.Inventory = append(u.Inventory, current)
		}
		u.Equipment[slot] = itemID
		u.UpdatedAt = s.now().UTC()
		return nil
	})
}

// UnequipItem moves an equipped item back into the inventory
func (s *service) UnequipItem(ctx context.Context, userID string, slot domain.EquipmentSlot) (*domain.UserProgress, error) {
	if !domain.IsValidEquipmentSlot(slot) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidEquipSlot, slot)
	}

	return s.repo.MutateUser(ctx, userID, func(u *domain.UserProgress) error {
		itemID, ok := u.Equipment[slot]
		if !ok {
			return fmt.Errorf("%w: slot %s is empty", domain.ErrItemNotFound, slot)
		}
		delete(u.Equipment, slot)
		u.Inventory = append(u.Inventory, itemID)
		u.UpdatedAt = s.now().UTC()
		return nil
	})
}

// GetLeaderboard returns the top users by level then xp
func (s *service) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 || limit > MaxLeaderboardLimit {
		limit = DefaultLeaderboardLimit
	}
	return s.repo.GetLeaderboard(ctx, limit)
}

// applyXP adds xp and resolves level-ups. The loop may fire multiple
// times for one grant; the per-level stat bonus applies once per level
// gained. Afterwards u.XP < threshold(u.Level) always holds.
func applyXP(u *domain.UserProgress, xp int) int {
	u.XP += xp

	levels := 0
	for u.XP >= formula.XPThreshold(u.Level) {
		u.XP -= formula.XPThreshold(u.Level)
		u.Level++
		levels++
		u.Strength += formula.PerLevelStatBonus
		u.Endurance += formula.PerLevelStatBonus
		u.Agility += formula.PerLevelStatBonus
	}
	return levels
}

// nextStreak implements the streak policy: unchanged on a same-day
// re-log, incremented when the last workout was exactly yesterday,
// reset to 1 on any longer gap or first workout.
func nextStreak(current int, last *time.Time, now time.Time) int {
	if last == nil {
		return 1
	}

	y1, m1, d1 := last.UTC().Date()
	y2, m2, d2 := now.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		if current < 1 {
			return 1
		}
		return current
	}

	yesterday := now.AddDate(0, 0, -1)
	y3, m3, d3 := yesterday.Date()
	if y1 == y3 && m1 == m3 && d1 == d3 {
		return current + 1
	}

	return 1
}
