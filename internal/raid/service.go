// Package raid tracks community boss fights. Damage flows in from
// workout snapshots; only the boss's vulnerability exercise hurts it.
package raid

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ironquest/IronQuest_Go/internal/domain"
	"github.com/ironquest/IronQuest_Go/internal/event"
	"github.com/ironquest/IronQuest_Go/internal/logger"
	"github.com/ironquest/IronQuest_Go/internal/repository"
)

type Service interface {
	// SpawnBoss creates a new active boss, retiring any current one.
	SpawnBoss(ctx context.Context, name string, totalHP int, vulnerability domain.Exercise) (*domain.RaidBoss, error)

	GetBoss(ctx context.Context, bossID string) (*domain.RaidBoss, error)
	GetActiveBoss(ctx context.Context) (*domain.RaidBoss, error)

	// OnWorkout applies the snapshot's raid damage to the active boss
	// when the exercise matches its vulnerability.
	OnWorkout(ctx context.Context, snapshot domain.WorkoutSnapshot) error
}

type service struct {
	repo repository.Raid
	bus  event.Bus
	now  func() time.Time
}

// NewService creates a new raid service
func NewService(repo repository.Raid, bus event.Bus, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, bus: bus, now: now}
}

func (s *service) SpawnBoss(ctx context.Context, name string, totalHP int, vulnerability domain.Exercise) (*domain.RaidBoss, error) {
	log := logger.FromContext(ctx)

	if name == "" || totalHP <= 0 {
		return nil, fmt.Errorf("%w: boss needs a name and positive HP", domain.ErrInvalidChallenge)
	}
	if !domain.IsValidExercise(vulnerability) {
		return nil, fmt.Errorf("%w: unknown vulnerability %q", domain.ErrInvalidChallenge, vulnerability)
	}

	boss := &domain.RaidBoss{
		ID:            uuid.NewString(),
		Name:          name,
		TotalHP:       totalHP,
		CurrentHP:     totalHP,
		Vulnerability: vulnerability,
		Active:        true,
		CreatedAt:     s.now().UTC(),
	}

	if err := s.repo.CreateBoss(ctx, boss); err != nil {
		return nil, fmt.Errorf("failed to spawn boss: %w", err)
	}

	log.Info("Raid boss spawned", "boss_id", boss.ID, "name", name, "total_hp", totalHP, "vulnerability", vulnerability)
	return boss, nil
}

func (s *service) GetBoss(ctx context.Context, bossID string) (*domain.RaidBoss, error) {
	return s.repo.GetBoss(ctx, bossID)
}

func (s *service) GetActiveBoss(ctx context.Context) (*domain.RaidBoss, error) {
	return s.repo.GetActiveBoss(ctx)
}

// OnWorkout deals the snapshot's pre-computed raid damage to the active
// boss. No active boss is not an error; workouts simply pass through.
func (s *service) OnWorkout(ctx context.Context, snapshot domain.WorkoutSnapshot) error {
	log := logger.FromContext(ctx)

	boss, err := s.repo.GetActiveBoss(ctx)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil
		}
		return err
	}

	if snapshot.Exercise != boss.Vulnerability || snapshot.RaidDamage <= 0 {
		return nil
	}

	var dealt int
	updated, err := s.repo.MutateBoss(ctx, boss.ID, func(b *domain.RaidBoss) error {
		if !b.Active || b.CurrentHP <= 0 {
			return domain.ErrBossDefeated
		}

		dealt = snapshot.RaidDamage
		if dealt > b.CurrentHP {
			dealt = b.CurrentHP
		}
		b.CurrentHP -= dealt

		if !b.HasParticipant(snapshot.UserID) {
			b.Participants = append(b.Participants, snapshot.UserID)
		}

		if b.CurrentHP == 0 {
			b.Active = false
			at := s.now().UTC()
			b.DefeatedAt = &at
		}
		return nil
	})
	if err != nil {
		// Lost the race against the killing blow; nothing to record.
		if domain.IsConflict(err) {
			return nil
		}
		return err
	}

	defeated := updated.CurrentHP == 0
	log.Info("Raid damage dealt", "boss_id", updated.ID, "user_id", snapshot.UserID, "damage", dealt, "current_hp", updated.CurrentHP, "defeated", defeated)

	if s.bus != nil {
		evt := event.NewRaidDamageEvent(updated.ID, snapshot.UserID, dealt, updated.CurrentHP, defeated)
		if err := s.bus.Publish(ctx, evt); err != nil {
			log.Warn("Raid damage event publish failed", "error", err, "boss_id", updated.ID)
		}

		if defeated {
			evt := event.Event{
				Version: event.EventSchemaVersion,
				Type:    event.Type(domain.EventTypeRaidDefeated),
				Payload: map[string]interface{}{
					"boss_id":      updated.ID,
					"name":         updated.Name,
					"participants": updated.Participants,
				},
			}
			if err := s.bus.Publish(ctx, evt); err != nil {
				log.Warn("Raid defeated event publish failed", "error", err, "boss_id", updated.ID)
			}
		}
	}
	return nil
}
