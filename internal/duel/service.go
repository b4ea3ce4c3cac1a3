// Package duel runs head-to-head rep races between two users. Expiry
// is lazy: duels past their deadline are settled on the next read or
// score attempt, with a low-frequency background sweep catching the
// ones nobody reads.
package duel

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

const (
	// DefaultDuration is how long a duel runs once created.
	DefaultDuration = 24 * time.Hour

	// MaxDuration caps caller-supplied durations.
	MaxDuration = 7 * 24 * time.Hour
)

type Service interface {
	// CreateDuel issues a pending challenge. A zero duration uses the
	// default window.
	CreateDuel(ctx context.Context, challengerID, opponentID, challengeType string, duration time.Duration) (*domain.Duel, error)

	// AcceptDuel and DeclineDuel may only be called by the opponent
	// while the duel is still pending.
	AcceptDuel(ctx context.Context, duelID, userID string) (*domain.Duel, error)
	DeclineDuel(ctx context.Context, duelID, userID string) (*domain.Duel, error)

	// GetDuel settles the duel first if its deadline has passed.
	GetDuel(ctx context.Context, duelID string) (*domain.Duel, error)
	GetDuelsForUser(ctx context.Context, userID string, statuses ...domain.DuelStatus) ([]domain.Duel, error)

	// OnWorkout scores one workout into the user's active duels.
	OnWorkout(ctx context.Context, snapshot domain.WorkoutSnapshot) error

	// SettleExpired resolves every duel whose deadline has passed and
	// returns how many were settled.
	SettleExpired(ctx context.Context) (int, error)
}

type service struct {
	repo  repository.Duel
	users repository.User
	bus   event.Bus
	now   func() time.Time
}

// NewService creates a new duel service
func NewService(repo repository.Duel, users repository.User, bus event.Bus, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, users: users, bus: bus, now: now}
}

func (s *service) CreateDuel(ctx context.Context, challengerID, opponentID, challengeType string, duration time.Duration) (*domain.Duel, error) {
	log := logger.FromContext(ctx)

	if challengerID == opponentID {
		return nil, fmt.Errorf("%w: cannot duel yourself", domain.ErrInvalidChallenge)
	}
	if challengeType != domain.QuestMetricAny && !domain.IsValidExercise(domain.Exercise(challengeType)) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidChallenge, challengeType)
	}
	if duration < 0 || duration > MaxDuration {
		return nil, fmt.Errorf("%w: duration out of range", domain.ErrInvalidChallenge)
	}
	if duration == 0 {
		duration = DefaultDuration
	}

	// Both sides must exist before the challenge goes out.
	if _, err := s.users.GetUser(ctx, challengerID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetUser(ctx, opponentID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	duel := &domain.Duel{
		ID:            uuid.NewString(),
		ChallengerID:  challengerID,
		OpponentID:    opponentID,
		Status:        domain.DuelStatusPending,
		ChallengeType: challengeType,
		Scores:        map[string]int{challengerID: 0, opponentID: 0},
		CreatedAt:     now,
		Deadline:      now.Add(duration),
	}

	if err := s.repo.CreateDuel(ctx, duel); err != nil {
		return nil, fmt.Errorf("failed to create duel: %w", err)
	}

	log.Info("Duel created", "duel_id", duel.ID, "challenger_id", challengerID, "opponent_id", opponentID, "challenge_type", challengeType)

	if s.bus != nil {
		evt := event.Event{
			Version: event.EventSchemaVersion,
			Type:    event.Type(domain.EventTypeDuelCreated),
			Payload: map[string]interface{}{
				"duel_id":       duel.ID,
				"challenger_id": challengerID,
				"opponent_id":   opponentID,
			},
		}
		if err := s.bus.Publish(ctx, evt); err != nil {
			log.Warn("Duel created event publish failed", "error", err, "duel_id", duel.ID)
		}
	}
	return duel, nil
}

func (s *service) AcceptDuel(ctx context.Context, duelID, userID string) (*domain.Duel, error) {
	return s.answerChallenge(ctx, duelID, userID, domain.DuelStatusActive, domain.EventTypeDuelAccepted)
}

func (s *service) DeclineDuel(ctx context.Context, duelID, userID string) (*domain.Duel, error) {
	return s.answerChallenge(ctx, duelID, userID, domain.DuelStatusDeclined, domain.EventTypeDuelDeclined)
}

func (s *service) answerChallenge(ctx context.Context, duelID, userID string, next domain.DuelStatus, eventType domain.EventType) (*domain.Duel, error) {
	log := logger.FromContext(ctx)
	now := s.now().UTC()

	updated, err := s.repo.MutateDuel(ctx, duelID, func(d *domain.Duel) error {
		if d.Status != domain.DuelStatusPending {
			if d.Status.IsTerminal() {
				return domain.ErrDuelResolved
			}
			return domain.ErrDuelNotPending
		}
		if d.OpponentID != userID {
			return fmt.Errorf("%w: only the opponent may answer", domain.ErrDuelNotPending)
		}
		// An expired challenge cannot be answered.
		if now.After(d.Deadline) {
			d.Status = domain.DuelStatusExpired
			d.CompletedAt = &now
			return nil
		}
		d.Status = next
		if next == domain.DuelStatusDeclined {
			d.CompletedAt = &now
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated.Status == domain.DuelStatusExpired {
		s.publishResolved(ctx, updated)
		return nil, domain.ErrDuelResolved
	}

	log.Info("Duel answered", "duel_id", duelID, "user_id", userID, "status", updated.Status)

	if s.bus != nil {
		evt := event.Event{
			Version: event.EventSchemaVersion,
			Type:    event.Type(eventType),
			Payload: map[string]interface{}{
				"duel_id": duelID,
				"user_id": userID,
			},
		}
		if err := s.bus.Publish(ctx, evt); err != nil {
			log.Warn("Duel answer event publish failed", "error", err, "duel_id", duelID)
		}
	}
	return updated, nil
}

// GetDuel reads a duel, settling it first if the deadline has passed
func (s *service) GetDuel(ctx context.Context, duelID string) (*domain.Duel, error) {
	duel, err := s.repo.GetDuel(ctx, duelID)
	if err != nil {
		return nil, err
	}
	return s.settleIfDue(ctx, duel)
}

func (s *service) GetDuelsForUser(ctx context.Context, userID string, statuses ...domain.DuelStatus) ([]domain.Duel, error) {
	duels, err := s.repo.GetDuelsForUser(ctx, userID, statuses...)
	if err != nil {
		return nil, err
	}

	for i := range duels {
		settled, err := s.settleIfDue(ctx, &duels[i])
		if err != nil {
			return nil, err
		}
		duels[i] = *settled
	}
	return duels, nil
}

// OnWorkout adds the workout's reps to every matching active duel. A
// duel found past its deadline is settled instead of scored.
func (s *service) OnWorkout(ctx context.Context, snapshot domain.WorkoutSnapshot) error {
	log := logger.FromContext(ctx)
	now := s.now().UTC()

	duels, err := s.repo.GetDuelsForUser(ctx, snapshot.UserID, domain.DuelStatusActive)
	if err != nil {
		return err
	}

	for _, d := range duels {
		if now.After(d.Deadline) {
			if _, err := s.settleIfDue(ctx, &d); err != nil {
				return err
			}
			continue
		}
		if !d.MatchesExercise(snapshot.Exercise) {
			continue
		}

		updated, err := s.repo.MutateDuel(ctx, d.ID, func(duel *domain.Duel) error {
			if duel.Status != domain.DuelStatusActive {
				return nil
			}
			if duel.Scores == nil {
				duel.Scores = make(map[string]int)
			}
			duel.Scores[snapshot.UserID] += snapshot.Reps
			return nil
		})
		if err != nil {
			return err
		}

		log.Info("Duel scored", "duel_id", d.ID, "user_id", snapshot.UserID, "added", snapshot.Reps, "score", updated.Scores[snapshot.UserID])

		if s.bus != nil {
			evt := event.NewDuelScoredEvent(d.ID, snapshot.UserID, snapshot.Reps, updated.Scores[snapshot.UserID])
			if err := s.bus.Publish(ctx, evt); err != nil {
				log.Warn("Duel scored event publish failed", "error", err, "duel_id", d.ID)
			}
		}
	}
	return nil
}

// SettleExpired sweeps all overdue duels. It keeps going past
// individual failures so one bad record cannot stall the sweep.
func (s *service) SettleExpired(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	expired, err := s.repo.ListExpired(ctx, s.now().UTC())
	if err != nil {
		return 0, err
	}

	settled := 0
	for i := range expired {
		if _, err := s.settleIfDue(ctx, &expired[i]); err != nil {
			log.Warn("Duel sweep settle failed", "error", err, "duel_id", expired[i].ID)
			continue
		}
		settled++
	}
	return settled, nil
}

// settleIfDue resolves a duel whose deadline has passed: a pending
// challenge expires, an active duel completes with the higher score
// winning and ties ending in a draw.
func (s *service) settleIfDue(ctx context.Context, duel *domain.Duel) (*domain.Duel, error) {
	now := s.now().UTC()
	if duel.Status.IsTerminal() || !now.After(duel.Deadline) {
		return duel, nil
	}

	updated, err := s.repo.MutateDuel(ctx, duel.ID, func(d *domain.Duel) error {
		if d.Status.IsTerminal() {
			return nil
		}
		d.CompletedAt = &now

		if d.Status == domain.DuelStatusPending {
			d.Status = domain.DuelStatusExpired
			return nil
		}

		d.Status = domain.DuelStatusCompleted
		challenger := d.Scores[d.ChallengerID]
		opponent := d.Scores[d.OpponentID]
		switch {
		case challenger > opponent:
			d.WinnerID = &d.ChallengerID
		case opponent > challenger:
			d.WinnerID = &d.OpponentID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishResolved(ctx, updated)
	return updated, nil
}

func (s *service) publishResolved(ctx context.Context, duel *domain.Duel) {
	if s.bus == nil {
		return
	}
	log := logger.FromContext(ctx)

	if err := s.bus.Publish(ctx, event.NewDuelResolvedEvent(*duel)); err != nil {
		log.Warn("Duel resolved event publish failed", "error", err, "duel_id", duel.ID)
	}
	log.Info("Duel settled", "duel_id", duel.ID, "status", duel.Status)
}
