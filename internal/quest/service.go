// Package quest tracks per-user quest progress driven by workout
// events and handles the daily/weekly refresh cycle.
package quest

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ironquest/IronQuest_Go/internal/domain"
	"github.com/ironquest/IronQuest_Go/internal/event"
	"github.com/ironquest/IronQuest_Go/internal/logger"
	"github.com/ironquest/IronQuest_Go/internal/progression"
	"github.com/ironquest/IronQuest_Go/internal/repository"
)

const (
	// DailyQuestCount and WeeklyQuestCount are how many quests each
	// refresh deals from the pool.
	DailyQuestCount  = 3
	WeeklyQuestCount = 2
)

type Service interface {
	GetUserQuests(ctx context.Context, userID string) ([]domain.Quest, error)

	// ClaimQuestReward is the explicit claim step. Completion alone
	// never grants XP.
	ClaimQuestReward(ctx context.Context, userID, questID string) (xp int, err error)

	// OnWorkout advances quest progress from one applied workout.
	OnWorkout(ctx context.Context, snapshot domain.WorkoutSnapshot) error

	// EnsureMilestoneQuests creates any milestone quests the user does
	// not have yet. Idempotent by quest key.
	EnsureMilestoneQuests(ctx context.Context, userID string) error

	// RefreshDailyQuests replaces the user's daily quests with a fresh
	// deterministic draw for the given date.
	RefreshDailyQuests(ctx context.Context, userID string, now time.Time) error
	RefreshWeeklyQuests(ctx context.Context, userID string, now time.Time) error

	// RefreshAllDaily and RefreshAllWeekly run the refresh for every
	// registered user (called by the reset workers).
	RefreshAllDaily(ctx context.Context, now time.Time) error
	RefreshAllWeekly(ctx context.Context, now time.Time) error
}

type service struct {
	repo   repository.Quest
	users  repository.User
	ledger progression.Service
	bus    event.Bus
	now    func() time.Time

	mu   sync.RWMutex
	pool []domain.QuestTemplate
}

// NewService creates a new quest service over the given template pool.
func NewService(repo repository.Quest, users repository.User, ledger progression.Service, bus event.Bus, pool []domain.QuestTemplate, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:   repo,
		users:  users,
		ledger: ledger,
		bus:    bus,
		pool:   pool,
		now:    now,
	}
}

// LoadQuestPool reads the quest template pool from a JSON config file.
func LoadQuestPool(path string) ([]domain.QuestTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quest pool: %w", err)
	}

	var cfg domain.QuestPoolConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse quest pool: %w", err)
	}
	return cfg.QuestPool, nil
}

// GetUserQuests returns all of the user's quest instances
func (s *service) GetUserQuests(ctx context.Context, userID string) ([]domain.Quest, error) {
	return s.repo.GetUserQuests(ctx, userID)
}

// OnWorkout advances every matching, uncompleted quest by the workout's
// rep count. Progress is clamped at the target; crossing it marks the
// quest completed and publishes a completion event.
func (s *service) OnWorkout(ctx context.Context, snapshot domain.WorkoutSnapshot) error {
	log := logger.FromContext(ctx)

	quests, err := s.repo.GetUserQuests(ctx, snapshot.UserID)
	if err != nil {
		return err
	}

	for _, q := range quests {
		if q.Completed || !q.MatchesExercise(snapshot.Exercise) {
			continue
		}

		updated, err := s.repo.MutateQuest(ctx, snapshot.UserID, q.ID, func(quest *domain.Quest) error {
			if quest.Completed {
				return nil
			}
			quest.ProgressValue += snapshot.Reps
			if quest.ProgressValue >= quest.TargetValue {
				quest.ProgressValue = quest.TargetValue
				quest.Completed = true
				at := s.now().UTC()
				quest.CompletedAt = &at
			}
			return nil
		})
		if err != nil {
			return err
		}

		if updated.Completed && !q.Completed {
			log.Info("Quest completed", "user_id", snapshot.UserID, "quest_id", updated.ID, "quest_key", updated.QuestKey)

			if s.bus != nil {
				evt := event.NewQuestCompletedEvent(snapshot.UserID, updated.ID, updated.QuestKey, updated.XPReward)
				if err := s.bus.Publish(ctx, evt); err != nil {
					log.Warn("Quest completed event publish failed", "error", err, "quest_id", updated.ID)
				}
			}
		}
	}

	return nil
}

// ClaimQuestReward marks a completed quest claimed and grants its XP
// through the progression ledger.
func (s *service) ClaimQuestReward(ctx context.Context, userID, questID string) (int, error) {
	log := logger.FromContext(ctx)

	claimed, err := s.repo.MutateQuest(ctx, userID, questID, func(q *domain.Quest) error {
		if !q.Completed {
			return domain.ErrQuestNotCompleted
		}
		if q.Claimed {
			return domain.ErrQuestClaimed
		}
		q.Claimed = true
		at := s.now().UTC()
		q.ClaimedAt = &at
		return nil
	})
	if err != nil {
		return 0, err
	}

	if _, err := s.ledger.AwardXP(ctx, userID, claimed.XPReward, "quest_reward"); err != nil {
		return 0, fmt.Errorf("failed to award quest XP: %w", err)
	}

	log.Info("Quest reward claimed", "user_id", userID, "quest_id", questID, "xp", claimed.XPReward)

	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewQuestClaimedEvent(userID, questID, claimed.XPReward)); err != nil {
			log.Warn("Quest claimed event publish failed", "error", err, "quest_id", questID)
		}
	}

	return claimed.XPReward, nil
}

// EnsureMilestoneQuests creates milestone quests the user is missing
func (s *service) EnsureMilestoneQuests(ctx context.Context, userID string) error {
	existing, err := s.repo.GetUserQuests(ctx, userID)
	if err != nil {
		return err
	}

	have := make(map[string]bool, len(existing))
	for _, q := range existing {
		if q.Kind == domain.QuestKindMilestone {
			have[q.QuestKey] = true
		}
	}

	for _, tmpl := range s.templates(domain.QuestKindMilestone) {
		if have[tmpl.QuestKey] {
			continue
		}
		if err := s.repo.CreateQuest(ctx, s.instantiate(userID, tmpl)); err != nil {
			return err
		}
	}
	return nil
}

// RefreshDailyQuests deals a fresh daily set for the given date
func (s *service) RefreshDailyQuests(ctx context.Context, userID string, now time.Time) error {
	now = now.UTC()
	seed := dateSeed(now) ^ userSeed(userID)
	return s.refresh(ctx, userID, domain.QuestKindDaily, DailyQuestCount, seed)
}

// RefreshWeeklyQuests deals a fresh weekly set for the given ISO week
func (s *service) RefreshWeeklyQuests(ctx context.Context, userID string, now time.Time) error {
	year, week := now.UTC().ISOWeek()
	seed := int64(year*100+week) ^ userSeed(userID)
	return s.refresh(ctx, userID, domain.QuestKindWeekly, WeeklyQuestCount, seed)
}

// refresh deletes the user's quests of one kind and deals a new set.
// The seed makes the draw reproducible for a given user and period.
func (s *service) refresh(ctx context.Context, userID string, kind domain.QuestKind, count int, seed int64) error {
	log := logger.FromContext(ctx)

	removed, err := s.repo.DeleteQuestsByKind(ctx, userID, kind)
	if err != nil {
		return fmt.Errorf("failed to clear %s quests: %w", kind, err)
	}

	pool := s.templates(kind)
	if len(pool) == 0 {
		log.Warn("Quest pool has no templates for kind", "kind", kind)
		return nil
	}

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if count > len(pool) {
		count = len(pool)
	}

	for _, tmpl := range pool[:count] {
		if err := s.repo.CreateQuest(ctx, s.instantiate(userID, tmpl)); err != nil {
			return fmt.Errorf("failed to create quest %s: %w", tmpl.QuestKey, err)
		}
	}

	log.Info("Quests refreshed", "user_id", userID, "kind", kind, "removed", removed, "created", count)

	if s.bus != nil {
		evt := event.Event{
			Version: event.EventSchemaVersion,
			Type:    event.Type(domain.EventTypeQuestRefreshed),
			Payload: map[string]interface{}{
				"user_id": userID,
				"kind":    string(kind),
				"count":   count,
			},
		}
		if err := s.bus.Publish(ctx, evt); err != nil {
			log.Warn("Quest refreshed event publish failed", "error", err, "user_id", userID)
		}
	}
	return nil
}

// RefreshAllDaily refreshes dailies for every user. A failure for one
// user does not stop the others.
func (s *service) RefreshAllDaily(ctx context.Context, now time.Time) error {
	return s.refreshAll(ctx, now, s.RefreshDailyQuests)
}

// RefreshAllWeekly refreshes weeklies for every user
func (s *service) RefreshAllWeekly(ctx context.Context, now time.Time) error {
	return s.refreshAll(ctx, now, s.RefreshWeeklyQuests)
}

func (s *service) refreshAll(ctx context.Context, now time.Time, fn func(context.Context, string, time.Time) error) error {
	log := logger.FromContext(ctx)

	ids, err := s.users.ListUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	var failures int
	for _, id := range ids {
		if err := fn(ctx, id, now); err != nil {
			log.Error("Quest refresh failed for user", "user_id", id, "error", err)
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("quest refresh failed for %d of %d users", failures, len(ids))
	}
	return nil
}

// templates returns a copy of the pool entries of one kind
func (s *service) templates(kind domain.QuestKind) []domain.QuestTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.QuestTemplate
	for _, tmpl := range s.pool {
		if tmpl.Kind == kind {
			out = append(out, tmpl)
		}
	}
	return out
}

func (s *service) instantiate(userID string, tmpl domain.QuestTemplate) *domain.Quest {
	return &domain.Quest{
		ID:           uuid.NewString(),
		UserID:       userID,
		Kind:         tmpl.Kind,
		QuestKey:     tmpl.QuestKey,
		Description:  tmpl.Description,
		TargetMetric: tmpl.TargetMetric,
		TargetValue:  tmpl.TargetValue,
		XPReward:     tmpl.XPReward,
		CreatedAt:    s.now().UTC(),
	}
}

func dateSeed(t time.Time) int64 {
	y, m, d := t.Date()
	return int64(y*10000 + int(m)*100 + d)
}

func userSeed(userID string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(userID))
	return int64(h.Sum64())
}
