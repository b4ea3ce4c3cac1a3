package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Typed event payloads for type safety

// WorkoutRecordedPayloadV1 carries the post-ledger snapshot consumed by
// every tracker. Trackers are independent: none may rely on another
// having seen the event first.
type WorkoutRecordedPayloadV1 struct {
	Snapshot domain.WorkoutSnapshot `json:"snapshot"`
}

// LevelUpPayloadV1 is the typed payload for level up events
type LevelUpPayloadV1 struct {
	UserID   string `json:"user_id"`
	OldLevel int    `json:"old_level"`
	NewLevel int    `json:"new_level"`
}

// QuestCompletedPayloadV1 is the typed payload for quest completion events
type QuestCompletedPayloadV1 struct {
	UserID   string `json:"user_id"`
	QuestID  string `json:"quest_id"`
	QuestKey string `json:"quest_key"`
	XPReward int    `json:"xp_reward"`
}

// QuestClaimedPayloadV1 is the typed payload for quest claim events
type QuestClaimedPayloadV1 struct {
	UserID   string `json:"user_id"`
	QuestID  string `json:"quest_id"`
	XPReward int    `json:"xp_reward"`
}

// AchievementUnlockedPayloadV1 is the typed payload for achievement unlocks
type AchievementUnlockedPayloadV1 struct {
	UserID        string    `json:"user_id"`
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// DuelScoredPayloadV1 is the typed payload for duel scoring events
type DuelScoredPayloadV1 struct {
	DuelID   string `json:"duel_id"`
	UserID   string `json:"user_id"`
	Added    int    `json:"added"`
	NewScore int    `json:"new_score"`
}

// DuelResolvedPayloadV1 is the typed payload for duel resolution events.
// WinnerID is empty for draws.
type DuelResolvedPayloadV1 struct {
	DuelID       string `json:"duel_id"`
	ChallengerID string `json:"challenger_id"`
	OpponentID   string `json:"opponent_id"`
	WinnerID     string `json:"winner_id,omitempty"`
	Draw         bool   `json:"draw"`
}

// RaidDamagePayloadV1 is the typed payload for raid damage events
type RaidDamagePayloadV1 struct {
	BossID    string `json:"boss_id"`
	UserID    string `json:"user_id"`
	Damage    int    `json:"damage"`
	CurrentHP int    `json:"current_hp"`
	Defeated  bool   `json:"defeated"`
}

// PartyPayloadV1 is the typed payload for party lifecycle events
type PartyPayloadV1 struct {
	PartyID    string `json:"party_id"`
	UserID     string `json:"user_id"`
	NewOwnerID string `json:"new_owner_id,omitempty"`
	Action     string `json:"action"`
}

// TerritoryBattlePayloadV1 is the typed payload for territory battle events
type TerritoryBattlePayloadV1 struct {
	Battle domain.BattleResult `json:"battle"`
}

// TerritoryPayloadV1 is the typed payload for claim/defend events
type TerritoryPayloadV1 struct {
	LocationID      string `json:"location_id"`
	UserID          string `json:"user_id"`
	ClubID          string `json:"club_id"`
	ControlStrength int    `json:"control_strength"`
}

// Type-safe event constructors

// NewWorkoutRecordedEvent creates the fan-out event for one applied workout
func NewWorkoutRecordedEvent(snapshot domain.WorkoutSnapshot) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeWorkoutRecorded),
		Payload: WorkoutRecordedPayloadV1{Snapshot: snapshot},
	}
}

// NewLevelUpEvent creates a new level up event
func NewLevelUpEvent(userID string, oldLevel, newLevel int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeLevelUp),
		Payload: LevelUpPayloadV1{
			UserID:   userID,
			OldLevel: oldLevel,
			NewLevel: newLevel,
		},
	}
}

// NewQuestCompletedEvent creates a new quest completed event
func NewQuestCompletedEvent(userID, questID, questKey string, xpReward int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeQuestCompleted),
		Payload: QuestCompletedPayloadV1{
			UserID:   userID,
			QuestID:  questID,
			QuestKey: questKey,
			XPReward: xpReward,
		},
	}
}

// NewQuestClaimedEvent creates a new quest claimed event
func NewQuestClaimedEvent(userID, questID string, xpReward int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeQuestClaimed),
		Payload: QuestClaimedPayloadV1{
			UserID:   userID,
			QuestID:  questID,
			XPReward: xpReward,
		},
	}
}

// NewAchievementUnlockedEvent creates a new achievement unlocked event
func NewAchievementUnlockedEvent(userID, achievementID string, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeAchievementUnlocked),
		Payload: AchievementUnlockedPayloadV1{
			UserID:        userID,
			AchievementID: achievementID,
			UnlockedAt:    at,
		},
	}
}

// NewDuelScoredEvent creates a new duel scored event
func NewDuelScoredEvent(duelID, userID string, added, newScore int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeDuelScored),
		Payload: DuelScoredPayloadV1{
			DuelID:   duelID,
			UserID:   userID,
			Added:    added,
			NewScore: newScore,
		},
	}
}

// NewDuelResolvedEvent creates a new duel resolved event
func NewDuelResolvedEvent(duel domain.Duel) Event {
	payload := DuelResolvedPayloadV1{
		DuelID:       duel.ID,
		ChallengerID: duel.ChallengerID,
		OpponentID:   duel.OpponentID,
		Draw:         duel.WinnerID == nil,
	}
	if duel.WinnerID != nil {
		payload.WinnerID = *duel.WinnerID
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeDuelResolved),
		Payload: payload,
	}
}

// NewRaidDamageEvent creates a new raid damage event
func NewRaidDamageEvent(bossID, userID string, damage, currentHP int, defeated bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeRaidDamage),
		Payload: RaidDamagePayloadV1{
			BossID:    bossID,
			UserID:    userID,
			Damage:    damage,
			CurrentHP: currentHP,
			Defeated:  defeated,
		},
	}
}

// NewPartyEvent creates a party lifecycle event of the given type
func NewPartyEvent(eventType domain.EventType, partyID, userID, newOwnerID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(eventType),
		Payload: PartyPayloadV1{
			PartyID:    partyID,
			UserID:     userID,
			NewOwnerID: newOwnerID,
			Action:     string(eventType),
		},
	}
}

// NewTerritoryBattleEvent creates a new territory battle event
func NewTerritoryBattleEvent(battle domain.BattleResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeTerritoryBattle),
		Payload: TerritoryBattlePayloadV1{Battle: battle},
	}
}

// NewTerritoryEvent creates a claim or defend event
func NewTerritoryEvent(eventType domain.EventType, locationID, userID, clubID string, strength int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(eventType),
		Payload: TerritoryPayloadV1{
			LocationID:      locationID,
			UserID:          userID,
			ClubID:          clubID,
			ControlStrength: strength,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run
// synchronously; a failing handler does not stop the others.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
