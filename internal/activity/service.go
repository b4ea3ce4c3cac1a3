// Package activity keeps a bounded per-user log of recent game events
// for display in feeds. It listens on the bus rather than being called
// directly, so trackers never know it exists.
package activity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ironquest/IronQuest_Go/internal/domain"
	"github.com/ironquest/IronQuest_Go/internal/event"
	"github.com/ironquest/IronQuest_Go/internal/logger"
	"github.com/ironquest/IronQuest_Go/internal/repository"
)

const (
	// RetentionPerUser caps how many entries each user keeps; older
	// entries are dropped on append.
	RetentionPerUser = 100

	// DefaultFeedLimit is used when a caller asks for a non-positive
	// number of entries.
	DefaultFeedLimit = 20
)

// Service handles activity feed recording and queries
type Service interface {
	// Subscribe registers the recorder for every loggable event type.
	Subscribe(bus event.Bus) error

	GetUserActivity(ctx context.Context, userID string, limit int) ([]repository.ActivityEntry, error)
	GetRecentActivity(ctx context.Context, limit int) ([]repository.ActivityEntry, error)
}

type service struct {
	repo repository.Activity
	now  func() time.Time
}

// NewService creates a new activity recording service
func NewService(repo repository.Activity, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, now: now}
}

// loggableEventTypes is every event the feed records. The raw
// workout.recorded event is included; trackers' derived events are too,
// so one workout can produce several feed entries.
var loggableEventTypes = []domain.EventType{
	domain.EventTypeWorkoutRecorded,
	domain.EventTypeLevelUp,
	domain.EventTypeQuestCompleted,
	domain.EventTypeQuestClaimed,
	domain.EventTypeAchievementUnlocked,
	domain.EventTypeDuelCreated,
	domain.EventTypeDuelAccepted,
	domain.EventTypeDuelDeclined,
	domain.EventTypeDuelResolved,
	domain.EventTypeRaidDamage,
	domain.EventTypeRaidDefeated,
	domain.EventTypePartyCreated,
	domain.EventTypePartyJoined,
	domain.EventTypePartyLeft,
	domain.EventTypePartyKicked,
	domain.EventTypePartyDisbanded,
	domain.EventTypePartyOwnerChange,
	domain.EventTypeTerritoryClaimed,
	domain.EventTypeTerritoryBattle,
	domain.EventTypeTerritoryDefended,
}

// Subscribe registers the recorder on the bus
func (s *service) Subscribe(bus event.Bus) error {
	for _, eventType := range loggableEventTypes {
		bus.Subscribe(event.Type(eventType), s.handleEvent)
	}
	return nil
}

// handleEvent appends one event to the feed. Recording failures are
// logged but never propagated; the feed must not break game flow.
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := payloadAsMap(evt.Payload)
	if err != nil {
		log.Debug("Event payload not recordable, skipping", "type", evt.Type, "error", err)
		return nil
	}

	entry := repository.ActivityEntry{
		EventType: string(evt.Type),
		UserID:    extractUserID(payload),
		Payload:   payload,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Append(ctx, entry, RetentionPerUser); err != nil {
		log.Error("Failed to record activity", "error", err, "type", evt.Type)
		return nil
	}
	return nil
}

func (s *service) GetUserActivity(ctx context.Context, userID string, limit int) ([]repository.ActivityEntry, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return s.repo.GetByUser(ctx, userID, limit)
}

func (s *service) GetRecentActivity(ctx context.Context, limit int) ([]repository.ActivityEntry, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return s.repo.GetRecent(ctx, limit)
}

// payloadAsMap flattens a typed payload into a generic map via a JSON
// round-trip so the feed stores one uniform shape.
func payloadAsMap(payload interface{}) (map[string]interface{}, error) {
	if m, ok := payload.(map[string]interface{}); ok {
		return m, nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// extractUserID digs the acting user out of the known payload shapes
func extractUserID(payload map[string]interface{}) *string {
	if uid, ok := payload["user_id"].(string); ok && uid != "" {
		return &uid
	}
	// The workout snapshot nests the user one level down.
	if snap, ok := payload["snapshot"].(map[string]interface{}); ok {
		if uid, ok := snap["user_id"].(string); ok && uid != "" {
			return &uid
		}
	}
	if battle, ok := payload["battle"].(map[string]interface{}); ok {
		if uid, ok := battle["attacker_id"].(string); ok && uid != "" {
			return &uid
		}
	}
	return nil
}
