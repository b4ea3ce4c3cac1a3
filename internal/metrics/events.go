package metrics

import (
	"context"

	"github.com/ironquest/IronQuest_Go/internal/domain"
	"github.com/ironquest/IronQuest_Go/internal/event"
	"github.com/ironquest/IronQuest_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	// Subscribe to all event types we care about
	eventTypes := []domain.EventType{
		domain.EventTypeWorkoutRecorded,
		domain.EventTypeLevelUp,
		domain.EventTypeQuestCompleted,
		domain.EventTypeAchievementUnlocked,
		domain.EventTypeDuelResolved,
		domain.EventTypeRaidDamage,
		domain.EventTypeTerritoryBattle,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(event.Type(eventType), e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	// Record business metrics based on event type
	switch domain.EventType(evt.Type) {
	case domain.EventTypeWorkoutRecorded:
		payload, err := event.DecodePayload[event.WorkoutRecordedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadUndecodable, "type", evt.Type, "error", err)
			return nil
		}
		WorkoutsRecorded.WithLabelValues(string(payload.Snapshot.Exercise)).Inc()
		RepsRecorded.WithLabelValues(string(payload.Snapshot.Exercise)).Add(float64(payload.Snapshot.Reps))
		XPGranted.Add(float64(payload.Snapshot.XPGained))

	case domain.EventTypeLevelUp:
		LevelUps.Inc()

	case domain.EventTypeQuestCompleted:
		payload, err := event.DecodePayload[event.QuestCompletedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadUndecodable, "type", evt.Type, "error", err)
			return nil
		}
		QuestsCompleted.WithLabelValues(payload.QuestKey).Inc()

	case domain.EventTypeAchievementUnlocked:
		AchievementsUnlocked.Inc()

	case domain.EventTypeDuelResolved:
		payload, err := event.DecodePayload[event.DuelResolvedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadUndecodable, "type", evt.Type, "error", err)
			return nil
		}
		outcome := OutcomeWon
		if payload.Draw {
			outcome = OutcomeDraw
		}
		DuelsResolved.WithLabelValues(outcome).Inc()

	case domain.EventTypeRaidDamage:
		payload, err := event.DecodePayload[event.RaidDamagePayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadUndecodable, "type", evt.Type, "error", err)
			return nil
		}
		RaidDamageDealt.Add(float64(payload.Damage))
		if payload.Defeated {
			RaidBossesDefeated.Inc()
		}

	case domain.EventTypeTerritoryBattle:
		payload, err := event.DecodePayload[event.TerritoryBattlePayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadUndecodable, "type", evt.Type, "error", err)
			return nil
		}
		outcome := OutcomeDefended
		if payload.Battle.AttackerWon {
			outcome = OutcomeCaptured
		}
		TerritoryBattles.WithLabelValues(outcome).Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
