package duel

import (
	"context"
	"fmt"

	"github.com/ironquest/IronQuest_Go/internal/domain"
	"github.com/ironquest/IronQuest_Go/internal/event"
	"github.com/ironquest/IronQuest_Go/internal/logger"
)

// EventHandler connects the duel tracker to the event bus
type EventHandler struct {
	service Service
}

// NewEventHandler creates a new duel event handler
func NewEventHandler(service Service) *EventHandler {
	return &EventHandler{service: service}
}

// Register subscribes the handler to relevant events
func (h *EventHandler) Register(bus event.Bus) {
	bus.Subscribe(event.Type(domain.EventTypeWorkoutRecorded), h.HandleWorkoutRecorded)
}

// HandleWorkoutRecorded scores the workout into active duels
func (h *EventHandler) HandleWorkoutRecorded(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[event.WorkoutRecordedPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf("failed to decode workout payload: %w", err)
	}

	if err := h.service.OnWorkout(ctx, payload.Snapshot); err != nil {
		log.Warn("Failed to score duels for workout", "error", err, "user_id", payload.Snapshot.UserID)
		return nil
	}
	return nil
}
