package quest

import (
	"context"
	"fmt"

	"github.com/ironquest/IronQuest_Go/internal/domain"
	"github.com/ironquest/IronQuest_Go/internal/event"
	"github.com/ironquest/IronQuest_Go/internal/logger"
)

// EventHandler connects the quest tracker to the event bus
type EventHandler struct {
	service Service
}

// NewEventHandler creates a new quest event handler
func NewEventHandler(service Service) *EventHandler {
	return &EventHandler{service: service}
}

// Register subscribes the handler to relevant events
func (h *EventHandler) Register(bus event.Bus) {
	bus.Subscribe(event.Type(domain.EventTypeWorkoutRecorded), h.HandleWorkoutRecorded)
}

// HandleWorkoutRecorded advances quest progress for one applied workout
func (h *EventHandler) HandleWorkoutRecorded(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[event.WorkoutRecordedPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf("failed to decode workout payload: %w", err)
	}

	if err := h.service.OnWorkout(ctx, payload.Snapshot); err != nil {
		log.Warn("Failed to update quest progress for workout", "error", err, "user_id", payload.Snapshot.UserID)
		return nil
	}
	return nil
}
