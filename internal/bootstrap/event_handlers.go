package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/ironquest/IronQuest_Go/internal/achievement"
	"github.com/ironquest/IronQuest_Go/internal/activity"
	"github.com/ironquest/IronQuest_Go/internal/duel"
	"github.com/ironquest/IronQuest_Go/internal/event"
	"github.com/ironquest/IronQuest_Go/internal/metrics"
	"github.com/ironquest/IronQuest_Go/internal/quest"
	"github.com/ironquest/IronQuest_Go/internal/raid"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus           event.Bus
	QuestService       quest.Service
	AchievementService achievement.Service
	DuelService        duel.Service
	RaidService        raid.Service
	ActivityService    activity.Service
}

// RegisterEventHandlers sets up all event handlers and subscribers.
// This includes:
// - Workout fan-out handlers (quest, achievement, duel, raid trackers)
// - Metrics collector (for event-based metrics)
// - Activity recorder (persists events to the bounded activity log)
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	// Register workout fan-out handlers
	quest.NewEventHandler(deps.QuestService).Register(deps.EventBus)
	achievement.NewEventHandler(deps.AchievementService).Register(deps.EventBus)
	duel.NewEventHandler(deps.DuelService).Register(deps.EventBus)
	raid.NewEventHandler(deps.RaidService).Register(deps.EventBus)

	// Register Metrics Collector
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	// Subscribe Activity Recorder
	if err := deps.ActivityService.Subscribe(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeActivity, err)
	}
	slog.Info(LogMsgActivityRecorderSubscribed)

	return nil
}
