package bootstrap

import (
	"context"
	"log/slog"

	"github.com/ironquest/IronQuest_Go/internal/scheduler"
	"github.com/ironquest/IronQuest_Go/internal/server"
	"github.com/ironquest/IronQuest_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server            *server.Server
	DailyResetWorker  *worker.DailyResetWorker
	WeeklyResetWorker *worker.WeeklyResetWorker
	Scheduler         *scheduler.Scheduler
	TaskPool          *worker.Pool
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down components in the correct order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduled workers and the scheduler (cancel pending timers)
// 3. Task pool (drain queued jobs)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	// Shutdown server first (stop accepting new requests)
	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	// Shutdown workers to cancel pending timers
	if components.DailyResetWorker != nil {
		if err := components.DailyResetWorker.Shutdown(ctx); err != nil {
			slog.Error(WorkerNameDailyReset+LogMsgWorkerShutdownFailed, "error", err)
		}
	}

	if components.WeeklyResetWorker != nil {
		if err := components.WeeklyResetWorker.Shutdown(ctx); err != nil {
			slog.Error(WorkerNameWeeklyReset+LogMsgWorkerShutdownFailed, "error", err)
		}
	}

	// Stop the scheduler before the pool so no new jobs get enqueued
	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}

	// Stop the task pool last so queued jobs finish
	if components.TaskPool != nil {
		components.TaskPool.Stop()
	}

	slog.Info(LogMsgServerStopped)
}
