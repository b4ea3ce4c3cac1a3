package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ironquest/IronQuest_Go/internal/quest"
	"github.com/ironquest/IronQuest_Go/internal/repository"
	"github.com/ironquest/IronQuest_Go/internal/worker"
)

// milestoneJob ensures one user's milestone quests exist.
type milestoneJob struct {
	userID string
	quests quest.Service
}

func (j milestoneJob) Process(ctx context.Context) error {
	return j.quests.EnsureMilestoneQuests(ctx, j.userID)
}

// RunMilestoneBackfill enqueues a milestone quest check for every known
// user onto the pool. New milestone templates added between releases get
// instantiated for existing users this way; the work runs in the
// background and does not block startup.
func RunMilestoneBackfill(ctx context.Context, users repository.User, quests quest.Service, pool *worker.Pool) error {
	userIDs, err := users.ListUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedListUsers, err)
	}

	slog.Info(LogMsgMilestoneBackfillStarted, "users", len(userIDs))
	for _, id := range userIDs {
		pool.Enqueue(milestoneJob{userID: id, quests: quests})
	}
	slog.Info(LogMsgMilestoneBackfillFinished, "enqueued", len(userIDs))
	return nil
}
