package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/ironquest/IronQuest_Go/internal/duel"
	"github.com/ironquest/IronQuest_Go/internal/scheduler"
)

// DuelSweepInterval is how often overdue duels are swept. Expiry is
// settled lazily on reads too, so the sweep only needs to catch duels
// nobody looks at.
const DuelSweepInterval = 5 * time.Minute

// duelSweepJob settles every duel past its deadline.
type duelSweepJob struct {
	duels duel.Service
}

func (j duelSweepJob) Process(ctx context.Context) error {
	settled, err := j.duels.SettleExpired(ctx)
	if err != nil {
		return err
	}
	if settled > 0 {
		slog.Info("Duel sweep settled overdue duels", "settled", settled)
	}
	return nil
}

// ScheduleDuelSweep registers the recurring duel expiry sweep.
func ScheduleDuelSweep(sched *scheduler.Scheduler, duels duel.Service) {
	sched.Schedule(DuelSweepInterval, duelSweepJob{duels: duels})
}
