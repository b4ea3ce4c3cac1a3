package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ironquest/IronQuest_Go/internal/logger"
	"github.com/ironquest/IronQuest_Go/internal/quest"
)

// WeeklyResetWorker re-deals every user's weekly quests at Monday 00:00 UTC
type WeeklyResetWorker struct {
	questService quest.Service
	timer        *time.Timer
	shutdown     chan struct{}
	wg           sync.WaitGroup
	mu           sync.Mutex
}

func NewWeeklyResetWorker(questService quest.Service) *WeeklyResetWorker {
	return &WeeklyResetWorker{
		questService: questService,
		shutdown:     make(chan struct{}),
	}
}

func (w *WeeklyResetWorker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.scheduleNext()
	}()
}

func (w *WeeklyResetWorker) scheduleNext() {
	duration := timeUntilNextWeeklyReset(time.Now().UTC())

	log := logger.FromContext(context.Background())
	log.Info(LogMsgWeeklyResetScheduled,
		"next_reset", time.Now().UTC().Add(duration).Format(time.RFC3339),
		"duration", duration.String())

	w.mu.Lock()
	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}
		w.wg.Add(1)
		go w.executeReset()
	})
	w.mu.Unlock()
}

func (w *WeeklyResetWorker) executeReset() {
	defer w.wg.Done()

	ctx := context.Background()
	log := logger.FromContext(ctx)

	log.Info(LogMsgWeeklyResetStarting)

	if err := w.questService.RefreshAllWeekly(ctx, time.Now().UTC()); err != nil {
		log.Error(LogMsgWeeklyResetFailed, "error", err)
	} else {
		log.Info(LogMsgWeeklyResetCompleted)
	}

	// Schedule next reset
	w.scheduleNext()
}

// timeUntilNextWeeklyReset calculates time until next Monday 00:00 UTC
func timeUntilNextWeeklyReset(now time.Time) time.Duration {
	now = now.UTC()

	// Monday is day 1 in Go's time.Weekday
	daysUntilMonday := (8 - int(now.Weekday())) % 7
	if daysUntilMonday == 0 {
		// It's Monday: past midnight (or exactly midnight), go to next Monday
		daysUntilMonday = 7
	}

	nextReset := time.Date(
		now.Year(), now.Month(), now.Day(),
		0, 0, 0, 0, time.UTC,
	).AddDate(0, 0, daysUntilMonday)

	return nextReset.Sub(now)
}

func (w *WeeklyResetWorker) Shutdown(ctx context.Context) error {
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
