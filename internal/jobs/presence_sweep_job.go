package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/daniel06264831/menuia/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PresenceSweepJob turns online drivers offline once they stop reporting
// their position.
type PresenceSweepJob struct {
	handler    commands.SweepStalePresenceCommandHandler
	staleAfter time.Duration
	now        func() time.Time
	cron       *cron.Cron
	logger     *slog.Logger
}

func NewPresenceSweepJob(
	handler commands.SweepStalePresenceCommandHandler,
	staleAfter time.Duration,
	logger *slog.Logger,
) *PresenceSweepJob {
	return &PresenceSweepJob{
		handler:    handler,
		staleAfter: staleAfter,
		now:        time.Now,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "presence_sweep_job"),
	}
}

// Start schedules the sweep at the top of every minute.
func (j *PresenceSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Presence sweep job started (running every minute)", "staleAfter", j.staleAfter)
	return nil
}

func (j *PresenceSweepJob) RunOnce(ctx context.Context) {
	cmd, err := commands.NewSweepStalePresenceCommand(j.now(), j.staleAfter)
	if err != nil {
		j.logger.ErrorContext(ctx, "Presence sweep misconfigured", "error", err)
		return
	}

	ids, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Presence sweep failed", "error", err)
		return
	}

	if len(ids) > 0 {
		j.logger.InfoContext(ctx, "Stale drivers set offline", "count", len(ids))
	}
}

func (j *PresenceSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Presence sweep job stopped")
}
