package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/daniel06264831/menuia/internal/core/application/usecases/commands"
)

// JobManager starts and stops every scheduled job together.
type JobManager struct {
	dispatchRetryJob *DispatchRetryJob
	presenceSweepJob *PresenceSweepJob
}

func NewJobManager(
	queue *RetryQueue,
	dispatcher RetryDispatcher,
	sweepHandler commands.SweepStalePresenceCommandHandler,
	staleAfter time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		dispatchRetryJob: NewDispatchRetryJob(queue, dispatcher, logger),
		presenceSweepJob: NewPresenceSweepJob(sweepHandler, staleAfter, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.dispatchRetryJob.Start(); err != nil {
		return fmt.Errorf("failed to start dispatch retry job: %w", err)
	}

	if err := jm.presenceSweepJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.dispatchRetryJob.Stop()
		return fmt.Errorf("failed to start presence sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ticks to finish.
func (jm *JobManager) StopAll() {
	jm.presenceSweepJob.Stop()
	jm.dispatchRetryJob.Stop()
}
