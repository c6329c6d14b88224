package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// RetryDispatcher re-runs dispatch for one order.
type RetryDispatcher interface {
	RetryDispatch(ctx context.Context, orderID kernel.UUID) error
}

// DispatchRetryJob drains the retry queue every second and hands each due
// order back to the dispatcher.
type DispatchRetryJob struct {
	queue      *RetryQueue
	dispatcher RetryDispatcher
	now        func() time.Time
	cron       *cron.Cron
	logger     *slog.Logger
}

func NewDispatchRetryJob(queue *RetryQueue, dispatcher RetryDispatcher, logger *slog.Logger) *DispatchRetryJob {
	return &DispatchRetryJob{
		queue:      queue,
		dispatcher: dispatcher,
		now:        time.Now,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "dispatch_retry_job"),
	}
}

// Start begins draining the queue every second.
func (j *DispatchRetryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch retry job started (running every second)")
	return nil
}

// RunOnce retries every order that is due now. Failures are logged and the
// order is not rescheduled.
func (j *DispatchRetryJob) RunOnce(ctx context.Context) {
	for _, id := range j.queue.Due(j.now()) {
		if err := j.dispatcher.RetryDispatch(ctx, id); err != nil {
			j.logger.ErrorContext(ctx, "Dispatch retry failed", "orderId", id.String(), "error", err)
		}
	}
}

func (j *DispatchRetryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Dispatch retry job stopped")
}
