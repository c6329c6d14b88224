package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/daniel06264831/menuia/internal/adapters/out/memory"
	"github.com/daniel06264831/menuia/internal/core/application/usecases/commands"
	"github.com/daniel06264831/menuia/internal/core/domain/model/driver"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockRetryDispatcher struct{ mock.Mock }

func (m *MockRetryDispatcher) RetryDispatch(ctx context.Context, orderID kernel.UUID) error {
	return m.Called(ctx, orderID).Error(0)
}

type driverUoWFactoryFunc func() commands.DriverUoW

func (f driverUoWFactoryFunc) Create() commands.DriverUoW {
	return f()
}

func TestDispatchRetryJob_RunOnceRetriesDueOrders(t *testing.T) {
	ctx := context.Background()
	queue := jobs.NewRetryQueue()
	dispatcher := &MockRetryDispatcher{}

	failing, ok, notYet := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	queue.Schedule(failing, time.Now().Add(-2*time.Minute))
	queue.Schedule(ok, time.Now().Add(-time.Minute))
	queue.Schedule(notYet, time.Now().Add(time.Hour))

	dispatcher.On("RetryDispatch", ctx, failing).Return(errors.New("store down")).Once()
	dispatcher.On("RetryDispatch", ctx, ok).Return(nil).Once()

	job := jobs.NewDispatchRetryJob(queue, dispatcher, discardLogger())
	job.RunOnce(ctx)

	dispatcher.AssertExpectations(t)
	assert.Equal(t, 1, queue.Len(), "a failed retry is not rescheduled")
}

func TestDispatchRetryJob_StartStop(t *testing.T) {
	job := jobs.NewDispatchRetryJob(jobs.NewRetryQueue(), &MockRetryDispatcher{}, discardLogger())
	require.NoError(t, job.Start())
	job.Stop()
}

func TestPresenceSweepJob_RunOnceTurnsSilentDriversOffline(t *testing.T) {
	ctx := context.Background()
	uows := memory.NewUnitOfWorkFactory(memory.NewStore(), nil)
	repo := uows.Create().DriverRepository()

	fresh, err := driver.NewDriver(kernel.NewUUID(), "Luis", "4431111111", "hash", "", time.Now())
	require.NoError(t, err)
	silent, err := driver.NewDriver(kernel.NewUUID(), "Eva", "4432222222", "hash", "", time.Now())
	require.NoError(t, err)

	for _, d := range []*driver.Driver{fresh, silent} {
		require.NoError(t, repo.Add(ctx, d))
		require.NoError(t, repo.SetPresence(ctx, d.ID(), driver.PresenceOnline))
	}
	require.NoError(t, repo.UpdateLocation(ctx, fresh.ID(), kernel.MustNewGeoPoint(20.0, -100.0), time.Now()))

	handler := commands.NewSweepStalePresenceCommandHandler(driverUoWFactoryFunc(func() commands.DriverUoW {
		return uows.Create()
	}))
	job := jobs.NewPresenceSweepJob(handler, 30*time.Minute, discardLogger())
	job.RunOnce(ctx)

	got, err := repo.Get(ctx, fresh.ID())
	require.NoError(t, err)
	assert.Equal(t, driver.PresenceOnline, got.Presence())

	got, err = repo.Get(ctx, silent.ID())
	require.NoError(t, err)
	assert.Equal(t, driver.PresenceOffline, got.Presence())
}

func TestJobManager_StartAllStopAll(t *testing.T) {
	uows := memory.NewUnitOfWorkFactory(memory.NewStore(), nil)
	handler := commands.NewSweepStalePresenceCommandHandler(driverUoWFactoryFunc(func() commands.DriverUoW {
		return uows.Create()
	}))

	manager := jobs.NewJobManager(jobs.NewRetryQueue(), &MockRetryDispatcher{}, handler, 30*time.Minute, discardLogger())
	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
