package refresh_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.seclens.dev/seclens/internal/core/domain"
	"go.seclens.dev/seclens/internal/core/ports"
	"go.seclens.dev/seclens/internal/core/ports/mocks"
	"go.seclens.dev/seclens/internal/engine/refresh"
	"go.uber.org/mock/gomock"
)

func scanProject() domain.Project {
	return domain.Project{
		ProjectID:      "12345",
		ProjectName:    "myapp",
		Source:         domain.ModeScan,
		RefreshMinutes: 10,
	}
}

func noopClear(context.Context, string) error { return nil }

func TestTimer_TickRefreshesAndNotifies(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		settings := mocks.NewMockSettingsStore(ctrl)
		settings.EXPECT().ProjectByID(gomock.Any(), "12345", domain.ModeScan).
			Return(scanProject(), nil).AnyTimes()

		logger := mocks.NewMockLogger(ctrl)
		logger.EXPECT().Info(gomock.Any(), gomock.Any()).Times(1)

		notifier := mocks.NewMockNotifier(ctrl)
		notifier.EXPECT().
			Post(gomock.Any(), gomock.AssignableToTypeOf(ports.Message{})).
			Do(func(_ context.Context, msg ports.Message) {
				assert.Equal(t, ports.CommandScanResults, msg.Command)
			}).
			Times(1)

		var refreshCalls atomic.Int32
		timer := refresh.NewTimer(domain.ModeScan, ports.CommandScanResults, settings, logger, notifier,
			func(ctx context.Context, projectID string) (*domain.Node, error) {
				refreshCalls.Add(1)
				return &domain.Node{Label: "myapp"}, nil
			}, noopClear)

		require.NoError(t, timer.Start(t.Context(), "12345"))
		assert.True(t, timer.Running())

		// minute: "10" schedules a tick every 600000 ms.
		time.Sleep(600000 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, int32(1), refreshCalls.Load())
		timer.Stop()
	})
}

func TestTimer_StartIsIdempotent(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		settings := mocks.NewMockSettingsStore(ctrl)
		settings.EXPECT().ProjectByID(gomock.Any(), "12345", domain.ModeScan).
			Return(scanProject(), nil).AnyTimes()

		logger := mocks.NewMockLogger(ctrl)
		logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
		notifier := mocks.NewMockNotifier(ctrl)
		notifier.EXPECT().Post(gomock.Any(), gomock.Any()).AnyTimes()

		var refreshCalls atomic.Int32
		timer := refresh.NewTimer(domain.ModeScan, ports.CommandScanResults, settings, logger, notifier,
			func(ctx context.Context, projectID string) (*domain.Node, error) {
				refreshCalls.Add(1)
				return &domain.Node{}, nil
			}, noopClear)

		require.NoError(t, timer.Start(t.Context(), "12345"))
		// Second start without an intervening stop registers nothing new.
		require.NoError(t, timer.Start(t.Context(), "12345"))

		time.Sleep(10 * time.Minute)
		synctest.Wait()

		assert.Equal(t, int32(1), refreshCalls.Load(), "exactly one timer must be active")
		timer.Stop()
	})
}

func TestTimer_StartForOtherProjectWhileRunning(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		settings := mocks.NewMockSettingsStore(ctrl)
		settings.EXPECT().ProjectByID(gomock.Any(), "12345", domain.ModeScan).
			Return(scanProject(), nil).AnyTimes()

		timer := refresh.NewTimer(domain.ModeScan, ports.CommandScanResults, settings,
			mocks.NewMockLogger(ctrl), mocks.NewMockNotifier(ctrl),
			func(context.Context, string) (*domain.Node, error) { return nil, nil }, noopClear)

		require.NoError(t, timer.Start(t.Context(), "12345"))
		err := timer.Start(t.Context(), "67890")
		assert.True(t, errors.Is(err, domain.ErrTimerAlreadyRunning))
		timer.Stop()
	})
}

func TestTimer_StartUnknownProject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	settings := mocks.NewMockSettingsStore(ctrl)
	settings.EXPECT().ProjectByID(gomock.Any(), "ghost", domain.ModeScan).
		Return(domain.Project{}, domain.ErrProjectNotFound)

	timer := refresh.NewTimer(domain.ModeScan, ports.CommandScanResults, settings,
		mocks.NewMockLogger(ctrl), mocks.NewMockNotifier(ctrl),
		func(context.Context, string) (*domain.Node, error) { return nil, nil }, noopClear)

	err := timer.Start(t.Context(), "ghost")
	require.Error(t, err)
	assert.False(t, timer.Running())
}

func TestTimer_SlowSettingsReadDoesNotBlockStop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		release := make(chan struct{})
		settings := mocks.NewMockSettingsStore(ctrl)
		settings.EXPECT().ProjectByID(gomock.Any(), "12345", domain.ModeScan).
			DoAndReturn(func(context.Context, string, domain.Mode) (domain.Project, error) {
				<-release
				return scanProject(), nil
			})

		timer := refresh.NewTimer(domain.ModeScan, ports.CommandScanResults, settings,
			mocks.NewMockLogger(ctrl), mocks.NewMockNotifier(ctrl),
			func(context.Context, string) (*domain.Node, error) { return nil, nil }, noopClear)

		go func() {
			assert.NoError(t, timer.Start(t.Context(), "12345"))
		}()
		synctest.Wait()

		// Start is parked on the settings read; Stop and Running must not
		// wait for it.
		assert.False(t, timer.Running())
		timer.Stop()

		close(release)
		synctest.Wait()
		assert.True(t, timer.Running())
		timer.Stop()
	})
}

func TestTimer_StopIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	timer := refresh.NewTimer(domain.ModeScan, ports.CommandScanResults,
		mocks.NewMockSettingsStore(ctrl), mocks.NewMockLogger(ctrl), mocks.NewMockNotifier(ctrl),
		func(context.Context, string) (*domain.Node, error) { return nil, nil }, noopClear)

	timer.Stop()
	timer.Stop()
	assert.False(t, timer.Running())
}

func TestTimer_FailedTickKeepsTimerRunning(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		settings := mocks.NewMockSettingsStore(ctrl)
		settings.EXPECT().ProjectByID(gomock.Any(), "12345", domain.ModeScan).
			Return(scanProject(), nil).AnyTimes()

		logger := mocks.NewMockLogger(ctrl)
		logger.EXPECT().Error(gomock.Any()).Times(2)

		notifier := mocks.NewMockNotifier(ctrl)
		notifier.EXPECT().ShowInfo(gomock.Any()).Times(2)

		var refreshCalls atomic.Int32
		timer := refresh.NewTimer(domain.ModeScan, ports.CommandScanResults, settings, logger, notifier,
			func(context.Context, string) (*domain.Node, error) {
				refreshCalls.Add(1)
				return nil, errors.New("upstream down")
			}, noopClear)

		require.NoError(t, timer.Start(t.Context(), "12345"))

		// Two cycles, both failing; no backoff, same cadence.
		time.Sleep(20 * time.Minute)
		synctest.Wait()

		assert.Equal(t, int32(2), refreshCalls.Load())
		assert.True(t, timer.Running())
		timer.Stop()
	})
}

func TestTimer_NilDataTickDoesNotNotify(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		settings := mocks.NewMockSettingsStore(ctrl)
		settings.EXPECT().ProjectByID(gomock.Any(), "12345", domain.ModeScan).
			Return(scanProject(), nil).AnyTimes()

		// No Post, no Info expected.
		logger := mocks.NewMockLogger(ctrl)
		notifier := mocks.NewMockNotifier(ctrl)

		timer := refresh.NewTimer(domain.ModeScan, ports.CommandScanResults, settings, logger, notifier,
			func(context.Context, string) (*domain.Node, error) { return nil, nil }, noopClear)

		require.NoError(t, timer.Start(t.Context(), "12345"))
		time.Sleep(10 * time.Minute)
		synctest.Wait()
		timer.Stop()
	})
}

func TestTimer_Reset(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		settings := mocks.NewMockSettingsStore(ctrl)
		settings.EXPECT().ProjectByID(gomock.Any(), "12345", domain.ModeScan).
			Return(scanProject(), nil).AnyTimes()

		var cleared []string
		timer := refresh.NewTimer(domain.ModeScan, ports.CommandScanResults, settings,
			mocks.NewMockLogger(ctrl), mocks.NewMockNotifier(ctrl),
			func(context.Context, string) (*domain.Node, error) { return nil, nil },
			func(_ context.Context, projectID string) error {
				cleared = append(cleared, projectID)
				return nil
			})

		require.NoError(t, timer.Start(t.Context(), "12345"))
		require.NoError(t, timer.Reset(t.Context(), "12345"))

		assert.Equal(t, []string{"12345"}, cleared)
		assert.True(t, timer.Running())
		timer.Stop()
	})
}

func TestTimer_StoppedTimerDoesNotTick(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		settings := mocks.NewMockSettingsStore(ctrl)
		settings.EXPECT().ProjectByID(gomock.Any(), "12345", domain.ModeScan).
			Return(scanProject(), nil).AnyTimes()

		var refreshCalls atomic.Int32
		timer := refresh.NewTimer(domain.ModeScan, ports.CommandScanResults, settings,
			mocks.NewMockLogger(ctrl), mocks.NewMockNotifier(ctrl),
			func(context.Context, string) (*domain.Node, error) {
				refreshCalls.Add(1)
				return nil, nil
			}, noopClear)

		require.NoError(t, timer.Start(t.Context(), "12345"))
		timer.Stop()

		time.Sleep(time.Hour)
		synctest.Wait()

		assert.Zero(t, refreshCalls.Load())
	})
}
