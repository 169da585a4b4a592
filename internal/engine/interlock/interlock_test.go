package interlock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.seclens.dev/seclens/internal/core/domain"
	"go.seclens.dev/seclens/internal/core/ports/mocks"
	"go.seclens.dev/seclens/internal/engine/interlock"
	"go.uber.org/mock/gomock"
)

func newInterlock(t *testing.T, ctrl *gomock.Controller) (*interlock.Interlock, *mocks.MockNotifier) {
	t.Helper()
	notifier := mocks.NewMockNotifier(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Error(gomock.Any()).AnyTimes()
	return interlock.New(notifier, logger), notifier
}

func TestSwitchTo_FreeSlotNeedsNoConfirmation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	il, _ := newInterlock(t, ctrl)

	require.NoError(t, il.SwitchTo(t.Context(), domain.ModeScan))
	assert.Equal(t, domain.ModeScan, il.Active())
}

func TestSwitchTo_SameModeIsSilent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	il, _ := newInterlock(t, ctrl)
	require.NoError(t, il.SwitchTo(t.Context(), domain.ModeAssess))

	// No Confirm expectation registered: a repeat claim must not prompt.
	require.NoError(t, il.SwitchTo(t.Context(), domain.ModeAssess))
	assert.Equal(t, domain.ModeAssess, il.Active())
}

func TestSwitchTo_ConfirmedSwitchTearsDownLoser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	il, notifier := newInterlock(t, ctrl)
	notifier.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(true)

	var tornDown bool
	il.Bind(domain.ModeScan, func(context.Context) error {
		tornDown = true
		return nil
	})

	require.NoError(t, il.SwitchTo(t.Context(), domain.ModeScan))
	require.NoError(t, il.SwitchTo(t.Context(), domain.ModeAssess))

	assert.True(t, tornDown, "the losing domain must be torn down before the slot flips")
	assert.Equal(t, domain.ModeAssess, il.Active())
}

func TestSwitchTo_DeclinedSwitchLeavesStateUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	il, notifier := newInterlock(t, ctrl)
	notifier.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(false)

	var tornDown bool
	il.Bind(domain.ModeScan, func(context.Context) error {
		tornDown = true
		return nil
	})

	require.NoError(t, il.SwitchTo(t.Context(), domain.ModeScan))
	err := il.SwitchTo(t.Context(), domain.ModeAssess)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrModeSwitchDeclined))
	assert.False(t, tornDown)
	assert.Equal(t, domain.ModeScan, il.Active())
}

func TestSwitchTo_TeardownFailureAbortsSwitch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	il, notifier := newInterlock(t, ctrl)
	notifier.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(true).Times(2)

	teardownErr := errors.New("cache unavailable")
	var attempts int
	il.Bind(domain.ModeScan, func(context.Context) error {
		attempts++
		if attempts == 1 {
			return teardownErr
		}
		return nil
	})

	require.NoError(t, il.SwitchTo(t.Context(), domain.ModeScan))

	err := il.SwitchTo(t.Context(), domain.ModeAssess)
	require.Error(t, err)
	assert.True(t, errors.Is(err, teardownErr))
	assert.Equal(t, domain.ModeScan, il.Active(), "the slot stays with its holder until teardown completes")

	// A retry whose teardown succeeds flips the slot.
	require.NoError(t, il.SwitchTo(t.Context(), domain.ModeAssess))
	assert.Equal(t, domain.ModeAssess, il.Active())
}

func TestSwitchTo_RejectsInvalidTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	il, _ := newInterlock(t, ctrl)

	assert.Error(t, il.SwitchTo(t.Context(), domain.ModeNone))
	assert.Error(t, il.SwitchTo(t.Context(), domain.Mode("other")))
	assert.Equal(t, domain.ModeNone, il.Active())
}

func TestRelease_FreesSlotAndRunsTeardown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	il, _ := newInterlock(t, ctrl)

	var tornDown bool
	il.Bind(domain.ModeAssess, func(context.Context) error {
		tornDown = true
		return nil
	})

	require.NoError(t, il.SwitchTo(t.Context(), domain.ModeAssess))
	il.Release(t.Context())

	assert.True(t, tornDown)
	assert.Equal(t, domain.ModeNone, il.Active())
}
