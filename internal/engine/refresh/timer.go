// Package refresh implements the per-domain background refresh timer.
package refresh

import (
	"context"
	"sync"
	"time"

	"go.seclens.dev/seclens/internal/core/domain"
	"go.seclens.dev/seclens/internal/core/ports"
	"go.trai.ch/zerr"
)

// RefreshFunc runs one refresh cycle for the domain and returns the fresh
// tree, or nil when the refresh produced no servable data.
type RefreshFunc func(ctx context.Context, projectID string) (*domain.Node, error)

// ClearFunc removes the domain's cache entry for a project. The timer
// never builds cache keys itself; the owning manager supplies the key
// convention through this hook.
type ClearFunc func(ctx context.Context, projectID string) error

// Timer is the repeating background refresh coordinator for one domain.
// It is an explicit resource owned by the domain's cache manager and torn
// down at disposal; there is exactly one per domain.
type Timer struct {
	mode     domain.Mode
	command  string
	settings ports.SettingsStore
	logger   ports.Logger
	notifier ports.Notifier
	refresh  RefreshFunc
	clear    ClearFunc

	mu        sync.Mutex
	ticker    *time.Ticker
	stopCh    chan struct{}
	projectID string
}

// NewTimer creates a stopped Timer for the given domain. command is the
// notification pushed to the UI after a successful cycle.
func NewTimer(
	mode domain.Mode,
	command string,
	settings ports.SettingsStore,
	logger ports.Logger,
	notifier ports.Notifier,
	refresh RefreshFunc,
	clear ClearFunc,
) *Timer {
	return &Timer{
		mode:     mode,
		command:  command,
		settings: settings,
		logger:   logger,
		notifier: notifier,
		refresh:  refresh,
		clear:    clear,
	}
}

// Start registers the recurring timer for projectID. The cycle length is
// read from the project record at start time; editing it later only takes
// effect through Reset. Starting an already-running timer for the same
// project is a no-op; for a different project it is a caller error.
func (t *Timer) Start(ctx context.Context, projectID string) error {
	if running, err := t.registered(projectID); running || err != nil {
		return err
	}

	// The settings read happens without mu held; Stop and Running must
	// stay responsive while it is in flight.
	project, err := t.settings.ProjectByID(ctx, projectID, t.mode)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrProjectNotFound.Error()), "project_id", projectID)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Re-check: another Start may have registered while mu was released.
	if t.ticker != nil {
		if t.projectID == projectID {
			return nil
		}
		return zerr.With(domain.ErrTimerAlreadyRunning, "project_id", t.projectID)
	}

	t.ticker = time.NewTicker(project.RefreshInterval())
	t.stopCh = make(chan struct{})
	t.projectID = projectID

	go t.run(ctx, t.ticker, t.stopCh, projectID)
	return nil
}

// registered reports whether a timer already holds the registration.
func (t *Timer) registered(projectID string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ticker == nil {
		return false, nil
	}
	if t.projectID == projectID {
		return true, nil
	}
	return true, zerr.With(domain.ErrTimerAlreadyRunning, "project_id", t.projectID)
}

// Stop cancels the recurring timer. Idempotent; an in-flight refresh
// already triggered by a previous tick is not cancelled and its result
// still lands in the cache.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

// Reset stops the timer, clears the domain's cache entry for projectID
// and starts again, picking up a changed refresh cycle immediately.
func (t *Timer) Reset(ctx context.Context, projectID string) error {
	t.Stop()
	if err := t.clear(ctx, projectID); err != nil {
		return zerr.Wrap(err, "failed to clear cache entry on reset")
	}
	return t.Start(ctx, projectID)
}

// Running reports whether a timer is currently registered.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ticker != nil
}

// ProjectID returns the project the timer is bound to, empty when stopped.
func (t *Timer) ProjectID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.projectID
}

// stopLocked must be called with mu held.
func (t *Timer) stopLocked() {
	if t.ticker == nil {
		return
	}
	t.ticker.Stop()
	close(t.stopCh)
	t.ticker = nil
	t.stopCh = nil
	t.projectID = ""
}

func (t *Timer) run(ctx context.Context, ticker *time.Ticker, stop chan struct{}, projectID string) {
	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			t.stopIfCurrent(stop)
			return
		case <-ticker.C:
			t.tick(ctx, projectID)
		}
	}
}

// stopIfCurrent tears the timer down only if it still owns the given stop
// channel; a Stop/Start pair may have replaced the registration since.
func (t *Timer) stopIfCurrent(stop chan struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopCh == stop {
		t.stopLocked()
	}
}

// tick runs one refresh cycle. Failures are logged and surfaced as a soft
// notification; they never cancel the timer and never escape the callback.
func (t *Timer) tick(ctx context.Context, projectID string) {
	started := time.Now()

	// Re-resolve the project record on every cycle; it may have changed
	// since the timer started.
	if _, err := t.settings.ProjectByID(ctx, projectID, t.mode); err != nil {
		t.logger.Error(zerr.Wrap(err, "background refresh skipped"))
		return
	}

	node, err := t.refresh(ctx, projectID)
	if err != nil {
		t.logger.Error(zerr.Wrap(err, "background refresh failed"))
		t.notifier.ShowInfo("failed to refresh " + string(t.mode) + " results")
		return
	}
	if node == nil {
		return
	}

	t.notifier.Post(ctx, ports.Message{Command: t.command, Data: node})
	t.logger.Info("background refresh cycle finished",
		"mode", string(t.mode),
		"project_id", projectID,
		"started", started.Format(time.RFC3339),
		"duration", time.Since(started).String(),
		"outcome", "success",
	)
}
