// Package interlock guards the single active-domain slot shared by the
// scan and assess products.
package interlock

import (
	"context"
	"sync"

	"go.seclens.dev/seclens/internal/core/domain"
	"go.seclens.dev/seclens/internal/core/ports"
	"go.trai.ch/zerr"
)

// Teardown releases a domain's live resources when the user switches away
// from it: stop its timer, drop its cache entries, clear its view state.
type Teardown func(ctx context.Context) error

// Interlock holds the workspace's active-domain slot. Both domains share
// one cache and one editor surface, so at most one may be live; switching
// requires explicit user confirmation and tears the losing domain down.
type Interlock struct {
	notifier ports.Notifier
	logger   ports.Logger

	mu        sync.Mutex
	slot      domain.Mode
	teardowns map[domain.Mode]Teardown
}

// New creates an Interlock with the slot unoccupied.
func New(notifier ports.Notifier, logger ports.Logger) *Interlock {
	return &Interlock{
		notifier:  notifier,
		logger:    logger,
		slot:      domain.ModeNone,
		teardowns: make(map[domain.Mode]Teardown),
	}
}

// Bind registers the teardown run when the slot is taken away from mode.
func (i *Interlock) Bind(mode domain.Mode, td Teardown) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.teardowns[mode] = td
}

// Active returns the domain currently holding the slot.
func (i *Interlock) Active() domain.Mode {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.slot
}

// SwitchTo claims the slot for target. Claiming a free slot or the mode
// already held is silent. Taking the slot from the other domain asks the
// user first; on decline the slot is left exactly as it was and
// domain.ErrModeSwitchDeclined is returned. On confirmation the losing
// domain's teardown runs to completion before the slot flips; a failed
// teardown aborts the switch and the slot stays with its holder.
func (i *Interlock) SwitchTo(ctx context.Context, target domain.Mode) error {
	if !target.Valid() || target == domain.ModeNone {
		return zerr.With(zerr.New("invalid target mode"), "mode", string(target))
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.slot == target {
		return nil
	}
	if i.slot == domain.ModeNone {
		i.slot = target
		return nil
	}

	prompt := "Switch from " + string(i.slot) + " to " + string(target) +
		"? Cached " + string(i.slot) + " results will be discarded."
	if !i.notifier.Confirm(ctx, prompt) {
		return zerr.With(domain.ErrModeSwitchDeclined, "active", string(i.slot))
	}

	if td, ok := i.teardowns[i.slot]; ok {
		if err := td(ctx); err != nil {
			// A half-torn-down domain keeps the slot; flipping anyway would
			// leave its live state sharing the cache with the winner.
			wrapped := zerr.Wrap(err, "teardown failed, mode switch aborted")
			i.logger.Error(wrapped)
			return wrapped
		}
	}
	i.slot = target
	return nil
}

// Release frees the slot without confirmation, used at deactivation.
func (i *Interlock) Release(ctx context.Context) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.slot == domain.ModeNone {
		return
	}
	if td, ok := i.teardowns[i.slot]; ok {
		if err := td(ctx); err != nil {
			i.logger.Error(zerr.Wrap(err, "teardown failed during release"))
		}
	}
	i.slot = domain.ModeNone
}
