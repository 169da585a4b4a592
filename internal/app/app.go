// Package app implements the application layer for seclens.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.seclens.dev/seclens/internal/adapters/notifier"
	"go.seclens.dev/seclens/internal/adapters/settings"
	"go.seclens.dev/seclens/internal/core/domain"
	"go.seclens.dev/seclens/internal/core/ports"
	"go.seclens.dev/seclens/internal/engine/assesscache"
	"go.seclens.dev/seclens/internal/engine/interlock"
	"go.seclens.dev/seclens/internal/engine/scancache"
)

// App coordinates the two domain cache managers behind the single
// active-domain slot. Every public entry point claims the slot for its
// domain before touching the manager, so callers can never interleave
// scan and assess reads against the shared cache.
type App struct {
	scan     *scancache.Manager
	assess   *assesscache.Manager
	lock     *interlock.Interlock
	settings *settings.Store
	console  *notifier.Console
	logger   ports.Logger

	workspace string
}

// New creates the App and binds each domain's teardown to the interlock.
func New(
	scan *scancache.Manager,
	assess *assesscache.Manager,
	lock *interlock.Interlock,
	store *settings.Store,
	console *notifier.Console,
	logger ports.Logger,
) *App {
	a := &App{
		scan:     scan,
		assess:   assess,
		lock:     lock,
		settings: store,
		console:  console,
		logger:   logger,
	}

	lock.Bind(domain.ModeScan, a.teardown(domain.ModeScan))
	lock.Bind(domain.ModeAssess, a.teardown(domain.ModeAssess))
	return a
}

// teardown releases one domain's live state when the slot is taken away:
// stop its timer, drop its cache and tell the UI to clear its view.
func (a *App) teardown(mode domain.Mode) interlock.Teardown {
	return func(ctx context.Context) error {
		switch mode {
		case domain.ModeScan:
			a.scan.Dispose(ctx)
		case domain.ModeAssess:
			a.assess.Dispose(ctx)
		}
		a.console.Post(ctx, ports.Message{Command: ports.CommandClearState, Data: string(mode)})
		return nil
	}
}

// SetWorkspace sets the workspace folder name used to resolve projects.
func (a *App) SetWorkspace(name string) {
	a.workspace = name
	a.scan.SetWorkspace(name)
	a.assess.SetWorkspace(name)
}

// SetConfigPath points the settings store at a different config file.
func (a *App) SetConfigPath(path string) {
	a.settings.SetPath(path)
}

// ActiveMode returns the domain currently holding the slot.
func (a *App) ActiveMode() domain.Mode {
	return a.lock.Active()
}

// SwitchMode claims the active-domain slot for mode.
func (a *App) SwitchMode(ctx context.Context, mode domain.Mode) error {
	return a.lock.SwitchTo(ctx, mode)
}

// ScanResults serves the scan result tree, refreshing on a miss.
func (a *App) ScanResults(ctx context.Context) domain.Result[*domain.Node] {
	if err := a.lock.SwitchTo(ctx, domain.ModeScan); err != nil {
		return domain.Fail[*domain.Node](err)
	}
	return a.scan.GetData(ctx)
}

// AssessResults serves the filtered vulnerability tree, refreshing on a
// miss.
func (a *App) AssessResults(ctx context.Context) domain.Result[*domain.Node] {
	if err := a.lock.SwitchTo(ctx, domain.ModeAssess); err != nil {
		return domain.Fail[*domain.Node](err)
	}
	return a.assess.GetData(ctx)
}

// Libraries serves the library result tree for the assess application.
func (a *App) Libraries(ctx context.Context) domain.Result[*domain.Node] {
	if err := a.lock.SwitchTo(ctx, domain.ModeAssess); err != nil {
		return domain.Fail[*domain.Node](err)
	}
	return a.assess.GetLibraries(ctx)
}

// Advice serves remediation advice for one scan.
func (a *App) Advice(ctx context.Context, scanID string) domain.Result[string] {
	if err := a.lock.SwitchTo(ctx, domain.ModeScan); err != nil {
		return domain.Fail[string](err)
	}
	return a.scan.GetAdvice(ctx, scanID)
}

// Refresh forces a synchronous refresh of the active domain's tree and
// pushes the fresh result to the UI the way a timer tick would.
func (a *App) Refresh(ctx context.Context, mode domain.Mode) domain.Result[*domain.Node] {
	if err := a.lock.SwitchTo(ctx, mode); err != nil {
		return domain.Fail[*domain.Node](err)
	}

	project, err := a.settings.ProjectForWorkspace(ctx, a.workspace, mode)
	if err != nil {
		return domain.Fail[*domain.Node](domain.ErrProjectNotFound)
	}

	var res domain.Result[*domain.Node]
	command := ports.CommandScanResults
	if mode == domain.ModeAssess {
		res = a.assess.Refresh(ctx, project.ProjectID)
		command = ports.CommandAssessResults
	} else {
		res = a.scan.Refresh(ctx, project.ProjectID)
	}

	if !res.Failed() && res.Data != nil {
		a.console.Post(ctx, ports.Message{Command: command, Data: res.Data})
	}
	return res
}

// Watch claims the slot for mode, populates the cache so the background
// timer is running, then streams pushed UI messages to out until the
// context is cancelled.
func (a *App) Watch(ctx context.Context, mode domain.Mode, out io.Writer) error {
	var res domain.Result[*domain.Node]
	if mode == domain.ModeAssess {
		res = a.AssessResults(ctx)
	} else {
		res = a.ScanResults(ctx)
	}
	if res.Failed() {
		return res.Err()
	}
	if err := writeMessage(out, ports.Message{Command: commandFor(mode), Data: res.Data}); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-a.console.Messages():
			if err := writeMessage(out, msg); err != nil {
				return err
			}
		}
	}
}

// MarkAs applies a status change to the given traces.
func (a *App) MarkAs(ctx context.Context, mark domain.Mark) domain.Result[*domain.Node] {
	if err := a.lock.SwitchTo(ctx, domain.ModeAssess); err != nil {
		return domain.Fail[*domain.Node](err)
	}
	return a.assess.UpdateMarkAs(ctx, mark)
}

// Tag adds and removes tags on the given traces.
func (a *App) Tag(ctx context.Context, traceIDs, add, remove []string) domain.Result[*domain.Node] {
	if err := a.lock.SwitchTo(ctx, domain.ModeAssess); err != nil {
		return domain.Fail[*domain.Node](err)
	}
	return a.assess.UpdateTags(ctx, traceIDs, add, remove)
}

// TagLibrary adds and removes tags on one library hash.
func (a *App) TagLibrary(ctx context.Context, hashID string, unmapped bool, add, remove []string) domain.Result[*domain.Node] {
	if err := a.lock.SwitchTo(ctx, domain.ModeAssess); err != nil {
		return domain.Fail[*domain.Node](err)
	}
	return a.assess.UpdateLibraryTags(ctx, hashID, unmapped, add, remove)
}

// TraceDetail refreshes one trace's detail inside the cached tree.
func (a *App) TraceDetail(ctx context.Context, traceID string) domain.Result[*domain.Node] {
	if err := a.lock.SwitchTo(ctx, domain.ModeAssess); err != nil {
		return domain.Fail[*domain.Node](err)
	}
	return a.assess.UpdateTraceVulnerabilities(ctx, traceID)
}

// CVEOverview enriches the cached library tree with one CVE's overview.
func (a *App) CVEOverview(ctx context.Context, cveID string) domain.Result[*domain.Node] {
	if err := a.lock.SwitchTo(ctx, domain.ModeAssess); err != nil {
		return domain.Fail[*domain.Node](err)
	}
	return a.assess.UpdateCVEOverview(ctx, cveID)
}

// LibraryUsage enriches the cached library tree with one hash's runtime
// usage.
func (a *App) LibraryUsage(ctx context.Context, hashID string, unmapped bool) domain.Result[*domain.Node] {
	if err := a.lock.SwitchTo(ctx, domain.ModeAssess); err != nil {
		return domain.Fail[*domain.Node](err)
	}
	return a.assess.UpdateUsage(ctx, hashID, unmapped)
}

// Dispose releases the active domain and stops both managers. Called once
// at shutdown.
func (a *App) Dispose(ctx context.Context) {
	a.lock.Release(ctx)
	a.scan.Dispose(ctx)
	a.assess.Dispose(ctx)
}

func commandFor(mode domain.Mode) string {
	if mode == domain.ModeAssess {
		return ports.CommandAssessResults
	}
	return ports.CommandScanResults
}

func writeMessage(out io.Writer, msg ports.Message) error {
	payload, err := json.Marshal(msg.Data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s %s\n", msg.Command, payload)
	return err
}
