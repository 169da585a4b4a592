// Package scancache orchestrates cache population for the scan domain.
package scancache

import (
	"context"
	"sync"

	"go.seclens.dev/seclens/internal/core/domain"
	"go.seclens.dev/seclens/internal/core/ports"
	"go.seclens.dev/seclens/internal/engine/refresh"
	"go.seclens.dev/seclens/internal/engine/sizeguard"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Manager owns the scan domain: cache-hit passthrough, miss
// refresh-and-populate, the domain's background timer and the advice side
// cache. All public operations return the domain result envelope and never
// panic or throw.
type Manager struct {
	cache    ports.KeyValueCache
	client   ports.ScanClient
	settings ports.SettingsStore
	guard    *sizeguard.Guard
	logger   ports.Logger
	notifier ports.Notifier
	tracer   ports.Tracer
	timer    *refresh.Timer

	// group collapses concurrent miss-path refreshes for the same project
	// into a single upstream call.
	group singleflight.Group

	mu        sync.RWMutex
	workspace string
}

// New creates a Manager together with its background timer.
func New(
	cache ports.KeyValueCache,
	client ports.ScanClient,
	settings ports.SettingsStore,
	guard *sizeguard.Guard,
	logger ports.Logger,
	notifier ports.Notifier,
	tracer ports.Tracer,
) *Manager {
	m := &Manager{
		cache:    cache,
		client:   client,
		settings: settings,
		guard:    guard,
		logger:   logger,
		notifier: notifier,
		tracer:   tracer,
	}
	m.timer = refresh.NewTimer(domain.ModeScan, ports.CommandScanResults,
		settings, logger, notifier, m.refreshTree, m.clearKey)
	return m
}

// SetWorkspace sets the open workspace folder name used to resolve the
// configured project.
func (m *Manager) SetWorkspace(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workspace = name
}

func (m *Manager) currentWorkspace() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.workspace
}

// Timer exposes the domain's background refresh timer.
func (m *Manager) Timer() *refresh.Timer { return m.timer }

// Refresh fetches fresh results for projectID and stores them. Any non-200
// upstream response discards the entire cache: previously cached results
// are treated as untrustworthy rather than served stale.
func (m *Manager) Refresh(ctx context.Context, projectID string) domain.Result[*domain.Node] {
	ctx, span := m.tracer.Start(ctx, "scan.refresh")
	defer span.End()
	span.SetAttribute("project_id", projectID)

	project, err := m.settings.ProjectByID(ctx, projectID, domain.ModeScan)
	if err != nil {
		span.RecordError(err)
		return domain.Fail[*domain.Node](domain.ErrProjectNotFound)
	}

	env, err := m.client.ScanResults(ctx, project)
	if err != nil {
		span.RecordError(err)
		m.logger.Error(zerr.Wrap(err, "scan refresh failed"))
		return domain.Fail[*domain.Node](domain.ErrUpstream)
	}
	if !env.OK() {
		if resetErr := m.cache.Reset(ctx); resetErr != nil {
			m.logger.Error(resetErr)
		}
		failure := domain.ErrUpstream
		if env.Code == domain.CodeUnauthorized {
			failure = domain.ErrAuthenticationFailure
		}
		span.RecordError(failure)
		m.logger.Warn("scan refresh rejected, cache discarded",
			"project_id", projectID, "code", env.Code)
		return domain.Fail[*domain.Node](failure)
	}

	if err := m.cache.Set(ctx, domain.ScanKey(projectID), env.Report); err != nil {
		span.RecordError(err)
		m.logger.Error(err)
		return domain.Fail[*domain.Node](domain.ErrUpstream)
	}
	return domain.OK(env.Report)
}

// GetData serves the current result tree: straight from cache on a hit,
// otherwise through a synchronous refresh. The miss path stops the
// background timer, discards the cache, refreshes once (concurrent misses
// share that flight), enforces the size bound and only restarts the timer
// when a servable entry exists.
func (m *Manager) GetData(ctx context.Context) domain.Result[*domain.Node] {
	project, err := m.settings.ProjectForWorkspace(ctx, m.currentWorkspace(), domain.ModeScan)
	if err != nil {
		m.notifier.ShowError("no scan project configured for this workspace")
		return domain.Fail[*domain.Node](domain.ErrProjectNotFound)
	}
	key := domain.ScanKey(project.ProjectID)

	if value, ok, err := m.cache.Get(ctx, key); err == nil && ok {
		if node, isNode := value.(*domain.Node); isNode {
			return domain.OK(node)
		}
	}

	shared, _, _ := m.group.Do(key.String(), func() (any, error) {
		return m.populate(ctx, project), nil
	})
	res := shared.(domain.Result[*domain.Node])

	switch {
	case res.Is(domain.ErrConfigureFilter):
		m.notifier.ShowInfo("results exceed the size limit, configure a narrower filter")
	case res.Is(domain.ErrAuthenticationFailure), res.Is(domain.ErrUpstream):
		m.notifier.ShowError(res.Message)
	}
	return res
}

// populate runs the full miss path for one project.
func (m *Manager) populate(ctx context.Context, project domain.Project) domain.Result[*domain.Node] {
	key := domain.ScanKey(project.ProjectID)

	m.timer.Stop()
	if err := m.cache.Reset(ctx); err != nil {
		m.logger.Error(err)
	}

	if res := m.Refresh(ctx, project.ProjectID); res.Failed() {
		return res
	}

	if err := m.guard.Check(ctx, key); err != nil {
		// The entry is dropped and the timer stays stopped: later reads
		// must miss, not serve the oversized tree, until a narrower query
		// is retried manually.
		if delErr := m.cache.Delete(ctx, key); delErr != nil {
			m.logger.Error(delErr)
		}
		m.logger.Warn("scan results exceed size bound", "project_id", project.ProjectID)
		return domain.Fail[*domain.Node](domain.ErrConfigureFilter)
	}

	if err := m.timer.Start(ctx, project.ProjectID); err != nil {
		m.logger.Error(zerr.Wrap(err, "failed to restart background timer"))
	}

	value, ok, err := m.cache.Get(ctx, key)
	if err != nil || !ok {
		return domain.Fail[*domain.Node](domain.ErrVulnerabilityNotFound)
	}
	node, isNode := value.(*domain.Node)
	if !isNode {
		return domain.Fail[*domain.Node](domain.ErrVulnerabilityNotFound)
	}
	return domain.OK(node)
}

// GetDataOnly is the passive read used by non-blocking UI refresh paths:
// it never triggers a network call, a cache miss is the benign empty
// state.
func (m *Manager) GetDataOnly(ctx context.Context) domain.Result[*domain.Node] {
	project, err := m.settings.ProjectForWorkspace(ctx, m.currentWorkspace(), domain.ModeScan)
	if err != nil {
		return domain.Fail[*domain.Node](domain.ErrProjectNotFound)
	}

	value, ok, err := m.cache.Get(ctx, domain.ScanKey(project.ProjectID))
	if err != nil || !ok {
		return domain.Fail[*domain.Node](domain.ErrVulnerabilityNotFound)
	}
	node, isNode := value.(*domain.Node)
	if !isNode {
		return domain.Fail[*domain.Node](domain.ErrVulnerabilityNotFound)
	}
	return domain.OK(node)
}

// GetAdvice serves cached remediation advice for one scan, fetching it on
// a miss. Advice is a side cache: a failed fetch does not discard other
// entries.
func (m *Manager) GetAdvice(ctx context.Context, scanID string) domain.Result[string] {
	key := domain.AdviceKey(scanID)
	if value, ok, err := m.cache.Get(ctx, key); err == nil && ok {
		if advice, isString := value.(string); isString {
			return domain.OK(advice)
		}
	}

	project, err := m.settings.ProjectForWorkspace(ctx, m.currentWorkspace(), domain.ModeScan)
	if err != nil {
		return domain.Fail[string](domain.ErrProjectNotFound)
	}

	env, err := m.client.Advice(ctx, project, scanID)
	if err != nil {
		m.logger.Error(zerr.Wrap(err, "advice fetch failed"))
		return domain.Fail[string](domain.ErrUpstream)
	}
	if !env.OK() {
		return domain.Fail[string](domain.ErrUpstream)
	}

	if err := m.cache.Set(ctx, key, env.Advice); err != nil {
		m.logger.Error(err)
	}
	return domain.OK(env.Advice)
}

// StoreAdvice caches advice text for one scan without a fetch, used when
// the advice arrived embedded in another payload.
func (m *Manager) StoreAdvice(ctx context.Context, scanID, advice string) error {
	return m.cache.Set(ctx, domain.AdviceKey(scanID), advice)
}

// ClearProject deletes one project's entry, used on reconfiguration or
// deletion so a reused key never serves stale data.
func (m *Manager) ClearProject(ctx context.Context, projectID string) error {
	return m.cache.Delete(ctx, domain.ScanKey(projectID))
}

// clearKey is the timer's cache-clear hook.
func (m *Manager) clearKey(ctx context.Context, projectID string) error {
	return m.cache.Delete(ctx, domain.ScanKey(projectID))
}

// refreshTree adapts Refresh to the timer's refresh hook.
func (m *Manager) refreshTree(ctx context.Context, projectID string) (*domain.Node, error) {
	res := m.Refresh(ctx, projectID)
	if res.Failed() {
		return nil, res.Err()
	}
	return res.Data, nil
}

// Dispose stops the timer and clears the store. Called at deactivation.
func (m *Manager) Dispose(ctx context.Context) {
	m.timer.Stop()
	if err := m.cache.Reset(ctx); err != nil {
		m.logger.Error(err)
	}
}
