// Package assesscache orchestrates cache population and in-place result
// mutation for the assess domain.
package assesscache

import (
	"context"
	"slices"
	"sync"

	"go.seclens.dev/seclens/internal/core/domain"
	"go.seclens.dev/seclens/internal/core/ports"
	"go.seclens.dev/seclens/internal/engine/refresh"
	"go.seclens.dev/seclens/internal/engine/sizeguard"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Manager owns the assess domain: the filtered vulnerability tree, the
// library result tree and the mutation operations that patch cached trees
// after a successful remote update. Mutations are serialized so two
// concurrent updates can never clobber each other's tree write.
type Manager struct {
	cache    ports.KeyValueCache
	client   ports.AssessClient
	settings ports.SettingsStore
	guard    *sizeguard.Guard
	logger   ports.Logger
	notifier ports.Notifier
	tracer   ports.Tracer
	timer    *refresh.Timer

	group singleflight.Group

	// mutMu serializes read-patch-write cycles on cached trees.
	mutMu sync.Mutex

	mu        sync.RWMutex
	workspace string
}

// New creates a Manager together with its background timer.
func New(
	cache ports.KeyValueCache,
	client ports.AssessClient,
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
	m.timer = refresh.NewTimer(domain.ModeAssess, ports.CommandAssessResults,
		settings, logger, notifier, m.refreshTree, m.clearKey)
	return m
}

// SetWorkspace sets the open workspace folder name used to resolve the
// configured application.
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

// Refresh fetches the filtered vulnerability tree for appID and stores it.
// An archived application degrades softly: the timer is stopped and the
// user informed, nothing is discarded elsewhere. Any other non-200
// response discards the entire cache.
func (m *Manager) Refresh(ctx context.Context, appID string) domain.Result[*domain.Node] {
	ctx, span := m.tracer.Start(ctx, "assess.refresh")
	defer span.End()
	span.SetAttribute("app_id", appID)

	project, filter, err := m.resolve(ctx, appID)
	if err != nil {
		span.RecordError(err)
		return domain.Fail[*domain.Node](err)
	}

	env, err := m.client.Vulnerabilities(ctx, project, filter)
	if err != nil {
		span.RecordError(err)
		m.logger.Error(zerr.Wrap(err, "assess refresh failed"))
		return domain.Fail[*domain.Node](domain.ErrUpstream)
	}
	if env.Archived {
		m.timer.Stop()
		m.notifier.ShowInfo("application is archived, background refresh disabled")
		return domain.Fail[*domain.Node](domain.ErrArchivedApplication)
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
		m.logger.Warn("assess refresh rejected, cache discarded",
			"app_id", appID, "code", env.Code)
		return domain.Fail[*domain.Node](failure)
	}

	if err := m.cache.Set(ctx, domain.AssessKey(appID), env.Report); err != nil {
		span.RecordError(err)
		m.logger.Error(err)
		return domain.Fail[*domain.Node](domain.ErrUpstream)
	}
	return domain.OK(env.Report)
}

// GetData serves the filtered vulnerability tree, refreshing synchronously
// on a miss with the same stop-reset-refresh-start sequence the scan
// domain uses.
func (m *Manager) GetData(ctx context.Context) domain.Result[*domain.Node] {
	project, err := m.settings.ProjectForWorkspace(ctx, m.currentWorkspace(), domain.ModeAssess)
	if err != nil {
		m.notifier.ShowError("no assess application configured for this workspace")
		return domain.Fail[*domain.Node](domain.ErrProjectNotFound)
	}
	key := domain.AssessKey(project.ProjectID)

	if node, ok := m.cachedTree(ctx, key); ok {
		return domain.OK(node)
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

func (m *Manager) populate(ctx context.Context, project domain.Project) domain.Result[*domain.Node] {
	key := domain.AssessKey(project.ProjectID)

	m.timer.Stop()
	if err := m.cache.Reset(ctx); err != nil {
		m.logger.Error(err)
	}

	if res := m.Refresh(ctx, project.ProjectID); res.Failed() {
		return res
	}

	if err := m.guard.Check(ctx, key); err != nil {
		// The entry is dropped so later reads miss instead of serving the
		// oversized tree.
		if delErr := m.cache.Delete(ctx, key); delErr != nil {
			m.logger.Error(delErr)
		}
		m.logger.Warn("assess results exceed size bound", "app_id", project.ProjectID)
		return domain.Fail[*domain.Node](domain.ErrConfigureFilter)
	}

	if err := m.timer.Start(ctx, project.ProjectID); err != nil {
		m.logger.Error(zerr.Wrap(err, "failed to restart background timer"))
	}

	node, ok := m.cachedTree(ctx, key)
	if !ok {
		return domain.Fail[*domain.Node](domain.ErrVulnerabilityNotFound)
	}
	return domain.OK(node)
}

// GetDataOnly is the passive read: no network, a miss is the benign empty
// state.
func (m *Manager) GetDataOnly(ctx context.Context) domain.Result[*domain.Node] {
	project, err := m.settings.ProjectForWorkspace(ctx, m.currentWorkspace(), domain.ModeAssess)
	if err != nil {
		return domain.Fail[*domain.Node](domain.ErrProjectNotFound)
	}
	node, ok := m.cachedTree(ctx, domain.AssessKey(project.ProjectID))
	if !ok {
		return domain.Fail[*domain.Node](domain.ErrVulnerabilityNotFound)
	}
	return domain.OK(node)
}

// GetLibraries serves the library result tree, fetching on a miss. The
// library tree rides alongside the vulnerability tree and has no timer of
// its own.
func (m *Manager) GetLibraries(ctx context.Context) domain.Result[*domain.Node] {
	project, err := m.settings.ProjectForWorkspace(ctx, m.currentWorkspace(), domain.ModeAssess)
	if err != nil {
		return domain.Fail[*domain.Node](domain.ErrProjectNotFound)
	}
	key := domain.LibraryKey(project.ProjectID)

	if node, ok := m.cachedTree(ctx, key); ok {
		return domain.OK(node)
	}

	shared, _, _ := m.group.Do(key.String(), func() (any, error) {
		return m.fetchLibraries(ctx, project), nil
	})
	return shared.(domain.Result[*domain.Node])
}

func (m *Manager) fetchLibraries(ctx context.Context, project domain.Project) domain.Result[*domain.Node] {
	ctx, span := m.tracer.Start(ctx, "assess.libraries")
	defer span.End()
	span.SetAttribute("app_id", project.ProjectID)

	filter, err := m.settings.Filter(ctx, project.ProjectID)
	if err != nil {
		span.RecordError(err)
		return domain.Fail[*domain.Node](domain.ErrConfigureFilter)
	}

	env, err := m.client.Libraries(ctx, project, filter)
	if err != nil {
		span.RecordError(err)
		m.logger.Error(zerr.Wrap(err, "library fetch failed"))
		return domain.Fail[*domain.Node](domain.ErrUpstream)
	}
	if !env.OK() {
		return domain.Fail[*domain.Node](domain.ErrUpstream)
	}

	key := domain.LibraryKey(project.ProjectID)
	if err := m.cache.Set(ctx, key, env.Report); err != nil {
		m.logger.Error(err)
		return domain.Fail[*domain.Node](domain.ErrUpstream)
	}
	if err := m.guard.Check(ctx, key); err != nil {
		if delErr := m.cache.Delete(ctx, key); delErr != nil {
			m.logger.Error(delErr)
		}
		m.logger.Warn("library results exceed size bound", "app_id", project.ProjectID)
		return domain.Fail[*domain.Node](domain.ErrConfigureFilter)
	}
	return domain.OK(env.Report)
}

// UpdateTags pushes a tag change for the given traces upstream and, on
// success, patches the cached vulnerability tree in place. A cache miss
// after a successful remote update is a no-op, not an error.
func (m *Manager) UpdateTags(ctx context.Context, traceIDs, add, remove []string) domain.Result[*domain.Node] {
	return m.mutate(ctx, mutation{
		span: "assess.update_tags",
		key:  domain.AssessKey,
		call: func(ctx context.Context, project domain.Project) (domain.Envelope, error) {
			return m.client.UpdateTags(ctx, project, traceIDs, add, remove)
		},
		match: matchAnyTrace(traceIDs),
		patch: func(n *domain.Node, _ domain.Envelope) {
			n.Tags = mergeTags(n.Tags, add, remove)
		},
	})
}

// UpdateMarkAs pushes a status change for the traces in mark upstream and
// patches status, sub-status and note on the cached nodes.
func (m *Manager) UpdateMarkAs(ctx context.Context, mark domain.Mark) domain.Result[*domain.Node] {
	return m.mutate(ctx, mutation{
		span: "assess.update_mark",
		key:  domain.AssessKey,
		call: func(ctx context.Context, project domain.Project) (domain.Envelope, error) {
			return m.client.UpdateMark(ctx, project, mark)
		},
		match: matchAnyTrace(mark.TraceIDs),
		patch: func(n *domain.Node, _ domain.Envelope) {
			n.Status = mark.Status
			n.SubStatus = mark.SubStatus
			n.Note = mark.Note
		},
	})
}

// UpdateTraceVulnerabilities refetches the detail for one trace and
// replaces the cached node's volatile fields with the fresh ones.
func (m *Manager) UpdateTraceVulnerabilities(ctx context.Context, traceID string) domain.Result[*domain.Node] {
	return m.mutate(ctx, mutation{
		span: "assess.update_trace",
		key:  domain.AssessKey,
		call: func(ctx context.Context, project domain.Project) (domain.Envelope, error) {
			return m.client.TraceEvents(ctx, project, traceID)
		},
		match: domain.MatchTraceID(traceID),
		patch: func(n *domain.Node, env domain.Envelope) {
			fresh := env.Report
			if fresh == nil {
				return
			}
			n.Severity = fresh.Severity
			n.Status = fresh.Status
			n.SubStatus = fresh.SubStatus
			n.Note = fresh.Note
			n.Tags = fresh.Tags
			n.IssuesCount = fresh.IssuesCount
			n.Children = fresh.Children
		},
	})
}

// UpdateCVEOverview fetches the overview for one CVE and attaches it to
// the matching node in the cached library tree.
func (m *Manager) UpdateCVEOverview(ctx context.Context, cveID string) domain.Result[*domain.Node] {
	return m.mutate(ctx, mutation{
		span: "assess.update_overview",
		key:  domain.LibraryKey,
		call: func(ctx context.Context, project domain.Project) (domain.Envelope, error) {
			return m.client.CVEOverview(ctx, project, cveID)
		},
		match: domain.MatchCVE(cveID),
		patch: func(n *domain.Node, env domain.Envelope) {
			n.Overview = env.Overview
		},
	})
}

// UpdateUsage fetches runtime usage for one library hash and attaches it
// to the matching node in the cached library tree. unmapped selects the
// extra nesting level for vulnerabilities without a primary grouping.
func (m *Manager) UpdateUsage(ctx context.Context, hashID string, unmapped bool) domain.Result[*domain.Node] {
	return m.mutate(ctx, mutation{
		span: "assess.update_usage",
		key:  domain.LibraryKey,
		call: func(ctx context.Context, project domain.Project) (domain.Envelope, error) {
			return m.client.Usage(ctx, project, hashID)
		},
		match: domain.MatchHashID(hashID, unmapped),
		patch: func(n *domain.Node, env domain.Envelope) {
			n.Usage = env.Usage
		},
	})
}

// UpdateLibraryTags pushes a tag change for one library hash upstream and
// patches the cached library tree. unmapped selects the extra nesting
// level for vulnerabilities without a primary grouping.
func (m *Manager) UpdateLibraryTags(ctx context.Context, hashID string, unmapped bool, add, remove []string) domain.Result[*domain.Node] {
	return m.mutate(ctx, mutation{
		span: "assess.update_library_tags",
		key:  domain.LibraryKey,
		call: func(ctx context.Context, project domain.Project) (domain.Envelope, error) {
			return m.client.UpdateLibraryTags(ctx, project, hashID, add, remove)
		},
		match: domain.MatchHashID(hashID, unmapped),
		patch: func(n *domain.Node, _ domain.Envelope) {
			n.Tags = mergeTags(n.Tags, add, remove)
		},
	})
}

// mutation describes one remote-update-then-patch cycle.
type mutation struct {
	span  string
	key   func(id string) domain.Key
	call  func(ctx context.Context, project domain.Project) (domain.Envelope, error)
	match domain.Match
	patch func(n *domain.Node, env domain.Envelope)
}

// mutate runs a mutation: remote call first, then a serialized
// read-patch-write on the cached tree. The remote update is authoritative;
// a missing cached tree or an unmatched node leaves the cache untouched
// and still reports success.
func (m *Manager) mutate(ctx context.Context, mut mutation) domain.Result[*domain.Node] {
	ctx, span := m.tracer.Start(ctx, mut.span)
	defer span.End()

	project, err := m.settings.ProjectForWorkspace(ctx, m.currentWorkspace(), domain.ModeAssess)
	if err != nil {
		span.RecordError(err)
		return domain.Fail[*domain.Node](domain.ErrProjectNotFound)
	}

	env, err := mut.call(ctx, project)
	if err != nil {
		span.RecordError(err)
		m.logger.Error(zerr.Wrap(err, "remote update failed"))
		return domain.Fail[*domain.Node](domain.ErrUpstream)
	}
	if !env.OK() {
		failure := domain.ErrUpstream
		if env.Code == domain.CodeUnauthorized {
			failure = domain.ErrAuthenticationFailure
		}
		span.RecordError(failure)
		return domain.Fail[*domain.Node](failure)
	}

	m.mutMu.Lock()
	defer m.mutMu.Unlock()

	key := mut.key(project.ProjectID)
	tree, ok := m.cachedTree(ctx, key)
	if !ok {
		return domain.OK[*domain.Node](nil)
	}

	patched, _ := domain.Apply(tree, mut.match, func(n *domain.Node) {
		mut.patch(n, env)
	})
	if err := m.cache.Set(ctx, key, patched); err != nil {
		m.logger.Error(err)
		return domain.Fail[*domain.Node](domain.ErrUpstream)
	}
	return domain.OK(patched)
}

// resolve loads the project and its persisted filter; a broken filter
// fails fast before any network call.
func (m *Manager) resolve(ctx context.Context, appID string) (domain.Project, domain.AssessFilter, error) {
	project, err := m.settings.ProjectByID(ctx, appID, domain.ModeAssess)
	if err != nil {
		return domain.Project{}, domain.AssessFilter{}, domain.ErrProjectNotFound
	}
	filter, err := m.settings.Filter(ctx, appID)
	if err != nil {
		return domain.Project{}, domain.AssessFilter{}, domain.ErrConfigureFilter
	}
	return project, filter, nil
}

func (m *Manager) cachedTree(ctx context.Context, key domain.Key) (*domain.Node, bool) {
	value, ok, err := m.cache.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	node, isNode := value.(*domain.Node)
	if !isNode {
		return nil, false
	}
	return node, true
}

// ClearProject deletes the application's vulnerability and library entries.
func (m *Manager) ClearProject(ctx context.Context, appID string) error {
	if err := m.cache.Delete(ctx, domain.AssessKey(appID)); err != nil {
		return err
	}
	return m.cache.Delete(ctx, domain.LibraryKey(appID))
}

func (m *Manager) clearKey(ctx context.Context, appID string) error {
	return m.ClearProject(ctx, appID)
}

func (m *Manager) refreshTree(ctx context.Context, appID string) (*domain.Node, error) {
	res := m.Refresh(ctx, appID)
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

func matchAnyTrace(traceIDs []string) domain.Match {
	return func(n *domain.Node) bool {
		return n.TraceID != "" && slices.Contains(traceIDs, n.TraceID)
	}
}

// mergeTags applies adds then removals, preserving order and uniqueness.
func mergeTags(existing, add, remove []string) []string {
	merged := make([]string, 0, len(existing)+len(add))
	merged = append(merged, existing...)
	for _, tag := range add {
		if !slices.Contains(merged, tag) {
			merged = append(merged, tag)
		}
	}
	return slices.DeleteFunc(merged, func(tag string) bool {
		return slices.Contains(remove, tag)
	})
}
