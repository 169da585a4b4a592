// Package settings reads the persisted project configuration from a YAML
// file. The file is owned by an external persistence layer; this adapter
// only consumes it.
package settings

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"go.seclens.dev/seclens/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the settings file looked up when no path is given.
const DefaultFilename = "seclens.yaml"

// Store implements ports.SettingsStore over a YAML file. Loading is lazy
// and cached; SetPath invalidates the cached file so a CLI flag can point
// at a different settings file before first use.
type Store struct {
	mu     sync.RWMutex
	path   string
	loaded *File
}

// NewStore creates a Store reading from the default settings file.
func NewStore() *Store {
	return &Store{path: DefaultFilename}
}

// SetPath changes the settings file path and drops any cached content.
func (s *Store) SetPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = filepath.Clean(path)
	s.loaded = nil
}

func (s *Store) file() (*File, error) {
	s.mu.RLock()
	if s.loaded != nil {
		f := s.loaded
		s.mu.RUnlock()
		return f, nil
	}
	path := s.path
	s.mu.RUnlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read settings file")
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, zerr.Wrap(err, "failed to parse settings file")
	}

	s.mu.Lock()
	s.loaded = &f
	s.mu.Unlock()
	return &f, nil
}

// ProjectForWorkspace resolves the configured project whose name matches
// the open workspace folder for the given domain.
func (s *Store) ProjectForWorkspace(_ context.Context, workspace string, mode domain.Mode) (domain.Project, error) {
	return s.find(func(p ProjectTO) bool {
		return p.ProjectName == workspace && domain.Mode(p.Source) == mode
	})
}

// ProjectByID resolves a configured project by id and domain.
func (s *Store) ProjectByID(_ context.Context, projectID string, mode domain.Mode) (domain.Project, error) {
	return s.find(func(p ProjectTO) bool {
		return p.ProjectID == projectID && domain.Mode(p.Source) == mode
	})
}

func (s *Store) find(match func(ProjectTO) bool) (domain.Project, error) {
	f, err := s.file()
	if err != nil {
		return domain.Project{}, err
	}
	for _, p := range f.Projects {
		if match(p) {
			return toDomain(p)
		}
	}
	return domain.Project{}, domain.ErrProjectNotFound
}

// Filter returns the persisted assess filter for an application. A missing
// filter section yields an unconstrained filter rather than an error.
func (s *Store) Filter(_ context.Context, appID string) (domain.AssessFilter, error) {
	f, err := s.file()
	if err != nil {
		return domain.AssessFilter{}, err
	}
	if f.Filter == nil {
		return domain.AssessFilter{AppID: appID}, nil
	}

	out := domain.AssessFilter{
		AppID:      appID,
		Severities: f.Filter.Severities,
		Statuses:   f.Filter.Statuses,
		Metadata:   f.Filter.Metadata,
	}
	if f.Filter.StartDate != "" {
		ts, err := time.Parse(time.RFC3339, f.Filter.StartDate)
		if err != nil {
			return domain.AssessFilter{}, zerr.With(zerr.Wrap(err, "invalid filter start date"), "value", f.Filter.StartDate)
		}
		out.StartDate = ts
	}
	if f.Filter.EndDate != "" {
		ts, err := time.Parse(time.RFC3339, f.Filter.EndDate)
		if err != nil {
			return domain.AssessFilter{}, zerr.With(zerr.Wrap(err, "invalid filter end date"), "value", f.Filter.EndDate)
		}
		out.EndDate = ts
	}
	return out, nil
}

func toDomain(p ProjectTO) (domain.Project, error) {
	minutes, err := strconv.Atoi(p.Minute)
	if err != nil || minutes <= 0 {
		return domain.Project{}, zerr.With(zerr.New("invalid refresh cycle"), "minute", p.Minute)
	}
	return domain.Project{
		ProjectID:      p.ProjectID,
		ProjectName:    p.ProjectName,
		Source:         domain.Mode(p.Source),
		RefreshMinutes: minutes,
		OrgID:          p.OrgID,
		APIKey:         p.APIKey,
		ServiceKey:     p.ServiceKey,
		BaseURL:        p.BaseURL,
	}, nil
}
