package ports

import (
	"context"

	"go.seclens.dev/seclens/internal/core/domain"
)

// SettingsStore reads the persisted project configuration. The store is
// owned by an external persistence layer; the core only consumes it.
//
//go:generate go run go.uber.org/mock/mockgen -source=settings.go -destination=mocks/mock_settings.go -package=mocks
type SettingsStore interface {
	// ProjectForWorkspace resolves the configured project whose name matches
	// the open workspace folder for the given domain. Returns
	// domain.ErrProjectNotFound when nothing matches.
	ProjectForWorkspace(ctx context.Context, workspace string, mode domain.Mode) (domain.Project, error)

	// ProjectByID resolves a configured project by id and domain. Timer
	// ticks re-resolve through this on every cycle since the record may
	// have changed after the timer started.
	ProjectByID(ctx context.Context, projectID string, mode domain.Mode) (domain.Project, error)

	// Filter returns the persisted assess filter for an application.
	Filter(ctx context.Context, appID string) (domain.AssessFilter, error)
}
