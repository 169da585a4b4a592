package ports

import (
	"context"

	"go.seclens.dev/seclens/internal/core/domain"
)

// ScanClient talks to the static-analysis product. Every call returns the
// upstream envelope; code 200 is the only success signal and transport
// failures surface as errors, never panics.
//
//go:generate go run go.uber.org/mock/mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks
type ScanClient interface {
	// ScanResults fetches the full project result tree.
	ScanResults(ctx context.Context, project domain.Project) (domain.Envelope, error)

	// Advice fetches remediation advice for one scan.
	Advice(ctx context.Context, project domain.Project, scanID string) (domain.Envelope, error)
}

// AssessClient talks to the runtime-analysis product.
type AssessClient interface {
	// Vulnerabilities fetches the filtered vulnerability tree for an app.
	Vulnerabilities(ctx context.Context, project domain.Project, filter domain.AssessFilter) (domain.Envelope, error)

	// Libraries fetches the library (SCA) result tree for an app.
	Libraries(ctx context.Context, project domain.Project, filter domain.AssessFilter) (domain.Envelope, error)

	// UpdateTags adds and removes tags on the given traces upstream.
	UpdateTags(ctx context.Context, project domain.Project, traceIDs, add, remove []string) (domain.Envelope, error)

	// UpdateMark applies a mark-as status change upstream.
	UpdateMark(ctx context.Context, project domain.Project, mark domain.Mark) (domain.Envelope, error)

	// CVEOverview fetches the overview for one CVE.
	CVEOverview(ctx context.Context, project domain.Project, cveID string) (domain.Envelope, error)

	// Usage fetches runtime usage details for one library hash.
	Usage(ctx context.Context, project domain.Project, hashID string) (domain.Envelope, error)

	// TraceEvents fetches the event detail for one trace.
	TraceEvents(ctx context.Context, project domain.Project, traceID string) (domain.Envelope, error)

	// UpdateLibraryTags adds and removes tags on a library hash upstream.
	UpdateLibraryTags(ctx context.Context, project domain.Project, hashID string, add, remove []string) (domain.Envelope, error)
}
