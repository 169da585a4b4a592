package domain

import (
	"net/url"
	"strings"
	"time"
)

// AssessFilter narrows which vulnerabilities the assess domain fetches.
// It is persisted alongside the project records; an oversized result is
// answered by asking the user to tighten this filter, never by trimming
// the payload.
type AssessFilter struct {
	AppID      string
	Severities []string
	Statuses   []string
	StartDate  time.Time
	EndDate    time.Time
	Metadata   map[string]string
}

// QueryParams renders the filter as request parameters for the upstream
// vulnerability listing endpoints.
func (f AssessFilter) QueryParams() url.Values {
	v := url.Values{}
	if len(f.Severities) > 0 {
		v.Set("severities", strings.Join(f.Severities, ","))
	}
	if len(f.Statuses) > 0 {
		v.Set("status", strings.Join(f.Statuses, ","))
	}
	if !f.StartDate.IsZero() {
		v.Set("startDate", f.StartDate.UTC().Format(time.RFC3339))
	}
	if !f.EndDate.IsZero() {
		v.Set("endDate", f.EndDate.UTC().Format(time.RFC3339))
	}
	for k, val := range f.Metadata {
		v.Set("metadata."+k, val)
	}
	return v
}
