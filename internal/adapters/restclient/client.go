// Package restclient talks to the vulnerability-management REST API. It is
// deliberately thin: it builds authenticated requests, follows result
// paging, and normalizes responses into the domain envelope. Retries and
// timeouts beyond the transport default are out of scope here.
package restclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.seclens.dev/seclens/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	defaultTimeout = 30 * time.Second

	// pageSize is the number of traces requested per page when listing
	// assess vulnerabilities.
	pageSize = 250
)

// Client implements ports.ScanClient and ports.AssessClient.
type Client struct {
	http *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying transport. Used by tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a Client with the default transport timeout.
func New(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// wireEnvelope is the JSON shape the API responds with.
type wireEnvelope struct {
	Success  bool             `json:"success"`
	Messages []string         `json:"messages"`
	Report   *domain.Node     `json:"report"`
	Overview *domain.Overview `json:"overview"`
	Usage    *domain.Usage    `json:"usage"`
	Advice   string           `json:"advice"`
	Archived bool             `json:"archived"`
	HasMore  bool             `json:"hasMore"`
}

// ScanResults fetches the full result tree for a scan project.
func (c *Client) ScanResults(ctx context.Context, project domain.Project) (domain.Envelope, error) {
	path := "/ng/" + project.OrgID + "/projects/" + project.ProjectID + "/results"
	return c.call(ctx, project, http.MethodGet, path, nil, nil)
}

// Advice fetches remediation advice for one scan.
func (c *Client) Advice(ctx context.Context, project domain.Project, scanID string) (domain.Envelope, error) {
	path := "/ng/" + project.OrgID + "/scans/" + scanID + "/advice"
	return c.call(ctx, project, http.MethodGet, path, nil, nil)
}

// Vulnerabilities fetches the filtered vulnerability tree for an app,
// following paging until the server reports no further pages. Pages after
// the first contribute only their children.
func (c *Client) Vulnerabilities(ctx context.Context, project domain.Project, filter domain.AssessFilter) (domain.Envelope, error) {
	path := "/ng/" + project.OrgID + "/orgtraces/filter"
	return c.paged(ctx, project, path, filter)
}

// Libraries fetches the library result tree for an app.
func (c *Client) Libraries(ctx context.Context, project domain.Project, filter domain.AssessFilter) (domain.Envelope, error) {
	path := "/ng/" + project.OrgID + "/libraries/filter"
	return c.paged(ctx, project, path, filter)
}

// UpdateTags adds and removes tags on the given traces.
func (c *Client) UpdateTags(ctx context.Context, project domain.Project, traceIDs, add, remove []string) (domain.Envelope, error) {
	path := "/ng/" + project.OrgID + "/tags/traces"
	body := map[string]any{
		"traces":      traceIDs,
		"tags":        add,
		"tags_remove": remove,
	}
	return c.call(ctx, project, http.MethodPut, path, nil, body)
}

// UpdateMark applies a mark-as status change.
func (c *Client) UpdateMark(ctx context.Context, project domain.Project, mark domain.Mark) (domain.Envelope, error) {
	path := "/ng/" + project.OrgID + "/orgtraces/mark"
	body := map[string]any{
		"traces":    mark.TraceIDs,
		"status":    mark.Status,
		"substatus": mark.SubStatus,
		"note":      mark.Note,
	}
	return c.call(ctx, project, http.MethodPut, path, nil, body)
}

// CVEOverview fetches the overview for one CVE.
func (c *Client) CVEOverview(ctx context.Context, project domain.Project, cveID string) (domain.Envelope, error) {
	path := "/ng/" + project.OrgID + "/cves/" + cveID
	return c.call(ctx, project, http.MethodGet, path, nil, nil)
}

// Usage fetches runtime usage details for one library hash.
func (c *Client) Usage(ctx context.Context, project domain.Project, hashID string) (domain.Envelope, error) {
	path := "/ng/" + project.OrgID + "/libraries/" + hashID + "/usage"
	return c.call(ctx, project, http.MethodGet, path, nil, nil)
}

// TraceEvents fetches the event detail for one trace.
func (c *Client) TraceEvents(ctx context.Context, project domain.Project, traceID string) (domain.Envelope, error) {
	path := "/ng/" + project.OrgID + "/traces/" + traceID + "/events"
	return c.call(ctx, project, http.MethodGet, path, nil, nil)
}

// UpdateLibraryTags adds and removes tags on a library hash.
func (c *Client) UpdateLibraryTags(ctx context.Context, project domain.Project, hashID string, add, remove []string) (domain.Envelope, error) {
	path := "/ng/" + project.OrgID + "/tags/libraries/" + hashID
	body := map[string]any{
		"tags":        add,
		"tags_remove": remove,
	}
	return c.call(ctx, project, http.MethodPut, path, nil, body)
}

func (c *Client) paged(ctx context.Context, project domain.Project, path string, filter domain.AssessFilter) (domain.Envelope, error) {
	var merged domain.Envelope

	for offset := 0; ; offset += pageSize {
		q := filter.QueryParams()
		q.Set("offset", strconv.Itoa(offset))
		q.Set("limit", strconv.Itoa(pageSize))

		page, more, err := c.callPage(ctx, project, http.MethodGet, path, q, nil)
		if err != nil {
			return domain.Envelope{}, err
		}
		if !page.OK() {
			return page, nil
		}

		if offset == 0 {
			merged = page
		} else if merged.Report != nil && page.Report != nil {
			merged.Report.Children = append(merged.Report.Children, page.Report.Children...)
			merged.Report.IssuesCount += page.Report.IssuesCount
		}
		if !more {
			return merged, nil
		}
	}
}

func (c *Client) call(ctx context.Context, project domain.Project, method, path string, q url.Values, body any) (domain.Envelope, error) {
	env, _, err := c.callPage(ctx, project, method, path, q, body)
	return env, err
}

func (c *Client) callPage(ctx context.Context, project domain.Project, method, path string, q url.Values, body any) (domain.Envelope, bool, error) {
	u, err := url.Parse(project.BaseURL)
	if err != nil {
		return domain.Envelope{}, false, zerr.Wrap(err, "invalid base URL")
	}
	u.Path = path
	if q != nil {
		u.RawQuery = q.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return domain.Envelope{}, false, zerr.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return domain.Envelope{}, false, zerr.Wrap(err, "failed to build request")
	}
	c.authorize(req, project)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Envelope{}, false, zerr.With(zerr.Wrap(err, "request failed"), "path", path)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// The envelope carries the failure; callers treat any non-200 code
		// as the discard signal, so this is not a transport error.
		return domain.Envelope{
			Code:    resp.StatusCode,
			Message: resp.Status,
		}, false, nil
	}

	var wire wireEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return domain.Envelope{}, false, zerr.With(zerr.Wrap(err, "failed to decode response"), "path", path)
	}

	env := domain.Envelope{
		Code:     domain.CodeOK,
		Report:   wire.Report,
		Overview: wire.Overview,
		Usage:    wire.Usage,
		Advice:   wire.Advice,
		Archived: wire.Archived,
	}
	if len(wire.Messages) > 0 {
		env.Message = wire.Messages[0]
	}
	return env, wire.HasMore, nil
}

// authorize sets the credential headers the API expects: the org API key
// and a basic authorization token derived from the service key.
func (c *Client) authorize(req *http.Request, project domain.Project) {
	req.Header.Set("API-Key", project.APIKey)
	token := base64.StdEncoding.EncodeToString([]byte(project.OrgID + ":" + project.ServiceKey))
	req.Header.Set("Authorization", token)
}
