package restclient_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.seclens.dev/seclens/internal/adapters/restclient"
	"go.seclens.dev/seclens/internal/core/domain"
)

func project(baseURL string) domain.Project {
	return domain.Project{
		ProjectID:      "12345",
		ProjectName:    "myapp",
		Source:         domain.ModeScan,
		RefreshMinutes: 10,
		OrgID:          "org-1",
		APIKey:         "key-1",
		ServiceKey:     "svc-1",
		BaseURL:        baseURL,
	}
}

func TestScanResults_Success(t *testing.T) {
	var gotPath, gotAPIKey, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("API-Key")
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"report": map[string]any{
				"label":       "myapp",
				"issuesCount": 3,
				"child": []map[string]any{
					{"label": "main.go", "issuesCount": 3},
				},
			},
		})
	}))
	defer srv.Close()

	c := restclient.New(restclient.WithHTTPClient(srv.Client()))
	env, err := c.ScanResults(t.Context(), project(srv.URL))

	require.NoError(t, err)
	assert.True(t, env.OK())
	assert.Equal(t, "/ng/org-1/projects/12345/results", gotPath)
	assert.Equal(t, "key-1", gotAPIKey)
	assert.NotEmpty(t, gotAuth)
	require.NotNil(t, env.Report)
	assert.Equal(t, 3, env.Report.IssuesCount)
	require.Len(t, env.Report.Children, 1)
}

func TestScanResults_Non200BecomesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := restclient.New(restclient.WithHTTPClient(srv.Client()))
	env, err := c.ScanResults(t.Context(), project(srv.URL))

	// A non-200 response is data, not a transport error.
	require.NoError(t, err)
	assert.False(t, env.OK())
	assert.Equal(t, http.StatusForbidden, env.Code)
}

func TestVulnerabilities_FollowsPaging(t *testing.T) {
	var offsets []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset := r.URL.Query().Get("offset")
		offsets = append(offsets, offset)
		first := offset == "0"
		resp := map[string]any{
			"success": true,
			"hasMore": first,
			"report": map[string]any{
				"label":       "app",
				"issuesCount": 1,
				"child": []map[string]any{
					{"label": "vuln-" + offset, "issuesCount": 1},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := restclient.New(restclient.WithHTTPClient(srv.Client()))
	env, err := c.Vulnerabilities(t.Context(), project(srv.URL), domain.AssessFilter{
		Severities: []string{"CRITICAL"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"0", "250"}, offsets)
	require.NotNil(t, env.Report)
	assert.Len(t, env.Report.Children, 2)
	assert.Equal(t, 2, env.Report.IssuesCount)
}

func TestUpdateMark_SendsBody(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	c := restclient.New(restclient.WithHTTPClient(srv.Client()))
	env, err := c.UpdateMark(t.Context(), project(srv.URL), domain.Mark{
		TraceIDs:  []string{"test123"},
		Status:    "Remediated",
		SubStatus: "auto",
	})

	require.NoError(t, err)
	assert.True(t, env.OK())
	assert.Equal(t, "Remediated", body["status"])
	assert.Equal(t, []any{"test123"}, body["traces"])
}
