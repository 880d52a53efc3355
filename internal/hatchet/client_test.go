package hatchet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GJakobi/hatchet-mcp/internal/config"
)

func TestListWorkflows(t *testing.T) {
	fixture := map[string]any{
		"rows": []map[string]any{
			{
				"metadata": map[string]any{"id": "wf-1"},
				"name":     "qa-workflow",
				"version":  "v3",
			},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/tenants/tenant-1/workflows", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(fixture)
	}))
	defer srv.Close()

	client := NewClientWithHTTPClient(srv.URL, "tenant-1", "tok", srv.Client())
	workflows, err := client.ListWorkflows(context.Background())
	require.NoError(t, err)
	require.Len(t, workflows, 1)
	assert.Equal(t, "wf-1", workflows[0].Metadata.ID)
	require.NotNil(t, workflows[0].Name)
	assert.Equal(t, "qa-workflow", *workflows[0].Name)
	assert.Nil(t, workflows[0].Description)
}

func TestListRuns_QueryParams(t *testing.T) {
	since := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/stable/tenants/tenant-1/workflow-runs", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "2026-08-25T12:00:00Z", q.Get("since"))
		assert.Equal(t, "50", q.Get("limit"))
		assert.Equal(t, []string{"FAILED"}, q["statuses"])
		assert.Equal(t, []string{"wf-1", "wf-2"}, q["workflow_ids"])
		assert.Equal(t, []string{"audit_id:A-42"}, q["additional_metadata"])
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"rows": []map[string]any{
			{"metadata": map[string]any{"id": "run-1"}, "status": "FAILED"},
		}})
	}))
	defer srv.Close()

	client := NewClientWithHTTPClient(srv.URL, "tenant-1", "tok", srv.Client())
	runs, err := client.ListRuns(context.Background(), RunFilter{
		Since:              since,
		Limit:              50,
		Statuses:           []RunStatus{StatusFailed},
		WorkflowIDs:        []string{"wf-1", "wf-2"},
		AdditionalMetadata: map[string]string{"audit_id": "A-42"},
	})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].Metadata.ID)
	require.NotNil(t, runs[0].Status)
	assert.Equal(t, StatusFailed, *runs[0].Status)
}

func TestListRuns_NoFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"rows": []map[string]any{}})
	}))
	defer srv.Close()

	client := NewClientWithHTTPClient(srv.URL, "tenant-1", "tok", srv.Client())
	runs, err := client.ListRuns(context.Background(), RunFilter{})
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestGetRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/stable/tenants/tenant-1/workflow-runs/run-123", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"metadata":     map[string]any{"id": "run-123"},
			"workflowName": "qa-workflow",
			"status":       "RUNNING",
		})
	}))
	defer srv.Close()

	client := NewClientWithHTTPClient(srv.URL, "tenant-1", "tok", srv.Client())
	run, err := client.GetRun(context.Background(), "run-123")
	require.NoError(t, err)
	assert.Equal(t, "run-123", run.Metadata.ID)
	require.NotNil(t, run.Status)
	assert.Equal(t, StatusRunning, *run.Status)
}

func TestGetRunResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/stable/tenants/tenant-1/workflow-runs/run-123/result", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"answer": 42.0})
	}))
	defer srv.Close()

	client := NewClientWithHTTPClient(srv.URL, "tenant-1", "tok", srv.Client())
	result, err := client.GetRunResult(context.Background(), "run-123")
	require.NoError(t, err)
	assert.Equal(t, 42.0, result["answer"])
}

func TestGet_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClientWithHTTPClient(srv.URL, "tenant-1", "tok", srv.Client())
	_, err := client.GetRun(context.Background(), "run-123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestNewClient_TokenClaims(t *testing.T) {
	raw := signTestToken(t, map[string]any{
		"server_url": "https://hatchet.example.com/",
		"sub":        "tenant-9",
	})

	client, err := NewClient(config.Config{Token: raw, APITimeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, "https://hatchet.example.com", client.baseURL)
	assert.Equal(t, "tenant-9", client.tenantID)
	assert.Nil(t, client.limiter)
}

func TestNewClient_EnvOverridesToken(t *testing.T) {
	raw := signTestToken(t, map[string]any{
		"server_url": "https://hatchet.example.com",
		"sub":        "tenant-9",
	})

	client, err := NewClient(config.Config{
		Token:     raw,
		ServerURL: "https://override.example.com",
		TenantID:  "tenant-override",
		APIRPS:    5,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://override.example.com", client.baseURL)
	assert.Equal(t, "tenant-override", client.tenantID)
	assert.NotNil(t, client.limiter)
}

func TestNewClient_MissingServerURL(t *testing.T) {
	raw := signTestToken(t, map[string]any{"sub": "tenant-9"})

	_, err := NewClient(config.Config{Token: raw})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no server URL")
}
