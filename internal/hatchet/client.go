package hatchet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/GJakobi/hatchet-mcp/internal/config"
)

// API is the read surface of the Hatchet REST API used by the introspection
// operations. Satisfied by *Client and by test stubs.
type API interface {
	ListWorkflows(ctx context.Context) ([]Workflow, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]Run, error)
	GetRun(ctx context.Context, runID string) (*Run, error)
	GetRunResult(ctx context.Context, runID string) (map[string]any, error)
}

// Client talks to the Hatchet REST API for a single tenant.
type Client struct {
	baseURL    string
	tenantID   string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient builds a Client from configuration. Server URL and tenant ID
// fall back to the claims embedded in the client token when not set
// explicitly.
func NewClient(cfg config.Config) (*Client, error) {
	serverURL := cfg.ServerURL
	tenantID := cfg.TenantID
	if serverURL == "" || tenantID == "" {
		claims, err := parseTokenClaims(cfg.Token)
		if err != nil {
			return nil, err
		}
		if serverURL == "" {
			serverURL = claims.ServerURL
		}
		if tenantID == "" {
			tenantID = claims.TenantID
		}
	}
	if serverURL == "" {
		return nil, fmt.Errorf("hatchet: no server URL in HATCHET_SERVER_URL or token claims")
	}
	if tenantID == "" {
		return nil, fmt.Errorf("hatchet: no tenant ID in HATCHET_TENANT_ID or token claims")
	}

	c := &Client{
		baseURL:  strings.TrimRight(serverURL, "/"),
		tenantID: tenantID,
		token:    cfg.Token,
		httpClient: &http.Client{
			Timeout:   cfg.APITimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	if cfg.APIRPS > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.APIRPS), 1)
	}
	return c, nil
}

// NewClientWithHTTPClient creates a Client with a custom HTTP client (for testing).
func NewClientWithHTTPClient(baseURL, tenantID, token string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tenantID:   tenantID,
		token:      token,
		httpClient: httpClient,
	}
}

// ListWorkflows fetches all workflow definitions registered for the tenant.
func (c *Client) ListWorkflows(ctx context.Context) ([]Workflow, error) {
	var out workflowList
	path := fmt.Sprintf("/api/v1/tenants/%s/workflows", c.tenantID)
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Rows, nil
}

// ListRuns fetches workflow runs matching the given filter.
func (c *Client) ListRuns(ctx context.Context, filter RunFilter) ([]Run, error) {
	q := url.Values{}
	if !filter.Since.IsZero() {
		q.Set("since", filter.Since.UTC().Format(time.RFC3339))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	for _, s := range filter.Statuses {
		q.Add("statuses", string(s))
	}
	for _, id := range filter.WorkflowIDs {
		q.Add("workflow_ids", id)
	}
	for k, v := range filter.AdditionalMetadata {
		q.Add("additional_metadata", k+":"+v)
	}

	var out runList
	path := fmt.Sprintf("/api/v1/stable/tenants/%s/workflow-runs", c.tenantID)
	if err := c.get(ctx, path, q, &out); err != nil {
		return nil, err
	}
	return out.Rows, nil
}

// GetRun fetches a single run by ID.
func (c *Client) GetRun(ctx context.Context, runID string) (*Run, error) {
	var out Run
	path := fmt.Sprintf("/api/v1/stable/tenants/%s/workflow-runs/%s", c.tenantID, url.PathEscape(runID))
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRunResult fetches the output payload of a run. The payload shape is
// owned by the workflow, so it stays an opaque map.
func (c *Client) GetRunResult(ctx context.Context, runID string) (map[string]any, error) {
	var out map[string]any
	path := fmt.Sprintf("/api/v1/stable/tenants/%s/workflow-runs/%s/result", c.tenantID, url.PathEscape(runID))
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, target any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("hatchet: rate limiter: %w", err)
		}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("hatchet: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("hatchet: request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("hatchet: %s returned status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("hatchet: decode %s response: %w", path, err)
	}
	return nil
}

var _ API = (*Client)(nil)
