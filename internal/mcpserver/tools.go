// Package mcpserver exposes Hatchet run and workflow introspection via MCP tools.
//
// Every tool follows one failure contract: handlers never return a protocol
// error. Failures become a JSON value carrying an "error" key (plus "run_id"
// for the run-scoped tools), so callers distinguish success from failure by
// the shape of the payload alone.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/GJakobi/hatchet-mcp/internal/introspect"
	"github.com/GJakobi/hatchet-mcp/internal/observability"
)

// RegisterTools registers all introspection MCP tools on the given server.
// Metrics may be nil when telemetry is not wired.
func RegisterTools(server *mcp.Server, svc *introspect.Service, metrics *observability.Metrics) {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "list_workflows",
			Description: "List all registered Hatchet workflows with their IDs, names, and descriptions",
		},
		listWorkflowsHandler(svc, metrics),
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "list_runs",
			Description: "List workflow runs with optional workflow name, status, and time window filters",
		},
		listRunsHandler(svc, metrics),
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "get_run_status",
			Description: "Get the current status of a specific workflow run",
		},
		getRunStatusHandler(svc, metrics),
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "get_run_result",
			Description: "Get the result/output of a completed workflow run",
		},
		getRunResultHandler(svc, metrics),
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "get_queue_metrics",
			Description: "Get queue depth and run counts by status over the last 24 hours",
		},
		getQueueMetricsHandler(svc, metrics),
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "search_runs",
			Description: "Search runs by an additional-metadata key/value pair (e.g. audit_id, patient_id, application_id)",
		},
		searchRunsHandler(svc, metrics),
	)
}

// errorEntry is the failure value returned in place of results.
type errorEntry struct {
	Error string `json:"error"`
	RunID string `json:"run_id,omitempty"`
}

func listWorkflowsHandler(svc *introspect.Service, m *observability.Metrics) mcp.ToolHandlerFor[struct{}, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		defer func() { m.RecordCall(ctx, "list_workflows", time.Since(start)) }()

		records, err := svc.ListWorkflows(ctx)
		if err != nil {
			m.RecordError(ctx, "list_workflows")
			return textResult([]errorEntry{{Error: err.Error()}})
		}
		return textResult(records)
	}
}

type listRunsInput struct {
	WorkflowName string `json:"workflow_name,omitempty"`
	Status       string `json:"status,omitempty"`
	SinceHours   int    `json:"since_hours,omitempty"`
	Limit        int    `json:"limit,omitempty"`
}

func listRunsHandler(svc *introspect.Service, m *observability.Metrics) mcp.ToolHandlerFor[listRunsInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input listRunsInput) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		defer func() { m.RecordCall(ctx, "list_runs", time.Since(start)) }()

		records, err := svc.ListRuns(ctx, introspect.ListRunsParams{
			WorkflowName: input.WorkflowName,
			Status:       input.Status,
			SinceHours:   input.SinceHours,
			Limit:        input.Limit,
		})
		if err != nil {
			m.RecordError(ctx, "list_runs")
			return textResult([]errorEntry{{Error: err.Error()}})
		}
		return textResult(records)
	}
}

type runIDInput struct {
	RunID string `json:"run_id"`
}

func getRunStatusHandler(svc *introspect.Service, m *observability.Metrics) mcp.ToolHandlerFor[runIDInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input runIDInput) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		defer func() { m.RecordCall(ctx, "get_run_status", time.Since(start)) }()

		if input.RunID == "" {
			m.RecordError(ctx, "get_run_status")
			return textResult(errorEntry{Error: "run_id is required"})
		}
		record, err := svc.GetRunStatus(ctx, input.RunID)
		if err != nil {
			m.RecordError(ctx, "get_run_status")
			return textResult(errorEntry{Error: err.Error(), RunID: input.RunID})
		}
		return textResult(record)
	}
}

func getRunResultHandler(svc *introspect.Service, m *observability.Metrics) mcp.ToolHandlerFor[runIDInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input runIDInput) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		defer func() { m.RecordCall(ctx, "get_run_result", time.Since(start)) }()

		if input.RunID == "" {
			m.RecordError(ctx, "get_run_result")
			return textResult(errorEntry{Error: "run_id is required"})
		}
		result, err := svc.GetRunResult(ctx, input.RunID)
		if err != nil {
			m.RecordError(ctx, "get_run_result")
			return textResult(errorEntry{Error: err.Error(), RunID: input.RunID})
		}
		return textResult(result)
	}
}

type queueMetricsInput struct {
	WorkflowName string `json:"workflow_name,omitempty"`
}

func getQueueMetricsHandler(svc *introspect.Service, m *observability.Metrics) mcp.ToolHandlerFor[queueMetricsInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input queueMetricsInput) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		defer func() { m.RecordCall(ctx, "get_queue_metrics", time.Since(start)) }()

		metrics, err := svc.GetQueueMetrics(ctx, input.WorkflowName)
		if err != nil {
			m.RecordError(ctx, "get_queue_metrics")
			return textResult(errorEntry{Error: err.Error()})
		}
		return textResult(metrics)
	}
}

type searchRunsInput struct {
	MetadataKey   string `json:"metadata_key"`
	MetadataValue string `json:"metadata_value"`
	Status        string `json:"status,omitempty"`
	SinceHours    int    `json:"since_hours,omitempty"`
	Limit         int    `json:"limit,omitempty"`
}

func searchRunsHandler(svc *introspect.Service, m *observability.Metrics) mcp.ToolHandlerFor[searchRunsInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input searchRunsInput) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		defer func() { m.RecordCall(ctx, "search_runs", time.Since(start)) }()

		if input.MetadataKey == "" {
			m.RecordError(ctx, "search_runs")
			return textResult([]errorEntry{{Error: "metadata_key is required"}})
		}
		records, err := svc.SearchRuns(ctx, introspect.SearchRunsParams{
			MetadataKey:   input.MetadataKey,
			MetadataValue: input.MetadataValue,
			Status:        input.Status,
			SinceHours:    input.SinceHours,
			Limit:         input.Limit,
		})
		if err != nil {
			m.RecordError(ctx, "search_runs")
			return textResult([]errorEntry{{Error: err.Error()}})
		}
		return textResult(records)
	}
}

func textResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("marshal result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}, nil, nil
}
