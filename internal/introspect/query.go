package introspect

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/GJakobi/hatchet-mcp/internal/hatchet"
)

const (
	defaultSinceHours = 24
	defaultLimit      = 50

	// Queue metrics always aggregate over a fixed lookback window.
	metricsWindowHours = 24
	metricsLimit       = 1000
)

// Service implements the query operations on top of a lazily-acquired
// Hatchet API handle. Acquisition runs per operation, so a bad token is
// reported by the first call that needs the client rather than at startup.
type Service struct {
	api func() (hatchet.API, error)
}

// NewService creates a Service. The api func is typically hatchet.Default;
// tests pass a func returning a stub.
func NewService(api func() (hatchet.API, error)) *Service {
	return &Service{api: api}
}

// ListRunsParams filters ListRuns. Zero values fall back to defaults
// (24 hours, 50 rows) or mean "no filter" for the optional fields.
type ListRunsParams struct {
	WorkflowName string
	Status       string
	SinceHours   int
	Limit        int
}

// SearchRunsParams filters SearchRuns by one metadata key/value pair.
type SearchRunsParams struct {
	MetadataKey   string
	MetadataValue string
	Status        string
	SinceHours    int
	Limit         int
}

// RunResult pairs a run ID with its opaque output payload.
type RunResult struct {
	RunID  string         `json:"run_id"`
	Result map[string]any `json:"result"`
}

// QueueMetrics aggregates run counts by status over a fixed window.
type QueueMetrics struct {
	WorkflowName   string         `json:"workflow_name"`
	TimeRangeHours int            `json:"time_range_hours"`
	Counts         map[string]int `json:"counts"`
}

// ListWorkflows returns every registered workflow definition, flattened.
func (s *Service) ListWorkflows(ctx context.Context) ([]WorkflowRecord, error) {
	api, err := s.api()
	if err != nil {
		return nil, err
	}
	workflows, err := api.ListWorkflows(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]WorkflowRecord, 0, len(workflows))
	for i := range workflows {
		records = append(records, FlattenWorkflow(&workflows[i]))
	}
	return records, nil
}

// ListRuns returns runs in the given window, optionally filtered by
// workflow name and status. Unrecognized status names apply no status
// filter; a workflow name matching no definition drops the workflow filter.
func (s *Service) ListRuns(ctx context.Context, p ListRunsParams) ([]RunRecord, error) {
	api, err := s.api()
	if err != nil {
		return nil, err
	}

	filter := baseFilter(p.SinceHours, p.Limit)
	if status, ok := TranslateStatus(p.Status); ok {
		filter.Statuses = []hatchet.RunStatus{status}
	}
	if p.WorkflowName != "" {
		filter.WorkflowIDs, err = resolveWorkflowIDs(ctx, api, p.WorkflowName)
		if err != nil {
			return nil, err
		}
	}

	return listRuns(ctx, api, filter)
}

// SearchRuns returns runs carrying an exact additional-metadata key/value
// match, optionally narrowed by status.
func (s *Service) SearchRuns(ctx context.Context, p SearchRunsParams) ([]RunRecord, error) {
	api, err := s.api()
	if err != nil {
		return nil, err
	}

	filter := baseFilter(p.SinceHours, p.Limit)
	filter.AdditionalMetadata = map[string]string{p.MetadataKey: p.MetadataValue}
	if status, ok := TranslateStatus(p.Status); ok {
		filter.Statuses = []hatchet.RunStatus{status}
	}

	return listRuns(ctx, api, filter)
}

// GetRunStatus fetches one run by ID and flattens it.
func (s *Service) GetRunStatus(ctx context.Context, runID string) (RunRecord, error) {
	api, err := s.api()
	if err != nil {
		return RunRecord{}, err
	}
	run, err := api.GetRun(ctx, runID)
	if err != nil {
		return RunRecord{}, err
	}
	return FlattenRun(run), nil
}

// GetRunResult fetches the output payload of a run.
func (s *Service) GetRunResult(ctx context.Context, runID string) (RunResult, error) {
	api, err := s.api()
	if err != nil {
		return RunResult{}, err
	}
	result, err := api.GetRunResult(ctx, runID)
	if err != nil {
		return RunResult{}, err
	}
	return RunResult{RunID: runID, Result: result}, nil
}

// GetQueueMetrics tallies runs from the last 24 hours into per-status
// counters. Statuses outside the known five still count toward total but
// land in no bucket.
func (s *Service) GetQueueMetrics(ctx context.Context, workflowName string) (QueueMetrics, error) {
	api, err := s.api()
	if err != nil {
		return QueueMetrics{}, err
	}

	filter := hatchet.RunFilter{
		Since: time.Now().UTC().Add(-metricsWindowHours * time.Hour),
		Limit: metricsLimit,
	}
	if workflowName != "" {
		filter.WorkflowIDs, err = resolveWorkflowIDs(ctx, api, workflowName)
		if err != nil {
			return QueueMetrics{}, err
		}
	}

	runs, err := api.ListRuns(ctx, filter)
	if err != nil {
		return QueueMetrics{}, err
	}

	counts := map[string]int{
		"queued":    0,
		"running":   0,
		"completed": 0,
		"failed":    0,
		"cancelled": 0,
		"total":     0,
	}
	for i := range runs {
		counts["total"]++
		if runs[i].Status == nil {
			continue
		}
		name := strings.ToLower(string(*runs[i].Status))
		if _, ok := counts[name]; ok {
			counts[name]++
		}
	}

	name := workflowName
	if name == "" {
		name = "all"
	}
	return QueueMetrics{
		WorkflowName:   name,
		TimeRangeHours: metricsWindowHours,
		Counts:         counts,
	}, nil
}

func baseFilter(sinceHours, limit int) hatchet.RunFilter {
	if sinceHours <= 0 {
		sinceHours = defaultSinceHours
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return hatchet.RunFilter{
		Since: time.Now().UTC().Add(-time.Duration(sinceHours) * time.Hour),
		Limit: limit,
	}
}

func listRuns(ctx context.Context, api hatchet.API, filter hatchet.RunFilter) ([]RunRecord, error) {
	runs, err := api.ListRuns(ctx, filter)
	if err != nil {
		return nil, err
	}
	records := make([]RunRecord, 0, len(runs))
	for i := range runs {
		records = append(records, FlattenRun(&runs[i]))
	}
	return records, nil
}

// resolveWorkflowIDs maps a workflow name to the IDs of definitions with
// that exact name. Zero matches returns nil: the name filter is dropped and
// the query runs across all workflows instead of short-circuiting to an
// empty result. That matches the behavior callers of this tool rely on, so
// it is kept and logged rather than turned into an error.
func resolveWorkflowIDs(ctx context.Context, api hatchet.API, name string) ([]string, error) {
	workflows, err := api.ListWorkflows(ctx)
	if err != nil {
		return nil, err
	}

	var ids []string
	for i := range workflows {
		wf := &workflows[i]
		if wf.Name != nil && *wf.Name == name && wf.Metadata != nil {
			ids = append(ids, wf.Metadata.ID)
		}
	}
	if len(ids) == 0 {
		slog.Warn("workflow name matched no definitions; listing across all workflows",
			"workflow_name", name)
	}
	return ids, nil
}
