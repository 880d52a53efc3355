package introspect

import (
	"fmt"
	"time"

	"github.com/GJakobi/hatchet-mcp/internal/hatchet"
)

// RunRecord is the flat, JSON-serializable projection of a run. Optional
// fields are pointers so missing upstream values serialize as null rather
// than being dropped.
type RunRecord struct {
	ID                 string         `json:"id"`
	WorkflowID         *string        `json:"workflow_id"`
	WorkflowName       *string        `json:"workflow_name"`
	Status             *string        `json:"status"`
	CreatedAt          *string        `json:"created_at"`
	StartedAt          *string        `json:"started_at"`
	FinishedAt         *string        `json:"finished_at"`
	AdditionalMetadata map[string]any `json:"additional_metadata"`
}

// WorkflowRecord is the flat projection of a workflow definition.
type WorkflowRecord struct {
	ID          string  `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Version     *string `json:"version"`
}

// FlattenRun projects a run into a RunRecord. Every upstream field is
// optional; additional_metadata defaults to an empty map so the key is
// always present in output.
func FlattenRun(run *hatchet.Run) RunRecord {
	rec := RunRecord{
		ID:                 resourceID(run.Metadata, *run),
		WorkflowID:         run.WorkflowID,
		WorkflowName:       run.WorkflowName,
		Status:             statusString(run.Status),
		CreatedAt:          timeString(run.CreatedAt),
		StartedAt:          timeString(run.StartedAt),
		FinishedAt:         timeString(run.FinishedAt),
		AdditionalMetadata: run.AdditionalMetadata,
	}
	if rec.AdditionalMetadata == nil {
		rec.AdditionalMetadata = map[string]any{}
	}
	return rec
}

// FlattenWorkflow projects a workflow definition into a WorkflowRecord.
func FlattenWorkflow(wf *hatchet.Workflow) WorkflowRecord {
	return WorkflowRecord{
		ID:          resourceID(wf.Metadata, *wf),
		Name:        wf.Name,
		Description: wf.Description,
		Version:     wf.Version,
	}
}

// resourceID returns the nested metadata ID when present, else the string
// rendering of the whole object. Some upstream shapes omit the metadata
// envelope entirely.
func resourceID(meta *hatchet.APIResourceMeta, obj any) string {
	if meta != nil && meta.ID != "" {
		return meta.ID
	}
	return fmt.Sprintf("%+v", obj)
}

func statusString(s *hatchet.RunStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

func timeString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}
