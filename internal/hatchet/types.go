// Package hatchet provides an HTTP client for the Hatchet REST API.
package hatchet

import "time"

// RunStatus is the Hatchet task status enumeration as it appears on the wire.
type RunStatus string

const (
	StatusQueued    RunStatus = "QUEUED"
	StatusRunning   RunStatus = "RUNNING"
	StatusCompleted RunStatus = "COMPLETED"
	StatusFailed    RunStatus = "FAILED"
	StatusCancelled RunStatus = "CANCELLED"
)

func (s RunStatus) Valid() bool {
	switch s {
	case StatusQueued, StatusRunning, StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// APIResourceMeta is the metadata envelope Hatchet attaches to API resources.
type APIResourceMeta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Workflow is a registered workflow definition. API versions differ in which
// fields they populate, so everything beyond the metadata envelope is optional.
type Workflow struct {
	Metadata    *APIResourceMeta `json:"metadata,omitempty"`
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Version     *string          `json:"version,omitempty"`
}

// Run is one execution of a workflow.
type Run struct {
	Metadata           *APIResourceMeta `json:"metadata,omitempty"`
	WorkflowID         *string          `json:"workflowId,omitempty"`
	WorkflowName       *string          `json:"workflowName,omitempty"`
	Status             *RunStatus       `json:"status,omitempty"`
	CreatedAt          *time.Time       `json:"createdAt,omitempty"`
	StartedAt          *time.Time       `json:"startedAt,omitempty"`
	FinishedAt         *time.Time       `json:"finishedAt,omitempty"`
	AdditionalMetadata map[string]any   `json:"additionalMetadata,omitempty"`
}

// RunFilter is the typed query-parameter set accepted by ListRuns. Zero
// values mean "no filter" for the optional fields, which keeps illegal
// filter combinations unrepresentable compared to an open-ended param map.
type RunFilter struct {
	// Since bounds the query to runs created at or after this instant.
	Since time.Time
	// Limit caps the number of returned rows.
	Limit int
	// Statuses restricts results to runs in any of the given statuses.
	Statuses []RunStatus
	// WorkflowIDs restricts results to runs of the given workflow definitions.
	WorkflowIDs []string
	// AdditionalMetadata requires exact key/value matches on run metadata.
	AdditionalMetadata map[string]string
}

type workflowList struct {
	Rows []Workflow `json:"rows"`
}

type runList struct {
	Rows []Run `json:"rows"`
}
