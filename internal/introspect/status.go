// Package introspect implements read-only query operations over Hatchet
// workflows and runs, flattened into JSON-friendly records.
package introspect

import (
	"strings"

	"github.com/GJakobi/hatchet-mcp/internal/hatchet"
)

// statusNames maps human status names to Hatchet run statuses. Both
// "completed" and "succeeded" resolve to COMPLETED.
var statusNames = map[string]hatchet.RunStatus{
	"queued":    hatchet.StatusQueued,
	"running":   hatchet.StatusRunning,
	"completed": hatchet.StatusCompleted,
	"succeeded": hatchet.StatusCompleted,
	"failed":    hatchet.StatusFailed,
	"cancelled": hatchet.StatusCancelled,
}

// TranslateStatus resolves a case-insensitive human status name to a run
// status. Unknown names return ok=false; callers treat that as "no status
// filter", never as an error.
func TranslateStatus(name string) (hatchet.RunStatus, bool) {
	s, ok := statusNames[strings.ToLower(name)]
	return s, ok
}
