package introspect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GJakobi/hatchet-mcp/internal/hatchet"
	"github.com/GJakobi/hatchet-mcp/internal/introspect"
)

func TestTranslateStatus(t *testing.T) {
	cases := []struct {
		in   string
		want hatchet.RunStatus
	}{
		{"queued", hatchet.StatusQueued},
		{"QUEUED", hatchet.StatusQueued},
		{"running", hatchet.StatusRunning},
		{"Running", hatchet.StatusRunning},
		{"completed", hatchet.StatusCompleted},
		{"succeeded", hatchet.StatusCompleted},
		{"SuCcEeDeD", hatchet.StatusCompleted},
		{"failed", hatchet.StatusFailed},
		{"cancelled", hatchet.StatusCancelled},
		{"CANCELLED", hatchet.StatusCancelled},
	}
	for _, tc := range cases {
		got, ok := introspect.TranslateStatus(tc.in)
		require.True(t, ok, "expected %q to translate", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestTranslateStatus_SynonymsConverge(t *testing.T) {
	completed, ok := introspect.TranslateStatus("Completed")
	require.True(t, ok)
	succeeded, ok := introspect.TranslateStatus("SUCCEEDED")
	require.True(t, ok)
	assert.Equal(t, completed, succeeded)
}

func TestTranslateStatus_Unknown(t *testing.T) {
	for _, in := range []string{"", "done", "pending", "COMPLETE", "error"} {
		_, ok := introspect.TranslateStatus(in)
		assert.False(t, ok, "input %q", in)
	}
}
