package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds OTel metric instruments for MCP tool invocations.
type Metrics struct {
	ToolCalls   metric.Int64Counter
	ToolErrors  metric.Int64Counter
	ToolLatency metric.Float64Histogram
}

// NewMetrics creates the tool metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter("hatchet-mcp")

	toolCalls, err := meter.Int64Counter("hatchet_mcp.tool.calls",
		metric.WithDescription("Number of MCP tool invocations"),
	)
	if err != nil {
		return nil, err
	}

	toolErrors, err := meter.Int64Counter("hatchet_mcp.tool.errors",
		metric.WithDescription("Number of MCP tool invocations that returned an error value"),
	)
	if err != nil {
		return nil, err
	}

	toolLatency, err := meter.Float64Histogram("hatchet_mcp.tool.latency_seconds",
		metric.WithDescription("Wall time per MCP tool invocation"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		ToolCalls:   toolCalls,
		ToolErrors:  toolErrors,
		ToolLatency: toolLatency,
	}, nil
}

// RecordCall records one tool invocation and its duration.
// Safe on a nil receiver so callers can run without metrics wired.
func (m *Metrics) RecordCall(ctx context.Context, tool string, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("tool", tool))
	m.ToolCalls.Add(ctx, 1, attrs)
	m.ToolLatency.Record(ctx, d.Seconds(), attrs)
}

// RecordError records a tool invocation that produced an error value.
func (m *Metrics) RecordError(ctx context.Context, tool string) {
	if m == nil {
		return
	}
	m.ToolErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("tool", tool)))
}
