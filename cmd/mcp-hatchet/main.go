// Command mcp-hatchet runs the MCP tool server for Hatchet run and workflow
// introspection. Uses stdio transport for integration with AI assistants.
//
// Requires HATCHET_CLIENT_TOKEN. The Hatchet client is constructed on the
// first tool call, so a missing or invalid token surfaces as that tool's
// error value rather than a startup crash.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/GJakobi/hatchet-mcp/internal/hatchet"
	"github.com/GJakobi/hatchet-mcp/internal/introspect"
	"github.com/GJakobi/hatchet-mcp/internal/mcpserver"
	"github.com/GJakobi/hatchet-mcp/internal/observability"
)

func main() {
	_ = godotenv.Load()
	observability.InitLogger(os.Getenv("LOG_LEVEL"))

	ctx := context.Background()
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		shutdown, err := observability.InitTracer(ctx, "hatchet-mcp")
		if err != nil {
			slog.Error("tracing init failed", "error", err)
			os.Exit(1)
		}
		defer shutdown(ctx)
	}

	metrics, err := observability.NewMetrics()
	if err != nil {
		slog.Error("metrics init failed", "error", err)
		os.Exit(1)
	}

	svc := introspect.NewService(hatchet.Default)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "hatchet-debug-server",
		Version: "v1.0.0",
	}, nil)
	mcpserver.RegisterTools(server, svc, metrics)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		slog.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
