// Command hatchet-debug queries Hatchet run and workflow state from the
// terminal, using the same operations the MCP server exposes.
//
// Usage:
//
//	hatchet-debug workflows
//	hatchet-debug runs     [--workflow NAME] [--status S] [--since-hours N] [--limit N]
//	hatchet-debug status   --run-id ID
//	hatchet-debug result   --run-id ID
//	hatchet-debug metrics  [--workflow NAME]
//	hatchet-debug search   --key K --value V [--status S] [--since-hours N] [--limit N]
//	hatchet-debug snapshot
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/GJakobi/hatchet-mcp/internal/hatchet"
	"github.com/GJakobi/hatchet-mcp/internal/introspect"
	"github.com/GJakobi/hatchet-mcp/internal/observability"
)

func main() {
	_ = godotenv.Load()
	observability.InitLogger(os.Getenv("LOG_LEVEL"))

	if len(os.Args) < 2 {
		usage()
	}

	svc := introspect.NewService(hatchet.Default)
	ctx := context.Background()

	switch os.Args[1] {
	case "workflows":
		cmdWorkflows(ctx, svc)
	case "runs":
		cmdRuns(ctx, svc, os.Args[2:])
	case "status":
		cmdStatus(ctx, svc, os.Args[2:])
	case "result":
		cmdResult(ctx, svc, os.Args[2:])
	case "metrics":
		cmdMetrics(ctx, svc, os.Args[2:])
	case "search":
		cmdSearch(ctx, svc, os.Args[2:])
	case "snapshot":
		cmdSnapshot(ctx, svc)
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: hatchet-debug <workflows|runs|status|result|metrics|search|snapshot> [flags]")
	os.Exit(1)
}

func cmdWorkflows(ctx context.Context, svc *introspect.Service) {
	records, err := svc.ListWorkflows(ctx)
	if err != nil {
		log.Fatalf("list workflows: %v", err)
	}
	printJSON(records)
}

func cmdRuns(ctx context.Context, svc *introspect.Service, args []string) {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	workflow := fs.String("workflow", "", "filter by workflow name")
	status := fs.String("status", "", "filter by status (queued, running, completed, failed, cancelled)")
	sinceHours := fs.Int("since-hours", 24, "how many hours back to search")
	limit := fs.Int("limit", 50, "maximum runs to return")
	_ = fs.Parse(args)

	records, err := svc.ListRuns(ctx, introspect.ListRunsParams{
		WorkflowName: *workflow,
		Status:       *status,
		SinceHours:   *sinceHours,
		Limit:        *limit,
	})
	if err != nil {
		log.Fatalf("list runs: %v", err)
	}
	printJSON(records)
}

func cmdStatus(ctx context.Context, svc *introspect.Service, args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	runID := fs.String("run-id", "", "run ID (required)")
	_ = fs.Parse(args)

	if *runID == "" {
		fs.Usage()
		os.Exit(1)
	}
	record, err := svc.GetRunStatus(ctx, *runID)
	if err != nil {
		log.Fatalf("get run status: %v", err)
	}
	printJSON(record)
}

func cmdResult(ctx context.Context, svc *introspect.Service, args []string) {
	fs := flag.NewFlagSet("result", flag.ExitOnError)
	runID := fs.String("run-id", "", "run ID (required)")
	_ = fs.Parse(args)

	if *runID == "" {
		fs.Usage()
		os.Exit(1)
	}
	result, err := svc.GetRunResult(ctx, *runID)
	if err != nil {
		log.Fatalf("get run result: %v", err)
	}
	printJSON(result)
}

func cmdMetrics(ctx context.Context, svc *introspect.Service, args []string) {
	fs := flag.NewFlagSet("metrics", flag.ExitOnError)
	workflow := fs.String("workflow", "", "filter by workflow name")
	_ = fs.Parse(args)

	metrics, err := svc.GetQueueMetrics(ctx, *workflow)
	if err != nil {
		log.Fatalf("get queue metrics: %v", err)
	}
	printJSON(metrics)
}

func cmdSearch(ctx context.Context, svc *introspect.Service, args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	key := fs.String("key", "", "metadata key (required)")
	value := fs.String("value", "", "metadata value (required)")
	status := fs.String("status", "", "filter by status")
	sinceHours := fs.Int("since-hours", 24, "how many hours back to search")
	limit := fs.Int("limit", 50, "maximum runs to return")
	_ = fs.Parse(args)

	if *key == "" || *value == "" {
		fs.Usage()
		os.Exit(1)
	}
	records, err := svc.SearchRuns(ctx, introspect.SearchRunsParams{
		MetadataKey:   *key,
		MetadataValue: *value,
		Status:        *status,
		SinceHours:    *sinceHours,
		Limit:         *limit,
	})
	if err != nil {
		log.Fatalf("search runs: %v", err)
	}
	printJSON(records)
}

// cmdSnapshot fetches the workflow list and queue metrics in parallel for a
// one-shot overview of the tenant.
func cmdSnapshot(ctx context.Context, svc *introspect.Service) {
	g, ctx := errgroup.WithContext(ctx)

	var workflows []introspect.WorkflowRecord
	var metrics introspect.QueueMetrics

	g.Go(func() error {
		var err error
		workflows, err = svc.ListWorkflows(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		metrics, err = svc.GetQueueMetrics(ctx, "")
		return err
	})
	if err := g.Wait(); err != nil {
		log.Fatalf("snapshot: %v", err)
	}

	printJSON(map[string]any{
		"workflows":     workflows,
		"queue_metrics": metrics,
	})
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("marshal output: %v", err)
	}
	fmt.Println(string(data))
}
