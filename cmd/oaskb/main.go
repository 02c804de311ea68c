package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/erraggy/oaskb"
	"github.com/erraggy/oaskb/ingest"
	"github.com/erraggy/oaskb/mcpsrv"
	"github.com/erraggy/oaskb/parser"
	"github.com/erraggy/oaskb/store"
)

// validCommands lists all valid command names for typo suggestions.
var validCommands = []string{"serve", "version", "help"}

// levenshteinDistance calculates the minimum edit distance between two strings.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := range len(b) + 1 {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}

	return matrix[len(a)][len(b)]
}

// suggestCommand returns the closest matching command if the edit distance is <= 2.
func suggestCommand(input string) string {
	var bestMatch string
	bestDistance := 3

	for _, cmd := range validCommands {
		dist := levenshteinDistance(input, cmd)
		if dist < bestDistance {
			bestDistance = dist
			bestMatch = cmd
		}
	}

	return bestMatch
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oaskb v%s\n", oaskb.Version())
		fmt.Printf("commit: %s\n", oaskb.Commit())
		fmt.Printf("built: %s\n", oaskb.BuildTime())
		fmt.Printf("go: %s\n", oaskb.GoVersion())
	case "help", "-h", "--help":
		printUsage()
	case "serve":
		if err := runServe(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean: %s?\n", suggestion)
		}
		fmt.Fprintf(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`oaskb - OpenAPI knowledge base MCP server

Usage:
  oaskb <command> [options]

Commands:
  serve       Ingest OpenAPI/Swagger documents and run the MCP server over stdio
  version     Show version information
  help        Show this help message

Serve options:
  -db string        SQLite database path (default "oaskb.db")
  -ingest string     Comma-separated OpenAPI/Swagger files to ingest before serving
  -health            Print a one-shot health summary instead of serving
  -log-level string  debug, info, warn, or error (default "info")

Examples:
  oaskb serve -db oaskb.db -ingest petstore.yaml
  oaskb serve -db oaskb.db -health
  oaskb version

Run 'oaskb serve -h' for the full flag list.`)
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	dbPath := fs.String("db", "oaskb.db", "SQLite database path")
	ingestFiles := fs.String("ingest", "", "comma-separated OpenAPI/Swagger files to ingest before serving")
	health := fs.Bool("health", false, "print a one-shot health summary and exit")
	logLevel := fs.String("log-level", "info", "debug, info, warn, or error")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(*logLevel)}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := store.DefaultConfig(*dbPath)
	db, err := store.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := store.MigrateToLatest(ctx, db, false); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	serverCfg := mcpsrv.LoadConfig()
	sc := mcpsrv.NewServerContext(db, serverCfg)

	if serverCfg.MetricsAddr != "" && sc.Metrics != nil {
		metricsSrv := &http.Server{Addr: serverCfg.MetricsAddr, Handler: sc.Metrics.Handler()}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
		go func() {
			<-ctx.Done()
			_ = metricsSrv.Close()
		}()
		logger.Info("serving prometheus metrics", "addr", serverCfg.MetricsAddr)
	}

	for _, path := range splitNonEmpty(*ingestFiles) {
		apiID, err := runIngest(ctx, db, logger, path)
		if err != nil {
			return fmt.Errorf("ingest %s: %w", path, err)
		}
		if err := sc.RefreshIndex(ctx, apiID); err != nil {
			return fmt.Errorf("refresh index for %s: %w", path, err)
		}
		logger.Info("ingested document", "file", path, "api_id", apiID)
	}

	if *health {
		return printHealth(ctx, sc)
	}

	logger.Info("starting mcp server", "db", *dbPath)
	return mcpsrv.Run(ctx, sc, oaskb.Version())
}

func runIngest(ctx context.Context, db *store.DB, logger *slog.Logger, path string) (int64, error) {
	pipeline := ingest.New(db)
	pipeline.Log = parser.NewSlogAdapter(logger)
	result, err := pipeline.Run(ctx, path)
	if err != nil {
		return 0, err
	}
	return result.APIID, nil
}

func printHealth(ctx context.Context, sc *mcpsrv.ServerContext) error {
	overall := sc.Health.GetOverallHealth(ctx, sc.DB, sc)

	statusColor := color.New(color.FgGreen)
	switch overall.Status {
	case "degraded":
		statusColor = color.New(color.FgYellow)
	case "unhealthy":
		statusColor = color.New(color.FgRed)
	}
	statusColor.Printf("status: %s\n", overall.Status)
	fmt.Printf("message: %s\n", overall.Message)
	fmt.Printf("uptime: %.0fs\n", overall.UptimeSeconds)
	for name, comp := range overall.Components {
		compColor := color.New(color.FgGreen)
		switch comp.Status {
		case "degraded":
			compColor = color.New(color.FgYellow)
		case "unhealthy":
			compColor = color.New(color.FgRed)
		}
		compColor.Printf("  %-12s %-10s %s\n", name, comp.Status, comp.Message)
	}

	encoded, err := json.MarshalIndent(overall, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}
