package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/job-aggregator/internal/envelope"
	"github.com/jonathan/job-aggregator/internal/fetch"
	"github.com/jonathan/job-aggregator/internal/logging"
	"github.com/jonathan/job-aggregator/internal/pipeline"
	"github.com/jonathan/job-aggregator/internal/sources"
)

var searchCommand = &cobra.Command{
	Use:   "search",
	Short: "Run one search request from stdin to stdout",
	Long: `Reads a JSON request envelope on stdin and writes the JSON response envelope on stdout.

The request carries the candidate resume data and the search filters. Source failures
never fail the run; they appear in the response "errors" array. Progress is reported
on stderr as "PROGRESS: <message> | <fraction>" lines.`,
	RunE: runSearchCmd,
}

var (
	searchInputPath  string
	searchLogLevel   string
	searchUseBrowser bool
	searchEnrich     bool
)

func init() {
	searchCommand.Flags().StringVarP(&searchInputPath, "input", "i", "", "Path to request JSON file (defaults to stdin)")
	searchCommand.Flags().StringVar(&searchLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	searchCommand.Flags().BoolVar(&searchUseBrowser, "use-browser", false, "Use headless browser for SPA job pages (requires Chrome)")
	searchCommand.Flags().BoolVar(&searchEnrich, "enrich", false, "Fetch web search result pages for full descriptions")

	rootCmd.AddCommand(searchCommand)
}

func runSearchCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.New(searchLogLevel)
	defer func() { _ = logger.Sync() }()

	var input io.Reader = os.Stdin
	if searchInputPath != "" {
		f, err := os.Open(searchInputPath)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		input = f
	}

	req, err := envelope.Decode(input)
	if err != nil {
		_ = envelope.WriteError(os.Stdout, err)
		return err
	}

	if req.Action != envelope.ActionSearch {
		// Unknown actions produce a valid empty response, not a failure.
		logger.Warn("unknown action", zap.String("action", req.Action))
		return envelope.WriteError(os.Stdout, fmt.Errorf("unknown action %q", req.Action))
	}

	req.Filters.ApplyDefaults()

	orch := pipeline.New(buildSources(req.Filters.ScrapingLevel, logger), pipeline.Options{
		Logger:     logger,
		OnProgress: pipeline.LineWriter(os.Stderr),
	})

	result, err := orch.Run(ctx, &req.ResumeData, &req.Filters)
	if err != nil {
		_ = envelope.WriteError(os.Stdout, err)
		return err
	}

	return envelope.Write(os.Stdout, result)
}

// buildSources assembles the adapter set. The API-backed boards are always
// on; web search is enabled only when its credentials are present.
func buildSources(tier string, logger *zap.Logger) []sources.Source {
	opts := fetch.DefaultOptions()

	srcs := []sources.Source{
		sources.NewGreenhouse(tier, sources.GreenhouseConfig{Fetch: opts, Logger: logger}),
		sources.NewLever(tier, sources.LeverConfig{Fetch: opts, Logger: logger}),
	}

	apiKey := os.Getenv("GOOGLE_SEARCH_API_KEY")
	searchCx := os.Getenv("GOOGLE_SEARCH_CX")
	if apiKey != "" && searchCx != "" {
		srcs = append(srcs, sources.NewWebSearch(tier, sources.WebSearchConfig{
			APIKey:     apiKey,
			SearchCX:   searchCx,
			Fetch:      opts,
			Logger:     logger,
			UseBrowser: searchUseBrowser,
			Enrich:     searchEnrich,
		}))
	} else {
		logger.Debug("web search disabled, credentials not set")
	}

	return srcs
}
