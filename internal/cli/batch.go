package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/scicheck/internal/pipeline"
	"github.com/ppiankov/scicheck/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	fromFeed     bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file | feed-url>",
	Short: "Analyze multiple URLs in parallel",
	Long: `Batch analyzes multiple article URLs concurrently:
- Read URLs from a file (one per line, # comments) or an RSS/Atom feed
- Run the full claim pipeline per URL with a configurable worker count
- Write an individual JSON and Markdown report per URL

Example:
  scicheck batch urls.txt
  scicheck batch urls.txt --concurrency 4 --output-dir ./reports
  scicheck batch https://example.com/feed.xml --feed --evidence`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./scicheck-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "batch-timeout", 30*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&fromFeed, "feed", false, "treat the argument as an RSS/Atom feed URL")

	// Pipeline flags, shared with analyze
	batchCmd.Flags().StringVar(&focus, "focus", "general", "analysis focus (general, scientific, technology)")
	batchCmd.Flags().BoolVar(&withEvidence, "evidence", false, "gather scholarly evidence and reassess each claim")
	batchCmd.Flags().BoolVar(&withQuestions, "questions", false, "generate research questions per claim")
	batchCmd.Flags().BoolVar(&withReports, "reports", false, "generate a research report per question (implies --questions)")

	// LLM flags
	batchCmd.Flags().StringVar(&llmProvider, "provider", "openrouter", "LLM provider (openrouter, openai)")
	batchCmd.Flags().StringVar(&llmModel, "model", "openai/gpt-3.5-turbo", "LLM model name")
	batchCmd.Flags().Float32Var(&temperature, "temperature", 0, "completion temperature (extraction always runs at 0)")

	// HTTP flags
	batchCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request HTTP timeout")
	batchCmd.Flags().StringVar(&userAgent, "ua", "SciCheck/0.1 (+https://github.com/ppiankov/scicheck)", "HTTP User-Agent")
	batchCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the article cache (force fresh fetch)")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := buildConfig(cmd)
	if err := validateFocus(cfg.Analysis.Focus); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\nSciCheck batch\n")
	fmt.Fprintf(os.Stderr, "  Input:    %s\n", input)
	fmt.Fprintf(os.Stderr, "  Workers:  %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Model:    %s/%s\n\n", cfg.LLM.Provider, cfg.LLM.Model)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	runner, err := newURLRunner(cfg)
	if err != nil {
		return err
	}
	processor := worker.NewBatchProcessor(runner, concurrency)

	var results []*worker.AnalyzeResult
	if fromFeed {
		results, err = processor.ProcessFeed(ctx, input)
	} else {
		results, err = processor.ProcessFile(ctx, input)
	}
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	successCount := 0
	failureCount := 0
	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.URL, result.Error)
			continue
		}

		slug := slugifyURL(result.URL)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Run, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: write JSON: %v\n", result.URL, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Run, mdPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: write Markdown: %v\n", result.URL, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s (%d claims)\n", result.URL, len(result.Run.Claims))
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d succeeded, %d failed, reports in %s\n",
		successCount, failureCount, outputDir)

	if failureCount > 0 && successCount == 0 {
		return fmt.Errorf("all %d URLs failed", failureCount)
	}
	return nil
}

// slugifyURL turns a URL into a safe, reasonably unique filename stem.
func slugifyURL(rawURL string) string {
	s := rawURL
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Host != "" {
		s = parsed.Host + parsed.Path
	}

	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
		".", "-",
	)
	s = strings.Trim(replacer.Replace(s), "_-")

	if s == "" {
		s = "report"
	}
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
