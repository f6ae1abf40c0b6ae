package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/scicheck/internal/article"
	"github.com/ppiankov/scicheck/internal/linkcheck"
	"github.com/ppiankov/scicheck/internal/model"
	"github.com/ppiankov/scicheck/internal/pipeline"
)

var (
	focus         string
	withEvidence  bool
	withQuestions bool
	withReports   bool
	llmProvider   string
	llmModel      string
	temperature   float32
	outJSON       string
	outMD         string
	checkLinks    bool
	timeout       time.Duration
	userAgent     string
	maxBytes      int64
	noCache       bool
	noFooter      bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <url | file | ->",
	Short: "Extract and verify the claims in an article or text",
	Long: `Analyze runs the full claim pipeline over one input:
- Extract a numbered list of explicit, testable claims
- Ask the model for a verdict on each claim
- Optionally gather scholarly abstracts and reassess with evidence
- Optionally generate research questions and reports per claim

The input is a URL (fetched and reduced to main-body text), a local
text file, or "-" for stdin.

Example:
  scicheck analyze https://example.com/article
  scicheck analyze notes.txt --focus scientific --evidence
  scicheck analyze - --questions --reports --json run.json
  scicheck analyze https://example.com --provider openai --model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Pipeline flags
	analyzeCmd.Flags().StringVar(&focus, "focus", "general", "analysis focus (general, scientific, technology)")
	analyzeCmd.Flags().BoolVar(&withEvidence, "evidence", false, "gather scholarly evidence and reassess each claim")
	analyzeCmd.Flags().BoolVar(&withQuestions, "questions", false, "generate research questions per claim")
	analyzeCmd.Flags().BoolVar(&withReports, "reports", false, "generate a research report per question (implies --questions)")

	// LLM flags
	analyzeCmd.Flags().StringVar(&llmProvider, "provider", "openrouter", "LLM provider (openrouter, openai)")
	analyzeCmd.Flags().StringVar(&llmModel, "model", "openai/gpt-3.5-turbo", "LLM model name")
	analyzeCmd.Flags().Float32Var(&temperature, "temperature", 0, "completion temperature (extraction always runs at 0)")

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().BoolVar(&checkLinks, "check-links", false, "probe the source URLs cited in verdicts after the run")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// HTTP flags
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request HTTP timeout")
	analyzeCmd.Flags().StringVar(&userAgent, "ua", "SciCheck/0.1 (+https://github.com/ppiankov/scicheck)", "HTTP User-Agent")
	analyzeCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the article cache (force fresh fetch)")
}

// buildConfig assembles the run configuration: built-in defaults, then
// the viper-loaded config file, then explicitly set flags. A flag left
// at its default does not mask a config-file value.
func buildConfig(cmd *cobra.Command) *model.Config {
	cfg := model.DefaultConfig()
	applyFileConfig(cfg)

	flags := cmd.Flags()
	if flags.Changed("timeout") {
		cfg.HTTP.Timeout = timeout
	}
	if flags.Changed("ua") {
		cfg.HTTP.UserAgent = userAgent
	}
	if flags.Changed("max-bytes") {
		cfg.HTTP.MaxBodyBytes = maxBytes
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("no-footer") {
		cfg.Output.IncludeFooter = !noFooter
	}
	if flags.Changed("check-links") {
		cfg.LinkCheck.Enabled = checkLinks
	}
	if flags.Changed("provider") {
		cfg.LLM.Provider = llmProvider
	}
	if flags.Changed("model") {
		cfg.LLM.Model = llmModel
	}
	if flags.Changed("temperature") {
		cfg.LLM.Temperature = temperature
	}
	if flags.Changed("focus") {
		cfg.Analysis.Focus = focus
	}
	if flags.Changed("evidence") {
		cfg.Analysis.WithEvidence = withEvidence
	}
	if flags.Changed("questions") {
		cfg.Analysis.WithQuestions = withQuestions
	}
	if flags.Changed("reports") {
		cfg.Analysis.WithReports = withReports
	}
	if cfg.Analysis.WithReports {
		cfg.Analysis.WithQuestions = true
	}

	if v := os.Getenv("HTTP_PROXY"); v != "" {
		cfg.HTTP.HTTPProxy = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.HTTP.HTTPSProxy = v
	}
	if v := os.Getenv("NO_PROXY"); v != "" {
		cfg.HTTP.NoProxy = v
	}
	cfg.Output.Verbose = verbose

	// A blank key is allowed here; it fails on the first remote call.
	switch strings.ToLower(cfg.LLM.Provider) {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	default:
		cfg.LLM.APIKey = os.Getenv("OPENROUTER_API_KEY")
	}

	return cfg
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	cfg := buildConfig(cmd)
	if err := validateFocus(cfg.Analysis.Focus); err != nil {
		return err
	}

	runner, err := newURLRunner(cfg)
	if err != nil {
		return err
	}

	var run *model.RunState

	if isURL(input) {
		if verbose {
			fmt.Fprintf(os.Stderr, "Fetching: %s\n", input)
		}
		text, label := runner.extractor.FetchExtract(ctx, input)
		if label == article.InvalidArticleLabel {
			// A bad URL is a user-input problem, not a pipeline failure.
			fmt.Fprintf(os.Stderr, "⚠ Could not extract an article from %s; nothing to analyze\n", input)
			return nil
		}
		run, err = runner.analyzer.Run(ctx, model.Source{Text: text, Origin: input})
	} else {
		text, readErr := readText(input)
		if readErr != nil {
			return fmt.Errorf("read input: %w", readErr)
		}
		run, err = runner.analyzer.Run(ctx, model.Source{Text: text, Origin: model.OriginUserInput})
	}
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	renderer.RenderSummary(run, os.Stdout)

	if outJSON != "" {
		if err := renderer.RenderJSON(run, outJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", outJSON)
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(run, outMD); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", outMD)
	}

	if cfg.LinkCheck.Enabled {
		reportLinkCheck(ctx, cfg, run)
	}

	return nil
}

// reportLinkCheck probes the cited URLs and prints their status.
func reportLinkCheck(ctx context.Context, cfg *model.Config, run *model.RunState) {
	urls := pipeline.SourceURLs(run)
	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "No source URLs cited in verdicts")
		return
	}

	checker := linkcheck.NewChecker(cfg.LinkCheck, cfg.HTTP)
	fmt.Fprintf(os.Stderr, "\nChecking %d cited URLs...\n", len(urls))

	for _, result := range checker.Check(ctx, urls) {
		switch {
		case result.Accessible:
			fmt.Fprintf(os.Stderr, "  ✓ [%s] %s\n", result.Authority, result.URL)
		case result.Dead:
			fmt.Fprintf(os.Stderr, "  ✗ [%s] %s (dead)\n", result.Authority, result.URL)
		default:
			fmt.Fprintf(os.Stderr, "  ? [%s] %s (%s)\n", result.Authority, result.URL, result.Error)
		}
	}
}

// validateFocus rejects anything outside the closed focus set.
func validateFocus(f string) error {
	for _, known := range model.AllFocuses {
		if model.Focus(f) == known {
			return nil
		}
	}
	return fmt.Errorf("unknown focus: %s (run 'scicheck focuses' to list them)", f)
}

// isURL reports whether the input names a web page rather than a file.
func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// readText reads the analysis text from a file, or stdin for "-".
func readText(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
