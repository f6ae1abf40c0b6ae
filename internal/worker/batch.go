package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/ppiankov/scicheck/internal/model"
)

// Runner analyzes a single article URL end to end and returns its
// RunState. Each URL gets its own independent RunState.
type Runner interface {
	AnalyzeURL(ctx context.Context, url string) (*model.RunState, error)
}

// AnalyzeJob is one URL analysis.
type AnalyzeJob struct {
	URL    string
	Runner Runner
}

// Execute runs the analysis.
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	run, err := j.Runner.AnalyzeURL(ctx, j.URL)
	return &AnalyzeResult{
		URL:   j.URL,
		Run:   run,
		Error: err,
	}
}

// AnalyzeResult is the outcome of one URL analysis.
type AnalyzeResult struct {
	URL   string
	Run   *model.RunState
	Error error
}

// GetError returns the job error.
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes multiple article URLs concurrently.
type BatchProcessor struct {
	runner      Runner
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(runner Runner, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
	}
}

// ProcessURLs analyzes all URLs concurrently and returns their results.
func (b *BatchProcessor) ProcessURLs(ctx context.Context, urls []string) []*AnalyzeResult {
	if len(urls) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, url := range urls {
		pool.Submit(&AnalyzeJob{URL: url, Runner: b.runner})
	}

	results := pool.Wait()

	analyzeResults := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		analyzeResults[i] = result.(*AnalyzeResult)
	}

	return analyzeResults
}

// ProcessFile reads URLs from a file (one per line, # comments) and
// analyzes them concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AnalyzeResult, error) {
	urls, err := ReadURLsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}

	return b.ProcessURLs(ctx, urls), nil
}

// ProcessFeed pulls the entry links out of an RSS/Atom feed and
// analyzes them concurrently.
func (b *BatchProcessor) ProcessFeed(ctx context.Context, feedURL string) ([]*AnalyzeResult, error) {
	urls, err := ReadURLsFromFeed(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}

	return b.ProcessURLs(ctx, urls), nil
}

// ReadURLsFromFile reads deduplicated URLs from a file, one per line,
// skipping blanks and # comments.
func ReadURLsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return urls, nil
}

// ReadURLsFromFeed parses an RSS/Atom feed and returns its deduplicated
// entry links in feed order.
func ReadURLsFromFeed(ctx context.Context, feedURL string) ([]string, error) {
	feed, err := gofeed.NewParser().ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	var urls []string
	seen := make(map[string]bool)
	for _, item := range feed.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" || seen[link] {
			continue
		}
		seen[link] = true
		urls = append(urls, link)
	}

	return urls, nil
}
