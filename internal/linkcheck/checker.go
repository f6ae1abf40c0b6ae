// Package linkcheck verifies the source URLs cited in parsed verdicts
// after a run. Results are informational only; they never change a
// verdict. Concurrency exists here because the checks are independent
// of the pipeline, which stays sequential.
package linkcheck

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/ppiankov/scicheck/internal/model"
	"github.com/ppiankov/scicheck/internal/util"
	"github.com/ppiankov/scicheck/internal/worker"
)

// Result is the outcome of checking a single cited URL.
type Result struct {
	URL        string `json:"url"`
	Accessible bool   `json:"accessible"`
	StatusCode int    `json:"status_code,omitempty"`
	Dead       bool   `json:"dead"` // 404 or 410
	Redirected string `json:"redirected,omitempty"`
	Authority  Tier   `json:"authority"`
	Error      string `json:"error,omitempty"`
}

// Checker probes cited URLs concurrently with HEAD requests.
type Checker struct {
	httpClient *http.Client
	workers    int
	limiter    *worker.Limiter
	userAgent  string
}

// NewChecker creates a checker.
func NewChecker(cfg model.LinkCheckConfig, httpCfg model.HTTPConfig) *Checker {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 10
	}
	return &Checker{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		workers:   workers,
		limiter:   worker.NewLimiter(cfg.RequestsPerSecond, cfg.BurstSize),
		userAgent: httpCfg.UserAgent,
	}
}

// Check probes all URLs concurrently, bounded by the worker count and
// the per-host rate limiter. Results come back in input order.
func (c *Checker) Check(ctx context.Context, urls []string) []Result {
	if len(urls) == 0 {
		return []Result{}
	}

	results := make([]Result, len(urls))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, c.workers)

	for i, u := range urls {
		wg.Add(1)
		go func(idx int, rawURL string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = Result{URL: rawURL, Error: "context cancelled", Authority: Classify(rawURL)}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = c.checkOne(ctx, rawURL)
		}(i, u)
	}

	wg.Wait()
	return results
}

// checkOne probes a single URL with a HEAD request.
func (c *Checker) checkOne(ctx context.Context, rawURL string) Result {
	result := Result{
		URL:       rawURL,
		Authority: Classify(rawURL),
	}

	if err := c.limiter.Wait(ctx, rawURL); err != nil {
		result.Error = fmt.Sprintf("rate limit wait: %v", err)
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		result.Error = fmt.Sprintf("create request: %v", err)
		result.Dead = true
		return result
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		result.Dead = true
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode
	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		result.Accessible = true
	} else if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		result.Dead = true
	}

	if resp.Request.URL.String() != rawURL {
		result.Redirected = resp.Request.URL.String()
	}

	return result
}
