// Package article is the article-fetch collaborator: given a URL it
// returns the extracted main-body text, or the "Invalid article" label
// on any failure. Extraction failures are a user-input problem, never a
// pipeline error.
package article

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"github.com/ppiankov/scicheck/internal/cache"
	"github.com/ppiankov/scicheck/internal/logger"
	"github.com/ppiankov/scicheck/internal/model"
	"github.com/ppiankov/scicheck/internal/util"
)

// InvalidArticleLabel is the sentinel origin label for failed fetches.
const InvalidArticleLabel = "Invalid article"

// Extractor fetches a URL and reduces it to main-body text.
type Extractor struct {
	httpClient *http.Client
	robots     *RobotsChecker
	cache      cache.Cache // nil disables memoization
	cacheTTL   time.Duration
	userAgent  string
	maxBytes   int64
}

// NewExtractor creates an extractor. c may be nil to disable the
// session-scoped extraction memo.
func NewExtractor(cfg model.HTTPConfig, cacheCfg model.CacheConfig, c cache.Cache) *Extractor {
	if !cacheCfg.Enabled {
		c = nil
	}
	return &Extractor{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:    NewRobotsChecker(cfg.UserAgent, cfg.Timeout),
		cache:     c,
		cacheTTL:  cacheCfg.TTL,
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
	}
}

// FetchExtract fetches the URL and extracts its main-body text. On
// success the label is the URL itself; on any failure the text is empty
// and the label is InvalidArticleLabel. A robots.txt disallow counts as
// a failure.
func (e *Extractor) FetchExtract(ctx context.Context, rawURL string) (string, string) {
	if e.cache != nil {
		if cached, found := e.cache.Get(cache.Key(rawURL)); found {
			return string(cached), rawURL
		}
	}

	if !e.robots.IsAllowed(ctx, rawURL) {
		logger.Log.Warnf("robots.txt disallows fetching %s", rawURL)
		return "", InvalidArticleLabel
	}

	body, finalURL, err := e.fetch(ctx, rawURL)
	if err != nil {
		logger.Log.WithError(err).Warnf("article fetch failed for %s", rawURL)
		return "", InvalidArticleLabel
	}

	text := e.extract(body, finalURL)
	if text == "" {
		return "", InvalidArticleLabel
	}

	if e.cache != nil {
		_ = e.cache.Set(cache.Key(rawURL), []byte(text), e.cacheTTL)
	}

	return text, rawURL
}

// fetch downloads the page body, capped at maxBytes.
func (e *Extractor) fetch(ctx context.Context, rawURL string) (string, *url.URL, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBytes))
	if err != nil {
		return "", nil, fmt.Errorf("read body: %w", err)
	}

	return string(body), resp.Request.URL, nil
}

// extract runs readability over the page, falling back to a visible-text
// walk of the DOM when readability finds no content.
func (e *Extractor) extract(body string, pageURL *url.URL) string {
	art, err := readability.FromReader(strings.NewReader(body), pageURL)
	if err == nil {
		if text := strings.TrimSpace(art.TextContent); text != "" {
			return text
		}
	}

	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(visibleText(doc))
}

// visibleText collects text nodes, skipping script/style subtrees.
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}
