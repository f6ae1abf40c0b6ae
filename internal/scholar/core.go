package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ppiankov/scicheck/internal/model"
)

// COREClient searches the CORE full-text index.
type COREClient struct {
	httpClient *http.Client
	baseURL    string
	pageSize   int
	userAgent  string
	urlFields  []string
}

// NewCOREClient creates a CORE client. urlFields is the ordered
// precedence for picking a result URL; the upstream schema has shifted
// between downloadUrl, urls and fulltextUrls over time, so the order
// comes from configuration.
func NewCOREClient(cfg model.ScholarConfig, timeout time.Duration) *COREClient {
	pageSize := cfg.Rows
	if pageSize <= 0 {
		pageSize = 3
	}
	urlFields := cfg.COREURLFields
	if len(urlFields) == 0 {
		urlFields = []string{"downloadUrl", "urls", "fulltextUrls"}
	}
	return &COREClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.COREURL, "/"),
		pageSize:   pageSize,
		userAgent:  "SciCheck/0.1",
		urlFields:  urlFields,
	}
}

// Name returns the client name.
func (c *COREClient) Name() string {
	return "core"
}

type coreResponse struct {
	Data []coreRecord `json:"data"`
}

type coreRecord struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	DownloadURL  string   `json:"downloadUrl"`
	URLs         []string `json:"urls"`
	FulltextURLs []string `json:"fulltextUrls"`
}

// pickURL walks the configured field precedence and returns the first
// non-empty candidate.
func (c *COREClient) pickURL(rec coreRecord) string {
	for _, field := range c.urlFields {
		switch field {
		case "downloadUrl":
			if rec.DownloadURL != "" {
				return rec.DownloadURL
			}
		case "urls":
			if len(rec.URLs) > 0 && rec.URLs[0] != "" {
				return rec.URLs[0]
			}
		case "fulltextUrls":
			if len(rec.FulltextURLs) > 0 && rec.FulltextURLs[0] != "" {
				return rec.FulltextURLs[0]
			}
		}
	}
	return ""
}

// Search queries the full-text index with the query embedded in the
// path. Non-2xx responses and malformed bodies yield an empty list.
func (c *COREClient) Search(ctx context.Context, query string) ([]model.EvidenceItem, error) {
	reqURL := fmt.Sprintf("%s/%s?page=1&pageSize=%d&metadata=true", c.baseURL, url.PathEscape(query), c.pageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("core request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed coreResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, nil
	}

	var items []model.EvidenceItem
	for _, rec := range parsed.Data {
		if len(items) >= c.pageSize {
			break
		}
		title := PlaceholderTitle
		if rec.Title != "" {
			title = rec.Title
		}
		abstract := PlaceholderAbstract
		if rec.Description != "" {
			abstract = rec.Description
		}
		items = append(items, model.EvidenceItem{
			Title:    title,
			Abstract: abstract,
			URL:      c.pickURL(rec),
		})
	}

	return items, nil
}
