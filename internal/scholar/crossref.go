package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/ppiankov/scicheck/internal/model"
)

// jatsTagPattern strips the JATS markup Crossref embeds in abstracts.
var jatsTagPattern = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)

// CrossrefClient searches the Crossref works index.
type CrossrefClient struct {
	httpClient *http.Client
	baseURL    string
	rows       int
	userAgent  string
}

// NewCrossrefClient creates a Crossref client. The mailto address joins
// the Crossref polite pool via the User-Agent header.
func NewCrossrefClient(cfg model.ScholarConfig, timeout time.Duration) *CrossrefClient {
	rows := cfg.Rows
	if rows <= 0 {
		rows = 3
	}
	return &CrossrefClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.CrossrefURL, "/"),
		rows:       rows,
		userAgent:  fmt.Sprintf("SciCheck/0.1 (mailto:%s)", cfg.Mailto),
	}
}

// Name returns the client name.
func (c *CrossrefClient) Name() string {
	return "crossref"
}

type crossrefResponse struct {
	Message struct {
		Items []struct {
			Title    []string `json:"title"`
			Abstract string   `json:"abstract"`
			URL      string   `json:"URL"`
		} `json:"items"`
	} `json:"message"`
}

// Search queries the works index with the raw claim text. Non-2xx
// responses and malformed bodies yield an empty list, not an error.
func (c *CrossrefClient) Search(ctx context.Context, query string) ([]model.EvidenceItem, error) {
	reqURL := fmt.Sprintf("%s?query=%s&rows=%d", c.baseURL, url.QueryEscape(query), c.rows)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("crossref request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed crossrefResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, nil
	}

	var items []model.EvidenceItem
	for _, item := range parsed.Message.Items {
		if len(items) >= c.rows {
			break
		}
		title := PlaceholderTitle
		if len(item.Title) > 0 && item.Title[0] != "" {
			title = item.Title[0]
		}
		abstract := PlaceholderAbstract
		if item.Abstract != "" {
			abstract = strings.TrimSpace(jatsTagPattern.ReplaceAllString(item.Abstract, ""))
		}
		items = append(items, model.EvidenceItem{
			Title:    title,
			Abstract: abstract,
			URL:      item.URL,
		})
	}

	return items, nil
}
