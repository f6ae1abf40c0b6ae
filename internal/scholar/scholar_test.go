package scholar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ppiankov/scicheck/internal/model"
)

func crossrefConfig(baseURL string) model.ScholarConfig {
	cfg := model.DefaultConfig().Scholar
	cfg.CrossrefURL = baseURL
	return cfg
}

func coreConfig(baseURL string) model.ScholarConfig {
	cfg := model.DefaultConfig().Scholar
	cfg.COREURL = baseURL
	return cfg
}

func TestCrossrefClient_Search_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "water boils" {
			t.Errorf("Expected query param %q, got %q", "water boils", got)
		}
		if got := r.URL.Query().Get("rows"); got != "3" {
			t.Errorf("Expected rows=3, got %q", got)
		}
		_, _ = w.Write([]byte(`{"message": {"items": [
			{"title": ["Boiling points of water"], "abstract": "<jats:p>Water boils.</jats:p>", "URL": "https://doi.org/10.1/a"},
			{"abstract": "No title here.", "URL": "https://doi.org/10.1/b"},
			{"title": ["Third"], "URL": ""},
			{"title": ["Fourth, beyond the cap"], "URL": "https://doi.org/10.1/d"}
		]}}`))
	}))
	defer server.Close()

	client := NewCrossrefClient(crossrefConfig(server.URL), 5*time.Second)

	items, err := client.Search(context.Background(), "water boils")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Expected 3 items (capped), got %d", len(items))
	}
	if items[0].Title != "Boiling points of water" {
		t.Errorf("Unexpected title: %q", items[0].Title)
	}
	if items[0].Abstract != "Water boils." {
		t.Errorf("Expected JATS tags stripped, got %q", items[0].Abstract)
	}
	if items[1].Title != PlaceholderTitle {
		t.Errorf("Expected title placeholder, got %q", items[1].Title)
	}
	if items[2].Abstract != PlaceholderAbstract {
		t.Errorf("Expected abstract placeholder, got %q", items[2].Abstract)
	}
	if items[2].URL != "" {
		t.Errorf("Expected empty URL to stay empty, got %q", items[2].URL)
	}
}

func TestCrossrefClient_Search_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewCrossrefClient(crossrefConfig(server.URL), 5*time.Second)

	items, err := client.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Expected no error on non-2xx, got %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected empty result on non-2xx, got %d items", len(items))
	}
}

func TestCrossrefClient_Search_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := NewCrossrefClient(crossrefConfig(server.URL), 5*time.Second)

	items, err := client.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Expected no error on malformed body, got %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected empty result on malformed body, got %d items", len(items))
	}
}

func TestCOREClient_Search_URLPrecedence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("pageSize"); got != "3" {
			t.Errorf("Expected pageSize=3, got %q", got)
		}
		_, _ = w.Write([]byte(`{"data": [
			{"title": "Paper A", "description": "About A", "downloadUrl": "https://core.example/a.pdf", "urls": ["https://core.example/a"]},
			{"title": "Paper B", "urls": ["https://core.example/b"]},
			{"title": "Paper C", "fulltextUrls": ["https://core.example/c"]}
		]}`))
	}))
	defer server.Close()

	client := NewCOREClient(coreConfig(server.URL), 5*time.Second)

	items, err := client.Search(context.Background(), "claim text")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	if items[0].URL != "https://core.example/a.pdf" {
		t.Errorf("Expected downloadUrl to win, got %q", items[0].URL)
	}
	if items[1].URL != "https://core.example/b" {
		t.Errorf("Expected urls[0] fallback, got %q", items[1].URL)
	}
	if items[2].URL != "https://core.example/c" {
		t.Errorf("Expected fulltextUrls[0] fallback, got %q", items[2].URL)
	}
	if items[1].Abstract != PlaceholderAbstract {
		t.Errorf("Expected abstract placeholder, got %q", items[1].Abstract)
	}
}

func TestCOREClient_Search_CustomPrecedence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [
			{"title": "Paper A", "downloadUrl": "https://core.example/a.pdf", "urls": ["https://core.example/a"]}
		]}`))
	}))
	defer server.Close()

	cfg := coreConfig(server.URL)
	cfg.COREURLFields = []string{"urls", "downloadUrl"}
	client := NewCOREClient(cfg, 5*time.Second)

	items, err := client.Search(context.Background(), "claim")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(items) != 1 || items[0].URL != "https://core.example/a" {
		t.Errorf("Expected urls to win under custom precedence, got %+v", items)
	}
}

func TestCOREClient_Search_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewCOREClient(coreConfig(server.URL), 5*time.Second)

	items, err := client.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Expected no error on non-2xx, got %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected empty result on non-2xx, got %d items", len(items))
	}
}

type stubSearcher struct {
	name  string
	items []model.EvidenceItem
	err   error
	calls int
}

func (s *stubSearcher) Name() string { return s.name }

func (s *stubSearcher) Search(ctx context.Context, query string) ([]model.EvidenceItem, error) {
	s.calls++
	return s.items, s.err
}

func TestAggregator_Gather_AbsorbsClientFailure(t *testing.T) {
	broken := &stubSearcher{name: "crossref", err: errors.New("connection refused")}
	working := &stubSearcher{name: "core", items: []model.EvidenceItem{
		{Title: "Paper", Abstract: "Abstract", URL: "https://example.com/p"},
	}}

	agg := NewAggregator(broken, working)

	items := agg.Gather(context.Background(), "claim")
	if len(items) != 1 {
		t.Fatalf("Expected 1 item from the surviving client, got %d", len(items))
	}
	if broken.calls != 1 || working.calls != 1 {
		t.Errorf("Expected both clients queried once, got %d and %d", broken.calls, working.calls)
	}
}

func TestAggregator_Gather_BothFail(t *testing.T) {
	agg := NewAggregator(
		&stubSearcher{name: "crossref", err: errors.New("down")},
		&stubSearcher{name: "core", err: errors.New("down")},
	)

	items := agg.Gather(context.Background(), "claim")
	if len(items) != 0 {
		t.Errorf("Expected zero items when both clients fail, got %d", len(items))
	}
}

func TestAggregator_Gather_PreservesClientOrder(t *testing.T) {
	agg := NewAggregator(
		&stubSearcher{name: "crossref", items: []model.EvidenceItem{{Title: "First"}}},
		&stubSearcher{name: "core", items: []model.EvidenceItem{{Title: "Second"}}},
	)

	items := agg.Gather(context.Background(), "claim")
	if len(items) != 2 || items[0].Title != "First" || items[1].Title != "Second" {
		t.Errorf("Expected results in client order, got %+v", items)
	}
}
