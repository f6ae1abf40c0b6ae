package util

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func proxyFor(t *testing.T, fn func(*http.Request) (*url.URL, error), rawURL string) *url.URL {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, rawURL, nil)
	u, err := fn(req)
	if err != nil {
		t.Fatalf("proxy func failed for %s: %v", rawURL, err)
	}
	return u
}

func TestNewProxyFunc_ExplicitProxies(t *testing.T) {
	fn := NewProxyFunc("http://proxy:3128", "http://sproxy:3128", "")

	if u := proxyFor(t, fn, "http://example.com/"); u == nil || u.Host != "proxy:3128" {
		t.Errorf("Expected http proxy, got %v", u)
	}
	if u := proxyFor(t, fn, "https://example.com/"); u == nil || u.Host != "sproxy:3128" {
		t.Errorf("Expected https proxy, got %v", u)
	}
}

func TestNewProxyFunc_NoProxyBypass(t *testing.T) {
	fn := NewProxyFunc("http://proxy:3128", "", "internal.example.com")

	if u := proxyFor(t, fn, "http://api.internal.example.com/x"); u != nil {
		t.Errorf("Expected bypass for noProxy host, got %v", u)
	}
	if u := proxyFor(t, fn, "http://external.com/"); u == nil {
		t.Error("Expected proxy for non-matching host")
	}
}
