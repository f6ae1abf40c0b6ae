package cache

import (
	"strings"
	"testing"
	"time"
)

func TestMemoryCache_SetGetDelete(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	key := Key("https://example.com/article")
	if _, found := c.Get(key); found {
		t.Fatal("Expected miss on empty cache")
	}

	if err := c.Set(key, []byte("extracted text"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, found := c.Get(key)
	if !found || string(got) != "extracted text" {
		t.Errorf("Expected cached value, got %q (found=%v)", got, found)
	}

	if err := c.Delete(key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("Expected miss after delete")
	}
}

func TestKey_StableAndPrefixed(t *testing.T) {
	a := Key("https://example.com/a")
	b := Key("https://example.com/a")
	if a != b {
		t.Error("Expected identical keys for identical URLs")
	}
	if !strings.HasPrefix(a, "scicheck:v1:") {
		t.Errorf("Expected version prefix, got %q", a)
	}
	if Key("https://example.com/b") == a {
		t.Error("Expected different keys for different URLs")
	}
}
