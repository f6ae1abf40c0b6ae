package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowWithinBurst(t *testing.T) {
	limiter := NewLimiter(1, 3)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("https://example.com/page") {
			t.Errorf("Expected request %d within burst to be allowed", i)
		}
	}
	if limiter.Allow("https://example.com/page") {
		t.Error("Expected request beyond burst to be denied")
	}
}

func TestLimiter_PerHostIsolation(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if !limiter.Allow("https://a.example.com/") {
		t.Error("Expected first request to host a to be allowed")
	}
	if !limiter.Allow("https://b.example.com/") {
		t.Error("Expected first request to host b to be allowed despite a's usage")
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	limiter := NewLimiter(0.001, 1)

	// Drain the burst.
	if err := limiter.Wait(context.Background(), "https://slow.example.com/"); err != nil {
		t.Fatalf("First wait failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, "https://slow.example.com/"); err == nil {
		t.Error("Expected wait to fail once the context deadline passed")
	}
}

func TestLimiter_InvalidURL(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if limiter.Allow("://bad url") {
		t.Error("Expected invalid URL to be denied")
	}
	if err := limiter.Wait(context.Background(), "://bad url"); err == nil {
		t.Error("Expected wait on invalid URL to fail")
	}
}
