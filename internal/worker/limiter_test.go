package worker

import (
	"context"
	"testing"
	"time"
)

func TestNewLimiter(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 1 {
		t.Errorf("expected burst 1 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://example.com/foo"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	if err := limiter.Wait(ctx, "https://census.gov"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	if err := limiter.Wait(ctx, "/relative/path"); err == nil {
		t.Error("expected error for URL without host")
	}
}

func TestLimiter_PerHost(t *testing.T) {
	limiter := NewLimiter(0.001, 1)

	if !limiter.Allow("https://a.example/x") {
		t.Fatal("first request should be allowed")
	}
	if limiter.Allow("https://A.example:443/y") {
		t.Error("same host with different case and port should share a bucket")
	}
	if !limiter.Allow("https://b.example/") {
		t.Error("other hosts have their own bucket")
	}
}

func TestLimiter_Unlimited(t *testing.T) {
	limiter := NewLimiter(0, 1)
	for i := 0; i < 100; i++ {
		if !limiter.Allow("https://example.com") {
			t.Fatalf("request %d throttled with throttling disabled", i)
		}
	}
}

func TestLimiter_RateLimit(t *testing.T) {
	limiter := NewLimiter(20, 1)
	ctx := context.Background()
	url := "http://example.com"

	if err := limiter.Wait(ctx, url); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}

	start := time.Now()
	if err := limiter.Wait(ctx, url); err != nil {
		t.Fatalf("second wait failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("expected second request to be throttled, waited %v", elapsed)
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	limiter := NewLimiter(100, 1)

	start := time.Now()
	if err := limiter.WaitWithDelay(context.Background(), "http://example.com", 50*time.Millisecond); err != nil {
		t.Fatalf("WaitWithDelay failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("expected delay >= 50ms, got %v", elapsed)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := limiter.WaitWithDelay(ctx, "http://other.example", time.Hour); err == nil {
		t.Error("expected cancelled context to abort the delay")
	}
}

func TestLimiter_SetHostRate(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	limiter.SetHostRate("Fast.Example", 1000, 10)

	for i := 0; i < 5; i++ {
		if !limiter.Allow("https://fast.example/p") {
			t.Fatalf("request %d throttled on overridden host", i)
		}
	}
}

func TestHost(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{"https://WWW.Census.gov:8443/data", "www.census.gov", false},
		{"http://example.com", "example.com", false},
		{"mailto:someone@example.com", "", true},
		{"::", "", true},
	}
	for _, tt := range tests {
		got, err := Host(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("Host(%q) = %q, %v", tt.in, got, err)
		}
	}
}
