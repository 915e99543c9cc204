package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestTokenBucketAllow(t *testing.T) {
	tb := NewTokenBucket(3, 1)
	for i := 0; i < 3; i++ {
		if !tb.Allow() {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if tb.Allow() {
		t.Fatal("request beyond capacity should be denied")
	}
	if tb.Remaining() != 0 {
		t.Fatalf("remaining got=%d want=0", tb.Remaining())
	}
}

func TestTokenBucketWaitHonorsContext(t *testing.T) {
	tb := NewTokenBucket(1, 1)
	if !tb.Allow() {
		t.Fatal("first request should be allowed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := tb.Wait(ctx); err == nil {
		t.Fatal("Wait should fail when the context expires first")
	}
}

func TestSlidingWindowAllow(t *testing.T) {
	sw := NewSlidingWindow(2, 100*time.Millisecond)
	if !sw.Allow() || !sw.Allow() {
		t.Fatal("first two requests should be allowed")
	}
	if sw.Allow() {
		t.Fatal("third request inside the window should be denied")
	}

	time.Sleep(120 * time.Millisecond)
	if !sw.Allow() {
		t.Fatal("request after the window slides should be allowed")
	}
}

func TestSlidingWindowWait(t *testing.T) {
	sw := NewSlidingWindow(1, 50*time.Millisecond)
	if !sw.Allow() {
		t.Fatal("first request should be allowed")
	}

	start := time.Now()
	if err := sw.Wait(context.Background()); err != nil {
		t.Fatalf("Wait error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Fatalf("Wait returned too early: %v", elapsed)
	}
}
