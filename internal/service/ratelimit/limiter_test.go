package ratelimit

import (
	"testing"
	"time"
)

func TestLimiterBurstThenRefill(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := New(3, 3*time.Second)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("request %d should pass", i)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Fatalf("burst exhausted, request should be limited")
	}
	if !l.Allow("10.0.0.2") {
		t.Fatalf("keys are limited independently")
	}

	now = now.Add(time.Second)
	if !l.Allow("10.0.0.1") {
		t.Fatalf("one token should have refilled")
	}
	if l.Allow("10.0.0.1") {
		t.Fatalf("only one token refilled")
	}
}

func TestLimiterCleanup(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := New(1, time.Minute)
	l.now = func() time.Time { return now }

	l.Allow("old")
	now = now.Add(2 * time.Hour)
	l.Allow("new")
	l.cleanup()

	if _, ok := l.m["old"]; ok {
		t.Fatalf("idle key should be evicted")
	}
	if _, ok := l.m["new"]; !ok {
		t.Fatalf("active key should stay")
	}
	l.Stop()
	l.Stop()
}
