package logger

import (
	"context"
	"sync"
	"testing"
	"time"
)

type recordingPublisher struct {
	mu      sync.Mutex
	topic   string
	batches [][]AggregatedLogEntry
}

func (p *recordingPublisher) PublishMessage(_ context.Context, topic string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topic = topic
	p.batches = append(p.batches, payload.([]AggregatedLogEntry))
	return nil
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(&Config{Level: "loud", Format: "json", Output: "stdout"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCollectorAggregatesRepeatedErrors(t *testing.T) {
	l, err := New(&Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	pub := &recordingPublisher{}
	l.AddCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 100,
		Topic:          "logging.collector",
		Publisher:      pub,
	})

	for i := 0; i < 3; i++ {
		l.Error("embedding failed", String("model", "all-minilm"), Float64("score", 0.5))
	}
	l.Warn("not collected")
	l.RemoveCollector()

	pub.mu.Lock()
	defer pub.mu.Unlock()
	if len(pub.batches) != 1 {
		t.Fatalf("expected 1 batch, got %d", len(pub.batches))
	}
	if pub.topic != "logging.collector" {
		t.Fatalf("unexpected topic %q", pub.topic)
	}
	batch := pub.batches[0]
	if len(batch) != 1 || batch[0].Count != 3 || batch[0].Message != "embedding failed" {
		t.Fatalf("unexpected batch %+v", batch)
	}
}

func TestChildLoggerSharesLateCollector(t *testing.T) {
	l, err := New(&Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	child := l.With(String("handler", "analysis"))

	pub := &recordingPublisher{}
	l.AddCollector(&CollectionConfig{TimeInterval: time.Hour, Topic: "logs", Publisher: pub})
	child.Error("request failed")
	l.RemoveCollector()

	pub.mu.Lock()
	defer pub.mu.Unlock()
	if len(pub.batches) != 1 || pub.batches[0][0].Message != "request failed" {
		t.Fatalf("child error not collected: %+v", pub.batches)
	}
}

func TestFieldKeyValues(t *testing.T) {
	k, v := Float64("score", 0.25).GetKeyValue()
	if k != "score" || v.(float64) != 0.25 {
		t.Fatalf("unexpected %s=%v", k, v)
	}
	k, v = Int64("bytes_out", 1<<40).GetKeyValue()
	if k != "bytes_out" || v.(int64) != 1<<40 {
		t.Fatalf("unexpected %s=%v", k, v)
	}
	k, v = Strings("ids", []string{"a", "b"}).GetKeyValue()
	if k != "ids" || v.(string) != "a, b" {
		t.Fatalf("unexpected %s=%v", k, v)
	}
}
