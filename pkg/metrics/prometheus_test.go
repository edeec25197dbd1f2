package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewWithRegisterer(reg)

	r.RecordMessageSent("kafka", "mention")
	r.RecordMessageSent("kafka", "mention")
	r.RecordError("process_report")
	r.RecordCorpusSize("perform_market_analysis", 3)
	r.RecordLatency("process_mentions", 0.02)

	if got := testutil.ToFloat64(r.messagesSent.WithLabelValues("kafka", "mention")); got != 2 {
		t.Fatalf("expected 2 messages, got %v", got)
	}
	if got := testutil.ToFloat64(r.errorsTotal.WithLabelValues("process_report")); got != 1 {
		t.Fatalf("expected 1 error, got %v", got)
	}
	if n := testutil.CollectAndCount(r.corpusSize); n != 1 {
		t.Fatalf("expected one corpus series, got %d", n)
	}
	if n, err := testutil.GatherAndCount(reg, "marketintel_operation_duration_seconds"); err != nil || n != 1 {
		t.Fatalf("expected latency series, got %d err=%v", n, err)
	}
}
