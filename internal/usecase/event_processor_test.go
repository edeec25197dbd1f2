package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"MarketIntel/internal/domain/models"
)

func TestEventProcessorRouting(t *testing.T) {
	ctx := context.Background()
	batch := []models.Mention{{CompetitorID: idAcme, Text: "good"}, {CompetitorID: idAcme, Text: "bad"}}
	rec := models.AnalysisRecord{AnalysisID: "a1"}

	pub := &memPublisher{}
	mentions := &memMentions{}
	reports := &memReports{}
	m := newCountingMetrics()

	kp := NewEventProcessor(pub, mentions, reports, m, BackendKafka)
	if err := kp.ProcessMentions(ctx, batch); err != nil {
		t.Fatalf("kafka mentions: %v", err)
	}
	if err := kp.ProcessReport(ctx, rec); err != nil {
		t.Fatalf("kafka report: %v", err)
	}
	if len(pub.mentions) != 2 || len(pub.reports) != 1 || len(mentions.stored) != 0 || len(reports.saved) != 0 {
		t.Fatalf("kafka backend should only publish")
	}
	if m.sent["kafka/mention"] != 2 || m.sent["kafka/report"] != 1 {
		t.Fatalf("unexpected sent counts %v", m.sent)
	}

	cp := NewEventProcessor(pub, mentions, reports, m, BackendClickHouse)
	_ = cp.ProcessMentions(ctx, batch)
	_ = cp.ProcessReport(ctx, rec)
	if len(mentions.stored) != 2 || len(reports.saved) != 1 {
		t.Fatalf("clickhouse backend should store")
	}

	if err := cp.ProcessMentions(ctx, nil); err != nil {
		t.Fatalf("empty batch: %v", err)
	}

	up := NewEventProcessor(pub, mentions, reports, m, "s3")
	if err := up.ProcessReport(ctx, rec); err == nil || !strings.Contains(err.Error(), "unknown backend") {
		t.Fatalf("expected unknown backend error, got %v", err)
	}
	if m.errors["process_report"] != 1 {
		t.Fatalf("error not counted: %v", m.errors)
	}

	kp.Close()
	if !pub.closed {
		t.Fatalf("close should close the publisher")
	}
}

func TestKafkaMentionsHandler(t *testing.T) {
	mentions := &memMentions{}
	m := newCountingMetrics()
	h := NewKafkaMentionsHandler("competitor.mentions", mentions, m)
	if h.Topic() != "competitor.mentions" {
		t.Fatalf("unexpected topic %q", h.Topic())
	}

	ts := time.Now().UTC().Add(-time.Second).Format(time.RFC3339Nano)
	if err := h.Handle(context.Background(), []byte(`{"competitor_id":"c1","text":"amazing","source":"api","created_at":"`+ts+`"}`)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(mentions.stored) != 1 || mentions.stored[0].Text != "amazing" {
		t.Fatalf("unexpected stored %+v", mentions.stored)
	}
	if m.sent["clickhouse/mention"] != 1 {
		t.Fatalf("unexpected sent %v", m.sent)
	}

	if err := h.Handle(context.Background(), []byte(`{not json`)); err == nil {
		t.Fatalf("expected decode error")
	}
	if err := h.Handle(context.Background(), []byte(`{"competitor_id":"c1"}`)); err == nil {
		t.Fatalf("expected error for empty text")
	}
	if m.errors["consumer_unmarshal"] != 1 || m.errors["consumer_invalid"] != 1 {
		t.Fatalf("unexpected errors %v", m.errors)
	}
}

func TestKafkaReportsHandler(t *testing.T) {
	reports := &memReports{}
	h := NewKafkaReportsHandler("analysis.reports", reports, newCountingMetrics())

	if err := h.Handle(context.Background(), []byte(`{"analysis_id":"a1","analysis_type":"full","competitor_ids":["x","y"]}`)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(reports.saved) != 1 || reports.saved[0].CompetitorIDs[1] != "y" {
		t.Fatalf("unexpected saved %+v", reports.saved)
	}
	if err := h.Handle(context.Background(), []byte(`{}`)); err == nil {
		t.Fatalf("expected error for missing analysis_id")
	}
}

func TestImportTrends(t *testing.T) {
	store := &memTrends{}
	doc := `
trends:
  - trend_name: ai assistants
    impact_score: 0.8
    description: copilots everywhere
    date_identified: 2024-05-01T00:00:00Z
    sources: [gartner]
  - trend_name: price pressure
    impact_score: -0.4
    date_identified: 2024-04-01T00:00:00Z
`
	n, err := ImportTrends(context.Background(), store, strings.NewReader(doc))
	if err != nil || n != 2 {
		t.Fatalf("import: n=%d err=%v", n, err)
	}
	got := store.trends["ai assistants"]
	if got.ImpactScore != 0.8 || got.DateIdentified.Month() != time.May || len(got.Sources) != 1 {
		t.Fatalf("unexpected trend %+v", got)
	}

	bad := "trends:\n  - trend_name: x\n    impact_score: 3\n"
	if _, err := ImportTrends(context.Background(), store, strings.NewReader(bad)); err == nil {
		t.Fatalf("expected range error")
	}
}
