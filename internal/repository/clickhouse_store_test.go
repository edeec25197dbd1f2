package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"MarketIntel/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

// passThrough lets array arguments reach the mock the way the clickhouse
// driver accepts them.
type passThrough struct{}

func (passThrough) ConvertValue(v interface{}) (driver.Value, error) {
	return v, nil
}

func TestCHMentionStoreStoreMentions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	s := NewCHMentionStore(db, "mi")
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO mi.competitor_mentions (competitor_id, text, source, created_at) VALUES (?, ?, ?, ?),(?, ?, ?, ?)")).
		WithArgs("c1", "great product", "api", ts, "c1", "bad support", "web", ts).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err = s.StoreMentions(context.Background(), []models.Mention{
		{CompetitorID: "c1", Text: "great product", Source: "api", CreatedAt: ts},
		{CompetitorID: "", Text: "dropped"},
		{CompetitorID: "c1", Text: "bad support", Source: "web", CreatedAt: ts},
	})
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCHMentionStoreEmptyBatch(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	if err := NewCHMentionStore(db, "mi").StoreMentions(context.Background(), nil); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no statements expected: %v", err)
	}
}

func TestCHMentionStoreMentions(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	ts := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"competitor_id", "text", "source", "created_at"}).
		AddRow("c1", "amazing", "api", ts).
		AddRow("c1", "poor", "api", ts.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("FROM mi.competitor_mentions WHERE competitor_id = ? ORDER BY created_at DESC LIMIT ?")).
		WithArgs("c1", 50).
		WillReturnRows(rows)

	got, err := NewCHMentionStore(db, "mi").Mentions(context.Background(), "c1", 50)
	if err != nil {
		t.Fatalf("mentions: %v", err)
	}
	if len(got) != 2 || got[0].Text != "amazing" || !got[0].CreatedAt.Equal(ts) {
		t.Fatalf("unexpected mentions %+v", got)
	}
}

func TestCHMentionStoreQueryError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("boom"))
	if _, err := NewCHMentionStore(db, "mi").Mentions(context.Background(), "c1", 0); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestCHReportStoreSaveReport(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(passThrough{}))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rec := models.AnalysisRecord{
		AnalysisID:    "a1",
		AnalysisDate:  now,
		AnalysisType:  models.AnalysisTypeFull,
		CompetitorIDs: []string{"c1", "c2"},
		StartDate:     now.AddDate(0, -1, 0),
		EndDate:       now,
		Payload:       []byte(`{"ok":true}`),
	}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO mi.analysis_reports")).
		WithArgs("a1", now, "full", []string{"c1", "c2"}, rec.StartDate, now, `{"ok":true}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := NewCHReportStore(db, "mi").SaveReport(context.Background(), rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
