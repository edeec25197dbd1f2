package repository

import (
	"context"
	"database/sql"
	"fmt"

	"MarketIntel/internal/domain/models"
	"MarketIntel/internal/domain/repository"
	pkgch "MarketIntel/pkg/clickhouse"
)

// CHReportStore archives analysis records in ClickHouse.
type CHReportStore struct {
	db    *sql.DB
	table string
}

func NewCHReportStore(db *sql.DB, database string) *CHReportStore {
	return &CHReportStore{db: db, table: database + "." + pkgch.ReportsTable}
}

var _ repository.ReportStore = (*CHReportStore)(nil)

func (s *CHReportStore) SaveReport(ctx context.Context, r models.AnalysisRecord) error {
	q := fmt.Sprintf("INSERT INTO %s (analysis_id, analysis_date, analysis_type, competitor_ids, start_date, end_date, payload) VALUES (?, ?, ?, ?, ?, ?, ?)", s.table)
	_, err := s.db.ExecContext(ctx, q,
		r.AnalysisID,
		r.AnalysisDate,
		r.AnalysisType,
		r.CompetitorIDs,
		r.StartDate,
		r.EndDate,
		string(r.Payload),
	)
	if err != nil {
		return fmt.Errorf("save report %s: %w", r.AnalysisID, err)
	}
	return nil
}
