package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"MarketIntel/internal/domain/models"
	"MarketIntel/internal/domain/repository"
	pkgch "MarketIntel/pkg/clickhouse"
	applogger "MarketIntel/pkg/logger"
)

// CHMentionStore implements MentionStore for ClickHouse.
type CHMentionStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

// NewCHMentionStore creates the mention store over database.table.
func NewCHMentionStore(db *sql.DB, database string) *CHMentionStore {
	return &CHMentionStore{db: db, table: database + "." + pkgch.MentionsTable, l: applogger.Nop()}
}

var _ repository.MentionStore = (*CHMentionStore)(nil)

// SetLogger injects a structured logger.
func (s *CHMentionStore) SetLogger(l *applogger.Logger) {
	if l != nil {
		s.l = l
	}
}

// Mentions returns the newest mentions of a competitor.
func (s *CHMentionStore) Mentions(ctx context.Context, competitorID string, limit int) ([]models.Mention, error) {
	if limit <= 0 {
		limit = 100
	}
	q := fmt.Sprintf("SELECT competitor_id, text, source, created_at FROM %s WHERE competitor_id = ? ORDER BY created_at DESC LIMIT ?", s.table)
	rows, err := s.db.QueryContext(ctx, q, competitorID, limit)
	if err != nil {
		s.l.Error("clickhouse mentions query error",
			applogger.String("competitor_id", competitorID),
			applogger.Error(err),
		)
		return nil, fmt.Errorf("query mentions: %w", err)
	}
	defer rows.Close()

	out := make([]models.Mention, 0, limit)
	for rows.Next() {
		var m models.Mention
		if err := rows.Scan(&m.CompetitorID, &m.Text, &m.Source, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan mention: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// StoreMentions inserts mentions with multi-row VALUES, chunked at 2000 rows.
func (s *CHMentionStore) StoreMentions(ctx context.Context, mentions []models.Mention) error {
	const chunkSize = 2000
	for start := 0; start < len(mentions); start += chunkSize {
		end := start + chunkSize
		if end > len(mentions) {
			end = len(mentions)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*4)
		for _, m := range mentions[start:end] {
			if m.CompetitorID == "" || m.Text == "" {
				continue
			}
			created := m.CreatedAt
			if created.IsZero() {
				created = time.Now().UTC()
			}
			values = append(values, "(?, ?, ?, ?)")
			args = append(args, m.CompetitorID, m.Text, m.Source, created)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (competitor_id, text, source, created_at) VALUES %s", s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("insert mentions: %w", err)
		}
	}
	return nil
}

func (s *CHMentionStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
