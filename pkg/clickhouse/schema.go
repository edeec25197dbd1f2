package clickhouse

import "fmt"

// Table names inside the configured database.
const (
	MentionsTable = "competitor_mentions"
	ReportsTable  = "analysis_reports"
)

// Schema returns idempotent DDL for the mention and report tables.
func Schema(database string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s (
    competitor_id String,
    text String,
    source LowCardinality(String),
    created_at DateTime64(3)
) ENGINE = MergeTree ORDER BY (competitor_id, created_at)`, database, MentionsTable),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s (
    analysis_id String,
    analysis_date DateTime64(3),
    analysis_type LowCardinality(String),
    competitor_ids Array(String),
    start_date DateTime64(3),
    end_date DateTime64(3),
    payload String
) ENGINE = ReplacingMergeTree ORDER BY (analysis_id)`, database, ReportsTable),
	}
}
