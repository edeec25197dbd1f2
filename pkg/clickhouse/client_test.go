package clickhouse

import (
	"strings"
	"testing"
	"time"
)

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN(ClientConfig{
		Host:         "ch",
		Port:         9000,
		Database:     "marketintel",
		User:         "default",
		DialTimeout:  5 * time.Second,
		MaxExecTime:  30 * time.Second,
		AsyncInsert:  true,
		WaitForAsync: true,
	})
	want := "clickhouse://default:@ch:9000/marketintel?dial_timeout=5s&max_execution_time=30&async_insert=1&wait_for_async_insert=1"
	if dsn != want {
		t.Fatalf("dsn = %s", dsn)
	}
}

func TestBuildDSNHTTP(t *testing.T) {
	dsn := buildDSN(ClientConfig{Host: "ch", Port: 8123, Database: "db", UseHTTP: true})
	if dsn != "http://:@ch:8123/db" {
		t.Fatalf("dsn = %s", dsn)
	}
}

func TestSchemaUsesDatabase(t *testing.T) {
	stmts := Schema("mi")
	if len(stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(stmts))
	}
	if !strings.Contains(stmts[1], "mi.competitor_mentions") || !strings.Contains(stmts[2], "mi.analysis_reports") {
		t.Fatalf("unexpected schema %v", stmts)
	}
}
