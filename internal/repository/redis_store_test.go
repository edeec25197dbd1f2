package repository

import (
	"context"
	"strconv"
	"testing"
	"time"

	"MarketIntel/internal/domain/models"
	"MarketIntel/internal/domain/repository"
	pkgredis "MarketIntel/pkg/redis"

	"github.com/alicebob/miniredis/v2"
)

func newTestRedis(t *testing.T) *pkgredis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	port, _ := strconv.Atoi(mr.Port())
	c, err := pkgredis.NewClient(pkgredis.WithHost(mr.Host()), pkgredis.WithPort(port))
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func competitor(id, name string, created time.Time) models.Competitor {
	return models.Competitor{
		ID:          id,
		Name:        name,
		Website:     "https://" + name + ".example",
		PriceRange:  "$$",
		Strengths:   []string{"fast"},
		Description: name + " makes things",
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestRedisCompetitorStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewRedisCompetitorStore(newTestRedis(t))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"acme", "globex", "initech"} {
		if err := s.Insert(ctx, competitor("id-"+name, name, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("insert %s: %v", name, err)
		}
	}

	c, ok, err := s.FindOne(ctx, "id-globex")
	if err != nil || !ok {
		t.Fatalf("find one: ok=%v err=%v", ok, err)
	}
	if c.Name != "globex" || !c.CreatedAt.Equal(base.Add(time.Hour)) {
		t.Fatalf("unexpected competitor %+v", c)
	}

	if _, ok, err := s.FindOne(ctx, "missing"); ok || err != nil {
		t.Fatalf("missing id: ok=%v err=%v", ok, err)
	}

	all, err := s.Find(ctx, repository.CompetitorFilter{})
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != 3 || all[0].Name != "acme" || all[2].Name != "initech" {
		t.Fatalf("unexpected order %v", names(all))
	}

	c.Name = "globex-2"
	if ok, err := s.Update(ctx, c); !ok || err != nil {
		t.Fatalf("update: ok=%v err=%v", ok, err)
	}
	if ok, err := s.Update(ctx, competitor("nope", "nope", base)); ok || err != nil {
		t.Fatalf("update unknown: ok=%v err=%v", ok, err)
	}
	c, _, _ = s.FindOne(ctx, "id-globex")
	if c.Name != "globex-2" {
		t.Fatalf("update not applied: %+v", c)
	}

	if ok, err := s.Delete(ctx, "id-acme"); !ok || err != nil {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	if ok, err := s.Delete(ctx, "id-acme"); ok || err != nil {
		t.Fatalf("second delete: ok=%v err=%v", ok, err)
	}
	all, _ = s.Find(ctx, repository.CompetitorFilter{})
	if len(all) != 2 {
		t.Fatalf("expected 2 after delete, got %v", names(all))
	}
}

func TestRedisCompetitorStoreFilter(t *testing.T) {
	ctx := context.Background()
	s := NewRedisCompetitorStore(newTestRedis(t))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"a", "b", "c", "d"} {
		_ = s.Insert(ctx, competitor(name, name, base.Add(time.Duration(i)*time.Minute)))
	}

	got, err := s.Find(ctx, repository.CompetitorFilter{IDs: []string{"c", "missing", "a"}})
	if err != nil {
		t.Fatalf("find ids: %v", err)
	}
	if n := names(got); len(n) != 2 || n[0] != "c" || n[1] != "a" {
		t.Fatalf("ids filter should keep request order and skip unknown, got %v", n)
	}

	got, _ = s.Find(ctx, repository.CompetitorFilter{ExcludeIDs: []string{"b"}})
	if n := names(got); len(n) != 3 || n[1] != "c" {
		t.Fatalf("exclude filter, got %v", n)
	}

	got, _ = s.Find(ctx, repository.CompetitorFilter{Offset: 1, Limit: 2})
	if n := names(got); len(n) != 2 || n[0] != "b" || n[1] != "c" {
		t.Fatalf("paging, got %v", n)
	}

	got, _ = s.Find(ctx, repository.CompetitorFilter{Offset: 10})
	if got == nil || len(got) != 0 {
		t.Fatalf("offset past end should be empty, got %v", got)
	}
}

func TestRedisTrendStore(t *testing.T) {
	ctx := context.Background()
	s := NewRedisTrendStore(newTestRedis(t))

	trends, err := s.ListTrends(ctx)
	if err != nil || len(trends) != 0 {
		t.Fatalf("empty store: %v %v", trends, err)
	}

	d1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	err = s.UpsertTrends(ctx, []models.MarketTrend{
		{TrendName: "ai", ImpactScore: 0.9, DateIdentified: d1},
		{TrendName: "remote", ImpactScore: 0.4, DateIdentified: d2},
		{TrendName: "bundling", ImpactScore: 0.2, DateIdentified: d1},
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	_ = s.UpsertTrends(ctx, []models.MarketTrend{{TrendName: "ai", ImpactScore: 0.5, DateIdentified: d1}})

	trends, err = s.ListTrends(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(trends) != 3 {
		t.Fatalf("expected 3 trends, got %d", len(trends))
	}
	if trends[0].TrendName != "remote" || trends[1].TrendName != "ai" || trends[2].TrendName != "bundling" {
		t.Fatalf("unexpected order %+v", trends)
	}
	if trends[1].ImpactScore != 0.5 {
		t.Fatalf("upsert should replace, got %v", trends[1].ImpactScore)
	}

	if err := s.UpsertTrends(ctx, []models.MarketTrend{{ImpactScore: 1}}); err == nil {
		t.Fatalf("expected error for unnamed trend")
	}
}

func names(cs []models.Competitor) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}
