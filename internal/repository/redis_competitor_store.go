package repository

import (
	"context"
	"errors"
	"fmt"

	"MarketIntel/internal/domain/models"
	"MarketIntel/internal/domain/repository"
	pkgredis "MarketIntel/pkg/redis"

	"github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"
)

// RedisCompetitorStore keeps one JSON document per competitor plus a sorted
// index ordered by creation time.
type RedisCompetitorStore struct {
	client *pkgredis.Client
	rdb    *goredis.Client
}

// NewRedisCompetitorStore creates the competitor document store.
func NewRedisCompetitorStore(client *pkgredis.Client) *RedisCompetitorStore {
	return &RedisCompetitorStore{client: client, rdb: client.Redis()}
}

var _ repository.CompetitorStore = (*RedisCompetitorStore)(nil)

func (s *RedisCompetitorStore) docKey(id string) string {
	return s.client.Key("competitor", id)
}

func (s *RedisCompetitorStore) indexKey() string {
	return s.client.Key("competitors")
}

func (s *RedisCompetitorStore) FindOne(ctx context.Context, id string) (models.Competitor, bool, error) {
	b, err := s.rdb.Get(ctx, s.docKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return models.Competitor{}, false, nil
	}
	if err != nil {
		return models.Competitor{}, false, fmt.Errorf("get competitor %s: %w", id, err)
	}
	var c models.Competitor
	if err := json.Unmarshal(b, &c); err != nil {
		return models.Competitor{}, false, fmt.Errorf("decode competitor %s: %w", id, err)
	}
	return c, true, nil
}

// Find returns competitors in filter.IDs order when IDs are given, otherwise
// in creation order. Unknown ids are skipped.
func (s *RedisCompetitorStore) Find(ctx context.Context, filter repository.CompetitorFilter) ([]models.Competitor, error) {
	ids := filter.IDs
	if len(ids) == 0 {
		all, err := s.rdb.ZRange(ctx, s.indexKey(), 0, -1).Result()
		if err != nil {
			return nil, fmt.Errorf("list competitors: %w", err)
		}
		ids = all
	}

	if len(filter.ExcludeIDs) > 0 {
		skip := make(map[string]struct{}, len(filter.ExcludeIDs))
		for _, id := range filter.ExcludeIDs {
			skip[id] = struct{}{}
		}
		kept := make([]string, 0, len(ids))
		for _, id := range ids {
			if _, ok := skip[id]; !ok {
				kept = append(kept, id)
			}
		}
		ids = kept
	}

	ids = page(ids, filter.Offset, filter.Limit)
	out := make([]models.Competitor, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.docKey(id)
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("mget competitors: %w", err)
	}
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var c models.Competitor
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, fmt.Errorf("decode competitor %s: %w", ids[i], err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *RedisCompetitorStore) Insert(ctx context.Context, c models.Competitor) error {
	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode competitor: %w", err)
	}
	_, err = s.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Set(ctx, s.docKey(c.ID), b, 0)
		p.ZAdd(ctx, s.indexKey(), goredis.Z{Score: float64(c.CreatedAt.UnixMilli()), Member: c.ID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert competitor %s: %w", c.ID, err)
	}
	return nil
}

// Update replaces an existing document. It reports false when the id is unknown.
func (s *RedisCompetitorStore) Update(ctx context.Context, c models.Competitor) (bool, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return false, fmt.Errorf("encode competitor: %w", err)
	}
	ok, err := s.rdb.SetXX(ctx, s.docKey(c.ID), b, 0).Result()
	if err != nil {
		return false, fmt.Errorf("update competitor %s: %w", c.ID, err)
	}
	return ok, nil
}

func (s *RedisCompetitorStore) Delete(ctx context.Context, id string) (bool, error) {
	var del *goredis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		del = p.Del(ctx, s.docKey(id))
		p.ZRem(ctx, s.indexKey(), id)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete competitor %s: %w", id, err)
	}
	return del.Val() > 0, nil
}

func (s *RedisCompetitorStore) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}

func page(ids []string, offset, limit int) []string {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(ids) {
		return nil
	}
	ids = ids[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	return ids
}
