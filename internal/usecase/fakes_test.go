package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"

	"MarketIntel/internal/domain/models"
	drepo "MarketIntel/internal/domain/repository"
)

const (
	idAcme    = "7f3c2a52-4c1e-4d6a-9a53-0a4a1f1b0001"
	idGlobex  = "7f3c2a52-4c1e-4d6a-9a53-0a4a1f1b0002"
	idInitech = "7f3c2a52-4c1e-4d6a-9a53-0a4a1f1b0003"
	idMissing = "7f3c2a52-4c1e-4d6a-9a53-0a4a1f1b0099"
)

type memCompetitors struct {
	mu    sync.Mutex
	byID  map[string]models.Competitor
	order []string
	err   error
}

func newMemCompetitors(cs ...models.Competitor) *memCompetitors {
	m := &memCompetitors{byID: make(map[string]models.Competitor)}
	for _, c := range cs {
		_ = m.Insert(context.Background(), c)
	}
	return m
}

func (m *memCompetitors) FindOne(_ context.Context, id string) (models.Competitor, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return models.Competitor{}, false, m.err
	}
	c, ok := m.byID[id]
	return c, ok, nil
}

func (m *memCompetitors) Find(_ context.Context, f drepo.CompetitorFilter) ([]models.Competitor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	ids := f.IDs
	if len(ids) == 0 {
		ids = m.order
	}
	skip := make(map[string]bool)
	for _, id := range f.ExcludeIDs {
		skip[id] = true
	}
	out := []models.Competitor{}
	for _, id := range ids {
		if c, ok := m.byID[id]; ok && !skip[id] {
			out = append(out, c)
		}
	}
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []models.Competitor{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memCompetitors) Insert(_ context.Context, c models.Competitor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[c.ID]; !ok {
		m.order = append(m.order, c.ID)
	}
	m.byID[c.ID] = c
	return nil
}

func (m *memCompetitors) Update(_ context.Context, c models.Competitor) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[c.ID]; !ok {
		return false, nil
	}
	m.byID[c.ID] = c
	return true, nil
}

func (m *memCompetitors) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return false, nil
	}
	delete(m.byID, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (m *memCompetitors) Health(context.Context) error { return nil }

type memTrends struct {
	trends map[string]models.MarketTrend
}

func (m *memTrends) ListTrends(context.Context) ([]models.MarketTrend, error) {
	out := make([]models.MarketTrend, 0, len(m.trends))
	for _, t := range m.trends {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TrendName < out[j].TrendName })
	return out, nil
}

func (m *memTrends) UpsertTrends(_ context.Context, ts []models.MarketTrend) error {
	if m.trends == nil {
		m.trends = make(map[string]models.MarketTrend)
	}
	for _, t := range ts {
		m.trends[t.TrendName] = t
	}
	return nil
}

type memMentions struct {
	mu     sync.Mutex
	stored []models.Mention
	limit  int
}

func (m *memMentions) Mentions(_ context.Context, id string, limit int) ([]models.Mention, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.limit = limit
	out := []models.Mention{}
	for _, x := range m.stored {
		if x.CompetitorID == id {
			out = append(out, x)
		}
	}
	return out, nil
}

func (m *memMentions) StoreMentions(_ context.Context, ms []models.Mention) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stored = append(m.stored, ms...)
	return nil
}

func (m *memMentions) Health(context.Context) error { return nil }

type memReports struct {
	saved []models.AnalysisRecord
	err   error
}

func (m *memReports) SaveReport(_ context.Context, r models.AnalysisRecord) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, r)
	return nil
}

type memPublisher struct {
	mentions []models.Mention
	reports  []models.AnalysisRecord
	closed   bool
}

func (p *memPublisher) PublishMentions(_ context.Context, ms []models.Mention) error {
	p.mentions = append(p.mentions, ms...)
	return nil
}

func (p *memPublisher) PublishReport(_ context.Context, r models.AnalysisRecord) error {
	p.reports = append(p.reports, r)
	return nil
}

func (p *memPublisher) Close() error {
	p.closed = true
	return nil
}

type countingMetrics struct {
	mu     sync.Mutex
	sent   map[string]int
	errors map[string]int
	corpus map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{sent: map[string]int{}, errors: map[string]int{}, corpus: map[string]int{}}
}

func (m *countingMetrics) RecordMessageSent(backend, kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent[backend+"/"+kind]++
}

func (m *countingMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[kind]++
}

func (m *countingMetrics) RecordCorpusSize(op string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.corpus[op] = n
}

func (m *countingMetrics) RecordLatency(string, float64) {}

// tableEmbedder maps known texts to fixed vectors.
type tableEmbedder struct {
	vectors map[string][]float64
	calls   [][]string
	err     error
}

func (e *tableEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	e.calls = append(e.calls, texts)
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float64, len(texts))
	for i, t := range texts {
		v, ok := e.vectors[t]
		if !ok {
			return nil, errors.New("no vector for " + t)
		}
		out[i] = v
	}
	return out, nil
}
