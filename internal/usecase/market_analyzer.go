package usecase

import (
	"context"
	"time"

	"MarketIntel/internal/domain/errs"
	"MarketIntel/internal/domain/models"
	drepo "MarketIntel/internal/domain/repository"
	"MarketIntel/internal/domain/service"
	"MarketIntel/internal/services/analytics"
	applogger "MarketIntel/pkg/logger"
	"MarketIntel/pkg/util"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// MarketAnalyzer runs the fetch, embed, similarity and positioning pipeline.
type MarketAnalyzer struct {
	competitors  drepo.CompetitorStore
	trends       drepo.TrendStore
	mentions     drepo.MentionStore
	embedder     service.Embedder
	events       *EventProcessor
	metrics      drepo.Metrics
	logger       *applogger.Logger
	mentionLimit int
	now          func() time.Time
}

// NewMarketAnalyzer wires the analyzer. events may be nil to skip archiving.
func NewMarketAnalyzer(
	competitors drepo.CompetitorStore,
	trends drepo.TrendStore,
	mentions drepo.MentionStore,
	embedder service.Embedder,
	events *EventProcessor,
	metrics drepo.Metrics,
	logger *applogger.Logger,
	mentionLimit int,
) *MarketAnalyzer {
	if logger == nil {
		logger = applogger.Nop()
	}
	if mentionLimit <= 0 {
		mentionLimit = 100
	}
	return &MarketAnalyzer{
		competitors:  competitors,
		trends:       trends,
		mentions:     mentions,
		embedder:     embedder,
		events:       events,
		metrics:      metrics,
		logger:       logger,
		mentionLimit: mentionLimit,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// PerformMarketAnalysis positions every requested competitor against the others.
func (a *MarketAnalyzer) PerformMarketAnalysis(ctx context.Context, req models.AnalysisRequest) (models.AnalysisReport, error) {
	const op = "perform_market_analysis"
	start := time.Now()

	if req.StartDate.After(req.EndDate) {
		return models.AnalysisReport{}, errs.New(errs.KindValidationFailure, op, "start_date is after end_date")
	}
	analysisType := req.AnalysisType
	if analysisType == "" {
		analysisType = models.AnalysisTypeFull
	}
	switch analysisType {
	case models.AnalysisTypeMarketShare, models.AnalysisTypeSentiment, models.AnalysisTypeFull:
		// every type runs the full pipeline
	default:
		return models.AnalysisReport{}, errs.Newf(errs.KindValidationFailure, op, "unknown analysis_type %q", analysisType)
	}

	competitors, err := a.resolve(ctx, op, req.CompetitorIDs)
	if err != nil {
		return models.AnalysisReport{}, err
	}

	texts, names := BuildCorpus(competitors)
	matrix, err := a.similarity(ctx, op, texts)
	if err != nil {
		return models.AnalysisReport{}, err
	}
	positions, err := analytics.AnalyzePositions(names, matrix)
	if err != nil {
		return models.AnalysisReport{}, err
	}

	report := models.AnalysisReport{
		AnalysisID:       uuid.NewString(),
		AnalysisDate:     a.now(),
		MarketPositions:  positions,
		ShareTrends:      shareTrends(req.StartDate, req.EndDate),
		SimilarityScores: matrix,
	}

	a.archive(ctx, report, analysisType, req)
	a.observe(op, start, len(texts))
	return report, nil
}

// shareTrends returns fixed counts for the requested period.
// TODO: derive from historical market_share snapshots once competitors are versioned.
func shareTrends(from, to time.Time) models.ShareTrends {
	return models.ShareTrends{
		TrendPeriod: util.FormatPeriod(from, to),
		Trends: map[string]int{
			"growing":   3,
			"declining": 1,
			"stable":    2,
		},
	}
}

// CompareCompetitors scores each pair of competitors on the centroid of their
// feature and strength embeddings. Competitors with neither are left out of
// the pairs but still listed by name.
func (a *MarketAnalyzer) CompareCompetitors(ctx context.Context, ids []string) (models.ComparisonResult, error) {
	const op = "compare_competitors"
	start := time.Now()

	competitors, err := a.resolve(ctx, op, ids)
	if err != nil {
		return models.ComparisonResult{}, err
	}

	var (
		texts  []string
		owners []int
		spans  [][2]int
	)
	for i, c := range competitors {
		ft := featureTexts(c)
		if len(ft) == 0 {
			continue
		}
		spans = append(spans, [2]int{len(texts), len(texts) + len(ft)})
		owners = append(owners, i)
		texts = append(texts, ft...)
	}

	vecs, err := a.embed(ctx, op, texts)
	if err != nil {
		return models.ComparisonResult{}, err
	}

	centroids := make([][]float64, len(owners))
	for k, sp := range spans {
		c, err := analytics.Centroid(vecs[sp[0]:sp[1]])
		if err != nil {
			return models.ComparisonResult{}, err
		}
		centroids[k] = c
	}

	scores := make(map[string]float64)
	for x := 0; x < len(owners); x++ {
		for y := x + 1; y < len(owners); y++ {
			s, err := analytics.PairwiseSimilarity(centroids[x], centroids[y])
			if err != nil {
				return models.ComparisonResult{}, err
			}
			scores[competitors[owners[x]].ID+"-"+competitors[owners[y]].ID] = s
		}
	}

	names := make([]string, len(competitors))
	for i, c := range competitors {
		names[i] = c.Name
	}

	a.observe(op, start, len(texts))
	return models.ComparisonResult{
		ComparisonDate:    a.now(),
		FeatureComparison: scores,
		Competitors:       names,
	}, nil
}

// AnalyzeSentiment scores the newest mentions of one competitor.
func (a *MarketAnalyzer) AnalyzeSentiment(ctx context.Context, id string) (models.SentimentResult, error) {
	const op = "analyze_sentiment"
	if _, err := a.resolveOne(ctx, op, id); err != nil {
		return models.SentimentResult{}, err
	}
	return a.sentiment(ctx, op, id)
}

func (a *MarketAnalyzer) sentiment(ctx context.Context, op, id string) (models.SentimentResult, error) {
	mentions, err := a.mentions.Mentions(ctx, id, a.mentionLimit)
	if err != nil {
		return models.SentimentResult{}, errs.Wrap(errs.KindComputationFailure, op, err, "load mentions")
	}
	texts := make([]string, len(mentions))
	for i, m := range mentions {
		texts[i] = m.Text
	}
	s := analytics.ScoreMentions(texts)
	res := models.SentimentResult{
		SentimentScore: s.Score,
		MentionCount:   s.MentionCount,
		AnalysisDate:   a.now(),
	}
	if s.MentionCount > 0 {
		res.MentionScores = s.MentionScores
	}
	return res, nil
}

// GenerateCompetitorReport positions one competitor against every other
// stored competitor and adds sentiment and recommendations.
func (a *MarketAnalyzer) GenerateCompetitorReport(ctx context.Context, id string) (models.CompetitorReport, error) {
	const op = "generate_competitor_report"
	start := time.Now()

	target, err := a.resolveOne(ctx, op, id)
	if err != nil {
		return models.CompetitorReport{}, err
	}
	others, err := a.competitors.Find(ctx, drepo.CompetitorFilter{ExcludeIDs: []string{id}})
	if err != nil {
		return models.CompetitorReport{}, errs.Wrap(errs.KindComputationFailure, op, err, "load competitors")
	}

	texts, names := BuildCorpus(append([]models.Competitor{target}, others...))
	matrix, err := a.similarity(ctx, op, texts)
	if err != nil {
		return models.CompetitorReport{}, err
	}
	pos, err := analytics.AnalyzeSinglePosition(names, matrix)
	if err != nil {
		return models.CompetitorReport{}, err
	}

	sent, err := a.sentiment(ctx, op, id)
	if err != nil {
		return models.CompetitorReport{}, err
	}

	a.observe(op, start, len(texts))
	return models.CompetitorReport{
		CompetitorName:    target.Name,
		MarketPosition:    pos,
		SentimentAnalysis: sent,
		ReportDate:        a.now(),
		Recommendations:   analytics.Recommend(pos, sent.SentimentScore),
	}, nil
}

// MarketTrends lists the stored market trends.
func (a *MarketAnalyzer) MarketTrends(ctx context.Context) ([]models.MarketTrend, error) {
	trends, err := a.trends.ListTrends(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.KindComputationFailure, "market_trends", err, "load trends")
	}
	return trends, nil
}

// resolve validates every id before any lookup, then returns the competitors
// in request order.
func (a *MarketAnalyzer) resolve(ctx context.Context, op string, ids []string) ([]models.Competitor, error) {
	if len(ids) == 0 {
		return nil, errs.New(errs.KindValidationFailure, op, "competitor_ids is empty")
	}
	for _, id := range ids {
		if err := ValidateID(op, id); err != nil {
			return nil, err
		}
	}

	found, err := a.competitors.Find(ctx, drepo.CompetitorFilter{IDs: ids})
	if err != nil {
		return nil, errs.Wrap(errs.KindComputationFailure, op, err, "load competitors")
	}
	byID := make(map[string]models.Competitor, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}

	out := make([]models.Competitor, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, errs.Newf(errs.KindNotFound, op, "competitor %s not found", id)
		}
		out = append(out, c)
	}
	return out, nil
}

func (a *MarketAnalyzer) resolveOne(ctx context.Context, op, id string) (models.Competitor, error) {
	if err := ValidateID(op, id); err != nil {
		return models.Competitor{}, err
	}
	c, ok, err := a.competitors.FindOne(ctx, id)
	if err != nil {
		return models.Competitor{}, errs.Wrap(errs.KindComputationFailure, op, err, "load competitor")
	}
	if !ok {
		return models.Competitor{}, errs.Newf(errs.KindNotFound, op, "competitor %s not found", id)
	}
	return c, nil
}

func (a *MarketAnalyzer) embed(ctx context.Context, op string, texts []string) ([][]float64, error) {
	vecs, err := a.embedder.Embed(ctx, texts)
	if err != nil {
		if errs.KindOf(err) != errs.KindUnknown {
			return nil, err
		}
		return nil, errs.Wrap(errs.KindComputationFailure, op, err, "embed corpus")
	}
	if len(vecs) != len(texts) {
		return nil, errs.Newf(errs.KindComputationFailure, op, "embedder returned %d vectors for %d texts", len(vecs), len(texts))
	}
	return vecs, nil
}

func (a *MarketAnalyzer) similarity(ctx context.Context, op string, texts []string) ([][]float64, error) {
	vecs, err := a.embed(ctx, op, texts)
	if err != nil {
		return nil, err
	}
	return analytics.SimilarityMatrix(vecs)
}

// archive stores the report as an audit record. Failures are logged only.
func (a *MarketAnalyzer) archive(ctx context.Context, report models.AnalysisReport, analysisType string, req models.AnalysisRequest) {
	if a.events == nil {
		return
	}
	payload, err := json.Marshal(report)
	if err != nil {
		a.logger.Warn("encode analysis record", applogger.String("analysis_id", report.AnalysisID), applogger.Error(err))
		return
	}
	rec := models.AnalysisRecord{
		AnalysisID:    report.AnalysisID,
		AnalysisDate:  report.AnalysisDate,
		AnalysisType:  analysisType,
		CompetitorIDs: req.CompetitorIDs,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Payload:       payload,
	}
	if err := a.events.ProcessReport(ctx, rec); err != nil {
		a.logger.Warn("archive analysis record",
			applogger.String("analysis_id", report.AnalysisID),
			applogger.String("backend", a.events.Backend()),
			applogger.Error(err),
		)
	}
}

func (a *MarketAnalyzer) observe(op string, start time.Time, corpus int) {
	if a.metrics == nil {
		return
	}
	a.metrics.RecordCorpusSize(op, corpus)
	a.metrics.RecordLatency(op, time.Since(start).Seconds())
}

// ValidateID checks that id is a competitor identifier.
func ValidateID(op, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errs.Newf(errs.KindInvalidIdentifier, op, "invalid competitor id %q", id)
	}
	return nil
}
