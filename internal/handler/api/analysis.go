package api

import (
	"bytes"
	"context"
	"io"
	"time"

	"MarketIntel/internal/domain/models"
	icache "MarketIntel/internal/service/cache"
	"MarketIntel/internal/service/metrics"
	xhttp "MarketIntel/pkg/http"
	"MarketIntel/pkg/http/middleware"
	applogger "MarketIntel/pkg/logger"
	"MarketIntel/pkg/util"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
)

const trendsCacheKey = "market_trends"

// Analyzer is the analysis use case consumed by the handler.
type Analyzer interface {
	PerformMarketAnalysis(ctx context.Context, req models.AnalysisRequest) (models.AnalysisReport, error)
	CompareCompetitors(ctx context.Context, ids []string) (models.ComparisonResult, error)
	AnalyzeSentiment(ctx context.Context, id string) (models.SentimentResult, error)
	GenerateCompetitorReport(ctx context.Context, id string) (models.CompetitorReport, error)
	MarketTrends(ctx context.Context) ([]models.MarketTrend, error)
}

// marketAnalysisBody accepts RFC3339 timestamps or plain dates.
type marketAnalysisBody struct {
	CompetitorIDs []string `json:"competitor_ids" validate:"required,min=1,dive,required"`
	StartDate     string   `json:"start_date" validate:"required"`
	EndDate       string   `json:"end_date" validate:"required"`
	AnalysisType  string   `json:"analysis_type" default:"full" validate:"oneof=market_share sentiment full"`
}

// AnalysisHandler serves /api/analysis.
type AnalysisHandler struct {
	logger    *applogger.Logger
	analyzer  Analyzer
	cache     icache.BytesCache
	limiter   middleware.KeyLimiter
	trendsTTL time.Duration
}

// NewAnalysisHandler builds the handler. cache and limiter are optional.
func NewAnalysisHandler(
	logger *applogger.Logger,
	analyzer Analyzer,
	cache icache.BytesCache,
	limiter middleware.KeyLimiter,
	trendsTTL time.Duration,
) *AnalysisHandler {
	metrics.Register()
	if logger == nil {
		logger = applogger.Nop()
	}
	return &AnalysisHandler{
		logger:    logger.With(applogger.String("handler", "analysis")),
		analyzer:  analyzer,
		cache:     cache,
		limiter:   limiter,
		trendsTTL: trendsTTL,
	}
}

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	var mws []echo.MiddlewareFunc
	if h.limiter != nil {
		mws = append(mws, middleware.RateLimit(h.limiter, h.limited))
	}
	g := e.Group("/api/analysis", mws...)
	g.POST("/market-analysis", h.MarketAnalysis)
	g.GET("/trends", h.Trends)
	g.POST("/competitor-comparison", h.Compare)
	g.POST("/sentiment-analysis/:id", h.Sentiment)
	g.GET("/reports/:id", h.Report)
}

func (h *AnalysisHandler) limited(c echo.Context) {
	metrics.RateLimited.WithLabelValues(c.Path()).Inc()
	h.logger.Warn("rate limited",
		applogger.String("path", c.Path()),
		applogger.String("remote_ip", c.RealIP()),
	)
}

func observe(endpoint string, start time.Time) {
	metrics.AnalyticsLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func (h *AnalysisHandler) MarketAnalysis(c echo.Context) error {
	const endpoint = "market_analysis"
	defer observe(endpoint, time.Now())

	body := &marketAnalysisBody{}
	if verr := xhttp.ReadAndValidateRequest(c, body); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	from, ok := util.ParseTime(body.StartDate)
	if !ok {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{Code: "ERR_DATE", Field: "start_date", Message: "start_date must be a date or RFC3339 timestamp"}})
	}
	to, ok := util.ParseTime(body.EndDate)
	if !ok {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{Code: "ERR_DATE", Field: "end_date", Message: "end_date must be a date or RFC3339 timestamp"}})
	}

	res, err := h.analyzer.PerformMarketAnalysis(c.Request().Context(), models.AnalysisRequest{
		CompetitorIDs: body.CompetitorIDs,
		StartDate:     from,
		EndDate:       to,
		AnalysisType:  body.AnalysisType,
	})
	if err != nil {
		return respondError(c, h.logger, endpoint, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Trends returns the stored market trends, served from cache when warm.
func (h *AnalysisHandler) Trends(c echo.Context) error {
	const endpoint = "trends"
	defer observe(endpoint, time.Now())
	ctx := c.Request().Context()

	if h.cache != nil {
		if b, ok, err := h.cache.GetBytes(ctx, trendsCacheKey); err != nil {
			h.logger.Warn("trends cache_get_error", applogger.Error(err))
		} else if ok {
			var trends []models.MarketTrend
			if err := json.Unmarshal(b, &trends); err == nil {
				h.logger.Debug("trends cache_hit")
				return xhttp.SuccessResponse(c, trends)
			}
			h.logger.Warn("trends cache_decode_error", applogger.Error(err))
		}
	}

	trends, err := h.analyzer.MarketTrends(ctx)
	if err != nil {
		return respondError(c, h.logger, endpoint, err)
	}
	if h.cache != nil && h.trendsTTL > 0 {
		if b, err := json.Marshal(trends); err == nil {
			if err := h.cache.SetBytes(ctx, trendsCacheKey, b, h.trendsTTL); err != nil {
				h.logger.Warn("trends cache_set_error", applogger.Error(err))
			}
		}
	}
	return xhttp.SuccessResponse(c, trends)
}

// Compare accepts {"competitor_ids": [...]} or a bare JSON array of ids.
func (h *AnalysisHandler) Compare(c echo.Context) error {
	const endpoint = "competitor_comparison"
	defer observe(endpoint, time.Now())

	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{Code: "ERR_UNKNOWN", Message: "unreadable body"}})
	}
	req := &models.ComparisonRequest{}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		err = json.Unmarshal(raw, &req.CompetitorIDs)
	} else if len(raw) > 0 {
		err = json.Unmarshal(raw, req)
	}
	if err != nil {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{Code: "ERR_UNKNOWN", Message: "body must be a JSON array of ids or an object with competitor_ids"}})
	}
	if verr := xhttp.ValidateRequest(c.Request().Context(), req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.CompareCompetitors(c.Request().Context(), req.CompetitorIDs)
	if err != nil {
		return respondError(c, h.logger, endpoint, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisHandler) Sentiment(c echo.Context) error {
	const endpoint = "sentiment_analysis"
	defer observe(endpoint, time.Now())

	res, err := h.analyzer.AnalyzeSentiment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, endpoint, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisHandler) Report(c echo.Context) error {
	const endpoint = "competitor_report"
	defer observe(endpoint, time.Now())

	res, err := h.analyzer.GenerateCompetitorReport(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, endpoint, err)
	}
	return xhttp.SuccessResponse(c, res)
}
